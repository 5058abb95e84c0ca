package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/silkmarket/core/internal/domain/entities"
	"github.com/silkmarket/core/internal/infrastructure/logger"
	"github.com/silkmarket/core/internal/ports"
)

const cocoonEntity = "Cocoon rate"

// CocoonHandler handles cocoon rate requests
type CocoonHandler struct {
	cocoonService ports.CocoonService
	logger        *logger.Logger
}

// NewCocoonHandler creates a new cocoon rate handler
func NewCocoonHandler(cocoonService ports.CocoonService, logger *logger.Logger) *CocoonHandler {
	return &CocoonHandler{
		cocoonService: cocoonService,
		logger:        logger,
	}
}

// ListCocoonRates godoc
// @Summary List cocoon rates
// @Description All cocoon rates, newest date first, then by location
// @Tags cocoon
// @Produce json
// @Success 200 {array} entities.CocoonRate
// @Router /cocoon [get]
func (h *CocoonHandler) ListCocoonRates(c echo.Context) error {
	return c.JSON(http.StatusOK, h.cocoonService.List(c.Request().Context()))
}

// GetCocoonRate godoc
// @Summary Get cocoon rate by ID
// @Tags cocoon
// @Produce json
// @Param id path int true "Cocoon rate ID"
// @Success 200 {object} entities.CocoonRate
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /cocoon/{id} [get]
func (h *CocoonHandler) GetCocoonRate(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	rec, err := h.cocoonService.Get(c.Request().Context(), id)
	if errors.Is(err, entities.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, cocoonEntity+" not found")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, rec)
}

// GetLocations godoc
// @Summary Per-location cocoon summary
// @Description Highest, average and minimum price, total quantity and lot count per location
// @Tags cocoon
// @Produce json
// @Success 200 {array} entities.LocationSummary
// @Router /cocoon/locations [get]
func (h *CocoonHandler) GetLocations(c echo.Context) error {
	return c.JSON(http.StatusOK, h.cocoonService.Locations(c.Request().Context()))
}

// GetMonthly godoc
// @Summary Monthly average cocoon prices
// @Tags cocoon
// @Produce json
// @Param type query string false "highest, average or minimum" default(average)
// @Success 200 {array} entities.MonthlyPrice
// @Router /cocoon/monthly [get]
func (h *CocoonHandler) GetMonthly(c echo.Context) error {
	priceType := entities.ParsePriceType(c.QueryParam("type"))
	return c.JSON(http.StatusOK, h.cocoonService.Monthly(c.Request().Context(), priceType))
}

// CreateCocoonRate godoc
// @Summary Record a cocoon rate
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ports.CreateCocoonRequest true "Cocoon rate"
// @Success 201 {object} MessageResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/cocoon [post]
func (h *CocoonHandler) CreateCocoonRate(c echo.Context) error {
	var req ports.CreateCocoonRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.cocoonService.Create(c.Request().Context(), req)
	if err != nil {
		return mutationError(h.logger, err, cocoonEntity, "add")
	}

	return c.JSON(http.StatusCreated, MessageResponse{
		Success: true,
		Message: "Cocoon rate added successfully",
		ID:      int64Ptr(res.ID),
	})
}

// UpdateCocoonRate godoc
// @Summary Update a cocoon rate
// @Description Only the supplied fields change
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Cocoon rate ID"
// @Param request body ports.UpdateCocoonRequest true "Fields to change"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/cocoon/{id} [put]
func (h *CocoonHandler) UpdateCocoonRate(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req ports.UpdateCocoonRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.cocoonService.Update(c.Request().Context(), id, req); err != nil {
		return mutationError(h.logger, err, cocoonEntity, "update")
	}

	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Cocoon rate updated successfully"})
}

// DeleteCocoonRate godoc
// @Summary Delete a cocoon rate
// @Tags admin
// @Produce json
// @Param id path int true "Cocoon rate ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/cocoon/{id} [delete]
func (h *CocoonHandler) DeleteCocoonRate(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if _, err := h.cocoonService.Delete(c.Request().Context(), id); err != nil {
		return mutationError(h.logger, err, cocoonEntity, "delete")
	}

	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Cocoon rate deleted successfully"})
}
