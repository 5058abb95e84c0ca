package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/silkmarket/core/internal/domain/entities"
	"github.com/silkmarket/core/internal/infrastructure/logger"
	"github.com/silkmarket/core/internal/ports"
)

const silkEntity = "Silk price"

// SilkHandler handles silk price requests
type SilkHandler struct {
	silkService ports.SilkService
	logger      *logger.Logger
}

// NewSilkHandler creates a new silk price handler
func NewSilkHandler(silkService ports.SilkService, logger *logger.Logger) *SilkHandler {
	return &SilkHandler{
		silkService: silkService,
		logger:      logger,
	}
}

// ListSilkPrices godoc
// @Summary List silk prices
// @Tags silk
// @Produce json
// @Success 200 {array} entities.SilkPrice
// @Router /silk [get]
func (h *SilkHandler) ListSilkPrices(c echo.Context) error {
	return c.JSON(http.StatusOK, h.silkService.List(c.Request().Context()))
}

func (h *SilkHandler) GetSilkPrice(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	rec, err := h.silkService.Get(c.Request().Context(), id)
	if errors.Is(err, entities.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, silkEntity+" not found")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, rec)
}

// GetLatestByLocation godoc
// @Summary Latest silk price per location
// @Tags silk
// @Produce json
// @Success 200 {array} entities.SilkPrice
// @Router /silk/locations [get]
func (h *SilkHandler) GetLatestByLocation(c echo.Context) error {
	return c.JSON(http.StatusOK, h.silkService.Locations(c.Request().Context()))
}

func (h *SilkHandler) CreateSilkPrice(c echo.Context) error {
	var req ports.CreateSilkRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.silkService.Create(c.Request().Context(), req)
	if err != nil {
		return mutationError(h.logger, err, silkEntity, "add")
	}

	return c.JSON(http.StatusCreated, MessageResponse{
		Success: true,
		Message: "Silk price added successfully",
		ID:      int64Ptr(res.ID),
	})
}

func (h *SilkHandler) UpdateSilkPrice(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req ports.UpdateSilkRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.silkService.Update(c.Request().Context(), id, req); err != nil {
		return mutationError(h.logger, err, silkEntity, "update")
	}

	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Silk price updated successfully"})
}

func (h *SilkHandler) DeleteSilkPrice(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if _, err := h.silkService.Delete(c.Request().Context(), id); err != nil {
		return mutationError(h.logger, err, silkEntity, "delete")
	}

	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Silk price deleted successfully"})
}
