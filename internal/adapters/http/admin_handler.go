package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/silkmarket/core/internal/application/services"
	"github.com/silkmarket/core/internal/infrastructure/logger"
	"github.com/silkmarket/core/internal/ports"
)

// Authentication failure messages
const (
	MsgNoAuthHeader    = "No authorization header provided"
	MsgInvalidPassword = "Invalid admin password"
)

// AdminCredential extracts the secret from an "Authorization: Bearer <secret>"
// header. A header without the Bearer prefix is taken as the secret itself.
func AdminCredential(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}

// AdminHandler handles admin authentication requests
type AdminHandler struct {
	authService *services.AuthService
	logger      *logger.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(authService *services.AuthService, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login godoc
// @Summary Check the admin credential
// @Description Succeeds when the Authorization header carries the admin secret. No token is issued.
// @Tags admin
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/login [post]
func (h *AdminHandler) Login(c echo.Context) error {
	credential, ok := AdminCredential(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, MsgNoAuthHeader)
	}

	if err := h.authService.Authenticate(c.Request().Context(), credential); err != nil {
		h.logger.LogSecurityEvent("admin_login_failed", c.RealIP(), nil)
		return echo.NewHTTPError(http.StatusUnauthorized, MsgInvalidPassword)
	}

	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Admin authenticated"})
}

// RequireAdmin rejects requests that do not present the admin credential
func (h *AdminHandler) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		credential, ok := AdminCredential(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, MsgNoAuthHeader)
		}

		if err := h.authService.Authenticate(c.Request().Context(), credential); err != nil {
			h.logger.LogSecurityEvent("admin_auth_failed", c.RealIP(), map[string]interface{}{
				"method": c.Request().Method,
				"path":   c.Path(),
			})
			return echo.NewHTTPError(http.StatusUnauthorized, MsgInvalidPassword)
		}

		return next(c)
	}
}

// CalculatorHandler handles profit/loss calculations
type CalculatorHandler struct {
	calculator ports.CalculatorService
}

// NewCalculatorHandler creates a new calculator handler
func NewCalculatorHandler(calculator ports.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{calculator: calculator}
}

// Calculate godoc
// @Summary Profit or loss of reeling a cocoon purchase
// @Tags calculator
// @Accept json
// @Produce json
// @Param request body ports.CalculatorRequest true "Calculator inputs"
// @Success 200 {object} ports.CalculatorResponse
// @Failure 400 {object} ValidationErrorResponse
// @Router /calculator [post]
func (h *CalculatorHandler) Calculate(c echo.Context) error {
	var req ports.CalculatorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.calculator.Calculate(req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}
