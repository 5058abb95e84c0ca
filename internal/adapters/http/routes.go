package http

import (
	"github.com/labstack/echo/v4"
)

// Handlers groups every API handler for route registration
type Handlers struct {
	Cocoon     *CocoonHandler
	Silk       *SilkHandler
	Admin      *AdminHandler
	Calculator *CalculatorHandler
}

// Register mounts the public and admin routes under g
func (h *Handlers) Register(g *echo.Group) {
	cocoon := g.Group("/cocoon")
	cocoon.GET("", h.Cocoon.ListCocoonRates)
	cocoon.GET("/locations", h.Cocoon.GetLocations)
	cocoon.GET("/monthly", h.Cocoon.GetMonthly)
	cocoon.GET("/:id", h.Cocoon.GetCocoonRate)

	silk := g.Group("/silk")
	silk.GET("", h.Silk.ListSilkPrices)
	silk.GET("/locations", h.Silk.GetLatestByLocation)
	silk.GET("/:id", h.Silk.GetSilkPrice)

	g.POST("/calculator", h.Calculator.Calculate)

	admin := g.Group("/admin")
	admin.POST("/login", h.Admin.Login)

	auth := h.Admin.RequireAdmin
	admin.POST("/cocoon", h.Cocoon.CreateCocoonRate, auth)
	admin.PUT("/cocoon/:id", h.Cocoon.UpdateCocoonRate, auth)
	admin.DELETE("/cocoon/:id", h.Cocoon.DeleteCocoonRate, auth)
	admin.POST("/silk", h.Silk.CreateSilkPrice, auth)
	admin.PUT("/silk/:id", h.Silk.UpdateSilkPrice, auth)
	admin.DELETE("/silk/:id", h.Silk.DeleteSilkPrice, auth)
}
