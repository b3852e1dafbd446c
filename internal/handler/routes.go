package handler

import (
	"net/http"

	"marketplace-be/internal/listing"
	"marketplace-be/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Auth     *AuthHandler
	Users    *UserHandler
	Stores   *StoreHandler
	Products *ProductHandler
	Orders   *OrderHandler
	Listings listing.Service
}

// RegisterRoutes attaches every route to the echo instance. Reads are
// public; writes sit behind the auth middleware.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	auth := e.Group("/api/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)

	users := e.Group("/api/users", middleware.RequireAuth)
	users.GET("", h.Users.List)
	users.GET("/:id", h.Users.Get)
	users.PATCH("/:id", h.Users.Update)
	users.DELETE("/:id", h.Users.Deactivate)

	stores := e.Group("/api/stores")
	stores.GET("", h.Stores.List)
	stores.GET("/:id", h.Stores.Get)
	stores.GET("/owner/:ownerId", h.Stores.GetByOwner)
	stores.POST("", h.Stores.Create, middleware.RequireAuth)
	stores.PATCH("/:id", h.Stores.Update, middleware.RequireAuth)
	stores.DELETE("/:id", h.Stores.Delete, middleware.RequireAuth)

	products := e.Group("/api/products")
	products.GET("/store/:id", h.Products.GetByStore)
	products.GET("/user/:id", h.Products.GetByUser)
	products.GET("/:id", h.Products.Get)
	products.POST("", h.Products.Create, middleware.RequireAuth)
	products.PATCH("/:id", h.Products.Update, middleware.RequireAuth)
	products.DELETE("/:id", h.Products.Delete, middleware.RequireAuth)

	orders := e.Group("/api/orders", middleware.RequireAuth)
	orders.POST("", h.Orders.Checkout)
	orders.GET("/:id", h.Orders.Get)
	orders.PATCH("/:id/status", h.Orders.UpdateStatus)

	dashboard := e.Group("/api/dashboard", middleware.RequireAuth)
	dashboard.GET("/stats/:userId", h.Orders.DashboardStats)
	dashboard.GET("/orders/:userId", h.Orders.DashboardOrders)

	boards := map[string]listing.Kind{
		"/api/restaurants": listing.KindRestaurant,
		"/api/jobs":        listing.KindJob,
		"/api/ads":         listing.KindAd,
	}
	for prefix, kind := range boards {
		lh := NewListingHandler(h.Listings, kind)
		g := e.Group(prefix)
		g.GET("", lh.List)
		g.GET("/:id", lh.Get)
		g.POST("", lh.Create, middleware.RequireAuth)
		g.PATCH("/:id", lh.Update, middleware.RequireAuth)
		g.DELETE("/:id", lh.Delete, middleware.RequireAuth)
	}
}
