package server

import (
	"net/http"

	"storefront/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Proxy        *handler.ProxyHandler
	Geocode      *handler.GeocodeHandler
	ReceiptEmail *handler.ReceiptEmailHandler
	Cart         *handler.CartHandler
	Wishlist     *handler.WishlistHandler
	Checkout     *handler.CheckoutHandler
	Offline      *handler.OfflineHandler
}

type HealthResponse struct {
	Status string `json:"status"`
}

func RegisterRoutes(e *echo.Echo, sessionMW echo.MiddlewareFunc, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
	})

	// セッション不要
	h.Proxy.RegisterRoutes(e)
	h.Geocode.RegisterRoutes(e)
	h.ReceiptEmail.RegisterRoutes(e)
	h.Offline.RegisterRoutes(e)

	// セッション（カート/ウィッシュリスト）が必要
	g := e.Group("/api", sessionMW)
	h.Cart.RegisterRoutes(g)
	h.Wishlist.RegisterRoutes(g)
	h.Checkout.RegisterRoutes(g)
}
