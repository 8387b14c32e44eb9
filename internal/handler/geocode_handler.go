package handler

import (
	"net/http"

	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 住所入力補助のジオコーディング
type GeocodeHandler struct {
	uc *usecase.GeocodeUsecase
}

// DI
func NewGeocodeHandler(uc *usecase.GeocodeUsecase) *GeocodeHandler {
	return &GeocodeHandler{uc: uc}
}

func (h *GeocodeHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/geocode", h.search)
	e.GET("/api/reverse-geocode", h.reverse)
}

func (h *GeocodeHandler) search(c echo.Context) error {
	out, err := h.uc.Search(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSONBlob(http.StatusOK, out)
}

func (h *GeocodeHandler) reverse(c echo.Context) error {
	out, err := h.uc.Reverse(c.Request().Context(), c.QueryParam("lat"), c.QueryParam("lng"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSONBlob(http.StatusOK, out)
}
