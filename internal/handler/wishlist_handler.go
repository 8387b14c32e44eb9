package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type WishlistHandler struct {
	uc *usecase.WishlistUsecase
}

// DI
func NewWishlistHandler(uc *usecase.WishlistUsecase) *WishlistHandler {
	return &WishlistHandler{uc: uc}
}

type AddWishlistRequest struct {
	ProductID string            `json:"productId"`
	Name      string            `json:"name"`
	UnitPrice decimal.Decimal   `json:"unitPrice"`
	ImageRef  string            `json:"imageRef"`
	Metadata  map[string]string `json:"metadata"`
}

func (h *WishlistHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/wishlist", h.list)
	g.POST("/wishlist/items", h.add)
	g.GET("/wishlist/items/:productId", h.contains)
	g.DELETE("/wishlist/items/:productId", h.remove)
	g.POST("/wishlist/items/:productId/toggle", h.toggle)
}

func (h *WishlistHandler) list(c echo.Context) error {
	s, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, h.uc.GetWishlist(s.Wishlist))
}

func (h *WishlistHandler) add(c echo.Context) error {
	s, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	var req AddWishlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddToWishlist(s.Wishlist, toWishlistInput(req))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *WishlistHandler) contains(c echo.Context) error {
	s, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	out, err := h.uc.IsInWishlist(s.Wishlist, c.Param("productId"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *WishlistHandler) remove(c echo.Context) error {
	s, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	out, err := h.uc.RemoveFromWishlist(s.Wishlist, c.Param("productId"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// bodyは任意（商品情報のスナップショット用）
func (h *WishlistHandler) toggle(c echo.Context) error {
	s, ok := middleware.SessionFromContext(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	var req AddWishlistRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
		}
	}
	req.ProductID = c.Param("productId")

	out, err := h.uc.ToggleWishlist(s.Wishlist, toWishlistInput(req))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func toWishlistInput(req AddWishlistRequest) usecase.AddWishlistInput {
	return usecase.AddWishlistInput{
		ProductID: req.ProductID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		ImageRef:  req.ImageRef,
		Metadata:  req.Metadata,
	}
}
