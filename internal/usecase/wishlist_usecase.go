package usecase

import (
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/state"

	"github.com/shopspring/decimal"
)

type WishlistUsecase struct{}

func NewWishlistUsecase() *WishlistUsecase {
	return &WishlistUsecase{}
}

type AddWishlistInput struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	ImageRef  string
	Metadata  map[string]string
}

type WishlistMembership struct {
	ProductID  string `json:"productId"`
	InWishlist bool   `json:"inWishlist"`
}

func (u *WishlistUsecase) GetWishlist(w *state.Wishlist) state.WishlistSnapshot {
	return w.Snapshot()
}

func (u *WishlistUsecase) AddToWishlist(w *state.Wishlist, in AddWishlistInput) (state.WishlistSnapshot, error) {
	p, err := toWishlistProduct(in)
	if err != nil {
		return state.WishlistSnapshot{}, err
	}

	w.Add(p)
	return w.Snapshot(), nil
}

func (u *WishlistUsecase) RemoveFromWishlist(w *state.Wishlist, productID string) (state.WishlistSnapshot, error) {
	id := strings.TrimSpace(productID)
	if id == "" {
		return state.WishlistSnapshot{}, NewHTTPError(http.StatusBadRequest, "invalid productId")
	}

	w.Remove(id)
	return w.Snapshot(), nil
}

// 無ければ追加、あれば削除
func (u *WishlistUsecase) ToggleWishlist(w *state.Wishlist, in AddWishlistInput) (WishlistMembership, error) {
	p, err := toWishlistProduct(in)
	if err != nil {
		return WishlistMembership{}, err
	}

	member := w.Toggle(p)
	return WishlistMembership{ProductID: p.ID, InWishlist: member}, nil
}

func (u *WishlistUsecase) IsInWishlist(w *state.Wishlist, productID string) (WishlistMembership, error) {
	id := strings.TrimSpace(productID)
	if id == "" {
		return WishlistMembership{}, NewHTTPError(http.StatusBadRequest, "invalid productId")
	}

	return WishlistMembership{ProductID: id, InWishlist: w.Contains(id)}, nil
}

func toWishlistProduct(in AddWishlistInput) (model.Product, error) {
	id := strings.TrimSpace(in.ProductID)
	if id == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid productId")
	}
	if in.UnitPrice.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid unitPrice")
	}

	return model.Product{
		ID:        id,
		Name:      strings.TrimSpace(in.Name),
		UnitPrice: in.UnitPrice.Round(2),
		ImageRef:  strings.TrimSpace(in.ImageRef),
		Metadata:  in.Metadata,
	}, nil
}
