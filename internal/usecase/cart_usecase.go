package usecase

import (
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	"storefront/internal/state"

	"github.com/shopspring/decimal"
)

// CartUsecase はセッションのカート操作の入力チェック。
// 状態そのものは state.Cart が持つ。
type CartUsecase struct{}

func NewCartUsecase() *CartUsecase {
	return &CartUsecase{}
}

type AddCartInput struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	ImageRef  string
	Quantity  int64
}

func (u *CartUsecase) GetCart(cart *state.Cart) state.CartSnapshot {
	return cart.Snapshot()
}

// AddToCart はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(cart *state.Cart, in AddCartInput) (state.CartSnapshot, error) {
	id := strings.TrimSpace(in.ProductID)
	if id == "" {
		return state.CartSnapshot{}, NewHTTPError(http.StatusBadRequest, "invalid productId")
	}
	if in.UnitPrice.IsNegative() {
		return state.CartSnapshot{}, NewHTTPError(http.StatusBadRequest, "invalid unitPrice")
	}
	if in.Quantity < 0 {
		return state.CartSnapshot{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	cart.Add(model.Product{
		ID:   id,
		Name: strings.TrimSpace(in.Name),
		// 最小通貨単位（小数2桁）にそろえる
		UnitPrice: in.UnitPrice.Round(2),
		ImageRef:  strings.TrimSpace(in.ImageRef),
	}, in.Quantity)

	return cart.Snapshot(), nil
}

// 数量変更。0以下は削除。
func (u *CartUsecase) UpdateQuantity(cart *state.Cart, productID string, qty int64) (state.CartSnapshot, error) {
	id := strings.TrimSpace(productID)
	if id == "" {
		return state.CartSnapshot{}, NewHTTPError(http.StatusBadRequest, "invalid productId")
	}
	if !inCart(cart, id) {
		return state.CartSnapshot{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	cart.UpdateQuantity(id, qty)
	return cart.Snapshot(), nil
}

// 明細削除（無くてもエラーにしない）
func (u *CartUsecase) RemoveFromCart(cart *state.Cart, productID string) (state.CartSnapshot, error) {
	id := strings.TrimSpace(productID)
	if id == "" {
		return state.CartSnapshot{}, NewHTTPError(http.StatusBadRequest, "invalid productId")
	}

	cart.Remove(id)
	return cart.Snapshot(), nil
}

func (u *CartUsecase) ClearCart(cart *state.Cart) state.CartSnapshot {
	cart.Clear()
	return cart.Snapshot()
}

func inCart(cart *state.Cart, productID string) bool {
	for _, it := range cart.Items() {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}
