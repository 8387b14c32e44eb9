package usecase

import (
	"net/http"
	"testing"

	"storefront/internal/state"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartUsecase_AddToCart_Validation(t *testing.T) {
	uc := NewCartUsecase()
	cart := state.NewCart()

	_, err := uc.AddToCart(cart, AddCartInput{ProductID: " "})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid productId")

	_, err = uc.AddToCart(cart, AddCartInput{ProductID: "p1", UnitPrice: decimal.NewFromInt(-1)})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid unitPrice")

	_, err = uc.AddToCart(cart, AddCartInput{ProductID: "p1", Quantity: -2})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid quantity")

	assert.Equal(t, 0, cart.Len())
}

func TestCartUsecase_AddToCart_RoundsPrice(t *testing.T) {
	uc := NewCartUsecase()
	cart := state.NewCart()

	out, err := uc.AddToCart(cart, AddCartInput{ProductID: "p1", Name: " Beans ", UnitPrice: decimal.RequireFromString("1.005"), Quantity: 2})
	require.NoError(t, err)

	require.Len(t, out.Items, 1)
	assert.Equal(t, "Beans", out.Items[0].Name)
	assert.True(t, decimal.RequireFromString("1.01").Equal(out.Items[0].UnitPrice))
	assert.True(t, decimal.RequireFromString("2.02").Equal(out.Total))
	assert.Equal(t, int64(2), out.Count)
}

func TestCartUsecase_UpdateQuantity(t *testing.T) {
	uc := NewCartUsecase()
	cart := state.NewCart()
	_, _ = uc.AddToCart(cart, AddCartInput{ProductID: "p1", UnitPrice: decimal.NewFromInt(5)})

	_, err := uc.UpdateQuantity(cart, "missing", 2)
	assertHTTPError(t, err, http.StatusNotFound, "not found")

	out, err := uc.UpdateQuantity(cart, "p1", 4)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(20).Equal(out.Total))

	out, err = uc.UpdateQuantity(cart, "p1", 0)
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.True(t, out.Total.IsZero())
}

func TestCartUsecase_RemoveAndClear(t *testing.T) {
	uc := NewCartUsecase()
	cart := state.NewCart()
	_, _ = uc.AddToCart(cart, AddCartInput{ProductID: "p1", UnitPrice: decimal.NewFromInt(5)})
	_, _ = uc.AddToCart(cart, AddCartInput{ProductID: "p2", UnitPrice: decimal.NewFromInt(1)})

	out, err := uc.RemoveFromCart(cart, "unknown")
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)

	out, err = uc.RemoveFromCart(cart, "p1")
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)

	out = uc.ClearCart(cart)
	assert.Empty(t, out.Items)
}

func TestWishlistUsecase_Toggle(t *testing.T) {
	uc := NewWishlistUsecase()
	w := state.NewWishlist()

	m, err := uc.ToggleWishlist(w, AddWishlistInput{ProductID: "p1"})
	require.NoError(t, err)
	assert.True(t, m.InWishlist)

	m, err = uc.IsInWishlist(w, "p1")
	require.NoError(t, err)
	assert.True(t, m.InWishlist)

	m, err = uc.ToggleWishlist(w, AddWishlistInput{ProductID: "p1"})
	require.NoError(t, err)
	assert.False(t, m.InWishlist)

	_, err = uc.IsInWishlist(w, "")
	assertHTTPError(t, err, http.StatusBadRequest, "invalid productId")
}

func TestWishlistUsecase_AddRemove(t *testing.T) {
	uc := NewWishlistUsecase()
	w := state.NewWishlist()

	out, err := uc.AddToWishlist(w, AddWishlistInput{ProductID: "p1", Name: "Mug", Metadata: map[string]string{"color": "blue"}})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "blue", out.Items[0].Product.Metadata["color"])

	_, err = uc.AddToWishlist(w, AddWishlistInput{ProductID: "p2", UnitPrice: decimal.NewFromInt(-5)})
	assertHTTPError(t, err, http.StatusBadRequest, "invalid unitPrice")

	out, err = uc.RemoveFromWishlist(w, "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, out.Count)
}
