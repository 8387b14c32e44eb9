package state

import (
	"testing"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price string) model.Product {
	return model.Product{
		ID:        id,
		Name:      "Product " + id,
		UnitPrice: decimal.RequireFromString(price),
	}
}

// Test: 同一商品を2回追加しても明細は1件
func TestCart_AddSameProductTwice(t *testing.T) {
	c := NewCart()

	c.Add(product("p1", "10.50"), 0)
	c.Add(product("p1", "10.50"), 0)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].Quantity)
	assert.True(t, decimal.RequireFromString("21").Equal(c.Total()))
}

func TestCart_AddWithQuantity(t *testing.T) {
	c := NewCart()

	c.Add(product("p1", "3"), 4)
	c.Add(product("p1", "3"), 2)

	assert.Equal(t, int64(6), c.Count())
}

func TestCart_KeepsInsertionOrder(t *testing.T) {
	c := NewCart()

	c.Add(product("b", "1"), 1)
	c.Add(product("a", "1"), 1)
	c.Add(product("b", "1"), 1)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].ProductID)
	assert.Equal(t, "a", items[1].ProductID)
}

// Test: 数量0で削除され、合計からも外れる
func TestCart_UpdateQuantityZeroRemoves(t *testing.T) {
	c := NewCart()
	c.Add(product("p1", "5"), 1)
	c.Add(product("p2", "7"), 1)

	c.UpdateQuantity("p1", 0)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)
	assert.True(t, decimal.NewFromInt(7).Equal(c.Total()))
}

func TestCart_UpdateQuantityNegativeRemoves(t *testing.T) {
	c := NewCart()
	c.Add(product("p1", "5"), 3)

	c.UpdateQuantity("p1", -1)

	assert.Equal(t, 0, c.Len())
	assert.True(t, c.Total().IsZero())
}

func TestCart_UpdateQuantityUnknownIsNoop(t *testing.T) {
	c := NewCart()
	calls := 0
	c.Subscribe(func(CartSnapshot) { calls++ })

	c.UpdateQuantity("missing", 3)
	c.Remove("missing")

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, calls)
}

func TestCart_Clear(t *testing.T) {
	c := NewCart()
	c.Add(product("p1", "5"), 3)
	c.Add(product("p2", "1"), 1)

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, int64(0), c.Count())
	assert.True(t, c.Total().IsZero())
}

// Test: 注文した数量だけ消え、後から入った明細と増えた数量は残る
func TestCart_SubtractKeepsLateChanges(t *testing.T) {
	c := NewCart()
	c.Add(product("p1", "5"), 2)
	c.Add(product("p2", "1"), 1)
	ordered := c.Items()

	// 注文保存中の変更
	c.Add(product("p1", "5"), 1)
	c.Add(product("late", "3"), 1)

	c.Subtract(ordered)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, int64(1), items[0].Quantity)
	assert.Equal(t, "late", items[1].ProductID)
	assert.True(t, decimal.RequireFromString("8").Equal(c.Total()))
}

// Test: 何も変わらないSubtractは通知しない
func TestCart_SubtractNoopDoesNotNotify(t *testing.T) {
	c := NewCart()
	c.Add(product("p1", "5"), 1)

	calls := 0
	c.Subscribe(func(CartSnapshot) { calls++ })

	c.Subtract([]model.CartItem{{ProductID: "unknown", Quantity: 1}})
	c.Subtract(nil)
	assert.Equal(t, 0, calls)

	c.Subtract([]model.CartItem{{ProductID: "p1", Quantity: 1}})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, c.Len())
}

// Test: どんな操作列でも合計は明細の単価×数量の和
func TestCart_TotalAlwaysMatchesItems(t *testing.T) {
	c := NewCart()
	ops := []func(){
		func() { c.Add(product("a", "1.25"), 2) },
		func() { c.Add(product("b", "0.10"), 3) },
		func() { c.UpdateQuantity("a", 5) },
		func() { c.Add(product("c", "99.99"), 1) },
		func() { c.Remove("b") },
		func() { c.Add(product("b", "0.10"), 1) },
		func() { c.UpdateQuantity("c", 0) },
		func() { c.Add(product("a", "1.25"), 1) },
	}

	for i, op := range ops {
		op()

		want := decimal.Zero
		for _, it := range c.Items() {
			want = want.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
		}
		assert.Truef(t, want.Equal(c.Total()), "step %d: want %s got %s", i, want, c.Total())
		assert.Truef(t, c.Total().Equal(c.Total()), "step %d: total must be stable", i)
	}

	assert.True(t, decimal.RequireFromString("7.60").Equal(c.Total()))
}

// Test: 変更のたびに同期的に通知される
func TestCart_NotifiesSynchronously(t *testing.T) {
	c := NewCart()

	var got []CartSnapshot
	c.Subscribe(func(s CartSnapshot) { got = append(got, s) })

	c.Add(product("p1", "2"), 1)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].Count)
	assert.True(t, decimal.NewFromInt(2).Equal(got[0].Total))

	c.UpdateQuantity("p1", 3)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[1].Count)

	c.Clear()
	require.Len(t, got, 3)
	assert.Empty(t, got[2].Items)

	assert.Less(t, got[0].Version, got[1].Version)
	assert.Less(t, got[1].Version, got[2].Version)
}

func TestCart_ListenerCanReadCart(t *testing.T) {
	c := NewCart()

	var seen decimal.Decimal
	c.Subscribe(func(CartSnapshot) { seen = c.Total() })

	c.Add(product("p1", "4"), 2)

	assert.True(t, decimal.NewFromInt(8).Equal(seen))
}

func TestCart_Unsubscribe(t *testing.T) {
	c := NewCart()

	calls := 0
	unsubscribe := c.Subscribe(func(CartSnapshot) { calls++ })

	c.Add(product("p1", "1"), 1)
	unsubscribe()
	unsubscribe()
	c.Add(product("p1", "1"), 1)

	assert.Equal(t, 1, calls)
}

func TestCart_SnapshotIsCopy(t *testing.T) {
	c := NewCart()
	c.Add(product("p1", "1"), 1)

	snap := c.Snapshot()
	snap.Items[0].Quantity = 100

	assert.Equal(t, int64(1), c.Items()[0].Quantity)
}

func TestCart_RestoreDoesNotNotify(t *testing.T) {
	c := NewCart()
	calls := 0
	c.Subscribe(func(CartSnapshot) { calls++ })

	c.Restore(CartSnapshot{
		Version: 7,
		Items: []model.CartItem{
			{ProductID: "p1", Name: "A", UnitPrice: decimal.NewFromInt(3), Quantity: 2},
			{ProductID: "p1", Name: "dup", UnitPrice: decimal.NewFromInt(3), Quantity: 9},
			{ProductID: "p2", Name: "zero", UnitPrice: decimal.NewFromInt(3), Quantity: 0},
		},
	})

	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, c.Len())
	assert.True(t, decimal.NewFromInt(6).Equal(c.Total()))

	c.Add(product("p3", "1"), 1)
	assert.Equal(t, uint64(8), c.Snapshot().Version)
}
