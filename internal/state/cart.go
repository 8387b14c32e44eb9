package state

import (
	"sync"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 通知・レスポンス用のカートの状態
type CartSnapshot struct {
	Version uint64           `json:"-"`
	Items   []model.CartItem `json:"items"`
	Total   decimal.Decimal  `json:"total"`
	Count   int64            `json:"count"`
}

// Cart はセッションごとのカート。
// 明細は追加順に並び、ProductIDごとに最大1件、数量は常に1以上。
type Cart struct {
	mu      sync.Mutex
	items   []model.CartItem
	version uint64

	subs subscribers[CartSnapshot]
}

func NewCart() *Cart {
	return &Cart{items: []model.CartItem{}}
}

// Subscribe は変更通知を登録し、解除用の関数を返す。
func (c *Cart) Subscribe(fn func(CartSnapshot)) func() {
	return c.subs.add(fn)
}

// Add は商品を追加する。既にあれば数量を加算する。
// qtyが1未満なら1として扱う。
func (c *Cart) Add(p model.Product, qty int64) {
	if qty < 1 {
		qty = 1
	}

	c.mu.Lock()
	if idx := c.indexOf(p.ID); idx >= 0 {
		c.items[idx].Quantity += qty
	} else {
		c.items = append(c.items, model.CartItem{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.UnitPrice,
			Quantity:  qty,
			ImageRef:  p.ImageRef,
		})
	}
	snap := c.commitLocked()
	c.mu.Unlock()

	c.subs.publish(snap)
}

// Remove は明細を削除する。無ければ何もしない。
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	idx := c.indexOf(productID)
	if idx < 0 {
		c.mu.Unlock()
		return
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	snap := c.commitLocked()
	c.mu.Unlock()

	c.subs.publish(snap)
}

// UpdateQuantity は数量を上書きする。0以下なら削除。
func (c *Cart) UpdateQuantity(productID string, qty int64) {
	if qty <= 0 {
		c.Remove(productID)
		return
	}

	c.mu.Lock()
	idx := c.indexOf(productID)
	if idx < 0 || c.items[idx].Quantity == qty {
		c.mu.Unlock()
		return
	}
	c.items[idx].Quantity = qty
	snap := c.commitLocked()
	c.mu.Unlock()

	c.subs.publish(snap)
}

// Clear は全明細を削除する。
func (c *Cart) Clear() {
	c.mu.Lock()
	if len(c.items) == 0 {
		c.mu.Unlock()
		return
	}
	c.items = []model.CartItem{}
	snap := c.commitLocked()
	c.mu.Unlock()

	c.subs.publish(snap)
}

// Subtract は注文済みの数量だけ差し引く。0以下になった明細は削除する。
// 注文中に追加された明細や増えた数量は残る。
func (c *Cart) Subtract(ordered []model.CartItem) {
	c.mu.Lock()
	changed := false
	for _, o := range ordered {
		idx := c.indexOf(o.ProductID)
		if idx < 0 || o.Quantity < 1 {
			continue
		}
		changed = true
		if c.items[idx].Quantity <= o.Quantity {
			c.items = append(c.items[:idx], c.items[idx+1:]...)
			continue
		}
		c.items[idx].Quantity -= o.Quantity
	}
	if !changed {
		c.mu.Unlock()
		return
	}
	snap := c.commitLocked()
	c.mu.Unlock()

	c.subs.publish(snap)
}

// Total は毎回明細から計算し直す。
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalOf(c.items)
}

// Count は数量の合計（バッジ表示用）。
func (c *Cart) Count() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return countOf(c.items)
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) Items() []model.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneCartItems(c.items)
}

func (c *Cart) Snapshot() CartSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Restore は保存済みの状態を読み込む。購読者には通知しない。
func (c *Cart) Restore(snap CartSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = c.items[:0]
	for _, it := range snap.Items {
		if it.ProductID == "" || it.Quantity < 1 || c.indexOf(it.ProductID) >= 0 {
			continue
		}
		c.items = append(c.items, it)
	}
	if snap.Version > c.version {
		c.version = snap.Version
	}
}

func (c *Cart) indexOf(productID string) int {
	for i, it := range c.items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) commitLocked() CartSnapshot {
	c.version++
	return c.snapshotLocked()
}

func (c *Cart) snapshotLocked() CartSnapshot {
	return CartSnapshot{
		Version: c.version,
		Items:   cloneCartItems(c.items),
		Total:   totalOf(c.items),
		Count:   countOf(c.items),
	}
}

func totalOf(items []model.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func countOf(items []model.CartItem) int64 {
	var n int64
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func cloneCartItems(items []model.CartItem) []model.CartItem {
	out := make([]model.CartItem, len(items))
	copy(out, items)
	return out
}
