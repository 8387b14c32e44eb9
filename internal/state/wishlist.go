package state

import (
	"sync"
	"time"

	"storefront/internal/domain/model"
)

type WishlistSnapshot struct {
	Version uint64               `json:"-"`
	Items   []model.WishlistItem `json:"items"`
	Count   int                  `json:"count"`
}

// Wishlist はセッションごとのウィッシュリスト（集合）。
type Wishlist struct {
	mu      sync.Mutex
	items   []model.WishlistItem
	version uint64
	now     func() time.Time

	subs subscribers[WishlistSnapshot]
}

func NewWishlist() *Wishlist {
	return &Wishlist{
		items: []model.WishlistItem{},
		now:   time.Now,
	}
}

func (w *Wishlist) Subscribe(fn func(WishlistSnapshot)) func() {
	return w.subs.add(fn)
}

// Add は未登録なら追加してtrueを返す。
func (w *Wishlist) Add(p model.Product) bool {
	w.mu.Lock()
	if w.indexOf(p.ID) >= 0 {
		w.mu.Unlock()
		return false
	}
	w.items = append(w.items, model.WishlistItem{
		ProductID: p.ID,
		Product:   p,
		AddedAt:   w.now(),
	})
	snap := w.commitLocked()
	w.mu.Unlock()

	w.subs.publish(snap)
	return true
}

// Remove は登録済みなら削除してtrueを返す。
func (w *Wishlist) Remove(productID string) bool {
	w.mu.Lock()
	idx := w.indexOf(productID)
	if idx < 0 {
		w.mu.Unlock()
		return false
	}
	w.items = append(w.items[:idx], w.items[idx+1:]...)
	snap := w.commitLocked()
	w.mu.Unlock()

	w.subs.publish(snap)
	return true
}

// Toggle は無ければ追加、あれば削除し、操作後に含まれているかを返す。
func (w *Wishlist) Toggle(p model.Product) bool {
	w.mu.Lock()
	in := false
	if idx := w.indexOf(p.ID); idx >= 0 {
		w.items = append(w.items[:idx], w.items[idx+1:]...)
	} else {
		w.items = append(w.items, model.WishlistItem{
			ProductID: p.ID,
			Product:   p,
			AddedAt:   w.now(),
		})
		in = true
	}
	snap := w.commitLocked()
	w.mu.Unlock()

	w.subs.publish(snap)
	return in
}

func (w *Wishlist) Contains(productID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.indexOf(productID) >= 0
}

func (w *Wishlist) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.items)
}

func (w *Wishlist) Items() []model.WishlistItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	return cloneWishlistItems(w.items)
}

func (w *Wishlist) Snapshot() WishlistSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

// Restore は保存済みの状態を読み込む。購読者には通知しない。
func (w *Wishlist) Restore(snap WishlistSnapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.items = w.items[:0]
	for _, it := range snap.Items {
		if it.ProductID == "" || w.indexOf(it.ProductID) >= 0 {
			continue
		}
		w.items = append(w.items, it)
	}
	if snap.Version > w.version {
		w.version = snap.Version
	}
}

func (w *Wishlist) indexOf(productID string) int {
	for i, it := range w.items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

func (w *Wishlist) commitLocked() WishlistSnapshot {
	w.version++
	return w.snapshotLocked()
}

func (w *Wishlist) snapshotLocked() WishlistSnapshot {
	return WishlistSnapshot{
		Version: w.version,
		Items:   cloneWishlistItems(w.items),
		Count:   len(w.items),
	}
}

func cloneWishlistItems(items []model.WishlistItem) []model.WishlistItem {
	out := make([]model.WishlistItem, len(items))
	copy(out, items)
	return out
}
