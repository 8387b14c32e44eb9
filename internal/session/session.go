// Package session はセッションごとのカート/ウィッシュリストを保持する。
package session

import (
	"sync"
	"time"

	"storefront/internal/state"
)

// Session は1訪問者分の状態。レジストリが作り、期限切れで破棄する。
type Session struct {
	ID        string
	Cart      *state.Cart
	Wishlist  *state.Wishlist
	CreatedAt time.Time

	closeOnce   sync.Once
	unsubscribe []func()
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Cart:      state.NewCart(),
		Wishlist:  state.NewWishlist(),
		CreatedAt: now,
	}
}

// Close は登録済みの購読をすべて解除する。2回目以降は何もしない。
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		for _, fn := range s.unsubscribe {
			fn()
		}
		s.unsubscribe = nil
	})
}
