package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/state"

	"github.com/jellydator/ttlcache/v3"
)

const defaultSaveTimeout = 5 * time.Second

// Registry はセッションIDごとのSessionを持つTTLキャッシュ。
// 参照されるたびに期限が延び、期限切れで保存済みスナップショットごと消える。
type Registry struct {
	cache     *ttlcache.Cache[string, *Session]
	snapshots repo.SessionSnapshotRepository
	log       *slog.Logger
	now       func() time.Time

	saveTimeout time.Duration

	// キャッシュ未登録時の復元を直列化する
	mu sync.Mutex
}

func NewRegistry(snapshots repo.SessionSnapshotRepository, ttl time.Duration, log *slog.Logger) *Registry {
	r := &Registry{
		cache: ttlcache.New[string, *Session](
			ttlcache.WithTTL[string, *Session](ttl),
		),
		snapshots:   snapshots,
		log:         log,
		now:         time.Now,
		saveTimeout: defaultSaveTimeout,
	}
	r.cache.OnEviction(r.onEviction)
	return r
}

// Get はセッションを返す。キャッシュに無ければ保存済みスナップショットから作り直す。
// スナップショットも無ければ空のセッションになる。
func (r *Registry) Get(ctx context.Context, id string) (*Session, error) {
	if item := r.cache.Get(id); item != nil {
		return item.Value(), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	//待っている間に他のリクエストが作っていればそれを使う
	if item := r.cache.Get(id); item != nil {
		return item.Value(), nil
	}

	rows, err := r.snapshots.ListBySession(ctx, id)
	if err != nil {
		r.log.ErrorContext(ctx, "session snapshot load failed", slog.String("session_id", id), slog.Any("err", err))
		return nil, fmt.Errorf("load session snapshots: %w", err)
	}

	s := newSession(id, r.now())
	for _, row := range rows {
		if err := restore(s, row); err != nil {
			//壊れた行は捨てて空から始める
			r.log.WarnContext(ctx, "session snapshot skipped",
				slog.String("session_id", id),
				slog.String("kind", string(row.Kind)),
				slog.Any("err", err),
			)
		}
	}

	r.attach(s)
	r.cache.Set(id, s, ttlcache.DefaultTTL)

	if len(rows) > 0 {
		r.log.InfoContext(ctx, "session restored", slog.String("session_id", id), slog.Int("snapshots", len(rows)))
	}
	return s, nil
}

func (r *Registry) Len() int {
	return r.cache.Len()
}

// DeleteExpired は期限切れのセッションを今すぐ破棄する。
func (r *Registry) DeleteExpired() {
	r.cache.DeleteExpired()
}

// Start は期限切れ掃除のループ。Stopまでブロックする。
func (r *Registry) Start() {
	r.cache.Start()
}

func (r *Registry) Stop() {
	r.cache.Stop()
}

// 変更のたびに最新状態を保存する購読を付ける
func (r *Registry) attach(s *Session) {
	unsubCart := s.Cart.Subscribe(func(snap state.CartSnapshot) {
		r.save(s.ID, model.SnapshotKindCart, snap.Version, snap)
	})
	unsubWishlist := s.Wishlist.Subscribe(func(snap state.WishlistSnapshot) {
		r.save(s.ID, model.SnapshotKindWishlist, snap.Version, snap)
	})
	s.unsubscribe = append(s.unsubscribe, unsubCart, unsubWishlist)
}

func (r *Registry) save(sessionID string, kind model.SnapshotKind, version uint64, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		r.log.Error("session snapshot encode failed", slog.String("session_id", sessionID), slog.Any("err", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.saveTimeout)
	defer cancel()

	err = r.snapshots.Save(ctx, model.SessionSnapshot{
		SessionID: sessionID,
		Kind:      kind,
		Version:   version,
		Payload:   string(payload),
		UpdatedAt: r.now(),
	})
	if err != nil {
		r.log.Warn("session snapshot save failed",
			slog.String("session_id", sessionID),
			slog.String("kind", string(kind)),
			slog.Any("err", err),
		)
	}
}

func (r *Registry) onEviction(ctx context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, *Session]) {
	s := item.Value()
	s.Close()

	if reason != ttlcache.EvictionReasonExpired {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, r.saveTimeout)
	defer cancel()

	if err := r.snapshots.DeleteBySession(ctx, s.ID); err != nil {
		r.log.Warn("session snapshot delete failed", slog.String("session_id", s.ID), slog.Any("err", err))
		return
	}
	r.log.Info("session expired", slog.String("session_id", s.ID))
}

func restore(s *Session, row model.SessionSnapshot) error {
	switch row.Kind {
	case model.SnapshotKindCart:
		var snap state.CartSnapshot
		if err := json.Unmarshal([]byte(row.Payload), &snap); err != nil {
			return err
		}
		snap.Version = row.Version
		s.Cart.Restore(snap)
	case model.SnapshotKindWishlist:
		var snap state.WishlistSnapshot
		if err := json.Unmarshal([]byte(row.Payload), &snap); err != nil {
			return err
		}
		snap.Version = row.Version
		s.Wishlist.Restore(snap)
	default:
		return fmt.Errorf("unknown snapshot kind %q", row.Kind)
	}
	return nil
}
