package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// セッションのカート/ウィッシュリストの保存・復元の約束。
type SessionSnapshotRepository interface {
	// Versionが保存済みより大きいときだけ上書きする
	Save(ctx context.Context, s model.SessionSnapshot) error
	ListBySession(ctx context.Context, sessionID string) ([]model.SessionSnapshot, error)
	DeleteBySession(ctx context.Context, sessionID string) error
}
