package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sessionSnapshotGormRepository struct {
	db *gorm.DB
}

func NewSessionSnapshotGormRepository(db *gorm.DB) repo.SessionSnapshotRepository {
	return &sessionSnapshotGormRepository{db: db}
}

// (session_id, kind) でUpsert。古いVersionでは上書きしない。
func (r *sessionSnapshotGormRepository) Save(ctx context.Context, s model.SessionSnapshot) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"version", "payload", "updated_at"}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Expr{SQL: "session_snapshots.version < excluded.version"},
			}},
		}).
		Create(&s).Error
}

func (r *sessionSnapshotGormRepository) ListBySession(ctx context.Context, sessionID string) ([]model.SessionSnapshot, error) {
	var rows []model.SessionSnapshot
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("kind asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *sessionSnapshotGormRepository) DeleteBySession(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&model.SessionSnapshot{}).Error
}
