package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type emailDeliveryGormRepository struct {
	db *gorm.DB
}

func NewEmailDeliveryGormRepository(db *gorm.DB) repo.EmailDeliveryRepository {
	return &emailDeliveryGormRepository{db: db}
}

func (r *emailDeliveryGormRepository) Create(ctx context.Context, d model.EmailDelivery) error {
	return r.db.WithContext(ctx).Create(&d).Error
}
