package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 注文はリモートデータストアに保存する。作成のみ。
type OrderRepository interface {
	Create(ctx context.Context, o model.Order) error
}
