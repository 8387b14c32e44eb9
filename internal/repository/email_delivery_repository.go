package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 領収書メールの送信記録。追記のみ。
type EmailDeliveryRepository interface {
	Create(ctx context.Context, d model.EmailDelivery) error
}
