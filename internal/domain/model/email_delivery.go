package model

import "time"

type EmailDeliveryStatus string

const (
	EmailDeliverySent   EmailDeliveryStatus = "SENT"
	EmailDeliveryFailed EmailDeliveryStatus = "FAILED"
)

// 領収書メールの送信記録。
// 失敗してもレスポンスは200なので、原因はここに残す。
type EmailDelivery struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//送信先
	Recipient string `gorm:"type:varchar(255);not null;index" json:"recipient"`

	//対象の注文ID（無い場合は空）
	OrderID string `gorm:"type:varchar(64);index" json:"order_id"`

	Status EmailDeliveryStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	//失敗時のエラー内容
	Error string `gorm:"type:text" json:"error"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
