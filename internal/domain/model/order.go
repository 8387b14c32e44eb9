package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文者の連絡先
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address"`
}

// チェックアウト時にカートから作る注文。
// リモートデータストアに保存した後は変更しない。
type Order struct {
	ID        string          `json:"id"`
	Customer  Customer        `json:"customer"`
	Items     []OrderItem     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}
