package model

import "github.com/shopspring/decimal"

// カートの明細
// 追加時点の価格を保持する（同一商品の再追加では数量だけ増える）。
type CartItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int64           `json:"quantity"`
	ImageRef  string          `json:"imageRef,omitempty"`
}

// 単価×数量
func (i CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}
