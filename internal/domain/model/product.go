package model

import "github.com/shopspring/decimal"

// カート・ウィッシュリストに入れる時点の商品情報。
// 商品マスタ自体はリモートデータストアにある。
type Product struct {
	ID        string            `json:"productId"`
	Name      string            `json:"name"`
	UnitPrice decimal.Decimal   `json:"unitPrice"`
	ImageRef  string            `json:"imageRef,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}
