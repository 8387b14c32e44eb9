package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/gateway"
	repo "storefront/internal/repository"
)

// リモートデータストアの注文テーブルの1行
type orderRow struct {
	ID              string            `json:"id"`
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerPhone   string            `json:"customer_phone,omitempty"`
	ShippingAddress string            `json:"shipping_address"`
	Items           []model.OrderItem `json:"items"`
	Total           string            `json:"total"`
	CreatedAt       time.Time         `json:"created_at"`
}

// OrderClient は注文をリモートデータストアのREST APIに保存する。
// 転送はプロキシと同じ gateway.Forward を使う。
type OrderClient struct {
	doer     gateway.Doer
	upstream gateway.Upstream
	table    string
}

var _ repo.OrderRepository = (*OrderClient)(nil)

func NewOrderClient(doer gateway.Doer, upstream gateway.Upstream, table string) *OrderClient {
	if table == "" {
		table = "orders"
	}
	return &OrderClient{doer: doer, upstream: upstream, table: table}
}

func (c *OrderClient) Create(ctx context.Context, o model.Order) error {
	row := orderRow{
		ID:              o.ID,
		CustomerName:    o.Customer.Name,
		CustomerEmail:   o.Customer.Email,
		CustomerPhone:   o.Customer.Phone,
		ShippingAddress: o.Customer.Address,
		Items:           o.Items,
		Total:           o.Total.StringFixed(2),
		CreatedAt:       o.CreatedAt.UTC(),
	}

	b, err := json.Marshal(row)
	if err != nil {
		return err
	}

	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Authorization", "Bearer "+c.upstream.APIKey)
	h.Set("Prefer", "return=minimal")

	out, err := gateway.Forward(ctx, c.doer, c.upstream, gateway.ForwardRequest{
		Method: http.MethodPost,
		Path:   "rest/v1/" + c.table,
		Header: h,
		Body:   b,
	})
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	if out.Status < 200 || out.Status >= 300 {
		return &gateway.StatusError{Status: out.Status, Body: strings.TrimSpace(string(out.Body))}
	}
	return nil
}
