package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

var errInvalidOrder = errors.New("invalid order")

// クライアントが送る注文はidが数値だったり、単価がpriceだったりする
type receiptOrderView struct {
	ID        looseString         `json:"id"`
	Customer  receiptCustomerView `json:"customer"`
	Items     []receiptItemView   `json:"items"`
	Total     *decimal.Decimal    `json:"total"`
	CreatedAt string              `json:"createdAt"`
}

type receiptCustomerView struct {
	Name    looseString `json:"name"`
	Email   looseString `json:"email"`
	Phone   looseString `json:"phone"`
	Address looseString `json:"address"`
}

type receiptItemView struct {
	ProductID looseString      `json:"productId"`
	ID        looseString      `json:"id"`
	Name      looseString      `json:"name"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
	Price     *decimal.Decimal `json:"price"`
	Quantity  json.Number      `json:"quantity"`
	Subtotal  *decimal.Decimal `json:"subtotal"`
}

// 文字列でも数値でも受ける
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = looseString(n.String())
	return nil
}

// decodeReceiptOrder は未指定(nullを含む)なら nil, nil を返す。
func decodeReceiptOrder(raw json.RawMessage) (*model.Order, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] != '{' {
		return nil, errInvalidOrder
	}

	var v receiptOrderView
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, errInvalidOrder
	}

	order := &model.Order{
		ID: string(v.ID),
		Customer: model.Customer{
			Name:    string(v.Customer.Name),
			Email:   string(v.Customer.Email),
			Phone:   string(v.Customer.Phone),
			Address: string(v.Customer.Address),
		},
		Items: make([]model.OrderItem, 0, len(v.Items)),
	}
	if t, err := time.Parse(time.RFC3339, v.CreatedAt); err == nil {
		order.CreatedAt = t
	}

	sum := decimal.Zero
	for _, it := range v.Items {
		item := it.toOrderItem()
		sum = sum.Add(item.Subtotal)
		order.Items = append(order.Items, item)
	}

	// totalが無ければ明細から出す
	if v.Total != nil {
		order.Total = *v.Total
	} else {
		order.Total = sum
	}
	return order, nil
}

func (it receiptItemView) toOrderItem() model.OrderItem {
	id := string(it.ProductID)
	if id == "" {
		id = string(it.ID)
	}

	price := decimal.Zero
	switch {
	case it.UnitPrice != nil:
		price = *it.UnitPrice
	case it.Price != nil:
		price = *it.Price
	}

	qty := int64(1)
	if it.Quantity != "" {
		if n, err := it.Quantity.Int64(); err == nil {
			qty = n
		} else if f, err := it.Quantity.Float64(); err == nil {
			qty = int64(f)
		}
	}

	subtotal := price.Mul(decimal.NewFromInt(qty))
	if it.Subtotal != nil {
		subtotal = *it.Subtotal
	}

	return model.OrderItem{
		ProductID: id,
		Name:      string(it.Name),
		UnitPrice: price,
		Quantity:  qty,
		Subtotal:  subtotal,
	}
}
