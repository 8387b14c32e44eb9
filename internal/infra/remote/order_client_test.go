package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/gateway"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() model.Order {
	return model.Order{
		ID: "8f1f5c1e-0000-4000-8000-000000000001",
		Customer: model.Customer{
			Name:    "Hanako",
			Email:   "hanako@example.com",
			Address: "1-1 Chiyoda, Tokyo",
		},
		Items: []model.OrderItem{
			{ProductID: "p1", Name: "Beans", UnitPrice: decimal.RequireFromString("12.5"), Quantity: 2, Subtotal: decimal.NewFromInt(25)},
		},
		Total:     decimal.NewFromInt(25),
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestOrderClient_Create(t *testing.T) {
	var gotPath, gotKey, gotAuth, gotPrefer string
	var gotRow map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get(gateway.APIKeyHeader)
		gotAuth = r.Header.Get("Authorization")
		gotPrefer = r.Header.Get("Prefer")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotRow)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewOrderClient(srv.Client(), gateway.Upstream{BaseURL: srv.URL, APIKey: "service-key"}, "")

	err := c.Create(context.Background(), sampleOrder())
	require.NoError(t, err)

	assert.Equal(t, "/rest/v1/orders", gotPath)
	assert.Equal(t, "service-key", gotKey)
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "return=minimal", gotPrefer)
	assert.Equal(t, "hanako@example.com", gotRow["customer_email"])
	assert.Equal(t, "25.00", gotRow["total"])
}

func TestOrderClient_CreateRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"duplicate key"}`))
	}))
	defer srv.Close()

	c := NewOrderClient(srv.Client(), gateway.Upstream{BaseURL: srv.URL}, "orders")

	err := c.Create(context.Background(), sampleOrder())

	var se *gateway.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusConflict, se.Status)
}
