package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Search(ctx context.Context, query string) (json.RawMessage, error) {
	args := m.Called(ctx, query)
	out, _ := args.Get(0).(json.RawMessage)
	return out, args.Error(1)
}

func (m *MockGeocoder) Reverse(ctx context.Context, lat, lng float64) (json.RawMessage, error) {
	args := m.Called(ctx, lat, lng)
	out, _ := args.Get(0).(json.RawMessage)
	return out, args.Error(1)
}

type MockReceiptSender struct{ mock.Mock }

func (m *MockReceiptSender) SendReceipt(ctx context.Context, to string, order model.Order, receiptURL string) error {
	args := m.Called(ctx, to, order, receiptURL)
	return args.Error(0)
}

type MockEmailDeliveryRepo struct{ mock.Mock }

func (m *MockEmailDeliveryRepo) Create(ctx context.Context, d model.EmailDelivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

type MockOrderRepo struct{ mock.Mock }

func (m *MockOrderRepo) Create(ctx context.Context, o model.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

var _ repo.EmailDeliveryRepository = (*MockEmailDeliveryRepo)(nil)
var _ repo.OrderRepository = (*MockOrderRepo)(nil)

// =====================
// helper
// =====================

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fixedID string

func (g fixedID) NewID() string { return string(g) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func assertHTTPError(t *testing.T, err error, status int, message string) {
	t.Helper()

	he, ok := AsHTTPError(err)
	if !ok {
		t.Errorf("expected HTTPError, got %v", err)
		return
	}
	if he.Status != status || he.Message != message {
		t.Errorf("got (%d, %q), want (%d, %q)", he.Status, he.Message, status, message)
	}
}
