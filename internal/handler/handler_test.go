package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/middleware"
	"storefront/internal/session"
	"storefront/internal/state"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// =====================
// helper
// =====================

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

type fixedID string

func (g fixedID) NewID() string { return string(g) }

// セッションをcontextに直接入れる
func withSession(s *session.Session) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.CtxSessionKey, s)
			return next(c)
		}
	}
}

func newTestSession() *session.Session {
	return &session.Session{
		ID:       "0b8f7d2e-1a4c-4c55-9a7e-8f0c2d1e3b4a",
		Cart:     state.NewCart(),
		Wishlist: state.NewWishlist(),
	}
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

// 送信結果を差し替えられる領収書送信
type stubSender struct{ err error }

func (s stubSender) SendReceipt(ctx context.Context, to string, order model.Order, receiptURL string) error {
	return s.err
}

type nopDeliveries struct{}

func (nopDeliveries) Create(ctx context.Context, d model.EmailDelivery) error { return nil }

type stubOrders struct{ err error }

func (s stubOrders) Create(ctx context.Context, o model.Order) error { return s.err }
