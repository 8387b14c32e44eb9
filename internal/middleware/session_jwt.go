package middleware

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/session"

	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "sf_session"
	CtxSessionKey     = "session" // *session.Session
)

type SessionStore interface {
	Get(ctx context.Context, id string) (*session.Session, error)
}

type SessionTokens interface {
	Issue(sessionID string) (string, time.Time, error)
	Parse(raw string) (string, error)
}

type SessionOptions struct {
	// セッションIDの採番（uuid）
	NewID func() string
	// HTTPSのときだけtrue
	Secure bool
}

// SessionJWT はCookieのJWTからセッションを引き当てる。
// 無い/無効なら新しいセッションを始める。トークンは毎回期限を延ばして再発行する。
func SessionJWT(store SessionStore, tokens SessionTokens, opts SessionOptions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			//Cookieから既存のセッションIDを取り出す
			id := ""
			if ck, err := req.Cookie(SessionCookieName); err == nil && ck.Value != "" {
				if sub, err := tokens.Parse(ck.Value); err == nil {
					id = sub
				}
			}
			if id == "" {
				id = opts.NewID()
			}

			s, err := store.Get(req.Context(), id)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}

			raw, exp, err := tokens.Issue(s.ID)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}
			c.SetCookie(&http.Cookie{
				Name:     SessionCookieName,
				Value:    raw,
				Path:     "/",
				Expires:  exp,
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			//contextへ保存
			c.Set(CtxSessionKey, s)

			return next(c)
		}
	}
}

// SessionFromContext はSessionJWTが入れたセッションを返す。
func SessionFromContext(c echo.Context) (*session.Session, bool) {
	s, ok := c.Get(CtxSessionKey).(*session.Session)
	return s, ok && s != nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
