package handler

import (
	"embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed static/sw.js static/offline.html
var offlineAssets embed.FS

// オフライン用のワーカーとフォールバックページ
type OfflineHandler struct{}

func NewOfflineHandler() *OfflineHandler {
	return &OfflineHandler{}
}

func (h *OfflineHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/sw.js", h.asset("static/sw.js", "text/javascript; charset=utf-8"))
	e.GET("/offline.html", h.asset("static/offline.html", echo.MIMETextHTMLCharsetUTF8))
}

func (h *OfflineHandler) asset(name, contentType string) echo.HandlerFunc {
	return func(c echo.Context) error {
		b, err := offlineAssets.ReadFile(name)
		if err != nil {
			return writeError(c, err)
		}

		//ワーカーは毎回更新を確認させる
		c.Response().Header().Set("Cache-Control", "no-cache")
		return c.Blob(http.StatusOK, contentType, b)
	}
}
