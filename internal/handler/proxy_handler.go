package handler

import (
	"io"
	"log/slog"
	"net/http"

	"storefront/internal/gateway"

	"github.com/labstack/echo/v4"
)

// ProxyPrefix 配下をリモートデータストアへそのまま転送する
const ProxyPrefix = "/api/proxy"

type ProxyHandler struct {
	doer gateway.Doer
	up   gateway.Upstream
	log  *slog.Logger
}

// DI
func NewProxyHandler(doer gateway.Doer, up gateway.Upstream, log *slog.Logger) *ProxyHandler {
	return &ProxyHandler{doer: doer, up: up, log: log}
}

func (h *ProxyHandler) RegisterRoutes(e *echo.Echo) {
	e.Any(ProxyPrefix+"/*", h.forward)
}

func (h *ProxyHandler) forward(c echo.Context) error {
	req := c.Request()

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return h.fail(c, err)
	}

	res, err := gateway.Forward(req.Context(), h.doer, h.up, gateway.ForwardRequest{
		Method:   req.Method,
		Path:     c.Param("*"),
		RawQuery: req.URL.RawQuery,
		Header:   req.Header,
		Body:     body,
	})
	if err != nil {
		return h.fail(c, err)
	}

	//上流のステータスとbodyをそのまま返す
	w := c.Response()
	for k, vs := range res.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(res.Status)
	_, err = w.Write(res.Body)
	return err
}

// ネットワークエラーは500 + CORSヘッダー
func (h *ProxyHandler) fail(c echo.Context, err error) error {
	h.log.ErrorContext(c.Request().Context(), "proxy forward failed",
		slog.String("method", c.Request().Method),
		slog.String("path", c.Param("*")),
		slog.Any("err", err),
	)

	for k, vs := range gateway.CORSHeaders(h.up.AllowOrigin) {
		c.Response().Header()[k] = vs
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}
