package server

import (
	"errors"
	"log/slog"
	"net/http"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// New はミドルウェアとルートを登録したechoを返す。
func New(cfg config.Config, log *slog.Logger, sessionMW echo.MiddlewareFunc, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(log)

	e.Use(echomw.Recover())
	e.Use(requestLogger(log))
	e.Use(middleware.CORS([]string{cfg.SiteURL}, handler.ProxyPrefix))

	RegisterRoutes(e, sessionMW, h)
	return e
}

// アクセスログをslogへ
func requestLogger(log *slog.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}

			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("err", v.Error.Error()))
			}

			log.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}

// echo内部のエラー（404/405/panic）も {"error": "..."} にそろえる
func errorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := "internal error"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(he.Code)
			}
		}

		//500
		if status >= http.StatusInternalServerError {
			log.ErrorContext(c.Request().Context(), "unhandled error", slog.Any("err", err))
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, handler.ErrorResponse{Error: msg})
	}
}
