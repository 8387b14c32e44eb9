package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/cors"
)

// CORS はブラウザからの /api 呼び出し用。
// skipPrefix 配下（プロキシ）は自前でCORSヘッダを付けるので通さない。
func CORS(allowOrigins []string, skipPrefix string) echo.MiddlewareFunc {
	c := cors.New(cors.Options{
		AllowedOrigins: allowOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})
	wrap := echo.WrapMiddleware(c.Handler)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		withCORS := wrap(next)
		return func(ctx echo.Context) error {
			if skipPrefix != "" && strings.HasPrefix(ctx.Request().URL.Path, skipPrefix) {
				return next(ctx)
			}
			return withCORS(ctx)
		}
	}
}
