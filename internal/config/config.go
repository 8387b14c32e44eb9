package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/kong"
)

// Configはアプリ全体の設定
// 値は環境変数（.env可）かフラグで渡す。
type Config struct {
	Port     string `help:"サーバーポート" env:"PORT" default:"8080"`
	GoEnv    string `help:"dev/prod/test" env:"GO_ENV" default:"dev" enum:"dev,prod,test"`
	LogLevel string `help:"debug/info/warn/error" env:"LOG_LEVEL" default:"info"`

	SiteURL string `help:"ストアフロントのオリジン（CORSの許可元）" env:"SITE_URL" required:""`

	// リモートデータストア
	UpstreamURL     string        `help:"リモートデータストアのURL" env:"SUPABASE_URL" required:""`
	ServiceKey      string        `help:"サービスキー（サーバー側のみ）" env:"SUPABASE_SERVICE_KEY" required:""`
	OrdersTable     string        `help:"注文テーブル名" env:"ORDERS_TABLE" default:"orders"`
	UpstreamTimeout time.Duration `help:"外部呼び出しのタイムアウト" env:"UPSTREAM_TIMEOUT" default:"30s"`

	SessionSecret string        `help:"セッションJWT署名シークレット" env:"SESSION_SECRET" required:""`
	SessionTTL    time.Duration `help:"セッションの有効期間" env:"SESSION_TTL" default:"720h"`

	GeocodingURL       string `help:"ジオコーディングAPIのURL" env:"GEOCODING_URL" default:"https://nominatim.openstreetmap.org"`
	GeocodingUserAgent string `help:"ジオコーディングAPIに送るUser-Agent" env:"GEOCODING_USER_AGENT" default:"storefront/1.0"`
	GeocodingLimit     int    `help:"候補の最大件数" env:"GEOCODING_LIMIT" default:"5"`

	SendGridAPIKey string `help:"SendGrid APIキー" env:"SENDGRID_API_KEY"`
	MailFrom       string `help:"送信元アドレス" env:"MAIL_FROM" default:"no-reply@example.com"`
	StoreName      string `help:"メールに出す店名" env:"STORE_NAME" default:"Storefront"`

	DatabaseURL string `help:"ローカルDBのDSN（空ならPOSTGRES_*）" env:"DATABASE_URL"`
}

// Loadは環境変数とフラグ
func Load(args []string) (Config, error) {
	var cfg Config

	parser, err := kong.New(&cfg,
		kong.Name("storefront"),
		kong.Description("storefront API server"),
	)
	if err != nil {
		return Config{}, err
	}
	if _, err := parser.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.SiteURL = strings.TrimRight(strings.TrimSpace(cfg.SiteURL), "/")
	cfg.UpstreamURL = strings.TrimRight(strings.TrimSpace(cfg.UpstreamURL), "/")

	//必須チェック（空文字の環境変数も未設定として扱う）
	if cfg.SiteURL == "" {
		return Config{}, fmt.Errorf("SITE_URL is required")
	}
	if cfg.UpstreamURL == "" {
		return Config{}, fmt.Errorf("SUPABASE_URL is required")
	}
	if cfg.ServiceKey == "" {
		return Config{}, fmt.Errorf("SUPABASE_SERVICE_KEY is required")
	}
	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}
	if cfg.UpstreamTimeout <= 0 {
		return Config{}, fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive")
	}

	return cfg, nil
}

// Addr は ":8080" 形式
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}
