package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/gateway"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	"storefront/internal/infra/remote"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/logger"
	"storefront/internal/mail"
	"storefront/internal/middleware"
	"storefront/internal/server"
	"storefront/internal/session"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//.envは任意（本番は環境変数）
	_ = godotenv.Load()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{
		Service:   "storefront",
		Env:       cfg.GoEnv,
		Level:     cfg.LogLevel,
		AddSource: !cfg.IsProd(),
	})

	//DB接続
	gormDB, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}
	if err := db.Migrate(gormDB); err != nil {
		panic(err)
	}

	//外部呼び出しは1つのclientを共有
	client := &http.Client{
		Timeout:   cfg.UpstreamTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	upstream := gateway.Upstream{
		BaseURL:     cfg.UpstreamURL,
		APIKey:      cfg.ServiceKey,
		AllowOrigin: cfg.SiteURL,
	}

	//Repository生成
	snapshotRepo := infraRepo.NewSessionSnapshotGormRepository(gormDB)
	deliveryRepo := infraRepo.NewEmailDeliveryGormRepository(gormDB)
	orderRepo := remote.NewOrderClient(client, upstream, cfg.OrdersTable)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	mailer := mail.NewReceiptMailer(mail.NewSendGridClient(cfg.SendGridAPIKey), cfg.MailFrom, cfg.StoreName)
	geocoder := gateway.NewGeocodeClient(client, cfg.GeocodingURL, cfg.GeocodingUserAgent, cfg.GeocodingLimit)

	//Usecase生成
	receiptUC := usecase.NewReceiptUsecase(mailer, deliveryRepo, clock, log)
	checkoutUC := usecase.NewCheckoutUsecase(orderRepo, receiptUC, idGen, clock, log)
	geocodeUC := usecase.NewGeocodeUsecase(geocoder, log)

	//セッション
	registry := session.NewRegistry(snapshotRepo, cfg.SessionTTL, log)
	tokens := session.NewTokenIssuer(cfg.SessionSecret, cfg.SessionTTL)
	sessionMW := middleware.SessionJWT(registry, tokens, middleware.SessionOptions{
		NewID:  idGen.NewID,
		Secure: cfg.IsProd(),
	})

	//Handler生成
	e := server.New(cfg, log, sessionMW, server.Handlers{
		Proxy:        handler.NewProxyHandler(client, upstream, log),
		Geocode:      handler.NewGeocodeHandler(geocodeUC),
		ReceiptEmail: handler.NewReceiptEmailHandler(receiptUC),
		Cart:         handler.NewCartHandler(usecase.NewCartUsecase()),
		Wishlist:     handler.NewWishlistHandler(usecase.NewWishlistUsecase()),
		Checkout:     handler.NewCheckoutHandler(checkoutUC),
		Offline:      handler.NewOfflineHandler(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	//期限切れセッションの掃除
	g.Go(func() error {
		registry.Start()
		return nil
	})

	//Server起動
	g.Go(func() error {
		log.Info("server starting", slog.String("addr", cfg.Addr()))
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("server shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		registry.Stop()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", slog.Any("err", err))
		os.Exit(1)
	}
}
