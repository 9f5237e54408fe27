package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"display-service/internal/channel"
	"display-service/internal/display"
	"display-service/internal/domain"
	"display-service/internal/http/handlers"
	"display-service/internal/http/httpapi"
	"display-service/internal/infra"
	"display-service/internal/infra/geoip"
	"display-service/internal/middleware"
	"display-service/internal/render"
	"display-service/internal/store"
	"display-service/internal/ws"
)

func main() {
	// Muat .env (opsional)
	_ = godotenv.Load()

	// Konfigurasi & logger
	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis: sumber pesan struk dari agen kasir
	rdb, err := infra.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}
	defer rdb.Close()

	// Riwayat struk: Postgres kalau DATABASE_URL di-set, selain itu file JSON
	history, cleanup, err := newHistory(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure receipt history")
	}
	defer cleanup()

	logLastReceipt(ctx, history, logger)

	// GeoIP opsional untuk deteksi locale
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open geoip database")
	}
	var lookup middleware.CountryLookup
	if resolver != nil {
		lookup = resolver.CountryCode
		if closer, ok := resolver.(io.Closer); ok {
			defer closer.Close()
		}
	}

	renderer, err := render.New(cfg.ShopName)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build card renderer")
	}

	// Papan display + hub websocket
	board := display.NewBoard()
	hub := ws.NewHub(logger)
	go hub.Heartbeat(ctx, cfg.WSPingInterval)

	// Konsumer: langganan kanal order, simpan riwayat, broadcast snapshot
	subscriber := channel.NewSubscriber(rdb, cfg.ReceiptChannel, logger)
	consumer := display.NewConsumer(subscriber, board, history, hub, logger)
	consumerDone := make(chan error, 1)
	go func() { consumerDone <- consumer.Run(ctx) }()

	// App container + router
	app := handlers.NewApp(cfg, logger, board, history, renderer, hub)
	router := httpapi.NewRouter(app, lookup)

	// HTTP server wrapper dari infra
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("display listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-consumerDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("receipt consumer failed")
		}
	}
	stop()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	hub.CloseAll()
	logger.Info().Msg("server stopped")
}

// newHistory memilih penyimpanan riwayat struk. Fungsi cleanup menutup koneksi
// pool kalau Postgres dipakai.
func newHistory(ctx context.Context, cfg *infra.Config, logger infra.Logger) (store.Store, func(), error) {
	if cfg.DatabaseURL != "" {
		pool, err := infra.NewDBPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		runner := infra.NewSQLRunner(pool, logger)
		pgStore, err := store.NewPostgresStore(ctx, runner)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info().Msg("receipt history in postgres")
		return pgStore, pool.Close, nil
	}

	fileStore, err := store.NewFileStore(cfg.ReceiptLogPath, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Str("path", cfg.ReceiptLogPath).Msg("receipt history in json file")
	return fileStore, func() {}, nil
}

// logLastReceipt menampilkan ringkasan struk terakhir saat start.
func logLastReceipt(ctx context.Context, history store.Store, logger infra.Logger) {
	last, err := history.Last(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Info().Msg("no receipt history found")
			return
		}
		logger.Warn().Err(err).Msg("failed to read receipt history")
		return
	}
	logger.Info().
		Str("customer", last.Receipt.Name).
		Str("drink", last.Receipt.DrinkType).
		Time("received_at", last.ReceivedAt).
		Msg("last stored receipt")
}
