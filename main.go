package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/house-rentals/internal/config"
	"github.com/msomdec/house-rentals/internal/domain"
	"github.com/msomdec/house-rentals/internal/handler"
	"github.com/msomdec/house-rentals/internal/payment/razorpay"
	"github.com/msomdec/house-rentals/internal/repository/postgres"
	"github.com/msomdec/house-rentals/internal/repository/sqlite"
	"github.com/msomdec/house-rentals/internal/service"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open database", "driver", cfg.DatabaseDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied", "driver", cfg.DatabaseDriver)

	var gatewayOpts []razorpay.Option
	if cfg.RazorpayAPIURL != "" {
		gatewayOpts = append(gatewayOpts, razorpay.WithBaseURL(cfg.RazorpayAPIURL))
	}
	gateway := razorpay.New(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, gatewayOpts...)
	if cfg.RazorpayKeyID == "" {
		slog.Warn("RAZORPAY_KEY_ID is not set; the checkout widget will not open")
	} else if !gateway.HasSecret() {
		slog.Warn("RAZORPAY_KEY_SECRET is not set; payments are recorded without signature verification")
	}

	loginLimiter := service.PerMinute(cfg.LoginRatePerMinute)
	defer loginLimiter.Stop()

	services := handler.Services{
		DB:       store,
		Auth:     service.NewAuthService(store.Users(), cfg.JWTSecret, cfg.BcryptCost),
		Listings: service.NewListingService(store.Listings()),
		Profiles: service.NewProfileService(store.Profiles()),
		Payments: service.NewPaymentService(store.Payments(), store.Listings(), gateway, service.PaymentConfig{
			Amount:   cfg.RentAmountPaise,
			Currency: cfg.RentCurrency,
		}),
		Images:       service.NewImageService(store.FileStore()),
		LoginLimiter: loginLimiter,
		CookieSecure: cfg.CookieSecure,
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, services)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.Instrument(handler.SecurityHeaders(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func openStore(cfg *config.Config) (domain.Store, error) {
	if cfg.DatabaseDriver == config.DriverPostgres {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return postgres.New(ctx, cfg.DatabaseURL)
	}
	return sqlite.New(cfg.DatabasePath)
}
