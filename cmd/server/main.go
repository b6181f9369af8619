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

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/giftpool/internal/config"
	"github.com/mmynk/giftpool/internal/gateway"
	"github.com/mmynk/giftpool/internal/middleware"
	"github.com/mmynk/giftpool/internal/notifier"
	"github.com/mmynk/giftpool/internal/scheduler"
	"github.com/mmynk/giftpool/internal/service"
	"github.com/mmynk/giftpool/internal/storage/sqlite"
	"github.com/mmynk/giftpool/internal/web"
	"github.com/mmynk/giftpool/pkg/logging"
)

func main() {
	logging.Setup()
	cfg := config.Load()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	gw := newGateway(cfg)
	mail := newNotifier(cfg)

	groups := service.NewGroupService(store, gw, mail, cfg.BaseURL)
	reconciler := service.NewReconciler(store, gw, mail)
	reminders := service.NewReminderService(store, mail)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Daily reminder sweep, independent of request handling.
	sched := scheduler.New(ctx)
	if err := sched.Add(cfg.ReminderSpec, "reminder-sweep", func(ctx context.Context) {
		if _, err := reminders.Sweep(ctx); err != nil {
			slog.Error("Reminder sweep failed", "error", err)
		}
	}); err != nil {
		slog.Error("Failed to schedule reminder sweep", "spec", cfg.ReminderSpec, "error", err)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	handler := middleware.Logging(middleware.CORS(web.New(groups, reconciler, cfg.StaticPath).Handler()))

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	slog.Info("Server starting", "address", cfg.Addr, "base_url", cfg.BaseURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

// newGateway builds the PayPal gateway, or the disabled one when no
// credentials are configured. Group creation still works without a provider;
// participants just get placeholder links and payments are confirmed
// manually.
func newGateway(cfg *config.Config) gateway.PaymentGateway {
	if cfg.PayPal.ClientID == "" || cfg.PayPal.Secret == "" {
		slog.Warn("PayPal credentials not configured, payment links disabled")
		return gateway.Disabled{}
	}
	gw, err := gateway.NewPayPal(cfg.PayPal.ClientID, cfg.PayPal.Secret, cfg.PayPal.APIBase, cfg.BaseURL)
	if err != nil {
		slog.Warn("Failed to create PayPal gateway, payment links disabled", "error", err)
		return gateway.Disabled{}
	}
	slog.Info("PayPal gateway initialized")
	return gw
}

// newNotifier builds the SMTP notifier, or the no-op one when mail is not
// configured.
func newNotifier(cfg *config.Config) notifier.Notifier {
	if cfg.SMTP.Username == "" || cfg.SMTP.Password == "" {
		slog.Warn("SMTP credentials not configured, notifications disabled")
		return notifier.Noop{}
	}
	slog.Info("SMTP notifier initialized", "host", cfg.SMTP.Host)
	return notifier.NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
}
