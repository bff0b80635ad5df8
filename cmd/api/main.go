package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"aura-ledger/config"
	httpHandler "aura-ledger/internal/adapter/http/handler"
	pgStorage "aura-ledger/internal/adapter/storage/postgres"
	redisStorage "aura-ledger/internal/adapter/storage/redis"
	"aura-ledger/internal/core/domain"
	"aura-ledger/internal/core/ledger"
	"aura-ledger/internal/core/ports"
	"aura-ledger/internal/service"
	"aura-ledger/pkg/logger"
	"aura-ledger/pkg/money"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load(os.Getenv("AURA_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("aura-ledger stopped")
	}
	log.Info().Msg("Server exited")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	if cfg.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Bool("postgres", cfg.Database.Enabled).
		Bool("redis", cfg.Redis.Enabled).
		Msg("Starting aura-ledger")

	ctx := context.Background()

	led, err := newLedger(cfg.Ledger)
	if err != nil {
		return err
	}

	var (
		journal   ports.JournalRepository
		auditRepo ports.AuditRepository
		checkers  []ports.HealthChecker
	)
	if cfg.Database.Enabled {
		if err := pgStorage.Migrate(cfg.Database.DSN(), logger.Component(log, "postgres")); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
		pool, err := pgStorage.NewPool(ctx, cfg.Database, logger.Component(log, "postgres"))
		if err != nil {
			return fmt.Errorf("connecting to PostgreSQL: %w", err)
		}
		defer pool.Close()

		journal = pgStorage.NewJournalRepo(pool)
		auditRepo = pgStorage.NewAuditRepo(pool)
		checkers = append(checkers, pgStorage.NewJournalProbe(pool))
	} else {
		log.Warn().Msg("PostgreSQL disabled, ledger state is memory only")
	}

	var (
		idempCache     ports.IdempotencyCache
		rateLimitStore *redisStorage.RateLimitStore
		publishers     []ports.EventPublisher
	)
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, logger.Component(log, "redis"))
		if err != nil {
			return fmt.Errorf("connecting to Redis: %w", err)
		}
		defer rdb.Close()

		idempCache = redisStorage.NewIdempotencyCache(rdb)
		if cfg.RateLimit.Enabled {
			rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		}
		publishers = append(publishers, redisStorage.NewEventStream(rdb, cfg.Events.Stream, cfg.Events.MaxLen))
		checkers = append(checkers, redisStorage.NewProbe(rdb))
	}

	sigSvc := service.NewHMACSignatureService()
	var notifier *service.WebhookNotifier
	if cfg.Webhook.URL != "" {
		notifier = service.NewWebhookNotifier(cfg.Webhook.URL, cfg.Webhook.Secret, sigSvc,
			&http.Client{Timeout: cfg.Webhook.Timeout}, logger.Component(log, "webhook"))
		publishers = append(publishers, notifier)
	}

	ledgerSvc := service.NewLedgerService(led, journal, idempCache, publishers, cfg.Ledger.IdempotencyTTL, logger.Component(log, "ledger"))
	if err := ledgerSvc.Restore(ctx); err != nil {
		return fmt.Errorf("restoring ledger from journal: %w", err)
	}
	checkers = append(checkers, service.NewLedgerHealthChecker(ledgerSvc))

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		LedgerSvc:      ledgerSvc,
		TokenSvc:       service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer),
		Operators:      led.Operators(),
		RateLimitStore: rateLimitStore,
		HealthCheckers: checkers,
		AuditSvc:       service.NewAuditService(auditRepo, logger.Component(log, "audit")),
		Logger:         logger.Component(log, "http"),
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if notifier != nil {
		if err := notifier.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("webhook deliveries cut short")
		}
	}
	return nil
}

// newLedger builds the ledger from config. Operators are normalized like
// every other principal.
func newLedger(cfg config.LedgerConfig) (*ledger.Ledger, error) {
	opts := ledger.Options{VerifyInvariants: cfg.VerifyInvariants}
	for _, raw := range cfg.Operators {
		opts.Operators = append(opts.Operators, domain.NormalizePrincipal(raw))
	}
	if cfg.DefaultCreditLimit != "" {
		units, err := money.Parse(cfg.DefaultCreditLimit)
		if err != nil {
			return nil, fmt.Errorf("ledger.default_credit_limit: %w", err)
		}
		limit := domain.Amount(units)
		opts.DefaultCreditLimit = &limit
	}
	return ledger.New(opts), nil
}
