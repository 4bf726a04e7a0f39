package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appledger "github.com/bigledger/backend/internal/application/ledger"
	"github.com/bigledger/backend/internal/domain/shared"
	"github.com/bigledger/backend/internal/infrastructure/cache"
	"github.com/bigledger/backend/internal/infrastructure/config"
	"github.com/bigledger/backend/internal/infrastructure/event"
	"github.com/bigledger/backend/internal/infrastructure/logger"
	"github.com/bigledger/backend/internal/infrastructure/persistence"
	"github.com/bigledger/backend/internal/interfaces/http/handler"
	"github.com/bigledger/backend/internal/interfaces/http/middleware"
	"github.com/bigledger/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ledger backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	journalRepo := persistence.NewGormManualJournalRepository(db.DB)
	invoiceRepo := persistence.NewGormSaleInvoiceRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentReceivedRepository(db.DB)
	creditNoteRepo := persistence.NewGormCreditNoteApplicationRepository(db.DB)
	transactionRepo := persistence.NewGormLedgerTransactionRepository(db.DB)

	uow := persistence.NewGormUnitOfWork(db.DB)
	eventBus := event.NewInMemoryEventBus(log)

	// Event handlers. The projector subscribes first so the transaction
	// stream is current before balances recompute from it.
	projector := appledger.NewTransactionProjector(uow, log)
	balanceService := appledger.NewBalanceService(uow, log)

	subscribe := func(h shared.EventHandler, name string) {
		if cfg.Event.IdempotencyEnabled {
			h = event.NewIdempotentHandler(h, newIdempotencyStore(cfg, name, log), log,
				event.WithIdempotencyConfig(shared.IdempotencyConfig{
					TTL:     cfg.Event.IdempotencyTTL,
					Enabled: true,
				}))
		}
		eventBus.Subscribe(h, h.EventTypes()...)
	}
	subscribe(projector, "projector")
	subscribe(balanceService, "balance")

	// Application services
	accountService := appledger.NewAccountService(uow, accountRepo, transactionRepo, eventBus, log)
	journalService := appledger.NewManualJournalService(uow, journalRepo, eventBus, log)
	invoiceService := appledger.NewSaleInvoiceService(uow, invoiceRepo, paymentRepo, creditNoteRepo, eventBus, log)
	paymentService := appledger.NewPaymentReceivedService(uow, paymentRepo, eventBus, log)
	reportService := appledger.NewAccountTransactionsService(accountRepo, transactionRepo, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.RequestLogger(log))
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))

	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.Tenant())
	r.Register(handler.NewAccountHandler(accountService, balanceService)).
		Register(handler.NewManualJournalHandler(journalService)).
		Register(handler.NewSaleInvoiceHandler(invoiceService)).
		Register(handler.NewPaymentReceivedHandler(paymentService)).
		Register(handler.NewReportHandler(reportService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newIdempotencyStore picks Redis when configured so that instances behind
// a load balancer share processed-event state, and falls back to the
// in-process store otherwise. Each handler gets its own key namespace.
func newIdempotencyStore(cfg *config.Config, name string, log *zap.Logger) shared.IdempotencyStore {
	if cfg.Redis.Host == "" {
		return cache.NewInMemoryIdempotencyStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable, using in-memory idempotency store", zap.Error(err))
		return cache.NewInMemoryIdempotencyStore()
	}

	return cache.NewRedisIdempotencyStoreWithClient(client, "event:idempotency:"+name+":")
}

func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
