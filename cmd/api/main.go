package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/acruxgo/banos-forum-backend/internal/application/auth"
	"github.com/acruxgo/banos-forum-backend/internal/application/lifecycle"
	"github.com/acruxgo/banos-forum-backend/internal/application/ports"
	"github.com/acruxgo/banos-forum-backend/internal/application/shift"
	"github.com/acruxgo/banos-forum-backend/internal/application/usecase"
	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/infrastructure/metrics"
	"github.com/acruxgo/banos-forum-backend/internal/infrastructure/postgres"
	"github.com/acruxgo/banos-forum-backend/internal/infrastructure/session"
	httpRouter "github.com/acruxgo/banos-forum-backend/internal/interfaces/http"
	"github.com/acruxgo/banos-forum-backend/pkg/config"
	"github.com/acruxgo/banos-forum-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: solo aceptable en desarrollo")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		migrator, err := postgres.NewMigrator(pool, log.Component("migrate"))
		if err != nil {
			log.Fatal().Err(err).Msg("migrador")
		}
		if err := migrator.Up(); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		_ = migrator.Close()
	}

	// Revocación de tokens: sin Redis el logout no invalida el token.
	var revocations ports.RevocationStore = session.NoopRevocationStore{}
	if cfg.Redis.Addr != "" {
		client, err := session.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, logout sin revocación")
		} else {
			defer client.Close()
			revocations = session.NewRedisRevocationStore(client)
		}
	}

	m := metrics.New(cfg.Metrics.Prefix)

	tenantRepo := postgres.NewTenantRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	shiftRepo := postgres.NewShiftRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	lc := lifecycle.NewManager(txRunner, log.Component("lifecycle"))
	tenantUC := usecase.NewTenantUseCase(tenantRepo)
	accountUC := usecase.NewAccountUseCase(accountRepo, tenantRepo, lc)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, lc)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, lc)
	ledger := shift.NewLedger(accountRepo, shiftRepo, saleRepo, txRunner, m, log.Component("ledger"))
	journal := shift.NewJournal(shiftRepo, saleRepo, productRepo, txRunner, log.Component("journal"))
	authUC := auth.NewAuthUseCase(accountRepo, tenantRepo, revocations, m, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AppName:         cfg.App.Name,
		Sessions:        authUC,
		Tenants:         tenantUC,
		Accounts:        accountUC,
		Categories:      categoryUC,
		Products:        productUC,
		Ledger:          ledger,
		Journal:         journal,
		Resolver:        access.NewResolver(tenantRepo),
		Gate:            access.NewGate(nil),
		Revocations:     revocations,
		JWTSecret:       cfg.JWT.Secret,
		LoginRateMax:    cfg.HTTP.LoginRateMax,
		LoginRateWindow: cfg.HTTP.LoginRateWindow,
		Metrics:         m,
		Health:          pool.Ping,
		Log:             log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
