// seed crea la primera cuenta operadora. No hace nada si ya existe una con ese email.
//
// Uso: SEED_OPERATOR_EMAIL=ops@example.com SEED_OPERATOR_PASSWORD=... go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
	"github.com/acruxgo/banos-forum-backend/internal/infrastructure/postgres"
	"github.com/acruxgo/banos-forum-backend/pkg/config"
	"github.com/acruxgo/banos-forum-backend/pkg/logger"
	"github.com/acruxgo/banos-forum-backend/pkg/textkey"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("SEED_OPERATOR_NAME", "Operador")
	email := v.GetString("SEED_OPERATOR_EMAIL")
	password := v.GetString("SEED_OPERATOR_PASSWORD")
	if email == "" || len(password) < 8 {
		log.Fatal().Msg("SEED_OPERATOR_EMAIL y SEED_OPERATOR_PASSWORD (mínimo 8 caracteres) son obligatorios")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	accounts := postgres.NewAccountRepository(pool)
	key := textkey.Key(email)
	existing, err := accounts.FindLoginCandidates(ctx, key)
	if err != nil {
		log.Fatal().Err(err).Msg("buscar cuentas")
	}
	for _, a := range existing {
		if a.Role == entity.RoleOperator {
			log.Info().Str("account_id", a.ID).Msg("operador ya existe")
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de contraseña")
	}
	now := time.Now().UTC()
	operator := &entity.Account{
		ID:           uuid.NewString(),
		Email:        email,
		EmailKey:     key,
		PasswordHash: string(hash),
		Name:         v.GetString("SEED_OPERATOR_NAME"),
		Role:         entity.RoleOperator,
		Lifecycle:    entity.NewLifecycle(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := accounts.Create(ctx, operator); err != nil {
		log.Fatal().Err(err).Msg("crear operador")
	}
	log.Info().Str("account_id", operator.ID).Str("email", email).Msg("operador creado")
}
