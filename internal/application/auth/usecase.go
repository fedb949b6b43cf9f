package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/acruxgo/banos-forum-backend/internal/application/dto"
	"github.com/acruxgo/banos-forum-backend/internal/application/ports"
	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
	"github.com/acruxgo/banos-forum-backend/pkg/jwt"
	"github.com/acruxgo/banos-forum-backend/pkg/logger"
	"github.com/acruxgo/banos-forum-backend/pkg/textkey"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de sesión: login, logout y sesión actual.
type AuthUseCase struct {
	accounts    repository.AccountRepository
	tenants     repository.TenantRepository
	revocations ports.RevocationStore
	metrics     ports.AuthMetrics
	jwtCfg      JWTConfig
	log         *logger.Logger
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. metrics nil no registra.
func NewAuthUseCase(
	accounts repository.AccountRepository,
	tenants repository.TenantRepository,
	revocations ports.RevocationStore,
	metrics ports.AuthMetrics,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &AuthUseCase{
		accounts: accounts, tenants: tenants, revocations: revocations, metrics: metrics,
		jwtCfg: jwtCfg, log: log, now: time.Now,
	}
}

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// compareDummy consume el mismo tiempo que una verificación real cuando no hay candidatos.
func compareDummy(secret string) {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-secret-for-timing"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(secret))
}

// Login verifica identifier/secret y emite un token. Si el email existe en varios negocios
// hace falta el slug del negocio; sin él, o con credenciales que no coinciden, responde ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	account, err := uc.authenticate(ctx, in)
	if err != nil {
		uc.metrics.AuthAttempt(attemptResult(err))
		return nil, err
	}

	var tenant *entity.Tenant
	if account.Role != entity.RoleOperator {
		tenant, err = uc.tenants.GetByID(ctx, account.TenantID)
		if err != nil {
			uc.metrics.AuthAttempt("error")
			return nil, err
		}
		switch {
		case tenant == nil:
			err = domain.ErrTenantNotFound
		case !tenant.IsActive:
			err = domain.ErrTenantInactive
		}
		if err != nil {
			uc.metrics.AuthAttempt("inactive")
			return nil, err
		}
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, account.ID, account.TenantID, string(account.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		uc.metrics.AuthAttempt("error")
		return nil, err
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		uc.metrics.AuthAttempt("error")
		return nil, err
	}

	uc.metrics.AuthAttempt("success")
	uc.log.Info().Str("account_id", account.ID).Str("tenant_id", account.TenantID).Str("role", string(account.Role)).Msg("sesión iniciada")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
		Principal: principalResponse(account),
		Tenant:    dto.ToTenantResponse(tenant),
	}, nil
}

// authenticate elige la única cuenta cuyo secreto coincide.
func (uc *AuthUseCase) authenticate(ctx context.Context, in dto.LoginRequest) (*entity.Account, error) {
	candidates, err := uc.accounts.FindLoginCandidates(ctx, textkey.Key(in.Identifier))
	if err != nil {
		return nil, err
	}
	if in.Tenant != "" {
		candidates, err = uc.inTenant(ctx, candidates, in.Tenant)
		if err != nil {
			return nil, err
		}
	}
	if len(candidates) == 0 {
		compareDummy(in.Secret)
		return nil, domain.ErrUnauthorized
	}

	var matched []*entity.Account
	for _, a := range candidates {
		if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(in.Secret)) == nil {
			matched = append(matched, a)
		}
	}
	if len(matched) != 1 {
		return nil, domain.ErrUnauthorized
	}
	account := matched[0]
	if !account.IsActive {
		return nil, domain.ErrAccountInactive
	}
	return account, nil
}

func (uc *AuthUseCase) inTenant(ctx context.Context, candidates []*entity.Account, slug string) ([]*entity.Account, error) {
	tenant, err := uc.tenants.GetBySlug(ctx, textkey.Slug(slug))
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, nil
	}
	out := candidates[:0]
	for _, a := range candidates {
		if a.TenantID == tenant.ID {
			out = append(out, a)
		}
	}
	return out, nil
}

// Logout revoca el token hasta su expiración.
func (uc *AuthUseCase) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ID == "" {
		return domain.ErrUnauthorized
	}
	if err := uc.revocations.Revoke(ctx, claims.ID, claims.RemainingTTL(uc.now())); err != nil {
		return err
	}
	uc.log.Info().Str("account_id", claims.AccountID).Msg("sesión cerrada")
	return nil
}

// Me devuelve la cuenta y el negocio de la sesión actual.
func (uc *AuthUseCase) Me(ctx context.Context, p access.Principal) (*dto.SessionResponse, error) {
	scope := access.Unscoped()
	if !p.IsOperator() {
		scope = access.Scoped(p.TenantID)
	}
	account, err := uc.accounts.GetByID(ctx, scope, p.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil || account.IsDeleted() {
		return nil, domain.ErrUnauthorized
	}
	res := &dto.SessionResponse{Principal: principalResponse(account)}
	if account.TenantID != "" {
		tenant, err := uc.tenants.GetByID(ctx, account.TenantID)
		if err != nil {
			return nil, err
		}
		res.Tenant = dto.ToTenantResponse(tenant)
	}
	return res, nil
}

func principalResponse(a *entity.Account) dto.PrincipalResponse {
	return dto.PrincipalResponse{
		AccountID: a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Role:      string(a.Role),
		TenantID:  a.TenantID,
	}
}

func attemptResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return "invalid"
	case errors.Is(err, domain.ErrAccountInactive):
		return "inactive"
	}
	return "error"
}
