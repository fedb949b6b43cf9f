package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/acruxgo/banos-forum-backend/internal/domain"
	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
	"github.com/acruxgo/banos-forum-backend/internal/domain/repository"
	"github.com/acruxgo/banos-forum-backend/internal/infrastructure/postgres"
	"github.com/acruxgo/banos-forum-backend/pkg/config"
	"github.com/acruxgo/banos-forum-backend/pkg/logger"
	"github.com/acruxgo/banos-forum-backend/pkg/textkey"
)

// newTestPool levanta PostgreSQL en un contenedor y aplica las migraciones embebidas.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("integración con PostgreSQL omitida con -short")
	}
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("pos_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	m, err := postgres.NewMigrator(pool, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	return pool
}

func seedTenant(t *testing.T, pool *pgxpool.Pool, name string) *entity.Tenant {
	t.Helper()
	now := time.Now().UTC()
	tenant := &entity.Tenant{
		ID: uuid.NewString(), Name: name, Slug: textkey.Slug(name), Tier: entity.TierBasic,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, postgres.NewTenantRepository(pool).Create(context.Background(), tenant))
	return tenant
}

func seedAccount(t *testing.T, pool *pgxpool.Pool, tenantID, email string, role entity.Role) *entity.Account {
	t.Helper()
	now := time.Now().UTC()
	a := &entity.Account{
		ID: uuid.NewString(), TenantID: tenantID, Email: email, EmailKey: textkey.Key(email),
		PasswordHash: "x", Name: email, Role: role, Lifecycle: entity.NewLifecycle(),
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, postgres.NewAccountRepository(pool).Create(context.Background(), a))
	return a
}

func newCategory(tenantID, name string) *entity.Category {
	now := time.Now().UTC()
	return &entity.Category{
		ID: uuid.NewString(), TenantID: tenantID, Name: name, NameKey: textkey.Key(name),
		Lifecycle: entity.NewLifecycle(), CreatedAt: now, UpdatedAt: now,
	}
}

func newProduct(tenantID string, categoryID *string, name string, price string) *entity.Product {
	now := time.Now().UTC()
	return &entity.Product{
		ID: uuid.NewString(), TenantID: tenantID, CategoryID: categoryID, Name: name, NameKey: textkey.Key(name),
		Price: decimal.RequireFromString(price), Lifecycle: entity.NewLifecycle(), CreatedAt: now, UpdatedAt: now,
	}
}

func TestPostgres_AislamientoEntreNegocios(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := postgres.NewCategoryRepository(pool)

	t1 := seedTenant(t, pool, "Baños Centro")
	t2 := seedTenant(t, pool, "Baños Norte")
	c1 := newCategory(t1.ID, "Servicios")
	c2 := newCategory(t2.ID, "Servicios")
	require.NoError(t, repo.Create(ctx, c1))
	require.NoError(t, repo.Create(ctx, c2), "el mismo nombre en otro negocio es válido")

	list, total, err := repo.List(ctx, access.Scoped(t1.ID), repository.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, c1.ID, list[0].ID)

	got, err := repo.GetByID(ctx, access.Scoped(t1.ID), c2.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "una fila de otro negocio no existe dentro del scope")

	_, total, err = repo.List(ctx, access.Unscoped(), repository.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	_, _, err = repo.List(ctx, access.Scope{}, repository.ListFilter{})
	assert.Error(t, err, "sin scope no se consulta")
}

func TestPostgres_UnicidadSoloEntreVivos(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := postgres.NewCategoryRepository(pool)
	runner := postgres.NewTxRunner(pool)
	tenant := seedTenant(t, pool, "Tienda")
	scope := access.Scoped(tenant.ID)

	first := newCategory(tenant.ID, "Bebidas")
	require.NoError(t, repo.Create(ctx, first))
	err := repo.Create(ctx, newCategory(tenant.ID, "  BEBIDAS "))
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = runner.RunLifecycle(ctx, access.ResourceCategories, func(lc repository.LifecycleRepository) error {
		l, err := lc.Lock(ctx, scope, first.ID)
		if err != nil {
			return err
		}
		if err := l.Delete(time.Now()); err != nil {
			return err
		}
		return lc.Save(ctx, scope, first.ID, *l)
	})
	require.NoError(t, err)

	matches, err := repo.MatchKey(ctx, scope, "name", textkey.Key("bebidas"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.True(t, matches[0].Deleted)

	second := newCategory(tenant.ID, "bebidas")
	require.NoError(t, repo.Create(ctx, second), "la clave quedó libre al eliminar")

	err = runner.RunLifecycle(ctx, access.ResourceCategories, func(lc repository.LifecycleRepository) error {
		l, err := lc.Lock(ctx, scope, first.ID)
		if err != nil {
			return err
		}
		if err := l.Restore(); err != nil {
			return err
		}
		return lc.Save(ctx, scope, first.ID, *l)
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "restaurar sobre una clave tomada")
}

func TestPostgres_AperturaConcurrenteDejaUnSoloTurno(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	tenant := seedTenant(t, pool, "Caja Única")
	account := seedAccount(t, pool, tenant.ID, "cajero@example.com", entity.RoleCashier)
	repo := postgres.NewShiftRepository(pool)

	const n = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		opened   int
		rejected int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(ctx, &entity.Shift{
				ID: uuid.NewString(), TenantID: tenant.ID, AccountID: account.ID, Status: entity.ShiftOpen,
				OpeningCash: decimal.NewFromInt(100), OpenedAt: time.Now().UTC(),
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				opened++
			case errors.Is(err, domain.ErrShiftAlreadyOpen):
				rejected++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, opened)
	assert.Equal(t, n-1, rejected)
}

func TestPostgres_CierreYVentaSobreTurnoCerrado(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	tenant := seedTenant(t, pool, "Kiosco")
	scope := access.Scoped(tenant.ID)
	account := seedAccount(t, pool, tenant.ID, "caja@example.com", entity.RoleCashier)
	product := newProduct(tenant.ID, nil, "Entrada", "25.50")
	require.NoError(t, postgres.NewProductRepository(pool).Create(ctx, product))

	shifts := postgres.NewShiftRepository(pool)
	sales := postgres.NewSaleRepository(pool)
	shift := &entity.Shift{
		ID: uuid.NewString(), TenantID: tenant.ID, AccountID: account.ID, Status: entity.ShiftOpen,
		OpeningCash: decimal.RequireFromString("100.00"), OpenedAt: time.Now().UTC(),
	}
	require.NoError(t, shifts.Create(ctx, shift))

	newSale := func(method string) *entity.Sale {
		return &entity.Sale{
			ID: uuid.NewString(), TenantID: tenant.ID, ShiftID: shift.ID, AccountID: account.ID, ProductID: product.ID,
			Quantity: 1, UnitPrice: product.Price, Total: product.Price, PaymentMethod: method,
			Status: entity.SaleCompleted, CreatedAt: time.Now().UTC(),
		}
	}
	require.NoError(t, sales.Create(ctx, newSale(entity.PaymentCash)))
	require.NoError(t, sales.Create(ctx, newSale(entity.PaymentCard)))

	list, err := sales.ListByShift(ctx, scope, shift.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	closing := decimal.RequireFromString("125.50")
	cash := decimal.RequireFromString("25.50")
	expected := decimal.RequireFromString("125.50")
	variance := decimal.Zero
	now := time.Now().UTC()
	shift.ClosingCash, shift.CashSales, shift.ExpectedCash, shift.Variance, shift.ClosedAt = &closing, &cash, &expected, &variance, &now
	require.NoError(t, shifts.Close(ctx, scope, shift))
	assert.ErrorIs(t, shifts.Close(ctx, scope, shift), domain.ErrShiftNotOpen)

	err = sales.Create(ctx, newSale(entity.PaymentCash))
	assert.ErrorIs(t, err, domain.ErrShiftNotActive)

	stored, err := shifts.GetByID(ctx, scope, shift.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftClosed, stored.Status)
	require.NotNil(t, stored.Variance)
	assert.True(t, stored.Variance.IsZero())
}

func TestPostgres_DependenciasDeCategoria(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	tenant := seedTenant(t, pool, "Catálogo")
	scope := access.Scoped(tenant.ID)
	categories := postgres.NewCategoryRepository(pool)
	products := postgres.NewProductRepository(pool)

	category := newCategory(tenant.ID, "Higiene")
	require.NoError(t, categories.Create(ctx, category))
	require.NoError(t, products.Create(ctx, newProduct(tenant.ID, &category.ID, "Jabón", "1.00")))
	require.NoError(t, products.Create(ctx, newProduct(tenant.ID, &category.ID, "Toalla", "2.00")))

	lc, err := postgres.NewLifecycleRepository(pool, access.ResourceCategories)
	require.NoError(t, err)
	n, err := lc.CountDependents(ctx, scope, category.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	other := seedTenant(t, pool, "Otro")
	err = products.Create(ctx, newProduct(other.ID, &category.ID, "Jabón", "1.00"))
	assert.ErrorIs(t, err, domain.ErrNotFound, "la categoría de otro negocio no es visible")
}

func TestPostgres_ListadoDeCuentasPorScope(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := postgres.NewAccountRepository(pool)

	t1 := seedTenant(t, pool, "Baños Sur")
	t2 := seedTenant(t, pool, "Baños Este")
	owner1 := seedAccount(t, pool, t1.ID, "duena@example.com", entity.RoleOwner)
	cashier1 := seedAccount(t, pool, t1.ID, "caja@example.com", entity.RoleCashier)
	owner2 := seedAccount(t, pool, t2.ID, "duena@example.com", entity.RoleOwner)
	operator := seedAccount(t, pool, "", "ops@example.com", entity.RoleOperator)

	ids := func(list []*entity.Account) []string {
		out := make([]string, 0, len(list))
		for _, a := range list {
			out = append(out, a.ID)
		}
		return out
	}

	all, total, err := repo.List(ctx, access.Unscoped(), repository.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.ElementsMatch(t, []string{owner1.ID, cashier1.ID, owner2.ID}, ids(all))
	assert.NotContains(t, ids(all), operator.ID)

	own, total, err := repo.List(ctx, access.Scoped(t1.ID), repository.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.ElementsMatch(t, []string{owner1.ID, cashier1.ID}, ids(own))

	got, err := repo.GetByID(ctx, access.Scoped(t1.ID), operator.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "un operador no pertenece a ningún negocio")
}

func TestPostgres_ListadoConNegocioNoUUID(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	scope := access.Unscoped().Narrow("abc")

	accounts, total, err := postgres.NewAccountRepository(pool).List(ctx, scope, repository.ListFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, accounts)

	categories, total, err := postgres.NewCategoryRepository(pool).List(ctx, scope, repository.ListFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, categories)
}
