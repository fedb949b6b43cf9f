package http

import (
	"context"
	nethttp "net/http"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/acruxgo/banos-forum-backend/internal/application/ports"
	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/pkg/logger"
)

// Observability métricas que expone la API (lo implementa *metrics.Metrics).
type Observability interface {
	httpObserver
	tenantFailureRecorder
	Handler() nethttp.Handler
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName    string
	Sessions   sessionService
	Tenants    tenantService
	Accounts   accountService
	Categories categoryService
	Products   productService
	Ledger     shiftService
	Journal    saleService

	Resolver    *access.Resolver
	Gate        *access.Gate
	Revocations ports.RevocationStore
	JWTSecret   string

	LoginRateMax    int
	LoginRateWindow time.Duration

	Metrics Observability // nil: sin /metrics
	Health  func(ctx context.Context) error
	Log     *logger.Logger
}

// NewApp crea la app Fiber con el manejo de errores, los middlewares globales y las rutas.
func NewApp(deps RouterDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(deps.Log),
	})

	app.Use(requestid.New())
	var observer httpObserver
	if deps.Metrics != nil {
		observer = deps.Metrics
	}
	app.Use(RequestLogger(deps.Log, observer))
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó docs/swagger.json)
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    deps.AppName,
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Health != nil {
			if err := deps.Health(c.UserContext()); err != nil {
				deps.Log.Warn().Err(err).Msg("health check")
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": deps.AppName})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	Router(app, deps)
	return app
}

// guard cadena de middlewares de una ruta de negocio: token, negocio y permiso.
type guard struct {
	auth   fiber.Handler
	tenant fiber.Handler
	gate   *access.Gate
}

func (g guard) with(resource access.Resource, action access.Action, h fiber.Handler) []fiber.Handler {
	return []fiber.Handler{g.auth, g.tenant, RequireAccess(g.gate, resource, action), h}
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authMw := AuthMiddleware(deps.JWTSecret, deps.Revocations)
	var failures tenantFailureRecorder
	if deps.Metrics != nil {
		failures = deps.Metrics
	}
	g := guard{auth: authMw, tenant: ResolveTenant(deps.Resolver, failures), gate: deps.Gate}

	// Sesiones
	sessions := NewSessionHandler(deps.Sessions)
	api.Post("/sessions", loginLimiter(deps), sessions.Login)
	api.Delete("/sessions", authMw, sessions.Logout)
	api.Get("/sessions/me", authMw, sessions.Me)

	// Negocios (operadores)
	tenants := NewTenantHandler(deps.Tenants)
	api.Get("/tenants", g.with(access.ResourceTenants, access.ActionRead, tenants.List)...)
	api.Post("/tenants", g.with(access.ResourceTenants, access.ActionCreate, tenants.Create)...)
	api.Get("/tenants/:id", g.with(access.ResourceTenants, access.ActionRead, tenants.GetByID)...)
	api.Put("/tenants/:id", g.with(access.ResourceTenants, access.ActionUpdate, tenants.Update)...)
	api.Patch("/tenants/:id/toggle-active", g.with(access.ResourceTenants, access.ActionToggle, tenants.ToggleActive)...)

	// Cuentas
	accounts := NewAccountHandler(deps.Accounts)
	api.Get("/accounts", g.with(access.ResourceAccounts, access.ActionRead, accounts.List)...)
	api.Post("/accounts", g.with(access.ResourceAccounts, access.ActionCreate, accounts.Create)...)
	api.Get("/accounts/:id", g.with(access.ResourceAccounts, access.ActionRead, accounts.GetByID)...)
	api.Put("/accounts/:id", g.with(access.ResourceAccounts, access.ActionUpdate, accounts.Update)...)
	api.Delete("/accounts/:id", g.with(access.ResourceAccounts, access.ActionDelete, accounts.Delete)...)
	api.Patch("/accounts/:id/restore", g.with(access.ResourceAccounts, access.ActionRestore, accounts.Restore)...)
	api.Patch("/accounts/:id/toggle-active", g.with(access.ResourceAccounts, access.ActionToggle, accounts.ToggleActive)...)

	// Categorías
	categories := NewCategoryHandler(deps.Categories)
	api.Get("/categories", g.with(access.ResourceCategories, access.ActionRead, categories.List)...)
	api.Post("/categories", g.with(access.ResourceCategories, access.ActionCreate, categories.Create)...)
	api.Get("/categories/:id", g.with(access.ResourceCategories, access.ActionRead, categories.GetByID)...)
	api.Put("/categories/:id", g.with(access.ResourceCategories, access.ActionUpdate, categories.Update)...)
	api.Delete("/categories/:id", g.with(access.ResourceCategories, access.ActionDelete, categories.Delete)...)
	api.Patch("/categories/:id/restore", g.with(access.ResourceCategories, access.ActionRestore, categories.Restore)...)
	api.Patch("/categories/:id/toggle-active", g.with(access.ResourceCategories, access.ActionToggle, categories.ToggleActive)...)

	// Productos
	products := NewProductHandler(deps.Products)
	api.Get("/products", g.with(access.ResourceProducts, access.ActionRead, products.List)...)
	api.Post("/products", g.with(access.ResourceProducts, access.ActionCreate, products.Create)...)
	api.Get("/products/:id", g.with(access.ResourceProducts, access.ActionRead, products.GetByID)...)
	api.Put("/products/:id", g.with(access.ResourceProducts, access.ActionUpdate, products.Update)...)
	api.Delete("/products/:id", g.with(access.ResourceProducts, access.ActionDelete, products.Delete)...)
	api.Patch("/products/:id/restore", g.with(access.ResourceProducts, access.ActionRestore, products.Restore)...)
	api.Patch("/products/:id/toggle-active", g.with(access.ResourceProducts, access.ActionToggle, products.ToggleActive)...)

	// Turnos (las rutas fijas antes de /:id)
	shifts := NewShiftHandler(deps.Ledger, deps.Journal)
	api.Post("/shifts/start", g.with(access.ResourceShifts, access.ActionOpen, shifts.Start)...)
	api.Get("/shifts", g.with(access.ResourceShifts, access.ActionRead, shifts.List)...)
	api.Get("/shifts/current", g.with(access.ResourceShifts, access.ActionRead, shifts.Current)...)
	api.Get("/shifts/:id", g.with(access.ResourceShifts, access.ActionRead, shifts.GetByID)...)
	api.Put("/shifts/:id/close", g.with(access.ResourceShifts, access.ActionClose, shifts.Close)...)
	api.Get("/shifts/:id/sales", g.with(access.ResourceSales, access.ActionRead, shifts.Sales)...)

	// Ventas
	sales := NewSaleHandler(deps.Journal)
	api.Post("/sales", g.with(access.ResourceSales, access.ActionCreate, sales.Create)...)
	api.Patch("/sales/:id/void", g.with(access.ResourceSales, access.ActionVoid, sales.Void)...)
}

// loginLimiter limita intentos de login por IP.
func loginLimiter(deps RouterDeps) fiber.Handler {
	limit, window := deps.LoginRateMax, deps.LoginRateWindow
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: window,
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "demasiados intentos de inicio de sesión")
		},
	})
}
