package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acruxgo/banos-forum-backend/internal/domain/access"
	"github.com/acruxgo/banos-forum-backend/internal/domain/entity"
	apphttp "github.com/acruxgo/banos-forum-backend/internal/interfaces/http"
	pkgjwt "github.com/acruxgo/banos-forum-backend/pkg/jwt"
	"github.com/acruxgo/banos-forum-backend/pkg/logger"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testAccountID = "00000000-0000-0000-0000-000000000001"
	testTenantID  = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "pos-core-test"
	testExpMin    = 60
)

type tenantTable map[string]*entity.Tenant

func (t tenantTable) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	return t[id], nil
}

type revokedSet map[string]bool

func (r revokedSet) Revoke(_ context.Context, jti string, _ time.Duration) error {
	r[jti] = true
	return nil
}

func (r revokedSet) IsRevoked(_ context.Context, jti string) (bool, error) {
	return r[jti], nil
}

type failureCounter map[string]int

func (f failureCounter) TenantResolutionFailed(reason string) { f[reason]++ }

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code  string `json:"code"`
		Field string `json:"field"`
		Count *int   `json:"count"`
	} `json:"error"`
}

// buildTestApp app mínima con AuthMiddleware, ResolveTenant y RequireAccess delante de un
// handler que devuelve el principal y el scope.
func buildTestApp(tenants tenantTable, revoked revokedSet, failures failureCounter, resource access.Resource, action access.Action) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop())})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, revoked),
		apphttp.ResolveTenant(access.NewResolver(tenants), failures),
		apphttp.RequireAccess(access.NewGate(nil), resource, action),
		func(c *fiber.Ctx) error {
			p, _ := apphttp.GetPrincipal(c)
			return c.JSON(fiber.Map{
				"account": p.AccountID,
				"role":    string(p.Role),
				"scope":   apphttp.GetScope(c).String(),
			})
		},
	)
	return app
}

func activeTenants() tenantTable {
	return tenantTable{testTenantID: {ID: testTenantID, Name: "Baños Centro", Slug: "banos-centro", IsActive: true}}
}

func token(t *testing.T, role, tenantID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testAccountID, tenantID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, target, authHeader string) (*http.Response, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestAccess_OwnerCreaCategorias(t *testing.T) {
	app := buildTestApp(activeTenants(), revokedSet{}, failureCounter{}, access.ResourceCategories, access.ActionCreate)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", token(t, "owner", testTenantID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testAccountID, body["account"])
	assert.Equal(t, "scoped:"+testTenantID, body["scope"])
}

func TestAccess_CajeroBloqueadoEnEscrituraDeCatalogo(t *testing.T) {
	app := buildTestApp(activeTenants(), revokedSet{}, failureCounter{}, access.ResourceCategories, access.ActionCreate)
	resp, body := doRequest(t, app, "/protected", token(t, "cashier", testTenantID))

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
}

func TestAccess_OperadorNoOperaElNegocio(t *testing.T) {
	app := buildTestApp(activeTenants(), revokedSet{}, failureCounter{}, access.ResourceShifts, access.ActionOpen)
	resp, body := doRequest(t, app, "/protected", token(t, "operator", ""))

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
}

func TestAccess_OperadorAcotaConTenantID(t *testing.T) {
	app := buildTestApp(activeTenants(), revokedSet{}, failureCounter{}, access.ResourceAccounts, access.ActionRead)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", token(t, "operator", ""))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	assert.Equal(t, "unscoped", body["scope"])

	req = httptest.NewRequest(http.MethodGet, "/protected?tenant_id="+testTenantID, nil)
	req.Header.Set("Authorization", token(t, "operator", ""))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	assert.Equal(t, "scoped:"+testTenantID, body["scope"])
}

func TestAccess_TenantIDDebeSerUUID(t *testing.T) {
	app := buildTestApp(activeTenants(), revokedSet{}, failureCounter{}, access.ResourceAccounts, access.ActionRead)
	resp, body := doRequest(t, app, "/protected?tenant_id=abc", token(t, "operator", ""))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION", body.Error.Code)
	assert.Equal(t, "tenant_id", body.Error.Field)
}

func TestAccess_UnNegocioNoPuedeAcotarAOtro(t *testing.T) {
	app := buildTestApp(activeTenants(), revokedSet{}, failureCounter{}, access.ResourceProducts, access.ActionRead)
	req := httptest.NewRequest(http.MethodGet, "/protected?tenant_id=00000000-0000-0000-0000-0000000000ff", nil)
	req.Header.Set("Authorization", token(t, "owner", testTenantID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "scoped:"+testTenantID, body["scope"])
}

func TestResolveTenant_Rechazos(t *testing.T) {
	inactive := tenantTable{testTenantID: {ID: testTenantID, IsActive: false}}
	tests := []struct {
		name     string
		tenants  tenantTable
		tenantID string
		code     string
		reason   string
	}{
		{"sin negocio", activeTenants(), "", "TENANT_MISSING", "missing"},
		{"negocio inexistente", tenantTable{}, testTenantID, "TENANT_NOT_FOUND", "not_found"},
		{"negocio inactivo", inactive, testTenantID, "TENANT_INACTIVE", "inactive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failures := failureCounter{}
			app := buildTestApp(tt.tenants, revokedSet{}, failures, access.ResourceShifts, access.ActionRead)
			resp, body := doRequest(t, app, "/protected", token(t, "owner", tt.tenantID))

			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.Equal(t, 1, failures[tt.reason])
		})
	}
}

func TestAuthMiddleware_Tokens(t *testing.T) {
	revoked := revokedSet{}
	app := buildTestApp(activeTenants(), revoked, failureCounter{}, access.ResourceShifts, access.ActionRead)

	resp, body := doRequest(t, app, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", body.Error.Code)

	resp, body = doRequest(t, app, "/protected", "Bearer token.invalido.aqui")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", body.Error.Code)

	resp, body = doRequest(t, app, "/protected", "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", body.Error.Code)

	resp, body = doRequest(t, app, "/protected", token(t, "", testTenantID))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "token sin rol")
	assert.Equal(t, "INVALID_TOKEN", body.Error.Code)

	expired, err := pkgjwt.Generate(testJWTSecret, testAccountID, testTenantID, "owner", testIssuer, -1)
	require.NoError(t, err)
	resp, _ = doRequest(t, app, "/protected", "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "token expirado")

	other, err := pkgjwt.Generate("otro-secret-completamente-distinto", testAccountID, testTenantID, "owner", testIssuer, testExpMin)
	require.NoError(t, err)
	resp, _ = doRequest(t, app, "/protected", "Bearer "+other)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "secret incorrecto")
}

func TestAuthMiddleware_TokenRevocado(t *testing.T) {
	revoked := revokedSet{}
	app := buildTestApp(activeTenants(), revoked, failureCounter{}, access.ResourceShifts, access.ActionRead)

	tok, err := pkgjwt.Generate(testJWTSecret, testAccountID, testTenantID, "cashier", testIssuer, testExpMin)
	require.NoError(t, err)
	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	resp, _ := doRequest(t, app, "/protected", "Bearer "+tok)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	revoked[claims.ID] = true
	resp, body := doRequest(t, app, "/protected", "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "TOKEN_REVOKED", body.Error.Code)
}
