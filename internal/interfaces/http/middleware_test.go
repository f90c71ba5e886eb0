package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mesero-api/internal/domain/entity"
	"github.com/jhoicas/Mesero-api/internal/tenancy"
	apphttp "github.com/jhoicas/Mesero-api/internal/interfaces/http"
	"github.com/jhoicas/Mesero-api/pkg/logger"
	pkgjwt "github.com/jhoicas/Mesero-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testTenantID  = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "mesero-pro-test"
	testExpMin    = 60
)

// fakeTenantRepo registro de tenants en memoria para los tests de middleware.
type fakeTenantRepo struct {
	tenants map[string]*entity.Tenant
}

func (r *fakeTenantRepo) Create(ctx context.Context, tenant *entity.Tenant) error { return nil }
func (r *fakeTenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	return r.tenants[id], nil
}
func (r *fakeTenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	for _, t := range r.tenants {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, nil
}
func (r *fakeTenantRepo) Update(ctx context.Context, tenant *entity.Tenant) error { return nil }
func (r *fakeTenantRepo) List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error) {
	return nil, nil
}
func (r *fakeTenantRepo) Deactivate(ctx context.Context, id string) error { return nil }

// buildTestApp construye una app Fiber mínima con AuthMiddleware + TenantMiddleware
// y un handler que reporta el tenant establecido en el contexto.
func buildTestApp(repo *fakeTenantRepo) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.TenantMiddleware(repo, logger.Nop()),
		func(c *fiber.Ctx) error {
			tc, ok := tenancy.Current(c.UserContext())
			return c.JSON(fiber.Map{
				"has_tenant": ok,
				"tenant_id":  tc.TenantID,
				"slug":       tc.Slug,
				"elevated":   tenancy.IsElevated(c.UserContext()),
			})
		},
	)
	return app
}

func tokenFor(t *testing.T, tenantID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, tenantID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func activeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: map[string]*entity.Tenant{
		testTenantID: {ID: testTenantID, Name: "Café del Parque", Slug: "cafe-del-parque", Status: entity.TenantStatusActive},
	}}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests TenantMiddleware — establecimiento del contexto de tenant
// ──────────────────────────────────────────────────────────────────────────────

// Caso: token válido de un tenant activo → el contexto de la petición porta el
// tenant y todo lo que corre debajo queda particionado.
func TestTenantMiddleware_EstableceElTenantEnElContexto(t *testing.T) {
	app := buildTestApp(activeTenantRepo())
	resp := doRequest(t, app, tokenFor(t, testTenantID, entity.RoleMesero))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["has_tenant"])
	assert.Equal(t, testTenantID, body["tenant_id"])
	assert.Equal(t, "cafe-del-parque", body["slug"])
	assert.Equal(t, false, body["elevated"], "mesero no recibe capacidad cross-tenant")
}

// Caso: el rol platform recibe además la capacidad cross-tenant.
func TestTenantMiddleware_RolPlatform_ContextoElevado(t *testing.T) {
	app := buildTestApp(activeTenantRepo())
	resp := doRequest(t, app, tokenFor(t, testTenantID, entity.RolePlatform))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["elevated"])
}

// Caso: tenant suspendido → 403 TENANT_INACTIVE, la petición no llega al handler.
func TestTenantMiddleware_TenantSuspendido_Retorna403(t *testing.T) {
	repo := &fakeTenantRepo{tenants: map[string]*entity.Tenant{
		testTenantID: {ID: testTenantID, Slug: "cafe", Status: entity.TenantStatusSuspended},
	}}
	app := buildTestApp(repo)
	resp := doRequest(t, app, tokenFor(t, testTenantID, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "TENANT_INACTIVE")
}

// Caso: el token porta un tenant que no existe en el registro → 401.
func TestTenantMiddleware_TenantDesconocido_Retorna401(t *testing.T) {
	app := buildTestApp(&fakeTenantRepo{tenants: map[string]*entity.Tenant{}})
	resp := doRequest(t, app, tokenFor(t, "tenant-fantasma", entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNKNOWN_TENANT")
}

// Caso: token sin claim de tenant → 401 MISSING_TENANT.
func TestTenantMiddleware_TokenSinTenant_Retorna401(t *testing.T) {
	app := buildTestApp(activeTenantRepo())
	resp := doRequest(t, app, tokenFor(t, "", entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TENANT")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	app := buildTestApp(activeTenantRepo())
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(activeTenantRepo())
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExtractaClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":   apphttp.GetUserID(c),
			"tenant_id": apphttp.GetTenantID(c),
			"role":      apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, testTenantID, entity.RoleAdmin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testTenantID, body["tenant_id"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_RolPermitido_Pasa(t *testing.T) {
	app := fiber.New()
	app.Get("/admin",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(entity.RoleAdmin, entity.RolePlatform),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", tokenFor(t, testTenantID, entity.RoleAdmin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_RolBloqueado_Retorna403(t *testing.T) {
	app := fiber.New()
	app.Get("/admin",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(entity.RoleAdmin),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", tokenFor(t, testTenantID, entity.RoleMesero))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConTenantYRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testTenantID, entity.RoleMesero, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, tenantID, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, testTenantID, tenantID)
	assert.Equal(t, entity.RoleMesero, role)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testTenantID, entity.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testTenantID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
