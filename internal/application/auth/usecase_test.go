package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Mesero-api/internal/application/auth"
	"github.com/jhoicas/Mesero-api/internal/application/dto"
	"github.com/jhoicas/Mesero-api/internal/domain"
	"github.com/jhoicas/Mesero-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Mesero-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	r.byEmail[u.Email] = u
	return nil
}
func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.byEmail[email], nil
}
func (r *fakeUserRepo) Update(ctx context.Context, u *entity.User) error { return nil }

type fakeTenantRepo struct {
	byID map[string]*entity.Tenant
}

func (r *fakeTenantRepo) Create(ctx context.Context, t *entity.Tenant) error { return nil }
func (r *fakeTenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	return r.byID[id], nil
}
func (r *fakeTenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	return nil, nil
}
func (r *fakeTenantRepo) Update(ctx context.Context, t *entity.Tenant) error { return nil }
func (r *fakeTenantRepo) List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error) {
	return nil, nil
}
func (r *fakeTenantRepo) Deactivate(ctx context.Context, id string) error { return nil }

const testSecret = "secret-de-tests"

func newAuthUC(tenantStatus string) (*auth.AuthUseCase, *fakeUserRepo) {
	users := &fakeUserRepo{byEmail: map[string]*entity.User{}}
	tenants := &fakeTenantRepo{byID: map[string]*entity.Tenant{
		"t-1": {ID: "t-1", Name: "Café del Parque", Slug: "cafe-del-parque", Status: tenantStatus},
	}}
	uc := auth.NewAuthUseCase(users, tenants, auth.JWTConfig{
		Secret: testSecret, ExpMinutes: 60, Issuer: "mesero-pro-test",
	})
	return uc, users
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterUser
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterUser_CreaConBcryptYRolPorDefecto(t *testing.T) {
	uc, users := newAuthUC(entity.TenantStatusActive)

	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		TenantID: "t-1", Email: "ana@cafe.co", Password: "secreta123",
	})
	require.NoError(t, err)
	assert.Equal(t, "t-1", out.TenantID)
	assert.Equal(t, entity.RoleMesero, out.Role, "rol por defecto")
	assert.Equal(t, "ana@cafe.co", out.Name, "nombre por defecto = email")

	stored := users.byEmail["ana@cafe.co"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreta123", stored.PasswordHash, "el password nunca se guarda plano")
}

func TestRegisterUser_TenantInexistente_ErrNotFound(t *testing.T) {
	uc, _ := newAuthUC(entity.TenantStatusActive)
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		TenantID: "t-fantasma", Email: "x@y.co", Password: "p",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterUser_TenantInactivo_Rechazado(t *testing.T) {
	uc, _ := newAuthUC(entity.TenantStatusSuspended)
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		TenantID: "t-1", Email: "x@y.co", Password: "p",
	})
	assert.ErrorIs(t, err, domain.ErrTenantInactive)
}

func TestRegisterUser_EmailDuplicado_Rechazado(t *testing.T) {
	uc, _ := newAuthUC(entity.TenantStatusActive)
	in := dto.RegisterRequest{TenantID: "t-1", Email: "ana@cafe.co", Password: "p"}

	_, err := uc.RegisterUser(context.Background(), in)
	require.NoError(t, err)

	_, err = uc.RegisterUser(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_RolDesconocido_Rechazado(t *testing.T) {
	uc, _ := newAuthUC(entity.TenantStatusActive)
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		TenantID: "t-1", Email: "x@y.co", Password: "p", Role: "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_TokenPortaTenantYRole(t *testing.T) {
	uc, _ := newAuthUC(entity.TenantStatusActive)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		TenantID: "t-1", Email: "ana@cafe.co", Password: "secreta123", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@cafe.co", Password: "secreta123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	_, tenantID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "t-1", tenantID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_PasswordIncorrecto_ErrUnauthorized(t *testing.T) {
	uc, _ := newAuthUC(entity.TenantStatusActive)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{TenantID: "t-1", Email: "ana@cafe.co", Password: "secreta123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@cafe.co", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente_ErrUserNotFound(t *testing.T) {
	uc, _ := newAuthUC(entity.TenantStatusActive)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@cafe.co", Password: "p"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// Caso: el tenant fue suspendido después del registro; el login deja de emitir tokens.
func TestLogin_TenantSuspendidoDespuesDelRegistro_Rechazado(t *testing.T) {
	users := &fakeUserRepo{byEmail: map[string]*entity.User{}}
	tenants := &fakeTenantRepo{byID: map[string]*entity.Tenant{
		"t-1": {ID: "t-1", Status: entity.TenantStatusActive},
	}}
	uc := auth.NewAuthUseCase(users, tenants, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"})

	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{TenantID: "t-1", Email: "ana@cafe.co", Password: "secreta123"})
	require.NoError(t, err)

	tenants.byID["t-1"].Status = entity.TenantStatusSuspended
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@cafe.co", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrTenantInactive)
}
