package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mesero-api/internal/application/dto"
	"github.com/jhoicas/Mesero-api/internal/domain/entity"
	"github.com/jhoicas/Mesero-api/internal/domain/repository"
	"github.com/jhoicas/Mesero-api/internal/tenancy"
	"github.com/jhoicas/Mesero-api/pkg/logger"
)

// TenantMiddleware es la costura de integración entre la petición HTTP y el
// portador de contexto de tenant. Resuelve el tenant de los claims contra el
// registro, rechaza tenants no activos y establece el tenant en el
// context.Context de la petición. Todo lo que corra debajo (usecases, repos,
// store) queda particionado sin volver a mencionar tenant_id.
//
// El rol platform recibe además la capacidad de acceso cross-tenant.
func TenantMiddleware(tenants repository.TenantRepository, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID := GetTenantID(c)
		if tenantID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TENANT", Message: "el token no porta tenant"})
		}
		tenant, err := tenants.GetByID(c.UserContext(), tenantID)
		if err != nil {
			log.Error().Err(err).Str("tenant_id", tenantID).Msg("no se pudo resolver el tenant")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error resolviendo tenant"})
		}
		if tenant == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNKNOWN_TENANT", Message: "tenant no registrado"})
		}
		if !tenant.IsActive() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "TENANT_INACTIVE", Message: "tenant suspendido o inactivo"})
		}
		ctx := tenancy.WithTenant(c.UserContext(), tenancy.Context{
			TenantID: tenant.ID,
			Slug:     tenant.Slug,
			Name:     tenant.Name,
		})
		if GetRole(c) == entity.RolePlatform {
			ctx = tenancy.Elevate(ctx)
		}
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// RequireRole corta la petición si el rol autenticado no está en la lista.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}
