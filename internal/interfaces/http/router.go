package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mesero-api/internal/application/auth"
	"github.com/jhoicas/Mesero-api/internal/application/usecase"
	"github.com/jhoicas/Mesero-api/internal/domain/entity"
	"github.com/jhoicas/Mesero-api/internal/domain/repository"
	"github.com/jhoicas/Mesero-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TenantUC      *usecase.TenantUseCase
	MenuUC        *usecase.MenuUseCase
	OrderUC       *usecase.OrderUseCase
	ReservationUC *usecase.ReservationUseCase
	AuthUC        *auth.AuthUseCase
	TenantRepo    repository.TenantRepository
	JWTSecret     string
	Logger        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Registro de tenants: alta y consulta públicas (onboarding);
	// mutaciones solo con token de plataforma.
	tenants := api.Group("/tenants")
	tenantHandler := NewTenantHandler(deps.TenantUC)
	tenants.Post("/", tenantHandler.Create)
	tenants.Get("/", tenantHandler.List)
	tenants.Get("/:id", tenantHandler.GetByID)
	tenants.Put("/:id", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RolePlatform), tenantHandler.Update)
	tenants.Delete("/:id", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RolePlatform), tenantHandler.Deactivate)

	// Rutas protegidas: Bearer Token + tenant activo establecido en el contexto.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), TenantMiddleware(deps.TenantRepo, deps.Logger))

	// Menú (protegido)
	menu := protected.Group("/menu")
	menuHandler := NewMenuHandler(deps.MenuUC)
	menu.Post("/", menuHandler.Create)
	menu.Get("/", menuHandler.List)
	menu.Patch("/category-availability", menuHandler.SetCategoryAvailability)
	menu.Get("/:id", menuHandler.GetByID)
	menu.Put("/:id", menuHandler.Update)
	menu.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RolePlatform), menuHandler.Delete)

	// Órdenes (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/revenue", RequireRole(entity.RoleAdmin, entity.RolePlatform), orderHandler.DailyRevenue)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Get("/:id/receipt", orderHandler.Receipt)
	orders.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RolePlatform), orderHandler.Delete)

	// Reservas (protegido)
	reservations := protected.Group("/reservations")
	reservationHandler := NewReservationHandler(deps.ReservationUC)
	reservations.Post("/", reservationHandler.Create)
	reservations.Get("/", reservationHandler.List)
	reservations.Post("/cancel-day", RequireRole(entity.RoleAdmin, entity.RolePlatform), reservationHandler.CancelDay)
	reservations.Get("/:id", reservationHandler.GetByID)
	reservations.Put("/:id", reservationHandler.Update)
	reservations.Delete("/:id", reservationHandler.Delete)
}
