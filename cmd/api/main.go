package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Mesero-api/internal/application/auth"
	"github.com/jhoicas/Mesero-api/internal/application/usecase"
	"github.com/jhoicas/Mesero-api/internal/domain/repository"
	"github.com/jhoicas/Mesero-api/internal/infrastructure/docstore"
	infrapdf "github.com/jhoicas/Mesero-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Mesero-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Mesero-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Mesero-api/internal/interfaces/http"
	"github.com/jhoicas/Mesero-api/internal/tenancy"
	"github.com/jhoicas/Mesero-api/pkg/config"
	"github.com/jhoicas/Mesero-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Registro global de tenants: Postgres, con cache Redis opcional delante.
	var tenantRepo repository.TenantRepository = postgres.NewTenantRepository(pool)
	if cfg.Redis.Addr != "" {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		tenantRepo = infraredis.NewCachedTenantRepository(tenantRepo, rdb, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("cache de tenants habilitado")
	}
	userRepo := postgres.NewUserRepository(pool)

	// Store de entidades particionadas, envuelto por el interceptor de scoping.
	// Todo acceso a datos de negocio pasa por aquí: el tenant sale del contexto.
	scoped := tenancy.NewScopedStore(postgres.NewDocStore(pool), log)
	menuRepo := docstore.NewMenuItemRepository(scoped)
	orderRepo := docstore.NewOrderRepository(scoped)
	reservationRepo := docstore.NewReservationRepository(scoped)

	pdfGenerator := infrapdf.NewMarotoReceiptGenerator()

	tenantUC := usecase.NewTenantUseCase(tenantRepo)
	menuUC := usecase.NewMenuUseCase(menuRepo)
	orderUC := usecase.NewOrderUseCase(orderRepo, menuRepo, tenantRepo, pdfGenerator)
	reservationUC := usecase.NewReservationUseCase(reservationRepo)
	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Mesero API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		TenantUC:      tenantUC,
		MenuUC:        menuUC,
		OrderUC:       orderUC,
		ReservationUC: reservationUC,
		AuthUC:        authUC,
		TenantRepo:    tenantRepo,
		JWTSecret:     cfg.JWT.Secret,
		Logger:        log,
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
