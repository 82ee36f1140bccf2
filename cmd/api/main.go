package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/dawfilms-api/internal/application/auth"
	"github.com/jhoicas/dawfilms-api/internal/application/backup"
	"github.com/jhoicas/dawfilms-api/internal/application/clientes"
	"github.com/jhoicas/dawfilms-api/internal/application/productos"
	"github.com/jhoicas/dawfilms-api/internal/application/ventas"
	infracache "github.com/jhoicas/dawfilms-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/dawfilms-api/internal/infrastructure/pdf"
	"github.com/jhoicas/dawfilms-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/dawfilms-api/internal/interfaces/http"
	"github.com/jhoicas/dawfilms-api/pkg/config"
	"github.com/jhoicas/dawfilms-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	clienteRepo := postgres.NewClienteRepository(pool)
	butacaRepo := postgres.NewButacaRepository(pool)
	complementoRepo := postgres.NewComplementoRepository(pool)
	ventaRepo := postgres.NewVentaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de clientes: en memoria salvo CACHE_DRIVER=redis
	var clienteCache clientes.ClienteCache = infracache.NewMemoryClienteCache()
	if cfg.Cache.UsaRedis() {
		rdb, err := infracache.NewRedisClient(ctx, cfg.Cache)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		clienteCache = infracache.NewRedisClienteCache(rdb)
	}

	productoUC := productos.NewProductoUseCase(butacaRepo, complementoRepo, txRunner, log.Zerolog())
	clienteUC := clientes.NewClienteUseCase(clienteRepo, clienteCache, log.Zerolog())
	ventaValidator := ventas.NewValidator(clienteRepo, butacaRepo, complementoRepo)
	ventaUC := ventas.NewVentaUseCase(ventaValidator, txRunner, ventaRepo, log.Zerolog())

	// PDF: ticket de venta
	ticketUC := ventas.NewTicketUseCase(ventaUC, infrapdf.NewMarotoTicketGenerator())

	backupSvc := backup.NewService(productoUC, clienteRepo, ventaRepo, clienteCache, txRunner, log.Zerolog())

	authUC := auth.NewAuthUseCase(
		auth.Credenciales{Usuario: cfg.Admin.User, PasswordHash: cfg.Admin.PasswordHash},
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		log.Zerolog(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    32 * 1024 * 1024, // copias de seguridad
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_down", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductoUC: productoUC,
		ClienteUC:  clienteUC,
		VentaUC:    ventaUC,
		TicketUC:   ticketUC,
		BackupSvc:  backupSvc,
		JWTSecret:  cfg.JWT.Secret,
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
