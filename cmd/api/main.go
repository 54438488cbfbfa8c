package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // zona del negocio disponible aunque la imagen no traiga tzdata

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/redcobro-api/internal/application/analytics"
	"github.com/jhoicas/redcobro-api/internal/application/auth"
	"github.com/jhoicas/redcobro-api/internal/application/billing"
	"github.com/jhoicas/redcobro-api/internal/application/usecase"
	"github.com/jhoicas/redcobro-api/internal/infrastructure/idempotency"
	infrapdf "github.com/jhoicas/redcobro-api/internal/infrastructure/pdf"
	"github.com/jhoicas/redcobro-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/redcobro-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/redcobro-api/internal/interfaces/http"
	"github.com/jhoicas/redcobro-api/pkg/clock"
	"github.com/jhoicas/redcobro-api/pkg/config"
	"github.com/jhoicas/redcobro-api/pkg/logger"
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
	clk := clock.NewSystem(cfg.App.Timezone)
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", clk.Location.String()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Idempotencia: Redis si hay REDIS_ADDR (varias réplicas), si no caché en memoria.
	var (
		idemStore billing.IdempotencyStore
		purger    billing.Purger
	)
	redisClient, err := infraredis.NewClient(ctx, cfg.Redis)
	switch {
	case err != nil:
		log.Fatal().Err(err).Msg("conexión a Redis")
	case redisClient != nil:
		defer redisClient.Close()
		idemStore = idempotency.NewRedisStore(redisClient)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotencia en Redis")
	default:
		mem := idempotency.NewMemoryStore()
		idemStore, purger = mem, mem
		log.Info().Msg("idempotencia en memoria")
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	closeRepo := postgres.NewCloseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	companyUC := usecase.NewCompanyUseCase(companyRepo, clk)
	userUC := usecase.NewUserUseCase(userRepo, clk)
	planUC := billing.NewPlanUseCase(planRepo, clk)
	accountUC := billing.NewAccountUseCase(accountRepo, planRepo, paymentRepo, txRunner, clk, log)
	paymentUC := billing.NewPaymentUseCase(accountRepo, paymentRepo, txRunner, idemStore, cfg.Billing.IdempotencyTTL(), clk, log)
	collectionsUC := billing.NewCollectionsUseCase(accountRepo, clk)
	closingUC := billing.NewClosingUseCase(accountRepo, paymentRepo, closeRepo, txRunner, clk, log)
	chargeUC := billing.NewChargeUseCase(accountRepo, txRunner, clk, log)
	dashboardUC := appanalytics.NewDashboardUseCase(accountRepo, paymentRepo, closeRepo, clk)

	// PDF: comprobantes de pago y reportes de cierre
	documentUC := billing.NewReceiptUseCase(companyRepo, accountRepo, paymentRepo, closeRepo, infrapdf.NewMarotoReportGenerator())

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, clk)

	// Cargos mensuales y cierres quincenales automáticos
	scheduler := billing.NewScheduler(companyRepo, chargeUC, closingUC, purger, cfg.Scheduler.Interval(), log)
	if cfg.Scheduler.Enabled {
		scheduler.Start(ctx)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (generar con `swag init -g cmd/api/main.go`)
	const swaggerFile = "./docs/swagger.json"
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "RedCobro API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name, "db": "down"})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "time": clk.Now().Format(time.RFC3339)})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		CompanyUC:     companyUC,
		PlanUC:        planUC,
		AccountUC:     accountUC,
		PaymentUC:     paymentUC,
		CollectionsUC: collectionsUC,
		DashboardUC:   dashboardUC,
		ClosingUC:     closingUC,
		ChargeUC:      chargeUC,
		DocumentUC:    documentUC,
		JWTSecret:     cfg.JWT.Secret,
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
	scheduler.Stop()

	log.Info().Msg("aplicación detenida")
}
