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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	appanalytics "github.com/jhoicas/tramitefacil-api/internal/application/analytics"
	"github.com/jhoicas/tramitefacil-api/internal/application/ports"
	"github.com/jhoicas/tramitefacil-api/internal/application/recurrence"
	"github.com/jhoicas/tramitefacil-api/internal/application/reminder"
	"github.com/jhoicas/tramitefacil-api/internal/application/usecase"
	"github.com/jhoicas/tramitefacil-api/internal/domain/repository"
	infracache "github.com/jhoicas/tramitefacil-api/internal/infrastructure/cache"
	"github.com/jhoicas/tramitefacil-api/internal/infrastructure/memstore"
	infrapdf "github.com/jhoicas/tramitefacil-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tramitefacil-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tramitefacil-api/internal/infrastructure/scheduler"
	"github.com/jhoicas/tramitefacil-api/internal/infrastructure/sendgrid"
	"github.com/jhoicas/tramitefacil-api/internal/infrastructure/supabase"
	httpRouter "github.com/jhoicas/tramitefacil-api/internal/interfaces/http"
	"github.com/jhoicas/tramitefacil-api/pkg/config"
	"github.com/jhoicas/tramitefacil-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db", cfg.DB.Driver).
		Msg("iniciando aplicación")

	// Montos como números JSON (monto_estimado: 1500.5), igual que la API original.
	decimal.MarshalJSONWithoutQuotes = true

	appLoc, _ := time.LoadLocation(cfg.App.Timezone)
	reminderLoc, _ := time.LoadLocation(cfg.Reminder.Timezone)

	ctx := context.Background()

	var (
		companyRepo    repository.CompanyRepository
		obligationRepo repository.ObligationRepository
		pool           *pgxpool.Pool
	)
	switch cfg.DB.Driver {
	case "memory":
		store := memstore.New()
		companyRepo, obligationRepo = store.Companies(), store.Obligations()
		log.Warn().Msg("usando almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		companyRepo = postgres.NewCompanyRepository(pool)
		obligationRepo = postgres.NewObligationRepository(pool)
	}

	// Caché del dashboard (opcional)
	var dashboardCache ports.DashboardCache
	if cfg.Redis.Addr != "" {
		rdb, err := infracache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, dashboard sin caché")
		} else {
			defer rdb.Close()
			dashboardCache = infracache.NewDashboardCache(rdb, cfg.Redis.TTL)
		}
	}

	engine := recurrence.NewEngine(obligationRepo, recurrence.PolicyFor(cfg.Recurrence.Dedup), log.Component("recurrence"))
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	obligationUC := usecase.NewObligationUseCase(companyRepo, obligationRepo, engine, dashboardCache, log.Component("obligations"))
	reportUC := usecase.NewReportUseCase(companyRepo, obligationRepo, infrapdf.NewMarotoPDFGenerator())
	dashboardUC := appanalytics.NewDashboardUseCase(obligationRepo, dashboardCache, log.Component("dashboard"))

	// Recordatorios: Supabase (correo del usuario) + SendGrid (envío)
	identity := supabase.NewIdentityClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey, cfg.Supabase.Timeout)
	mailer := sendgrid.NewMailClient(cfg.SendGrid.BaseURL, cfg.SendGrid.APIKey, cfg.SendGrid.Timeout)
	dispatcher := reminder.NewDispatcher(obligationRepo, identity, mailer, reminder.Config{
		HorizonDays: cfg.Reminder.HorizonDays,
		Location:    reminderLoc,
		FromEmail:   cfg.SendGrid.FromEmail,
		FromName:    cfg.SendGrid.FromName,
	}, log.Component("reminders"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // envío manual de recordatorios
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "TrámiteFácil API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:     companyUC,
		ObligationUC:  obligationUC,
		ReportUC:      reportUC,
		DashboardUC:   dashboardUC,
		Reminders:     dispatcher,
		ManualTrigger: cfg.Reminder.ManualTrigger,
		JWTSecret:     cfg.Auth.JWTSecret,
		Origins:       cfg.HTTP.AllowedOrigins,
		Clock:         httpRouter.Clock{Location: appLoc},
		Log:           log.Component("http"),
	})

	// Scheduler de recordatorios
	var sched *scheduler.Scheduler
	if cfg.Reminder.Enabled {
		reminderLog := log.Component("scheduler")
		sched, err = scheduler.New(cfg.Reminder.Schedule, reminderLoc, func(ctx context.Context, now time.Time) {
			if _, err := dispatcher.RunDailyReminders(ctx, now); err != nil {
				reminderLog.Error().Err(err).Msg("recordatorios: ejecución fallida")
			}
		}, reminderLog)
		if err != nil {
			log.Fatal().Err(err).Msg("scheduler de recordatorios")
		}
		sched.Start()
		log.Info().
			Strs("schedule", cfg.Reminder.Schedule).
			Str("tz", cfg.Reminder.Timezone).
			Msg("recordatorios programados")
	}

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

	if sched != nil {
		if err := sched.Stop(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("apagado del scheduler")
		}
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
