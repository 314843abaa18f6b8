package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/tramitefacil-api/internal/application/analytics"
	"github.com/jhoicas/tramitefacil-api/internal/application/reminder"
	"github.com/jhoicas/tramitefacil-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC     *usecase.CompanyUseCase
	ObligationUC  *usecase.ObligationUseCase
	ReportUC      *usecase.ReportUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	Reminders     *reminder.Dispatcher
	ManualTrigger bool
	JWTSecret     string
	Origins       []string
	Clock         Clock
	Log           zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if len(deps.Origins) > 0 {
		origins := strings.Join(deps.Origins, ",")
		app.Use(cors.New(cors.Config{
			AllowOrigins: origins,
			AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
			// fiber rechaza credenciales con comodín
			AllowCredentials: !strings.Contains(origins, "*"),
		}))
	}

	// Rutas protegidas (requieren Bearer Token de Supabase)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Empresas
	companies := api.Group("/empresas")
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.ObligationUC, deps.ReportUC, deps.Clock, deps.Log)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id/obligaciones", companyHandler.ListObligations)
	companies.Get("/:id/obligaciones/pdf", companyHandler.DownloadReport)

	// Obligaciones
	obligations := api.Group("/obligaciones")
	obligationHandler := NewObligationHandler(deps.ObligationUC, deps.Log)
	obligations.Post("/", obligationHandler.Create)
	obligations.Patch("/:id", obligationHandler.Update)
	obligations.Delete("/:id", obligationHandler.Delete)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Clock, deps.Log)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Recordatorios (disparo manual)
	if deps.Reminders != nil {
		reminderHandler := NewReminderHandler(deps.Reminders, deps.Clock, deps.Log)
		api.Post("/recordatorios/ejecutar",
			RequireFeature("recordatorios manuales", deps.ManualTrigger),
			reminderHandler.Run,
		)
	}
}
