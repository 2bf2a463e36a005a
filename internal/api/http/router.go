package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Catalog     *handlers.CatalogHandler
	JobProblems *handlers.JobProblemsHandler
	Requests    *handlers.RequestsHandler
	Specialists *handlers.SpecialistsHandler
	Directory   *handlers.DirectoryHandler
	Reports     *handlers.ReportsHandler
	// AuthMiddleware guards /api when set.
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")
	if cfg.AuthMiddleware != nil {
		api.Use(cfg.AuthMiddleware.Handle)
	}

	jobTitles := api.Group("/job-titles")
	jobTitles.Get("/", cfg.Catalog.List(domain.KindJobTitle))
	jobTitles.Get("/lookup", cfg.Catalog.Lookup(domain.KindJobTitle))
	jobTitles.Get("/:id", cfg.Catalog.Get(domain.KindJobTitle))

	problemTypes := api.Group("/problem-types")
	problemTypes.Get("/", cfg.Catalog.List(domain.KindProblemType))
	problemTypes.Get("/:id", cfg.Catalog.Get(domain.KindProblemType))
	problemTypes.Get("/:id/resolvers", cfg.Catalog.Resolvers)

	for prefix, kind := range map[string]domain.CatalogKind{
		"/statuses":    domain.KindStatus,
		"/departments": domain.KindDepartment,
	} {
		group := api.Group(prefix)
		group.Get("/", cfg.Catalog.List(kind))
		group.Post("/", cfg.Catalog.Create(kind))
		group.Get("/:id", cfg.Catalog.Get(kind))
		group.Put("/:id", cfg.Catalog.Rename(kind))
		group.Delete("/:id", cfg.Catalog.Delete(kind))
	}

	offices := api.Group("/offices")
	offices.Get("/", cfg.Directory.ListOffices)
	offices.Post("/", cfg.Directory.CreateOffice)
	offices.Get("/:id", cfg.Directory.GetOffice)
	offices.Put("/:id", cfg.Directory.UpdateOffice)
	offices.Delete("/:id", cfg.Directory.DeleteOffice)

	workers := api.Group("/workers")
	workers.Get("/", cfg.Directory.ListWorkers)
	workers.Post("/", cfg.Directory.CreateWorker)
	workers.Get("/:id", cfg.Directory.GetWorker)
	workers.Put("/:id", cfg.Directory.UpdateWorker)
	workers.Delete("/:id", cfg.Directory.DeleteWorker)

	jobProblems := api.Group("/job-problems")
	jobProblems.Get("/", cfg.JobProblems.List)
	jobProblems.Post("/", cfg.JobProblems.Create)
	jobProblems.Get("/:id", cfg.JobProblems.Get)
	jobProblems.Put("/:id", cfg.JobProblems.Update)
	jobProblems.Delete("/:id", cfg.JobProblems.Delete)

	requests := api.Group("/requests")
	requests.Get("/", cfg.Requests.List)
	requests.Post("/", cfg.Requests.Create)
	requests.Get("/:id", cfg.Requests.Get)
	requests.Put("/:id", cfg.Requests.UpdateStatus)
	requests.Put("/:id/assignment", cfg.Requests.Assign)
	requests.Delete("/:id", cfg.Requests.Delete)

	specialists := api.Group("/specialists")
	specialists.Get("/", cfg.Specialists.List)
	specialists.Post("/", cfg.Specialists.Create)
	specialists.Get("/:id", cfg.Specialists.Get)
	specialists.Delete("/:id", cfg.Specialists.Delete)
	specialists.Get("/:id/requests", cfg.Specialists.Requests)
	specialists.Get("/:id/job-title", cfg.Specialists.JobTitle)

	reports := api.Group("/reports")
	reports.Get("/resolution-time", cfg.Reports.ResolutionTime)
	reports.Get("/handling-time", cfg.Reports.HandlingTime)
	reports.Get("/problem-types", cfg.Reports.ProblemTypes)
	reports.Get("/status-by-month", cfg.Reports.StatusByMonth)
}
