package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobtracker/api/http/handlers"
)

// Handlers groups the route handlers. Auth is nil when identities come from
// an external provider.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Health       *handlers.HealthHandler
	Account      *handlers.AccountHandler
	Applications *handlers.ApplicationHandler
	Interviews   *handlers.InterviewHandler
	Resources    *handlers.ResourceHandler
	Questions    *handlers.QuestionHandler
}

// Register wires all HTTP routes onto given Fiber app. gate guards every
// route except probes and local auth.
func Register(app *fiber.App, h Handlers, gate fiber.Handler) {
	api := app.Group("/api")

	// Health and readiness endpoints for probes/monitoring
	api.Get("/health", h.Health.Health)
	api.Get("/ready", h.Health.Ready)

	if h.Auth != nil {
		a := api.Group("/auth")
		a.Post("/register", h.Auth.Register)
		a.Post("/login", h.Auth.Login)
	}

	me := api.Group("/me", gate)
	me.Get("", h.Account.Get)
	me.Delete("", h.Account.Delete)

	// Static segments go before /:id.
	apps := api.Group("/applications", gate)
	apps.Get("", h.Applications.List)
	apps.Get("/stats", h.Applications.Stats)
	apps.Post("", h.Applications.Create)
	apps.Get("/:id", h.Applications.Get)
	apps.Patch("/:id", h.Applications.Update)
	apps.Delete("/:id", h.Applications.Delete)

	iv := api.Group("/interviews", gate)
	iv.Get("", h.Interviews.List)
	iv.Get("/upcoming", h.Interviews.Upcoming)
	iv.Post("", h.Interviews.Create)
	iv.Get("/:id", h.Interviews.Get)
	iv.Patch("/:id", h.Interviews.Update)
	iv.Delete("/:id", h.Interviews.Delete)

	res := api.Group("/resources", gate)
	res.Get("", h.Resources.List)
	res.Post("", h.Resources.Create)
	res.Get("/:id", h.Resources.Get)
	res.Patch("/:id", h.Resources.Update)
	res.Delete("/:id", h.Resources.Delete)

	qs := api.Group("/questions", gate)
	qs.Get("", h.Questions.List)
	qs.Post("", h.Questions.Create)
	qs.Get("/:id", h.Questions.Get)
	qs.Patch("/:id", h.Questions.Update)
	qs.Delete("/:id", h.Questions.Delete)
	qs.Post("/:id/suggestion", h.Questions.Suggest)
}
