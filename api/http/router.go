package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/cvdesk/api/http/handlers"
)

// Handlers groups every HTTP handler the router wires.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Health    *handlers.HealthHandler
	Dashboard *handlers.DashboardHandler
	CVs       *handlers.CVHandler
	Uploads   *handlers.UploadHandler
	Chat      *handlers.ChatHandler
	Admin     *handlers.AdminHandler
}

// Register wires all HTTP routes onto given Fiber app.
// authMW authenticates the caller; adminMW must run after it.
func Register(app *fiber.App, h Handlers, authMW, adminMW fiber.Handler) {
	v1 := app.Group("/api").Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)
	a.Get("/me", authMW, h.Auth.Me)

	v1.Get("/dashboard", authMW, h.Dashboard.Stats)

	cvs := v1.Group("/cvs", authMW)
	cvs.Get("/", h.CVs.List)
	cvs.Get("/recent", h.CVs.Recent)
	cvs.Get("/filters", h.CVs.Filters)
	cvs.Get("/export", h.CVs.Export)
	cvs.Get("/:id", h.CVs.Get)
	cvs.Get("/:id/file", h.CVs.Download)
	cvs.Delete("/:id", h.CVs.Delete)

	up := v1.Group("/uploads", authMW)
	up.Post("/", h.Uploads.Upload)
	up.Get("/remaining", h.Uploads.Remaining)

	v1.Post("/chat", authMW, h.Chat.Ask)

	admin := v1.Group("/admin", authMW, adminMW)
	admin.Get("/users/:id/quota", h.Admin.GetQuota)
	admin.Put("/users/:id/quota", h.Admin.SetQuota)
}
