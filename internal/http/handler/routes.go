package handler

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"

	"userapi/docs"
	"userapi/internal/http/middleware"
)

// Store is the database surface the routes need.
type Store interface {
	SessionOpener
	Pinger
}

// Dependencies are the collaborators injected into the route layer.
type Dependencies struct {
	Store             Store
	NewUserRepository UserRepositoryFactory
	// Metrics serves the Prometheus exposition format; the route is skipped when nil.
	Metrics http.Handler
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	app.Get("/", Root())

	app.Get("/health", HealthCheck(deps.Store))
	app.Get("/healthz", LivenessProbe())

	if deps.Metrics != nil {
		app.Get(middleware.MetricsPath, adaptor.HTTPHandler(deps.Metrics))
	}
	app.Get("/swagger/*", SwaggerUI())

	app.Post("/users", CreateUser(deps.Store, deps.NewUserRepository))
	app.Get("/users", ListUsers(deps.Store, deps.NewUserRepository))
	app.Get("/users/:id", GetUser(deps.Store, deps.NewUserRepository))
	app.Delete("/users/:id", DeleteUser(deps.Store, deps.NewUserRepository))
}

// SwaggerUI serves the API docs with host and scheme taken from the request,
// honoring X-Forwarded-Proto behind a proxy.
func SwaggerUI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		if host := c.Get("Host"); host != "" {
			docs.SwaggerInfo.Host = host
		}
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	}
}
