package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/deskhub/helpdesk-service/internal/api/http/handlers"
	"github.com/deskhub/helpdesk-service/internal/auth"
	"github.com/deskhub/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Comments       *handlers.CommentsHandler
	Products       *handlers.ProductsHandler
	Users          *handlers.UsersHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Route-level guards only check role
// membership; resource-level decisions (ownership, field sanctioning) live
// in the policy package behind the services.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Put("/:id", cfg.Tickets.UpdateTicket)
	tickets.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Tickets.DeleteTicket)

	comments := app.Group("/comments", cfg.AuthMiddleware.Handle)
	comments.Get("/ticket/:ticketId", cfg.Comments.ListForTicket)
	comments.Post("/", cfg.Comments.AddComment)

	products := app.Group("/products", cfg.AuthMiddleware.Handle)
	products.Get("/", cfg.Products.ListProducts)
	products.Get("/:id", cfg.Products.GetProduct)
	products.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Products.CreateProduct)
	products.Put("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Products.UpdateProduct)
	products.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Products.DeleteProduct)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/agents", auth.RequireRole(domain.RoleAdmin, domain.RoleAgent), cfg.Users.ListAgents)
	users.Get("/", auth.RequireRole(domain.RoleAdmin), cfg.Users.ListUsers)
	users.Post("/", auth.RequireRole(domain.RoleAdmin), cfg.Users.CreateUser)
	users.Put("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Users.UpdateUser)
	users.Post("/:id/reset-password", auth.RequireRole(domain.RoleAdmin), cfg.Users.ResetPassword)

	dashboard := app.Group("/dashboard", cfg.AuthMiddleware.Handle)
	dashboard.Get("/stats", cfg.Dashboard.Stats)
}
