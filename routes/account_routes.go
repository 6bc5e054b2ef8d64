package routes

import (
	"github.com/ardiansyahnr/edu_platform/handlers"
	"github.com/ardiansyahnr/edu_platform/middleware"
	"github.com/gofiber/fiber/v2"
)

func AccountRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	users := api.Group("/users", middleware.Protected(), middleware.ActiveSession())
	users.Get("", handlers.ListUsers)
	users.Delete("/:userId", middleware.AdminRequired(), handlers.AdminDeleteUser)
}
