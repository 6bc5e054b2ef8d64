package routes

import (
	"github.com/ardiansyahnr/edu_platform/handlers"
	"github.com/ardiansyahnr/edu_platform/middleware"
	"github.com/gofiber/fiber/v2"
)

// Reads are open to any authenticated user; mutations are admin only.
func LearningRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	categories := api.Group("/categories", middleware.Protected(), middleware.ActiveSession())
	categories.Get("", handlers.ListCategories)
	categories.Get("/:categoryId", handlers.GetCategory)
	categories.Post("", middleware.AdminRequired(), handlers.CreateCategory)
	categories.Put("/:categoryId", middleware.AdminRequired(), handlers.UpdateCategory)
	categories.Delete("/:categoryId", middleware.AdminRequired(), handlers.DeleteCategory)

	modules := api.Group("/modules", middleware.Protected(), middleware.ActiveSession())
	modules.Get("", handlers.ListModules)
	modules.Get("/:moduleId", handlers.GetModule)
	modules.Post("", middleware.AdminRequired(), handlers.CreateModule)
	modules.Put("/:moduleId", middleware.AdminRequired(), handlers.UpdateModule)
	modules.Delete("/:moduleId", middleware.AdminRequired(), handlers.DeleteModule)
}
