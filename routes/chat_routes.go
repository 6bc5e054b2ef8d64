package routes

import (
	"github.com/ardiansyahnr/edu_platform/handlers"
	"github.com/ardiansyahnr/edu_platform/middleware"
	"github.com/gofiber/fiber/v2"
)

func ChatRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	chat := api.Group("/chat", middleware.Protected(), middleware.ActiveSession())
	chat.Post("/start", handlers.StartChatSession)
	chat.Post("/send", handlers.SendChatMessage)
	chat.Get("/history/:sessionId", handlers.GetChatHistory)
	chat.Post("/end/:sessionId", handlers.EndChatSession)
	chat.Get("/sessions", handlers.ListChatSessions)
}
