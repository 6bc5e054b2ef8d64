package routes

import (
	"github.com/ardiansyahnr/edu_platform/handlers"
	"github.com/ardiansyahnr/edu_platform/middleware"
	"github.com/gofiber/fiber/v2"
)

func QuizRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	quizzes := api.Group("/quizzes", middleware.Protected(), middleware.ActiveSession())
	quizzes.Get("", handlers.ListQuizzes)
	quizzes.Get("/my-scores", handlers.GetMyQuizScores)
	quizzes.Get("/:quizId", handlers.GetQuizDetail)
	quizzes.Get("/:quizId/questions", handlers.GetQuestions)
	quizzes.Get("/:quizId/leaderboard", handlers.GetLeaderboard)
	quizzes.Post("/:quizId/submit", handlers.SubmitQuiz)

	quizzes.Post("", middleware.AdminRequired(), handlers.CreateQuiz)
	quizzes.Put("/:quizId", middleware.AdminRequired(), handlers.UpdateQuiz)
	quizzes.Delete("/:quizId", middleware.AdminRequired(), handlers.DeleteQuiz)
	quizzes.Post("/:quizId/questions", middleware.AdminRequired(), handlers.AddQuestion)

	questions := api.Group("/questions", middleware.Protected(), middleware.ActiveSession(), middleware.AdminRequired())
	questions.Put("/:questionId", handlers.UpdateQuestion)
	questions.Delete("/:questionId", handlers.DeleteQuestion)
	questions.Post("/:questionId/options", handlers.AddOption)

	options := api.Group("/options", middleware.Protected(), middleware.ActiveSession(), middleware.AdminRequired())
	options.Put("/:optionId", handlers.UpdateOption)
	options.Delete("/:optionId", handlers.DeleteOption)
}
