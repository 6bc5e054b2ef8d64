package routes

import (
	"github.com/ardiansyahnr/edu_platform/handlers"
	"github.com/ardiansyahnr/edu_platform/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/verify-otp", handlers.VerifyOtp)
	auth.Post("/resend-register-otp", handlers.ResendRegisterOtp)
	auth.Post("/login", handlers.LoginUser)
	auth.Post("/forgot-password", handlers.ForgotPassword)
	auth.Post("/verify-forgot-otp", handlers.VerifyForgotOtp)
	auth.Post("/reset-password", handlers.ResetPassword)

	api.Get("/profile", middleware.Protected(), middleware.ActiveSession(), handlers.GetProfile)
}
