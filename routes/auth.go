package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contabilisync/backend/controllers"
)

// SetupAuthRoutes configures login and password-change routes.
func SetupAuthRoutes(app *fiber.App, auth *controllers.AuthController) {
	group := app.Group("/auth")
	group.Post("/login", auth.Login)
	group.Post("/change-password/:id", auth.ChangePassword)
}
