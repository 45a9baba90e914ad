package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contabilisync/backend/controllers"
)

// SetupUserRoutes configures all user directory routes.
func SetupUserRoutes(app *fiber.App, users *controllers.UserController) {
	group := app.Group("/usuarios")
	group.Get("/", users.GetAllUsers)
	group.Get("/contadores", users.GetAccountants)
	group.Get("/:id", users.GetUser)
	group.Post("/", users.CreateUser)
	group.Put("/:id", users.UpdateUser)
	group.Delete("/:id", users.DeleteUser)
}
