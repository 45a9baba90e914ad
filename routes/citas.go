package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contabilisync/backend/controllers"
)

// SetupAppointmentRoutes configures all appointment scheduling routes.
func SetupAppointmentRoutes(app *fiber.App, appointments *controllers.AppointmentController) {
	group := app.Group("/citas")
	group.Get("/", appointments.GetAllAppointments)
	group.Get("/disponibilidad", appointments.CheckAvailability)
	group.Get("/contador/:id", appointments.GetAppointmentsByAccountant)
	group.Get("/contribuyente/:id", appointments.GetAppointmentsByTaxpayer)
	group.Get("/:id", appointments.GetAppointment)
	group.Post("/", appointments.CreateAppointment)
	group.Put("/:id", appointments.UpdateAppointment)
	group.Delete("/:id", appointments.DeleteAppointment)
}
