package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/contabilisync/backend/services"
	"github.com/contabilisync/backend/utils"
)

// AppointmentController exposes the appointment scheduler over HTTP.
type AppointmentController struct {
	appointments *services.AppointmentService
}

func NewAppointmentController(appointments *services.AppointmentService) *AppointmentController {
	return &AppointmentController{appointments: appointments}
}

// GetAllAppointments godoc
// @Summary Get all appointments
// @Tags citas
// @Produce json
// @Success 200 {array} models.Appointment
// @Failure 500 {object} utils.ErrorResponse
// @Router /citas [get]
func (ac *AppointmentController) GetAllAppointments(c *fiber.Ctx) error {
	appointments, err := ac.appointments.List()
	if err != nil {
		return respondError(c, "Failed to fetch appointments", err)
	}
	return c.JSON(appointments)
}

// GetAppointment godoc
// @Summary Get an appointment by ID
// @Tags citas
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 404 {object} utils.ErrorResponse
// @Router /citas/{id} [get]
func (ac *AppointmentController) GetAppointment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Invalid appointment ID", err))
	}
	appointment, err := ac.appointments.Get(uint(id))
	if err != nil {
		return respondError(c, "Appointment not found", err)
	}
	return c.JSON(appointment)
}

// GetAppointmentsByAccountant godoc
// @Summary Get all appointments assigned to an accountant
// @Tags citas
// @Produce json
// @Param id path int true "Accountant ID"
// @Success 200 {array} models.Appointment
// @Failure 500 {object} utils.ErrorResponse
// @Router /citas/contador/{id} [get]
func (ac *AppointmentController) GetAppointmentsByAccountant(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Invalid accountant ID", err))
	}
	appointments, err := ac.appointments.ListByAccountant(uint(id))
	if err != nil {
		return respondError(c, "Failed to fetch appointments", err)
	}
	return c.JSON(appointments)
}

// GetAppointmentsByTaxpayer godoc
// @Summary Get all appointments of a taxpayer
// @Tags citas
// @Produce json
// @Param id path int true "Taxpayer ID"
// @Success 200 {array} models.Appointment
// @Failure 500 {object} utils.ErrorResponse
// @Router /citas/contribuyente/{id} [get]
func (ac *AppointmentController) GetAppointmentsByTaxpayer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Invalid taxpayer ID", err))
	}
	appointments, err := ac.appointments.ListByTaxpayer(uint(id))
	if err != nil {
		return respondError(c, "Failed to fetch appointments", err)
	}
	return c.JSON(appointments)
}

// CheckAvailability godoc
// @Summary Check whether an accountant is free at a given slot
// @Tags citas
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param time query string true "Time of day (HH:MM)"
// @Param contador query int true "Accountant ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} utils.ErrorResponse
// @Router /citas/disponibilidad [get]
func (ac *AppointmentController) CheckAvailability(c *fiber.Ctx) error {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Invalid date, use YYYY-MM-DD", err))
	}
	timeOfDay := c.Query("time")
	if _, err := time.Parse("15:04", timeOfDay); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Invalid time, use HH:MM", err))
	}
	accountantID := c.QueryInt("contador")
	if accountantID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Invalid accountant ID", nil))
	}
	available, err := ac.appointments.IsSlotAvailable(date, timeOfDay, uint(accountantID))
	if err != nil {
		return respondError(c, "Failed to check availability", err)
	}
	return c.JSON(fiber.Map{"available": available})
}

// CreateAppointment godoc
// @Summary Create a new appointment
// @Tags citas
// @Accept json
// @Produce json
// @Param appointment body services.AppointmentInput true "Appointment"
// @Success 201 {object} models.Appointment
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /citas [post]
func (ac *AppointmentController) CreateAppointment(c *fiber.Ctx) error {
	var input services.AppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Failed to parse request body", err))
	}
	appointment, err := ac.appointments.Create(input)
	if err != nil {
		return respondError(c, "Failed to create appointment", err)
	}
	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// UpdateAppointment godoc
// @Summary Update an appointment by ID
// @Tags citas
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param appointment body services.AppointmentInput true "Appointment"
// @Success 200 {object} models.Appointment
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /citas/{id} [put]
func (ac *AppointmentController) UpdateAppointment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Invalid appointment ID", err))
	}
	var input services.AppointmentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Failed to parse request body", err))
	}
	appointment, err := ac.appointments.Update(uint(id), input)
	if err != nil {
		return respondError(c, "Failed to update appointment", err)
	}
	return c.JSON(appointment)
}

// DeleteAppointment godoc
// @Summary Delete an appointment by ID
// @Tags citas
// @Param id path int true "Appointment ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /citas/{id} [delete]
func (ac *AppointmentController) DeleteAppointment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Invalid appointment ID", err))
	}
	if err := ac.appointments.Delete(uint(id)); err != nil {
		return respondError(c, "Failed to delete appointment", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
