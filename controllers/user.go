package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contabilisync/backend/cache"
	"github.com/contabilisync/backend/models"
	"github.com/contabilisync/backend/services"
	"github.com/contabilisync/backend/utils"
)

// UserController exposes the user directory over HTTP.
type UserController struct {
	users       *services.UserService
	accountants *cache.AccountantCache
}

func NewUserController(users *services.UserService, accountants *cache.AccountantCache) *UserController {
	return &UserController{users: users, accountants: accountants}
}

// GetAllUsers godoc
// @Summary Get all users
// @Tags usuarios
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} utils.ErrorResponse
// @Router /usuarios [get]
func (uc *UserController) GetAllUsers(c *fiber.Ctx) error {
	users, err := uc.users.List()
	if err != nil {
		return respondError(c, "Failed to fetch users", err)
	}
	return c.JSON(users)
}

// GetUser godoc
// @Summary Get a user by ID
// @Tags usuarios
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} utils.ErrorResponse
// @Router /usuarios/{id} [get]
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Invalid user ID", err))
	}
	user, err := uc.users.Get(uint(id))
	if err != nil {
		return respondError(c, "User not found", err)
	}
	return c.JSON(user)
}

// GetAccountants godoc
// @Summary Get all registered accountants
// @Tags usuarios
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} utils.ErrorResponse
// @Router /usuarios/contadores [get]
func (uc *UserController) GetAccountants(c *fiber.Ctx) error {
	if users, ok := uc.accountants.Get(c.Context()); ok {
		return c.JSON(users)
	}
	users, err := uc.users.ListByRole(models.RoleAccountant)
	if err != nil {
		return respondError(c, "Failed to fetch accountants", err)
	}
	uc.accountants.Set(c.Context(), users)
	return c.JSON(users)
}

// CreateUser godoc
// @Summary Register a new user
// @Tags usuarios
// @Accept json
// @Produce json
// @Param user body services.CreateInput true "User"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /usuarios [post]
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	var input services.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Failed to parse request body", err))
	}
	user, err := uc.users.Create(input)
	if err != nil {
		return respondError(c, "Failed to create user", err)
	}
	uc.accountants.Invalidate(c.Context())
	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser godoc
// @Summary Update a user by ID
// @Tags usuarios
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body services.UpdateInput true "User"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /usuarios/{id} [put]
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Invalid user ID", err))
	}
	var input services.UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Failed to parse request body", err))
	}
	user, err := uc.users.Update(uint(id), input)
	if err != nil {
		return respondError(c, "Failed to update user", err)
	}
	uc.accountants.Invalidate(c.Context())
	return c.JSON(user)
}

// DeleteUser godoc
// @Summary Delete a user by ID
// @Tags usuarios
// @Param id path int true "User ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /usuarios/{id} [delete]
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Invalid user ID", err))
	}
	if err := uc.users.Delete(uint(id)); err != nil {
		return respondError(c, "Failed to delete user", err)
	}
	uc.accountants.Invalidate(c.Context())
	return c.SendStatus(fiber.StatusNoContent)
}
