package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contabilisync/backend/services"
	"github.com/contabilisync/backend/utils"
)

// AuthController handles login and password changes. Login returns a plain
// confirmation payload; this API does not issue tokens.
type AuthController struct {
	users *services.UserService
}

func NewAuthController(users *services.UserService) *AuthController {
	return &AuthController{users: users}
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Message string `json:"message"`
}

// Login godoc
// @Summary Authenticate a user
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body loginInput true "Credentials"
// @Success 200 {object} loginResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Failed to parse request body", err))
	}

	user, err := ac.users.Authenticate(input.Email, input.Password)
	if err != nil {
		return respondError(c, "Login failed", err)
	}
	if user == nil {
		// Uniform rejection: the response never says whether the email or
		// the password was the wrong half.
		return c.Status(fiber.StatusUnauthorized).JSON(utils.E("Invalid credentials", nil))
	}

	return c.JSON(loginResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Role:    string(user.Role),
		Message: "Login successful",
	})
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword godoc
// @Summary Change a user's password
// @Tags auth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param passwords body changePasswordInput true "Passwords"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} utils.ErrorResponse
// @Router /auth/change-password/{id} [post]
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Invalid user ID", err))
	}
	var input changePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.E("Failed to parse request body", err))
	}

	changed, err := ac.users.ChangePassword(uint(id), input.CurrentPassword, input.NewPassword)
	if err != nil {
		return respondError(c, "Failed to change password", err)
	}
	if !changed {
		// Same uniform shape whether the user was unknown or the current
		// password did not verify.
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"changed": false})
	}
	return c.JSON(fiber.Map{"changed": true})
}
