package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"senya/backend/models"
	"senya/backend/services"
	"senya/backend/utils"
)

type UserController struct {
	Accounts *services.AccountService
}

func NewUserController(accounts *services.AccountService) *UserController {
	return &UserController{Accounts: accounts}
}

func accountView(account models.Account) fiber.Map {
	return fiber.Map{
		"id":          account.ID,
		"name":        account.Name,
		"username":    account.Username,
		"email":       account.Email,
		"role":        account.Role,
		"created_at":  account.CreatedAt,
		"last_login":  account.LastLogin,
		"profile_url": account.Profile.ProfileURL,
		"hearts":      account.Profile.Hearts,
		"rubies":      account.Profile.Rubies,
		"streak":      account.Profile.Streak,
		"certificate": account.Profile.Certificate,
	}
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns account data together with the economy profile
// @Tags user
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}
	account, err := uc.Accounts.Account(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, accountView(account))
}

// UpdateProfile godoc
// @Summary Update user profile
// @Description Updates name, avatar URL and password. Changing the password requires the old one.
// @Tags user
// @Accept json
// @Produce json
// @Param request body services.UpdateProfileInput true "Profile update data"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /profile [put]
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}
	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	account, err := uc.Accounts.UpdateProfile(c.UserContext(), userID, input)
	if errors.Is(err, services.ErrInvalidCredentials) {
		return utils.Unauthorized(c, "Invalid old password")
	}
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, accountView(account))
}
