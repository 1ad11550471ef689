package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"senya/backend/config"
	"senya/backend/models"
	"senya/backend/services"
	"senya/backend/utils"
)

type AuthController struct {
	Accounts *services.AccountService
	Cfg      *config.Config
}

func NewAuthController(accounts *services.AccountService, cfg *config.Config) *AuthController {
	return &AuthController{Accounts: accounts, Cfg: cfg}
}

type loginInput struct {
	Login    string `json:"login"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in loginInput) identifier() string {
	switch {
	case in.Login != "":
		return in.Login
	case in.Username != "":
		return in.Username
	}
	return in.Email
}

// Register godoc
// @Summary Register a new user
// @Description Creates an account with a fresh profile (5 hearts, 0 rubies)
// @Tags auth
// @Accept json
// @Produce json
// @Param user body services.RegisterInput true "Registration data"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	account, err := ac.Accounts.Register(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return ac.issueToken(c, fiber.StatusCreated, account)
}

// Login godoc
// @Summary User login
// @Description Authenticate by username or email and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	return ac.login(c, "")
}

// AdminLogin is Login restricted to admin accounts.
func (ac *AuthController) AdminLogin(c *fiber.Ctx) error {
	return ac.login(c, models.RoleAdmin)
}

func (ac *AuthController) login(c *fiber.Ctx, role models.Role) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.identifier() == "" || input.Password == "" {
		return utils.BadRequest(c, "Login and password are required")
	}

	account, err := ac.Accounts.Authenticate(c.UserContext(), input.identifier(), input.Password, role)
	if errors.Is(err, services.ErrInvalidCredentials) {
		return utils.Unauthorized(c, "Invalid credentials")
	}
	if err != nil {
		return respondError(c, err)
	}
	return ac.issueToken(c, fiber.StatusOK, account)
}

func (ac *AuthController) issueToken(c *fiber.Ctx, status int, account models.Account) error {
	token, err := utils.GenerateJWTToken(account.ID, account.Role, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}
	return utils.Success(c, status, fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":       account.ID,
			"name":     account.Name,
			"username": account.Username,
			"email":    account.Email,
			"role":     account.Role,
		},
	})
}
