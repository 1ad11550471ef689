package controllers

import (
	"github.com/gofiber/fiber/v2"

	"senya/backend/services"
	"senya/backend/utils"
)

type ProfileController struct {
	Svc *services.ProgressionService
}

func NewProfileController(svc *services.ProgressionService) *ProfileController {
	return &ProfileController{Svc: svc}
}

// GetStatus godoc
// @Summary Current economy state
// @Tags profile
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /status [get]
func (pc *ProfileController) GetStatus(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}
	profile, err := pc.Svc.Profile(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, profile)
}

func (pc *ProfileController) GetHeartTimer(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}
	timer, err := pc.Svc.HeartTimer(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, timer)
}

func (pc *ProfileController) IssueCertificate(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}
	cert, err := pc.Svc.IssueCertificate(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, cert)
}
