package controllers

import (
	"github.com/gofiber/fiber/v2"

	"senya/backend/models"
	"senya/backend/progression"
	"senya/backend/services"
	"senya/backend/utils"
)

type PracticeController struct {
	Svc *services.ProgressionService
}

func NewPracticeController(svc *services.ProgressionService) *PracticeController {
	return &PracticeController{Svc: svc}
}

func (pc *PracticeController) GetLevels(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}
	view, err := pc.Svc.PracticeLevels(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, view)
}

// UpdateProgress godoc
// @Summary Submit a practice round
// @Description Records the score of one game round and pays the ruby reward
// @Tags practice
// @Accept json
// @Produce json
// @Param round body progression.PracticeRound true "Round result"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /practice/progress [post]
func (pc *PracticeController) UpdateProgress(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}
	var round progression.PracticeRound
	if err := c.BodyParser(&round); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	outcome, err := pc.Svc.UpdatePracticeScore(c.UserContext(), userID, round)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, outcome)
}

func (pc *PracticeController) GetHearts(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}
	wallet, err := pc.Svc.Wallet(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, wallet)
}

// GetSigns lists practice signs; ?difficulty=beginner|intermediate|advanced.
func (pc *PracticeController) GetSigns(c *fiber.Ctx) error {
	signs, err := pc.Svc.PracticeSigns(c.UserContext(), models.Difficulty(c.Query("difficulty")))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, signs)
}
