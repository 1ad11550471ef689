package controllers

import (
	"github.com/gofiber/fiber/v2"

	"senya/backend/services"
	"senya/backend/utils"
)

// AnalyticsController serves the admin dashboard.
type AnalyticsController struct {
	Svc *services.AnalyticsService
}

func NewAnalyticsController(svc *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Svc: svc}
}

// GetSummary godoc
// @Summary Dashboard summary
// @Description Active and archived content counts and obtainable rubies
// @Tags admin
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /admin/dashboard/summary [get]
func (ac *AnalyticsController) GetSummary(c *fiber.Ctx) error {
	summary, err := ac.Svc.Summary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, summary)
}

func (ac *AnalyticsController) GetLessonsPerUnit(c *fiber.Ctx) error {
	rows, err := ac.Svc.LessonsPerUnit(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, rows)
}

func (ac *AnalyticsController) GetSignsPerLesson(c *fiber.Ctx) error {
	rows, err := ac.Svc.SignsPerLesson(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, rows)
}

func (ac *AnalyticsController) GetSignsByDifficulty(c *fiber.Ctx) error {
	summary, err := ac.Svc.SignsByDifficulty(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, summary)
}

// GetUserPerformance returns the lessons with the most unfinished attempts
// and the lowest average progress.
func (ac *AnalyticsController) GetUserPerformance(c *fiber.Ctx) error {
	perf, err := ac.Svc.UserPerformance(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, perf)
}
