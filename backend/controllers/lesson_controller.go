package controllers

import (
	"github.com/gofiber/fiber/v2"

	"senya/backend/progression"
	"senya/backend/services"
	"senya/backend/utils"
)

type LessonController struct {
	Svc *services.ProgressionService
}

func NewLessonController(svc *services.ProgressionService) *LessonController {
	return &LessonController{Svc: svc}
}

// GetUnits godoc
// @Summary List units
// @Description Active units in order, each with its active lessons
// @Tags lessons
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /lessons/units [get]
func (lc *LessonController) GetUnits(c *fiber.Ctx) error {
	units, err := lc.Svc.Units(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, units)
}

func (lc *LessonController) GetLessonProgress(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}
	lessonID, ok := idParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	progress, err := lc.Svc.LessonProgress(c.UserContext(), userID, lessonID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, progress)
}

// UpdateLessonProgress godoc
// @Summary Submit a quiz answer
// @Description Applies one answer: progress never decreases, a wrong answer costs a heart,
// @Description the lesson reward is paid once on completion
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Param answer body progression.LessonAnswer true "Answer"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /lessons/{id}/progress [patch]
func (lc *LessonController) UpdateLessonProgress(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}
	lessonID, ok := idParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var answer progression.LessonAnswer
	if err := c.BodyParser(&answer); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	outcome, err := lc.Svc.UpdateLessonProgress(c.UserContext(), userID, lessonID, answer)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, outcome)
}

func (lc *LessonController) GetUnitProgress(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}
	unitID, ok := idParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid unit ID")
	}

	progress, err := lc.Svc.UnitProgress(c.UserContext(), userID, unitID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, progress)
}

// Status returns a handler reporting {is_locked} for one kind of entity.
func (lc *LessonController) Status(kind progression.EntityKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := currentUser(c)
		if !ok {
			return utils.Unauthorized(c, "Unauthorized")
		}
		id, ok := idParam(c, "id")
		if !ok {
			return utils.BadRequest(c, "Invalid ID")
		}

		unlocked, err := lc.Svc.IsUnlocked(c.UserContext(), kind, id, userID)
		if err != nil {
			return respondError(c, err)
		}
		return utils.Success(c, fiber.StatusOK, fiber.Map{"is_locked": !unlocked})
	}
}

// RefreshHearts godoc
// @Summary Regenerate hearts
// @Description Credits one heart per full 10 minutes since the last regeneration, up to 5
// @Tags lessons
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /lessons/refresh-hearts [post]
func (lc *LessonController) RefreshHearts(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}
	res, err := lc.Svc.RegenerateHearts(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, res)
}

func (lc *LessonController) GetDailyChallenge(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}
	lesson, err := lc.Svc.DailyChallenge(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, lesson)
}

func (lc *LessonController) CompleteDailyChallenge(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}
	res, err := lc.Svc.CompleteDailyChallenge(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, res)
}

func (lc *LessonController) ListLessons(c *fiber.Ctx) error {
	lessons, err := lc.Svc.Lessons(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, lessons)
}

// GetLesson returns an active lesson with its active signs.
func (lc *LessonController) GetLesson(c *fiber.Ctx) error {
	lessonID, ok := idParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid lesson ID")
	}
	lesson, err := lc.Svc.Lesson(c.UserContext(), lessonID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, lesson)
}

// GetQuiz godoc
// @Summary Generate a lesson quiz
// @Description Two questions per active sign: pick the text for a video, pick the video for a text
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /lessons/{id}/quiz [get]
func (lc *LessonController) GetQuiz(c *fiber.Ctx) error {
	lessonID, ok := idParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid lesson ID")
	}
	quiz, err := lc.Svc.GenerateQuiz(c.UserContext(), lessonID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, quiz)
}

func (lc *LessonController) GetContentTree(c *fiber.Ctx) error {
	units, err := lc.Svc.ContentTree(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, units)
}
