package controllers

import (
	"github.com/gofiber/fiber/v2"

	"senya/backend/models"
	"senya/backend/services"
	"senya/backend/utils"
)

// AdminController manages curriculum content. Routes are behind RequireRole(admin).
type AdminController struct {
	Content *services.ContentService
}

func NewAdminController(content *services.ContentService) *AdminController {
	return &AdminController{Content: content}
}

func (ac *AdminController) CreateUnit(c *fiber.Ctx) error {
	var unit models.Unit
	if err := c.BodyParser(&unit); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := ac.Content.CreateUnit(c.UserContext(), &unit); err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, unit)
}

func (ac *AdminController) CreateLesson(c *fiber.Ctx) error {
	var lesson models.Lesson
	if err := c.BodyParser(&lesson); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := ac.Content.CreateLesson(c.UserContext(), &lesson); err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, lesson)
}

func (ac *AdminController) ArchiveLesson(c *fiber.Ctx) error {
	lessonID, ok := idParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid lesson ID")
	}
	if err := ac.Content.ArchiveLesson(c.UserContext(), lessonID); err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"id": lessonID, "archived": true})
}

func (ac *AdminController) CreateLevel(c *fiber.Ctx) error {
	var level models.PracticeLevel
	if err := c.BodyParser(&level); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := ac.Content.CreateLevel(c.UserContext(), &level); err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, level)
}

func (ac *AdminController) CreateGame(c *fiber.Ctx) error {
	var game models.PracticeGame
	if err := c.BodyParser(&game); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := ac.Content.CreateGame(c.UserContext(), &game); err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, game)
}

func (ac *AdminController) CreateHeartPackage(c *fiber.Ctx) error {
	var pkg models.HeartPackage
	if err := c.BodyParser(&pkg); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if err := ac.Content.CreateHeartPackage(c.UserContext(), &pkg); err != nil {
		return respondError(c, err)
	}
	return utils.Created(c, pkg)
}

// ImportSigns godoc
// @Summary Import lesson signs from a spreadsheet
// @Description Columns: A text, B video_url, C difficulty. The first row is a header.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Lesson ID"
// @Param file formData file true "xlsx workbook"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/lessons/{id}/signs/import [post]
func (ac *AdminController) ImportSigns(c *fiber.Ctx) error {
	lessonID, ok := idParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid lesson ID")
	}
	header, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest(c, "file is required")
	}
	file, err := header.Open()
	if err != nil {
		return utils.BadRequest(c, "Cannot read file")
	}
	defer file.Close()

	res, err := ac.Content.ImportSigns(c.UserContext(), lessonID, file, services.DefaultSignColumns)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, res)
}

func (ac *AdminController) ListUnits(c *fiber.Ctx) error {
	units, err := ac.Content.ListUnits(c.UserContext(), c.QueryBool("include_archived"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, units)
}

func (ac *AdminController) UpdateUnit(c *fiber.Ctx) error {
	unitID, ok := idParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid unit ID")
	}
	var input services.UpdateUnitInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	unit, err := ac.Content.UpdateUnit(c.UserContext(), unitID, input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, unit)
}

// ArchiveUnit archives the unit, its lessons and their signs.
func (ac *AdminController) ArchiveUnit(c *fiber.Ctx) error {
	unitID, ok := idParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid unit ID")
	}
	if err := ac.Content.ArchiveUnit(c.UserContext(), unitID); err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"id": unitID, "archived": true})
}

func (ac *AdminController) ListLessons(c *fiber.Ctx) error {
	unitID, ok := idParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid unit ID")
	}
	lessons, err := ac.Content.ListLessons(c.UserContext(), unitID, c.QueryBool("include_archived"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, lessons)
}

func (ac *AdminController) UpdateLesson(c *fiber.Ctx) error {
	lessonID, ok := idParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid lesson ID")
	}
	var input services.UpdateLessonInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	lesson, err := ac.Content.UpdateLesson(c.UserContext(), lessonID, input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, lesson)
}

func (ac *AdminController) ListSigns(c *fiber.Ctx) error {
	lessonID, ok := idParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid lesson ID")
	}
	signs, err := ac.Content.ListSigns(c.UserContext(), lessonID, c.QueryBool("include_archived"))
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, signs)
}

func (ac *AdminController) UpdateSign(c *fiber.Ctx) error {
	signID, ok := idParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid sign ID")
	}
	var input services.UpdateSignInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	sign, err := ac.Content.UpdateSign(c.UserContext(), signID, input)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, sign)
}

func (ac *AdminController) ArchiveSign(c *fiber.Ctx) error {
	signID, ok := idParam(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid sign ID")
	}
	if err := ac.Content.ArchiveSign(c.UserContext(), signID); err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"id": signID, "archived": true})
}
