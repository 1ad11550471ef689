package controllers

import (
	"github.com/gofiber/fiber/v2"

	"senya/backend/services"
	"senya/backend/utils"
)

type ShopController struct {
	Svc *services.ProgressionService
}

func NewShopController(svc *services.ProgressionService) *ShopController {
	return &ShopController{Svc: svc}
}

func (sc *ShopController) GetHeartPackages(c *fiber.Ctx) error {
	packages, err := sc.Svc.HeartPackages(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, packages)
}

// PurchaseHearts godoc
// @Summary Buy a heart package
// @Description Spends rubies; hearts are capped at 5
// @Tags shop
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /shop/purchase-hearts [post]
func (sc *ShopController) PurchaseHearts(c *fiber.Ctx) error {
	userID, ok := currentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Unauthorized")
	}
	var input struct {
		PackageID uint `json:"package_id"`
	}
	if err := c.BodyParser(&input); err != nil || input.PackageID == 0 {
		return utils.BadRequest(c, "package_id is required")
	}

	res, err := sc.Svc.PurchaseHearts(c.UserContext(), userID, input.PackageID)
	if err != nil {
		return respondError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, res)
}
