package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"senya/backend/models"
	"senya/backend/progression"
)

type PurchaseResult struct {
	UserID uint `json:"user_id"`
	Hearts int  `json:"hearts"`
	Rubies int  `json:"rubies"`
}

func (s *ProgressionService) HeartPackages(ctx context.Context) ([]models.HeartPackage, error) {
	var packages []models.HeartPackage
	err := s.read(ctx).Order("id").Find(&packages).Error
	return packages, classify(err)
}

// PurchaseHearts spends rubies on a heart package. Hearts never exceed the
// maximum, even if the package would overflow it.
func (s *ProgressionService) PurchaseHearts(ctx context.Context, userID, packageID uint) (PurchaseResult, error) {
	var result PurchaseResult
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var pkg models.HeartPackage
		err := tx.Where("id = ?", packageID).Take(&pkg).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("heart package", packageID)
		}
		if err != nil {
			return err
		}

		profile, err := lockProfile(tx, userID)
		if err != nil {
			return err
		}
		if profile.Rubies < pkg.RubyCost {
			return fmt.Errorf("package %d costs %d, have %d: %w", pkg.ID, pkg.RubyCost, profile.Rubies, progression.ErrInsufficientRubies)
		}

		profile.Rubies -= pkg.RubyCost
		profile.Hearts = progression.AddHearts(profile.Hearts, pkg.HeartsAmount)
		if err := tx.Save(profile).Error; err != nil {
			return err
		}
		result = PurchaseResult{UserID: userID, Hearts: profile.Hearts, Rubies: profile.Rubies}
		return nil
	})
	return result, err
}
