package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"senya/backend/models"
	"senya/backend/progression"
)

type HeartsResult struct {
	UserID uint `json:"user_id"`
	Hearts int  `json:"hearts"`
}

type HeartTimer struct {
	Hearts                int `json:"hearts"`
	SecondsUntilNextHeart int `json:"seconds_until_next_heart"`
}

// RegenerateHearts credits hearts earned by elapsed time. Nothing is written
// when no full interval has passed, so repeated calls are no-ops.
func (s *ProgressionService) RegenerateHearts(ctx context.Context, userID uint) (HeartsResult, error) {
	var result HeartsResult
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		profile, err := lockProfile(tx, userID)
		if err != nil {
			return err
		}

		hearts, last, changed := progression.RegenerateHearts(profile.Hearts, profile.HeartsLastUpdated, s.clock.Now())
		if changed {
			profile.Hearts = hearts
			profile.HeartsLastUpdated = &last
			if err := tx.Save(profile).Error; err != nil {
				return err
			}
		}
		result = HeartsResult{UserID: userID, Hearts: profile.Hearts}
		return nil
	})
	return result, err
}

func (s *ProgressionService) HeartTimer(ctx context.Context, userID uint) (HeartTimer, error) {
	profile, err := s.Profile(ctx, userID)
	if err != nil {
		return HeartTimer{}, err
	}
	return HeartTimer{
		Hearts:                profile.Hearts,
		SecondsUntilNextHeart: progression.SecondsUntilNextHeart(profile.Hearts, profile.HeartsLastUpdated, s.clock.Now()),
	}, nil
}

// Profile returns the stored economy state without applying any rule.
func (s *ProgressionService) Profile(ctx context.Context, userID uint) (models.UserProfile, error) {
	var profile models.UserProfile
	err := s.read(ctx).Where("user_id = ?", userID).Take(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return profile, notFound("user profile", userID)
	}
	return profile, classify(err)
}

type Wallet struct {
	Hearts int `json:"hearts"`
	Rubies int `json:"rubies"`
}

// Wallet reports hearts and rubies, falling back to a new user's defaults
// when the profile does not exist yet.
func (s *ProgressionService) Wallet(ctx context.Context, userID uint) (Wallet, error) {
	profile, err := s.Profile(ctx, userID)
	if errors.Is(err, progression.ErrNotFound) {
		return Wallet{Hearts: progression.MaxHearts}, nil
	}
	if err != nil {
		return Wallet{}, err
	}
	return Wallet{Hearts: profile.Hearts, Rubies: profile.Rubies}, nil
}
