package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"senya/backend/models"
)

type Certificate struct {
	UserID        uint      `json:"user_id"`
	Name          string    `json:"name"`
	IssueDate     time.Time `json:"issue_date"`
	CertificateID string    `json:"certificate_id"`
}

// IssueCertificate marks the profile as certified. The flag is never cleared;
// issuing again only produces a fresh certificate document.
func (s *ProgressionService) IssueCertificate(ctx context.Context, userID uint) (Certificate, error) {
	var cert Certificate
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		profile, err := lockProfile(tx, userID)
		if err != nil {
			return err
		}
		if !profile.Certificate {
			profile.Certificate = true
			if err := tx.Save(profile).Error; err != nil {
				return err
			}
		}

		var account models.Account
		if err := tx.Select("id", "name").Where("id = ?", userID).Take(&account).Error; err != nil {
			return err
		}
		now := s.clock.Now()
		cert = Certificate{
			UserID:        userID,
			Name:          account.Name,
			IssueDate:     now,
			CertificateID: fmt.Sprintf("SSL-%d-%d", userID, now.Unix()),
		}
		return nil
	})
	return cert, err
}
