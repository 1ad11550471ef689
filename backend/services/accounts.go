package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"senya/backend/models"
	"senya/backend/progression"
)

var (
	ErrInvalidCredentials = errors.New("incorrect credentials")
	ErrAlreadyRegistered  = fmt.Errorf("email or username already registered: %w", progression.ErrInvalidInput)
)

type RegisterInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in RegisterInput) Validate() error {
	missing := []string{}
	if strings.TrimSpace(in.Username) == "" {
		missing = append(missing, "username")
	}
	if strings.TrimSpace(in.Email) == "" {
		missing = append(missing, "email")
	}
	if len(in.Password) < 6 {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing or invalid %s: %w", strings.Join(missing, ", "), progression.ErrInvalidInput)
	}
	return nil
}

// AccountService owns account creation and credential checks.
type AccountService struct {
	db    *gorm.DB
	clock progression.Clock
}

func NewAccountService(db *gorm.DB, clock progression.Clock) *AccountService {
	if clock == nil {
		clock = progression.SystemClock
	}
	return &AccountService{db: db, clock: clock}
}

// Register creates the account and its starting profile together.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (models.Account, error) {
	if err := in.Validate(); err != nil {
		return models.Account{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Account{}, fmt.Errorf("could not hash password: %w", err)
	}

	account := models.Account{
		Name:         in.Name,
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Status:       "active",
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.Account{}).
			Where("email = ? OR username = ?", account.Email, account.Username).
			Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return ErrAlreadyRegistered
		}
		if err := tx.Create(&account).Error; err != nil {
			return err
		}
		now := s.clock.Now()
		profile := models.UserProfile{
			UserID:            account.ID,
			Hearts:            progression.MaxHearts,
			HeartsLastUpdated: &now,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return models.Account{}, classify(err)
	}
	return account, nil
}

// Authenticate matches login against username or email. When role is set
// the account must also hold that role.
func (s *AccountService) Authenticate(ctx context.Context, login, password string, role models.Role) (models.Account, error) {
	var account models.Account
	q := s.db.WithContext(ctx).Where("email = ? OR username = ?", strings.ToLower(login), login)
	if role != "" {
		q = q.Where("role = ?", role)
	}
	err := q.Take(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Account{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Account{}, classify(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return models.Account{}, ErrInvalidCredentials
	}

	now := s.clock.Now()
	account.LastLogin = &now
	if err := s.db.WithContext(ctx).Model(&account).Update("last_login", now).Error; err != nil {
		return models.Account{}, classify(err)
	}
	return account, nil
}

// Account loads an account with its profile.
func (s *AccountService) Account(ctx context.Context, userID uint) (models.Account, error) {
	var account models.Account
	err := s.db.WithContext(ctx).Preload("Profile").Where("id = ?", userID).Take(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return account, notFound("account", userID)
	}
	return account, classify(err)
}

type UpdateProfileInput struct {
	Name        string `json:"name"`
	ProfileURL  string `json:"profile_url"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// UpdateProfile changes display fields and, when both passwords are given,
// the password. Economy fields are never touched here.
func (s *AccountService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (models.Account, error) {
	var account models.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Profile").Where("id = ?", userID).Take(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("account", userID)
			}
			return err
		}

		if in.NewPassword != "" {
			if len(in.NewPassword) < 6 {
				return fmt.Errorf("new_password too short: %w", progression.ErrInvalidInput)
			}
			if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(in.OldPassword)); err != nil {
				return ErrInvalidCredentials
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("could not hash password: %w", err)
			}
			account.PasswordHash = string(hash)
		}
		if in.Name != "" {
			account.Name = in.Name
		}
		if err := tx.Model(&models.Account{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"name":          account.Name,
			"password_hash": account.PasswordHash,
		}).Error; err != nil {
			return err
		}

		if in.ProfileURL != "" {
			account.Profile.ProfileURL = in.ProfileURL
			if err := tx.Model(&models.UserProfile{}).Where("user_id = ?", userID).
				Update("profile_url", in.ProfileURL).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Account{}, classify(err)
	}
	return account, nil
}
