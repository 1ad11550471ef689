package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"senya/backend/models"
	"senya/backend/progression"
)

func TestRegisterCreatesProfile(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db, progression.FixedClock(testNow))
	ctx := context.Background()

	account, err := accounts.Register(ctx, RegisterInput{Name: "Ann", Username: "ann", Email: "Ann@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, account.Role)
	assert.Equal(t, "ann@example.com", account.Email)
	assert.NotEqual(t, "secret1", account.PasswordHash)

	profile := loadProfile(t, db, account.ID)
	assert.Equal(t, progression.MaxHearts, profile.Hearts)
	assert.Zero(t, profile.Rubies)
	assert.Zero(t, profile.Streak)
	require.NotNil(t, profile.HeartsLastUpdated)
	assert.True(t, profile.HeartsLastUpdated.Equal(testNow))

	_, err = accounts.Register(ctx, RegisterInput{Username: "ann", Email: "other@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.ErrorIs(t, err, progression.ErrInvalidInput)

	_, err = accounts.Register(ctx, RegisterInput{Username: "bob", Email: "", Password: "123"})
	assert.ErrorIs(t, err, progression.ErrInvalidInput)
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db, progression.FixedClock(testNow))
	ctx := context.Background()

	_, err := accounts.Register(ctx, RegisterInput{Name: "Ann", Username: "ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	byName, err := accounts.Authenticate(ctx, "ann", "secret1", "")
	require.NoError(t, err)
	require.NotNil(t, byName.LastLogin)
	assert.True(t, byName.LastLogin.Equal(testNow))

	_, err = accounts.Authenticate(ctx, "ann@example.com", "secret1", "")
	assert.NoError(t, err)

	_, err = accounts.Authenticate(ctx, "ann", "wrong", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = accounts.Authenticate(ctx, "nobody", "secret1", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = accounts.Authenticate(ctx, "ann", "secret1", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db, progression.FixedClock(testNow))
	ctx := context.Background()

	account, err := accounts.Register(ctx, RegisterInput{Name: "Ann", Username: "ann", Email: "ann@example.com", Password: "secret1"})
	require.NoError(t, err)

	updated, err := accounts.UpdateProfile(ctx, account.ID, UpdateProfileInput{Name: "Anna", ProfileURL: "https://cdn.example.com/a.png"})
	require.NoError(t, err)
	assert.Equal(t, "Anna", updated.Name)
	assert.Equal(t, "https://cdn.example.com/a.png", updated.Profile.ProfileURL)
	assert.Equal(t, progression.MaxHearts, updated.Profile.Hearts)

	_, err = accounts.UpdateProfile(ctx, account.ID, UpdateProfileInput{OldPassword: "wrong", NewPassword: "another1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = accounts.UpdateProfile(ctx, account.ID, UpdateProfileInput{OldPassword: "secret1", NewPassword: "another1"})
	require.NoError(t, err)
	_, err = accounts.Authenticate(ctx, "ann", "another1", "")
	assert.NoError(t, err)

	_, err = accounts.UpdateProfile(ctx, 404, UpdateProfileInput{Name: "x"})
	assert.ErrorIs(t, err, progression.ErrNotFound)
}
