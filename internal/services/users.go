package services

import (
	"errors"
	"strings"

	"github.com/arnold/boardly-api/internal/apperrors"
	"github.com/arnold/boardly-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertUser creates the user or overwrites its profile fields.
func UpsertUser(db *gorm.DB, profile models.UserProfile) (*models.User, error) {
	user := userFromProfile(profile)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "image_url", "updated_at"}),
	}).Create(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureUser returns the stored user, creating it from profile when missing.
// Existing rows are left untouched; the identity webhook owns updates.
func EnsureUser(db *gorm.DB, profile models.UserProfile) (*models.User, error) {
	var user models.User
	err := db.Take(&user, "id = ?", profile.ID).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = userFromProfile(profile)
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// A concurrent request may have inserted the same id; anything else
		// is another account holding the email.
		var existing models.User
		if err := db.Take(&existing, "id = ?", profile.ID).Error; err == nil {
			return &existing, nil
		}
		return nil, apperrors.Conflict("Email is already used by another account")
	}
	return &user, nil
}

func userFromProfile(profile models.UserProfile) models.User {
	user := models.User{
		ID:       profile.ID,
		Name:     strings.TrimSpace(profile.Name),
		ImageURL: profile.ImageURL,
	}
	if email := strings.ToLower(strings.TrimSpace(profile.Email)); email != "" {
		user.Email = &email
	}
	return user
}
