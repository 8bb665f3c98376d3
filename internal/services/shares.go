package services

import (
	"errors"
	"time"

	"github.com/arnold/boardly-api/internal/apperrors"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateShare issues a read-only link for boardID valid for days days
// (default 7, at most 30).
func CreateShare(db *gorm.DB, boardID uuid.UUID, userID string, days *int) (*models.BoardShare, error) {
	expiresInDays := models.DefaultShareExpiryDays
	if days != nil {
		expiresInDays = *days
	}
	if expiresInDays < 1 || expiresInDays > models.MaxShareExpiryDays {
		return nil, apperrors.Validation("Validation failed", map[string]string{
			"expiresInDays": "expiresInDays must be between 1 and 30",
		})
	}

	share := models.BoardShare{
		BoardID:     boardID,
		ExpiresAt:   Now().Add(time.Duration(expiresInDays) * 24 * time.Hour),
		CreatedByID: userID,
	}
	if err := db.Create(&share).Error; err != nil {
		return nil, err
	}
	return &share, nil
}

// ResolveShare finds the link for token. Unknown and revoked tokens are
// NotFound; links at or past their expiry are Expired.
func ResolveShare(db *gorm.DB, token string) (*models.BoardShare, error) {
	var share models.BoardShare
	if err := db.Where("token = ?", token).Take(&share).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Share link")
		}
		return nil, err
	}
	if share.IsExpired(Now()) {
		return nil, apperrors.Expired("Share link has expired")
	}
	return &share, nil
}

// RevokeShare deletes the link shareID on boardID.
func RevokeShare(db *gorm.DB, boardID, shareID uuid.UUID) (*models.BoardShare, error) {
	var share models.BoardShare
	if err := db.Where("id = ? AND board_id = ?", shareID, boardID).Take(&share).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Share link")
		}
		return nil, err
	}
	if err := db.Delete(&share).Error; err != nil {
		return nil, err
	}
	return &share, nil
}

// ListShares returns every link of boardID, newest first, flagged when expired.
func ListShares(db *gorm.DB, boardID uuid.UUID) ([]models.ShareLinkResponse, error) {
	var shares []models.BoardShare
	if err := db.Where("board_id = ?", boardID).Order("created_at DESC").Find(&shares).Error; err != nil {
		return nil, err
	}

	now := Now()
	out := make([]models.ShareLinkResponse, len(shares))
	for i, share := range shares {
		out[i] = models.ShareLinkResponse{BoardShare: share, Expired: share.IsExpired(now)}
	}
	return out, nil
}
