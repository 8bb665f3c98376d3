package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultShareExpiryDays = 7
	MaxShareExpiryDays     = 30
)

// BoardShare grants anonymous read-only access to one board until ExpiresAt.
type BoardShare struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	BoardID     uuid.UUID `json:"boardId" gorm:"type:uuid;index;not null"`
	Token       string    `json:"token" gorm:"uniqueIndex;not null"`
	ExpiresAt   time.Time `json:"expiresAt" gorm:"not null"`
	CreatedByID string    `json:"createdById"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (bs *BoardShare) BeforeCreate(tx *gorm.DB) error {
	if bs.ID == uuid.Nil {
		bs.ID = uuid.New()
	}
	if bs.Token == "" {
		token, err := GenerateShareToken()
		if err != nil {
			return err
		}
		bs.Token = token
	}
	return nil
}

// IsExpired reports whether the link stopped granting access at now.
func (bs *BoardShare) IsExpired(now time.Time) bool {
	return !now.Before(bs.ExpiresAt)
}

// GenerateShareToken returns 32 random bytes, hex encoded.
func GenerateShareToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

type CreateShareRequest struct {
	ExpiresInDays *int `json:"expiresInDays" validate:"omitempty,min=1,max=30"`
}

type ShareLinkResponse struct {
	BoardShare
	Expired bool `json:"expired"`
}

type SharedBoardResponse struct {
	Board        Board      `json:"board"`
	IsSharedView bool       `json:"isSharedView"`
	ShareLink    BoardShare `json:"shareLink"`
}
