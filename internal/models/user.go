package models

import (
	"time"
)

// User mirrors an identity-provider account. ID is the provider's user id.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     *string   `json:"email" gorm:"uniqueIndex"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserSummary is the public projection embedded in other resources.
type UserSummary struct {
	ID       string  `json:"id"`
	Email    *string `json:"email,omitempty"`
	Name     string  `json:"name"`
	ImageURL string  `json:"imageUrl"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		ImageURL: u.ImageURL,
	}
}

// UserProfile is the set of fields an identity event may carry.
type UserProfile struct {
	ID       string
	Email    string
	Name     string
	ImageURL string
}
