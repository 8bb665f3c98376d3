package services

import (
	"encoding/json"

	"github.com/arnold/boardly-api/internal/logging"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ActivityEntry struct {
	Type       string
	EntityType string
	EntityID   string
	UserID     string
	BoardID    uuid.UUID
	CardID     *uuid.UUID
	Data       map[string]interface{}
}

// LogActivity appends an audit record. It runs after the mutation it
// describes has been committed; failures are logged and never returned.
func LogActivity(db *gorm.DB, entry ActivityEntry) {
	activity := models.Activity{
		Type:       entry.Type,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		UserID:     entry.UserID,
		BoardID:    entry.BoardID,
		CardID:     entry.CardID,
	}

	fields := map[string]interface{}{
		"activity_type": entry.Type,
		"board_id":      entry.BoardID.String(),
		"user_id":       entry.UserID,
	}

	if entry.Data != nil {
		data, err := json.Marshal(entry.Data)
		if err != nil {
			logging.LogError("activity_encode_failed", err, fields)
		} else {
			activity.Data = datatypes.JSON(data)
		}
	}

	if err := db.Create(&activity).Error; err != nil {
		logging.LogError("activity_log_failed", err, fields)
	}
}

// Truncate shortens s to n runes followed by "..." when it is longer.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
