package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

const (
	DefaultFeedLimit = 10
	MaxFeedLimit     = 100
)

// Cursorable rows expose the id used as a pagination cursor.
type Cursorable interface {
	CursorID() string
}

type Page[T any] struct {
	Items      []T
	NextCursor *string
	HasMore    bool
}

// Paginate returns one page of rows matching scope, newest first. The page
// starts strictly after the cursor row. A cursor that no longer matches any
// row in scope is ignored and the feed restarts from the newest row.
func Paginate[T Cursorable](db *gorm.DB, scope func(*gorm.DB) *gorm.DB, cursor string, limit int, preloads ...string) (*Page[T], error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}

	query := db.Model(new(T)).Scopes(scope)

	if cursor != "" {
		var anchor struct {
			ID        string
			CreatedAt time.Time
		}
		err := db.Model(new(T)).Scopes(scope).
			Select("id", "created_at").
			Where("id = ?", cursor).
			Take(&anchor).Error
		switch {
		case err == nil:
			query = query.Where("created_at < ? OR (created_at = ? AND id < ?)",
				anchor.CreatedAt, anchor.CreatedAt, anchor.ID)
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return nil, err
		}
	}

	for _, p := range preloads {
		query = query.Preload(p)
	}

	var items []T
	if err := query.Order("created_at DESC").Order("id DESC").Limit(limit + 1).Find(&items).Error; err != nil {
		return nil, err
	}

	page := &Page[T]{Items: items}
	if len(items) > limit {
		page.Items = items[:limit]
		page.HasMore = true
		next := page.Items[limit-1].CursorID()
		page.NextCursor = &next
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}
