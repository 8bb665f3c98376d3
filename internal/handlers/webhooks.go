package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/arnold/boardly-api/internal/apperrors"
	"github.com/arnold/boardly-api/internal/database"
	"github.com/arnold/boardly-api/internal/logging"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/arnold/boardly-api/internal/services"
	"github.com/gofiber/fiber/v2"
	svix "github.com/svix/svix-webhooks/go"
)

var svixHeaders = []string{"svix-id", "svix-timestamp", "svix-signature"}

type clerkEmailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

type clerkUserData struct {
	ID                    string              `json:"id"`
	EmailAddresses        []clerkEmailAddress `json:"email_addresses"`
	PrimaryEmailAddressID string              `json:"primary_email_address_id"`
	FirstName             *string             `json:"first_name"`
	LastName              *string             `json:"last_name"`
	ImageURL              string              `json:"image_url"`
}

type clerkEvent struct {
	Type string        `json:"type"`
	Data clerkUserData `json:"data"`
}

// primaryEmail prefers the address flagged primary, then the first one.
func (d clerkUserData) primaryEmail() string {
	for _, e := range d.EmailAddresses {
		if e.ID == d.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(d.EmailAddresses) > 0 {
		return d.EmailAddresses[0].EmailAddress
	}
	return ""
}

func (d clerkUserData) fullName() string {
	var parts []string
	for _, p := range []*string{d.FirstName, d.LastName} {
		if p != nil && strings.TrimSpace(*p) != "" {
			parts = append(parts, strings.TrimSpace(*p))
		}
	}
	return strings.Join(parts, " ")
}

// ClerkWebhook verifies svix-signed identity events and mirrors users locally.
func ClerkWebhook(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return apperrors.Internal(errors.New("CLERK_WEBHOOK_SECRET is not configured"))
		}

		headers := http.Header{}
		for _, name := range svixHeaders {
			value := c.Get(name)
			if value == "" {
				return apperrors.Validation("Missing svix headers", nil)
			}
			headers.Set(name, value)
		}

		wh, err := svix.NewWebhook(secret)
		if err != nil {
			return apperrors.Internal(err)
		}

		payload := c.Body()
		if err := wh.Verify(payload, headers); err != nil {
			logging.LogEvent("webhook_signature_invalid", map[string]interface{}{
				"svix_id": headers.Get("svix-id"),
				"ip":      c.IP(),
			})
			return apperrors.Validation("Invalid webhook signature", nil)
		}

		var event clerkEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return apperrors.Validation("Invalid webhook payload", nil)
		}

		switch event.Type {
		case "user.created", "user.updated":
			if event.Data.ID == "" {
				return apperrors.Validation("Webhook payload has no user id", nil)
			}
			if _, err := services.UpsertUser(database.DB, models.UserProfile{
				ID:       event.Data.ID,
				Email:    event.Data.primaryEmail(),
				Name:     event.Data.fullName(),
				ImageURL: event.Data.ImageURL,
			}); err != nil {
				return err
			}
		case "user.deleted":
			// Boards outlive their owner's identity account.
		}

		logging.LogEvent("clerk_webhook", map[string]interface{}{
			"type":    event.Type,
			"user_id": event.Data.ID,
		})
		return c.JSON(fiber.Map{"success": true})
	}
}
