package middleware

import (
	"crypto/rsa"
	"errors"
	"strings"
	"time"

	"github.com/arnold/boardly-api/internal/apperrors"
	"github.com/arnold/boardly-api/internal/config"
	"github.com/arnold/boardly-api/internal/database"
	"github.com/arnold/boardly-api/internal/models"
	"github.com/arnold/boardly-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the cookie the identity provider's frontend SDK sets.
const SessionCookie = "__session"

// Claims is the session token payload. The subject is the user id.
type Claims struct {
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// AuthConfig selects how session tokens are verified: RS256 with PublicKey
// when set, otherwise HS256 with Secret.
type AuthConfig struct {
	Secret    string
	PublicKey *rsa.PublicKey
	Issuer    string
}

func NewAuthConfig(cfg *config.Config) (AuthConfig, error) {
	auth := AuthConfig{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer}
	if cfg.JWTPublicKey == "" {
		return auth, nil
	}

	// Allow the PEM to be passed with escaped newlines.
	pem := strings.ReplaceAll(cfg.JWTPublicKey, `\n`, "\n")
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
	if err != nil {
		return auth, err
	}
	auth.PublicKey = key
	return auth, nil
}

// GenerateToken signs an HS256 session token for local development and tests.
func GenerateToken(secret, userID, email string) (string, error) {
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)), // 7 days
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (a AuthConfig) parse(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if a.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.Issuer))
	}

	var keyFunc jwt.Keyfunc
	if a.PublicKey != nil {
		opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
		keyFunc = func(t *jwt.Token) (interface{}, error) { return a.PublicKey, nil }
	} else {
		opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		keyFunc = func(t *jwt.Token) (interface{}, error) { return []byte(a.Secret), nil }
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, keyFunc, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// Protected rejects requests without a valid session and makes sure the
// caller has a user row before any handler runs.
func Protected(auth AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tokenString string
		if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
			// Extract token from "Bearer <token>"
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return apperrors.Unauthorized("Invalid authorization format")
			}
		} else {
			tokenString = c.Cookies(SessionCookie)
		}
		if tokenString == "" {
			return apperrors.Unauthorized("Authorization required")
		}

		claims, err := auth.parse(tokenString)
		if err != nil {
			return apperrors.Unauthorized("Invalid or expired token")
		}

		user, err := services.EnsureUser(database.DB, models.UserProfile{
			ID:       claims.Subject,
			Email:    claims.Email,
			Name:     claims.Name,
			ImageURL: claims.Picture,
		})
		if err != nil {
			return err
		}

		c.Locals("userId", user.ID)
		c.Locals("user", user)
		return c.Next()
	}
}

// GetUserID extracts user ID from context
func GetUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("userId").(string)
	return userID
}

// GetUser returns the authenticated user stored by Protected.
func GetUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}
