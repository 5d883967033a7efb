package principal

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/models"
)

// Principal is the authenticated user resolved from the bearer token.
type Principal struct {
	ID    uuid.UUID
	Email string
	Role  string
}

func (p *Principal) IsAdmin() bool { return p.Role == models.RoleAdmin }

// FromContext extracts the principal from the JWT stored by the auth
// middleware. Services receive the principal explicitly; nothing reads
// it ambiently past the handler layer.
func FromContext(c *fiber.Ctx) (*Principal, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, apperr.Unauthorized("missing or invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.Unauthorized("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, apperr.Unauthorized("missing sub claim")
	}

	id, err := uuid.Parse(sub)
	if err != nil {
		return nil, apperr.Unauthorized("malformed sub claim")
	}

	p := &Principal{ID: id}
	if email, ok := claims["email"].(string); ok {
		p.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		p.Role = role
	}
	return p, nil
}
