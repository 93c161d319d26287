package account

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/wichananm65/beverage-shop/internal/dberr"
)

// SessionCookie carries the token for browser sessions started from a
// callback link.
const SessionCookie = "session"

var errNoClaims = errors.New("missing token claims")

// ClaimsFromCtx returns the claims jwtware stored under "user".
func ClaimsFromCtx(c *fiber.Ctx) (jwt.MapClaims, error) {
	tok, ok := c.Locals("user").(*jwt.Token)
	if !ok || tok == nil {
		return nil, errNoClaims
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errNoClaims
	}
	return claims, nil
}

// UserIDFromCtx reads the user_id claim of the current token.
func UserIDFromCtx(c *fiber.Ctx) (string, error) {
	claims, err := ClaimsFromCtx(c)
	if err != nil {
		return "", fiber.ErrUnauthorized
	}
	if id, ok := claims["user_id"].(string); ok && id != "" {
		return id, nil
	}
	return "", fiber.ErrUnauthorized
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
}

// Middleware verifies the bearer token (or session cookie) and rejects
// revoked tokens.
func (s *Service) Middleware() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  s.secret,
		TokenLookup: "header:Authorization,cookie:" + SessionCookie,
		SuccessHandler: func(c *fiber.Ctx) error {
			claims, err := ClaimsFromCtx(c)
			if err != nil {
				return unauthorized(c)
			}
			revoked, err := s.IsRevoked(c.UserContext(), claims)
			if err != nil {
				return err
			}
			if revoked {
				return unauthorized(c)
			}
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c)
		},
	})
}

// RequireAdmin lets only profiles flagged is_admin through.
func (s *Service) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := UserIDFromCtx(c)
		if err != nil {
			return unauthorized(c)
		}
		p, err := s.repo.GetByID(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return unauthorized(c)
			}
			return dberr.Respond(c, err)
		}
		if !p.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": dberr.MsgNotPermitted})
		}
		return c.Next()
	}
}
