package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/devboard/devboard-api/internal/core/domain"
)

// identityKey is the echo context key holding the resolved caller.
const identityKey = "identity"

// Auth is the mandatory bearer-credential middleware: a missing, malformed or
// invalid token fails the request with an authentication error.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := resolveIdentity(c, jwtSecret)
			if err != nil {
				return err
			}
			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// OptionalAuth attempts identity resolution but never fails the request: an
// absent, expired or otherwise invalid credential simply resolves to no
// identity and the request proceeds anonymously.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if identity, err := resolveIdentity(c, jwtSecret); err == nil {
				c.Set(identityKey, identity)
			}
			return next(c)
		}
	}
}

// RequireRoles gates a route to the given roles. It assumes Auth ran first;
// a missing identity is an authentication failure (401), a resolved identity
// outside the set is forbidden (403) — the two outcomes stay distinguishable.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := CurrentIdentity(c)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if _, ok := allowed[identity.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity resolved for this request, if any.
// Handlers receive the caller through this accessor rather than through any
// shared request-global state.
func CurrentIdentity(c echo.Context) (*domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(*domain.Identity)
	return identity, ok && identity != nil
}

func resolveIdentity(c echo.Context, jwtSecret string) (*domain.Identity, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, domain.ErrUnauthenticated
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, domain.ErrUnauthenticated
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthenticated
	}

	userID, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || !domain.ValidRole(role) {
		return nil, domain.ErrUnauthenticated
	}

	return &domain.Identity{UserID: userID, Email: email, Role: role}, nil
}
