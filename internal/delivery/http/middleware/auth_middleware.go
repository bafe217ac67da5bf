package middleware

import (
	"strings"

	"picstream/internal/delivery/http/response"
	"picstream/internal/domain/entity"
	"picstream/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const identityContextKey = "identity"

// AuthMiddleware provides middleware for bearer-token authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token and stores the caller identity on
// the context. Missing, malformed, tampered and expired tokens are all
// rejected with the same generic 401 so callers cannot tell them apart, and
// every rejection advertises the Bearer challenge scheme.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return m.challenge(c)
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return m.challenge(c)
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			return m.challenge(c)
		}

		// The only place an Identity is ever constructed from a token.
		SetIdentity(c, entity.Identity{
			UserID:   claims.UserID,
			Username: claims.Subject,
		})

		return next(c)
	}
}

func (m *AuthMiddleware) challenge(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")

	return response.Unauthorized(c, "INVALID_CREDENTIALS", "credentials not valid")
}

// SetIdentity stores the authenticated caller on the request context.
func SetIdentity(c echo.Context, identity entity.Identity) {
	c.Set(identityContextKey, identity)
}

// IdentityFromContext returns the authenticated caller set by Authenticate.
// The boolean is false on routes that did not pass through the middleware.
func IdentityFromContext(c echo.Context) (entity.Identity, bool) {
	identity, ok := c.Get(identityContextKey).(entity.Identity)

	return identity, ok
}
