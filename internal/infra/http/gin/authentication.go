package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	domainuser "stayfinder/internal/domain/user"
	"stayfinder/internal/infra/security"
)

const principalContextKey = "stayfinder.principal"

type principal struct {
	ID       string
	Username string
	Email    string
	Role     string
}

func (p principal) IsAdmin() bool {
	return strings.EqualFold(p.Role, string(domainuser.RoleAdmin))
}

// TokenParser verifies a bearer token and returns its claims.
type TokenParser interface {
	Parse(token string) (*security.Claims, error)
}

// AuthMiddleware resolves the bearer token to a stored user. Requests without
// a valid token do not pass; an expired token is reported distinctly from a
// malformed one, but both are the same 401 class.
type AuthMiddleware struct {
	Tokens TokenParser
	Users  domainuser.Repository
	Logger *slog.Logger
}

func (m AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortUnauthorized(c, "no token provided")
			return
		}
		claims, err := m.Tokens.Parse(token)
		if err != nil {
			if errors.Is(err, security.ErrTokenExpired) {
				abortUnauthorized(c, "token expired")
				return
			}
			if m.Logger != nil {
				m.Logger.Debug("token validation failed", "error", err)
			}
			abortUnauthorized(c, "invalid token")
			return
		}
		user, err := m.Users.ByID(c.Request.Context(), domainuser.ID(claims.Subject))
		if err != nil {
			if !errors.Is(err, domainuser.ErrNotFound) && m.Logger != nil {
				m.Logger.Error("principal lookup failed", "error", err)
			}
			abortUnauthorized(c, "user not found")
			return
		}
		setPrincipal(c, principal{
			ID:       string(user.ID),
			Username: user.Username,
			Email:    user.Email,
			Role:     string(user.Role),
		})
		c.Next()
	}
}

// RequireAdmin gates admin-only routes. Runs after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := currentPrincipal(c)
		if !ok {
			abortUnauthorized(c, "no token provided")
			return
		}
		if !p.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied, admins only"})
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}

func setPrincipal(c *gin.Context, p principal) {
	c.Set(principalContextKey, p)
}

func currentPrincipal(c *gin.Context) (principal, bool) {
	val, exists := c.Get(principalContextKey)
	if !exists {
		return principal{}, false
	}
	p, ok := val.(principal)
	return p, ok
}

func requirePrincipal(c *gin.Context) (principal, bool) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
		return principal{}, false
	}
	return p, true
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
