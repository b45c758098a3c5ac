package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/studymatehq/studymate/internal/auth"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type IdentityMiddleware struct {
	jwt TokenVerifier
}

func NewIdentityMiddleware(jwt TokenVerifier) *IdentityMiddleware {
	return &IdentityMiddleware{jwt: jwt}
}

const (
	ctxSubjectKey      = "auth.subject"
	ctxRoleKey         = "auth.role"
	ctxElevatedRoleKey = "auth.elevatedRole"
)

// Paths that never require a token.
var skipPaths = map[string]struct{}{
	"/api/auth/signup": {},
	"/api/auth/login":  {},
}

// Identity attaches the caller's identity to the request context when a
// valid bearer token is presented. It NEVER rejects: on a missing, malformed
// or expired token the request proceeds anonymous and handlers that need an
// identity are responsible for returning 401 themselves.

func (m *IdentityMiddleware) Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, skip := skipPaths[c.Request.URL.Path]; skip {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))

		if raw == "" {
			c.Next()
			return
		}

		claims, err := m.jwt.Verify(raw)

		if err != nil {
			// invalid token -> reset identity and continue anonymous
			clearIdentity(c)
			c.Next()
			return
		}

		role := claims.Role

		// tokens minted before roles existed carry no role claim
		if role == "" {
			role = "USER"
		}

		c.Set(ctxSubjectKey, claims.Subject)
		c.Set(ctxRoleKey, role)
		c.Set(ctxElevatedRoleKey, "ROLE_"+role)

		c.Next()
	}
}

func clearIdentity(c *gin.Context) {
	c.Set(ctxSubjectKey, "")
	c.Set(ctxRoleKey, "")
	c.Set(ctxElevatedRoleKey, "")
}

// Helpers so handlers don't need to know the magic keys. Empty values count
// as absent.

func SubjectFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxSubjectKey)
	if !ok {
		return "", false
	}
	subject, ok := v.(string)
	return subject, ok && subject != ""
}

func RoleFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxRoleKey)
	if !ok {
		return "", false
	}
	role, ok := v.(string)
	return role, ok && role != ""
}
