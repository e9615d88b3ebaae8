package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"gorent/internal/models"
	"gorent/internal/services"
	"gorent/internal/utils"

	"github.com/gin-gonic/gin"
)

// Authenticate validates the bearer token and sets user_id and user_role on
// the context when one is present. It never rejects; denial is the job of
// RequireAuth or RequireRoles, which know where to send the caller. The role
// is resolved through the auth service so the store stays authoritative over
// stale token claims.
func Authenticate(jwtSecret string, authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, jwtSecret)
		if !ok {
			c.Next()
			return
		}

		role := models.ParseRole(claims.Role)
		if authService != nil {
			if resolved, err := authService.ResolveRole(c.Request.Context(), claims.UserID); err == nil {
				role = resolved
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", role)
		c.Set("user_email", claims.Email)

		c.Next()
	}
}

// RequireAuth gates a route to any authenticated user. Must run after
// Authenticate.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, authenticated := currentRole(c); !authenticated {
			path := navigationPath(c.Request.URL.Path)
			utils.RedirectErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED",
				utils.ErrUnauthorized, "/login?redirect="+url.QueryEscape(path))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRoles gates a route group to the given roles. Must run after
// Authenticate. Denials carry the navigation target for the client:
// unauthenticated callers get the sign-in page for the route's namespace,
// authenticated callers with the wrong role get their own dashboard.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, authenticated := currentRole(c)

		decision := Resolve(authenticated, role, navigationPath(c.Request.URL.Path), roles...)
		if decision.Allow {
			c.Next()
			return
		}

		status := http.StatusForbidden
		message := utils.ErrForbidden
		if !authenticated {
			status = http.StatusUnauthorized
			message = utils.ErrUnauthorized
		}

		utils.RedirectErrorResponse(c, status, "ACCESS_DENIED", message, decision.Redirect)
		c.Abort()
	}
}

func bearerClaims(c *gin.Context, jwtSecret string) (*utils.JWTClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, false
	}

	claims, err := utils.ValidateToken(tokenString, jwtSecret)
	if err != nil {
		return nil, false
	}

	return claims, true
}

func currentRole(c *gin.Context) (models.UserRole, bool) {
	value, exists := c.Get("user_role")
	if !exists {
		return "", false
	}
	role, ok := value.(models.UserRole)
	return role, ok
}
