package middleware

import (
	"net/url"
	"strings"

	"gorent/internal/models"
)

// apiPrefix is stripped before namespace checks so route decisions match the
// navigation paths the client uses.
const apiPrefix = "/api/v1"

func navigationPath(requestPath string) string {
	path := strings.TrimPrefix(requestPath, apiPrefix)
	if path == "" {
		return "/"
	}
	return path
}

// Decision is the outcome of a route access check. When Allow is false,
// Redirect names the route the client should navigate to.
type Decision struct {
	Allow    bool
	Redirect string
}

// Resolve decides whether a request may proceed, given authentication state,
// the caller's role, the requested path, and the roles the route admits.
//
// Unauthenticated callers are sent to the sign-in page matching the route's
// namespace: admin routes to the admin sign-in, driver routes to the driver
// sign-in, everything else to the customer sign-in with the requested path
// preserved for post-login navigation. Authenticated callers with the wrong
// role are sent to their own dashboard rather than a login loop.
func Resolve(isAuthenticated bool, role models.UserRole, requestedPath string, allowedRoles ...models.UserRole) Decision {
	if !isAuthenticated {
		if allowed(models.RoleAdmin, allowedRoles) && strings.HasPrefix(requestedPath, "/admin") {
			return Decision{Redirect: "/admin/login"}
		}
		if allowed(models.RoleDriver, allowedRoles) && strings.HasPrefix(requestedPath, "/driver") {
			return Decision{Redirect: "/driver/login"}
		}
		return Decision{Redirect: "/login?redirect=" + url.QueryEscape(requestedPath)}
	}

	if allowed(role, allowedRoles) {
		return Decision{Allow: true}
	}

	return Decision{Redirect: roleHome(role)}
}

func allowed(role models.UserRole, allowedRoles []models.UserRole) bool {
	for _, r := range allowedRoles {
		if r == role {
			return true
		}
	}
	return false
}

func roleHome(role models.UserRole) string {
	switch role {
	case models.RoleAdmin:
		return "/admin/dashboard"
	case models.RoleDriver:
		return "/driver/dashboard"
	default:
		return "/dashboard"
	}
}
