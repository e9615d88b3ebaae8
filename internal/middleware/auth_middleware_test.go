package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorent/internal/models"
	"gorent/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "middleware-test-secret"

func newGateRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	authenticate := Authenticate(testSecret, nil)

	v1 := r.Group("/api/v1")

	admin := v1.Group("/admin")
	admin.Use(authenticate, RequireRoles(models.RoleAdmin))
	admin.GET("/vehicles", func(c *gin.Context) { c.Status(http.StatusOK) })

	driver := v1.Group("/driver")
	driver.Use(authenticate, RequireRoles(models.RoleDriver, models.RoleAdmin))
	driver.GET("/rides", func(c *gin.Context) { c.Status(http.StatusOK) })

	bookings := v1.Group("/bookings")
	bookings.Use(authenticate, RequireRoles(models.RoleCustomer, models.RoleAdmin))
	bookings.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })

	me := v1.Group("/auth")
	me.Use(authenticate, RequireAuth())
	me.GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })

	return r
}

func doRequest(t *testing.T, r *gin.Engine, path, token string) (*httptest.ResponseRecorder, *utils.APIResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body utils.APIResponse
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal response: %v", err)
		}
	}
	return w, &body
}

func tokenFor(t *testing.T, role models.UserRole) string {
	t.Helper()

	pair, err := utils.GenerateTokenPair(primitive.NewObjectID(), string(role), "user@example.com", testSecret)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return pair.AccessToken
}

func TestGate_UnauthenticatedAdminRouteRedirectsToAdminLogin(t *testing.T) {
	r := newGateRouter(t)

	w, body := doRequest(t, r, "/api/v1/admin/vehicles", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if body.Error == nil || body.Error.Redirect != "/admin/login" {
		t.Errorf("expected redirect /admin/login, got %+v", body.Error)
	}
}

func TestGate_UnauthenticatedDriverRouteRedirectsToDriverLogin(t *testing.T) {
	r := newGateRouter(t)

	w, body := doRequest(t, r, "/api/v1/driver/rides", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if body.Error == nil || body.Error.Redirect != "/driver/login" {
		t.Errorf("expected redirect /driver/login, got %+v", body.Error)
	}
}

func TestGate_UnauthenticatedCustomerRoutePreservesPath(t *testing.T) {
	r := newGateRouter(t)

	w, body := doRequest(t, r, "/api/v1/bookings", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if body.Error == nil || body.Error.Redirect != "/login?redirect=%2Fbookings" {
		t.Errorf("expected customer login redirect with path, got %+v", body.Error)
	}
}

func TestGate_WrongRoleRedirectsToOwnDashboard(t *testing.T) {
	r := newGateRouter(t)

	w, body := doRequest(t, r, "/api/v1/admin/vehicles", tokenFor(t, models.RoleCustomer))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if body.Error == nil || body.Error.Redirect != "/dashboard" {
		t.Errorf("expected redirect /dashboard, got %+v", body.Error)
	}
}

func TestGate_MatchingRolePasses(t *testing.T) {
	r := newGateRouter(t)

	w, _ := doRequest(t, r, "/api/v1/admin/vehicles", tokenFor(t, models.RoleAdmin))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestGate_AdminAllowedOnDriverNamespace(t *testing.T) {
	r := newGateRouter(t)

	w, _ := doRequest(t, r, "/api/v1/driver/rides", tokenFor(t, models.RoleAdmin))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestGate_RequireAuthRejectsMissingToken(t *testing.T) {
	r := newGateRouter(t)

	w, body := doRequest(t, r, "/api/v1/auth/me", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if body.Error == nil || body.Error.Redirect != "/login?redirect=%2Fauth%2Fme" {
		t.Errorf("expected login redirect, got %+v", body.Error)
	}
}

func TestGate_RequireAuthPassesWithToken(t *testing.T) {
	r := newGateRouter(t)

	w, _ := doRequest(t, r, "/api/v1/auth/me", tokenFor(t, models.RoleCustomer))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestNavigationPath_StripsAPIPrefix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"/api/v1/admin/vehicles", "/admin/vehicles"},
		{"/api/v1/bookings", "/bookings"},
		{"/api/v1", "/"},
		{"/health", "/health"},
	}
	for _, tc := range cases {
		if got := navigationPath(tc.in); got != tc.want {
			t.Errorf("navigationPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
