package middleware

import (
	"testing"

	"gorent/internal/models"
)

func TestResolve_AllowedRolePasses(t *testing.T) {
	t.Parallel()

	d := Resolve(true, models.RoleCustomer, "/bookings", models.RoleCustomer)
	if !d.Allow {
		t.Errorf("expected allow, got redirect to %q", d.Redirect)
	}
}

func TestResolve_UnauthenticatedAdminRoute(t *testing.T) {
	t.Parallel()

	d := Resolve(false, "", "/admin/vehicles", models.RoleAdmin)
	if d.Allow {
		t.Fatal("expected denial")
	}
	if d.Redirect != "/admin/login" {
		t.Errorf("expected /admin/login, got %q", d.Redirect)
	}
}

func TestResolve_UnauthenticatedDriverRoute(t *testing.T) {
	t.Parallel()

	d := Resolve(false, "", "/driver/rides", models.RoleDriver)
	if d.Redirect != "/driver/login" {
		t.Errorf("expected /driver/login, got %q", d.Redirect)
	}
}

func TestResolve_UnauthenticatedCustomerRoutePreservesPath(t *testing.T) {
	t.Parallel()

	d := Resolve(false, "", "/bookings", models.RoleCustomer)
	if d.Redirect != "/login?redirect=%2Fbookings" {
		t.Errorf("expected login redirect with path, got %q", d.Redirect)
	}
}

func TestResolve_WrongRoleGoesToOwnDashboard(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		role models.UserRole
		want string
	}{
		{models.RoleCustomer, "/dashboard"},
		{models.RoleDriver, "/driver/dashboard"},
		{models.RoleAdmin, "/admin/dashboard"},
	}

	for _, tc := range testCases {
		// Request a route the role is not allowed on.
		var gate models.UserRole = models.RoleAdmin
		if tc.role == models.RoleAdmin {
			gate = models.RoleDriver
		}

		d := Resolve(true, tc.role, "/somewhere", gate)
		if d.Allow {
			t.Errorf("role %s: expected denial", tc.role)
			continue
		}
		if d.Redirect != tc.want {
			t.Errorf("role %s: expected redirect %q, got %q", tc.role, tc.want, d.Redirect)
		}
	}
}

func TestResolve_MultiRoleGate(t *testing.T) {
	t.Parallel()

	d := Resolve(true, models.RoleAdmin, "/bookings", models.RoleCustomer, models.RoleAdmin)
	if !d.Allow {
		t.Errorf("expected admin allowed on a customer route gated for both, got redirect %q", d.Redirect)
	}
}

func TestResolve_UnauthAdminPathButCustomerGate(t *testing.T) {
	t.Parallel()

	// A path that merely starts with /admin but is gated for customers still
	// goes to the customer sign-in.
	d := Resolve(false, "", "/administration-help", models.RoleCustomer)
	if d.Redirect != "/login?redirect=%2Fadministration-help" {
		t.Errorf("expected customer login redirect, got %q", d.Redirect)
	}
}
