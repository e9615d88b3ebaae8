package models

import (
	"testing"
	"time"
)

func TestPickupDateTime(t *testing.T) {
	t.Parallel()

	b := &Booking{PickupDate: "2026-09-15", PickupTime: "14:30"}
	got, err := b.PickupDateTime()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	want := time.Date(2026, 9, 15, 14, 30, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestPickupDateTime_Malformed(t *testing.T) {
	t.Parallel()

	b := &Booking{PickupDate: "15/09/2026", PickupTime: "14:30"}
	if _, err := b.PickupDateTime(); err == nil {
		t.Error("expected an error for a malformed date")
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	t.Parallel()

	terminal := []BookingStatus{BookingStatusCompleted, BookingStatusCancelled}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("expected %s to be terminal", s)
		}
	}

	active := []BookingStatus{BookingStatusAssigned, BookingStatusConfirmed}
	for _, s := range active {
		if s.Terminal() {
			t.Errorf("expected %s to be non-terminal", s)
		}
	}
}

func TestParseRole(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in   string
		want UserRole
	}{
		{"admin", RoleAdmin},
		{"driver", RoleDriver},
		{"customer", RoleCustomer},
		{"", RoleCustomer},
		{"superuser", RoleCustomer},
	}

	for _, tc := range testCases {
		if got := ParseRole(tc.in); got != tc.want {
			t.Errorf("ParseRole(%q): expected %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestUserRoleValid(t *testing.T) {
	t.Parallel()

	for _, r := range []UserRole{RoleCustomer, RoleDriver, RoleAdmin} {
		if !r.Valid() {
			t.Errorf("expected %s valid", r)
		}
	}
	if UserRole("root").Valid() {
		t.Error("expected unknown role invalid")
	}
}
