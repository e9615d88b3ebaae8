package services

import (
	"errors"
	"testing"
	"time"

	"gorent/internal/models"
	"gorent/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func bookingAt(pickup time.Time, status models.BookingStatus) *models.Booking {
	return &models.Booking{
		Status:     status,
		PickupDate: pickup.Format(utils.PickupDateLayout),
		PickupTime: pickup.Format(utils.PickupTimeLayout),
	}
}

func TestCanCancel_ExactlyAtCutoffSucceeds(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	booking := bookingAt(now.Add(2*time.Hour), models.BookingStatusConfirmed)

	if err := CanCancel(booking, now, false); err != nil {
		t.Errorf("expected cancellation at exactly the cutoff to succeed, got: %v", err)
	}
}

func TestCanCancel_InsideCutoffFails(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	booking := bookingAt(now.Add(time.Hour+59*time.Minute), models.BookingStatusConfirmed)

	if err := CanCancel(booking, now, false); !errors.Is(err, ErrCancelWindowClosed) {
		t.Errorf("expected ErrCancelWindowClosed, got: %v", err)
	}
}

func TestCanCancel_PastPickupFails(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	booking := bookingAt(now.Add(-time.Hour), models.BookingStatusAssigned)

	if err := CanCancel(booking, now, false); !errors.Is(err, ErrCancelWindowClosed) {
		t.Errorf("expected ErrCancelWindowClosed, got: %v", err)
	}
}

func TestCanCancel_CompletedAlwaysFails(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	// Pickup far in the future: the terminal state alone must block.
	booking := bookingAt(now.Add(100*time.Hour), models.BookingStatusCompleted)

	if err := CanCancel(booking, now, false); !errors.Is(err, ErrBookingCompleted) {
		t.Errorf("expected ErrBookingCompleted, got: %v", err)
	}
	// Even admins cannot cancel a completed booking.
	if err := CanCancel(booking, now, true); !errors.Is(err, ErrBookingCompleted) {
		t.Errorf("expected ErrBookingCompleted for admin, got: %v", err)
	}
}

func TestCanCancel_AlreadyCancelledFails(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	booking := bookingAt(now.Add(100*time.Hour), models.BookingStatusCancelled)

	if err := CanCancel(booking, now, false); !errors.Is(err, ErrBookingCancelled) {
		t.Errorf("expected ErrBookingCancelled, got: %v", err)
	}
}

func TestCanCancel_AdminSkipsTimeWindow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local)
	booking := bookingAt(now.Add(30*time.Minute), models.BookingStatusConfirmed)

	if err := CanCancel(booking, now, true); err != nil {
		t.Errorf("expected admin cancellation inside the window to succeed, got: %v", err)
	}
}

func TestCanComplete_AssignedDriverSucceeds(t *testing.T) {
	t.Parallel()

	driverID := primitive.NewObjectID()
	booking := &models.Booking{Status: models.BookingStatusAssigned, DriverID: &driverID}

	if err := CanComplete(booking, driverID, models.RoleDriver); err != nil {
		t.Errorf("expected assigned driver to complete, got: %v", err)
	}
}

func TestCanComplete_OtherDriverFails(t *testing.T) {
	t.Parallel()

	driverID := primitive.NewObjectID()
	booking := &models.Booking{Status: models.BookingStatusAssigned, DriverID: &driverID}

	if err := CanComplete(booking, primitive.NewObjectID(), models.RoleDriver); !errors.Is(err, ErrNotAssignedDriver) {
		t.Errorf("expected ErrNotAssignedDriver, got: %v", err)
	}
}

func TestCanComplete_NoDriverAssignedFails(t *testing.T) {
	t.Parallel()

	booking := &models.Booking{Status: models.BookingStatusConfirmed}

	if err := CanComplete(booking, primitive.NewObjectID(), models.RoleDriver); !errors.Is(err, ErrNotAssignedDriver) {
		t.Errorf("expected ErrNotAssignedDriver, got: %v", err)
	}
}

func TestCanComplete_AdminAlwaysPermitted(t *testing.T) {
	t.Parallel()

	booking := &models.Booking{Status: models.BookingStatusConfirmed}

	if err := CanComplete(booking, primitive.NewObjectID(), models.RoleAdmin); err != nil {
		t.Errorf("expected admin to complete, got: %v", err)
	}
}

func TestCanComplete_TerminalStatesFail(t *testing.T) {
	t.Parallel()

	driverID := primitive.NewObjectID()

	completed := &models.Booking{Status: models.BookingStatusCompleted, DriverID: &driverID}
	if err := CanComplete(completed, driverID, models.RoleDriver); !errors.Is(err, ErrBookingCompleted) {
		t.Errorf("expected ErrBookingCompleted, got: %v", err)
	}

	cancelled := &models.Booking{Status: models.BookingStatusCancelled, DriverID: &driverID}
	if err := CanComplete(cancelled, driverID, models.RoleAdmin); !errors.Is(err, ErrBookingCancelled) {
		t.Errorf("expected ErrBookingCancelled, got: %v", err)
	}
}
