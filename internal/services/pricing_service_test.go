package services

import (
	"errors"
	"testing"

	"gorent/internal/models"
)

func TestComputeQuote_WithDriverAddsSurcharge(t *testing.T) {
	t.Parallel()

	quote, err := ComputeQuote(2.0, 10, models.BookingTypeWithDriver, true)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if quote.DistanceCharge != 20 {
		t.Errorf("expected distance charge 20, got %v", quote.DistanceCharge)
	}
	if quote.DriverCharge != 50 {
		t.Errorf("expected driver charge 50, got %v", quote.DriverCharge)
	}
	if quote.TotalAmount != 70 {
		t.Errorf("expected total 70, got %v", quote.TotalAmount)
	}
}

func TestComputeQuote_SelfDriveHasNoSurcharge(t *testing.T) {
	t.Parallel()

	quote, err := ComputeQuote(2.0, 10, models.BookingTypeSelfDrive, false)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if quote.DriverCharge != 0 {
		t.Errorf("expected no driver charge, got %v", quote.DriverCharge)
	}
	if quote.TotalAmount != 20 {
		t.Errorf("expected total 20, got %v", quote.TotalAmount)
	}
}

func TestComputeQuote_WithDriverButNoneSelected(t *testing.T) {
	t.Parallel()

	// The surcharge applies only once a driver is actually picked.
	quote, err := ComputeQuote(1.5, 8, models.BookingTypeWithDriver, false)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if quote.DriverCharge != 0 {
		t.Errorf("expected no driver charge, got %v", quote.DriverCharge)
	}
	if quote.TotalAmount != 12 {
		t.Errorf("expected total 12, got %v", quote.TotalAmount)
	}
}

func TestComputeQuote_SelfDriveIgnoresDriverSelection(t *testing.T) {
	t.Parallel()

	quote, err := ComputeQuote(1.0, 5, models.BookingTypeSelfDrive, true)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if quote.DriverCharge != 0 {
		t.Errorf("expected no driver charge for self-drive, got %v", quote.DriverCharge)
	}
}

func TestComputeQuote_InvalidDistance(t *testing.T) {
	t.Parallel()

	for _, distance := range []float64{0, -1, -0.01} {
		_, err := ComputeQuote(2.0, distance, models.BookingTypeSelfDrive, false)
		if !errors.Is(err, ErrInvalidDistance) {
			t.Errorf("distance %v: expected ErrInvalidDistance, got %v", distance, err)
		}
	}
}

func TestComputeQuote_TotalIsAlwaysSumOfParts(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		pricePerKm float64
		distance   float64
		bType      models.BookingType
		selected   bool
	}{
		{0.5, 100, models.BookingTypeWithDriver, true},
		{1.33, 7.5, models.BookingTypeSelfDrive, false},
		{3.2, 42.1, models.BookingTypeWithDriver, true},
		{2.0, 0.1, models.BookingTypeWithDriver, false},
	}

	for _, tc := range testCases {
		quote, err := ComputeQuote(tc.pricePerKm, tc.distance, tc.bType, tc.selected)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if quote.TotalAmount != quote.DistanceCharge+quote.DriverCharge {
			t.Errorf("total %v != distance %v + driver %v",
				quote.TotalAmount, quote.DistanceCharge, quote.DriverCharge)
		}
	}
}
