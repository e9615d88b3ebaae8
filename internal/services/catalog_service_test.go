package services

import (
	"testing"

	"gorent/internal/models"
)

func testFleet() []*models.Vehicle {
	return []*models.Vehicle{
		{Name: "Swift", Type: "hatchback", PricePerKm: 0.8},
		{Name: "City", Type: "sedan", PricePerKm: 1.0},
		{Name: "Verna", Type: "sedan", PricePerKm: 1.5},
		{Name: "Creta", Type: "suv", PricePerKm: 2.0},
		{Name: "Fortuner", Type: "suv", PricePerKm: 3.2},
	}
}

func names(vehicles []*models.Vehicle) []string {
	out := make([]string, len(vehicles))
	for i, v := range vehicles {
		out[i] = v.Name
	}
	return out
}

func assertNames(t *testing.T, got []*models.Vehicle, want ...string) {
	t.Helper()
	gotNames := names(got)
	if len(gotNames) != len(want) {
		t.Fatalf("expected %v, got %v", want, gotNames)
	}
	for i := range want {
		if gotNames[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, gotNames)
		}
	}
}

func TestFilterVehicles_TypeFilter(t *testing.T) {
	t.Parallel()

	got := FilterVehicles(testFleet(), &models.VehicleFilter{Type: "sedan"})
	assertNames(t, got, "City", "Verna")
}

func TestFilterVehicles_TypeAllIsWildcard(t *testing.T) {
	t.Parallel()

	for _, vehicleType := range []string{"", "all"} {
		got := FilterVehicles(testFleet(), &models.VehicleFilter{Type: vehicleType})
		if len(got) != 5 {
			t.Errorf("type %q: expected all 5 vehicles, got %d", vehicleType, len(got))
		}
	}
}

func TestFilterVehicles_PriceRangeBoundaries(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		priceRange string
		want       []string
	}{
		// low includes the boundary price of exactly 1
		{models.PriceRangeLow, []string{"Swift", "City"}},
		// medium is strictly above 1 up to and including 2
		{models.PriceRangeMedium, []string{"Verna", "Creta"}},
		// high is strictly above 2
		{models.PriceRangeHigh, []string{"Fortuner"}},
		{models.PriceRangeAll, []string{"Swift", "City", "Verna", "Creta", "Fortuner"}},
	}

	for _, tc := range testCases {
		got := FilterVehicles(testFleet(), &models.VehicleFilter{PriceRange: tc.priceRange})
		assertNames(t, got, tc.want...)
	}
}

func TestFilterVehicles_SortPriceLow(t *testing.T) {
	t.Parallel()

	got := FilterVehicles(testFleet(), &models.VehicleFilter{SortBy: models.SortPriceLow})
	assertNames(t, got, "Swift", "City", "Verna", "Creta", "Fortuner")
}

func TestFilterVehicles_SortPriceHigh(t *testing.T) {
	t.Parallel()

	got := FilterVehicles(testFleet(), &models.VehicleFilter{SortBy: models.SortPriceHigh})
	assertNames(t, got, "Fortuner", "Creta", "Verna", "City", "Swift")
}

func TestFilterVehicles_SortName(t *testing.T) {
	t.Parallel()

	got := FilterVehicles(testFleet(), &models.VehicleFilter{SortBy: models.SortName})
	assertNames(t, got, "City", "Creta", "Fortuner", "Swift", "Verna")
}

func TestFilterVehicles_DefaultSortPreservesOrder(t *testing.T) {
	t.Parallel()

	got := FilterVehicles(testFleet(), &models.VehicleFilter{})
	assertNames(t, got, "Swift", "City", "Verna", "Creta", "Fortuner")
}

func TestFilterVehicles_EqualPricesKeepInputOrder(t *testing.T) {
	t.Parallel()

	fleet := []*models.Vehicle{
		{Name: "A", Type: "sedan", PricePerKm: 1.5},
		{Name: "B", Type: "sedan", PricePerKm: 1.5},
		{Name: "C", Type: "sedan", PricePerKm: 1.5},
	}

	got := FilterVehicles(fleet, &models.VehicleFilter{SortBy: models.SortPriceLow})
	assertNames(t, got, "A", "B", "C")
}

func TestFilterVehicles_CombinedFilterAndSort(t *testing.T) {
	t.Parallel()

	got := FilterVehicles(testFleet(), &models.VehicleFilter{
		Type:       "suv",
		PriceRange: models.PriceRangeHigh,
		SortBy:     models.SortPriceLow,
	})
	assertNames(t, got, "Fortuner")
}

func TestFilterVehicles_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	fleet := testFleet()
	FilterVehicles(fleet, &models.VehicleFilter{SortBy: models.SortPriceHigh})
	assertNames(t, fleet, "Swift", "City", "Verna", "Creta", "Fortuner")
}
