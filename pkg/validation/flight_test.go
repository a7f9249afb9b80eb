package validation

import (
	"strings"
	"testing"
)

func defaultCapacity() CapacityInfo {
	return CapacityInfo{
		Pax:     []int{8, 28, 16},
		Freight: []float64{920, 2050, 750},
	}
}

func containsWarning(warnings []string, fragment string) bool {
	for _, w := range warnings {
		if strings.Contains(w, fragment) {
			return true
		}
	}
	return false
}

func TestValidateFuel(t *testing.T) {
	tests := []struct {
		name     string
		fuel     float64
		trip     float64
		expected []string
	}{
		{"Normal flight", 3000, 1500, nil},
		{"Trip exceeds fuel", 1000, 1500, []string{"Trip fuel exceeds fuel on board"}},
		{"Only unusable fuel", 30, 0, []string{"below the unusable quantity"}},
		{"No fuel at all", 0, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := ValidateFuel(tt.fuel, tt.trip)
			if len(warnings) != len(tt.expected) {
				t.Fatalf("ValidateFuel(%v, %v) returned %d warnings, expected %d: %v", tt.fuel, tt.trip, len(warnings), len(tt.expected), warnings)
			}
			for _, fragment := range tt.expected {
				if !containsWarning(warnings, fragment) {
					t.Errorf("expected warning containing %q, got %v", fragment, warnings)
				}
			}
		})
	}
}

func TestValidateCapacity(t *testing.T) {
	capacity := defaultCapacity()

	if warnings := ValidateCapacity(52, 3720, capacity); len(warnings) != 0 {
		t.Errorf("full aircraft should not warn, got %v", warnings)
	}

	warnings := ValidateCapacity(100, 7000, capacity)
	if !containsWarning(warnings, "Passengers exceed cabin capacity (100 > 52)") {
		t.Errorf("missing cabin warning: %v", warnings)
	}
	if !containsWarning(warnings, "Freight exceeds hold capacity (7000 > 3720 kg)") {
		t.Errorf("missing hold warning: %v", warnings)
	}
}

func TestValidateFret1Cap(t *testing.T) {
	capacity := defaultCapacity()

	if warnings := ValidateFret1Cap(false, 5000, capacity); warnings != nil {
		t.Errorf("inactive cap should not warn, got %v", warnings)
	}
	if warnings := ValidateFret1Cap(true, 500, capacity); warnings != nil {
		t.Errorf("cap below capacity should not warn, got %v", warnings)
	}
	if warnings := ValidateFret1Cap(true, 1000, capacity); len(warnings) != 1 {
		t.Errorf("cap above capacity should warn once, got %v", warnings)
	}
}

func TestValidateManual(t *testing.T) {
	capacity := defaultCapacity()

	consistent := ManualInfo{Pax: []int{0, 26, 0}, Freight: []float64{0, 900, 300}}
	if warnings := ValidateManual(consistent, 26, 1200, capacity); len(warnings) != 0 {
		t.Errorf("consistent manual distribution should not warn, got %v", warnings)
	}

	rounded := ManualInfo{Pax: []int{0, 26, 0}, Freight: []float64{0, 950, 300}}
	if warnings := ValidateManual(rounded, 26, 1200, capacity); len(warnings) != 0 {
		t.Errorf("freight within one step of the request should not warn, got %v", warnings)
	}

	inconsistent := ManualInfo{Pax: []int{10, 20, 0}, Freight: []float64{0, 925, 800}}
	warnings := ValidateManual(inconsistent, 26, 1200, capacity)

	for _, fragment := range []string{
		"Manual pax zone A exceeds capacity (10 > 8)",
		"places 30 passengers, 26 requested",
		"bay 3 exceeds capacity (800 > 750 kg)",
		"bay 2 is not a multiple of 50 kg",
		"places 1725 kg of freight, 1200 kg requested",
	} {
		if !containsWarning(warnings, fragment) {
			t.Errorf("expected warning containing %q, got %v", fragment, warnings)
		}
	}
}

func TestFlightValidatorValidateAll(t *testing.T) {
	clean := FlightValidator{
		Flight:   FlightInfo{FuelKg: 3000, TripFuelKg: 1500, Pax: 26, FreightKg: 1200},
		Capacity: defaultCapacity(),
	}
	if warnings := clean.ValidateAll(); warnings != nil {
		t.Errorf("expected nil warnings, got %v", warnings)
	}

	noisy := FlightValidator{
		Flight: FlightInfo{
			FuelKg:     1000,
			TripFuelKg: 1500,
			Pax:        60,
			FreightKg:  1200,
			Fret1Fixed: true,
			Fret1CapKg: 2000,
			Manual:     &ManualInfo{Pax: []int{0, 26, 0}, Freight: []float64{0, 900, 300}},
		},
		Capacity: defaultCapacity(),
	}
	warnings := noisy.ValidateAll()
	// fuel, cabin, bay 1 cap, manual pax mismatch
	if len(warnings) != 4 {
		t.Errorf("expected 4 warnings, got %d: %v", len(warnings), warnings)
	}
}
