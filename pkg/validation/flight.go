package validation

import (
	"fmt"
	"math"

	"github.com/gapaero/loadsheet/pkg/constants"
	"github.com/gapaero/loadsheet/pkg/mathutil"
)

// FlightInfo is the load of one flight as entered.
type FlightInfo struct {
	FuelKg     float64
	TripFuelKg float64
	Pax        int
	FreightKg  float64
	Fret1Fixed bool
	Fret1CapKg float64
	Manual     *ManualInfo
}

// ManualInfo is a hand-entered distribution, zones in A, B, C and bay 1, 2, 3 order.
type ManualInfo struct {
	Pax     []int
	Freight []float64
}

// CapacityInfo lists the zone capacities in the same order as ManualInfo.
type CapacityInfo struct {
	Pax     []int
	Freight []float64
}

// FlightValidator checks a flight against the aircraft capacities.
type FlightValidator struct {
	Flight   FlightInfo
	Capacity CapacityInfo
}

// ValidateFuel warns when the trip burns more fuel than is on board.
func ValidateFuel(fuelKg, tripFuelKg float64) []string {
	var warnings []string
	if tripFuelKg > fuelKg {
		warnings = append(warnings, fmt.Sprintf("Trip fuel exceeds fuel on board (%.0f > %.0f kg)", tripFuelKg, fuelKg))
	}
	if fuelKg > 0 && fuelKg < constants.UnusableFuelKg {
		warnings = append(warnings, fmt.Sprintf("Fuel on board is below the unusable quantity (%.0f < %.0f kg)", fuelKg, constants.UnusableFuelKg))
	}
	return warnings
}

// ValidateCapacity warns when the requested load exceeds the sum of the zone capacities.
func ValidateCapacity(pax int, freightKg float64, capacity CapacityInfo) []string {
	var warnings []string

	maxPax := 0
	for _, c := range capacity.Pax {
		maxPax += c
	}
	if pax > maxPax {
		warnings = append(warnings, fmt.Sprintf("Passengers exceed cabin capacity (%d > %d)", pax, maxPax))
	}

	maxFreight := 0.0
	for _, c := range capacity.Freight {
		maxFreight += c
	}
	if freightKg > maxFreight {
		warnings = append(warnings, fmt.Sprintf("Freight exceeds hold capacity (%.0f > %.0f kg)", freightKg, maxFreight))
	}
	return warnings
}

// ValidateFret1Cap warns when a fixed bay 1 cap cannot restrict anything.
func ValidateFret1Cap(fixed bool, capKg float64, capacity CapacityInfo) []string {
	if !fixed || len(capacity.Freight) == 0 {
		return nil
	}
	if capKg > capacity.Freight[0] {
		return []string{fmt.Sprintf("Fixed freight bay 1 cap is above its capacity (%.0f > %.0f kg)", capKg, capacity.Freight[0])}
	}
	return nil
}

// ValidateManual compares a hand-entered distribution with the requested load
// and the zone capacities.
func ValidateManual(manual ManualInfo, pax int, freightKg float64, capacity CapacityInfo) []string {
	var warnings []string

	placedPax := 0
	for i, n := range manual.Pax {
		placedPax += n
		if i < len(capacity.Pax) && n > capacity.Pax[i] {
			warnings = append(warnings, fmt.Sprintf("Manual pax zone %c exceeds capacity (%d > %d)", 'A'+rune(i), n, capacity.Pax[i]))
		}
	}
	if placedPax != pax {
		warnings = append(warnings, fmt.Sprintf("Manual distribution places %d passengers, %d requested", placedPax, pax))
	}

	placedFreight := 0.0
	for i, kg := range manual.Freight {
		placedFreight += kg
		if i < len(capacity.Freight) && kg > capacity.Freight[i] {
			warnings = append(warnings, fmt.Sprintf("Manual freight bay %d exceeds capacity (%.0f > %.0f kg)", i+1, kg, capacity.Freight[i]))
		}
		if math.Mod(kg, constants.FreightStepKg) != 0 {
			warnings = append(warnings, fmt.Sprintf("Manual freight bay %d is not a multiple of %.0f kg (%.0f kg)", i+1, constants.FreightStepKg, kg))
		}
	}
	if !mathutil.WithinTolerance(placedFreight, freightKg, constants.FreightStepKg) {
		warnings = append(warnings, fmt.Sprintf("Manual distribution places %.0f kg of freight, %.0f kg requested", placedFreight, freightKg))
	}
	return warnings
}

// ValidateAll validates the flight and returns warnings
func (fv *FlightValidator) ValidateAll() []string {
	var warnings []string

	warnings = append(warnings, ValidateFuel(fv.Flight.FuelKg, fv.Flight.TripFuelKg)...)
	warnings = append(warnings, ValidateCapacity(fv.Flight.Pax, fv.Flight.FreightKg, fv.Capacity)...)
	warnings = append(warnings, ValidateFret1Cap(fv.Flight.Fret1Fixed, fv.Flight.Fret1CapKg, fv.Capacity)...)
	if fv.Flight.Manual != nil {
		warnings = append(warnings, ValidateManual(*fv.Flight.Manual, fv.Flight.Pax, fv.Flight.FreightKg, fv.Capacity)...)
	}

	if len(warnings) == 0 {
		return nil
	}
	return warnings
}
