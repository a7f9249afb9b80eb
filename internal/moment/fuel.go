package moment

import "github.com/gapaero/loadsheet/pkg/constants"

// FuelPoint pairs a fuel weight with the effective arm of that fuel load.
type FuelPoint struct {
	FuelWeight   float64 `json:"fuelWeight" yaml:"fuelWeight"`
	EffectiveArm float64 `json:"effectiveArm" yaml:"effectiveArm"`
}

// Charge returns the fuel load as a named charge.
func (p FuelPoint) Charge(name string) Charge {
	return Charge{Name: name, Mass: p.FuelWeight, Arm: p.EffectiveArm}
}

// FuelTable is a calibrated fuel arm table sorted ascending by weight. The
// weights are per-tank quantities.
type FuelTable []FuelPoint

// DefaultFuelTable is the calibrated tank table for the airframe.
var DefaultFuelTable = FuelTable{
	{78.50, 14.590},
	{157.00, 14.535},
	{235.50, 14.505},
	{314.00, 14.488},
	{392.50, 14.477},
	{471.00, 14.470},
	{549.50, 14.466},
	{628.00, 14.463},
	{706.50, 14.460},
	{785.00, 14.458},
	{863.50, 14.457},
	{942.00, 14.456},
	{1020.50, 14.455},
	{1099.00, 14.455},
	{1177.50, 14.455},
	{1256.00, 14.454},
	{1334.50, 14.453},
	{1413.00, 14.452},
	{1491.50, 14.452},
	{1570.00, 14.452},
	{1648.50, 14.452},
	{1727.00, 14.451},
	{1805.50, 14.451},
	{1884.00, 14.450},
	{1962.50, 14.450},
	{2041.00, 14.448},
	{2119.50, 14.446},
	{2198.00, 14.444},
	{2276.50, 14.441},
	{2355.00, 14.438},
	{2433.50, 14.434},
	{2500.23, 14.430},
}

// EffectiveArm looks up the arm for a total fuel weight. The weight is split
// evenly between the two tanks after removing the unusable quantity, then the
// first row at or above the per-tank weight is used. Values outside the table
// clamp to the first or last row. The returned FuelWeight is the argument.
func (t FuelTable) EffectiveArm(fuelWeightKg float64) FuelPoint {
	if len(t) == 0 {
		return FuelPoint{FuelWeight: fuelWeightKg}
	}

	halfFuel := (fuelWeightKg - constants.UnusableFuelKg) / 2.0
	first, last := t[0], t[len(t)-1]
	if halfFuel <= first.FuelWeight {
		return FuelPoint{FuelWeight: fuelWeightKg, EffectiveArm: first.EffectiveArm}
	}
	if halfFuel >= last.FuelWeight {
		return FuelPoint{FuelWeight: fuelWeightKg, EffectiveArm: last.EffectiveArm}
	}
	for i := 0; i < len(t)-1; i++ {
		upper := t[i+1]
		if halfFuel <= upper.FuelWeight {
			return FuelPoint{FuelWeight: fuelWeightKg, EffectiveArm: upper.EffectiveArm}
		}
	}
	return FuelPoint{FuelWeight: fuelWeightKg, EffectiveArm: last.EffectiveArm}
}
