// Package moment implements the mass, moment and balance index arithmetic
// shared by the optimizer and the balance calculator.
package moment

import (
	"errors"

	"github.com/gapaero/loadsheet/pkg/constants"
)

// DefaultReferenceArm is the station used for index computations.
const DefaultReferenceArm = constants.ReferenceArm

// ErrZeroMass is returned when a CG is requested for an empty load.
var ErrZeroMass = errors.New("total mass must be positive")

// Charge is a named mass applied at a longitudinal arm in meters.
type Charge struct {
	Name string  `json:"name" yaml:"name"`
	Mass float64 `json:"mass" yaml:"mass"`
	Arm  float64 `json:"arm" yaml:"arm"`
}

// Moment returns mass times arm.
func (c Charge) Moment() float64 {
	return c.Mass * c.Arm
}

// TotalMass sums the masses of all charges.
func TotalMass(charges []Charge) float64 {
	var total float64
	for _, c := range charges {
		total += c.Mass
	}
	return total
}

// TotalMoment sums mass times arm over all charges.
func TotalMoment(charges []Charge) float64 {
	var total float64
	for _, c := range charges {
		total += c.Moment()
	}
	return total
}

// CGMeters converts a moment and mass into a CG station in meters.
func CGMeters(moment, mass float64) (float64, error) {
	if mass == 0 {
		return 0, ErrZeroMass
	}
	return moment / mass, nil
}

// ChargeIndex is the balance index contribution of one charge.
func ChargeIndex(c Charge, referenceArm float64) float64 {
	return (c.Mass * (c.Arm - referenceArm)) / constants.IndexDivisor
}

// TotalIndex sums ChargeIndex over all charges.
func TotalIndex(charges []Charge, referenceArm float64) float64 {
	var total float64
	for _, c := range charges {
		total += ChargeIndex(c, referenceArm)
	}
	return total
}

// CGPercentMAC converts a total index and mass into a CG in percent MAC.
func CGPercentMAC(totalIndex, totalMass float64) float64 {
	return (constants.MACIndexFactor*totalIndex)/(constants.MACLength*totalMass) + constants.MACReferencePercent
}

// Summary is the mass, index and %MAC of one load condition.
type Summary struct {
	Mass      float64
	Index     float64
	CGPercent float64
}

// Summarize computes the mass, index and %MAC of a charge list about the
// default reference arm.
func Summarize(charges []Charge) Summary {
	mass := TotalMass(charges)
	index := TotalIndex(charges, DefaultReferenceArm)
	return Summary{
		Mass:      mass,
		Index:     index,
		CGPercent: CGPercentMAC(index, mass),
	}
}
