// Package envelope holds the mass dependent CG limits of the airframe and the
// checks run against them.
package envelope

import (
	"fmt"

	"github.com/gapaero/loadsheet/pkg/constants"
)

// Point is one breakpoint of an envelope curve, mass in tons and CG in %MAC.
type Point struct {
	MassTons float64
	Value    float64
}

// Table is a piecewise-linear curve sorted ascending by mass.
type Table []Point

// Bounds is an allowed CG band in %MAC.
type Bounds struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Contains reports whether cg lies inside the closed band.
func (b Bounds) Contains(cg float64) bool {
	return cg >= b.Min && cg <= b.Max
}

func (b Bounds) String() string {
	return fmt.Sprintf("%.2f–%.2f %%MAC", b.Min, b.Max)
}

// Envelope pairs the forward (min) and aft (max) limit curves.
type Envelope struct {
	Min Table
	Max Table
}

// Limits returns the band allowed at massKg.
func (e Envelope) Limits(massKg float64) Bounds {
	return Limits(e.Min, e.Max, massKg)
}

// Interpolate evaluates a piecewise-linear table at x. Outside the table the
// first or last value is returned. On a shared breakpoint the first segment
// containing x is used.
func Interpolate(points Table, x float64) float64 {
	if len(points) == 0 {
		return 0
	}
	first, last := points[0], points[len(points)-1]
	if x <= first.MassTons {
		return first.Value
	}
	if x >= last.MassTons {
		return last.Value
	}
	for i := 0; i < len(points)-1; i++ {
		p0, p1 := points[i], points[i+1]
		if x < p0.MassTons || x > p1.MassTons {
			continue
		}
		switch x {
		case p0.MassTons:
			return p0.Value
		case p1.MassTons:
			return p1.Value
		}
		frac := (x - p0.MassTons) / (p1.MassTons - p0.MassTons)
		return p0.Value + frac*(p1.Value-p0.Value)
	}
	return last.Value
}

// Limits converts massKg to tons and evaluates both curves.
func Limits(minTable, maxTable Table, massKg float64) Bounds {
	massTons := massKg / constants.KgPerTon
	return Bounds{
		Min: Interpolate(minTable, massTons),
		Max: Interpolate(maxTable, massTons),
	}
}

// TargetPercent returns the preferred takeoff CG for a mass: flat below 18 t
// and above 23 t, linear between.
func TargetPercent(massKg float64) float64 {
	massTons := massKg / constants.KgPerTon
	switch {
	case massTons <= constants.LowTargetMassTons:
		return constants.LowTargetPercent
	case massTons >= constants.HighTargetMassTons:
		return constants.HighTargetPercent
	default:
		frac := (massTons - constants.LowTargetMassTons) / (constants.HighTargetMassTons - constants.LowTargetMassTons)
		return constants.LowTargetPercent + frac*(constants.HighTargetPercent-constants.LowTargetPercent)
	}
}
