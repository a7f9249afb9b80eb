// Package optimizer searches the passenger and freight placements of a flight
// for the one that brings the takeoff CG closest to a target while using as
// few cabin zones as possible.
package optimizer

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/gapaero/loadsheet/internal/config"
	"github.com/gapaero/loadsheet/internal/moment"
	"github.com/gapaero/loadsheet/pkg/constants"
	"github.com/gapaero/loadsheet/pkg/mathutil"
	"github.com/gapaero/loadsheet/pkg/optimization"
	"go.uber.org/zap"
)

// ErrInfeasibleSearch is matched by every *InfeasibleError.
var ErrInfeasibleSearch = errors.New("no feasible distribution")

// InfeasibleError reports a load that no placement can accommodate.
type InfeasibleError struct {
	Pax        int
	FreightKg  float64
	Fret1Fixed bool
	Fret1CapKg float64
}

func (e *InfeasibleError) Error() string {
	msg := fmt.Sprintf("cannot distribute load: pax=%d, freight=%.0f kg", e.Pax, e.FreightKg)
	if e.Fret1Fixed {
		msg += fmt.Sprintf(", bay 1 cap=%.0f kg", e.Fret1CapKg)
	}
	return msg
}

// Is reports whether target is ErrInfeasibleSearch.
func (e *InfeasibleError) Is(target error) bool {
	return target == ErrInfeasibleSearch
}

// Request describes one search.
type Request struct {
	TotalPax      int
	TotalFreight  float64
	TargetPercent float64
	Limits        config.ZoneLimits
	// Aircraft supplies the pax weight and the zone and bay arms.
	Aircraft config.BalanceConfig
	// Fixed holds the base charge followed by any additional crew.
	Fixed      []moment.Charge
	Fuel       moment.FuelPoint
	Fret1Fixed bool
	Fret1CapKg float64
}

// Result is the chosen distribution and how the search got there.
type Result struct {
	Distribution optimization.Distribution
	Summary      optimization.Summary
}

// Runner executes a Request.
type Runner struct {
	logger *zap.Logger
	req    Request
}

// NewRunner constructs a Runner for the provided request.
func NewRunner(logger *zap.Logger, req Request) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(req.Fixed) == 0 {
		return nil, fmt.Errorf("optimizer: at least one fixed charge is required")
	}
	if req.TotalFreight < 0 {
		return nil, fmt.Errorf("optimizer: freight cannot be negative, got %.0f", req.TotalFreight)
	}
	if req.Limits.Tolerance < 0 {
		return nil, fmt.Errorf("optimizer: tolerance cannot be negative, got %.2f", req.Limits.Tolerance)
	}
	req.Fixed = append([]moment.Charge(nil), req.Fixed...)
	return &Runner{logger: logger, req: req}, nil
}

// combination is one point of the search space with its takeoff condition.
type combination struct {
	a, b, c    int
	f1, f2, f3 float64
	index      float64
	cg         float64
}

func (c combination) distribution() optimization.Distribution {
	return optimization.Distribution{
		PaxA:         c.a,
		PaxB:         c.b,
		PaxC:         c.c,
		Fret1:        c.f1,
		Fret2:        c.f2,
		Fret3:        c.f3,
		IndexTOW:     c.index,
		CGTOWPercent: c.cg,
	}
}

// roundedFreight is the requested freight rounded up to the bay step.
func (r *Runner) roundedFreight() float64 {
	return mathutil.RoundUpToStep(r.req.TotalFreight, constants.FreightStepKg)
}

// fret1Cap is the effective capacity of bay 1.
func (r *Runner) fret1Cap() float64 {
	if r.req.Fret1Fixed {
		return r.req.Fret1CapKg
	}
	return r.req.Limits.MaxFret1
}

// enumerate visits every placement of the request in a fixed order: pax zone
// A then B ascending, bay 2 descending, bay 1 ascending. Bay 3 and zone C take
// the remainders. ctx is checked once per (a, b) pair.
func (r *Runner) enumerate(ctx context.Context, visit func(combination)) error {
	req := r.req
	lim := req.Limits
	ac := req.Aircraft
	total := r.roundedFreight()
	maxF1 := r.fret1Cap()
	step := int(constants.FreightStepKg)

	nf := len(req.Fixed)
	charges := make([]moment.Charge, nf+7)
	copy(charges, req.Fixed)
	charges[nf+6] = req.Fuel.Charge("Fuel usable")

	for a := 0; a <= min(req.TotalPax, lim.MaxPaxA); a++ {
		for b := 0; b <= min(req.TotalPax-a, lim.MaxPaxB); b++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			c := req.TotalPax - a - b
			if c > lim.MaxPaxC {
				continue
			}
			charges[nf] = moment.Charge{Name: "PAX A", Mass: float64(a) * ac.PaxWeight, Arm: ac.PaxAArm}
			charges[nf+1] = moment.Charge{Name: "PAX B", Mass: float64(b) * ac.PaxWeight, Arm: ac.PaxBArm}
			charges[nf+2] = moment.Charge{Name: "PAX C", Mass: float64(c) * ac.PaxWeight, Arm: ac.PaxCArm}

			maxF2 := int(mathutil.Min(lim.MaxFret2, total))
			for f2 := maxF2; f2 >= 0; f2 -= step {
				remaining := total - float64(f2)
				maxF1i := int(mathutil.Min(maxF1, remaining))
				for f1 := 0; f1 <= maxF1i; f1 += step {
					f3 := remaining - float64(f1)
					if f3 < 0 || f3 > lim.MaxFret3 {
						continue
					}
					charges[nf+3] = moment.Charge{Name: "Fret1", Mass: float64(f1), Arm: ac.Fret1Arm}
					charges[nf+4] = moment.Charge{Name: "Fret2", Mass: float64(f2), Arm: ac.Fret2Arm}
					charges[nf+5] = moment.Charge{Name: "Fret3", Mass: f3, Arm: ac.Fret3Arm}

					mass := moment.TotalMass(charges)
					index := moment.TotalIndex(charges, moment.DefaultReferenceArm)
					visit(combination{
						a: a, b: b, c: c,
						f1: float64(f1), f2: float64(f2), f3: f3,
						index: index,
						cg:    moment.CGPercentMAC(index, mass),
					})
				}
			}
		}
	}
	return nil
}

// Run performs the two-pass search. The first pass finds the smallest CG
// error over the whole space. The second keeps placements within tolerance
// of it and picks the one using the fewest pax zones, then the smallest
// error. Ties go to the placement enumerated first.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req := r.req
	log := r.logger.With(zap.String("op", "optimizer.Run"))
	log.Debug("starting distribution search",
		zap.Int("pax", req.TotalPax),
		zap.Float64("freight", req.TotalFreight),
		zap.Float64("target", req.TargetPercent),
		zap.Bool("fret1Fixed", req.Fret1Fixed),
		zap.Float64("fret1Cap", r.fret1Cap()),
		zap.Float64("tolerance", req.Limits.Tolerance),
	)

	bestPrimary := math.MaxFloat64
	evaluated := 0
	err := r.enumerate(ctx, func(c combination) {
		evaluated++
		if e := math.Abs(c.cg - req.TargetPercent); e < bestPrimary {
			bestPrimary = e
		}
	})
	if err != nil {
		return nil, fmt.Errorf("optimizer: %w", err)
	}

	var (
		best      *combination
		bestZones = math.MaxInt
		bestError = math.MaxFloat64
		within    int
	)
	threshold := bestPrimary + req.Limits.Tolerance
	err = r.enumerate(ctx, func(c combination) {
		e := math.Abs(c.cg - req.TargetPercent)
		if e > threshold {
			return
		}
		within++
		zones := optimization.ZonesUsed(c.a, c.b, c.c)
		if zones < bestZones || (zones == bestZones && e < bestError) {
			bestZones = zones
			bestError = e
			chosen := c
			best = &chosen
		}
	})
	if err != nil {
		return nil, fmt.Errorf("optimizer: %w", err)
	}

	if best == nil {
		infeasible := &InfeasibleError{
			Pax:        req.TotalPax,
			FreightKg:  req.TotalFreight,
			Fret1Fixed: req.Fret1Fixed,
			Fret1CapKg: req.Fret1CapKg,
		}
		log.Warn("distribution search found no placement",
			zap.Int("evaluated", evaluated),
			zap.Error(infeasible),
		)
		return nil, infeasible
	}

	summary := optimization.Summary{
		TargetPercent:    req.TargetPercent,
		BestPrimaryError: bestPrimary,
		ChosenError:      bestError,
		Tolerance:        req.Limits.Tolerance,
		ZonesUsed:        bestZones,
		RoundedFreight:   r.roundedFreight(),
		Fret1Cap:         r.fret1Cap(),
		Evaluated:        evaluated,
		WithinTolerance:  within,
	}
	if summary.RoundedFreight != req.TotalFreight {
		summary.Notes = append(summary.Notes,
			fmt.Sprintf("freight rounded up from %.0f to %.0f kg", req.TotalFreight, summary.RoundedFreight))
	}
	if req.Fret1Fixed {
		summary.Notes = append(summary.Notes, fmt.Sprintf("bay 1 capped at %.0f kg", req.Fret1CapKg))
	}

	dist := best.distribution()
	log.Info("distribution search complete",
		zap.Int("paxA", dist.PaxA),
		zap.Int("paxB", dist.PaxB),
		zap.Int("paxC", dist.PaxC),
		zap.Float64("fret1", dist.Fret1),
		zap.Float64("fret2", dist.Fret2),
		zap.Float64("fret3", dist.Fret3),
		zap.Float64("cgTOW", dist.CGTOWPercent),
		zap.Float64("bestPrimaryError", bestPrimary),
		zap.Float64("chosenError", bestError),
		zap.Int("zonesUsed", bestZones),
		zap.Int("evaluated", evaluated),
	)

	return &Result{Distribution: dist, Summary: summary}, nil
}
