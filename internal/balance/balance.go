// Package balance computes the load and balance of a flight: the zero fuel,
// takeoff and landing masses and CGs, the passenger and freight distribution
// and the takeoff trim setting.
package balance

import (
	"context"
	"errors"
	"fmt"

	"github.com/gapaero/loadsheet/internal/config"
	"github.com/gapaero/loadsheet/internal/envelope"
	"github.com/gapaero/loadsheet/internal/moment"
	"github.com/gapaero/loadsheet/internal/optimizer"
	"github.com/gapaero/loadsheet/pkg/constants"
	"github.com/gapaero/loadsheet/pkg/mathutil"
	"github.com/gapaero/loadsheet/pkg/optimization"
	"go.uber.org/zap"
)

// Input is the load of one flight. A nil Override selects automatic mode, in
// which the distribution is searched for and every limit is fatal. A non-nil
// Override is used verbatim and limit breaches become warnings. Its IndexTOW
// and CGTOWPercent are ignored: Result.Distribution carries the recomputed
// takeoff values instead.
//
// A zero Config or Limits is replaced by the airframe defaults.
type Input struct {
	FuelKg              float64
	TripFuelKg          float64
	TotalPax            int
	TotalFreightKg      float64
	IncludePilotSeat    bool
	IncludeMechanic1    bool
	IncludeMechanic2    bool
	IncludeRearJumpSeat bool
	Fret1Fixed          bool
	Fret1CapKg          float64
	Override            *optimization.Distribution
	Config              config.BalanceConfig
	Limits              config.ZoneLimits
}

// InputFromConfig builds an Input from a loaded configuration.
func InputFromConfig(conf *config.Configuration) Input {
	f := conf.Flight
	in := Input{
		FuelKg:              f.FuelKg,
		TripFuelKg:          f.TripFuelKg,
		TotalPax:            f.Pax,
		TotalFreightKg:      f.FreightKg,
		IncludePilotSeat:    f.IncludePilotSeat,
		IncludeMechanic1:    f.IncludeMechanic1,
		IncludeMechanic2:    f.IncludeMechanic2,
		IncludeRearJumpSeat: f.IncludeRearJumpSeat,
		Fret1Fixed:          f.Fret1Fixed,
		Fret1CapKg:          f.Fret1CapKg,
		Config:              conf.Aircraft,
		Limits:              conf.Limits,
	}
	if f.Manual != nil {
		manual := *f.Manual
		in.Override = &manual
	}
	return in
}

// Result is the outcome of one computation. Warnings is never nil.
type Result struct {
	ZFMMass  float64 `json:"zfmMass" yaml:"zfmMass"`
	ZFMCG    float64 `json:"zfmCg" yaml:"zfmCg"`
	ZFMIndex float64 `json:"zfmIndex" yaml:"zfmIndex"`
	TOWIndex float64 `json:"towIndex" yaml:"towIndex"`
	TOWMass  float64 `json:"towMass" yaml:"towMass"`
	TOWCG    float64 `json:"towCg" yaml:"towCg"`
	LDWMass  float64 `json:"ldwMass" yaml:"ldwMass"`
	LDWCG    float64 `json:"ldwCg" yaml:"ldwCg"`
	LDWIndex float64 `json:"ldwIndex" yaml:"ldwIndex"`

	Distribution optimization.Distribution `json:"distribution" yaml:"distribution"`
	Trim         float64                   `json:"trim" yaml:"trim"`
	Warnings     []string                  `json:"warnings" yaml:"warnings"`

	Manual        bool                  `json:"manual" yaml:"manual"`
	TargetPercent float64               `json:"targetPercent" yaml:"targetPercent"`
	Checks        []envelope.Check      `json:"checks" yaml:"checks"`
	Summary       *optimization.Summary `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Calculator runs balance computations. It holds only read-only tables and
// may be used from several goroutines.
type Calculator struct {
	logger *zap.Logger
	model  *envelope.Model
	fuel   moment.FuelTable
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithEnvelopeModel replaces the default envelope model.
func WithEnvelopeModel(m *envelope.Model) Option {
	return func(c *Calculator) {
		c.model = m
	}
}

// WithFuelTable replaces the default fuel arm table.
func WithFuelTable(t moment.FuelTable) Option {
	return func(c *Calculator) {
		c.fuel = append(moment.FuelTable(nil), t...)
	}
}

// NewCalculator constructs a Calculator with the airframe's envelopes and
// fuel table unless overridden.
func NewCalculator(logger *zap.Logger, opts ...Option) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Calculator{
		logger: logger,
		model:  envelope.DefaultModel(),
		fuel:   moment.DefaultFuelTable,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate is CalculateContext with a background context.
func (c *Calculator) Calculate(in Input) (*Result, error) {
	return c.CalculateContext(context.Background(), in)
}

// phaseLoad is the charge list and label of one flight phase.
type phaseLoad struct {
	phase   envelope.Phase
	charges []moment.Charge
}

// CalculateContext computes the balance of in. ctx only bounds the
// distribution search.
func (c *Calculator) CalculateContext(ctx context.Context, in Input) (*Result, error) {
	log := c.logger.With(zap.String("op", "balance.Calculate"))

	if in.Config == (config.BalanceConfig{}) {
		in.Config = config.DefaultBalanceConfig()
	}
	if in.Limits == (config.ZoneLimits{}) {
		in.Limits = config.DefaultZoneLimits()
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	ac := in.Config
	manual := in.Override != nil

	log.Debug("calculating balance",
		zap.Float64("fuel", in.FuelKg),
		zap.Float64("tripFuel", in.TripFuelKg),
		zap.Int("pax", in.TotalPax),
		zap.Float64("freight", in.TotalFreightKg),
		zap.Bool("fret1Fixed", in.Fret1Fixed),
		zap.Float64("fret1Cap", in.Fret1CapKg),
		zap.Bool("manual", manual),
	)

	warnings := []string{}

	base := moment.Charge{Name: "Base mass", Mass: ac.BaseMass, Arm: ac.BaseArm}
	crew := crewCharges(in)
	fixed := append([]moment.Charge{base}, crew...)

	// charge masses are never negative, even below the unusable quantity
	usableFuel := c.fuel.EffectiveArm(mathutil.Max(0, in.FuelKg-constants.UnusableFuelKg))
	remainingFuel := c.fuel.EffectiveArm(mathutil.Max(0, in.FuelKg-(in.TripFuelKg+constants.UnusableFuelKg)))

	crewMass := moment.TotalMass(crew)
	zfm := ac.BaseMass + float64(in.TotalPax)*ac.PaxWeight + in.TotalFreightKg + crewMass
	tow := zfm + in.FuelKg
	ldw := tow - in.TripFuelKg
	log.Debug("structural masses",
		zap.Float64("zfm", zfm),
		zap.Float64("tow", tow),
		zap.Float64("ldw", ldw),
	)

	for _, ceiling := range []CeilingError{
		{Phase: "ZFM", MassKg: zfm, LimitKg: ac.MaxZFM},
		{Phase: "TOW", MassKg: tow, LimitKg: ac.MaxTOW},
		{Phase: "LDW", MassKg: ldw, LimitKg: ac.MaxLDW},
	} {
		if ceiling.MassKg <= ceiling.LimitKg {
			continue
		}
		breach := ceiling
		if !manual {
			log.Info("mass ceiling exceeded", zap.Error(&breach))
			return nil, &breach
		}
		log.Warn("mass ceiling exceeded in manual mode, continuing", zap.Error(&breach))
		warnings = append(warnings, breach.Error())
	}

	target := envelope.TargetPercent(ac.BaseMass + float64(in.TotalPax)*ac.PaxWeight + in.TotalFreightKg + crewMass + in.FuelKg)

	var (
		dist    optimization.Distribution
		summary *optimization.Summary
	)
	if manual {
		dist = *in.Override
	} else {
		runner, err := optimizer.NewRunner(c.logger, optimizer.Request{
			TotalPax:      in.TotalPax,
			TotalFreight:  in.TotalFreightKg,
			TargetPercent: target,
			Limits:        in.Limits,
			Aircraft:      ac,
			Fixed:         fixed,
			Fuel:          usableFuel,
			Fret1Fixed:    in.Fret1Fixed,
			Fret1CapKg:    in.Fret1CapKg,
		})
		if err != nil {
			return nil, err
		}
		res, err := runner.Run(ctx)
		if err != nil {
			return nil, err
		}
		dist = res.Distribution
		summary = &res.Summary
	}

	zfmCharges := append(append([]moment.Charge(nil), fixed...), distributionCharges(ac, dist)...)
	loads := []phaseLoad{
		{phase: envelope.PhaseZeroFuel, charges: zfmCharges},
		{phase: envelope.PhaseTakeOff, charges: withCharge(zfmCharges, usableFuel.Charge("Fuel usable"))},
		{phase: envelope.PhaseLanding, charges: withCharge(zfmCharges, remainingFuel.Charge("Fuel remaining"))},
	}

	summaries := make([]moment.Summary, len(loads))
	checks := make([]envelope.Check, 0, len(loads))
	for i, load := range loads {
		s := moment.Summarize(load.charges)
		summaries[i] = s

		check, err := c.model.Evaluate(load.phase, s.Mass, s.Index, s.CGPercent)
		if err != nil {
			if errors.Is(err, envelope.ErrUnknownPhase) {
				return nil, err
			}
			if !manual {
				return nil, fmt.Errorf("%s CG=%.2f%% outside envelope: %w", load.phase, s.CGPercent, err)
			}
			msg := fmt.Sprintf("%s CG=%.2f%% outside envelope (%s)", load.phase, s.CGPercent, err)
			log.Warn("envelope violation in manual mode, continuing",
				zap.String("phase", load.phase.String()),
				zap.Float64("cg", s.CGPercent),
				zap.Float64("mass", s.Mass),
				zap.Error(err),
			)
			warnings = append(warnings, msg)
		}
		checks = append(checks, check)
	}
	zfmSum, towSum, ldwSum := summaries[0], summaries[1], summaries[2]

	if manual {
		dist.IndexTOW = towSum.Index
		dist.CGTOWPercent = towSum.CGPercent
	}

	result := &Result{
		ZFMMass:       zfmSum.Mass,
		ZFMCG:         zfmSum.CGPercent,
		ZFMIndex:      zfmSum.Index,
		TOWIndex:      towSum.Index,
		TOWMass:       towSum.Mass,
		TOWCG:         towSum.CGPercent,
		LDWMass:       ldwSum.Mass,
		LDWCG:         ldwSum.CGPercent,
		LDWIndex:      ldwSum.Index,
		Distribution:  dist,
		Trim:          Trim(towSum.CGPercent),
		Warnings:      warnings,
		Manual:        manual,
		TargetPercent: target,
		Checks:        checks,
		Summary:       summary,
	}

	log.Info("balance computed",
		zap.Float64("zfmMass", result.ZFMMass),
		zap.Float64("zfmCg", result.ZFMCG),
		zap.Float64("towMass", result.TOWMass),
		zap.Float64("towCg", result.TOWCG),
		zap.Float64("ldwMass", result.LDWMass),
		zap.Float64("ldwCg", result.LDWCG),
		zap.Float64("trim", result.Trim),
		zap.Int("warnings", len(result.Warnings)),
		zap.Bool("manual", manual),
	)

	return result, nil
}

// Trim maps a takeoff CG in %MAC to the stabilizer trim setting, rounded to
// one decimal.
func Trim(towCGPercent float64) float64 {
	return mathutil.RoundTo(constants.TrimSlope*towCGPercent+constants.TrimIntercept, 1)
}

func crewCharges(in Input) []moment.Charge {
	ac := in.Config
	var crew []moment.Charge
	for _, seat := range []struct {
		include bool
		name    string
		arm     float64
	}{
		{in.IncludePilotSeat, "Third pilot", ac.PilotArm},
		{in.IncludeMechanic1, "Mechanic 1", ac.Mechanic1Arm},
		{in.IncludeMechanic2, "Mechanic 2", ac.Mechanic2Arm},
		{in.IncludeRearJumpSeat, "Rear jump seat", ac.RearJumpSeatArm},
	} {
		if seat.include {
			crew = append(crew, moment.Charge{Name: seat.name, Mass: ac.SeatWeight, Arm: seat.arm})
		}
	}
	return crew
}

func distributionCharges(ac config.BalanceConfig, d optimization.Distribution) []moment.Charge {
	return []moment.Charge{
		{Name: "PAX A", Mass: float64(d.PaxA) * ac.PaxWeight, Arm: ac.PaxAArm},
		{Name: "PAX B", Mass: float64(d.PaxB) * ac.PaxWeight, Arm: ac.PaxBArm},
		{Name: "PAX C", Mass: float64(d.PaxC) * ac.PaxWeight, Arm: ac.PaxCArm},
		{Name: "Fret1", Mass: d.Fret1, Arm: ac.Fret1Arm},
		{Name: "Fret2", Mass: d.Fret2, Arm: ac.Fret2Arm},
		{Name: "Fret3", Mass: d.Fret3, Arm: ac.Fret3Arm},
	}
}

func withCharge(charges []moment.Charge, extra moment.Charge) []moment.Charge {
	out := make([]moment.Charge, 0, len(charges)+1)
	out = append(out, charges...)
	return append(out, extra)
}

func validateInput(in Input) error {
	if err := in.Config.Validate(); err != nil {
		return fmt.Errorf("balance config: %w", err)
	}
	if err := in.Limits.Validate(); err != nil {
		return fmt.Errorf("zone limits: %w", err)
	}
	flight := config.FlightConfig{
		FuelKg:     in.FuelKg,
		TripFuelKg: in.TripFuelKg,
		Pax:        in.TotalPax,
		FreightKg:  in.TotalFreightKg,
		Fret1Fixed: in.Fret1Fixed,
		Fret1CapKg: in.Fret1CapKg,
		Manual:     in.Override,
	}
	if err := flight.Validate(); err != nil {
		return fmt.Errorf("flight: %w", err)
	}
	return nil
}
