package envelope

// Model holds the operational envelope and the constructor envelope of each
// phase. A Model is never mutated after construction and may be shared.
type Model struct {
	operational Envelope
	phases      map[Phase]Envelope
}

// NewModel builds a Model from the operational envelope and the constructor
// envelopes of the three phases. Tables are copied.
func NewModel(operational, zeroFuel, takeOff, landing Envelope) *Model {
	return &Model{
		operational: operational.clone(),
		phases: map[Phase]Envelope{
			PhaseZeroFuel: zeroFuel.clone(),
			PhaseTakeOff:  takeOff.clone(),
			PhaseLanding:  landing.clone(),
		},
	}
}

// DefaultModel returns the envelopes published for the airframe.
func DefaultModel() *Model {
	return NewModel(
		Envelope{Min: operationalMin, Max: operationalMax},
		Envelope{Min: zeroFuelMin, Max: zeroFuelMax},
		Envelope{Min: takeOffMin, Max: takeOffMax},
		Envelope{Min: landingMin, Max: landingMax},
	)
}

func (e Envelope) clone() Envelope {
	return Envelope{Min: e.Min.clone(), Max: e.Max.clone()}
}

// Operational returns the operational limits at massKg.
func (m *Model) Operational(massKg float64) Bounds {
	return m.operational.Limits(massKg)
}

// Constructor returns the constructor limits of phase at massKg.
func (m *Model) Constructor(phase Phase, massKg float64) (Bounds, error) {
	env, ok := m.phases[phase]
	if !ok {
		return Bounds{}, &UnknownPhaseError{Name: string(phase), Suggestion: suggestPhase(normalizePhaseName(string(phase)))}
	}
	return env.Limits(massKg), nil
}

// Check validates cgPercent at massKg for phase. A CG inside the operational
// band passes. Otherwise it must lie inside the phase's constructor band.
// An unknown phase is always an error.
func (m *Model) Check(cgPercent, massKg float64, phase Phase) error {
	constructor, err := m.Constructor(phase, massKg)
	if err != nil {
		return err
	}
	if m.Operational(massKg).Contains(cgPercent) {
		return nil
	}
	if constructor.Contains(cgPercent) {
		return nil
	}
	return &ViolationError{Phase: phase, CG: cgPercent, MassKg: massKg, Bounds: constructor}
}

// Check records one envelope evaluation, for reporting and charting.
type Check struct {
	Phase         Phase   `json:"phase" yaml:"phase"`
	MassKg        float64 `json:"massKg" yaml:"massKg"`
	Index         float64 `json:"index" yaml:"index"`
	CGPercent     float64 `json:"cgPercent" yaml:"cgPercent"`
	Operational   Bounds  `json:"operational" yaml:"operational"`
	Constructor   Bounds  `json:"constructor" yaml:"constructor"`
	InOperational bool    `json:"inOperational" yaml:"inOperational"`
	Within        bool    `json:"within" yaml:"within"`
}

// Evaluate runs Check and also returns the bands it used.
func (m *Model) Evaluate(phase Phase, massKg, index, cgPercent float64) (Check, error) {
	constructor, err := m.Constructor(phase, massKg)
	if err != nil {
		return Check{}, err
	}
	operational := m.Operational(massKg)
	check := Check{
		Phase:         phase,
		MassKg:        massKg,
		Index:         index,
		CGPercent:     cgPercent,
		Operational:   operational,
		Constructor:   constructor,
		InOperational: operational.Contains(cgPercent),
	}
	check.Within = check.InOperational || constructor.Contains(cgPercent)
	if !check.Within {
		return check, &ViolationError{Phase: phase, CG: cgPercent, MassKg: massKg, Bounds: constructor}
	}
	return check, nil
}
