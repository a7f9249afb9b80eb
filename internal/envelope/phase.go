package envelope

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Phase identifies the load condition an envelope check applies to.
type Phase string

const (
	PhaseZeroFuel Phase = "ZFM"
	PhaseTakeOff  Phase = "TOW"
	PhaseLanding  Phase = "LDM"
)

// Phases lists the known phases in checking order.
var Phases = []Phase{PhaseZeroFuel, PhaseTakeOff, PhaseLanding}

var phaseAliases = map[string]Phase{
	"ZFM":      PhaseZeroFuel,
	"ZFW":      PhaseZeroFuel,
	"ZEROFUEL": PhaseZeroFuel,
	"TOW":      PhaseTakeOff,
	"TOM":      PhaseTakeOff,
	"TAKEOFF":  PhaseTakeOff,
	"LDM":      PhaseLanding,
	"LDW":      PhaseLanding,
	"LANDING":  PhaseLanding,
}

// Valid reports whether p is one of the known phases.
func (p Phase) Valid() bool {
	switch p {
	case PhaseZeroFuel, PhaseTakeOff, PhaseLanding:
		return true
	}
	return false
}

func (p Phase) String() string {
	return string(p)
}

// ParsePhase resolves a phase name or alias, ignoring case, dashes and
// underscores.
func ParsePhase(value string) (Phase, error) {
	key := normalizePhaseName(value)
	if phase, ok := phaseAliases[key]; ok {
		return phase, nil
	}
	return "", &UnknownPhaseError{Name: value, Suggestion: suggestPhase(key)}
}

func normalizePhaseName(value string) string {
	replacer := strings.NewReplacer("-", "", "_", "", " ", "")
	return strings.ToUpper(replacer.Replace(strings.TrimSpace(value)))
}

func suggestPhase(key string) Phase {
	if key == "" {
		return ""
	}
	best := ""
	bestDistance := -1
	for alias := range phaseAliases {
		d := levenshtein.ComputeDistance(key, alias)
		if bestDistance < 0 || d < bestDistance || (d == bestDistance && alias < best) {
			best = alias
			bestDistance = d
		}
	}
	if bestDistance > 3 {
		return ""
	}
	return phaseAliases[best]
}
