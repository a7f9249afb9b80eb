package balance

import (
	"errors"
	"fmt"
	"math"

	"github.com/gapaero/loadsheet/internal/envelope"
	"github.com/gapaero/loadsheet/internal/optimizer"
)

// ErrMassCeilingExceeded matches any *CeilingError.
var ErrMassCeilingExceeded = errors.New("mass ceiling exceeded")

// CeilingError reports a structural mass above its certified maximum.
type CeilingError struct {
	Phase   string
	MassKg  float64
	LimitKg float64
}

func (e *CeilingError) Error() string {
	return fmt.Sprintf("%s = %d kg exceeds maximum %.0f kg", e.Phase, int64(math.Round(e.MassKg)), e.LimitKg)
}

// Is makes errors.Is(err, ErrMassCeilingExceeded) true.
func (e *CeilingError) Is(target error) bool {
	return target == ErrMassCeilingExceeded
}

// ErrorKind classifies a failed computation.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInfeasibleSearch
	KindMassCeilingExceeded
	KindEnvelopeViolation
	KindUnknownPhase
)

func (k ErrorKind) String() string {
	switch k {
	case KindInfeasibleSearch:
		return "InfeasibleSearch"
	case KindMassCeilingExceeded:
		return "MassCeilingExceeded"
	case KindEnvelopeViolation:
		return "EnvelopeViolation"
	case KindUnknownPhase:
		return "UnknownPhase"
	default:
		return "Unknown"
	}
}

// KindOf returns the kind of err, or KindUnknown for errors the engine does
// not classify (invalid input, cancellation).
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, envelope.ErrUnknownPhase):
		return KindUnknownPhase
	case errors.Is(err, optimizer.ErrInfeasibleSearch):
		return KindInfeasibleSearch
	case errors.Is(err, ErrMassCeilingExceeded):
		return KindMassCeilingExceeded
	case errors.Is(err, envelope.ErrEnvelopeViolation):
		return KindEnvelopeViolation
	}
	return KindUnknown
}
