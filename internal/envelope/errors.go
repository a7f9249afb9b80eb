package envelope

import (
	"errors"
	"fmt"
)

var (
	// ErrEnvelopeViolation matches any *ViolationError.
	ErrEnvelopeViolation = errors.New("cg outside envelope")

	// ErrUnknownPhase matches any *UnknownPhaseError.
	ErrUnknownPhase = errors.New("unknown envelope phase")
)

// ViolationError reports a CG outside the constructor limits of a phase.
type ViolationError struct {
	Phase  Phase
	CG     float64
	MassKg float64
	Bounds Bounds
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("CG outside constructor limits: %s", e.Bounds)
}

// Is makes errors.Is(err, ErrEnvelopeViolation) true.
func (e *ViolationError) Is(target error) bool {
	return target == ErrEnvelopeViolation
}

// UnknownPhaseError reports a phase identifier with no envelope.
type UnknownPhaseError struct {
	Name       string
	Suggestion Phase
}

func (e *UnknownPhaseError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown phase %q (did you mean %s?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown phase %q", e.Name)
}

// Is makes errors.Is(err, ErrUnknownPhase) true.
func (e *UnknownPhaseError) Is(target error) bool {
	return target == ErrUnknownPhase
}
