// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures how a distribution search concluded.
type Summary struct {
	TargetPercent    float64  `json:"targetPercent" yaml:"targetPercent"`
	BestPrimaryError float64  `json:"bestPrimaryError" yaml:"bestPrimaryError"`
	ChosenError      float64  `json:"chosenError" yaml:"chosenError"`
	Tolerance        float64  `json:"tolerance" yaml:"tolerance"`
	ZonesUsed        int      `json:"zonesUsed" yaml:"zonesUsed"`
	RoundedFreight   float64  `json:"roundedFreight" yaml:"roundedFreight"`
	Fret1Cap         float64  `json:"fret1Cap" yaml:"fret1Cap"`
	Evaluated        int      `json:"evaluated" yaml:"evaluated"`
	WithinTolerance  int      `json:"withinTolerance" yaml:"withinTolerance"`
	Notes            []string `json:"notes,omitempty" yaml:"notes,omitempty"`
}
