package optimization

// Distribution places passengers in the three cabin zones and freight in the
// three holds. IndexTOW and CGTOWPercent describe the resulting takeoff
// condition. They are zero on a distribution entered by hand until the
// balance calculator recomputes them.
type Distribution struct {
	PaxA         int     `json:"paxA" yaml:"paxA" mapstructure:"paxA"`
	PaxB         int     `json:"paxB" yaml:"paxB" mapstructure:"paxB"`
	PaxC         int     `json:"paxC" yaml:"paxC" mapstructure:"paxC"`
	Fret1        float64 `json:"fret1" yaml:"fret1" mapstructure:"fret1"`
	Fret2        float64 `json:"fret2" yaml:"fret2" mapstructure:"fret2"`
	Fret3        float64 `json:"fret3" yaml:"fret3" mapstructure:"fret3"`
	IndexTOW     float64 `json:"indexTOW" yaml:"indexTOW" mapstructure:"indexTOW"`
	CGTOWPercent float64 `json:"cgTOWPercent" yaml:"cgTOWPercent" mapstructure:"cgTOWPercent"`
}

// TotalPax is the number of passengers placed.
func (d Distribution) TotalPax() int {
	return d.PaxA + d.PaxB + d.PaxC
}

// TotalFreight is the freight mass placed.
func (d Distribution) TotalFreight() float64 {
	return d.Fret1 + d.Fret2 + d.Fret3
}

// ZonesUsed counts the passenger zones holding at least one passenger.
func (d Distribution) ZonesUsed() int {
	return ZonesUsed(d.PaxA, d.PaxB, d.PaxC)
}

// ZonesUsed counts how many of the given zone counts are non-zero.
func ZonesUsed(a, b, c int) int {
	n := 0
	for _, count := range [...]int{a, b, c} {
		if count > 0 {
			n++
		}
	}
	return n
}
