package optimization

import "testing"

func TestDistributionTotals(t *testing.T) {
	d := Distribution{PaxA: 2, PaxB: 20, PaxC: 4, Fret1: 100, Fret2: 800, Fret3: 300}

	if got := d.TotalPax(); got != 26 {
		t.Errorf("TotalPax() = %d, expected 26", got)
	}
	if got := d.TotalFreight(); got != 1200 {
		t.Errorf("TotalFreight() = %.0f, expected 1200", got)
	}
}

func TestZonesUsed(t *testing.T) {
	tests := []struct {
		name     string
		a, b, c  int
		expected int
	}{
		{"Empty cabin", 0, 0, 0, 0},
		{"Single zone", 0, 26, 0, 1},
		{"Two zones", 8, 0, 3, 2},
		{"All zones", 1, 1, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Distribution{PaxA: tt.a, PaxB: tt.b, PaxC: tt.c}
			if got := d.ZonesUsed(); got != tt.expected {
				t.Errorf("ZonesUsed() = %d, expected %d", got, tt.expected)
			}
			if got := ZonesUsed(tt.a, tt.b, tt.c); got != tt.expected {
				t.Errorf("ZonesUsed(%d, %d, %d) = %d, expected %d", tt.a, tt.b, tt.c, got, tt.expected)
			}
		})
	}
}
