package format

import "testing"

func TestMass(t *testing.T) {
	tests := []struct {
		name     string
		kg       float64
		expected string
	}{
		{"Zero", 0, "0 kg"},
		{"Small", 85, "85 kg"},
		{"Thousands", 19821, "19,821 kg"},
		{"Rounded", 16870.6, "16,871 kg"},
		{"Negative", -1234.4, "-1,234 kg"},
		{"Tiny negative", -0.2, "0 kg"},
		{"Millions", 1234567, "1,234,567 kg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mass(tt.kg); got != tt.expected {
				t.Errorf("Mass(%v) = %q, expected %q", tt.kg, got, tt.expected)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(26.799781513937518); got != "26.80 %MAC" {
		t.Errorf("Percent() = %q, expected %q", got, "26.80 %MAC")
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		index    float64
		expected string
	}{
		{5.47706666666673, "+5.48"},
		{-12.876266666666588, "-12.88"},
		{0.001, "0.00"},
		{-0.001, "0.00"},
	}

	for _, tt := range tests {
		if got := Index(tt.index); got != tt.expected {
			t.Errorf("Index(%v) = %q, expected %q", tt.index, got, tt.expected)
		}
	}
}

func TestTrim(t *testing.T) {
	tests := []struct {
		trim     float64
		expected string
	}{
		{1.1, "1.1"},
		{-2.2, "-2.2"},
		{-0.0, "0.0"},
	}

	for _, tt := range tests {
		if got := Trim(tt.trim); got != tt.expected {
			t.Errorf("Trim(%v) = %q, expected %q", tt.trim, got, tt.expected)
		}
	}
}
