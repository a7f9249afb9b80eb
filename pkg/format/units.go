// Package format renders masses, CGs and indices for display.
package format

import (
	"fmt"
	"math"
	"strings"
)

// Mass returns a rounded mass with thousands separators and unit (e.g., "19,821 kg").
func Mass(kg float64) string {
	return NumericMass(kg) + " kg"
}

// NumericMass returns a rounded mass with separators and no unit (e.g., "-1,234").
func NumericMass(kg float64) string {
	rounded := math.Round(kg)
	sign := ""
	if rounded < 0 {
		sign = "-"
	}
	return sign + groupThousands(fmt.Sprintf("%.0f", math.Abs(rounded)))
}

// Percent returns a CG in percent MAC with two decimals (e.g., "26.80 %MAC").
func Percent(cg float64) string {
	return fmt.Sprintf("%.2f %%MAC", cg)
}

// Index returns a balance index with an explicit sign and two decimals (e.g., "+5.48").
func Index(index float64) string {
	if math.Abs(index) < 0.005 {
		return "0.00"
	}
	return fmt.Sprintf("%+.2f", index)
}

// Trim returns a trim setting with one decimal.
func Trim(trim float64) string {
	if math.Abs(trim) < 0.05 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", trim)
}

func groupThousands(intPart string) string {
	if len(intPart) <= 3 {
		return intPart
	}
	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	return builder.String()
}
