// Package output provides utilities for formatting and displaying balance results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gapaero/loadsheet/internal/balance"
	"github.com/gapaero/loadsheet/internal/envelope"
	"github.com/gapaero/loadsheet/pkg/constants"
	"github.com/gapaero/loadsheet/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Write renders result in the named output format.
func Write(w io.Writer, outputFormat string, result *balance.Result) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, result)
	case constants.OutputFormatCSV:
		return CsvFormat(w, result)
	case constants.OutputFormatYAML:
		return YamlFormat(w, result)
	}
	return fmt.Errorf("unsupported output format %q", outputFormat)
}

// PrettyFormat outputs a human-readable rather than machine-readable loadsheet.
func PrettyFormat(w io.Writer, result *balance.Result) error {
	p := message.NewPrinter(language.English)
	mode := "automatic"
	if result.Manual {
		mode = "manual"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- Loadsheet (%s distribution) ---\n", mode)
	fmt.Fprintf(&b, "Phase | Mass      | Index  | CG         | Envelope\n")
	fmt.Fprintf(&b, "_____ | _________ | ______ | __________ | ________\n")
	rows := []struct {
		phase envelope.Phase
		mass  float64
		index float64
		cg    float64
	}{
		{envelope.PhaseZeroFuel, result.ZFMMass, result.ZFMIndex, result.ZFMCG},
		{envelope.PhaseTakeOff, result.TOWMass, result.TOWIndex, result.TOWCG},
		{envelope.PhaseLanding, result.LDWMass, result.LDWIndex, result.LDWCG},
	}
	for i, row := range rows {
		status := "-"
		if i < len(result.Checks) {
			status = checkStatus(result.Checks[i])
		}
		_, _ = p.Fprintf(&b, "%-5s | %9s | %6s | %10s | %s\n",
			row.phase, format.Mass(row.mass), format.Index(row.index), format.Percent(row.cg), status)
	}

	d := result.Distribution
	fmt.Fprintf(&b, "\nPassengers: A=%d B=%d C=%d (total %d)\n", d.PaxA, d.PaxB, d.PaxC, d.TotalPax())
	_, _ = p.Fprintf(&b, "Freight:    1=%.0f kg 2=%.0f kg 3=%.0f kg (total %.0f kg)\n", d.Fret1, d.Fret2, d.Fret3, d.TotalFreight())
	fmt.Fprintf(&b, "Target CG:  %s\n", format.Percent(result.TargetPercent))
	fmt.Fprintf(&b, "Trim:       %s\n", format.Trim(result.Trim))

	if s := result.Summary; s != nil {
		_, _ = p.Fprintf(&b, "Search:     %d placements, %d within tolerance, best error %.4f, chosen error %.4f, %d zone(s)\n",
			s.Evaluated, s.WithinTolerance, s.BestPrimaryError, s.ChosenError, s.ZonesUsed)
		for _, note := range s.Notes {
			fmt.Fprintf(&b, "            %s\n", note)
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(&b, "\nWarnings:\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(&b, "  - %s\n", warning)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func checkStatus(c envelope.Check) string {
	switch {
	case c.InOperational:
		return "operational"
	case c.Within:
		return "constructor"
	}
	return "OUTSIDE " + c.Constructor.String()
}

// CsvFormat outputs one row per flight phase in comma-separated value format.
func CsvFormat(w io.Writer, result *balance.Result) error {
	cw := csv.NewWriter(w)
	d := result.Distribution
	header := []string{"phase", "mass", "index", "cg", "within", "paxA", "paxB", "paxC", "fret1", "fret2", "fret3", "trim", "warnings"}
	if err := cw.Write(header); err != nil {
		return err
	}

	rows := []struct {
		phase envelope.Phase
		mass  float64
		index float64
		cg    float64
	}{
		{envelope.PhaseZeroFuel, result.ZFMMass, result.ZFMIndex, result.ZFMCG},
		{envelope.PhaseTakeOff, result.TOWMass, result.TOWIndex, result.TOWCG},
		{envelope.PhaseLanding, result.LDWMass, result.LDWIndex, result.LDWCG},
	}
	for i, row := range rows {
		within := ""
		if i < len(result.Checks) {
			within = strconv.FormatBool(result.Checks[i].Within)
		}
		record := []string{
			row.phase.String(),
			strconv.FormatFloat(row.mass, 'f', 0, 64),
			strconv.FormatFloat(row.index, 'f', 2, 64),
			strconv.FormatFloat(row.cg, 'f', 2, 64),
			within,
			strconv.Itoa(d.PaxA),
			strconv.Itoa(d.PaxB),
			strconv.Itoa(d.PaxC),
			strconv.FormatFloat(d.Fret1, 'f', 0, 64),
			strconv.FormatFloat(d.Fret2, 'f', 0, 64),
			strconv.FormatFloat(d.Fret3, 'f', 0, 64),
			strconv.FormatFloat(result.Trim, 'f', 1, 64),
			strings.Join(result.Warnings, "; "),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// YamlFormat outputs the full result as a YAML document.
func YamlFormat(w io.Writer, result *balance.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return enc.Close()
}

// CheckFormat outputs the outcome of a single envelope check.
func CheckFormat(w io.Writer, check envelope.Check) error {
	p := message.NewPrinter(language.English)
	_, err := p.Fprintf(w, "%s at %s: CG %s, operational %s, constructor %s: %s\n",
		check.Phase, format.Mass(check.MassKg), format.Percent(check.CGPercent),
		check.Operational, check.Constructor, checkStatus(check))
	return err
}
