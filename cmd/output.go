package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rock-salt/match-cli/internal/compat"
)

var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// formatMoney renders a cent amount as dollars with thousands grouping.
func formatMoney(cents int64) string {
	return moneyPrinter.Sprintf("$%.2f", float64(cents)/100)
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "create output file %s", path)
	}
	return f, func() { f.Close() }, nil
}

// printResult writes a human-readable factor breakdown for a single evaluation.
func printResult(w *os.File, res compat.Result) {
	fmt.Fprintf(w, "Overall: %d / 100 (%s)\n", res.OverallScore, res.Status)
	if len(res.DealBreakers) > 0 {
		fmt.Fprintln(w, "\nDeal-breakers:")
		for _, db := range res.DealBreakers {
			fmt.Fprintf(w, "  - %s\n", db)
		}
	}
	fmt.Fprintln(w, "\nFactors:")
	for _, c := range res.Checks {
		score := "-"
		if c.Status != compat.StatusUnknown {
			score = fmt.Sprintf("%d", c.Score)
		}
		fmt.Fprintf(w, "  %-16s %-8s %4s  %s\n", c.Factor, c.Status, score, c.Message)
	}
}

func outputResult(res compat.Result, format, outputPath string) error {
	w, closeFn, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeFn()

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(res), "encode result")
	case "table":
		printResult(w, res)
		return nil
	default:
		return eris.Errorf("unsupported format %q", format)
	}
}

func outputVenueMatches(matches []compat.VenueMatch, format, outputPath string) error {
	w, closeFn, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeFn()

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(matches), "encode matches")
	case "csv":
		return writeVenueMatchCSV(w, matches)
	case "table":
		return writeVenueMatchTable(w, matches)
	default:
		return eris.Errorf("unsupported format %q", format)
	}
}

func writeVenueMatchCSV(w *os.File, matches []compat.VenueMatch) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"venue_id", "venue_name", "score", "status", "deal_breakers"}); err != nil {
		return eris.Wrap(err, "write CSV header")
	}
	for _, m := range matches {
		row := []string{
			m.Venue.ID,
			m.Venue.Name,
			fmt.Sprintf("%d", m.Result.OverallScore),
			string(m.Result.Status),
			strings.Join(m.Result.DealBreakers, "; "),
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "write CSV row")
		}
	}
	return nil
}

func writeVenueMatchTable(w *os.File, matches []compat.VenueMatch) error {
	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, "No matches.")
		return err
	}

	fmt.Fprintf(w, "%-40s %12s %6s %-13s %s\n", "Venue", "Guarantee", "Score", "Status", "Notes")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, m := range matches {
		name := m.Venue.Name
		if name == "" {
			name = m.Venue.ID
		}
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		guarantee := "-"
		if m.Venue.TypicalGuaranteeMax != nil {
			guarantee = formatMoney(*m.Venue.TypicalGuaranteeMax)
		} else if m.Venue.Capacity != nil {
			guarantee = "~" + formatMoney(compat.EstimateGuaranteeByCapacity(m.Venue.Capacity))
		}
		fmt.Fprintf(w, "%-40s %12s %6d %-13s %s\n",
			name, guarantee, m.Result.OverallScore, m.Result.Status, strings.Join(m.Result.DealBreakers, "; "))
	}
	return nil
}

func outputRiderMatches(matches []compat.RiderMatch, format, outputPath string) error {
	w, closeFn, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeFn()

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(matches), "encode matches")
	case "csv":
		return writeRiderMatchCSV(w, matches)
	case "table":
		return writeRiderMatchTable(w, matches)
	default:
		return eris.Errorf("unsupported format %q", format)
	}
}

func writeRiderMatchCSV(w *os.File, matches []compat.RiderMatch) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"rider_id", "act_name", "score", "status", "deal_breakers"}); err != nil {
		return eris.Wrap(err, "write CSV header")
	}
	for _, m := range matches {
		row := []string{
			m.Rider.ID,
			m.Rider.ActName,
			fmt.Sprintf("%d", m.Result.OverallScore),
			string(m.Result.Status),
			strings.Join(m.Result.DealBreakers, "; "),
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "write CSV row")
		}
	}
	return nil
}

func writeRiderMatchTable(w *os.File, matches []compat.RiderMatch) error {
	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, "No matches.")
		return err
	}

	fmt.Fprintf(w, "%-40s %12s %6s %-13s %s\n", "Act", "Asking", "Score", "Status", "Notes")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, m := range matches {
		name := m.Rider.ActName
		if name == "" {
			name = m.Rider.ID
		}
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		asking := "-"
		if m.Rider.GuaranteeMin != nil {
			asking = formatMoney(*m.Rider.GuaranteeMin)
		}
		fmt.Fprintf(w, "%-40s %12s %6d %-13s %s\n",
			name, asking, m.Result.OverallScore, m.Result.Status, strings.Join(m.Result.DealBreakers, "; "))
	}
	return nil
}
