// Package ingest reads rider and venue records from JSON, CSV, and XLSX
// files. Tabular formats are header-driven: columns match the records' JSON
// field names, and blank cells leave the field absent.
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/rock-salt/match-cli/internal/model"
)

// ReadRiders loads rider records from path. The format is chosen by file
// extension: .json, .csv, or .xlsx.
func ReadRiders(path string) ([]model.Rider, error) {
	var riders []model.Rider

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: read %s", path)
		}
		if err := json.Unmarshal(data, &riders); err != nil {
			return nil, eris.Wrapf(err, "ingest: parse %s", path)
		}
	default:
		rows, err := readRows(path)
		if err != nil {
			return nil, err
		}
		if riders, err = ridersFromRows(rows); err != nil {
			return nil, err
		}
	}

	return riders, validateRiders(riders)
}

// ReadVenues loads venue records from path. The format is chosen by file
// extension: .json, .csv, or .xlsx.
func ReadVenues(path string) ([]model.Venue, error) {
	var venues []model.Venue

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: read %s", path)
		}
		if err := json.Unmarshal(data, &venues); err != nil {
			return nil, eris.Wrapf(err, "ingest: parse %s", path)
		}
	default:
		rows, err := readRows(path)
		if err != nil {
			return nil, err
		}
		if venues, err = venuesFromRows(rows); err != nil {
			return nil, err
		}
	}

	return venues, validateVenues(venues)
}

// readRows loads a tabular file as raw rows, header included.
func readRows(path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: open %s", path)
		}
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: parse %s", path)
		}
		return rows, nil
	case ".xlsx":
		return readXLSX(path, XLSXOptions{})
	default:
		return nil, eris.Errorf("ingest: unsupported file type %s (want .json, .csv, or .xlsx)", path)
	}
}

func ridersFromRows(rows [][]string) ([]model.Rider, error) {
	if len(rows) == 0 {
		return nil, eris.New("ingest: file has no header row")
	}
	cols := headerIndex(rows[0])

	var riders []model.Rider
	for i, row := range rows[1:] {
		cell := cellReader(cols, row)

		var r model.Rider
		var err error
		r.ID = cell("id")
		r.ActName = cell("act_name")
		if r.GuaranteeMin, err = parseInt64Ptr(cell("guarantee_min")); err != nil {
			return nil, rowErr(err, i, "guarantee_min")
		}
		if r.GuaranteeMax, err = parseInt64Ptr(cell("guarantee_max")); err != nil {
			return nil, rowErr(err, i, "guarantee_max")
		}
		if r.MinStageWidthFeet, err = parseFloat64Ptr(cell("min_stage_width_feet")); err != nil {
			return nil, rowErr(err, i, "min_stage_width_feet")
		}
		if r.MinStageDepthFeet, err = parseFloat64Ptr(cell("min_stage_depth_feet")); err != nil {
			return nil, rowErr(err, i, "min_stage_depth_feet")
		}
		if r.MinInputChannels, err = parseIntPtr(cell("min_input_channels")); err != nil {
			return nil, rowErr(err, i, "min_input_channels")
		}
		if r.RequiresHouseDrums, err = parseBoolPtr(cell("requires_house_drums")); err != nil {
			return nil, rowErr(err, i, "requires_house_drums")
		}
		r.AgeRestriction = parseAgePtr(cell("age_restriction"))

		riders = append(riders, r)
	}
	return riders, nil
}

func venuesFromRows(rows [][]string) ([]model.Venue, error) {
	if len(rows) == 0 {
		return nil, eris.New("ingest: file has no header row")
	}
	cols := headerIndex(rows[0])

	var venues []model.Venue
	for i, row := range rows[1:] {
		cell := cellReader(cols, row)

		var v model.Venue
		var err error
		v.ID = cell("id")
		v.Name = cell("name")
		if v.Capacity, err = parseIntPtr(cell("capacity")); err != nil {
			return nil, rowErr(err, i, "capacity")
		}
		if v.StageWidthFeet, err = parseFloat64Ptr(cell("stage_width_feet")); err != nil {
			return nil, rowErr(err, i, "stage_width_feet")
		}
		if v.StageDepthFeet, err = parseFloat64Ptr(cell("stage_depth_feet")); err != nil {
			return nil, rowErr(err, i, "stage_depth_feet")
		}
		if v.InputChannels, err = parseIntPtr(cell("input_channels")); err != nil {
			return nil, rowErr(err, i, "input_channels")
		}
		if v.HasHouseDrums, err = parseBool(cell("has_house_drums")); err != nil {
			return nil, rowErr(err, i, "has_house_drums")
		}
		if v.HasBackline, err = parseBool(cell("has_backline")); err != nil {
			return nil, rowErr(err, i, "has_backline")
		}
		if v.TypicalGuaranteeMin, err = parseInt64Ptr(cell("typical_guarantee_min")); err != nil {
			return nil, rowErr(err, i, "typical_guarantee_min")
		}
		if v.TypicalGuaranteeMax, err = parseInt64Ptr(cell("typical_guarantee_max")); err != nil {
			return nil, rowErr(err, i, "typical_guarantee_max")
		}
		v.AgeRestrictions = parseAgePtr(cell("age_restrictions"))

		venues = append(venues, v)
	}
	return venues, nil
}

func validateRiders(riders []model.Rider) error {
	for i, r := range riders {
		if err := r.Validate(); err != nil {
			return eris.Wrapf(err, "ingest: rider %d", i+1)
		}
	}
	return nil
}

func validateVenues(venues []model.Venue) error {
	for i, v := range venues {
		if err := v.Validate(); err != nil {
			return eris.Wrapf(err, "ingest: venue %d", i+1)
		}
	}
	return nil
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

func cellReader(cols map[string]int, row []string) func(string) string {
	return func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
}

func rowErr(err error, row int, column string) error {
	return eris.Wrapf(err, "ingest: row %d column %s", row+2, column)
}

func parseInt64Ptr(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, eris.Wrapf(err, "parse %q", s)
	}
	return &v, nil
}

func parseIntPtr(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, eris.Wrapf(err, "parse %q", s)
	}
	return &v, nil
}

func parseFloat64Ptr(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, eris.Wrapf(err, "parse %q", s)
	}
	return &v, nil
}

func parseBoolPtr(s string) (*bool, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, eris.Wrapf(err, "parse %q", s)
	}
	return &v, nil
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, eris.Wrapf(err, "parse %q", s)
	}
	return v, nil
}

func parseAgePtr(s string) *model.AgeRestriction {
	if s == "" {
		return nil
	}
	age := model.AgeRestriction(s)
	return &age
}
