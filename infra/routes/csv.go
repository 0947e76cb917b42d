package routes

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/routeopt/fleetsim/core/model"
	coreroutes "github.com/routeopt/fleetsim/core/routes"
)

// column aliases accepted in CSV headers, matched case-insensitively
var csvColumns = map[string][]string{
	"source":         {"source", "source airport", "origin"},
	"destination":    {"destination", "destination airport", "dest"},
	"carrier":        {"carrier", "airline", "airline code"},
	"equipment":      {"equipment", "aircraft"},
	"distance_miles": {"distance_miles", "distance (miles)", "distance"},
	"total_seats":    {"total_seats", "total", "seats", "total seats"},
	"asm":            {"asm"},
}

// CSVSource reads the route table from a CSV file with a header row. The
// file is read on every call.
type CSVSource struct {
	Path string
}

// NewCSVSource returns a source reading path.
func NewCSVSource(path string) (*CSVSource, error) {
	if path == "" {
		return nil, errors.New("csv route source: path is required")
	}
	return &CSVSource{Path: path}, nil
}

// Routes implements routes.Source.
func (s *CSVSource) Routes(ctx context.Context, q coreroutes.Query) ([]model.RouteRow, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open route csv: %w", err)
	}
	defer f.Close()
	rows, err := ReadCSV(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("read route csv %s: %w", s.Path, err)
	}
	return coreroutes.Filter(rows, q), nil
}

// ReadCSV parses route rows. Rows without an ASM column value get
// total_seats × distance_miles.
func ReadCSV(ctx context.Context, r io.Reader) ([]model.RouteRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	idx := columnIndex(header)
	if _, ok := idx["source"]; !ok {
		return nil, errors.New("missing source column")
	}
	if _, ok := idx["destination"]; !ok {
		return nil, errors.New("missing destination column")
	}

	var rows []model.RouteRow
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := model.RouteRow{
			Source:      field(rec, idx, "source"),
			Destination: field(rec, idx, "destination"),
			Carrier:     field(rec, idx, "carrier"),
			Equipment:   field(rec, idx, "equipment"),
		}
		var hasASM bool
		for _, num := range []struct {
			col string
			dst *float64
		}{
			{"distance_miles", &row.DistanceMiles},
			{"total_seats", &row.TotalSeats},
			{"asm", &row.ASM},
		} {
			v := field(rec, idx, num.col)
			if v == "" {
				continue
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, num.col, err)
			}
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, fmt.Errorf("line %d: %s: non-finite value %q", line, num.col, v)
			}
			*num.dst = f
			if num.col == "asm" {
				hasASM = true
			}
		}
		if !hasASM {
			row.ASM = row.TotalSeats * row.DistanceMiles
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int)
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for col, aliases := range csvColumns {
			if _, seen := idx[col]; seen {
				continue
			}
			for _, a := range aliases {
				if h == a {
					idx[col] = i
					break
				}
			}
		}
	}
	return idx
}

func field(rec []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
