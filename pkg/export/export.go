// Package export writes simulation results as JSON, CSV or an HTML chart.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/routeopt/fleetsim/core/model"
	"github.com/routeopt/fleetsim/core/report"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatCSV, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// WriteJSON writes the full result to w in indented JSON.
func WriteJSON(w io.Writer, res report.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteAssignmentsCSV writes one row per assignment followed by one row per
// unassigned flight. Unassigned rows leave the tail and timing columns empty.
func WriteAssignmentsCSV(w io.Writer, assignments []model.Assignment, unassigned []model.UnassignedFlight) error {
	cw := csv.NewWriter(w)
	header := []string{"route", "tail_id", "equipment", "equipment_requested", "start_time", "end_time",
		"start_hour", "end_hour", "block_hours", "turn_hours", "distance_miles", "required_seats", "reason_code"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, a := range assignments {
		rec := []string{
			a.Route,
			a.TailID,
			a.Equipment,
			a.EquipmentRequested,
			a.StartClock,
			a.EndClock,
			formatFloat(a.StartHour),
			formatFloat(a.EndHour),
			formatFloat(a.BlockHours),
			formatFloat(a.TurnHours),
			formatFloat(a.DistanceMiles),
			strconv.Itoa(a.RequiredSeats),
			"",
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	for _, u := range unassigned {
		rec := []string{
			u.Route, "", "", u.EquipmentRequested, "", "", "", "", "", "",
			formatFloat(u.DistanceMiles),
			strconv.Itoa(u.RequiredSeats),
			string(u.ReasonCode),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTailLogsCSV writes one row per tail. Routes are joined with ";".
func WriteTailLogsCSV(w io.Writer, logs []report.TailLog) error {
	cw := csv.NewWriter(w)
	header := []string{"tail_id", "equipment", "category", "seat_capacity", "flights", "block_hours",
		"duty_hours", "utilization", "maintenance_buffer_hours", "routes"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, l := range logs {
		rec := []string{
			l.TailID,
			l.Equipment,
			l.Category.String(),
			strconv.Itoa(l.SeatCapacity),
			strconv.Itoa(l.Flights),
			formatFloat(l.BlockHours),
			formatFloat(l.DutyHours),
			formatFloat(l.Utilization),
			formatFloat(l.MaintenanceBufferHours),
			strings.Join(l.Routes, ";"),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}
