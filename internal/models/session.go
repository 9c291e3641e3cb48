package models

import (
	"matatumonitor/internal/session"
)

// SelectionEntry is the user's current map selection. Absent fields are null.
type SelectionEntry struct {
	SelectedRouteID  *string          `json:"selectedRouteId"`
	SelectedLocation *CoordinateEntry `json:"selectedLocation"`
}

func NewSelectionEntry(sel session.Selection) SelectionEntry {
	var entry SelectionEntry
	if sel.RouteID != "" {
		id := sel.RouteID
		entry.SelectedRouteID = &id
	}
	if sel.Location != nil {
		entry.SelectedLocation = &CoordinateEntry{Lat: sel.Location.Lat, Lng: sel.Location.Lng}
	}
	return entry
}

// StatsEntry feeds the header and status panel.
type StatsEntry struct {
	ActiveReports            int            `json:"activeReports"`
	ValidatedReports         int            `json:"validatedReports"`
	ReportsByType            map[string]int `json:"reportsByType"`
	AverageFareChangePercent *float64       `json:"averageFareChangePercent"`
}

func NewStatsEntry(stats session.Stats) StatsEntry {
	entry := StatsEntry{
		ActiveReports:            stats.ActiveReports,
		ValidatedReports:         stats.ValidatedReports,
		ReportsByType:            make(map[string]int, len(stats.ReportsByKind)),
		AverageFareChangePercent: stats.AverageFareChangePercent,
	}
	for kind, n := range stats.ReportsByKind {
		entry.ReportsByType[string(kind)] = n
	}
	return entry
}

// EventEntry is the message pushed to subscribers when something notable
// happens to a report.
type EventEntry struct {
	Type    string      `json:"type"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
	Report  ReportEntry `json:"report"`
	At      int64       `json:"at"`
}

func NewEventEntry(event session.Event) EventEntry {
	return EventEntry{
		Type:    string(event.Type),
		Title:   event.Title(),
		Message: event.Message(),
		Report:  NewReportEntry(event.Report),
		At:      UnixMillis(event.At),
	}
}
