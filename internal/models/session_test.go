package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matatumonitor/internal/reports"
	"matatumonitor/internal/session"
	"matatumonitor/internal/transit"
)

func TestNewSelectionEntry(t *testing.T) {
	raw, err := json.Marshal(NewSelectionEntry(session.Selection{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"selectedRouteId":null,"selectedLocation":null}`, string(raw))

	entry := NewSelectionEntry(session.Selection{
		RouteID:  "2",
		Location: &transit.Coordinate{Lat: -1.28, Lng: 36.82},
	})
	require.NotNil(t, entry.SelectedRouteID)
	assert.Equal(t, "2", *entry.SelectedRouteID)
	assert.Equal(t, &CoordinateEntry{Lat: -1.28, Lng: 36.82}, entry.SelectedLocation)
}

func TestNewStatsEntry(t *testing.T) {
	avg := 16.25
	entry := NewStatsEntry(session.Stats{
		ActiveReports:    3,
		ValidatedReports: 1,
		ReportsByKind: map[reports.Kind]int{
			reports.KindTraffic: 1,
			reports.KindFare:    2,
		},
		AverageFareChangePercent: &avg,
	})

	assert.Equal(t, 3, entry.ActiveReports)
	assert.Equal(t, map[string]int{"traffic": 1, "fare": 2}, entry.ReportsByType)
	assert.Equal(t, 16.25, *entry.AverageFareChangePercent)
}

func TestNewEventEntry(t *testing.T) {
	at := time.Date(2025, 3, 14, 17, 30, 0, 0, time.UTC)
	r := reports.SampleReports(at)[1]

	entry := NewEventEntry(session.Event{Type: session.EventReportValidated, Report: r, At: at})

	assert.Equal(t, "report.validated", entry.Type)
	assert.Equal(t, "Report Verified", entry.Title)
	assert.NotEmpty(t, entry.Message)
	assert.Equal(t, "2", entry.Report.ID)
	assert.Equal(t, UnixMillis(at), entry.At)
}
