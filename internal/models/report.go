package models

import (
	"matatumonitor/internal/reports"
)

// LocationEntry is where a report was made.
type LocationEntry struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// ReportEntry is the JSON form of a report. Only the payload field that
// belongs to the report's type is present.
type ReportEntry struct {
	ID              string        `json:"id"`
	Type            string        `json:"type"`
	Route           string        `json:"route"`
	Location        LocationEntry `json:"location"`
	Description     string        `json:"description"`
	Fare            *float64      `json:"fare,omitempty"`
	TrafficLevel    string        `json:"trafficLevel,omitempty"`
	MatatuAvailable *bool         `json:"matatuAvailable,omitempty"`
	Timestamp       int64         `json:"timestamp"`
	UserID          string        `json:"userId"`
	UserName        string        `json:"userName"`
	Upvotes         int           `json:"upvotes"`
	Downvotes       int           `json:"downvotes"`
	Validated       bool          `json:"validated"`
}

func NewReportEntry(r reports.Report) ReportEntry {
	entry := ReportEntry{
		ID:    r.ID,
		Type:  string(r.Kind()),
		Route: r.Route,
		Location: LocationEntry{
			Lat:     r.Location.Lat,
			Lng:     r.Location.Lng,
			Address: r.Location.Address,
		},
		Description: r.Description,
		Timestamp:   UnixMillis(r.Timestamp),
		UserID:      r.Author.ID,
		UserName:    r.Author.Name,
		Upvotes:     r.Upvotes,
		Downvotes:   r.Downvotes,
		Validated:   r.Validated,
	}
	if fare, ok := r.Fare(); ok {
		entry.Fare = &fare
	}
	if level, ok := r.TrafficLevel(); ok {
		entry.TrafficLevel = string(level)
	}
	if available, ok := r.MatatuAvailable(); ok {
		entry.MatatuAvailable = &available
	}
	return entry
}

// NewReportEntries maps a feed, keeping its order.
func NewReportEntries(feed []reports.Report) []ReportEntry {
	entries := make([]ReportEntry, 0, len(feed))
	for _, r := range feed {
		entries = append(entries, NewReportEntry(r))
	}
	return entries
}
