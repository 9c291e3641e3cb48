package models

import (
	"matatumonitor/internal/catalog"
)

// UnknownValue is reported for a route direction that cannot be derived.
const UnknownValue = "UNKNOWN"

type CoordinateEntry struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteEntry is the JSON form of a catalog route plus its derived fields.
type RouteEntry struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	From              string            `json:"from"`
	To                string            `json:"to"`
	Label             string            `json:"label"`
	StandardFare      float64           `json:"standardFare"`
	CurrentFare       *float64          `json:"currentFare,omitempty"`
	EffectiveFare     float64           `json:"effectiveFare"`
	FareChangePercent *int              `json:"fareChangePercent,omitempty"`
	EstimatedTime     string            `json:"estimatedTime"`
	TrafficStatus     string            `json:"trafficStatus"`
	LastUpdated       int64             `json:"lastUpdated"`
	Coordinates       []CoordinateEntry `json:"coordinates"`
	Polyline          string            `json:"polyline"`
	Direction         string            `json:"direction"`
	LengthMeters      float64           `json:"lengthMeters"`
}

func NewRouteEntry(r catalog.Route) RouteEntry {
	entry := RouteEntry{
		ID:            r.ID,
		Name:          r.Name,
		From:          r.From,
		To:            r.To,
		Label:         r.Label(),
		StandardFare:  r.StandardFare,
		EffectiveFare: r.EffectiveFare(),
		EstimatedTime: r.EstimatedTime,
		TrafficStatus: string(r.TrafficStatus),
		LastUpdated:   UnixMillis(r.LastUpdated),
		Coordinates:   make([]CoordinateEntry, 0, len(r.Coordinates)),
		Polyline:      r.EncodedPath(),
		Direction:     r.Direction(),
		LengthMeters:  r.LengthMeters(),
	}
	if r.CurrentFare != nil {
		current := *r.CurrentFare
		entry.CurrentFare = &current
	}
	if pct, ok := r.FareChangePercent(); ok {
		entry.FareChangePercent = &pct
	}
	if entry.Direction == "" {
		entry.Direction = UnknownValue
	}
	for _, c := range r.Coordinates {
		entry.Coordinates = append(entry.Coordinates, CoordinateEntry{Lat: c.Lat, Lng: c.Lng})
	}
	return entry
}

func NewRouteEntries(routes []catalog.Route) []RouteEntry {
	entries := make([]RouteEntry, 0, len(routes))
	for _, r := range routes {
		entries = append(entries, NewRouteEntry(r))
	}
	return entries
}

// RouteReferences collects the catalog routes whose label matches the route
// of one of the given reports.
func RouteReferences(routes *catalog.Catalog, feed []ReportEntry) ReferencesModel {
	refs := NewEmptyReferences()
	byLabel := make(map[string]catalog.Route, routes.Len())
	for _, r := range routes.List() {
		byLabel[r.Label()] = r
	}
	for _, entry := range feed {
		if r, ok := byLabel[entry.Route]; ok {
			refs.AddRoute(NewRouteEntry(r))
		}
	}
	return refs
}
