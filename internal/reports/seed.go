package reports

import (
	"time"

	"matatumonitor/internal/transit"
)

// SampleReports returns the demo feed shown on a fresh session. Timestamps are
// relative to now so the feed always looks recent.
func SampleReports(now time.Time) []Report {
	return []Report{
		{
			ID:    "1",
			Route: "Route 2 - CBD to Kibera",
			Location: Location{
				Coordinate: transit.Coordinate{Lat: -1.2950, Lng: 36.8050},
				Address:    "Kenyatta Avenue",
			},
			Description: "Heavy traffic due to road construction. Expect delays.",
			Details:     TrafficDetails{Level: transit.TrafficHigh},
			Timestamp:   now.Add(-5 * time.Minute),
			Author:      Author{ID: "1", Name: "John K."},
			Upvotes:     12,
			Downvotes:   1,
			Validated:   true,
		},
		{
			ID:    "2",
			Route: "Route 111 - Ngong to CBD",
			Location: Location{
				Coordinate: transit.Coordinate{Lat: -1.3200, Lng: 36.7000},
				Address:    "Ngong Road",
			},
			Description: "Fare increased to 100 KSH due to evening rush.",
			Details:     FareDetails{Amount: 100},
			Timestamp:   now.Add(-15 * time.Minute),
			Author:      Author{ID: "2", Name: "Mary W."},
			Upvotes:     8,
		},
		{
			ID:    "3",
			Route: "Route 46 - Kawangware to Yaya",
			Location: Location{
				Coordinate: transit.Coordinate{Lat: -1.2840, Lng: 36.7470},
				Address:    "Kawangware Stage",
			},
			Description: "Many matatus available, no waiting time.",
			Details:     AvailabilityDetails{MatatuAvailable: true},
			Timestamp:   now.Add(-8 * time.Minute),
			Author:      Author{ID: "3", Name: "Peter M."},
			Upvotes:     5,
		},
	}
}
