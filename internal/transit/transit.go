// Package transit holds the small vocabulary shared by reports and routes.
package transit

import (
	"fmt"

	"matatumonitor/internal/utils"
)

// TrafficLevel describes how congested a route or stretch of road is.
type TrafficLevel string

const (
	TrafficLow      TrafficLevel = "low"
	TrafficModerate TrafficLevel = "moderate"
	TrafficHigh     TrafficLevel = "high"
	TrafficSevere   TrafficLevel = "severe"
)

// TrafficLevels lists every level from least to most congested.
var TrafficLevels = []TrafficLevel{TrafficLow, TrafficModerate, TrafficHigh, TrafficSevere}

// Valid reports whether l is one of the known levels.
func (l TrafficLevel) Valid() bool {
	switch l {
	case TrafficLow, TrafficModerate, TrafficHigh, TrafficSevere:
		return true
	}
	return false
}

// ParseTrafficLevel converts s into a TrafficLevel.
func ParseTrafficLevel(s string) (TrafficLevel, error) {
	l := TrafficLevel(s)
	if !l.Valid() {
		return "", fmt.Errorf("unknown traffic level %q", s)
	}
	return l, nil
}

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate checks the latitude and longitude ranges. The returned map is keyed
// by field name and is empty when the coordinate is valid.
func (c Coordinate) Validate() map[string][]string {
	fieldErrors := make(map[string][]string)
	if err := utils.ValidateLatitude(c.Lat); err != nil {
		fieldErrors["lat"] = append(fieldErrors["lat"], err.Error())
	}
	if err := utils.ValidateLongitude(c.Lng); err != nil {
		fieldErrors["lng"] = append(fieldErrors["lng"], err.Error())
	}
	return fieldErrors
}
