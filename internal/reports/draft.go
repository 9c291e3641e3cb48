package reports

import (
	"math"
	"strings"
	"time"

	"matatumonitor/internal/transit"
	"matatumonitor/internal/utils"
)

// DraftLocation is the location attached to a draft. It is a pointer on Draft
// because a draft without a map selection must be rejected, not defaulted to
// (0, 0).
type DraftLocation struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// Draft is an unsaved report as entered by the user. Only the payload field
// matching Type is used; the others are ignored.
type Draft struct {
	Type            string         `json:"type"`
	Route           string         `json:"route"`
	Location        *DraftLocation `json:"location"`
	Description     string         `json:"description"`
	Fare            *float64       `json:"fare,omitempty"`
	TrafficLevel    string         `json:"trafficLevel,omitempty"`
	MatatuAvailable *bool          `json:"matatuAvailable,omitempty"`
}

// DefaultTrafficLevel applies to traffic drafts that do not name a level.
const DefaultTrafficLevel = transit.TrafficModerate

// NewReport validates d and builds a fresh report from it. The report has no
// votes and is not validated. A *ValidationError is returned when the draft is
// incomplete.
func NewReport(d Draft, id string, at time.Time, author Author) (Report, error) {
	verr := &ValidationError{}

	kind, err := ParseKind(d.Type)
	if err != nil {
		verr.add("type", err.Error())
	}

	route := strings.TrimSpace(d.Route)
	if err := utils.ValidateRequiredText("route", route); err != nil {
		verr.add("route", err.Error())
	}

	description := strings.TrimSpace(d.Description)
	if err := utils.ValidateRequiredText("description", description); err != nil {
		verr.add("description", err.Error())
	}

	var location Location
	if d.Location == nil {
		verr.add("location", "location is required")
	} else {
		location = Location{
			Coordinate: transit.Coordinate{Lat: d.Location.Lat, Lng: d.Location.Lng},
			Address:    strings.TrimSpace(d.Location.Address),
		}
		verr.merge(location.Coordinate.Validate())
		if err := utils.ValidateOptionalText("address", location.Address); err != nil {
			verr.add("address", err.Error())
		}
		if location.Address == "" {
			location.Address = UnknownAddress
		}
	}

	var details Details
	if kind != "" {
		details = d.details(kind, verr)
	}

	if !verr.empty() {
		return Report{}, verr
	}

	return Report{
		ID:          id,
		Route:       route,
		Location:    location,
		Description: description,
		Details:     details,
		Timestamp:   at,
		Author:      author,
	}, nil
}

func (d Draft) details(kind Kind, verr *ValidationError) Details {
	switch kind {
	case KindFare:
		if d.Fare == nil {
			verr.add("fare", "fare is required for fare reports")
			return nil
		}
		if math.IsNaN(*d.Fare) || math.IsInf(*d.Fare, 0) || *d.Fare <= 0 {
			verr.add("fare", "fare must be a positive number")
			return nil
		}
		return FareDetails{Amount: *d.Fare}
	case KindTraffic:
		if d.TrafficLevel == "" {
			return TrafficDetails{Level: DefaultTrafficLevel}
		}
		level, err := transit.ParseTrafficLevel(d.TrafficLevel)
		if err != nil {
			verr.add("trafficLevel", err.Error())
			return nil
		}
		return TrafficDetails{Level: level}
	case KindAvailability:
		available := true
		if d.MatatuAvailable != nil {
			available = *d.MatatuAvailable
		}
		return AvailabilityDetails{MatatuAvailable: available}
	default:
		return AccidentDetails{}
	}
}
