// Package reports models commuter reports and the community voting rules that
// promote them to validated.
package reports

import (
	"fmt"
	"time"

	"matatumonitor/internal/transit"
)

// Kind is the category of a report. It is fixed at creation.
type Kind string

const (
	KindTraffic      Kind = "traffic"
	KindFare         Kind = "fare"
	KindAvailability Kind = "availability"
	KindAccident     Kind = "accident"
)

// Kinds lists every report kind in display order.
var Kinds = []Kind{KindTraffic, KindFare, KindAvailability, KindAccident}

// ParseKind converts s into a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindTraffic, KindFare, KindAvailability, KindAccident:
		return k, nil
	}
	return "", fmt.Errorf("unknown report type %q", s)
}

// Details is the kind-specific payload of a report. Exactly one
// implementation exists per Kind, so a report cannot carry a fare unless it is
// a fare report.
type Details interface {
	Kind() Kind
	details()
}

// FareDetails is the payload of a fare report.
type FareDetails struct {
	Amount float64
}

// TrafficDetails is the payload of a traffic report.
type TrafficDetails struct {
	Level transit.TrafficLevel
}

// AvailabilityDetails is the payload of an availability report.
type AvailabilityDetails struct {
	MatatuAvailable bool
}

// AccidentDetails is the (empty) payload of an accident report.
type AccidentDetails struct{}

func (FareDetails) Kind() Kind         { return KindFare }
func (TrafficDetails) Kind() Kind      { return KindTraffic }
func (AvailabilityDetails) Kind() Kind { return KindAvailability }
func (AccidentDetails) Kind() Kind     { return KindAccident }

func (FareDetails) details()         {}
func (TrafficDetails) details()      {}
func (AvailabilityDetails) details() {}
func (AccidentDetails) details()     {}

// Location is where a report was made.
type Location struct {
	transit.Coordinate
	Address string `json:"address"`
}

// UnknownAddress is stored when the reporter leaves the address blank.
const UnknownAddress = "Unknown Location"

// Author identifies who submitted a report.
type Author struct {
	ID   string
	Name string
}

// CurrentUser is the placeholder author stamped on every submission. There is
// no sign-in, so all submissions share it.
var CurrentUser = Author{ID: "current-user", Name: "You"}

// Report is a single commuter observation about a route.
type Report struct {
	ID          string
	Route       string
	Location    Location
	Description string
	Details     Details
	Timestamp   time.Time
	Author      Author
	Upvotes     int
	Downvotes   int
	Validated   bool
}

// Kind returns the report's category, which is always that of its payload.
func (r Report) Kind() Kind {
	if r.Details == nil {
		return ""
	}
	return r.Details.Kind()
}

// Fare returns the reported fare for fare reports.
func (r Report) Fare() (float64, bool) {
	d, ok := r.Details.(FareDetails)
	return d.Amount, ok
}

// TrafficLevel returns the reported level for traffic reports.
func (r Report) TrafficLevel() (transit.TrafficLevel, bool) {
	d, ok := r.Details.(TrafficDetails)
	return d.Level, ok
}

// MatatuAvailable returns the reported availability for availability reports.
func (r Report) MatatuAvailable() (bool, bool) {
	d, ok := r.Details.(AvailabilityDetails)
	return d.MatatuAvailable, ok
}
