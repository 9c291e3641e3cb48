// Package catalog holds the read-mostly collection of transit routes shown on
// the map and offered in the report form.
package catalog

import (
	"fmt"
	"math"
	"time"

	"github.com/twpayne/go-polyline"

	"matatumonitor/internal/transit"
	"matatumonitor/internal/utils"
)

// Route is a named matatu route with fare and traffic metadata.
type Route struct {
	ID            string
	Name          string
	From          string
	To            string
	StandardFare  float64
	CurrentFare   *float64
	EstimatedTime string
	TrafficStatus transit.TrafficLevel
	LastUpdated   time.Time
	Coordinates   []transit.Coordinate
}

// Label is the human-readable name used in the report form's route picker,
// e.g. "Route 23 - Westlands to CBD".
func (r Route) Label() string {
	return fmt.Sprintf("%s - %s to %s", r.Name, r.From, r.To)
}

// EffectiveFare is the observed fare when one is known, otherwise the standard fare.
func (r Route) EffectiveFare() float64 {
	if r.CurrentFare != nil {
		return *r.CurrentFare
	}
	return r.StandardFare
}

// FareChangePercent is the rounded percentage by which the current fare
// differs from the standard fare. ok is false when there is no current fare or
// it equals the standard fare.
func (r Route) FareChangePercent() (percent int, ok bool) {
	if r.CurrentFare == nil || *r.CurrentFare == r.StandardFare || r.StandardFare == 0 {
		return 0, false
	}
	change := (*r.CurrentFare - r.StandardFare) / r.StandardFare * 100
	return int(math.Round(change)), true
}

// Drawable reports whether the route has enough points to draw a line.
func (r Route) Drawable() bool {
	return len(r.Coordinates) >= 2
}

// EncodedPath returns the route path in Google's encoded polyline format, or
// "" when the route is not drawable.
func (r Route) EncodedPath() string {
	if !r.Drawable() {
		return ""
	}
	coords := make([][]float64, 0, len(r.Coordinates))
	for _, c := range r.Coordinates {
		coords = append(coords, []float64{c.Lat, c.Lng})
	}
	return string(polyline.EncodeCoords(coords))
}

// LengthMeters is the length of the path along its points.
func (r Route) LengthMeters() float64 {
	var total float64
	for i := 1; i < len(r.Coordinates); i++ {
		a, b := r.Coordinates[i-1], r.Coordinates[i]
		total += utils.Haversine(a.Lat, a.Lng, b.Lat, b.Lng)
	}
	return total
}

// Direction is the compass heading from the first to the last point, or ""
// when the route is not drawable.
func (r Route) Direction() string {
	if !r.Drawable() {
		return ""
	}
	first, last := r.Coordinates[0], r.Coordinates[len(r.Coordinates)-1]
	return utils.CompassDirection(first.Lat, first.Lng, last.Lat, last.Lng)
}

func (r Route) validate() error {
	if err := utils.ValidateID(r.ID); err != nil {
		return fmt.Errorf("route %q: %w", r.ID, err)
	}
	if r.StandardFare <= 0 {
		return fmt.Errorf("route %q: standard fare must be positive", r.ID)
	}
	if r.CurrentFare != nil && *r.CurrentFare <= 0 {
		return fmt.Errorf("route %q: current fare must be positive", r.ID)
	}
	if !r.TrafficStatus.Valid() {
		return fmt.Errorf("route %q: unknown traffic status %q", r.ID, r.TrafficStatus)
	}
	for i, c := range r.Coordinates {
		if fieldErrors := c.Validate(); len(fieldErrors) > 0 {
			return fmt.Errorf("route %q: coordinate %d out of range", r.ID, i)
		}
	}
	return nil
}

func (r Route) clone() Route {
	if r.CurrentFare != nil {
		fare := *r.CurrentFare
		r.CurrentFare = &fare
	}
	r.Coordinates = append([]transit.Coordinate(nil), r.Coordinates...)
	return r
}
