package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jamespfennell/gtfs"

	"matatumonitor/internal/transit"
)

// GTFSOptions controls how a GTFS static feed is turned into routes. GTFS
// feeds rarely carry fares that map onto a single route price and never carry
// live traffic, so both come from configuration.
type GTFSOptions struct {
	DefaultFare    float64
	DefaultTraffic transit.TrafficLevel
	Now            time.Time
}

// LoadGTFS reads a GTFS static zip from a local path or an http(s) URL and
// converts its routes.
func LoadGTFS(ctx context.Context, source string, opts GTFSOptions) ([]Route, error) {
	b, err := rawGtfsData(ctx, source)
	if err != nil {
		return nil, err
	}

	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("error parsing GTFS data: %w", err)
	}

	return RoutesFromStatic(staticData, opts)
}

func isRemoteSource(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func rawGtfsData(ctx context.Context, source string) ([]byte, error) {
	if !isRemoteSource(source) {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local GTFS file: %w", err)
		}
		return b, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("error building GTFS request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading GTFS data: %w", err)
	}
	defer resp.Body.Close() // nolint

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading GTFS data: unexpected status %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS data: %w", err)
	}
	return b, nil
}

// RoutesFromStatic converts parsed GTFS routes. Each route is described by its
// longest trip: the first and last stops become From and To, the trip shape
// (or its stops when there is no shape) becomes the path, and the scheduled
// running time becomes EstimatedTime.
func RoutesFromStatic(staticData *gtfs.Static, opts GTFSOptions) ([]Route, error) {
	if opts.DefaultFare <= 0 {
		return nil, fmt.Errorf("default fare must be positive, got %v", opts.DefaultFare)
	}
	if opts.DefaultTraffic == "" {
		opts.DefaultTraffic = transit.TrafficModerate
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	longest := make(map[string]*gtfs.ScheduledTrip)
	for i := range staticData.Trips {
		trip := &staticData.Trips[i]
		if trip.Route == nil {
			continue
		}
		current, ok := longest[trip.Route.Id]
		if !ok || len(trip.StopTimes) > len(current.StopTimes) {
			longest[trip.Route.Id] = trip
		}
	}

	routes := make([]Route, 0, len(staticData.Routes))
	for i := range staticData.Routes {
		gtfsRoute := &staticData.Routes[i]
		route := Route{
			ID:            gtfsRoute.Id,
			Name:          routeName(gtfsRoute),
			StandardFare:  opts.DefaultFare,
			TrafficStatus: opts.DefaultTraffic,
			LastUpdated:   opts.Now,
		}

		if trip, ok := longest[gtfsRoute.Id]; ok {
			describeTrip(&route, trip)
		}
		if route.From == "" && route.To == "" {
			route.From, route.To = splitLongName(gtfsRoute.LongName)
		}

		routes = append(routes, route)
	}
	return routes, nil
}

func routeName(r *gtfs.Route) string {
	if r.ShortName != "" {
		return "Route " + r.ShortName
	}
	if r.LongName != "" {
		return r.LongName
	}
	return "Route " + r.Id
}

// splitLongName handles long names of the form "Ngong - CBD".
func splitLongName(longName string) (string, string) {
	parts := strings.SplitN(longName, " - ", 2)
	if len(parts) != 2 {
		return longName, ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

func describeTrip(route *Route, trip *gtfs.ScheduledTrip) {
	stopTimes := trip.StopTimes
	if len(stopTimes) > 0 {
		first, last := stopTimes[0], stopTimes[len(stopTimes)-1]
		if first.Stop != nil {
			route.From = first.Stop.Name
		}
		if last.Stop != nil {
			route.To = last.Stop.Name
		}
		if running := last.ArrivalTime - first.DepartureTime; running > 0 {
			route.EstimatedTime = fmt.Sprintf("%d mins", int(running.Round(time.Minute).Minutes()))
		}
	}

	if trip.Shape != nil && len(trip.Shape.Points) >= 2 {
		for _, p := range trip.Shape.Points {
			route.Coordinates = append(route.Coordinates, transit.Coordinate{Lat: p.Latitude, Lng: p.Longitude})
		}
		return
	}

	for _, st := range stopTimes {
		if st.Stop == nil || st.Stop.Latitude == nil || st.Stop.Longitude == nil {
			continue
		}
		route.Coordinates = append(route.Coordinates, transit.Coordinate{Lat: *st.Stop.Latitude, Lng: *st.Stop.Longitude})
	}
}
