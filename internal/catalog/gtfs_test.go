package catalog

import (
	"archive/zip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jamespfennell/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matatumonitor/internal/transit"
)

func float(f float64) *float64 { return &f }

func TestRoutesFromStatic(t *testing.T) {
	ngong := &gtfs.Stop{Id: "s1", Name: "Ngong", Latitude: float(-1.3632), Longitude: float(36.6547)}
	karen := &gtfs.Stop{Id: "s2", Name: "Karen", Latitude: float(-1.3190), Longitude: float(36.7070)}
	cbd := &gtfs.Stop{Id: "s3", Name: "CBD", Latitude: float(-1.2864), Longitude: float(36.8172)}

	static := &gtfs.Static{
		Routes: []gtfs.Route{
			{Id: "111", ShortName: "111", LongName: "Ngong - CBD"},
			{Id: "58", LongName: "Buruburu - Town"},
		},
	}
	static.Trips = []gtfs.ScheduledTrip{
		{
			ID:    "short",
			Route: &static.Routes[0],
			StopTimes: []gtfs.ScheduledStopTime{
				{Stop: karen, StopSequence: 1, DepartureTime: 7 * time.Hour},
				{Stop: cbd, StopSequence: 2, ArrivalTime: 7*time.Hour + 20*time.Minute},
			},
		},
		{
			ID:    "long",
			Route: &static.Routes[0],
			StopTimes: []gtfs.ScheduledStopTime{
				{Stop: ngong, StopSequence: 1, DepartureTime: 8 * time.Hour},
				{Stop: karen, StopSequence: 2, ArrivalTime: 8*time.Hour + 15*time.Minute, DepartureTime: 8*time.Hour + 16*time.Minute},
				{Stop: cbd, StopSequence: 3, ArrivalTime: 8*time.Hour + 45*time.Minute},
			},
		},
	}

	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	routes, err := RoutesFromStatic(static, GTFSOptions{DefaultFare: 80, Now: now})
	require.NoError(t, err)
	require.Len(t, routes, 2)

	r := routes[0]
	assert.Equal(t, "111", r.ID)
	assert.Equal(t, "Route 111", r.Name)
	assert.Equal(t, "Ngong", r.From)
	assert.Equal(t, "CBD", r.To)
	assert.Equal(t, "45 mins", r.EstimatedTime)
	assert.Equal(t, 80.0, r.StandardFare)
	assert.Nil(t, r.CurrentFare)
	assert.Equal(t, transit.TrafficModerate, r.TrafficStatus)
	assert.Equal(t, now, r.LastUpdated)
	require.Len(t, r.Coordinates, 3, "falls back to stop coordinates without a shape")
	assert.Equal(t, transit.Coordinate{Lat: -1.3632, Lng: 36.6547}, r.Coordinates[0])

	noTrips := routes[1]
	assert.Equal(t, "Buruburu - Town", noTrips.Name)
	assert.Equal(t, "Buruburu", noTrips.From)
	assert.Equal(t, "Town", noTrips.To)
	assert.False(t, noTrips.Drawable())

	_, err = New(routes...)
	assert.NoError(t, err, "converted routes form a valid catalog")
}

func TestRoutesFromStaticPrefersShape(t *testing.T) {
	static := &gtfs.Static{
		Routes: []gtfs.Route{{Id: "23", ShortName: "23"}},
		Shapes: []gtfs.Shape{{
			ID: "shape-23",
			Points: []gtfs.ShapePoint{
				{Latitude: -1.2634, Longitude: 36.8031},
				{Latitude: -1.2700, Longitude: 36.8100},
				{Latitude: -1.2864, Longitude: 36.8172},
			},
		}},
	}
	static.Trips = []gtfs.ScheduledTrip{{ID: "t", Route: &static.Routes[0], Shape: &static.Shapes[0]}}

	routes, err := RoutesFromStatic(static, GTFSOptions{DefaultFare: 40, DefaultTraffic: transit.TrafficLow})
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Len(t, routes[0].Coordinates, 3)
	assert.Equal(t, transit.TrafficLow, routes[0].TrafficStatus)
	assert.False(t, routes[0].LastUpdated.IsZero())
}

func TestRoutesFromStaticRequiresFare(t *testing.T) {
	_, err := RoutesFromStatic(&gtfs.Static{}, GTFSOptions{})
	assert.ErrorContains(t, err, "default fare must be positive")
}

var feedFiles = map[string]string{
	"agency.txt": "agency_id,agency_name,agency_url,agency_timezone\n" +
		"SACCO,Super Metro,https://example.com,Africa/Nairobi\n",
	"routes.txt": "route_id,agency_id,route_short_name,route_long_name,route_type\n" +
		"R23,SACCO,23,Westlands - CBD,3\n",
	"stops.txt": "stop_id,stop_name,stop_lat,stop_lon\n" +
		"WL,Westlands,-1.2634,36.8031\n" +
		"CBD,CBD,-1.2864,36.8172\n",
	"calendar.txt": "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n" +
		"WK,1,1,1,1,1,0,0,20250101,20251231\n",
	"trips.txt": "route_id,service_id,trip_id\n" +
		"R23,WK,T1\n",
	"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
		"T1,07:00:00,07:00:00,WL,1\n" +
		"T1,07:15:00,07:15:00,CBD,2\n",
}

func writeFeed(t *testing.T) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.zip")
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	for name, content := range feedFiles {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return b
}

func TestLoadGTFSFromFile(t *testing.T) {
	b := writeFeed(t)
	path := filepath.Join(t.TempDir(), "nairobi.zip")
	require.NoError(t, os.WriteFile(path, b, 0o600))

	routes, err := LoadGTFS(context.Background(), path, GTFSOptions{DefaultFare: 40})
	require.NoError(t, err)
	require.Len(t, routes, 1)

	r := routes[0]
	assert.Equal(t, "R23", r.ID)
	assert.Equal(t, "Route 23", r.Name)
	assert.Equal(t, "Westlands", r.From)
	assert.Equal(t, "CBD", r.To)
	assert.Equal(t, "15 mins", r.EstimatedTime)
	assert.Len(t, r.Coordinates, 2)
}

func TestLoadGTFSFromURL(t *testing.T) {
	b := writeFeed(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/gtfs.zip" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(b)
	}))
	defer server.Close()

	routes, err := LoadGTFS(context.Background(), server.URL+"/gtfs.zip", GTFSOptions{DefaultFare: 40})
	require.NoError(t, err)
	assert.Len(t, routes, 1)

	_, err = LoadGTFS(context.Background(), server.URL+"/missing.zip", GTFSOptions{DefaultFare: 40})
	assert.ErrorContains(t, err, "unexpected status 404")
}

func TestLoadGTFSErrors(t *testing.T) {
	_, err := LoadGTFS(context.Background(), filepath.Join(t.TempDir(), "nope.zip"), GTFSOptions{DefaultFare: 40})
	assert.ErrorContains(t, err, "error reading local GTFS file")

	garbage := filepath.Join(t.TempDir(), "garbage.zip")
	require.NoError(t, os.WriteFile(garbage, []byte("not a zip"), 0o600))
	_, err = LoadGTFS(context.Background(), garbage, GTFSOptions{DefaultFare: 40})
	assert.ErrorContains(t, err, "error parsing GTFS data")
}
