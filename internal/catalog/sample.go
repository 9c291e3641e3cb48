package catalog

import (
	"time"

	"matatumonitor/internal/transit"
)

func fare(f float64) *float64 { return &f }

// Sample returns the Nairobi demo routes, all marked as updated at now.
func Sample(now time.Time) []Route {
	return []Route{
		{
			ID:            "1",
			Name:          "Route 2",
			From:          "CBD",
			To:            "Kibera",
			StandardFare:  50,
			CurrentFare:   fare(70),
			EstimatedTime: "25 mins",
			TrafficStatus: transit.TrafficHigh,
			LastUpdated:   now,
			Coordinates: []transit.Coordinate{
				{Lat: -1.2864, Lng: 36.8172},
				{Lat: -1.3130, Lng: 36.7880},
			},
		},
		{
			ID:            "2",
			Name:          "Route 23",
			From:          "Westlands",
			To:            "CBD",
			StandardFare:  40,
			CurrentFare:   fare(40),
			EstimatedTime: "15 mins",
			TrafficStatus: transit.TrafficModerate,
			LastUpdated:   now,
			Coordinates: []transit.Coordinate{
				{Lat: -1.2634, Lng: 36.8031},
				{Lat: -1.2864, Lng: 36.8172},
			},
		},
		{
			ID:            "3",
			Name:          "Route 111",
			From:          "Ngong",
			To:            "CBD",
			StandardFare:  80,
			CurrentFare:   fare(100),
			EstimatedTime: "45 mins",
			TrafficStatus: transit.TrafficSevere,
			LastUpdated:   now,
			Coordinates: []transit.Coordinate{
				{Lat: -1.3632, Lng: 36.6547},
				{Lat: -1.2864, Lng: 36.8172},
			},
		},
		{
			ID:            "4",
			Name:          "Route 46",
			From:          "Kawangware",
			To:            "Yaya Centre",
			StandardFare:  60,
			CurrentFare:   fare(60),
			EstimatedTime: "20 mins",
			TrafficStatus: transit.TrafficLow,
			LastUpdated:   now,
			Coordinates: []transit.Coordinate{
				{Lat: -1.2840, Lng: 36.7470},
				{Lat: -1.2940, Lng: 36.7850},
			},
		},
	}
}
