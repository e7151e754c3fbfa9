package photos

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// dateLayout is the itinerary date format.
const dateLayout = "2006-01-02"

// Trip is one itinerary entry from a trips export.
type Trip struct {
	DisplayName string `json:"display_name"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// tripsFile matches the export wrapper object.
type tripsFile struct {
	Trips []Trip `json:"Trip"`
}

// LoadTrips reads trips from a JSON export file.
func LoadTrips(path string) ([]Trip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trips: %w", err)
	}
	var file tripsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse trips: %w", err)
	}
	return file.Trips, nil
}

// Page returns the 1-based page of trips, latest trip first.
// Pages past the end are empty.
func Page(trips []Trip, page, size int) []Trip {
	reversed := make([]Trip, len(trips))
	for i, t := range trips {
		reversed[len(trips)-1-i] = t
	}

	lo := (page - 1) * size
	if lo < 0 || lo >= len(reversed) {
		return nil
	}
	hi := lo + size
	if hi > len(reversed) {
		hi = len(reversed)
	}
	return reversed[lo:hi]
}

// Pages returns how many pages of the given size the trips fill.
func Pages(trips []Trip, size int) int {
	if size <= 0 {
		return 0
	}
	return (len(trips) + size - 1) / size
}

// AlbumName returns the album title for the trip.
func (t Trip) AlbumName() string {
	return fmt.Sprintf("%s - %s to %s", t.DisplayName, t.StartDate, t.EndDate)
}

// Range returns the [from, to) window covering the trip, end date included.
func (t Trip) Range() (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, t.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start date: %w", err)
	}
	end, err := time.Parse(dateLayout, t.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end date: %w", err)
	}
	return start, end.AddDate(0, 0, 1), nil
}
