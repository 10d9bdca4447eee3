package models

import "time"

// FireEvent is one normalized stubble-burning detection. Created once by the
// loader from a raw CSV row and read-only afterward; Year, Month and
// MonthName are derived from Date at parse time and never mutated.
type FireEvent struct {
	Date      time.Time `json:"date"`
	District  string    `json:"district"`
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lon"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	MonthName string    `json:"month_name"`
}

// UnknownDistrict is the sentinel assigned to events whose source row has no
// district value.
const UnknownDistrict = "Unknown"

// Coordinates returns the event position as a Coordinate.
func (e *FireEvent) Coordinates() Coordinate {
	return Coordinate{
		Latitude:  e.Latitude,
		Longitude: e.Longitude,
	}
}

type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// NewFireEvent derives the year/month fields from date. Callers are expected
// to have validated the date and coordinates already.
func NewFireEvent(date time.Time, district string, lat, lon float64) FireEvent {
	if district == "" {
		district = UnknownDistrict
	}
	return FireEvent{
		Date:      date,
		District:  district,
		Latitude:  lat,
		Longitude: lon,
		Year:      date.Year(),
		Month:     int(date.Month()),
		MonthName: date.Month().String()[:3],
	}
}
