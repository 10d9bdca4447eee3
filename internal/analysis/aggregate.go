package analysis

import (
	"sort"
	"strconv"
	"time"

	"github.com/hsgill/go-stubble-watch/internal/models"
)

// NoPeak is the sentinel rendered for peak year/month when there is no
// data. The UI shows it verbatim.
const NoPeak = "N/A"

type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

type MonthCount struct {
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`
	Count     int    `json:"count"`
}

type DistrictCount struct {
	District string `json:"district"`
	Count    int    `json:"count"`
}

// YearMonthCount is one cell of the seasonal year x month table.
type YearMonthCount struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Count int `json:"count"`
}

// Result carries the grouped counts and derived statistics for one event
// subset. Recomputed on every filter change, never cached.
type Result struct {
	TotalCount  int              `json:"total_count"`
	ByYear      []YearCount      `json:"by_year"`       // ascending year
	ByMonth     []MonthCount     `json:"by_month"`      // ascending month
	ByDistrict  []DistrictCount  `json:"by_district"`   // descending count, stable ties
	ByYearMonth []YearMonthCount `json:"by_year_month"` // ascending (year, month)
	PeakYear    string           `json:"peak_year"`
	PeakMonth   string           `json:"peak_month"`
}

// Aggregate computes the grouped counts over events.
//
// Tie-breaks are deterministic: the peak year is the lowest year holding
// the maximum count, the peak month the lowest month number. District
// counts sort by count descending with ties keeping first-encounter order.
func Aggregate(events []models.FireEvent) Result {
	res := Result{
		TotalCount:  len(events),
		ByYear:      []YearCount{},
		ByMonth:     []MonthCount{},
		ByDistrict:  []DistrictCount{},
		ByYearMonth: []YearMonthCount{},
		PeakYear:    NoPeak,
		PeakMonth:   NoPeak,
	}
	if len(events) == 0 {
		return res
	}

	type ym struct{ year, month int }
	yearCounts := map[int]int{}
	monthCounts := map[int]int{}
	yearMonthCounts := map[ym]int{}
	districtCounts := map[string]int{}
	var districtOrder []string

	for i := range events {
		e := &events[i]
		yearCounts[e.Year]++
		monthCounts[e.Month]++
		yearMonthCounts[ym{e.Year, e.Month}]++
		if _, seen := districtCounts[e.District]; !seen {
			districtOrder = append(districtOrder, e.District)
		}
		districtCounts[e.District]++
	}

	years := make([]int, 0, len(yearCounts))
	for y := range yearCounts {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		res.ByYear = append(res.ByYear, YearCount{Year: y, Count: yearCounts[y]})
	}

	months := make([]int, 0, len(monthCounts))
	for m := range monthCounts {
		months = append(months, m)
	}
	sort.Ints(months)
	for _, m := range months {
		res.ByMonth = append(res.ByMonth, MonthCount{
			Month:     m,
			MonthName: time.Month(m).String()[:3],
			Count:     monthCounts[m],
		})
	}

	for _, y := range years {
		for _, m := range months {
			if n, ok := yearMonthCounts[ym{y, m}]; ok {
				res.ByYearMonth = append(res.ByYearMonth, YearMonthCount{Year: y, Month: m, Count: n})
			}
		}
	}

	for _, d := range districtOrder {
		res.ByDistrict = append(res.ByDistrict, DistrictCount{District: d, Count: districtCounts[d]})
	}
	sort.SliceStable(res.ByDistrict, func(i, j int) bool {
		return res.ByDistrict[i].Count > res.ByDistrict[j].Count
	})

	// Scanning the ascending slices with a strictly-greater comparison
	// makes the lowest year / lowest month win on count ties.
	peak := res.ByYear[0]
	for _, yc := range res.ByYear[1:] {
		if yc.Count > peak.Count {
			peak = yc
		}
	}
	res.PeakYear = strconv.Itoa(peak.Year)

	peakMonth := res.ByMonth[0]
	for _, mc := range res.ByMonth[1:] {
		if mc.Count > peakMonth.Count {
			peakMonth = mc
		}
	}
	res.PeakMonth = peakMonth.MonthName

	return res
}
