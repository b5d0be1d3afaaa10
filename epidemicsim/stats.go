package epidemicsim

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// DayStats is one day's global snapshot.
type DayStats struct {
	Day       int `json:"day"`
	Healthy   int `json:"healthy"`
	Infected  int `json:"infected"`
	Recovered int `json:"recovered"`
	Deceased  int `json:"deceased"`
}

// TimelineSummary condenses a run's history for chart clients.
type TimelineSummary struct {
	Days           int     `json:"days"`
	PeakInfected   int     `json:"peak_infected"`
	PeakDay        int     `json:"peak_day"`
	MeanInfected   float64 `json:"mean_infected"`
	StdDevInfected float64 `json:"stddev_infected"`
	AttackRate     float64 `json:"attack_rate"`
}

// StatsHistory accumulates one snapshot per successfully simulated day.
type StatsHistory struct {
	Days []DayStats
}

// Record appends the day's snapshot.
func (h *StatsHistory) Record(day int, global map[string]int) {
	h.Days = append(h.Days, DayStats{
		Day:       day,
		Healthy:   global[Healthy.String()],
		Infected:  global[Infected.String()],
		Recovered: global[Recovered.String()],
		Deceased:  global[Deceased.String()],
	})
}

// Summary computes the run summary over the recorded days. The attack rate
// is the share of the population no longer healthy on the last recorded
// day.
func (h *StatsHistory) Summary() TimelineSummary {
	if len(h.Days) == 0 {
		return TimelineSummary{}
	}

	infected := make([]float64, len(h.Days))
	peak, peakDay := 0, h.Days[0].Day
	for i, d := range h.Days {
		infected[i] = float64(d.Infected)
		if d.Infected > peak {
			peak = d.Infected
			peakDay = d.Day
		}
	}

	last := h.Days[len(h.Days)-1]
	total := last.Healthy + last.Infected + last.Recovered + last.Deceased
	attackRate := 0.0
	if total > 0 {
		attackRate = float64(total-last.Healthy) / float64(total)
	}

	return TimelineSummary{
		Days:           len(h.Days),
		PeakInfected:   peak,
		PeakDay:        peakDay,
		MeanInfected:   stat.Mean(infected, nil),
		StdDevInfected: stat.StdDev(infected, nil),
		AttackRate:     attackRate,
	}
}

// WriteCSV dumps the history as one row per day.
func (h *StatsHistory) WriteCSV(path string) error {
	csvFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create stats csv: %w", err)
	}
	defer csvFile.Close()

	csvwriter := csv.NewWriter(csvFile)
	csvwriter.Write([]string{"day", "healthy", "infected", "recovered", "deceased"})
	for _, row := range h.Days {
		csvwriter.Write([]string{
			strconv.Itoa(row.Day),
			strconv.Itoa(row.Healthy),
			strconv.Itoa(row.Infected),
			strconv.Itoa(row.Recovered),
			strconv.Itoa(row.Deceased),
		})
	}

	csvwriter.Flush()
	return csvwriter.Error()
}
