// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"time"

	"github.com/montanaflynn/stats"
)

// ContributionDay is one calendar day of contribution activity as reported by GitHub.
type ContributionDay struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// StatsResult holds the three figures rendered into the README.
// It is the core domain entity of this application.
type StatsResult struct {
	Total         int `json:"total"`
	LongestStreak int `json:"longest_streak"`
	CurrentStreak int `json:"current_streak"`
}

// ComputeStats reduces a chronologically sorted day sequence into a StatsResult.
// Streaks are counted over sequence positions, not calendar arithmetic.
func ComputeStats(days []ContributionDay) StatsResult {
	var result StatsResult
	running := 0
	for _, day := range days {
		result.Total += day.Count
		if day.Count > 0 {
			running++
			if running > result.LongestStreak {
				result.LongestStreak = running
			}
			continue
		}
		running = 0
	}

	for i := len(days) - 1; i >= 0 && days[i].Count > 0; i-- {
		result.CurrentStreak++
	}
	return result
}

// Gaps returns how many calendar days are missing between adjacent entries.
func Gaps(days []ContributionDay) int {
	missing := 0
	for i := 1; i < len(days); i++ {
		prev := days[i-1].Date.UTC().Truncate(24 * time.Hour)
		cur := days[i].Date.UTC().Truncate(24 * time.Hour)
		if delta := int(cur.Sub(prev).Hours() / 24); delta > 1 {
			missing += delta - 1
		}
	}
	return missing
}

// Description holds supplementary figures that are logged but never rendered.
type Description struct {
	Days       int
	ActiveDays int
	DailyMean  float64
	BusiestDay int
}

// Describe computes supplementary figures over the day sequence.
func Describe(days []ContributionDay) (Description, error) {
	desc := Description{Days: len(days)}
	if len(days) == 0 {
		return desc, nil
	}

	counts := make([]int, 0, len(days))
	for _, day := range days {
		counts = append(counts, day.Count)
		if day.Count > 0 {
			desc.ActiveDays++
		}
	}
	data := stats.LoadRawData(counts)

	mean, err := stats.Mean(data)
	if err != nil {
		return desc, err
	}
	busiest, err := stats.Max(data)
	if err != nil {
		return desc, err
	}
	desc.DailyMean = mean
	desc.BusiestDay = int(busiest)
	return desc, nil
}
