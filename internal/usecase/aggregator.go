// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/naka-gawa/readme-streak/internal/domain"
	"github.com/naka-gawa/readme-streak/internal/gateway"
)

// Aggregator is the use case for assembling a complete contribution history.
// It orchestrates the year discovery and per-year calendar fetches.
type Aggregator struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
	now     func() time.Time
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *log.Logger, now func() time.Time) *Aggregator {
	if now == nil {
		now = time.Now
	}
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger,
		now:     now,
	}
}

// YearRange returns the UTC window fetched for year. The year that is current at
// now is bounded by now instead of December 31.
func YearRange(year int, now time.Time) (from, to time.Time) {
	now = now.UTC()
	from = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to = time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
	if year == now.Year() {
		to = now
	}
	return from, to
}

// Collect fetches every contribution year of login, one year at a time, and
// returns all days up to now in ascending date order.
func (a *Aggregator) Collect(ctx context.Context, login string) ([]domain.ContributionDay, error) {
	a.logger.Println("Usecase: Starting calendar aggregation...")
	now := a.now().UTC()

	years, err := a.fetcher.FetchContributionYears(ctx, login)
	if err != nil {
		return nil, err
	}
	sorted := append([]int(nil), years...)
	sort.Ints(sorted)

	var days []domain.ContributionDay
	for i, year := range sorted {
		from, to := YearRange(year, now)
		a.logger.Printf("[%d/%d] Fetching calendar for %d...\n", i+1, len(sorted), year)
		yearDays, err := a.fetcher.FetchCalendar(ctx, login, from, to)
		if err != nil {
			return nil, err
		}
		days = append(days, yearDays...)
	}

	result := make([]domain.ContributionDay, 0, len(days))
	for _, day := range days {
		if day.Date.After(now) {
			continue
		}
		result = append(result, day)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	if gaps := domain.Gaps(result); gaps > 0 {
		a.logger.Printf("Usecase: warning: %d calendar day(s) missing from the history; streaks count entries, not dates.\n", gaps)
	}
	a.logger.Printf("Usecase: Aggregation complete, %d day(s) collected.\n", len(result))
	return result, nil
}
