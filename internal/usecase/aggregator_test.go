package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/naka-gawa/readme-streak/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) ViewerLogin(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockFetcher) FetchContributionYears(ctx context.Context, login string) ([]int, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *mockFetcher) FetchCalendar(ctx context.Context, login string, from, to time.Time) ([]domain.ContributionDay, error) {
	args := m.Called(ctx, login, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContributionDay), args.Error(1)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestYearRange(t *testing.T) {
	now := time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

	from, to := YearRange(2024, now)
	assert.Equal(t, date(2024, time.January, 1), from)
	assert.Equal(t, time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC), to)

	from, to = YearRange(2025, now)
	assert.Equal(t, date(2025, time.January, 1), from)
	assert.Equal(t, now, to)

	// A non-UTC clock still resolves the current year in UTC.
	tokyo := time.FixedZone("JST", 9*60*60)
	_, to = YearRange(2026, time.Date(2026, time.January, 1, 3, 0, 0, 0, tokyo))
	assert.Equal(t, time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC), to)
}

func TestAggregator_Collect(t *testing.T) {
	now := time.Date(2025, time.January, 3, 12, 0, 0, 0, time.UTC)
	from2024, to2024 := YearRange(2024, now)
	from2025, _ := YearRange(2025, now)

	testCases := []struct {
		name          string
		setup         func(f *mockFetcher)
		expectedDays  []domain.ContributionDay
		expectError   bool
		calendarCalls int
	}{
		{
			name: "happy path - years fetched ascending, merged and sorted",
			setup: func(f *mockFetcher) {
				f.On("FetchContributionYears", mock.Anything, "octocat").Return([]int{2025, 2024}, nil)
				f.On("FetchCalendar", mock.Anything, "octocat", from2024, to2024).Return([]domain.ContributionDay{
					{Date: date(2024, time.December, 31), Count: 2},
					{Date: date(2024, time.December, 30), Count: 1},
				}, nil).Once()
				f.On("FetchCalendar", mock.Anything, "octocat", from2025, now).Return([]domain.ContributionDay{
					{Date: date(2025, time.January, 1), Count: 0},
					{Date: date(2025, time.January, 2), Count: 5},
					{Date: date(2025, time.January, 3), Count: 1},
					{Date: date(2025, time.January, 4), Count: 9},
				}, nil).Once()
			},
			expectedDays: []domain.ContributionDay{
				{Date: date(2024, time.December, 30), Count: 1},
				{Date: date(2024, time.December, 31), Count: 2},
				{Date: date(2025, time.January, 1), Count: 0},
				{Date: date(2025, time.January, 2), Count: 5},
				{Date: date(2025, time.January, 3), Count: 1},
			},
			calendarCalls: 2,
		},
		{
			name: "error case - year discovery fails",
			setup: func(f *mockFetcher) {
				f.On("FetchContributionYears", mock.Anything, "octocat").Return(nil, &domain.DataError{Message: "no years"})
			},
			expectError:   true,
			calendarCalls: 0,
		},
		{
			name: "error case - a calendar fetch fails",
			setup: func(f *mockFetcher) {
				f.On("FetchContributionYears", mock.Anything, "octocat").Return([]int{2024, 2025}, nil)
				f.On("FetchCalendar", mock.Anything, "octocat", from2024, to2024).Return(nil, errors.New("github api error"))
			},
			expectError:   true,
			calendarCalls: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fetcher := new(mockFetcher)
			tc.setup(fetcher)
			aggregator := NewAggregator(fetcher, log.New(io.Discard, "", 0), func() time.Time { return now })

			days, err := aggregator.Collect(context.Background(), "octocat")
			if tc.expectError {
				assert.Error(t, err)
				assert.Nil(t, days)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expectedDays, days)
			}

			// A failed year must stop the loop before later years are requested.
			fetcher.AssertExpectations(t)
			fetcher.AssertNumberOfCalls(t, "FetchCalendar", tc.calendarCalls)
		})
	}
}
