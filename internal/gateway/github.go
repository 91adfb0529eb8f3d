// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
	"github.com/naka-gawa/readme-streak/internal/domain"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	ViewerLogin(ctx context.Context) (string, error)
	FetchContributionYears(ctx context.Context, login string) ([]int, error)
	FetchCalendar(ctx context.Context, login string, from, to time.Time) ([]domain.ContributionDay, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// contributionYearsQuery lists the years in which the user has any activity.
type contributionYearsQuery struct {
	User struct {
		ContributionsCollection struct {
			ContributionYears []githubv4.Int
		}
	} `graphql:"user(login: $login)"`
}

// contributionCalendarQuery fetches the daily calendar for one date window.
type contributionCalendarQuery struct {
	User struct {
		ContributionsCollection struct {
			ContributionCalendar struct {
				Weeks []struct {
					ContributionDays []struct {
						Date              string
						ContributionCount count
					}
				}
			}
		} `graphql:"contributionsCollection(from: $from, to: $to)"`
	} `graphql:"user(login: $login)"`
}

// count decodes a contribution count leniently: anything that is not a
// non-negative integer in int32 range becomes 0.
type count int

func (c *count) UnmarshalJSON(data []byte) error {
	*c = 0
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || n < 0 || n > math.MaxInt32 {
		return nil
	}
	*c = count(n)
	return nil
}

// Options configure where NewGitHubGateway points its clients.
type Options struct {
	Endpoint    string
	RESTBaseURL string
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, opts Options, logger *log.Logger) (Fetcher, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return newGitHubGateway(http.DefaultTransport, ts, opts, logger)
}

// newGitHubGateway wires both clients over base. Every non-2xx response surfaces
// as a domain.TransportError, and GraphQL error payloads as a domain.APIError.
func newGitHubGateway(base http.RoundTripper, ts oauth2.TokenSource, opts Options, logger *log.Logger) (*GitHubGateway, error) {
	authed := &statusTransport{base: &oauth2.Transport{Base: base, Source: ts}}

	restClient := github.NewClient(&http.Client{Transport: authed})
	if opts.RESTBaseURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(opts.RESTBaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("failed to parse REST base URL: %w", err)
		}
		restClient.BaseURL = baseURL
	}

	graphqlHTTP := &http.Client{Transport: &graphQLErrorTransport{base: authed}}
	graphqlClient := githubv4.NewClient(graphqlHTTP)
	if opts.Endpoint != "" {
		graphqlClient = githubv4.NewEnterpriseClient(opts.Endpoint, graphqlHTTP)
	}

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}, nil
}

// ViewerLogin returns the login of the account that owns the token.
func (g *GitHubGateway) ViewerLogin(ctx context.Context) (string, error) {
	g.logger.Println("Resolving the authenticated user via REST API...")
	user, _, err := g.restClient.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get authenticated user: %w", err)
	}
	login := user.GetLogin()
	if login == "" {
		return "", &domain.DataError{Message: "authenticated user has no login"}
	}
	g.logger.Printf("Authenticated as %s\n", login)
	return login, nil
}

// FetchContributionYears returns the years in which login has any contribution activity.
func (g *GitHubGateway) FetchContributionYears(ctx context.Context, login string) ([]int, error) {
	g.logger.Println("Fetching contribution years...")
	variables := map[string]interface{}{"login": githubv4.String(login)}

	var q contributionYearsQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to fetch contribution years: %w", err)
	}

	raw := q.User.ContributionsCollection.ContributionYears
	if len(raw) == 0 {
		return nil, &domain.DataError{Message: "no contribution years found for " + login}
	}
	years := make([]int, 0, len(raw))
	for _, y := range raw {
		years = append(years, int(y))
	}
	g.logger.Printf("Found %d contribution year(s).\n", len(years))
	return years, nil
}

// FetchCalendar fetches the daily contribution calendar between from and to and
// flattens its weeks into a single day sequence.
func (g *GitHubGateway) FetchCalendar(ctx context.Context, login string, from, to time.Time) ([]domain.ContributionDay, error) {
	variables := map[string]interface{}{
		"login": githubv4.String(login),
		"from":  githubv4.DateTime{Time: from.UTC()},
		"to":    githubv4.DateTime{Time: to.UTC()},
	}

	var q contributionCalendarQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to fetch contribution calendar: %w", err)
	}

	weeks := q.User.ContributionsCollection.ContributionCalendar.Weeks
	if len(weeks) == 0 {
		return nil, &domain.DataError{Message: fmt.Sprintf("contribution calendar missing for %s..%s", from.Format(time.DateOnly), to.Format(time.DateOnly))}
	}

	var days []domain.ContributionDay
	for _, week := range weeks {
		for _, day := range week.ContributionDays {
			date, err := time.Parse(time.DateOnly, day.Date)
			if err != nil {
				return nil, &domain.DataError{Message: fmt.Sprintf("invalid contribution date %q", day.Date)}
			}
			days = append(days, domain.ContributionDay{Date: date, Count: int(day.ContributionCount)})
		}
	}
	return days, nil
}
