package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/naka-gawa/readme-streak/internal/config"
	"github.com/naka-gawa/readme-streak/internal/domain"
	"github.com/naka-gawa/readme-streak/internal/gateway"
	"github.com/naka-gawa/readme-streak/internal/readme"
	"github.com/naka-gawa/readme-streak/internal/render"
	"github.com/naka-gawa/readme-streak/internal/usecase"
	"github.com/spf13/cobra"
)

// newFetcher builds the GitHub gateway. Tests replace it to keep the network out.
var newFetcher = func(cfg *config.Config, logger *log.Logger) (gateway.Fetcher, error) {
	return gateway.NewGitHubGateway(cfg.Token, gateway.Options{
		Endpoint:    cfg.Endpoint,
		RESTBaseURL: cfg.RESTBaseURL,
	}, logger)
}

// clock is the time source handed to the aggregator.
var clock = time.Now

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Recomputes contribution streaks and rewrites the README badge block",
	Long: `Fetches every contribution year of the authenticated account, computes total
contributions, the longest streak and the current streak, and replaces the region
between the streak markers of the README with freshly rendered badges.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(cmd.ErrOrStderr()) // If verbose, log to standard error.
		}

		readmePath, _ := cmd.Flags().GetString("readme")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		if err := config.LoadDotEnv(); err != nil {
			return err
		}
		cfg, err := config.Load(os.Getenv)
		if err != nil {
			return err
		}
		if readmePath != "" {
			cfg.ReadmePath = readmePath
		}

		return runUpdate(cmd.Context(), cfg, dryRun, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

// runUpdate performs fetch, aggregate, compute, render and patch in that order.
// In dry-run mode out receives only the patched README and the summary goes to errOut.
func runUpdate(ctx context.Context, cfg *config.Config, dryRun bool, logger *log.Logger, out, errOut io.Writer) error {
	// Check the markers up front so a misconfigured README costs no API calls.
	content, err := os.ReadFile(cfg.ReadmePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cfg.ReadmePath, err)
	}
	if _, err := readme.Replace(string(content), cfg.StartMarker, cfg.EndMarker, ""); err != nil {
		return fmt.Errorf("failed to patch %s: %w", cfg.ReadmePath, err)
	}

	// Inject dependencies and run the main business logic.
	fetcher, err := newFetcher(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	login, err := fetcher.ViewerLogin(ctx)
	if err != nil {
		return err
	}

	aggregator := usecase.NewAggregator(fetcher, logger, clock)
	days, err := aggregator.Collect(ctx, login)
	if err != nil {
		return fmt.Errorf("failed to aggregate contributions: %w", err)
	}

	stats := domain.ComputeStats(days)
	if desc, err := domain.Describe(days); err == nil {
		logger.Printf("%d day(s), %d active, %.2f contributions/day, busiest day %d\n",
			desc.Days, desc.ActiveDays, desc.DailyMean, desc.BusiestDay)
	}

	fragment := render.Render(stats, render.Markers{Start: cfg.StartMarker, End: cfg.EndMarker})
	if dryRun {
		patched, err := readme.Replace(string(content), cfg.StartMarker, cfg.EndMarker, fragment)
		if err != nil {
			return err
		}
		fmt.Fprint(out, patched)
		printSummary(errOut, stats)
		return nil
	}

	if err := readme.Patch(cfg.ReadmePath, cfg.StartMarker, cfg.EndMarker, fragment); err != nil {
		return err
	}
	logger.Printf("Updated %s\n", cfg.ReadmePath)
	printSummary(out, stats)
	return nil
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().String("readme", config.DefaultReadmePath, "Path of the README to patch")
	updateCmd.Flags().Bool("dry-run", false, "Print the patched README instead of writing it")
}
