package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/matheuskafuri/eowatch/internal/browser"
	"github.com/matheuskafuri/eowatch/internal/cache"
	"github.com/matheuskafuri/eowatch/internal/config"
	"github.com/matheuskafuri/eowatch/internal/feed"
	"github.com/matheuskafuri/eowatch/internal/notify"
	"github.com/matheuskafuri/eowatch/internal/poll"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a single check and exit",
	Long:  "Fetch the listing once, report and record new executive orders, then exit. Exits non-zero if the check failed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		sched, err := newScheduler(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		res, err := sched.RunOnce(cmd.Context())
		if err != nil {
			return err
		}
		if cmd.Context().Err() != nil {
			return nil
		}
		if !res.OK() {
			return fmt.Errorf("check failed: %w", res.Err)
		}
		return nil
	},
}

func runWatch(cmd *cobra.Command, args []string) error {
	sched, err := newScheduler(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return sched.Run(cmd.Context())
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagCache != "" {
		cfg.CacheFile = flagCache
	}
	if flagInterval != "" {
		intervals := splitIntervals(flagInterval)
		if err := config.ValidateIntervals(intervals); err != nil {
			return nil, fmt.Errorf("invalid --interval value: %w", err)
		}
		cfg.PollIntervals = intervals
	}
	if flagOpen {
		cfg.OpenInBrowser = true
	}
	return cfg, nil
}

func newScheduler(out io.Writer) (*poll.Scheduler, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	client, err := feed.New(feed.Config{
		BaseURL:            cfg.APIURL,
		UserAgent:          cfg.GetUserAgent(),
		PerPage:            cfg.GetPerPage(),
		President:          cfg.President,
		Lookback:           cfg.LookbackDuration(),
		Timeout:            cfg.RequestTimeoutDuration(),
		MaxAttempts:        cfg.GetMaxAttempts(),
		RetryDelay:         cfg.RetryDelayDuration(),
		RateLimitThreshold: cfg.RateLimitThreshold,
		RateLimitPause:     cfg.RateLimitPauseDuration(),
		Log:                out,
	})
	if err != nil {
		return nil, fmt.Errorf("creating API client: %w", err)
	}

	var opts []notify.Option
	if cfg.OpenInBrowser {
		opts = append(opts, notify.WithBrowser(browser.Open))
	}

	return poll.New(
		client,
		cache.Open(cfg.CachePath()),
		notify.NewConsole(out, opts...),
		poll.Config{Intervals: cfg.Intervals(), Out: out},
	), nil
}

func splitIntervals(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
