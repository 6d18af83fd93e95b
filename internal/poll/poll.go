// Package poll drives the fetch, detect, notify and persist loop on an
// adaptive interval.
package poll

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/matheuskafuri/eowatch/internal/cache"
	"github.com/matheuskafuri/eowatch/internal/detect"
	"github.com/matheuskafuri/eowatch/internal/feed"
)

// ErrStore wraps seen-set load and save failures. These halt the monitor.
var ErrStore = errors.New("seen-set store")

// Source fetches the listing and per-item details.
type Source interface {
	ListRecent(ctx context.Context) ([]feed.Summary, error)
	GetDetail(ctx context.Context, id string) (cache.Item, error)
}

// Store loads and saves the seen-set.
type Store interface {
	Load() (cache.SeenSet, error)
	Save(cache.SeenSet) error
}

type Notifier interface {
	Notify(item cache.Item)
}

// Result describes one cycle. Err is set when the cycle failed on a fetch;
// such failures feed the backoff and are not fatal.
type Result struct {
	New int
	Err error
}

func (r Result) OK() bool { return r.Err == nil }

type Config struct {
	Intervals []time.Duration
	Out       io.Writer
	Now       func() time.Time
	Sleep     func(ctx context.Context, d time.Duration) error
}

type Scheduler struct {
	source   Source
	store    Store
	notifier Notifier
	backoff  *Backoff

	out   io.Writer
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

func New(source Source, store Store, notifier Notifier, cfg Config) *Scheduler {
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Sleep == nil {
		cfg.Sleep = sleepContext
	}
	return &Scheduler{
		source:   source,
		store:    store,
		notifier: notifier,
		backoff:  NewBackoff(cfg.Intervals),
		out:      cfg.Out,
		now:      cfg.Now,
		sleep:    cfg.Sleep,
	}
}

func (s *Scheduler) Backoff() *Backoff {
	return s.backoff
}

// Cycle runs one pass: load the seen-set, list, report and record each new
// item, then save if anything was recorded. A detail failure ends the pass
// early; items already reported in the pass are still saved. The returned
// error is non-nil only for store failures.
func (s *Scheduler) Cycle(ctx context.Context) (Result, error) {
	seen, err := s.store.Load()
	if err != nil {
		return Result{}, fmt.Errorf("%w: loading: %w", ErrStore, err)
	}

	summaries, err := s.source.ListRecent(ctx)
	if err != nil {
		return Result{Err: err}, nil
	}

	var res Result
	for _, sum := range detect.NewItems(summaries, seen) {
		item, err := s.source.GetDetail(ctx, sum.DocumentNumber)
		if err != nil {
			res.Err = fmt.Errorf("fetching details for %s: %w", sum.DocumentNumber, err)
			break
		}
		item = fillFromSummary(item, sum)
		item.SeenAt = s.now().UTC()

		s.notifier.Notify(item)
		seen.Add(item)
		res.New++
	}

	if res.New > 0 {
		if err := s.store.Save(seen); err != nil {
			return res, fmt.Errorf("%w: saving: %w", ErrStore, err)
		}
	}
	return res, nil
}

// RunOnce runs a single cycle with the usual console output and no sleep.
func (s *Scheduler) RunOnce(ctx context.Context) (Result, error) {
	s.tick()
	res, err := s.Cycle(ctx)
	if err != nil {
		return res, err
	}
	s.report(res)
	return res, nil
}

// Run polls until ctx is canceled, which is a clean stop and returns nil.
// Store failures are returned.
func (s *Scheduler) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Starting EO monitor...")
	fmt.Fprintf(s.out, "Checking with backoff intervals: %s\n", s.backoff)
	fmt.Fprintln(s.out, strings.Repeat("-", 80))

	for {
		s.tick()
		res, err := s.Cycle(ctx)
		if ctx.Err() != nil {
			return s.stop()
		}
		if err != nil {
			return err
		}

		s.report(res)
		if res.OK() {
			s.backoff.OnSuccess()
		} else {
			s.backoff.OnFailure()
		}

		if err := s.sleep(ctx, s.backoff.Current()); err != nil {
			return s.stop()
		}
	}
}

func (s *Scheduler) tick() {
	fmt.Fprintf(s.out, "\nChecking for new EOs at %s (interval: %s)\n",
		s.now().Format("2006-01-02 15:04:05"), s.backoff.Current())
}

func (s *Scheduler) report(res Result) {
	switch {
	case !res.OK():
		fmt.Fprintf(s.out, "  [warn] check failed: %v\n", res.Err)
		if res.New > 0 {
			fmt.Fprintf(s.out, "  recorded %d new order(s) before the failure\n", res.New)
		}
	case res.New == 0:
		fmt.Fprintln(s.out, "  No new executive orders.")
	default:
		fmt.Fprintf(s.out, "  %d new executive order(s) recorded.\n", res.New)
	}
}

func (s *Scheduler) stop() error {
	fmt.Fprintln(s.out, "\nStopping EO monitor.")
	return nil
}

func fillFromSummary(item cache.Item, sum feed.Summary) cache.Item {
	item.DocumentNumber = sum.DocumentNumber
	if item.Title == "" {
		item.Title = sum.Title
	}
	if item.ExecutiveOrderNumber == "" {
		item.ExecutiveOrderNumber = string(sum.ExecutiveOrderNumber)
	}
	if item.SigningDate == "" {
		item.SigningDate = sum.SigningDate
	}
	if item.PublicationDate == "" {
		item.PublicationDate = sum.PublicationDate
	}
	if item.HTMLURL == "" {
		item.HTMLURL = sum.HTMLURL
	}
	return item
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
