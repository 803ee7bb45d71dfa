// Package loader fetches the snapshot files concurrently and fills the event
// store one category at a time.
//
// Every file is fetched by its own goroutine. Each category joins on its own
// files only: earthquakes and cyclones wait for both of their files, tsunamis
// and eruptions for one. A category whose files all arrived is normalized and
// stored in one step; a category with any failed file stays unavailable while
// the others continue.
package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/disaster-map/internal/domain"
	"github.com/couchcryptid/disaster-map/internal/observability"
	"github.com/couchcryptid/disaster-map/internal/source"
	"github.com/couchcryptid/disaster-map/internal/store"
	"github.com/jonboulle/clockwork"
)

// ErrLoadFailed wraps every file that could not be retrieved.
var ErrLoadFailed = errors.New("failed loading file")

// Fetcher retrieves the rows of one snapshot file.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]source.Row, error)
}

// Notifier shows the load failure notice to the user.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Failure is one file that could not be retrieved.
type Failure struct {
	Category domain.Category
	File     string
	Err      error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s %s: %v", ErrLoadFailed, f.File, f.Err)
}

func (f Failure) Unwrap() []error { return []error{ErrLoadFailed, f.Err} }

// Report summarizes one load cycle.
type Report struct {
	Loaded   []domain.Category
	Failures []Failure
	Stats    []source.Stats
}

// Err joins the failures, or returns nil when every file loaded.
func (r Report) Err() error {
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Files lists the failed file names.
func (r Report) Files() []string {
	files := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		files[i] = f.File
	}
	return files
}

// Message is the user-facing failure notice, or "" when nothing failed.
func (r Report) Message() string {
	if len(r.Failures) == 0 {
		return ""
	}
	return FailureMessage(r.Files())
}

// FailureMessage formats the notice for the given failed files.
func FailureMessage(files []string) string {
	return "Fatal Error: Failed loading files: " + strings.Join(files, ", ") +
		"\n\nTwo possible causes:" +
		"\n1. DATA_DIR does not point at the snapshot directory." +
		"\n2. You moved or renamed the snapshot's data files." +
		"\n\nCheck that the data files are in the expected location and run again."
}

// Option configures a Loader.
type Option func(*Loader)

// WithClock sets the clock used for the report delay and durations.
func WithClock(c clockwork.Clock) Option {
	return func(l *Loader) { l.clock = c }
}

// WithReportDelay sets how long after the start the failures are reported.
func WithReportDelay(d time.Duration) Option {
	return func(l *Loader) { l.reportDelay = d }
}

// WithNotifier sets where the failure notice goes.
func WithNotifier(n Notifier) Option {
	return func(l *Loader) { l.notifier = n }
}

// WithOnReady registers a callback run after a category is stored. It is
// called from the category's own goroutine.
func WithOnReady(fn func(domain.Category)) Option {
	return func(l *Loader) { l.onReady = fn }
}

// WithSourceOptions passes normalization options to the source adapters.
func WithSourceOptions(opts source.Options) Option {
	return func(l *Loader) { l.sourceOpts = opts }
}

// Loader runs the load cycle.
type Loader struct {
	fetcher     Fetcher
	store       *store.Store
	logger      *slog.Logger
	metrics     *observability.Metrics
	clock       clockwork.Clock
	reportDelay time.Duration
	notifier    Notifier
	onReady     func(domain.Category)
	sourceOpts  source.Options

	settled atomic.Int32
}

// New creates a Loader filling s from f.
func New(f Fetcher, s *store.Store, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Loader {
	l := &Loader{
		fetcher:     f,
		store:       s,
		logger:      logger,
		metrics:     metrics,
		clock:       clockwork.NewRealClock(),
		reportDelay: 2 * time.Second,
		notifier:    NotifierFunc(func(string) {}),
		onReady:     func(domain.Category) {},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CheckReadiness returns nil once every category has settled, loaded or failed.
func (l *Loader) CheckReadiness(_ context.Context) error {
	n := int(l.settled.Load())
	if total := len(domain.Categories()); n < total {
		return fmt.Errorf("loaded %d of %d categories", n, total)
	}
	return nil
}

// Run loads every category, then waits until the report delay has passed
// since the start and sends one notice listing all failed files. It returns
// the load report; cancelling ctx skips the notice.
func (l *Loader) Run(ctx context.Context) (Report, error) {
	start := l.clock.Now()
	report := l.Load(ctx)
	if len(report.Failures) == 0 {
		return report, nil
	}

	if wait := l.reportDelay - l.clock.Since(start); wait > 0 {
		timer := l.clock.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		case <-timer.Chan():
		}
	}
	l.notifier.Notify(report.Message())
	return report, nil
}

// Load fetches every file and blocks until every category has settled.
func (l *Loader) Load(ctx context.Context) Report {
	l.logger.Info("loading snapshot", "files", len(source.Specs()))
	l.metrics.LoaderRunning.Set(1)
	defer l.metrics.LoaderRunning.Set(0)

	futures := make(map[string]*future, len(source.Specs()))
	for _, spec := range source.Specs() {
		futures[spec.File] = l.fetch(ctx, spec)
	}

	var (
		mu     sync.Mutex
		report Report
		wg     sync.WaitGroup
	)
	for _, c := range domain.Categories() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, failures := l.settle(c, futures)
			mu.Lock()
			defer mu.Unlock()
			if len(failures) == 0 {
				report.Loaded = append(report.Loaded, c)
			}
			report.Failures = append(report.Failures, failures...)
			report.Stats = append(report.Stats, res.Stats...)
		}()
	}
	wg.Wait()

	slices.Sort(report.Loaded)
	sortFailures(report.Failures)
	l.logger.Info("snapshot loaded",
		"categories", len(report.Loaded),
		"failed_files", len(report.Failures),
		"events", l.store.Len(),
	)
	return report
}

// settle joins the files of category c and stores the result.
func (l *Loader) settle(c domain.Category, futures map[string]*future) (source.Result, []Failure) {
	start := l.clock.Now()
	defer l.settled.Add(1)
	defer func() {
		l.metrics.LoadDuration.WithLabelValues(c.Slug()).Observe(l.clock.Since(start).Seconds())
	}()

	specs := source.SpecsFor(c)
	tables := make([][]source.Row, len(specs))
	var failures []Failure
	for i, spec := range specs {
		rows, err := futures[spec.File].wait()
		if err != nil {
			failures = append(failures, Failure{Category: c, File: spec.File, Err: err})
			continue
		}
		tables[i] = rows
	}

	if len(failures) > 0 {
		files := make([]string, len(failures))
		for i, f := range failures {
			files[i] = f.File
		}
		l.store.MarkFailed(c, files...)
		l.logger.Error("category unavailable", "category", c.Slug(), "failed_files", files)
		return source.Result{Category: c}, failures
	}

	res := source.Normalize(c, tables, l.sourceOpts)
	for _, s := range res.Stats {
		l.metrics.RowsRead.WithLabelValues(s.File).Add(float64(s.Rows))
		l.metrics.RowsRejected.WithLabelValues(s.File).Add(float64(s.Rejected))
		if s.Rejected > 0 {
			l.logger.Debug("rows rejected", "file", s.File, "rejected", s.Rejected, "rows", s.Rows)
		}
	}
	l.store.Put(c, res.Events, res.Fit)
	l.metrics.EventsLoaded.WithLabelValues(c.Slug()).Set(float64(len(res.Events)))
	l.logger.Info("category loaded", "category", c.Slug(), "events", len(res.Events), "fit", res.Fit.String())

	l.onReady(c)
	return res, nil
}

// future is the pending result of one fetch.
type future struct {
	done chan struct{}
	rows []source.Row
	err  error
}

func (f *future) wait() ([]source.Row, error) {
	<-f.done
	return f.rows, f.err
}

func (l *Loader) fetch(ctx context.Context, spec source.Spec) *future {
	f := &future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.rows, f.err = l.fetcher.Fetch(ctx, spec.File)
		if f.err != nil {
			l.metrics.LoadFailures.WithLabelValues(spec.File).Inc()
			l.logger.Warn("fetch failed", "file", spec.File, "error", f.err)
		}
	}()
	return f
}

func sortFailures(fs []Failure) {
	order := make(map[string]int)
	for i, spec := range source.Specs() {
		order[spec.File] = i
	}
	slices.SortFunc(fs, func(a, b Failure) int {
		return order[a.File] - order[b.File]
	})
}
