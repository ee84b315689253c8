package corpus

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/f3rmion/phonix/internal/align"
	"github.com/f3rmion/phonix/internal/observe"
)

// Store persists parsed dictionaries between runs.
type Store interface {
	Load(ctx context.Context, source string) (*align.Dictionary, bool, error)
	Save(ctx context.Context, source string, dict *align.Dictionary) error
}

// Builder builds the dictionary for a source at most once per process.
// Concurrent callers for the same source share one build.
type Builder struct {
	client  *http.Client
	store   Store
	metrics *observe.Metrics
	logger  *slog.Logger

	group singleflight.Group

	mu    sync.Mutex
	built map[string]*align.Dictionary
}

// Option configures a Builder.
type Option func(*Builder)

// WithHTTPClient sets the client used for remote sources.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Builder) {
		b.client = c
	}
}

// WithStore enables the on-disk cache.
func WithStore(s Store) Option {
	return func(b *Builder) {
		b.store = s
	}
}

// WithMetrics records build metrics on m.
func WithMetrics(m *observe.Metrics) Option {
	return func(b *Builder) {
		b.metrics = m
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = l
	}
}

// NewBuilder returns a Builder with no store and a 60s HTTP timeout.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		client:  &http.Client{Timeout: 60 * time.Second},
		metrics: observe.Default(),
		logger:  slog.Default(),
		built:   make(map[string]*align.Dictionary),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Build returns the dictionary for source, building it on first use.
//
// When the corpus cannot be fetched or read, Build returns an empty
// dictionary together with a *FetchError. Failed builds are not remembered,
// so the next call tries again.
//
// The shared build is detached from ctx: cancelling ctx makes this caller
// return early with a *FetchError wrapping ctx.Err(), while the build keeps
// running for the callers that joined it. The HTTP client timeout bounds it.
func (b *Builder) Build(ctx context.Context, source string) (*align.Dictionary, error) {
	if d := b.cached(source); d != nil {
		return d, nil
	}

	buildCtx := context.WithoutCancel(ctx)
	ch := b.group.DoChan(source, func() (any, error) {
		if d := b.cached(source); d != nil {
			return d, nil
		}
		d, err := b.build(buildCtx, source)
		if err != nil {
			return nil, err
		}
		b.mu.Lock()
		b.built[source] = d
		b.mu.Unlock()
		return d, nil
	})

	select {
	case <-ctx.Done():
		return align.NewDictionary(), &FetchError{Source: source, Err: ctx.Err()}
	case res := <-ch:
		if res.Shared {
			b.logger.Debug("joined in-flight corpus build", "source", source)
		}
		if res.Err != nil {
			return align.NewDictionary(), res.Err
		}
		return res.Val.(*align.Dictionary), nil
	}
}

// Invalidate forgets the dictionary built for source.
func (b *Builder) Invalidate(source string) {
	b.mu.Lock()
	delete(b.built, source)
	b.mu.Unlock()
	b.group.Forget(source)
}

func (b *Builder) cached(source string) *align.Dictionary {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.built[source]
}

func (b *Builder) build(ctx context.Context, source string) (*align.Dictionary, error) {
	start := time.Now()

	if b.store != nil {
		d, ok, err := b.store.Load(ctx, source)
		switch {
		case err != nil:
			b.logger.Warn("reading dictionary cache", "source", source, "error", err)
		case ok:
			b.logger.Info("dictionary loaded from cache", "source", source, "entries", d.Len())
			b.metrics.RecordBuild(ctx, time.Since(start), d.Len(), observe.StatusCache)
			return d, nil
		}
	}

	b.logger.Info("fetching corpus", "source", source)
	d, stats, err := Fetch(ctx, b.client, source)
	if err != nil {
		b.logger.Error("building dictionary", "source", source, "error", err)
		b.metrics.RecordBuild(ctx, time.Since(start), 0, observe.StatusError)
		var fe *FetchError
		if !errors.As(err, &fe) {
			err = &FetchError{Source: source, Err: err}
		}
		return nil, err
	}
	b.logger.Info("dictionary built",
		"source", source,
		"entries", d.Len(),
		"lines", stats.Lines,
		"duplicates", stats.Duplicates,
		"skipped", stats.Skipped,
		"elapsed", time.Since(start),
	)
	b.metrics.RecordBuild(ctx, time.Since(start), d.Len(), observe.StatusOK)

	if b.store != nil {
		if err := b.store.Save(ctx, source, d); err != nil {
			b.logger.Warn("writing dictionary cache", "source", source, "error", err)
		}
	}
	return d, nil
}
