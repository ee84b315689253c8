package corpus_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/f3rmion/phonix/internal/align"
	"github.com/f3rmion/phonix/internal/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	timeout = 5 * time.Second
	tick    = 10 * time.Millisecond
)

const sample = `read R IY1 _ D
read(2) R EH1 _ D
book B UH1 _ K
`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// corpusServer serves sample and counts requests. release, when non-nil,
// holds every response until it is closed.
func corpusServer(t *testing.T, release chan struct{}) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		if release != nil {
			<-release
		}
		_, _ = io.WriteString(w, sample)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

type memStore struct {
	mu    sync.Mutex
	dicts map[string]*align.Dictionary
	saves int
}

func newMemStore() *memStore {
	return &memStore{dicts: make(map[string]*align.Dictionary)}
}

func (s *memStore) Load(_ context.Context, source string) (*align.Dictionary, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.dicts[source]
	return d, ok, nil
}

func (s *memStore) Save(_ context.Context, source string, d *align.Dictionary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dicts[source] = d
	s.saves++
	return nil
}

func TestBuild_Remote(t *testing.T) {
	t.Parallel()

	srv, hits := corpusServer(t, nil)
	b := corpus.NewBuilder(corpus.WithHTTPClient(srv.Client()), corpus.WithLogger(quietLogger()))

	d, err := b.Build(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())

	a, ok := d.Lookup("read")
	require.True(t, ok)
	assert.Equal(t, "r/R e/IY1 a/_ d/D", a.String(), "first variant wins")

	again, err := b.Build(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Same(t, d, again)
	assert.Equal(t, int32(1), hits.Load())
}

func TestBuild_ConcurrentCallersShareOneFetch(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv, hits := corpusServer(t, release)
	b := corpus.NewBuilder(corpus.WithHTTPClient(srv.Client()), corpus.WithLogger(quietLogger()))

	const callers = 8
	results := make([]*align.Dictionary, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := b.Build(context.Background(), srv.URL)
			assert.NoError(t, err)
			results[i] = d
		}()
	}

	require.Eventually(t, func() bool { return hits.Load() == 1 }, timeout, tick)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
	for _, d := range results {
		assert.Same(t, results[0], d)
	}
}

func TestBuild_CancelledCallerDoesNotAbortSharedBuild(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv, hits := corpusServer(t, release)
	b := corpus.NewBuilder(corpus.WithHTTPClient(srv.Client()), corpus.WithLogger(quietLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := b.Build(ctx, srv.URL)
		first <- err
	}()
	require.Eventually(t, func() bool { return hits.Load() == 1 }, timeout, tick)

	second := make(chan *align.Dictionary, 1)
	go func() {
		d, err := b.Build(context.Background(), srv.URL)
		assert.NoError(t, err)
		second <- d
	}()

	cancel()
	select {
	case err := <-first:
		var fe *corpus.FetchError
		require.ErrorAs(t, err, &fe)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(timeout):
		t.Fatal("cancelled caller did not return")
	}

	close(release)
	select {
	case d := <-second:
		require.NotNil(t, d)
		assert.Equal(t, 2, d.Len())
	case <-time.After(timeout):
		t.Fatal("live caller did not return")
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestBuild_InvalidUTF8(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "book B UH1 _ K\nb\xffd B _ D\n")
	}))
	t.Cleanup(srv.Close)

	b := corpus.NewBuilder(corpus.WithHTTPClient(srv.Client()), corpus.WithLogger(quietLogger()))
	d, err := b.Build(context.Background(), srv.URL)

	var fe *corpus.FetchError
	require.ErrorAs(t, err, &fe)
	assert.ErrorIs(t, err, align.ErrInvalidUTF8)
	require.NotNil(t, d)
	assert.Equal(t, 0, d.Len())
}

func TestBuild_FailureYieldsEmptyDictionary(t *testing.T) {
	t.Parallel()

	var fail atomic.Bool
	fail.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if fail.Load() {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, sample)
	}))
	t.Cleanup(srv.Close)

	b := corpus.NewBuilder(corpus.WithHTTPClient(srv.Client()), corpus.WithLogger(quietLogger()))

	d, err := b.Build(context.Background(), srv.URL)
	require.Error(t, err)
	var fe *corpus.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, srv.URL, fe.Source)
	require.NotNil(t, d)
	assert.Equal(t, 0, d.Len())

	fail.Store(false)
	d, err = b.Build(context.Background(), srv.URL)
	require.NoError(t, err, "failures are retried")
	assert.Equal(t, 2, d.Len())
}

func TestBuild_StoreHitSkipsFetch(t *testing.T) {
	t.Parallel()

	srv, hits := corpusServer(t, nil)
	store := newMemStore()
	store.dicts[srv.URL] = align.ParseString("cat K AE1 T\n")

	b := corpus.NewBuilder(
		corpus.WithHTTPClient(srv.Client()),
		corpus.WithStore(store),
		corpus.WithLogger(quietLogger()),
	)

	d, err := b.Build(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat"}, d.Words())
	assert.Equal(t, int32(0), hits.Load())
	assert.Equal(t, 0, store.saves)
}

func TestBuild_SavesToStore(t *testing.T) {
	t.Parallel()

	srv, _ := corpusServer(t, nil)
	store := newMemStore()
	b := corpus.NewBuilder(
		corpus.WithHTTPClient(srv.Client()),
		corpus.WithStore(store),
		corpus.WithLogger(quietLogger()),
	)

	_, err := b.Build(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, 2, store.dicts[srv.URL].Len())
}

func TestBuild_Invalidate(t *testing.T) {
	t.Parallel()

	srv, hits := corpusServer(t, nil)
	b := corpus.NewBuilder(corpus.WithHTTPClient(srv.Client()), corpus.WithLogger(quietLogger()))

	_, err := b.Build(context.Background(), srv.URL)
	require.NoError(t, err)
	b.Invalidate(srv.URL)
	_, err = b.Build(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestBuild_LocalFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sample.align")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	b := corpus.NewBuilder(corpus.WithLogger(quietLogger()))
	d, err := b.Build(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"book", "read"}, d.Words())
}

func TestBuild_MissingFile(t *testing.T) {
	t.Parallel()

	b := corpus.NewBuilder(corpus.WithLogger(quietLogger()))
	d, err := b.Build(context.Background(), filepath.Join(t.TempDir(), "nope.align"))

	var fe *corpus.FetchError
	require.ErrorAs(t, err, &fe)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, 0, d.Len())
}

func TestIsRemote(t *testing.T) {
	t.Parallel()

	assert.True(t, corpus.IsRemote(corpus.DefaultSource))
	assert.True(t, corpus.IsRemote("http://example.com/a.align"))
	assert.False(t, corpus.IsRemote("/tmp/a.align"))
	assert.False(t, corpus.IsRemote("cmudict.align"))
}
