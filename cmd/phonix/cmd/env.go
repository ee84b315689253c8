package cmd

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/f3rmion/phonix/internal/align"
	"github.com/f3rmion/phonix/internal/cache"
	"github.com/f3rmion/phonix/internal/config"
	"github.com/f3rmion/phonix/internal/corpus"
	"github.com/f3rmion/phonix/internal/observe"
)

// env is what every command needs: the resolved config, a logger and the
// dictionary builder with its cache.
type env struct {
	dir     string
	cfg     *config.Config
	logger  *slog.Logger
	store   *cache.Store
	builder *corpus.Builder
}

// loadEnv reads the config file, applies flag and env overrides and opens the
// dictionary cache. Log output goes to w.
func loadEnv(w io.Writer) (*env, error) {
	dir := getConfigDir()
	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if err != nil {
		return nil, err
	}

	if src := viper.GetString("corpus"); src != "" {
		cfg.Corpus.Source = src
	}
	if viper.GetBool("verbose") {
		cfg.Log.Level = "debug"
	}

	logger := config.NewLogger(cfg.Log, w)
	e := &env{dir: dir, cfg: cfg, logger: logger}

	opts := []corpus.Option{
		corpus.WithHTTPClient(&http.Client{Timeout: cfg.Corpus.Timeout}),
		corpus.WithMetrics(observe.Default()),
		corpus.WithLogger(logger),
	}
	if path, ok := cfg.CachePath(dir); ok {
		store, err := cache.Open(path)
		if err != nil {
			logger.Warn("dictionary cache disabled", "path", path, "error", err)
		} else {
			e.store = store
			opts = append(opts, corpus.WithStore(store))
		}
	}
	e.builder = corpus.NewBuilder(opts...)

	return e, nil
}

// loadDictionary builds the dictionary for the configured source. On failure
// it still returns an empty, usable dictionary.
func (e *env) loadDictionary(ctx context.Context) (*align.Dictionary, error) {
	return e.builder.Build(ctx, e.cfg.Corpus.Source)
}

// Close releases the cache.
func (e *env) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}
