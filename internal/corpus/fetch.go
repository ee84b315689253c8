// Package corpus acquires the alignment corpus and builds the dictionary from
// it once per source.
package corpus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/f3rmion/phonix/internal/align"
)

// DefaultSource is the CMUdict 0.7a SPHINX-40 letter/phoneme alignment.
const DefaultSource = "https://raw.githubusercontent.com/kastnerkyle/diphone_synthesizer/master/cmudict.0.7a_SPHINX_40.align"

// FetchError reports a failure to acquire or read a corpus. The build that
// hit it yields an empty dictionary.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching corpus %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsRemote reports whether source is fetched over HTTP.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Open returns a reader for source: an http(s) URL or a local file path.
func Open(ctx context.Context, client *http.Client, source string) (io.ReadCloser, error) {
	if !IsRemote(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("opening corpus file: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "phonix")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download failed: %s", resp.Status)
	}
	return resp.Body, nil
}

// Fetch reads source and parses it into a dictionary. Any failure is
// returned as a *FetchError.
func Fetch(ctx context.Context, client *http.Client, source string) (*align.Dictionary, align.ParseStats, error) {
	rc, err := Open(ctx, client, source)
	if err != nil {
		return nil, align.ParseStats{}, &FetchError{Source: source, Err: err}
	}
	defer rc.Close()

	dict, stats, err := align.Parse(rc)
	if err != nil {
		return nil, stats, &FetchError{Source: source, Err: err}
	}
	return dict, stats, nil
}
