package dataset

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rshade/feedprint/internal/logging"
)

// SourceBuiltin names the embedded dataset.
const SourceBuiltin = "builtin"

// DefaultFetchTimeout bounds a dataset download.
const DefaultFetchTimeout = 15 * time.Second

// Open loads a dataset from source: "" or "builtin" selects the embedded
// dataset, an http(s) URL is fetched, anything else is read as a file path.
func Open(ctx context.Context, source string, timeout time.Duration) (*Dataset, error) {
	logger := logging.FromContext(ctx)

	switch {
	case source == "" || source == SourceBuiltin:
		logger.Debug().Str("component", "dataset").Msg("using built-in dataset")
		return Default()
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return Fetch(ctx, source, timeout)
	default:
		return LoadFile(ctx, source)
	}
}

// LoadFile reads and validates a dataset file.
func LoadFile(ctx context.Context, path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading dataset %s: %w", path, err)
	}

	logging.FromContext(ctx).Debug().
		Str("component", "dataset").
		Str("path", path).
		Int("ingredients", len(ds.Ingredients)).
		Int("scenarios", len(ds.Scenarios)).
		Msg("dataset loaded from file")
	return ds, nil
}

// Fetch downloads and validates a dataset document over HTTP.
func Fetch(ctx context.Context, url string, timeout time.Duration) (*Dataset, error) {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/yaml, application/json;q=0.9, */*;q=0.5")

	resp, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching dataset %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching dataset %s: unexpected status %s", url, resp.Status())
	}

	ds, err := Parse(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("loading dataset %s: %w", url, err)
	}

	logging.FromContext(ctx).Info().
		Str("component", "dataset").
		Str("url", url).
		Dur("duration", resp.Time()).
		Int("ingredients", len(ds.Ingredients)).
		Msg("dataset fetched")
	return ds, nil
}
