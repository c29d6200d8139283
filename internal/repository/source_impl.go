package repository

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/spf13/afero"
)

const (
	// DefaultFetchTimeout bounds a single remote fetch attempt.
	DefaultFetchTimeout = 30 * time.Second
	// DefaultFetchRetries is the number of retries for remote sources.
	DefaultFetchRetries = 3
	// DefaultFetchRetryDelay is the base delay for exponential backoff.
	DefaultFetchRetryDelay = 500 * time.Millisecond
	// maxSourceSize caps how much of a source is read.
	maxSourceSize = 16 << 20 // 16 MiB
)

// sourceRepository is the implementation of the SourceRepository interface.
type sourceRepository struct {
	fs      afero.Fs
	client  *http.Client
	retries uint64
}

// NewSourceRepository creates a new SourceRepository. retries is the number
// of additional attempts for remote sources; negative values fall back to
// the default.
func NewSourceRepository(fs afero.Fs, retries int) SourceRepository {
	if retries < 0 {
		retries = DefaultFetchRetries
	}
	return &sourceRepository{
		fs:      fs,
		client:  &http.Client{Timeout: DefaultFetchTimeout},
		retries: uint64(retries),
	}
}

// Read returns the content of the source. Paths are read through the
// filesystem abstraction; http(s) URLs are fetched with retries.
func (r *sourceRepository) Read(ctx context.Context, source string) (string, error) {
	if source == "" {
		return "", fmt.Errorf("source is empty")
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return r.fetch(ctx, source)
	}
	return r.readFile(source)
}

func (r *sourceRepository) readFile(path string) (string, error) {
	exists, err := afero.Exists(r.fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !exists {
		return "", fmt.Errorf("the file '%s' does not exist", path)
	}
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("the file '%s' does not exist", path)
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// fetch retrieves a remote source with exponential backoff. Server errors
// and transport failures are retried; client errors are not.
func (r *sourceRepository) fetch(ctx context.Context, url string) (string, error) {
	var body string
	backoff := retry.WithMaxRetries(r.retries, retry.NewExponential(DefaultFetchRetryDelay))
	err := retry.Do(ctx, backoff, func(retryCtx context.Context) error {
		req, reqErr := http.NewRequestWithContext(retryCtx, http.MethodGet, url, nil)
		if reqErr != nil {
			return reqErr
		}
		resp, doErr := r.client.Do(req)
		if doErr != nil {
			return retry.RetryableError(doErr)
		}
		defer resp.Body.Close()
		if resp.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("server returned %s", resp.Status))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("server returned %s", resp.Status)
		}
		data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxSourceSize))
		if readErr != nil {
			return retry.RetryableError(readErr)
		}
		body = string(data)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	return body, nil
}
