// loader.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// BackoffConfig controls exponential backoff behaviour.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// FetchConfig bundles the HTTP client and resilience settings for remote
// data sources.
type FetchConfig struct {
	Client  *http.Client
	Backoff BackoffConfig
	Breaker *gobreaker.CircuitBreaker
}

var (
	errRateLimited   = errors.New("rate limited")
	errServerError   = errors.New("server error")
	errUnexpected    = errors.New("unexpected status code")
	errCircuitOpen   = errors.New("circuit breaker open")
	errNoHTTPClient  = errors.New("http client not configured")
	errInvalidConfig = errors.New("invalid backoff configuration")
)

// newFetchConfig returns the settings used for remote GeoJSON sources.
func newFetchConfig(timeout time.Duration, retries int) FetchConfig {
	return FetchConfig{
		Client: &http.Client{Timeout: timeout},
		Backoff: BackoffConfig{
			MaxRetries:      retries,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		},
		Breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "geojson-source",
			MaxRequests: 1,
			Timeout:     time.Minute,
		}),
	}
}

func isRemoteSource(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// loadFeatureCollection reads and decodes the dataset from a file path or
// an http(s) URL. Every failure wraps ErrDataLoad.
func loadFeatureCollection(ctx context.Context, source string, cfg FetchConfig) (*FeatureCollection, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: no data source given", ErrDataLoad)
	}

	var (
		data []byte
		err  error
	)
	if isRemoteSource(source) {
		log.Printf("Fetching data from: %s", source)
		data, err = fetchRemote(ctx, source, cfg)
	} else {
		log.Printf("Reading data file: %s", source)
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataLoad, source, err)
	}

	log.Println("Parsing GeoJSON...")
	fc, err := parseFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataLoad, source, err)
	}
	log.Printf("Loaded %d feature(s).", len(fc.Features))
	return fc, nil
}

func fetchRemote(ctx context.Context, source string, cfg FetchConfig) ([]byte, error) {
	buildRequest := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/geo+json, application/json")
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, cfg, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// doRequestWithResilience executes the HTTP request with retries, exponential backoff,
// and a circuit breaker.
func doRequestWithResilience(
	ctx context.Context,
	cfg FetchConfig,
	buildRequest func() (*http.Request, error),
) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}
	if cfg.Backoff.MaxRetries < 0 || cfg.Backoff.InitialInterval <= 0 {
		return nil, errInvalidConfig
	}
	cb := cfg.Breaker
	if cb == nil {
		cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{Name: "geojson-source"})
	}

	var attempt int
	var lastErr error

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := buildRequest()
		if err != nil {
			return nil, err
		}

		// Ensure the request obeys context cancellation.
		req = req.WithContext(ctx)

		result, err := cb.Execute(func() (interface{}, error) {
			resp, execErr := cfg.Client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			// Handle rate limiting and server errors explicitly.
			if resp.StatusCode == http.StatusTooManyRequests {
				resp.Body.Close()
				return nil, errRateLimited
			}
			if resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, errServerError
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
			}

			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return resp, nil
		}

		// If circuit is open, propagate immediately.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		// Client errors will not improve on retry.
		if errors.Is(err, errUnexpected) {
			return nil, err
		}

		lastErr = err
		if attempt >= cfg.Backoff.MaxRetries {
			return nil, lastErr
		}

		delay := cfg.Backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if delay > cfg.Backoff.MaxInterval && cfg.Backoff.MaxInterval > 0 {
			delay = cfg.Backoff.MaxInterval
		}
		log.Printf("Warning: fetch attempt %d failed (%v), retrying in %s", attempt+1, err, delay)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}
