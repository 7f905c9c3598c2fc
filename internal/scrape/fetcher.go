package scrape

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/MichaelStober/EventViewer/internal/common"
)

// Fetcher retrieves candidate URLs with a bounded concurrency limit. Failures
// are per-page: a URL that errors or answers non-2xx is dropped and logged,
// never surfaced.
type Fetcher struct {
	timeout       time.Duration
	maxConcurrent int64
	userAgent     string
	logger        *slog.Logger
}

func NewFetcher(cfg common.ScrapeConfig, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxConcurrent := int64(cfg.MaxConcurrent)
	if maxConcurrent < 1 {
		maxConcurrent = 5
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	}
	return &Fetcher{
		timeout:       timeout,
		maxConcurrent: maxConcurrent,
		userAgent:     userAgent,
		logger:        logger,
	}
}

// FetchAll fetches every well-formed URL concurrently and returns the signals
// of the pages that responded successfully. Result order is not guaranteed.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []*PageSignal {
	valid := make([]string, 0, len(urls))
	for _, u := range urls {
		if isFetchable(u) {
			valid = append(valid, u)
		} else {
			f.logger.Warn("scrape.fetch.skip", "url", u, "reason", "malformed url")
		}
	}
	if len(valid) == 0 {
		return nil
	}

	// The client and its connection pool live exactly as long as this call.
	client := &http.Client{Timeout: f.timeout}
	sem := semaphore.NewWeighted(f.maxConcurrent)

	var (
		mu      sync.Mutex
		signals []*PageSignal
		wg      sync.WaitGroup
	)
	for _, pageURL := range valid {
		wg.Add(1)
		go func(pageURL string) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				f.logger.Warn("scrape.fetch.canceled", "url", pageURL, "error", err)
				return
			}
			defer sem.Release(1)

			signal := f.fetchOne(ctx, client, pageURL)
			if signal == nil {
				return
			}
			mu.Lock()
			signals = append(signals, signal)
			mu.Unlock()
		}(pageURL)
	}
	wg.Wait()

	f.logger.Info("scrape.fetch.done", "requested", len(valid), "succeeded", len(signals))
	return signals
}

func (f *Fetcher) fetchOne(ctx context.Context, client *http.Client, pageURL string) *PageSignal {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		f.logger.Warn("scrape.fetch.build_request_error", "url", pageURL, "error", err)
		return nil
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := client.Do(req)
	if err != nil {
		f.logger.Warn("scrape.fetch.error", "url", pageURL, "error", err)
		return nil
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			f.logger.Warn("scrape.fetch.body_close_error", "url", pageURL, "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		f.logger.Warn("scrape.fetch.bad_status", "url", pageURL, "status", resp.StatusCode)
		return nil
	}

	signal, err := ExtractSignals(pageURL, resp.Body)
	if err != nil {
		f.logger.Warn("scrape.fetch.parse_error", "url", pageURL, "error", err)
		return nil
	}

	f.logger.Info("scrape.fetch.ok",
		"url", pageURL,
		"title", signal.Title,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return signal
}

func isFetchable(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" && strings.Contains(u.Host, ".")
}
