package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichaelStober/EventViewer/internal/common"
)

func TestFetchAll(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/eins":
			gotUserAgent = r.Header.Get("User-Agent")
			fmt.Fprint(w, "<html><head><title>Seite eins</title></head><body>Eintritt frei</body></html>")
		case "/zwei":
			fmt.Fprint(w, "<html><head><title>Seite zwei</title></head><body>Tickets 20€</body></html>")
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	fetcher := NewFetcher(common.ScrapeConfig{UserAgent: "EventViewer-Test"}, nil)
	signals := fetcher.FetchAll(context.Background(), []string{
		server.URL + "/eins",
		server.URL + "/zwei",
		server.URL + "/fehlt",   // 404, dropped
		"nicht-mal-eine-url",    // malformed, filtered before any request
		"ftp://example.de/egal", // wrong scheme
	})

	require.Len(t, signals, 2)
	titles := []string{signals[0].Title, signals[1].Title}
	sort.Strings(titles)
	assert.Equal(t, []string{"Seite eins", "Seite zwei"}, titles)
	assert.Equal(t, "EventViewer-Test", gotUserAgent)
}

func TestFetchAll_AllFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "weg", http.StatusGone)
	}))
	defer server.Close()

	fetcher := NewFetcher(common.ScrapeConfig{}, nil)
	assert.Empty(t, fetcher.FetchAll(context.Background(), []string{server.URL + "/a", "kaputt"}))
	assert.Empty(t, fetcher.FetchAll(context.Background(), nil))
}

func TestFetchAll_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := NewFetcher(common.ScrapeConfig{}, nil)
	assert.Empty(t, fetcher.FetchAll(ctx, []string{server.URL + "/langsam"}))
}

func TestIsFetchable(t *testing.T) {
	assert.True(t, isFetchable("https://example.de/events"))
	assert.True(t, isFetchable("http://tickets.example.com"))
	assert.False(t, isFetchable("ftp://example.de"))
	assert.False(t, isFetchable("https://localhost/ohne-punkt"))
	assert.False(t, isFetchable("kein schema"))
	assert.False(t, isFetchable(""))
}
