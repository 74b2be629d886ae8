package checker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func collyTestConfig(url string) Config {
	return Config{
		URL:             url,
		ProductName:     "Cloud Gateway Fiber",
		SoldOutMarker:   "Sold Out",
		FetchMode:       FetchModeHTTP,
		UserAgent:       "test-agent",
		PageLoadTimeout: 5 * time.Second,
	}
}

func TestCollyFetcherExtractsText(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><h1>Cloud Gateway Fiber</h1><span>Sold Out</span></body></html>`))
	}))
	defer srv.Close()

	f, err := NewCollyFetcher(collyTestConfig(srv.URL), stubClock{t: time.Now().UTC()}, zap.NewNop())
	require.NoError(t, err)

	snap, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Contains(t, snap.Text, "Sold Out")
	require.Contains(t, snap.HTML, "<h1>Cloud Gateway Fiber</h1>")
	require.Nil(t, snap.Screenshot)
}

func TestCollyFetcherReturnsFetchError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f, err := NewCollyFetcher(collyTestConfig(srv.URL), stubClock{t: time.Now().UTC()}, zap.NewNop())
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, srv.URL, fetchErr.URL)
}

func TestForwardCancelPropagates(t *testing.T) {
	t.Parallel()

	parent, cancelParent := context.WithCancel(context.Background())
	child, cancelChild := context.WithCancel(context.Background())
	defer cancelChild()

	stop := forwardCancel(parent, cancelChild)
	defer stop()

	cancelParent()

	select {
	case <-child.Done():
	case <-time.After(time.Second):
		t.Fatal("expected child context to be canceled")
	}
}
