package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unifiwatch/stockwatch/internal/checker"
	"github.com/unifiwatch/stockwatch/internal/clock/system"
)

func TestResolveAppMissing(t *testing.T) {
	t.Parallel()

	_, err := resolveApp(context.Background())
	require.Error(t, err)
}

func TestBuildFetcherHTTPMode(t *testing.T) {
	t.Parallel()

	cfg := checker.Config{
		URL:             "https://store.example.com/products/cloud-gateway-fiber",
		ProductName:     "Cloud Gateway Fiber",
		SoldOutMarker:   "Sold Out",
		FetchMode:       checker.FetchModeHTTP,
		UserAgent:       "test-agent",
		PageLoadTimeout: 5 * time.Second,
	}

	fetcher, err := buildFetcher(cfg, system.New(), zap.NewNop())
	require.NoError(t, err)
	require.IsType(t, &checker.CollyFetcher{}, fetcher)
}
