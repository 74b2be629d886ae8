package checker

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	v.Set("checker.url", "https://store.example.com/products/cloud-gateway-fiber")
	v.Set("checker.product_name", "Cloud Gateway Fiber")
	v.Set("checker.sold_out_marker", "Sold Out")
	v.Set("checker.fetch_mode", "headless")
	v.Set("checker.user_agent", "test-agent")
	v.Set("checker.page_load_timeout", "20s")
	v.Set("checker.settle_delay", "5s")
	v.Set("checker.jitter_min", "1s")
	v.Set("checker.jitter_max", "30s")
	v.Set("checker.status_path", "/tmp/status")
	v.Set("notify.pushover.token", "app-token")
	v.Set("notify.pushover.user_key", "user-key")
	return v
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	v := newTestViper()
	v.Set("checker.sold_out_selectors", []string{" .badge ", "", ".badge", "button[label=\"Sold Out\"]"})

	cfg, err := LoadConfig(v)
	require.NoError(t, err)

	require.Equal(t, "https://store.example.com/products/cloud-gateway-fiber", cfg.URL)
	require.Equal(t, "Cloud Gateway Fiber", cfg.ProductName)
	require.Equal(t, "Sold Out", cfg.SoldOutMarker)
	require.Equal(t, 20*time.Second, cfg.PageLoadTimeout)
	require.Equal(t, 5*time.Second, cfg.SettleDelay)
	require.Equal(t, time.Second, cfg.JitterMin)
	require.Equal(t, 30*time.Second, cfg.JitterMax)
	// Selectors are trimmed and de-duplicated.
	require.Equal(t, []string{".badge", `button[label="Sold Out"]`}, cfg.SoldOutSelectors)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(v *viper.Viper)
		wantErr string
	}{
		{
			name:    "missing url",
			mutate:  func(v *viper.Viper) { v.Set("checker.url", "") },
			wantErr: "checker.url",
		},
		{
			name:    "invalid url",
			mutate:  func(v *viper.Viper) { v.Set("checker.url", "not a url") },
			wantErr: "checker.url",
		},
		{
			name:    "missing product name",
			mutate:  func(v *viper.Viper) { v.Set("checker.product_name", "") },
			wantErr: "checker.product_name",
		},
		{
			name:    "missing marker",
			mutate:  func(v *viper.Viper) { v.Set("checker.sold_out_marker", "") },
			wantErr: "checker.sold_out_marker",
		},
		{
			name:    "unknown fetch mode",
			mutate:  func(v *viper.Viper) { v.Set("checker.fetch_mode", "carrier-pigeon") },
			wantErr: "checker.fetch_mode",
		},
		{
			name:    "jitter max below min",
			mutate:  func(v *viper.Viper) { v.Set("checker.jitter_max", "500ms") },
			wantErr: "checker.jitter_max",
		},
		{
			name:    "zero page load timeout",
			mutate:  func(v *viper.Viper) { v.Set("checker.page_load_timeout", "0s") },
			wantErr: "checker.page_load_timeout",
		},
		{
			name:    "missing status path",
			mutate:  func(v *viper.Viper) { v.Set("checker.status_path", "") },
			wantErr: "checker.status_path",
		},
		{
			name:    "missing pushover token",
			mutate:  func(v *viper.Viper) { v.Set("notify.pushover.token", "") },
			wantErr: "notify.pushover.token",
		},
		{
			name:    "missing pushover user key",
			mutate:  func(v *viper.Viper) { v.Set("notify.pushover.user_key", "") },
			wantErr: "notify.pushover.user_key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := newTestViper()
			tt.mutate(v)
			_, err := LoadConfig(v)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
