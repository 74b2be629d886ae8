package checker

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Fetch modes understood by the engine builder.
const (
	FetchModeHeadless = "headless"
	FetchModeHTTP     = "http"
)

// Config captures every knob that influences one check run. All values
// originate from Viper so the checker can be configured via file, env
// vars, or CLI flags. The struct is fully populated and validated
// before any component runs; there is no partial fallback to defaults
// for required fields.
type Config struct {
	URL              string
	ProductName      string
	SoldOutMarker    string
	SoldOutSelectors []string

	FetchMode       string
	UserAgent       string
	PageLoadTimeout time.Duration
	SettleDelay     time.Duration

	JitterMin time.Duration
	JitterMax time.Duration

	StatusPath string

	PushoverToken   string
	PushoverUserKey string
	PushoverDevice  string
}

// LoadConfig constructs a Config by reading from Viper.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		URL:              v.GetString("checker.url"),
		ProductName:      v.GetString("checker.product_name"),
		SoldOutMarker:    v.GetString("checker.sold_out_marker"),
		SoldOutSelectors: normalizeSelectors(v.GetStringSlice("checker.sold_out_selectors")),
		FetchMode:        v.GetString("checker.fetch_mode"),
		UserAgent:        v.GetString("checker.user_agent"),
		PageLoadTimeout:  v.GetDuration("checker.page_load_timeout"),
		SettleDelay:      v.GetDuration("checker.settle_delay"),
		JitterMin:        v.GetDuration("checker.jitter_min"),
		JitterMax:        v.GetDuration("checker.jitter_max"),
		StatusPath:       v.GetString("checker.status_path"),
		PushoverToken:    v.GetString("notify.pushover.token"),
		PushoverUserKey:  v.GetString("notify.pushover.user_key"),
		PushoverDevice:   v.GetString("notify.pushover.device"),
	}
	return cfg, cfg.Validate()
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("checker.url must be set")
	}
	if _, err := url.ParseRequestURI(c.URL); err != nil {
		return fmt.Errorf("checker.url is not a valid URL: %w", err)
	}
	if c.ProductName == "" {
		return fmt.Errorf("checker.product_name must be set")
	}
	if c.SoldOutMarker == "" {
		return fmt.Errorf("checker.sold_out_marker must be set")
	}
	if c.FetchMode != FetchModeHeadless && c.FetchMode != FetchModeHTTP {
		return fmt.Errorf("checker.fetch_mode must be %q or %q", FetchModeHeadless, FetchModeHTTP)
	}
	if c.UserAgent == "" {
		return fmt.Errorf("checker.user_agent must be set")
	}
	if c.PageLoadTimeout <= 0 {
		return fmt.Errorf("checker.page_load_timeout must be > 0")
	}
	if c.SettleDelay < 0 {
		return fmt.Errorf("checker.settle_delay must be >= 0")
	}
	if c.JitterMin < 0 {
		return fmt.Errorf("checker.jitter_min must be >= 0")
	}
	if c.JitterMax < c.JitterMin {
		return fmt.Errorf("checker.jitter_max must be >= checker.jitter_min")
	}
	if c.StatusPath == "" {
		return fmt.Errorf("checker.status_path must be set")
	}
	if c.PushoverToken == "" {
		return fmt.Errorf("notify.pushover.token must be set")
	}
	if c.PushoverUserKey == "" {
		return fmt.Errorf("notify.pushover.user_key must be set")
	}
	return nil
}

func normalizeSelectors(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{})
	for _, sel := range in {
		sel = strings.TrimSpace(sel)
		if sel == "" {
			continue
		}
		if _, ok := seen[sel]; ok {
			continue
		}
		seen[sel] = struct{}{}
		out = append(out, sel)
	}
	return out
}
