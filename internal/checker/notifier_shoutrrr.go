package checker

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/types"
	"go.uber.org/zap"
)

// ShoutrrrNotifier delivers messages through the Shoutrrr router. Only
// the Pushover service is assembled here, matching the configured
// token/user pair, but the transport itself is service-agnostic.
type ShoutrrrNotifier struct {
	serviceURL string
	logger     *zap.Logger
}

// NewShoutrrrNotifier builds a notifier for the configured Pushover
// credentials. The service URL is validated eagerly so credential
// mistakes surface at startup.
func NewShoutrrrNotifier(cfg Config, logger *zap.Logger) (*ShoutrrrNotifier, error) {
	serviceURL := pushoverURL(cfg)
	if _, err := shoutrrr.CreateSender(serviceURL); err != nil {
		return nil, fmt.Errorf("create notification sender: %w", err)
	}
	return &ShoutrrrNotifier{
		serviceURL: serviceURL,
		logger:     logger,
	}, nil
}

// Notify dispatches a single message. Transport failures come back as
// *TransportError; the caller decides what, if anything, to do about
// them. There are no in-run retries.
func (n *ShoutrrrNotifier) Notify(ctx context.Context, msg Notification) error {
	if err := ctx.Err(); err != nil {
		return &TransportError{Service: "pushover", Err: err}
	}

	sender, err := shoutrrr.CreateSender(n.serviceURL)
	if err != nil {
		return &TransportError{Service: "pushover", Err: err}
	}

	params := types.Params{
		"title":    msg.Title,
		"priority": strconv.Itoa(int(msg.Priority)),
	}
	for _, sendErr := range sender.Send(msg.Body, &params) {
		if sendErr != nil {
			return &TransportError{Service: "pushover", Err: sendErr}
		}
	}

	n.logger.Info("Notification dispatched",
		zap.String("title", msg.Title),
		zap.Int("priority", int(msg.Priority)),
	)
	return nil
}

func pushoverURL(cfg Config) string {
	u := url.URL{
		Scheme: "pushover",
		User:   url.UserPassword("shoutrrr", cfg.PushoverToken),
		Host:   cfg.PushoverUserKey,
		Path:   "/",
	}
	if cfg.PushoverDevice != "" {
		q := url.Values{}
		q.Set("devices", cfg.PushoverDevice)
		u.RawQuery = q.Encode()
	}
	return u.String()
}
