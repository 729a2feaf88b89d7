package notifier

import (
	"bytes"
	"context"
	"log"
	"slices"
	"time"

	shoutrrr "github.com/nicholas-fedor/shoutrrr"
	router "github.com/nicholas-fedor/shoutrrr/pkg/router"
	stypes "github.com/nicholas-fedor/shoutrrr/pkg/types"
	"weatherhome.app/internal/ports"
	"weatherhome.app/pkg/errors"
)

// ShoutrrrDelivery pushes fired notifications to every configured shoutrrr URL.
// The logger:// service writes through the application logger.
type ShoutrrrDelivery struct {
	urls   []string
	sender *router.ServiceRouter
	logger ports.Logger
}

func NewShoutrrrDelivery(urls []string, timeout time.Duration, logger ports.Logger) (*ShoutrrrDelivery, error) {
	if len(urls) == 0 {
		return nil, errors.NewConfigurationError("at least one delivery URL is required", nil)
	}
	if logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}

	sender, err := shoutrrr.NewSender(log.New(&logWriter{logger: logger}, "", 0), urls...)
	if err != nil {
		return nil, errors.NewConfigurationError("invalid notification delivery URL", err)
	}
	if timeout > 0 {
		sender.Timeout = timeout
	}

	return &ShoutrrrDelivery{
		urls:   slices.Clone(urls),
		sender: sender,
		logger: logger,
	}, nil
}

func (d *ShoutrrrDelivery) Deliver(ctx context.Context, title, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := stypes.Params{}
	if title != "" {
		params.SetTitle(title)
	}

	for _, err := range d.sender.Send(message, &params) {
		if err != nil {
			return errors.NewNotificationError("failed to deliver notification", err)
		}
	}
	return nil
}

// Services returns the number of configured delivery targets
func (d *ShoutrrrDelivery) Services() int {
	return len(d.urls)
}

// logWriter forwards shoutrrr router output to the application logger
type logWriter struct {
	logger ports.Logger
}

func (w *logWriter) Write(p []byte) (int, error) {
	if msg := string(bytes.TrimSpace(p)); msg != "" {
		w.logger.Info("Notification delivery output", ports.F("output", msg))
	}
	return len(p), nil
}
