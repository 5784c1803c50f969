// Package keepalive periodically pings a URL so free-tier hosts do not put
// the service to sleep.
package keepalive

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Run pings url every interval until ctx is canceled. Errors are logged and
// ignored; an empty url disables the loop.
func Run(ctx context.Context, url string, interval time.Duration) {
	if url == "" {
		return
	}
	if interval <= 0 {
		interval = 14 * time.Minute
	}

	client := &http.Client{Timeout: 30 * time.Second}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				logrus.WithError(err).Warn("keepalive: build request failed")
				continue
			}
			resp, err := client.Do(req)
			if err != nil {
				logrus.WithError(err).Warn("keepalive: ping failed")
				continue
			}
			resp.Body.Close()
		}
	}
}
