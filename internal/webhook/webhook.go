// Package webhook delivers submission payloads to the external
// workflow-automation endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/docuquest/docuquest/internal/domain"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Dispatcher sends a submission payload to the workflow endpoint.
//
// A dispatch is all-or-nothing: any non-2xx response or transport failure
// is a total failure of the submission. No retries are attempted here;
// the user resubmits from the still-populated form.
type Dispatcher interface {
	Dispatch(ctx context.Context, payload domain.SubmissionPayload) error
}

// =============================================================================
// HTTP Implementation
// =============================================================================

// HTTPDispatcher POSTs payloads as JSON to a fixed webhook URL.
type HTTPDispatcher struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewHTTPDispatcher creates a dispatcher for the given webhook URL.
// The URL is validated at config load; it is trusted here.
func NewHTTPDispatcher(url string, timeout time.Duration, logger *slog.Logger) *HTTPDispatcher {
	return &HTTPDispatcher{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Dispatch sends the payload. Returns a domain.EUNAVAILABLE error on any
// transport failure or non-2xx response.
func (d *HTTPDispatcher) Dispatch(ctx context.Context, payload domain.SubmissionPayload) error {
	const op = "webhook.dispatch"

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.Internal(err, op, "failed to encode payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return domain.Internal(err, op, "failed to build webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		d.logger.Error("webhook delivery failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return domain.Unavailable(err, op, "The workflow service could not be reached. Please try again.")
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		d.logger.Error("webhook rejected submission",
			"status", resp.StatusCode,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return domain.Unavailable(
			fmt.Errorf("webhook returned status %d", resp.StatusCode),
			op,
			"The workflow service rejected the submission. Please try again.",
		)
	}

	d.logger.Info("webhook delivered",
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return nil
}

var _ Dispatcher = (*HTTPDispatcher)(nil)
