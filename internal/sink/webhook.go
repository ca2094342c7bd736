package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxWebhookBackoff caps the delay between two attempts.
const maxWebhookBackoff = time.Minute

// Webhook posts each result as JSON to a remote endpoint, e.g. a spreadsheet
// ingestion script.
type Webhook struct {
	URL     string
	Retries int           // Extra attempts after the first
	Backoff time.Duration // Delay before the first retry; doubles up to a minute
	Client  *http.Client
}

// NewWebhook creates a webhook sink with the given request timeout.
func NewWebhook(url string, timeout time.Duration, retries int) *Webhook {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Webhook{
		URL:     url,
		Retries: retries,
		Backoff: time.Second,
		Client:  &http.Client{Timeout: timeout},
	}
}

// webhookPayload is the wire shape; the row mirrors the CSV layout.
type webhookPayload struct {
	Result
	Row []any `json:"row"`
}

// Append posts r, retrying with exponential backoff until ctx is done.
func (w *Webhook) Append(ctx context.Context, r Result) error {
	row := make([]any, 0, 2+len(r.Consumptions))
	row = append(row, r.Timestamp.Format(TimestampLayout), r.FinalPeriod)
	for _, v := range r.Consumptions {
		row = append(row, v)
	}

	body, err := json.Marshal(webhookPayload{Result: r, Row: row})
	if err != nil {
		return fmt.Errorf("sink: marshal payload: %w", err)
	}

	var lastErr error
	for i := 0; i <= w.Retries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("sink: webhook gave up after %d attempts: %w", i, ctx.Err())
			case <-time.After(w.delay(i)):
			}
		}

		if lastErr = w.post(ctx, body); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("sink: all %d webhook attempts failed: %w", w.Retries+1, lastErr)
}

// delay returns the wait before the given retry, starting at 1.
func (w *Webhook) delay(retry int) time.Duration {
	d := w.Backoff
	for i := 1; i < retry && d < maxWebhookBackoff; i++ {
		d *= 2
	}
	return min(d, maxWebhookBackoff)
}

func (w *Webhook) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
