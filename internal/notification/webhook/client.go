// Package webhook delivers notification events to an external HTTP endpoint.
// The worker uses it to hand consumed Kafka events to a push/SMS gateway.
package webhook

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
)

// Deliver POSTs the raw notification JSON (the Kafka message value) to url.
// Returns an error if the request fails or the endpoint answers non-2xx.
func Deliver(ctx context.Context, client *http.Client, url string, rawJSON []byte) error {
	if url == "" {
		return fmt.Errorf("webhook: URL is empty")
	}
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(rawJSON))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: deliver: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook: endpoint returned %d", resp.StatusCode)
	}
	return nil
}
