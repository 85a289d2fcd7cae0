package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPRelay posts envelopes to the socket server. Chat messages go to
// /send-message, every other event to /payment.
type HTTPRelay struct {
	baseURL string
	client  *http.Client
}

func NewHTTPRelay(baseURL string, timeout time.Duration) *HTTPRelay {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPRelay{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (r *HTTPRelay) Notify(ctx context.Context, event Event, payload any) error {
	body, err := json.Marshal(Envelope{Event: event, Data: payload, SentAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("relay: marshal %s: %w", event, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+pathFor(event), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("relay: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("relay: post %s: %w", event, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("relay: post %s: status %d", event, resp.StatusCode)
	}
	return nil
}

func (r *HTTPRelay) Close() error {
	r.client.CloseIdleConnections()
	return nil
}

func pathFor(event Event) string {
	if event == EventSendMessage {
		return "/send-message"
	}
	return "/payment"
}
