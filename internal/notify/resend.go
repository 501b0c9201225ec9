// Package notify implements the stale-donation reminder sweep and its
// outbound email delivery through the Resend HTTP API.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// EmailSender delivers one transactional email per call. Each call reports
// success or failure synchronously; there is no batching.
type EmailSender interface {
	Send(ctx context.Context, to, subject, html string) error
}

type resendPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// ResendClient sends email through the Resend REST API.
type ResendClient struct {
	apiKey  string
	from    string
	baseURL string
	client  *http.Client
}

// NewResendClient builds a client for the given API key and sender address.
// baseURL normally points at https://api.resend.com; tests override it.
func NewResendClient(apiKey, from, baseURL string) *ResendClient {
	return &ResendClient{
		apiKey:  apiKey,
		from:    from,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Send posts a single email. A non-2xx response is an error carrying the
// provider's response text verbatim.
func (c *ResendClient) Send(ctx context.Context, to, subject, html string) error {
	body, err := json.Marshal(resendPayload{From: c.from, To: to, Subject: subject, HTML: html})
	if err != nil {
		return fmt.Errorf("resend: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("resend: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("resend: status %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}

var _ EmailSender = (*ResendClient)(nil)
