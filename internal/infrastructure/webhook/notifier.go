// Package webhook provides outgoing webhook notification delivery.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/felixgeelhaar/ricemill/pkg/domain/events"
)

// DeadLetterSink receives deliveries that exhausted their retries. The
// workspace repository satisfies it.
type DeadLetterSink interface {
	AppendDeadLetter(dl events.DeadLetter) error
}

// Notifier sends outgoing webhook notifications for ranking events.
type Notifier struct {
	endpoints  []events.WebhookEndpoint
	client     *http.Client
	deadLetter DeadLetterSink
	wg         sync.WaitGroup
}

// NewNotifier creates a notifier with the given endpoints and dead letter sink.
func NewNotifier(endpoints []events.WebhookEndpoint, deadLetter DeadLetterSink) *Notifier {
	return &Notifier{
		endpoints: endpoints,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		deadLetter: deadLetter,
	}
}

// Payload is the JSON body sent to webhook endpoints.
type Payload struct {
	EventType string                 `json:"event_type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Notify sends an event to all matching endpoints. Deliveries run in the
// background; a failing endpoint never fails the caller.
func (n *Notifier) Notify(eventType string, data map[string]interface{}) {
	payload := Payload{
		EventType: eventType,
		Timestamp: time.Now(),
		Data:      data,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	for _, ep := range n.endpoints {
		if !ep.Enabled || !ep.Matches(eventType) {
			continue
		}
		n.wg.Add(1)
		go func(ep events.WebhookEndpoint) {
			defer n.wg.Done()
			n.deliver(ep, eventType, body)
		}(ep)
	}
}

// Wait blocks until all in-flight deliveries have finished or dead-lettered.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) deliver(ep events.WebhookEndpoint, eventType string, body []byte) {
	maxRetries := ep.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	retryDelay := ep.RetryDelay
	if retryDelay <= 0 {
		retryDelay = time.Second
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := n.send(ep, body); err != nil {
			lastErr = err
			if attempt < maxRetries {
				time.Sleep(retryDelay * time.Duration(attempt)) // linear backoff
			}
			continue
		}
		return
	}

	if n.deadLetter != nil && lastErr != nil {
		dl := events.DeadLetter{
			Timestamp:   time.Now(),
			WebhookName: ep.Name,
			URL:         ep.URL,
			EventType:   eventType,
			Payload:     string(body),
			Error:       lastErr.Error(),
			Attempts:    maxRetries,
		}
		_ = n.deadLetter.AppendDeadLetter(dl)
	}
}

func (n *Notifier) send(ep events.WebhookEndpoint, body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Ricemill-Webhook/1.0")

	if ep.Secret != "" {
		req.Header.Set("X-Ricemill-Signature", sign(body, ep.Secret))
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}

// sign computes HMAC-SHA256 of the payload using the secret.
func sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}
