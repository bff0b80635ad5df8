package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"aura-ledger/internal/core/domain"
	"aura-ledger/internal/core/ports"

	"github.com/rs/zerolog"
)

// Webhook request headers.
const (
	HeaderWebhookSignature = "X-Aura-Signature"
	HeaderWebhookTimestamp = "X-Aura-Timestamp"
)

// webhookRetryIntervals are the waits before each redelivery attempt.
var webhookRetryIntervals = []time.Duration{
	5 * time.Second,
	30 * time.Second,
	2 * time.Minute,
	5 * time.Minute,
	10 * time.Minute,
}

// WebhookPayload is the JSON body posted to the configured webhook URL.
type WebhookPayload struct {
	EventType string          `json:"event_type"`
	Data      FundsLockedData `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// FundsLockedData describes a draw in the webhook payload.
type FundsLockedData struct {
	ReceiptID     string `json:"receipt_id"`
	Merchant      string `json:"merchant"`
	Borrower      string `json:"borrower"`
	Amount        uint64 `json:"amount"`
	AmountDecimal string `json:"amount_decimal"`
	CreatedAt     int64  `json:"created_at"`
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebhookNotifier implements ports.EventPublisher by posting signed events
// to a single configured endpoint.
type WebhookNotifier struct {
	url            string
	secret         string
	sigSvc         ports.SignatureService
	httpClient     HTTPClient
	retryIntervals []time.Duration
	log            zerolog.Logger
	wg             sync.WaitGroup
	stop           chan struct{}
	stopOnce       sync.Once
}

// NewWebhookNotifier creates a notifier delivering to url, signing with secret.
func NewWebhookNotifier(url, secret string, sigSvc ports.SignatureService, httpClient HTTPClient, log zerolog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url:            url,
		secret:         secret,
		sigSvc:         sigSvc,
		httpClient:     httpClient,
		retryIntervals: webhookRetryIntervals,
		log:            log,
		stop:           make(chan struct{}),
	}
}

// PublishFundsLocked signs the event and delivers it asynchronously with retries.
func (n *WebhookNotifier) PublishFundsLocked(_ context.Context, event domain.FundsLocked) error {
	if n.url == "" {
		return nil
	}

	now := time.Now().Unix()
	payload := WebhookPayload{
		EventType: domain.EventFundsLocked,
		Data: FundsLockedData{
			ReceiptID:     event.ReceiptID.Hex(),
			Merchant:      event.Merchant.String(),
			Borrower:      event.Borrower.String(),
			Amount:        uint64(event.Amount),
			AmountDecimal: event.Amount.String(),
			CreatedAt:     event.CreatedAt.Unix(),
		},
		Timestamp: now,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}
	signature := n.sigSvc.Sign(n.secret, now, body)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.deliverWithRetries(body, now, signature, event.ReceiptID.Hex())
	}()
	return nil
}

// Wait blocks until every in-flight delivery has finished.
func (n *WebhookNotifier) Wait() {
	n.wg.Wait()
}

// Shutdown abandons pending retries and waits for in-flight deliveries
// until ctx is done.
func (n *WebhookNotifier) Shutdown(ctx context.Context) error {
	n.stopOnce.Do(func() { close(n.stop) })

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("webhook deliveries still running: %w", ctx.Err())
	}
}

// deliverWithRetries posts body until a 2xx response or the retries run out.
func (n *WebhookNotifier) deliverWithRetries(body []byte, timestamp int64, signature, receiptID string) {
	for attempt := 0; attempt <= len(n.retryIntervals); attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(n.retryIntervals[attempt-1])
			select {
			case <-timer.C:
			case <-n.stop:
				timer.Stop()
				n.log.Warn().Str("receipt_id", receiptID).Int("attempt", attempt+1).Msg("webhook: retry abandoned on shutdown")
				return
			}
		}

		req, err := http.NewRequest(http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			n.log.Error().Err(err).Str("receipt_id", receiptID).Msg("webhook: failed to create request")
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(HeaderWebhookTimestamp, fmt.Sprint(timestamp))
		req.Header.Set(HeaderWebhookSignature, signature)

		resp, err := n.httpClient.Do(req)
		if err != nil {
			n.log.Warn().Err(err).Str("receipt_id", receiptID).Int("attempt", attempt+1).Msg("webhook: delivery failed")
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			n.log.Info().Str("receipt_id", receiptID).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("webhook: delivered successfully")
			return
		}

		n.log.Warn().Str("receipt_id", receiptID).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("webhook: non-2xx response, retrying")
	}

	n.log.Error().Str("receipt_id", receiptID).Msg("webhook: all retry attempts exhausted")
}
