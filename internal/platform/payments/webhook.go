package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/brunolandim/back-jurix/internal/engine/billing"
)

// Webhook event types the reconciler cares about.
const (
	EventSubscriptionCreated = "customer.subscription.created"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
	EventTrialWillEnd        = "customer.subscription.trial_will_end"
)

// DefaultTolerance bounds the signed timestamp's age to blunt replayed
// deliveries.
const DefaultTolerance = 5 * time.Minute

var (
	ErrMissingSignature = errors.New("webhook: missing signature header")
	ErrInvalidSignature = errors.New("webhook: signature mismatch")
	ErrStaleTimestamp   = errors.New("webhook: timestamp outside tolerance")
)

// VerifySignature checks a Stripe-Signature header against the raw payload.
// The header carries `t=<unix>,v1=<hex hmac>` pairs; the signed message is
// the timestamp and payload joined with a dot.
func VerifySignature(payload []byte, header, secret string, now time.Time) error {
	if header == "" {
		return ErrMissingSignature
	}

	var timestamp string
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			timestamp = v
		case "v1":
			signatures = append(signatures, v)
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return ErrMissingSignature
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrMissingSignature
	}
	age := now.Unix() - ts
	if age < 0 {
		age = -age
	}
	if age > int64(DefaultTolerance.Seconds()) {
		return ErrStaleTimestamp
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}
	return ErrInvalidSignature
}

// Event is the outer webhook envelope.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// subscriptionObject mirrors the slice of Stripe's subscription object the
// reconciler consumes.
type subscriptionObject struct {
	ID                 string            `json:"id"`
	Customer           string            `json:"customer"`
	Status             string            `json:"status"`
	CurrentPeriodStart int64             `json:"current_period_start"`
	CurrentPeriodEnd   int64             `json:"current_period_end"`
	TrialEnd           *int64            `json:"trial_end"`
	CancelAtPeriodEnd  bool              `json:"cancel_at_period_end"`
	CanceledAt         *int64            `json:"canceled_at"`
	Metadata           map[string]string `json:"metadata"`
	Items              struct {
		Data []struct {
			Price struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

// ParseEvent decodes a webhook payload into the envelope.
func ParseEvent(payload []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("webhook: malformed payload: %w", err)
	}
	return &event, nil
}

// SubscriptionEvent extracts the subscription snapshot from a lifecycle
// event.
func (e *Event) SubscriptionEvent() (*billing.SubscriptionEvent, error) {
	var obj subscriptionObject
	if err := json.Unmarshal(e.Data.Object, &obj); err != nil {
		return nil, fmt.Errorf("webhook: malformed subscription object: %w", err)
	}

	priceID := ""
	if len(obj.Items.Data) > 0 {
		priceID = obj.Items.Data[0].Price.ID
	}

	return &billing.SubscriptionEvent{
		ID:                 obj.ID,
		Customer:           obj.Customer,
		Status:             obj.Status,
		PriceID:            priceID,
		CurrentPeriodStart: obj.CurrentPeriodStart,
		CurrentPeriodEnd:   obj.CurrentPeriodEnd,
		TrialEnd:           obj.TrialEnd,
		CancelAtPeriodEnd:  obj.CancelAtPeriodEnd,
		CanceledAt:         obj.CanceledAt,
		Metadata:           obj.Metadata,
	}, nil
}
