package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"
)

const testSecret = "whsec_test"

func sign(t *testing.T, payload []byte, ts int64) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(testSecret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifySignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"customer.subscription.created"}`)
	now := time.Now()

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{name: "Valid", header: sign(t, payload, now.Unix()), wantErr: nil},
		{name: "Missing Header", header: "", wantErr: ErrMissingSignature},
		{name: "Garbage Header", header: "not-a-signature", wantErr: ErrMissingSignature},
		{name: "Wrong Signature", header: fmt.Sprintf("t=%d,v1=deadbeef", now.Unix()), wantErr: ErrInvalidSignature},
		{name: "Stale Timestamp", header: sign(t, payload, now.Add(-10*time.Minute).Unix()), wantErr: ErrStaleTimestamp},
		{name: "Future Timestamp", header: sign(t, payload, now.Add(10*time.Minute).Unix()), wantErr: ErrStaleTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifySignature(payload, tt.header, testSecret, now)
			if err != tt.wantErr {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestVerifySignature_TamperedPayload(t *testing.T) {
	now := time.Now()
	header := sign(t, []byte(`{"amount":100}`), now.Unix())

	err := VerifySignature([]byte(`{"amount":999}`), header, testSecret, now)
	if err != ErrInvalidSignature {
		t.Errorf("Expected signature mismatch, got %v", err)
	}
}

func TestParseEvent_SubscriptionEvent(t *testing.T) {
	payload := []byte(`{
		"id": "evt_1",
		"type": "customer.subscription.updated",
		"data": {"object": {
			"id": "sub_ext",
			"customer": "cus_123",
			"status": "active",
			"current_period_start": 1699000000,
			"current_period_end": 1701000000,
			"trial_end": null,
			"cancel_at_period_end": true,
			"metadata": {"organizationId": "org-1", "plan": "pro"},
			"items": {"data": [{"price": {"id": "price_pro"}}]}
		}}
	}`)

	event, err := ParseEvent(payload)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if event.Type != EventSubscriptionUpdated {
		t.Errorf("Unexpected type: %s", event.Type)
	}

	sub, err := event.SubscriptionEvent()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sub.ID != "sub_ext" || sub.Customer != "cus_123" || sub.PriceID != "price_pro" {
		t.Errorf("Unexpected subscription event: %+v", sub)
	}
	if !sub.CancelAtPeriodEnd || sub.TrialEnd != nil {
		t.Errorf("Flags not parsed: %+v", sub)
	}
	if sub.Metadata["organizationId"] != "org-1" {
		t.Errorf("Metadata not parsed: %v", sub.Metadata)
	}
}

func TestParseEvent_Malformed(t *testing.T) {
	if _, err := ParseEvent([]byte("{not json")); err == nil {
		t.Error("Expected parse error")
	}
}
