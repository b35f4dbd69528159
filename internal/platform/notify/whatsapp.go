package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
)

const graphAPIBase = "https://graph.facebook.com/v21.0"

// WhatsAppSender delivers the case-notification template through the
// WhatsApp Cloud API.
type WhatsAppSender struct {
	phoneNumberID string
	accessToken   string
	http          *retryablehttp.Client
}

func NewWhatsAppSender(phoneNumberID, accessToken string) *WhatsAppSender {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.Logger = nil
	return &WhatsAppSender{
		phoneNumberID: phoneNumberID,
		accessToken:   accessToken,
		http:          client,
	}
}

// Configured reports whether the Cloud API credentials are present. An
// unconfigured sender is skipped rather than failing sends.
func (s *WhatsAppSender) Configured() bool {
	return s.phoneNumberID != "" && s.accessToken != ""
}

type templateParam struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type templateMessage struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Template         struct {
		Name     string `json:"name"`
		Language struct {
			Code string `json:"code"`
		} `json:"language"`
		Components []struct {
			Type       string          `json:"type"`
			Parameters []templateParam `json:"parameters"`
		} `json:"components"`
	} `json:"template"`
}

func (s *WhatsAppSender) SendCaseNotification(ctx context.Context, phone, typeLabel, caseInfo, message string) error {
	if !s.Configured() {
		return fmt.Errorf("notify: whatsapp not configured")
	}

	if message == "" {
		message = "-"
	}

	msg := templateMessage{MessagingProduct: "whatsapp", To: phone, Type: "template"}
	msg.Template.Name = "case_notification"
	msg.Template.Language.Code = "pt_BR"
	msg.Template.Components = []struct {
		Type       string          `json:"type"`
		Parameters []templateParam `json:"parameters"`
	}{{
		Type: "body",
		Parameters: []templateParam{
			{Type: "text", Text: typeLabel},
			{Type: "text", Text: caseInfo},
			{Type: "text", Text: message},
		},
	}}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", graphAPIBase, s.phoneNumberID)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("notify: whatsapp send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("notify: whatsapp api error %d: %s", resp.StatusCode, body)
	}
	return nil
}
