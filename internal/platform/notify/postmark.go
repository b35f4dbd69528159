package notify

import (
	"context"
	"fmt"

	"github.com/mrz1836/postmark"
)

// PostmarkSender delivers transactional email through Postmark. It
// implements the email ports of the notifications and lawyers engines.
type PostmarkSender struct {
	client *postmark.Client
	from   string
}

func NewPostmarkSender(serverToken, accountToken, from string) (*PostmarkSender, error) {
	if serverToken == "" {
		return nil, fmt.Errorf("notify: postmark server token is required")
	}
	if from == "" {
		return nil, fmt.Errorf("notify: sender address is required")
	}
	return &PostmarkSender{
		client: postmark.NewClient(serverToken, accountToken),
		from:   from,
	}, nil
}

func (s *PostmarkSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:       s.from,
		To:         to,
		Subject:    subject,
		HTMLBody:   htmlBody,
		TrackOpens: true,
	})
	if err != nil {
		return fmt.Errorf("notify: postmark send: %w", err)
	}
	if resp.ErrorCode > 0 {
		return fmt.Errorf("notify: postmark error %d: %s", resp.ErrorCode, resp.Message)
	}
	return nil
}
