package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/brunolandim/back-jurix/internal/engine/billing"
)

const apiBase = "https://api.stripe.com/v1"

// StripeClient is a thin client over Stripe's REST API. It implements
// billing.PaymentProvider. Requests are form-encoded per Stripe's API and
// retried on transient failures.
type StripeClient struct {
	secretKey string
	http      *retryablehttp.Client
}

func NewStripeClient(secretKey string) *StripeClient {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil
	return &StripeClient{secretKey: secretKey, http: client}
}

type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *StripeClient) post(ctx context.Context, path string, form url.Values, out interface{}) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, apiBase+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var apiErr stripeError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("stripe: %s (%s)", apiErr.Error.Message, apiErr.Error.Type)
		}
		return fmt.Errorf("stripe: unexpected status %d", resp.StatusCode)
	}

	if out != nil {
		return json.Unmarshal(body, out)
	}
	return nil
}

func (c *StripeClient) CreateCustomer(ctx context.Context, organizationID, name, email string) (string, error) {
	form := url.Values{}
	form.Set("name", name)
	if email != "" {
		form.Set("email", email)
	}
	form.Set("metadata[organizationId]", organizationID)

	var customer struct {
		ID string `json:"id"`
	}
	if err := c.post(ctx, "/customers", form, &customer); err != nil {
		return "", err
	}
	return customer.ID, nil
}

func (c *StripeClient) CreateCheckoutSession(ctx context.Context, params billing.CheckoutParams) (string, error) {
	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("customer", params.CustomerID)
	form.Set("line_items[0][price]", params.PriceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	if params.TrialDays > 0 {
		form.Set("subscription_data[trial_period_days]", strconv.Itoa(params.TrialDays))
	}
	// The metadata rides on the subscription so the lifecycle webhooks can
	// map it back to the tenant.
	form.Set("subscription_data[metadata][organizationId]", params.OrganizationID)
	form.Set("subscription_data[metadata][plan]", params.Plan)

	var session struct {
		URL string `json:"url"`
	}
	if err := c.post(ctx, "/checkout/sessions", form, &session); err != nil {
		return "", err
	}
	return session.URL, nil
}

func (c *StripeClient) CreateBillingPortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	form := url.Values{}
	form.Set("customer", customerID)
	form.Set("return_url", returnURL)

	var session struct {
		URL string `json:"url"`
	}
	if err := c.post(ctx, "/billing_portal/sessions", form, &session); err != nil {
		return "", err
	}
	return session.URL, nil
}

func (c *StripeClient) UpdateSubscription(ctx context.Context, subscriptionID string, cancelAtPeriodEnd bool) error {
	form := url.Values{}
	form.Set("cancel_at_period_end", strconv.FormatBool(cancelAtPeriodEnd))
	return c.post(ctx, "/subscriptions/"+subscriptionID, form, nil)
}
