// internal/services/payments_client.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"adpulse/internal/interfaces"
)

// PaymentsClient funds campaign budgets through the payments provider.
// Requests use the provider's form-encoded API surface.
type PaymentsClient struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewPaymentsClient(baseURL, secretKey string, timeout time.Duration) *PaymentsClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &PaymentsClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *PaymentsClient) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		c.httpClient = hc
	}
}

// PaymentIntent is the subset of the provider's payment intent object the
// dashboard surfaces to the client.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// CreatePaymentIntent creates a payment intent for the given amount. The
// amount is in the currency's major unit and converted to the provider's
// minor unit on the wire.
func (c *PaymentsClient) CreatePaymentIntent(ctx context.Context, amount float64, currency, campaignID string) (*PaymentIntent, error) {
	if strings.TrimSpace(c.secretKey) == "" {
		return nil, &interfaces.ExternalServiceError{
			Service: "payments", Op: "create payment intent",
			Err: errors.New("secret key is not configured"),
		}
	}
	if amount <= 0 {
		return nil, &interfaces.ValidationError{Field: "amount", Message: "must be greater than zero"}
	}
	if currency == "" {
		currency = "usd"
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(int64(amount*100), 10))
	form.Set("currency", strings.ToLower(currency))
	form.Set("metadata[campaign_id]", campaignID)
	form.Set("automatic_payment_methods[enabled]", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &interfaces.ExternalServiceError{Service: "payments", Op: "create payment intent", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &interfaces.ExternalServiceError{Service: "payments", Op: "create payment intent", Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &interfaces.ExternalServiceError{
			Service: "payments", Op: "create payment intent",
			Err: fmt.Errorf("status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var intent PaymentIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, &interfaces.ExternalServiceError{
			Service: "payments", Op: "create payment intent",
			Err: fmt.Errorf("invalid json: %w", err),
		}
	}
	return &intent, nil
}
