package payment

import (
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Intent is the slice of a provider payment intent this layer cares about.
// ClientSecret is opaque and handed to the frontend as-is.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// Client wraps the Stripe SDK for payment-intent creation and update.
// There is no retry or reconciliation here; provider errors propagate
// unchanged to the caller.
type Client struct {
	api             *client.API
	defaultCurrency string
}

func NewClient(secretKey, defaultCurrency string) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Client{api: api, defaultCurrency: defaultCurrency}
}

// CreateIntent creates a payment intent for amount in the smallest currency
// unit. Fractional amounts are truncated by the caller before reaching here.
func (c *Client) CreateIntent(amount int64, currency string, metadata map[string]string) (*Intent, error) {
	if currency == "" {
		currency = c.defaultCurrency
	}
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}
	return intentFrom(pi), nil
}

// UpdateIntent updates an existing intent's amount and metadata.
func (c *Client) UpdateIntent(id string, amount int64, metadata map[string]string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount: stripe.Int64(amount),
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}
	pi, err := c.api.PaymentIntents.Update(id, params)
	if err != nil {
		return nil, err
	}
	return intentFrom(pi), nil
}

func intentFrom(pi *stripe.PaymentIntent) *Intent {
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}
}
