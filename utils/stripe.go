package utils

import (
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

// StripeGateway creates payment intents against the Stripe API
type StripeGateway struct{}

// NewStripeGateway configures the Stripe client with the gateway API key
func NewStripeGateway(apiKey string) *StripeGateway {
	stripe.Key = apiKey
	return &StripeGateway{}
}

// CreateIntent creates a card payment intent and returns its client secret.
// The amount is in the smallest currency unit (cents).
func (sg *StripeGateway) CreateIntent(amount int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}
