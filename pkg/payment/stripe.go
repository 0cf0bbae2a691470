package payment

import (
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
)

type StripeService struct {
	secretKey      string
	premiumPriceID string
	successURL     string
	cancelURL      string
}

func NewStripeService(secretKey, premiumPriceID string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		secretKey:      secretKey,
		premiumPriceID: premiumPriceID,
		successURL:     "http://localhost:3000/premium/success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:      "http://localhost:3000/premium/cancel",
	}
}

func (s *StripeService) CreatePremiumCheckoutSession(clientReference string, metadata map[string]string) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		ClientReferenceID: &clientReference,
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.premiumPriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.successURL),
		CancelURL:  stripe.String(s.cancelURL),
	}

	for key, value := range metadata {
		params.AddMetadata(key, value)
	}

	return session.New(params)
}
