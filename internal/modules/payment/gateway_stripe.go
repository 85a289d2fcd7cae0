package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeGateway maps orders onto PaymentIntents. Stripe has no client side
// signature, so verification re-reads the intent and checks its latest charge.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

func (g *StripeGateway) Name() string  { return "stripe" }
func (g *StripeGateway) KeyID() string { return "" }

func (g *StripeGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*Order, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(strings.ToLower(currency)),
	}
	params.Context = ctx
	params.AddMetadata("booking_id", receipt)

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create payment intent: %w", err)
	}
	return &Order{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (g *StripeGateway) VerifySignature(ctx context.Context, orderID, paymentID, _ string) error {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(orderID, params)
	if err != nil {
		return fmt.Errorf("stripe get payment intent: %w", err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return ErrSignatureMismatch
	}
	if pi.LatestCharge == nil || pi.LatestCharge.ID != paymentID {
		return ErrSignatureMismatch
	}
	return nil
}

// NewGateway picks the gateway named by PAYMENT_GATEWAY.
func NewGateway(name, razorpayKeyID, razorpaySecret, stripeKey string) (Gateway, error) {
	switch name {
	case "", "razorpay":
		return NewRazorpayGateway(razorpayKeyID, razorpaySecret), nil
	case "stripe":
		return NewStripeGateway(stripeKey), nil
	}
	return nil, fmt.Errorf("payment: unknown gateway %q", name)
}
