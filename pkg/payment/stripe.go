package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type StripeProvider struct {
	client *client.API
}

func NewStripeProvider(secretKey string) *StripeProvider {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return &StripeProvider{client: sc}
}

// RefundPayment refunds part or all of a payment intent.
func (s *StripeProvider) RefundPayment(ctx context.Context, request *RefundRequest) (*RefundResponse, error) {
	refund, err := s.client.Refunds.New(refundParams(ctx, request))
	if err != nil {
		return nil, fmt.Errorf("failed to create refund: %w", err)
	}

	return &RefundResponse{
		RefundID:  refund.ID,
		Status:    string(refund.Status),
		Amount:    float64(refund.Amount) / 100,
		Currency:  string(refund.Currency),
		CreatedAt: refund.Created,
	}, nil
}

// refundParams builds the Stripe request. The staff reason is carried in
// metadata since Stripe only accepts its own reason codes.
func refundParams(ctx context.Context, request *RefundRequest) *stripe.RefundParams {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(request.PaymentIntentID),
		Reason:        stripe.String(string(stripe.RefundReasonRequestedByCustomer)),
	}
	params.Context = ctx
	if request.Amount > 0 {
		params.Amount = stripe.Int64(toMinorUnits(request.Amount))
	}
	if request.Reason != "" {
		params.AddMetadata("staff_reason", request.Reason)
	}
	for k, v := range request.Metadata {
		params.AddMetadata(k, v)
	}
	if request.IdempotencyKey != "" {
		params.SetIdempotencyKey(request.IdempotencyKey)
	}
	return params
}
