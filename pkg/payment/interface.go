package payment

import (
	"context"
	"math"
)

// RefundProvider issues refunds against captured payments.
type RefundProvider interface {
	RefundPayment(ctx context.Context, request *RefundRequest) (*RefundResponse, error)
}

type RefundRequest struct {
	PaymentIntentID string            `json:"payment_intent_id"`
	Amount          float64           `json:"amount"`
	Reason          string            `json:"reason"`
	Metadata        map[string]string `json:"metadata"`
	// IdempotencyKey makes retries of the same refund return the first result.
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

type RefundResponse struct {
	RefundID  string  `json:"refund_id"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	CreatedAt int64   `json:"created_at"`
}

// toMinorUnits converts an amount to cents, rounding to the nearest unit.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
