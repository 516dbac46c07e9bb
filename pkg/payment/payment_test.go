package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(1999), toMinorUnits(19.99))
	assert.Equal(t, int64(10), toMinorUnits(0.1))
	assert.Equal(t, int64(0), toMinorUnits(0))
}

func TestRefundParams(t *testing.T) {
	params := refundParams(context.Background(), &RefundRequest{
		PaymentIntentID: "pi_1",
		Amount:          25.5,
		Reason:          "ill",
		Metadata:        map[string]string{"booking_id": "b1"},
		IdempotencyKey:  "refund-b1",
	})

	require.NotNil(t, params.IdempotencyKey)
	assert.Equal(t, "refund-b1", *params.IdempotencyKey)
	assert.Equal(t, "pi_1", *params.PaymentIntent)
	assert.Equal(t, int64(2550), *params.Amount)
	assert.Equal(t, "ill", params.Metadata["staff_reason"])
	assert.Equal(t, "b1", params.Metadata["booking_id"])

	params = refundParams(context.Background(), &RefundRequest{PaymentIntentID: "pi_2"})
	assert.Nil(t, params.IdempotencyKey)
	assert.Nil(t, params.Amount, "zero amount refunds the full payment")
}
