package config

type PaymentConfig struct {
	Stripe   *StripeConfig
	Currency string
}

type StripeConfig struct {
	SecretKey string
}

// Enabled reports whether refunds can be issued.
func (p *PaymentConfig) Enabled() bool {
	return p.Stripe != nil && p.Stripe.SecretKey != ""
}

func loadPaymentConfig() *PaymentConfig {
	return &PaymentConfig{
		Stripe: &StripeConfig{
			SecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		},
		Currency: getEnv("PAYMENT_CURRENCY", "LKR"),
	}
}
