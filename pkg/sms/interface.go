package sms

import (
	"context"
	"fmt"
)

type SMSProvider interface {
	SendSMS(ctx context.Context, request *SMSRequest) (*SMSResponse, error)
}

type SMSRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
	Type    string `json:"type"` // transactional, promotional
}

type SMSResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

type Config struct {
	Provider string // twilio, aws, none

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	AWSRegion string
}

// New builds the configured provider. It returns nil, nil when SMS is
// disabled.
func New(ctx context.Context, cfg Config) (SMSProvider, error) {
	switch cfg.Provider {
	case "", "none":
		return nil, nil
	case "twilio":
		if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" {
			return nil, fmt.Errorf("twilio credentials are not configured")
		}
		return NewTwilioProvider(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber), nil
	case "aws", "sns":
		return NewAWSSNSProvider(ctx, cfg.AWSRegion)
	default:
		return nil, fmt.Errorf("unknown sms provider %q", cfg.Provider)
	}
}
