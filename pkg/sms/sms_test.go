package sms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderSelection(t *testing.T) {
	p, err := New(context.Background(), Config{Provider: "none"})
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = New(context.Background(), Config{Provider: "twilio"})
	assert.ErrorContains(t, err, "not configured")

	p, err = New(context.Background(), Config{Provider: "twilio", TwilioAccountSID: "AC1", TwilioAuthToken: "tok", TwilioFromNumber: "+94110000000"})
	require.NoError(t, err)
	assert.IsType(t, &TwilioProvider{}, p)

	_, err = New(context.Background(), Config{Provider: "pigeon"})
	assert.Error(t, err)
}

func TestSMSType(t *testing.T) {
	assert.Equal(t, "Promotional", smsType("promotional"))
	assert.Equal(t, "Transactional", smsType("transactional"))
	assert.Equal(t, "Transactional", smsType(""))
}
