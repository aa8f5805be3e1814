package notify

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/poiesic/bidmatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() core.MatchResult {
	return core.MatchResult{
		Tender: core.TenderRecord{
			ID:           "CPPP-2025-001",
			Title:        "Supply of IT Equipment",
			Organization: "Ministry of Electronics and IT",
			Deadline:     "2025-05-15",
			EMDAmount:    "₹150,000",
			Source:       core.SourceCPPP,
			URL:          "https://etenders.gov.in/eprocure/app?tender_id=CPPP-2025-001",
		},
		Score: 0.8765,
	}
}

func TestNewMessage(t *testing.T) {
	msg := NewMessage(sampleResult())

	assert.Equal(t, "CPPP-2025-001", msg.TenderID)
	assert.Equal(t, "New Tender Match: Supply of IT Equipment", msg.Subject)
	assert.InDelta(t, 0.8765, msg.MatchScore, 1e-12)

	assert.Contains(t, msg.Body, "Tender ID: CPPP-2025-001")
	assert.Contains(t, msg.Body, "Organization: Ministry of Electronics and IT")
	assert.Contains(t, msg.Body, "Match Score: 0.88")
	assert.Contains(t, msg.Body, "https://etenders.gov.in/eprocure/app?tender_id=CPPP-2025-001")
}

func TestNewMessage_NoURL(t *testing.T) {
	result := sampleResult()
	result.Tender.URL = ""

	msg := NewMessage(result)
	assert.NotContains(t, msg.Body, "View more details")
}

func TestLogNotifier(t *testing.T) {
	notifier := NewLogNotifier(nil)
	err := notifier.Notify(context.Background(), NewMessage(sampleResult()))
	assert.NoError(t, err)
}

func TestNewSMTPNotifier_Validation(t *testing.T) {
	_, err := NewSMTPNotifier(SMTPConfig{Recipient: "user@example.com"})
	assert.ErrorIs(t, err, ErrSMTPHostRequired)

	_, err = NewSMTPNotifier(SMTPConfig{Host: "smtp.example.com"})
	assert.ErrorIs(t, err, ErrRecipientRequired)
}

func TestSMTPNotifier_Notify(t *testing.T) {
	notifier, err := NewSMTPNotifier(SMTPConfig{
		Host:      "smtp.example.com",
		From:      "alerts@example.com",
		Recipient: "user@example.com",
	})
	require.NoError(t, err)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	notifier.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	msg := NewMessage(sampleResult())
	require.NoError(t, notifier.Notify(context.Background(), msg))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "alerts@example.com", gotFrom)
	assert.Equal(t, []string{"user@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: New Tender Match: Supply of IT Equipment")
	assert.Contains(t, string(gotMsg), "Tender ID: CPPP-2025-001")
}

func TestSMTPNotifier_SendFailure(t *testing.T) {
	notifier, err := NewSMTPNotifier(SMTPConfig{
		Host:      "smtp.example.com",
		Recipient: "user@example.com",
	})
	require.NoError(t, err)

	sendErr := errors.New("connection refused")
	notifier.send = func(string, smtp.Auth, string, []string, []byte) error {
		return sendErr
	}

	err = notifier.Notify(context.Background(), NewMessage(sampleResult()))
	assert.ErrorIs(t, err, sendErr)
}

func TestSMTPNotifier_CancelledContext(t *testing.T) {
	notifier, err := NewSMTPNotifier(SMTPConfig{
		Host:      "smtp.example.com",
		Recipient: "user@example.com",
	})
	require.NoError(t, err)

	called := false
	notifier.send = func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = notifier.Notify(ctx, NewMessage(sampleResult()))
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
