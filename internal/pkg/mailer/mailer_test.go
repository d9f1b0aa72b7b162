package mailer

import (
	"bytes"
	"context"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPMailer_Message(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "localhost", Port: 2525, From: "noreply@venuehub.test"})

	msg, err := m.message("guest@venuehub.test", "Booking confirmed", "See you on the 12th")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "noreply@venuehub.test")
	assert.Contains(t, out, "guest@venuehub.test")
	assert.Contains(t, out, "Subject: Booking confirmed")
	assert.Contains(t, out, "text/plain")
	assert.Contains(t, out, "See you on the 12th")
}

func TestSMTPMailer_RejectsBadAddress(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "localhost", Port: 2525, From: "noreply@venuehub.test"})

	// fails before any connection is attempted
	err := m.Send(context.Background(), "not an address", "Hi", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp to")

	bad := NewSMTPMailer(SMTPConfig{Host: "localhost", Port: 2525, From: "@@"})
	_, err = bad.message("guest@venuehub.test", "Hi", "body")
	assert.Error(t, err)
}

func TestSMTPMailer_RequiresHost(t *testing.T) {
	_, err := NewSMTPMailer(SMTPConfig{Host: "localhost", Port: 2525, Username: "u", Password: "p"}).client()
	require.NoError(t, err)

	m := NewSMTPMailer(SMTPConfig{Port: 2525, From: "noreply@venuehub.test"})
	err = m.Send(context.Background(), "guest@venuehub.test", "Hi", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp client")
}

func TestConsoleMailer_Logs(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	require.NoError(t, NewConsoleMailer(log).Send(context.Background(), "a@b.test", "Hello", "body"))

	require.Len(t, hook.AllEntries(), 1)
	e := hook.LastEntry()
	assert.Equal(t, "a@b.test", e.Data["to"])
	assert.Equal(t, "Hello", e.Data["subject"])
}
