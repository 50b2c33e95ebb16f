package service

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/medtrack/medtrack/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendEmailDisabledReportsSuccess(t *testing.T) {
	t.Setenv("ENABLE_EMAIL", "false")
	t.Setenv("ENABLE_SNS", "false")

	svc := NewNotifyService(context.Background())
	assert.True(t, svc.SendEmail("a@x.com", "Welcome", "hello"))

	sent, failed, _, _ := svc.Stats()
	assert.Equal(t, int64(1), sent)
	assert.Equal(t, int64(0), failed)
}

func TestPublishWithoutTopicIsNoop(t *testing.T) {
	t.Setenv("ENABLE_SNS", "false")

	svc := NewNotifyService(context.Background())
	assert.True(t, svc.Publish(context.Background(), "s", "b"))

	_, _, pushSent, pushFailed := svc.Stats()
	assert.Equal(t, int64(0), pushSent)
	assert.Equal(t, int64(0), pushFailed)
}

func TestNotifySignupDisabledChannels(t *testing.T) {
	t.Setenv("ENABLE_EMAIL", "false")
	t.Setenv("ENABLE_SNS", "false")

	svc := NewNotifyService(context.Background())
	user := &model.User{
		Name:      "Alice",
		Email:     "a@x.com",
		Role:      model.RolePatient,
		CreatedAt: time.Now(),
	}
	assert.True(t, svc.NotifySignup(context.Background(), user))
}

func TestSendEmailFailsWhenRelayNeverAnswers(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	// Accept connections but never send the SMTP greeting.
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
		}
	}()

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	t.Setenv("ENABLE_EMAIL", "true")
	t.Setenv("ENABLE_SNS", "false")
	t.Setenv("SMTP_SERVER", host)
	t.Setenv("SMTP_PORT", port)

	svc := NewNotifyService(context.Background())
	svc.smtpTimeout = 100 * time.Millisecond

	start := time.Now()
	assert.False(t, svc.SendEmail("a@x.com", "Welcome", "hello"))
	assert.Less(t, time.Since(start), 5*time.Second)

	sent, failed, _, _ := svc.Stats()
	assert.Equal(t, int64(0), sent)
	assert.Equal(t, int64(1), failed)
}
