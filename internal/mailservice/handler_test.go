package mailservice

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSendWelcomeEmail(t *testing.T) {
	mockMC := new(MockMessageConsumer)
	mockMailer := new(MockMailer)
	mockCodes := new(MockCodeRecorder)

	ctx, cancel := context.WithCancel(context.Background())

	s := &MailService{
		mb:     mockMC,
		m:      mockMailer,
		codes:  mockCodes,
		logger: newTestLogger(),
		ctx:    ctx,
		cancel: cancel,
	}

	go s.SendWelcomeEmail()

	time.Sleep(1 * time.Second)

	assert.True(t, mockMailer.Called, "expected a welcome email to be sent")
	assert.Equal(t, "test@example.com", mockMailer.Email, "expected email to be sent to the recipient")

	// the recorded code is the one mailed out
	assert.Equal(t, "user-1", mockCodes.UserID)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), mockCodes.Code)
	payload, ok := mockMailer.Data.(struct {
		FirstName string
		Code      string
	})
	assert.True(t, ok)
	assert.Equal(t, "Test", payload.FirstName)
	assert.Equal(t, mockCodes.Code, payload.Code)

	t.Cleanup(func() {
		s.Close()
	})
}

func TestSendWelcomeEmailCodeStoreFailure(t *testing.T) {
	mockMC := new(MockMessageConsumer)
	mockMailer := new(MockMailer)
	mockCodes := &MockCodeRecorder{Err: assert.AnError}

	ctx, cancel := context.WithCancel(context.Background())

	s := &MailService{
		mb:     mockMC,
		m:      mockMailer,
		codes:  mockCodes,
		logger: newTestLogger(),
		ctx:    ctx,
		cancel: cancel,
	}

	go s.SendWelcomeEmail()

	time.Sleep(1 * time.Second)

	// the mail still goes out, just without a code
	assert.True(t, mockMailer.Called)
	payload, ok := mockMailer.Data.(struct {
		FirstName string
		Code      string
	})
	assert.True(t, ok)
	assert.Empty(t, payload.Code)

	t.Cleanup(func() {
		s.Close()
	})
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), generateCode())
	}
}
