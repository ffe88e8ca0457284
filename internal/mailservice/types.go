package mailservice

import (
	"bytes"
	"context"
	"sync"

	"github.com/go-mail/mail/v2"

	"github.com/wrenlet/inkwell/internal/common"
	"github.com/wrenlet/inkwell/internal/supabase"
)

type MailService struct {
	mb     common.MessageConsumer
	m      Mailer
	codes  codeRecorder
	logger MailLogger
	ctx    context.Context
	cancel context.CancelFunc
}

type MailLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

// codeRecorder persists a one-time code for a user. Backed by the
// elevated gateway client in production and mocked in tests.
type codeRecorder interface {
	record(ctx context.Context, userID, code string) error
}

type Mail struct {
	mu     sync.Mutex
	dialer Dialer
	parser TemplateParser
	sender string
}

type Mailer interface {
	send(recipient string, data any, templateFile string) error
}

type Template struct{}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type TemplateParser interface {
	ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error)
}

const tableOTP = "user_otp"

// otpStore writes one-time codes through the elevated gateway client.
// The restricted client cannot touch user_otp at all.
type otpStore struct {
	adm *supabase.Client
}

func (s *otpStore) record(ctx context.Context, userID, code string) error {
	return s.adm.From(tableOTP).Insert(ctx, map[string]any{
		"user_id": userID,
		"code":    code,
	}, nil)
}
