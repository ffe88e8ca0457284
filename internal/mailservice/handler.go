package mailservice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/exp/rand"

	"github.com/wrenlet/inkwell/internal/common"
	"github.com/wrenlet/inkwell/internal/supabase"
)

func NewMailService(mb common.MessageConsumer, adm *supabase.Client, host, username, password, sender string, port int, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:     mb,
		m:      NewMailer(host, port, username, password, sender, NewTemplate()),
		codes:  &otpStore{adm: adm},
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// generateCode returns a 6-digit one-time code, zero-padded.
func generateCode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

// SendWelcomeEmail consumes registration events, records a one-time
// code per user, and mails it. A code that cannot be recorded still
// produces a welcome mail without one.
func (s *MailService) SendWelcomeEmail() {
	msgs, err := s.mb.Consume(common.UserRegisteredKey, common.UserExchange, common.UserRegisteredQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var data struct {
					UserID    string `json:"user_id"`
					Email     string `json:"email"`
					FirstName string `json:"first_name"`
				}

				err := json.Unmarshal(msg.Body, &data)
				if err != nil {
					s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
					continue
				}

				code := generateCode()
				if err := s.codes.record(s.ctx, data.UserID, code); err != nil {
					s.logger.Error("could not record one-time code", slog.String("user_id", data.UserID), slog.String("error", err.Error()))
					code = ""
				}

				payload := struct {
					FirstName string
					Code      string
				}{
					FirstName: data.FirstName,
					Code:      code,
				}

				// using exponential backoff with jitter
				const maxRetries = 5
				const baseDelay = 500 * time.Millisecond

				var attempt int
				for attempt = 0; attempt < maxRetries; attempt++ {
					err = s.m.send(data.Email, payload, "welcome_email.html")
					if err == nil {
						s.logger.Info("welcome email sent", slog.String("email", data.Email))
						msg.Ack(false)
						break
					}

					delay := time.Duration(rand.Int63n(int64(baseDelay) << uint(attempt)))
					s.logger.Info("delaying welcome email", slog.String("email", data.Email), slog.Int("attempt", attempt), slog.Duration("delay", delay))
					time.Sleep(delay)
				}

				if attempt == maxRetries {
					s.logger.Error("could not send welcome email", slog.String("email", data.Email))
					msg.Ack(false)
				}

			case <-s.ctx.Done():
				s.logger.Info("stopping SendWelcomeEmail due to context cancellation")
				return
			}
		}
	}()
}

func (s *MailService) Close() {
	s.cancel()
}
