package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/charbelabdallah/bookstore-backend/internal/config"
	"github.com/charbelabdallah/bookstore-backend/internal/email"
	"github.com/charbelabdallah/bookstore-backend/internal/normalize"
	"github.com/charbelabdallah/bookstore-backend/internal/ratelimit"
)

// Rate-limit windows for contact messages
const (
	contactIPLimit    = 6
	contactIPWindow   = 10 * time.Minute
	contactMailLimit  = 3
	contactMailWindow = time.Hour
)

const (
	maxContactNameLen = 100
	maxMessageLen     = 5000
)

// ContactService validates contact-form submissions and dispatches the
// merchant notification and customer acknowledgment.
type ContactService struct {
	limiter  *ratelimit.Limiter
	mailer   email.Mailer
	renderer *email.Renderer
	cfg      config.EmailConfig
	log      *slog.Logger
}

// NewContactService creates a new contact service
func NewContactService(limiter *ratelimit.Limiter, mailer email.Mailer, renderer *email.Renderer, cfg config.EmailConfig, log *slog.Logger) *ContactService {
	return &ContactService{
		limiter:  limiter,
		mailer:   mailer,
		renderer: renderer,
		cfg:      cfg,
		log:      log,
	}
}

// ContactResult reports the outcome of a contact submission.
type ContactResult struct {
	Honeypot bool
}

// Submit runs the contact pipeline: honeypot, field validation, rate
// limits, then the admin email followed by the acknowledgment.
func (s *ContactService) Submit(ctx context.Context, payload map[string]any, clientIP string) (*ContactResult, error) {
	if normalize.Text(payload["website"], maxHoneypotLen) != "" {
		return &ContactResult{Honeypot: true}, nil
	}

	name := normalize.Text(payload["name"], maxContactNameLen)
	message := normalize.MultilineText(payload["message"], maxMessageLen)
	if name == "" || message == "" {
		return nil, ErrMissingMessage
	}

	if !normalize.ValidEmail(payload["email"]) {
		return nil, ErrInvalidEmail
	}
	senderEmail := normalize.Email(payload["email"])

	if res := s.limiter.Allow("contact:ip", clientIP, contactIPLimit, contactIPWindow); !res.OK {
		return nil, &RateLimitError{RetryAfter: res.RetryAfter}
	}
	if res := s.limiter.Allow("contact:email", senderEmail, contactMailLimit, contactMailWindow); !res.OK {
		return nil, &RateLimitError{RetryAfter: res.RetryAfter}
	}

	docs := s.renderer.Contact(email.ContactData{
		Name:    name,
		Email:   senderEmail,
		Message: message,
	})

	adminID, err := s.mailer.Send(ctx, email.Message{
		From:    s.cfg.ContactFrom,
		To:      []string{s.cfg.AdminAddress},
		ReplyTo: senderEmail,
		Subject: "New Contact Message from " + name,
		Text:    docs.AdminText,
		HTML:    docs.AdminHTML,
	})
	if err != nil {
		s.log.Error("admin contact email failed", "error", err)
		return nil, ErrEmailDelivery
	}

	customerID, err := s.mailer.Send(ctx, email.Message{
		From:    s.cfg.CustomerFrom,
		To:      []string{senderEmail},
		Subject: "We received your message",
		Text:    docs.CustomerText,
		HTML:    docs.CustomerHTML,
	})
	if err != nil {
		s.log.Error("contact acknowledgment email failed after admin send",
			"admin_message_id", adminID,
			"error", err,
		)
		return nil, ErrEmailDelivery
	}

	s.log.Info("contact message dispatched",
		"admin_message_id", adminID,
		"customer_message_id", customerID,
	)

	return &ContactResult{}, nil
}
