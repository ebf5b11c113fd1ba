package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/charbelabdallah/bookstore-backend/internal/config"
	"github.com/charbelabdallah/bookstore-backend/internal/email"
	"github.com/charbelabdallah/bookstore-backend/internal/grouping"
	"github.com/charbelabdallah/bookstore-backend/internal/models"
	"github.com/charbelabdallah/bookstore-backend/internal/normalize"
	"github.com/charbelabdallah/bookstore-backend/internal/pricing"
	"github.com/charbelabdallah/bookstore-backend/internal/ratelimit"
	"github.com/google/uuid"
)

// Rate-limit windows for order submissions
const (
	orderIPLimit    = 10
	orderIPWindow   = 30 * time.Minute
	orderMailLimit  = 5
	orderMailWindow = 24 * time.Hour
)

// Field length bounds for the customer/delivery fields
const (
	maxNameLen     = 80
	maxPhoneLen    = 24
	maxRegionLen   = 64
	maxCityLen     = 80
	maxAddressLen  = 240
	maxHoneypotLen = 256
)

// OrderService validates order submissions, re-derives totals
// server-side, and dispatches the merchant and customer emails.
type OrderService struct {
	limiter  *ratelimit.Limiter
	mailer   email.Mailer
	renderer *email.Renderer
	cfg      config.EmailConfig
	log      *slog.Logger
}

// NewOrderService creates a new order service
func NewOrderService(limiter *ratelimit.Limiter, mailer email.Mailer, renderer *email.Renderer, cfg config.EmailConfig, log *slog.Logger) *OrderService {
	return &OrderService{
		limiter:  limiter,
		mailer:   mailer,
		renderer: renderer,
		cfg:      cfg,
		log:      log,
	}
}

// OrderResult reports the outcome of a processed submission. Honeypot
// submissions succeed from the caller's perspective but send nothing.
type OrderResult struct {
	Reference string
	Honeypot  bool
}

// Place runs the full order pipeline on an untrusted payload. Individual
// malformed cart lines are dropped silently; the order fails only when
// no line survives. The merchant email must be accepted before the
// customer email is attempted, so a customer confirmation never exists
// without a matching merchant notification.
func (s *OrderService) Place(ctx context.Context, payload map[string]any, clientIP string) (*OrderResult, error) {
	// Hidden field legitimate users never fill. Accept silently so
	// automated submitters don't learn about the trap.
	if normalize.Text(payload["website"], maxHoneypotLen) != "" {
		return &OrderResult{Honeypot: true}, nil
	}

	if !normalize.ValidEmail(payload["email"]) {
		return nil, ErrInvalidEmail
	}
	customerEmail := normalize.Email(payload["email"])

	firstName := normalize.Text(payload["firstName"], maxNameLen)
	lastName := normalize.Text(payload["lastName"], maxNameLen)
	if firstName == "" || lastName == "" {
		return nil, ErrMissingName
	}

	if !normalize.ValidPhone(payload["phone"]) {
		return nil, ErrInvalidPhone
	}
	phone := normalize.Text(payload["phone"], maxPhoneLen)

	deliveryMethod := normalize.Text(payload["deliveryMethod"], 16)
	if deliveryMethod != models.DeliveryPickup && deliveryMethod != models.DeliveryShipping {
		return nil, ErrInvalidDelivery
	}

	var governorate, city, address string
	if deliveryMethod == models.DeliveryShipping {
		governorate = normalize.Text(payload["governorate"], maxRegionLen)
		city = normalize.Text(payload["city"], maxCityLen)
		address = normalize.Text(payload["address"], maxAddressLen)
		if governorate == "" || city == "" || address == "" {
			return nil, ErrMissingShipping
		}
	}

	lines := normalizeItems(payload["items"])
	if len(lines) == 0 {
		return nil, ErrInvalidItems
	}

	if res := s.limiter.Allow("order:ip", clientIP, orderIPLimit, orderIPWindow); !res.OK {
		return nil, &RateLimitError{RetryAfter: res.RetryAfter}
	}
	if res := s.limiter.Allow("order:email", customerEmail, orderMailLimit, orderMailWindow); !res.OK {
		return nil, &RateLimitError{RetryAfter: res.RetryAfter}
	}

	totals := pricing.Quote(lines, deliveryMethod, governorate)
	groups, accessories := grouping.Group(lines)

	reference := shortReference()

	docs := s.renderer.Order(email.OrderData{
		Reference:      reference,
		FirstName:      firstName,
		LastName:       lastName,
		Phone:          phone,
		Email:          customerEmail,
		DeliveryMethod: deliveryMethod,
		Governorate:    governorate,
		City:           city,
		Address:        address,
		Groups:         groups,
		Accessories:    accessories,
		Totals:         totals,
	})

	adminID, err := s.mailer.Send(ctx, email.Message{
		From:    s.cfg.OrderFrom,
		To:      []string{s.cfg.AdminAddress},
		ReplyTo: customerEmail,
		Subject: "New Order #" + reference,
		Text:    docs.AdminText,
		HTML:    docs.AdminHTML,
	})
	if err != nil {
		s.log.Error("admin order email failed", "reference", reference, "error", err)
		return nil, ErrEmailDelivery
	}

	customerID, err := s.mailer.Send(ctx, email.Message{
		From:    s.cfg.CustomerFrom,
		To:      []string{customerEmail},
		Subject: "Order received ✅",
		Text:    docs.CustomerText,
		HTML:    docs.CustomerHTML,
	})
	if err != nil {
		// The merchant was already notified; record the half-delivery
		// for the operator since the caller only sees a generic failure.
		s.log.Error("customer order email failed after admin send",
			"reference", reference,
			"admin_message_id", adminID,
			"error", err,
		)
		return nil, ErrEmailDelivery
	}

	s.log.Info("order dispatched",
		"reference", reference,
		"items", len(lines),
		"book_groups", len(groups),
		"accessories", len(accessories),
		"total", totals.Total.StringFixed(2),
		"admin_message_id", adminID,
		"customer_message_id", customerID,
	)

	return &OrderResult{Reference: reference}, nil
}

// normalizeItems caps the raw list and converts entries one by one,
// dropping anything malformed.
func normalizeItems(raw any) []models.OrderLine {
	rawItems, _ := raw.([]any)
	if len(rawItems) > normalize.MaxItems {
		rawItems = rawItems[:normalize.MaxItems]
	}

	lines := make([]models.OrderLine, 0, len(rawItems))
	for _, entry := range rawItems {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if line, ok := normalize.Item(obj); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

// shortReference returns the first uuid block, enough to correlate the
// two emails and the server logs for one order.
func shortReference() string {
	return uuid.New().String()[:8]
}
