package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charbelabdallah/bookstore-backend/internal/config"
	"github.com/charbelabdallah/bookstore-backend/internal/email"
	"github.com/charbelabdallah/bookstore-backend/internal/ratelimit"
	"github.com/charbelabdallah/bookstore-backend/internal/service"
	"github.com/charbelabdallah/bookstore-backend/pkg/logger"
)

func newContactHandler(mailer email.Mailer) *ContactHandler {
	log := logger.New("error")
	svc := service.NewContactService(
		ratelimit.New(),
		mailer,
		email.NewRenderer("https://example.com"),
		config.EmailConfig{
			AdminAddress: "owner@example.com",
			ContactFrom:  "Website Contact <orders@example.com>",
			CustomerFrom: "Shop <orders@example.com>",
		},
		log,
	)
	return NewContactHandler(svc, log)
}

func postContact(handler *ContactHandler, body []byte, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	req.RemoteAddr = "203.0.113.9:52100"

	rec := httptest.NewRecorder()
	handler.SubmitMessage(rec, req)
	return rec
}

func TestSubmitMessageSuccess(t *testing.T) {
	mailer := &countingMailer{}
	handler := newContactHandler(mailer)

	body, _ := json.Marshal(map[string]any{
		"name":    "Rita",
		"email":   "reader@example.com",
		"message": "When is the next signing?",
	})
	rec := postContact(handler, body, "application/json")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if mailer.sends != 2 {
		t.Errorf("sends = %d, want 2", mailer.sends)
	}
}

func TestSubmitMessageMissingFields(t *testing.T) {
	mailer := &countingMailer{}
	handler := newContactHandler(mailer)

	body, _ := json.Marshal(map[string]any{
		"name":  "Rita",
		"email": "reader@example.com",
	})
	rec := postContact(handler, body, "application/json")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if mailer.sends != 0 {
		t.Errorf("sends = %d, want 0", mailer.sends)
	}
}

func TestSubmitMessageBodyCap(t *testing.T) {
	handler := newContactHandler(&countingMailer{})

	// The contact cap is smaller than the order cap.
	body, _ := json.Marshal(map[string]any{
		"name":    "Rita",
		"email":   "reader@example.com",
		"message": strings.Repeat("x", MaxContactBody),
	})
	rec := postContact(handler, body, "application/json")
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestSubmitMessageHoneypot(t *testing.T) {
	mailer := &countingMailer{}
	handler := newContactHandler(mailer)

	body, _ := json.Marshal(map[string]any{
		"name":    "Rita",
		"email":   "reader@example.com",
		"message": "hello",
		"website": "http://spam.example",
	})
	rec := postContact(handler, body, "application/json")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if mailer.sends != 0 {
		t.Errorf("sends = %d, want 0", mailer.sends)
	}
}
