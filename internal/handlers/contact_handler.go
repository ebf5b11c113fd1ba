package handlers

import (
	"log/slog"
	"net/http"

	"github.com/charbelabdallah/bookstore-backend/internal/service"
)

// ContactHandler handles contact-form HTTP requests
type ContactHandler struct {
	contactService *service.ContactService
	log            *slog.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *service.ContactService, log *slog.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		log:            log,
	}
}

// SubmitMessage handles POST /api/contact
func (h *ContactHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	payload, ok := parseJSONBody(w, r, MaxContactBody, h.log)
	if !ok {
		return
	}

	result, err := h.contactService.Submit(r.Context(), payload, clientIP(r))
	if err != nil {
		writeServiceError(w, err, h.log)
		return
	}

	if result.Honeypot {
		h.log.Info("contact honeypot tripped", "ip", clientIP(r))
	}

	WriteSuccess(w, h.log)
}
