package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/charbelabdallah/bookstore-backend/internal/service"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// SubmitOrder handles POST /api/order
func (h *OrderHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	payload, ok := parseJSONBody(w, r, MaxOrderBody, h.log)
	if !ok {
		return
	}

	result, err := h.orderService.Place(r.Context(), payload, clientIP(r))
	if err != nil {
		writeServiceError(w, err, h.log)
		return
	}

	if result.Honeypot {
		// Indistinguishable from success so the trap stays hidden.
		h.log.Info("order honeypot tripped", "ip", clientIP(r))
		WriteSuccess(w, h.log)
		return
	}

	WriteSuccess(w, h.log)
}

// writeServiceError maps service errors onto the HTTP taxonomy. Provider
// failures and anything unanticipated are genericized; only validation
// errors carry a specific message.
func writeServiceError(w http.ResponseWriter, err error, log *slog.Logger) {
	var rle *service.RateLimitError
	if errors.As(err, &rle) {
		w.Header().Set("Retry-After", strconv.Itoa(rle.RetryAfter))
		WriteError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.", log)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		WriteError(w, http.StatusBadRequest, "A valid email address is required.", log)
	case errors.Is(err, service.ErrMissingName):
		WriteError(w, http.StatusBadRequest, "First and last name are required.", log)
	case errors.Is(err, service.ErrInvalidPhone):
		WriteError(w, http.StatusBadRequest, "A valid phone number is required.", log)
	case errors.Is(err, service.ErrInvalidDelivery):
		WriteError(w, http.StatusBadRequest, "Delivery method must be pickup or shipping.", log)
	case errors.Is(err, service.ErrMissingShipping):
		WriteError(w, http.StatusBadRequest, "Governorate, city, and address are required for shipping.", log)
	case errors.Is(err, service.ErrInvalidItems):
		WriteError(w, http.StatusBadRequest, "Order items are invalid.", log)
	case errors.Is(err, service.ErrMissingMessage):
		WriteError(w, http.StatusBadRequest, "Name, email, and message are required.", log)
	case errors.Is(err, service.ErrEmailDelivery):
		WriteError(w, http.StatusBadGateway, "Unable to send email right now. Please try again later.", log)
	default:
		log.Error("unexpected service error", "error", err)
		WriteError(w, http.StatusInternalServerError, "Something went wrong. Please try again.", log)
	}
}
