package pricing

import (
	"testing"

	"github.com/charbelabdallah/bookstore-backend/internal/models"
	"github.com/shopspring/decimal"
)

func line(id string, price float64, qty int, gift bool) models.OrderLine {
	return models.OrderLine{
		ID:       id,
		Title:    id,
		Quantity: qty,
		Price:    decimal.NewFromFloat(price).Round(2),
		Kind:     models.KindBook,
		IsGift:   gift,
	}
}

func TestQuotePickup(t *testing.T) {
	lines := []models.OrderLine{
		line("1::book::a", 15, 1, false),
		{ID: "1::book::a::gift::g1", Title: "Judas Insert", Quantity: 1, Price: decimal.Zero, Kind: models.KindBook, IsGift: true, ParentID: "1::book::a"},
	}

	totals := Quote(lines, models.DeliveryPickup, "")

	if totals.Subtotal.StringFixed(2) != "15.00" {
		t.Errorf("Subtotal = %s, want 15.00", totals.Subtotal.StringFixed(2))
	}
	if !totals.Delivery.IsZero() {
		t.Errorf("Delivery = %s, want 0", totals.Delivery)
	}
	if totals.Total.StringFixed(2) != "15.00" {
		t.Errorf("Total = %s, want 15.00", totals.Total.StringFixed(2))
	}
}

func TestQuoteShipping(t *testing.T) {
	lines := []models.OrderLine{line("1::book::a", 15, 1, false)}

	tests := []struct {
		governorate  string
		wantDelivery string
		wantTotal    string
	}{
		{"North Lebanon", "3.00", "18.00"},
		{"Batroun", "3.00", "18.00"},
		{"Beirut", "5.00", "20.00"},
		{"Mount Lebanon", "5.00", "20.00"},
		{"", "5.00", "20.00"},
	}

	for _, tt := range tests {
		t.Run(tt.governorate, func(t *testing.T) {
			totals := Quote(lines, models.DeliveryShipping, tt.governorate)
			if got := totals.Delivery.StringFixed(2); got != tt.wantDelivery {
				t.Errorf("Delivery = %s, want %s", got, tt.wantDelivery)
			}
			if got := totals.Total.StringFixed(2); got != tt.wantTotal {
				t.Errorf("Total = %s, want %s", got, tt.wantTotal)
			}
		})
	}
}

func TestQuoteIgnoresGiftPrices(t *testing.T) {
	// A gift line carrying a nonzero price must still contribute nothing.
	lines := []models.OrderLine{
		line("1::book::a", 12.5, 2, false),
		line("1::book::a::gift::g", 99, 3, true),
	}

	totals := Quote(lines, models.DeliveryPickup, "")
	if totals.Subtotal.StringFixed(2) != "25.00" {
		t.Errorf("Subtotal = %s, want 25.00", totals.Subtotal.StringFixed(2))
	}
}

func TestQuoteOrderIndependent(t *testing.T) {
	a := line("1", 3.33, 3, false)
	b := line("2", 7.77, 2, false)
	c := line("tote", 1.25, 5, false)

	first := Quote([]models.OrderLine{a, b, c}, models.DeliveryShipping, "Beirut")
	second := Quote([]models.OrderLine{c, a, b}, models.DeliveryShipping, "Beirut")

	if !first.Subtotal.Equal(second.Subtotal) || !first.Total.Equal(second.Total) {
		t.Errorf("reordering changed totals: %s/%s vs %s/%s",
			first.Subtotal, first.Total, second.Subtotal, second.Total)
	}
	if first.Subtotal.StringFixed(2) != "31.78" {
		t.Errorf("Subtotal = %s, want 31.78", first.Subtotal.StringFixed(2))
	}
}

func TestQuoteEmpty(t *testing.T) {
	totals := Quote(nil, models.DeliveryPickup, "")
	if !totals.Total.IsZero() {
		t.Errorf("Total = %s, want 0", totals.Total)
	}
}
