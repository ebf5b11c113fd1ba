package email

import (
	"strings"
	"testing"

	"github.com/charbelabdallah/bookstore-backend/internal/grouping"
	"github.com/charbelabdallah/bookstore-backend/internal/models"
	"github.com/charbelabdallah/bookstore-backend/internal/pricing"
	"github.com/shopspring/decimal"
)

func sampleOrder() OrderData {
	return OrderData{
		Reference:      "ab12cd34",
		FirstName:      "Rita",
		LastName:       "Khoury",
		Phone:          "+961 3 123 456",
		Email:          "rita@example.com",
		DeliveryMethod: models.DeliveryShipping,
		Governorate:    "Beirut",
		City:           "Achrafieh",
		Address:        "12 Main St",
		Groups: []grouping.BookGroup{
			{
				BaseID:    "1",
				Title:     "Carrefour",
				UnitPrice: decimal.NewFromInt(15),
				Image:     "/images/carrefour.jpg",
				Qty:       2,
				Gifts: []grouping.GiftRow{
					{Title: "Judas Insert", Image: "/images/judas.jpg", Qty: 2},
				},
			},
		},
		Accessories: []models.OrderLine{
			{ID: "tote-bag", Title: "Tote Bag", Quantity: 1, Price: decimal.NewFromInt(5), Kind: models.KindAccessory},
		},
		Totals: pricing.Totals{
			Subtotal: decimal.NewFromInt(35),
			Delivery: decimal.NewFromInt(5),
			Total:    decimal.NewFromInt(40),
		},
	}
}

func TestOrderDocsContents(t *testing.T) {
	r := NewRenderer("https://charbelabdallah.com/")
	docs := r.Order(sampleOrder())

	// Gift rows are tagged and always priced FREE.
	if !strings.Contains(docs.AdminText, "FREE GIFT: Judas Insert × 2 = FREE") {
		t.Errorf("admin text missing gift row:\n%s", docs.AdminText)
	}
	if !strings.Contains(docs.CustomerHTML, "FREE GIFT") {
		t.Error("customer HTML missing gift badge")
	}

	// Line totals come from unit price times grouped quantity.
	if !strings.Contains(docs.AdminText, "Carrefour × 2 = $30.00") {
		t.Errorf("admin text missing book line:\n%s", docs.AdminText)
	}
	if !strings.Contains(docs.AdminText, "Tote Bag × 1 = $5.00") {
		t.Error("admin text missing accessory line")
	}
	if !strings.Contains(docs.AdminText, "Total: $40.00") {
		t.Error("admin text missing total")
	}

	// Root-relative images resolve against the site base URL, without a
	// doubled slash from the configured trailing one.
	if !strings.Contains(docs.CustomerHTML, `src="https://charbelabdallah.com/images/carrefour.jpg"`) {
		t.Error("customer HTML did not resolve root-relative image")
	}

	// The courtesy line belongs to the customer documents only.
	if strings.Contains(docs.AdminText, "We'll contact you") {
		t.Error("admin text must not carry the courtesy line")
	}
	if strings.Contains(docs.AdminHTML, "contact you shortly") {
		t.Error("admin HTML must not carry the courtesy line")
	}
	if !strings.Contains(docs.CustomerText, "We'll contact you shortly to confirm delivery details.") {
		t.Error("customer text missing delivery courtesy line")
	}
}

func TestOrderPickupCollapsesFields(t *testing.T) {
	d := sampleOrder()
	d.DeliveryMethod = models.DeliveryPickup
	d.Totals = pricing.Totals{
		Subtotal: decimal.NewFromInt(35),
		Delivery: decimal.Zero,
		Total:    decimal.NewFromInt(35),
	}

	docs := NewRenderer("https://charbelabdallah.com").Order(d)

	if !strings.Contains(docs.AdminText, "Delivery: Pickup (Free)") {
		t.Errorf("admin text delivery line:\n%s", docs.AdminText)
	}
	// Submitted region/city/address are ignored for pickup.
	if !strings.Contains(docs.AdminText, "Region: -") ||
		!strings.Contains(docs.AdminText, "City: -") ||
		!strings.Contains(docs.AdminText, "Address: -") {
		t.Errorf("pickup fields not collapsed:\n%s", docs.AdminText)
	}
	if strings.Contains(docs.AdminText, "Beirut") {
		t.Error("submitted governorate leaked into pickup admin text")
	}
	if !strings.Contains(docs.CustomerText, "confirm pickup details") {
		t.Error("customer text missing pickup courtesy phrasing")
	}
}

func TestOrderEscapesHTML(t *testing.T) {
	d := sampleOrder()
	d.FirstName = `<script>alert("x")</script>`
	d.Groups[0].Title = `Books & "Quotes" <vol 1>`

	docs := NewRenderer("https://charbelabdallah.com").Order(d)

	if strings.Contains(docs.CustomerHTML, "<script>") {
		t.Error("customer HTML contains unescaped script tag")
	}
	if !strings.Contains(docs.CustomerHTML, "Books &amp; &quot;Quotes&quot; &lt;vol 1&gt;") {
		t.Error("title not escaped in customer HTML")
	}
	// Plain text is not HTML-escaped.
	if !strings.Contains(docs.AdminText, `Books & "Quotes" <vol 1>`) {
		t.Error("admin text should carry the raw title")
	}
}

func TestOrderMissingImageRendersPlaceholder(t *testing.T) {
	d := sampleOrder()
	d.Groups[0].Image = ""

	docs := NewRenderer("https://charbelabdallah.com").Order(d)

	if !strings.Contains(docs.CustomerHTML, "background:#fafafa") {
		t.Error("customer HTML missing placeholder box for empty image")
	}
}

func TestOrderAbsoluteImagePassesThrough(t *testing.T) {
	d := sampleOrder()
	d.Groups[0].Image = "https://cdn.example.com/x.jpg"

	docs := NewRenderer("https://charbelabdallah.com").Order(d)
	if !strings.Contains(docs.CustomerHTML, `src="https://cdn.example.com/x.jpg"`) {
		t.Error("absolute image URL was rewritten")
	}
}

// Image references that would not survive normalization render the
// placeholder box, even when the renderer receives them directly.
func TestOrderUnsafeImageRendersPlaceholder(t *testing.T) {
	for _, image := range []string{
		"javascript:alert(1)",
		"data:image/png;base64,AAAA",
		"//evil.example/x.jpg",
		"images/relative.jpg",
	} {
		d := sampleOrder()
		d.Groups[0].Image = image

		docs := NewRenderer("https://charbelabdallah.com").Order(d)
		if strings.Contains(docs.CustomerHTML, image) {
			t.Errorf("image %q reached the customer HTML", image)
		}
		if !strings.Contains(docs.CustomerHTML, "background:#fafafa") {
			t.Errorf("image %q did not fall back to the placeholder box", image)
		}
	}
}

func TestContactDocs(t *testing.T) {
	r := NewRenderer("https://charbelabdallah.com")
	docs := r.Contact(ContactData{
		Name:    "Rita",
		Email:   "rita@example.com",
		Message: "Line one\nLine <two>",
	})

	if !strings.Contains(docs.AdminHTML, "Line one<br/>Line &lt;two&gt;") {
		t.Errorf("admin HTML message lines:\n%s", docs.AdminHTML)
	}
	if !strings.Contains(docs.AdminText, "Line one\nLine <two>") {
		t.Error("admin text should carry the raw message")
	}
	if !strings.Contains(docs.CustomerText, "2-3 business days") {
		t.Error("customer text missing response window")
	}
	if !strings.Contains(docs.CustomerHTML, "Hi Rita,") {
		t.Error("customer HTML missing greeting")
	}
}
