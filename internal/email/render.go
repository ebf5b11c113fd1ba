package email

import (
	"fmt"
	"strings"

	"github.com/charbelabdallah/bookstore-backend/internal/grouping"
	"github.com/charbelabdallah/bookstore-backend/internal/models"
	"github.com/charbelabdallah/bookstore-backend/internal/normalize"
	"github.com/charbelabdallah/bookstore-backend/internal/pricing"
	"github.com/shopspring/decimal"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// htmlLines escapes a multiline value and converts newlines to <br/>.
func htmlLines(s string) string {
	return strings.ReplaceAll(escapeHTML(s), "\n", "<br/>")
}

func dollars(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Renderer builds the outbound email documents. siteURL is the trusted
// base that root-relative image paths resolve against.
type Renderer struct {
	siteURL string
}

// NewRenderer creates a renderer for the given site base URL.
func NewRenderer(siteURL string) *Renderer {
	return &Renderer{siteURL: strings.TrimRight(siteURL, "/")}
}

// resolveImage turns a stored image reference into an absolute URL,
// re-applying the normalizer's accept rules so a value that bypassed
// normalization still cannot reach an <img> tag. Returns "" for anything
// unresolvable; the HTML renderer shows a placeholder box instead of a
// broken image tag.
func (r *Renderer) resolveImage(image string) string {
	s := normalize.ImageURL(image)
	if strings.HasPrefix(s, "/") {
		return r.siteURL + s
	}
	return s
}

// OrderData is everything the order emails present.
type OrderData struct {
	Reference      string
	FirstName      string
	LastName       string
	Phone          string
	Email          string
	DeliveryMethod string
	Governorate    string
	City           string
	Address        string
	Groups         []grouping.BookGroup
	Accessories    []models.OrderLine
	Totals         pricing.Totals
}

// OrderDocs are the four rendered order documents: plain text and HTML
// for the merchant and for the customer.
type OrderDocs struct {
	AdminText    string
	AdminHTML    string
	CustomerText string
	CustomerHTML string
}

// Order renders both recipients' documents from the grouped order view.
// The admin documents omit the customer courtesy line; the customer ones
// include it, phrased for the chosen delivery method. When delivery is
// pickup the region, city, and address fields collapse to "-" no matter
// what was submitted.
func (r *Renderer) Order(d OrderData) OrderDocs {
	pickup := d.DeliveryMethod == models.DeliveryPickup

	deliveryLabel := "Shipping"
	region, city, address := orDash(d.Governorate), orDash(d.City), orDash(d.Address)
	if pickup {
		deliveryLabel = "Pickup (Free)"
		region, city, address = "-", "-", "-"
	}

	itemsText := r.itemsText(d)
	itemsHTML := r.itemsHTML(d)
	totalsHTML := r.totalsHTML(d.Totals)

	courtesy := "We'll contact you shortly to confirm delivery details."
	if pickup {
		courtesy = "We'll contact you shortly to confirm pickup details."
	}

	adminText := fmt.Sprintf(`New Order #%s

Name: %s %s
Phone: %s
Email: %s

Delivery: %s
Region: %s
City: %s
Address: %s

Order:
%s

Subtotal: %s
Delivery: %s
Total: %s
`,
		d.Reference,
		d.FirstName, d.LastName,
		orDash(d.Phone),
		orDash(d.Email),
		deliveryLabel,
		region, city, address,
		itemsText,
		dollars(d.Totals.Subtotal),
		dollars(d.Totals.Delivery),
		dollars(d.Totals.Total),
	)

	var admin strings.Builder
	admin.WriteString(`<div style="font-family:Arial,Helvetica,sans-serif;color:#111;">` + "\n")
	fmt.Fprintf(&admin, "<h2 style=\"margin:0 0 12px 0;\">New Order #%s</h2>\n", escapeHTML(d.Reference))
	fmt.Fprintf(&admin, "<p><strong>Name:</strong> %s %s</p>\n", escapeHTML(d.FirstName), escapeHTML(d.LastName))
	fmt.Fprintf(&admin, "<p><strong>Phone:</strong> %s</p>\n", escapeHTML(orDash(d.Phone)))
	fmt.Fprintf(&admin, "<p><strong>Email:</strong> %s</p>\n", escapeHTML(orDash(d.Email)))
	fmt.Fprintf(&admin, "<p><strong>Delivery:</strong> %s</p>\n", escapeHTML(deliveryLabel))
	fmt.Fprintf(&admin, "<p><strong>Region:</strong> %s</p>\n", escapeHTML(region))
	fmt.Fprintf(&admin, "<p><strong>City:</strong> %s</p>\n", escapeHTML(city))
	fmt.Fprintf(&admin, "<p><strong>Address:</strong> %s</p>\n", escapeHTML(address))
	admin.WriteString(`<table cellpadding="0" cellspacing="0" border="0" width="100%" style="border-collapse:collapse;margin-top:12px;">` + "\n")
	admin.WriteString(itemsHTML)
	admin.WriteString("</table>\n")
	admin.WriteString(totalsHTML)
	admin.WriteString("</div>\n")

	customerText := fmt.Sprintf(`Hi %s,

Thanks — we received your order ✅

Order:
%s

Subtotal: %s
Delivery: %s
Total: %s

%s

— Charbel Abdallah
`,
		orFallback(d.FirstName, "there"),
		itemsText,
		dollars(d.Totals.Subtotal),
		dollars(d.Totals.Delivery),
		dollars(d.Totals.Total),
		courtesy,
	)

	var customer strings.Builder
	customer.WriteString(`<div style="font-family:Arial,Helvetica,sans-serif;background:#ffffff;color:#111;margin:0;padding:0;">` + "\n")
	customer.WriteString(`<div style="max-width:640px;margin:0 auto;padding:24px;">` + "\n")
	customer.WriteString(`<div style="border:1px solid #eee;border-radius:12px;padding:20px;">` + "\n")
	customer.WriteString(`<h2 style="margin:0 0 10px 0;font-size:20px;line-height:1.3;">Order received ✅</h2>` + "\n")
	fmt.Fprintf(&customer, `<p style="margin:0 0 18px 0;color:#444;font-size:14px;line-height:1.6;">Hi %s,<br/>Thanks — we received your order. Below is your summary.</p>`+"\n",
		escapeHTML(orFallback(d.FirstName, "there")))
	customer.WriteString(`<table cellpadding="0" cellspacing="0" border="0" width="100%" style="border-collapse:collapse;">` + "\n")
	customer.WriteString(itemsHTML)
	customer.WriteString("</table>\n")
	customer.WriteString(totalsHTML)
	fmt.Fprintf(&customer, `<p style="margin:18px 0 0 0;color:#444;font-size:14px;line-height:1.6;">%s</p>`+"\n", escapeHTML(courtesy))
	customer.WriteString(`<p style="margin:18px 0 0 0;color:#777;font-size:12px;line-height:1.6;">— Charbel Abdallah</p>` + "\n")
	customer.WriteString("</div>\n")
	customer.WriteString(`<div style="text-align:center;color:#888;font-size:12px;margin-top:14px;">If you don't see images, your email client may block them by default.</div>` + "\n")
	customer.WriteString("</div>\n</div>\n")

	return OrderDocs{
		AdminText:    adminText,
		AdminHTML:    admin.String(),
		CustomerText: customerText,
		CustomerHTML: customer.String(),
	}
}

// itemsText renders the grouped order as plain-text bullet lines with
// gift sub-rows indented under their book.
func (r *Renderer) itemsText(d OrderData) string {
	var b strings.Builder

	for _, g := range d.Groups {
		lineTotal := g.UnitPrice.Mul(decimal.NewFromInt(int64(g.Qty))).Round(2)
		fmt.Fprintf(&b, "• %s × %d = %s\n", g.Title, g.Qty, dollars(lineTotal))
		for _, gift := range g.Gifts {
			fmt.Fprintf(&b, "   FREE GIFT: %s × %d = FREE\n", gift.Title, gift.Qty)
		}
	}
	for _, a := range d.Accessories {
		lineTotal := a.Price.Mul(decimal.NewFromInt(int64(a.Quantity))).Round(2)
		fmt.Fprintf(&b, "• %s × %d = %s\n", a.Title, a.Quantity, dollars(lineTotal))
	}

	if b.Len() == 0 {
		return "(no items)"
	}
	return strings.TrimRight(b.String(), "\n")
}

// itemsHTML renders the grouped order as table rows shared by the admin
// and customer documents.
func (r *Renderer) itemsHTML(d OrderData) string {
	var b strings.Builder

	for _, g := range d.Groups {
		lineTotal := g.UnitPrice.Mul(decimal.NewFromInt(int64(g.Qty))).Round(2)
		b.WriteString(r.itemRow(g.Image, g.Title, g.Qty, dollars(lineTotal), false))
		for _, gift := range g.Gifts {
			b.WriteString(r.itemRow(gift.Image, gift.Title, gift.Qty, "FREE", true))
		}
	}
	for _, a := range d.Accessories {
		lineTotal := a.Price.Mul(decimal.NewFromInt(int64(a.Quantity))).Round(2)
		b.WriteString(r.itemRow(a.Image, a.Title, a.Quantity, dollars(lineTotal), false))
	}

	if b.Len() == 0 {
		return `<tr><td style="padding:12px 0;color:#666;">(no items)</td></tr>` + "\n"
	}
	return b.String()
}

func (r *Renderer) itemRow(image, title string, qty int, priceLabel string, gift bool) string {
	escTitle := escapeHTML(title)

	var cell string
	if img := r.resolveImage(image); img != "" {
		cell = fmt.Sprintf(`<img src="%s" alt="%s" width="72" height="72" style="display:block;object-fit:contain;border:1px solid #eee;border-radius:8px;background:#fff;" />`,
			escapeHTML(img), escTitle)
	} else {
		cell = `<div style="width:72px;height:72px;border:1px solid #eee;border-radius:8px;background:#fafafa;"></div>`
	}

	badge := ""
	if gift {
		badge = `<span style="display:inline-block;margin-left:8px;font-size:12px;font-weight:700;color:#b8860b;">FREE GIFT</span>`
	}

	return fmt.Sprintf(`<tr>
<td style="padding:12px 0;border-bottom:1px solid #eee;vertical-align:top;width:84px;">%s</td>
<td style="padding:12px 0 12px 12px;border-bottom:1px solid #eee;vertical-align:top;">
<div style="font-size:14px;font-weight:700;color:#111;line-height:1.35;">%s%s</div>
<div style="font-size:13px;color:#666;margin-top:4px;">Qty: %d</div>
</td>
<td style="padding:12px 0;border-bottom:1px solid #eee;vertical-align:top;text-align:right;white-space:nowrap;font-size:14px;font-weight:700;color:#111;">%s</td>
</tr>
`, cell, escTitle, badge, qty, escapeHTML(priceLabel))
}

func (r *Renderer) totalsHTML(t pricing.Totals) string {
	return fmt.Sprintf(`<table cellpadding="0" cellspacing="0" border="0" width="100%%" style="margin-top:16px;border-collapse:collapse;">
<tr>
<td style="padding:6px 0;color:#444;font-size:14px;">Subtotal</td>
<td style="padding:6px 0;color:#111;font-weight:700;font-size:14px;text-align:right;">%s</td>
</tr>
<tr>
<td style="padding:6px 0;color:#444;font-size:14px;">Delivery</td>
<td style="padding:6px 0;color:#111;font-weight:700;font-size:14px;text-align:right;">%s</td>
</tr>
<tr>
<td style="padding:10px 0;color:#111;font-size:15px;font-weight:800;border-top:1px solid #eee;">Total</td>
<td style="padding:10px 0;color:#111;font-size:15px;font-weight:800;text-align:right;border-top:1px solid #eee;">%s</td>
</tr>
</table>
`,
		escapeHTML(dollars(t.Subtotal)),
		escapeHTML(dollars(t.Delivery)),
		escapeHTML(dollars(t.Total)),
	)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func orFallback(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
