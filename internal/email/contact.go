package email

import (
	"fmt"
	"strings"
)

// ContactData is a validated contact-form submission.
type ContactData struct {
	Name    string
	Email   string
	Message string
}

// ContactDocs are the rendered contact documents for both recipients.
type ContactDocs struct {
	AdminText    string
	AdminHTML    string
	CustomerText string
	CustomerHTML string
}

// Contact renders the merchant notification and the customer
// acknowledgment for a contact-form message.
func (r *Renderer) Contact(d ContactData) ContactDocs {
	adminText := fmt.Sprintf(`New Contact Message

Name: %s
Email: %s

Message:
%s
`, d.Name, d.Email, d.Message)

	var admin strings.Builder
	admin.WriteString(`<div style="font-family:Arial,sans-serif;">` + "\n")
	admin.WriteString("<h2>New Contact Message</h2>\n")
	fmt.Fprintf(&admin, "<p><strong>Name:</strong> %s</p>\n", escapeHTML(d.Name))
	fmt.Fprintf(&admin, "<p><strong>Email:</strong> %s</p>\n", escapeHTML(d.Email))
	admin.WriteString("<p><strong>Message:</strong></p>\n")
	fmt.Fprintf(&admin, "<p>%s</p>\n", htmlLines(d.Message))
	admin.WriteString("</div>\n")

	customerText := fmt.Sprintf(`Hi %s,

Thank you for reaching out.
We received your message and will respond within 2-3 business days.

Your message:
%s

— Charbel Abdallah
`, d.Name, d.Message)

	var customer strings.Builder
	customer.WriteString(`<div style="font-family:Arial,sans-serif;">` + "\n")
	fmt.Fprintf(&customer, "<h2>Hi %s,</h2>\n", escapeHTML(d.Name))
	customer.WriteString("<p>Thank you for reaching out.</p>\n")
	customer.WriteString("<p>We received your message and will respond within 2-3 business days.</p>\n")
	customer.WriteString("<hr />\n")
	customer.WriteString("<p><strong>Your message:</strong></p>\n")
	fmt.Fprintf(&customer, "<p>%s</p>\n", htmlLines(d.Message))
	customer.WriteString("<br/>\n<p>— Charbel Abdallah</p>\n")
	customer.WriteString("</div>\n")

	return ContactDocs{
		AdminText:    adminText,
		AdminHTML:    admin.String(),
		CustomerText: customerText,
		CustomerHTML: customer.String(),
	}
}
