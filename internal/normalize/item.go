package normalize

import (
	"strconv"
	"strings"

	"github.com/charbelabdallah/bookstore-backend/internal/models"
	"github.com/shopspring/decimal"
)

// Bounds on a single cart line. Raw item lists are capped at MaxItems
// before normalization; excess entries are discarded.
const (
	MaxItems    = 100
	maxIDLen    = 128
	maxTitleLen = 120
	maxImageLen = 2048
	maxQuantity = 20
)

var maxPrice = decimal.NewFromInt(10000)

// Item converts one raw cart entry into a validated order line. The second
// return value is false when the entry must be excluded from the order:
// missing id or title, or a quantity outside 1..20.
//
// Gift lines are always priced at zero no matter what was submitted, so a
// forged gift price can never inflate totals.
func Item(raw map[string]any) (models.OrderLine, bool) {
	id := Text(raw["id"], maxIDLen)
	title := Text(raw["title"], maxTitleLen)
	if id == "" || title == "" {
		return models.OrderLine{}, false
	}

	qty := intInRange(raw["quantity"], 1, maxQuantity)
	if qty == 0 {
		return models.OrderLine{}, false
	}

	isGift := Bool(raw["isGift"])

	price := decimal.Zero
	if !isGift {
		price = money(raw["price"])
	}

	kind := models.KindBook
	if Text(raw["kind"], 32) == models.KindAccessory {
		kind = models.KindAccessory
	}

	return models.OrderLine{
		ID:       id,
		Title:    title,
		Quantity: qty,
		Price:    price,
		Image:    ImageURL(raw["image"]),
		Kind:     kind,
		IsGift:   isGift,
		ParentID: Text(raw["parentId"], maxIDLen),
	}, true
}

// ImageURL accepts an absolute http(s) URL or a root-relative path and
// rejects everything else to "". Relative paths without a leading slash,
// protocol-relative "//" URLs, and data/script URIs would let a submitter
// inject unexpected remote content into outbound email once the renderer
// resolves paths against the site base URL.
func ImageURL(v any) string {
	s := Text(v, maxImageLen)
	switch {
	case s == "":
		return ""
	case strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://"):
		return s
	case strings.HasPrefix(s, "//"):
		return ""
	case s[0] == '/':
		return s
	default:
		return ""
	}
}

// intInRange parses an integer quantity constrained to [min, max].
// Non-integers and out-of-range values yield 0, which excludes the line.
func intInRange(v any, min, max int) int {
	var n int
	switch t := v.(type) {
	case float64:
		n = int(t)
		if float64(n) != t {
			return 0
		}
	case int:
		n = t
	case int64:
		n = int(t)
	case string:
		parsed, err := strconv.Atoi(t)
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}

	if n < min || n > max {
		return 0
	}
	return n
}

// money parses a non-negative decimal capped at 10000, rounded to cents.
// Anything unparseable or out of range yields zero.
func money(v any) decimal.Decimal {
	var d decimal.Decimal
	switch t := v.(type) {
	case float64:
		d = decimal.NewFromFloat(t)
	case int:
		d = decimal.NewFromInt(int64(t))
	case int64:
		d = decimal.NewFromInt(t)
	case string:
		parsed, err := decimal.NewFromString(t)
		if err != nil {
			return decimal.Zero
		}
		d = parsed
	default:
		return decimal.Zero
	}

	d = d.Round(2)
	if d.IsNegative() || d.GreaterThan(maxPrice) {
		return decimal.Zero
	}
	return d
}
