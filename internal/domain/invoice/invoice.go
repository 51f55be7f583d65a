package invoice

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the display format for invoice dates (day first, as printed
// on the rendered document).
const DateLayout = "02/01/2006"

// Default values applied to fields the caller leaves empty.
const (
	DefaultShopName      = "My Kirana Store"
	DefaultCustomerName  = "Customer"
	DefaultInvoiceNumber = "INV-001"
	DefaultUnit          = "pcs"
)

// LineItem is a single row on an invoice.
type LineItem struct {
	Name  string
	Qty   decimal.Decimal
	Unit  string
	Price decimal.Decimal
}

// Amount returns the row amount (quantity x unit price). This is always
// recomputed here and never taken from the caller.
func (li LineItem) Amount() decimal.Decimal {
	return li.Qty.Mul(li.Price)
}

// Invoice holds everything needed to render one invoice document. Totals are
// caller-supplied and rendered as given; the service does not own invoice
// math beyond the per-row amounts.
type Invoice struct {
	ShopName    string
	ShopAddress string
	ShopPhone   string
	ShopGST     string
	ShopUPI     string

	CustomerName  string
	CustomerPhone string

	Number string
	Date   string

	Items []LineItem

	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal

	Notes    string
	IsPaid   bool
	PaidDate string
}

// ApplyDefaults fills empty fields with their documented defaults. Dates
// default to the given reference time.
func (inv *Invoice) ApplyDefaults(now time.Time) {
	if inv.ShopName == "" {
		inv.ShopName = DefaultShopName
	}
	if inv.CustomerName == "" {
		inv.CustomerName = DefaultCustomerName
	}
	if inv.Number == "" {
		inv.Number = DefaultInvoiceNumber
	}
	if inv.Date == "" {
		inv.Date = now.Format(DateLayout)
	}
	if inv.IsPaid && inv.PaidDate == "" {
		inv.PaidDate = now.Format(DateLayout)
	}
	for i := range inv.Items {
		if inv.Items[i].Unit == "" {
			inv.Items[i].Unit = DefaultUnit
		}
	}
}

// LineTotal sums the recomputed row amounts across all items. Used to detect
// (and only log) discrepancies against the caller-supplied subtotal.
func (inv *Invoice) LineTotal() decimal.Decimal {
	total := decimal.Zero
	for _, li := range inv.Items {
		total = total.Add(li.Amount())
	}
	return total
}

// Filename returns the deterministic artifact name for this invoice. The
// same invoice number always maps to the same file, so resubmitting a number
// overwrites the previous render.
func (inv *Invoice) Filename() string {
	name := SanitizeNumber(inv.Number)
	if name == "" {
		name = "invoice"
	}
	return name + ".pdf"
}

// SanitizeNumber strips every rune outside [A-Za-z0-9-] from an invoice
// number. The result is safe to use as a flat filename component.
func SanitizeNumber(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '-':
			return r
		default:
			return -1
		}
	}, s)
}
