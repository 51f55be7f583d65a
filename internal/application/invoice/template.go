package invoice

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kirana/pdf-invoice-api/internal/domain/invoice"
	"github.com/kirana/pdf-invoice-api/internal/domain/shared"
)

//go:embed invoice_template.html
var invoiceTemplateHTML string

// TemplateEngine renders invoices to HTML. It uses Go's html/template
// package, so every caller-supplied string is escaped on output.
type TemplateEngine struct {
	tmpl *template.Template
}

// NewTemplateEngine parses the embedded invoice template
func NewTemplateEngine() (*TemplateEngine, error) {
	funcMap := template.FuncMap{
		// Money and number formatting
		"formatMoney":   formatMoney,
		"formatDecimal": formatDecimal,

		// String utilities
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"title": titleCase,
		"trim":  strings.TrimSpace,
	}

	tmpl, err := template.New("invoice").Funcs(funcMap).Parse(invoiceTemplateHTML)
	if err != nil {
		return nil, shared.WrapDomainError(shared.ErrCodeTemplateFailed, "failed to parse invoice template", err)
	}

	return &TemplateEngine{tmpl: tmpl}, nil
}

// templateData is the binding for the invoice template. Dates are already
// display-formatted strings at this point.
type templateData struct {
	ShopName    string
	ShopAddress string
	ShopPhone   string
	ShopGST     string
	ShopUPI     string

	CustomerName  string
	CustomerPhone string

	InvoiceNumber string
	InvoiceDate   string

	Items []templateItem

	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
	ShowTaxRow  bool

	Notes    string
	IsPaid   bool
	PaidDate string
}

type templateItem struct {
	Index  int
	Name   string
	Qty    decimal.Decimal
	Unit   string
	Price  decimal.Decimal
	Amount decimal.Decimal
}

// RenderInvoice executes the invoice template and returns the HTML document
func (e *TemplateEngine) RenderInvoice(ctx context.Context, inv *invoice.Invoice) (string, error) {
	if inv == nil {
		return "", shared.NewDomainError(shared.ErrCodeTemplateFailed, "invoice is nil")
	}
	if err := ctx.Err(); err != nil {
		return "", shared.WrapDomainError(shared.ErrCodeTemplateFailed, "context cancelled", err)
	}

	items := make([]templateItem, 0, len(inv.Items))
	for i, li := range inv.Items {
		items = append(items, templateItem{
			Index:  i + 1,
			Name:   li.Name,
			Qty:    li.Qty,
			Unit:   li.Unit,
			Price:  li.Price,
			Amount: li.Amount(),
		})
	}

	data := templateData{
		ShopName:      inv.ShopName,
		ShopAddress:   inv.ShopAddress,
		ShopPhone:     inv.ShopPhone,
		ShopGST:       inv.ShopGST,
		ShopUPI:       inv.ShopUPI,
		CustomerName:  inv.CustomerName,
		CustomerPhone: inv.CustomerPhone,
		InvoiceNumber: inv.Number,
		InvoiceDate:   inv.Date,
		Items:         items,
		Subtotal:      inv.Subtotal,
		TaxAmount:     inv.TaxAmount,
		TotalAmount:   inv.TotalAmount,
		ShowTaxRow:    !inv.TaxAmount.IsZero(),
		Notes:         inv.Notes,
		IsPaid:        inv.IsPaid,
		PaidDate:      inv.PaidDate,
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, data); err != nil {
		return "", shared.WrapDomainError(shared.ErrCodeTemplateFailed, "failed to execute invoice template", err)
	}

	return buf.String(), nil
}

// formatMoney formats a decimal value as currency with symbol
// Example: 1234.56 -> "₹1,234.56"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	parts := strings.Split(d.StringFixed(2), ".")
	intPart := parts[0]
	decPart := "00"
	if len(parts) > 1 {
		decPart = parts[1]
	}

	var result strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}

	return sign + "₹" + result.String() + "." + decPart
}

// formatDecimal formats a decimal with the given precision, trimming a
// trailing ".0..." when precision is zero
func formatDecimal(d decimal.Decimal, precision int) string {
	if precision == 0 && !d.Equal(d.Truncate(0)) {
		// Fractional quantities keep their digits even at precision 0.
		return d.String()
	}
	return d.StringFixed(int32(precision))
}

// titleCase converts a string to title case using proper Unicode handling
func titleCase(s string) string {
	caser := cases.Title(language.English)
	return caser.String(s)
}
