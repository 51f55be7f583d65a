package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/kirana/pdf-invoice-api/internal/domain/invoice"
)

// LineItemRequest is one invoice row as submitted by the caller
type LineItemRequest struct {
	Name  string          `json:"name"`
	Qty   decimal.Decimal `json:"qty"`
	Unit  string          `json:"unit"`
	Price decimal.Decimal `json:"price"`
}

// GenerateRequest is the payload for generating an invoice PDF. Every field
// except the line items is optional; empty fields fall back to defaults.
type GenerateRequest struct {
	ShopName    string `json:"shop_name"`
	ShopAddress string `json:"shop_address"`
	ShopPhone   string `json:"shop_phone"`
	ShopGST     string `json:"shop_gst"`
	ShopUPI     string `json:"shop_upi"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`

	InvoiceNumber string `json:"invoice_number"`
	InvoiceDate   string `json:"invoice_date"`

	Items []LineItemRequest `json:"items"`

	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`

	Notes    string `json:"notes"`
	IsPaid   bool   `json:"is_paid"`
	PaidDate string `json:"paid_date"`
}

// ToDomain converts the request into a domain invoice
func (r *GenerateRequest) ToDomain() *invoice.Invoice {
	items := make([]invoice.LineItem, 0, len(r.Items))
	for _, li := range r.Items {
		items = append(items, invoice.LineItem{
			Name:  li.Name,
			Qty:   li.Qty,
			Unit:  li.Unit,
			Price: li.Price,
		})
	}

	return &invoice.Invoice{
		ShopName:      r.ShopName,
		ShopAddress:   r.ShopAddress,
		ShopPhone:     r.ShopPhone,
		ShopGST:       r.ShopGST,
		ShopUPI:       r.ShopUPI,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Number:        r.InvoiceNumber,
		Date:          r.InvoiceDate,
		Items:         items,
		Subtotal:      r.Subtotal,
		TaxAmount:     r.TaxAmount,
		TotalAmount:   r.TotalAmount,
		Notes:         r.Notes,
		IsPaid:        r.IsPaid,
		PaidDate:      r.PaidDate,
	}
}

// GenerateResult describes a stored invoice PDF. PDFURL is the short URL
// when shortening succeeded, otherwise it equals OriginalURL.
type GenerateResult struct {
	InvoiceNumber string
	PDFURL        string
	OriginalURL   string
	Filename      string
}
