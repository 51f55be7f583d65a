package invoice

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirana/pdf-invoice-api/internal/domain/invoice"
)

func testInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		ShopName:      "My Kirana Store",
		ShopAddress:   "12 Market Road",
		ShopPhone:     "9876543210",
		CustomerName:  "Asha",
		Number:        "INV-42",
		Date:          "15/01/2026",
		Items: []invoice.LineItem{
			{Name: "Rice", Qty: decimal.NewFromInt(2), Unit: "kg", Price: decimal.NewFromInt(60)},
			{Name: "Dal", Qty: decimal.NewFromInt(1), Unit: "kg", Price: decimal.NewFromInt(140)},
		},
		Subtotal:    decimal.NewFromInt(260),
		TaxAmount:   decimal.Zero,
		TotalAmount: decimal.NewFromInt(260),
	}
}

func TestTemplateEngine_RenderInvoice(t *testing.T) {
	engine, err := NewTemplateEngine()
	require.NoError(t, err)

	t.Run("renders core fields", func(t *testing.T) {
		html, err := engine.RenderInvoice(context.Background(), testInvoice())
		require.NoError(t, err)

		assert.Contains(t, html, "My Kirana Store")
		assert.Contains(t, html, "INV-42")
		assert.Contains(t, html, "15/01/2026")
		assert.Contains(t, html, "Asha")
		assert.Contains(t, html, "Rice")
		assert.Contains(t, html, "₹60.00")
		assert.Contains(t, html, "₹120.00") // 2 x 60 recomputed row amount
		assert.Contains(t, html, "₹260.00")
	})

	t.Run("tax row hidden when tax is zero", func(t *testing.T) {
		html, err := engine.RenderInvoice(context.Background(), testInvoice())
		require.NoError(t, err)
		assert.NotContains(t, html, ">Tax<")
	})

	t.Run("tax row shown when tax is non-zero", func(t *testing.T) {
		inv := testInvoice()
		inv.TaxAmount = decimal.NewFromFloat(18.5)
		html, err := engine.RenderInvoice(context.Background(), inv)
		require.NoError(t, err)
		assert.Contains(t, html, ">Tax<")
		assert.Contains(t, html, "₹18.50")
	})

	t.Run("paid stamp only when paid", func(t *testing.T) {
		// The stylesheet always carries the .paid-stamp rule; only the
		// rendered element marks a paid invoice.
		inv := testInvoice()
		html, err := engine.RenderInvoice(context.Background(), inv)
		require.NoError(t, err)
		assert.NotContains(t, html, `class="paid-stamp"`)
		assert.NotContains(t, html, ">PAID<")

		inv.IsPaid = true
		inv.PaidDate = "16/01/2026"
		html, err = engine.RenderInvoice(context.Background(), inv)
		require.NoError(t, err)
		assert.Contains(t, html, `class="paid-stamp"`)
		assert.Contains(t, html, "16/01/2026")
	})

	t.Run("gstin and upi lines are conditional", func(t *testing.T) {
		inv := testInvoice()
		html, err := engine.RenderInvoice(context.Background(), inv)
		require.NoError(t, err)
		assert.NotContains(t, html, "GSTIN")
		assert.NotContains(t, html, "Pay via UPI")

		inv.ShopGST = "29ABCDE1234F1Z5"
		inv.ShopUPI = "shop@upi"
		html, err = engine.RenderInvoice(context.Background(), inv)
		require.NoError(t, err)
		assert.Contains(t, html, "GSTIN: 29ABCDE1234F1Z5")
		assert.Contains(t, html, "shop@upi")
	})

	t.Run("escapes caller-supplied markup", func(t *testing.T) {
		inv := testInvoice()
		inv.Items[0].Name = "<script>alert(1)</script>"
		html, err := engine.RenderInvoice(context.Background(), inv)
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>alert(1)</script>")
		assert.Contains(t, html, "&lt;script&gt;")
	})

	t.Run("nil invoice is an error", func(t *testing.T) {
		_, err := engine.RenderInvoice(context.Background(), nil)
		assert.Error(t, err)
	})
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name string
		in   decimal.Decimal
		want string
	}{
		{"zero", decimal.Zero, "₹0.00"},
		{"two decimals", decimal.NewFromFloat(60.5), "₹60.50"},
		{"thousand separators", decimal.NewFromFloat(1234567.89), "₹1,234,567.89"},
		{"negative", decimal.NewFromFloat(-42.1), "-₹42.10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatMoney(tt.in))
		})
	}
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "2", formatDecimal(decimal.NewFromInt(2), 0))
	assert.Equal(t, "2.50", formatDecimal(decimal.NewFromFloat(2.5), 2))
	assert.Equal(t, "2.5", formatDecimal(decimal.NewFromFloat(2.5), 0))
}
