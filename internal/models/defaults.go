package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DueDays is the default payment window applied to fresh and duplicated
// invoices.
const DueDays = 30

// NumberFor formats the sequential invoice number for a given year.
func NumberFor(year, seq int) string {
	return fmt.Sprintf("FAC-%d-%03d", year, seq)
}

// DefaultInvoice builds the placeholder invoice used on first start and on
// "new invoice". It carries two sample items with totals already cached.
func DefaultInvoice(now time.Time) *Invoice {
	inv := &Invoice{
		ID:           uuid.NewString(),
		Number:       NumberFor(now.Year(), 1),
		IssueDate:    now,
		DueDate:      now.AddDate(0, 0, DueDays),
		PaymentTerms: "30dias",
		Currency:     "EUR",
		Company: PartyInfo{
			Name:    "Mi Empresa S.A.",
			Address: "Calle Principal 123, 28001 Madrid, España",
			Phone:   "+34 912 345 678",
			Email:   "contacto@miempresa.com",
			TaxID:   "20-12345678-9",
		},
		Client: PartyInfo{
			Name:    "Cliente Ejemplo S.L.",
			Address: "Avenida Secundaria 456, 08001 Barcelona, España",
			Phone:   "+34 934 567 890",
			Email:   "cliente@ejemplo.com",
			TaxID:   "30-87654321-0",
		},
		Items: []InvoiceItem{
			{ID: uuid.NewString(), Description: "Servicio de Consultoría", Quantity: 5, UnitPrice: 100, LineTotal: 500},
			{ID: uuid.NewString(), Description: "Desarrollo de Software", Quantity: 10, UnitPrice: 75, LineTotal: 750},
		},
		Discount:            DiscountConfig{Kind: DiscountPercentage, Value: 0},
		Tax:                 PresetTax(21),
		Notes:               "Gracias por su confianza. Esta factura es válida como comprobante fiscal.",
		PaymentInstructions: "Transferencia bancaria a la cuenta: ES12 3456 7890 1234 5678 9012\nBanco: Banco Ejemplo\nConcepto: Factura FAC-2024-001",
		CreatedAt:           now,
		Visible:             DefaultFieldVisibility(),
		AccentColor:         DefaultAccentColor,
	}
	inv.Totals = Totals{Subtotal: 1250, DiscountAmount: 0, TaxAmount: 262.5, Total: 1512.5}
	return inv
}
