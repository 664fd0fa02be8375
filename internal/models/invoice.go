package models

import (
	"encoding/json"
	"time"
)

// DiscountKind selects how DiscountConfig.Value is interpreted.
type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

// DiscountConfig is an invoice-level discount. Percentage values are
// conceptually 0..100 and fixed values are absolute amounts, but neither is
// enforced: a discount larger than the subtotal produces a negative total
// and that result is kept as-is.
type DiscountConfig struct {
	Kind  DiscountKind `json:"kind"`
	Value float64      `json:"value"`
}

// Amount resolves the discount against a subtotal.
func (d DiscountConfig) Amount(subtotal float64) float64 {
	if d.Kind == DiscountPercentage {
		return subtotal * d.Value / 100
	}
	return d.Value
}

// CustomTaxSentinel is the stored rate value meaning "use the custom rate".
// It only exists on the wire; in memory the distinction is the Custom tag.
const CustomTaxSentinel = -1

// DefaultCustomTaxRate is assigned when an invoice enters custom-tax mode
// without a previously chosen rate.
const DefaultCustomTaxRate = 10

// TaxRate is either one of the preset percentage rates or a user-entered
// custom percentage.
type TaxRate struct {
	Custom bool
	Rate   float64
}

// PresetTax returns a preset tax rate.
func PresetTax(rate float64) TaxRate { return TaxRate{Rate: rate} }

// CustomTax returns a custom tax rate.
func CustomTax(rate float64) TaxRate { return TaxRate{Custom: true, Rate: rate} }

// Effective returns the percentage applied to the tax base.
func (t TaxRate) Effective() float64 { return t.Rate }

type taxRateJSON struct {
	Rate       float64  `json:"rate"`
	CustomRate *float64 `json:"custom_rate,omitempty"`
}

// MarshalJSON keeps the stored form compatible with snapshots written before
// the tagged representation existed: custom mode is encoded as rate = -1
// plus a separate custom_rate field.
func (t TaxRate) MarshalJSON() ([]byte, error) {
	if t.Custom {
		r := t.Rate
		return json.Marshal(taxRateJSON{Rate: CustomTaxSentinel, CustomRate: &r})
	}
	return json.Marshal(taxRateJSON{Rate: t.Rate})
}

// UnmarshalJSON decodes both preset and sentinel forms. A sentinel without a
// custom rate (snapshots predating the custom field) is backfilled to the
// default custom rate.
func (t *TaxRate) UnmarshalJSON(data []byte) error {
	var raw taxRateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Rate == CustomTaxSentinel {
		t.Custom = true
		if raw.CustomRate != nil {
			t.Rate = *raw.CustomRate
		} else {
			t.Rate = DefaultCustomTaxRate
		}
		return nil
	}
	t.Custom = false
	t.Rate = raw.Rate
	return nil
}

// PartyInfo holds the free-text identity block of one invoice party.
// No field is validated or required; empty fields are omitted from output.
type PartyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	TaxID   string `json:"tax_id"`
	Logo    []byte `json:"logo,omitempty"`
}

// InvoiceItem is one line of the invoice. LineTotal is derived from
// Quantity × UnitPrice by the item update operation and is never settable
// on its own.
type InvoiceItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

// Totals are the cached derived amounts stored on the invoice. They are
// overwritten by Recalculate whenever items, discount, or tax change, and
// persisted with the rest of the snapshot.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	Total          float64 `json:"total"`
}

// DefaultAccentColor is the accent used for bands and emphasis in rendered
// documents.
const DefaultAccentColor = "#4f46e5"

// Invoice is a full invoice snapshot: identity, parties, items, pricing
// configuration, cached totals, and per-field output visibility.
type Invoice struct {
	ID           string    `json:"id"`
	Number       string    `json:"number"`
	IssueDate    time.Time `json:"issue_date"`
	DueDate      time.Time `json:"due_date"`
	PaymentTerms string    `json:"payment_terms"`
	Currency     string    `json:"currency"`

	Company PartyInfo `json:"company"`
	Client  PartyInfo `json:"client"`

	Items    []InvoiceItem  `json:"items"`
	Discount DiscountConfig `json:"discount"`
	Tax      TaxRate        `json:"tax"`
	Totals

	Notes               string `json:"notes"`
	PaymentInstructions string `json:"payment_instructions"`

	CreatedAt   time.Time       `json:"created_at"`
	Visible     FieldVisibility `json:"visible_fields"`
	AccentColor string          `json:"accent_color"`
}

// Clone returns a deep copy of the invoice.
func (inv *Invoice) Clone() *Invoice {
	out := *inv
	out.Items = make([]InvoiceItem, len(inv.Items))
	copy(out.Items, inv.Items)
	if inv.Company.Logo != nil {
		out.Company.Logo = append([]byte(nil), inv.Company.Logo...)
	}
	if inv.Client.Logo != nil {
		out.Client.Logo = append([]byte(nil), inv.Client.Logo...)
	}
	return &out
}
