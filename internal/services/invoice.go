package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/diewo77/invoice-builder/internal/models"
)

// InvoiceService encapsulates invoice business logic: totals recalculation,
// item operations, numbering, and duplication. It never touches storage;
// callers persist the mutated invoice themselves.
type InvoiceService struct{}

func NewInvoiceService() *InvoiceService { return &InvoiceService{} }

// CalculateTotals derives the four totals from the given inputs. It is a
// pure function: no rounding, no clamping, no failure modes. Each item's
// LineTotal is trusted as-is; keeping it equal to quantity × unit price is
// the item update operation's job.
func CalculateTotals(items []models.InvoiceItem, tax models.TaxRate, discount models.DiscountConfig) models.Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.LineTotal
	}
	discountAmount := discount.Amount(subtotal)
	taxBase := subtotal - discountAmount
	taxAmount := taxBase * tax.Effective() / 100
	return models.Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxAmount:      taxAmount,
		Total:          taxBase + taxAmount,
	}
}

// Recalculate overwrites the invoice's cached totals in one step. Every
// mutation touching items, discount, or tax ends with this call so callers
// never observe stale totals.
func (s *InvoiceService) Recalculate(inv *models.Invoice) {
	inv.Totals = CalculateTotals(inv.Items, inv.Tax, inv.Discount)
}

// AddItem appends a fresh empty line item and recalculates.
func (s *InvoiceService) AddItem(inv *models.Invoice) models.InvoiceItem {
	item := models.InvoiceItem{
		ID:       uuid.NewString(),
		Quantity: 1,
	}
	inv.Items = append(inv.Items, item)
	s.Recalculate(inv)
	return item
}

// ItemPatch is a partial update for one line item. Nil fields are left
// unchanged.
type ItemPatch struct {
	Description *string  `json:"description,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	UnitPrice   *float64 `json:"unit_price,omitempty"`
}

// UpdateItem applies a patch to the item with the given id, re-deriving its
// line total, then recalculates the invoice. Returns false when no item has
// that id.
func (s *InvoiceService) UpdateItem(inv *models.Invoice, id string, patch ItemPatch) bool {
	for i := range inv.Items {
		if inv.Items[i].ID != id {
			continue
		}
		it := &inv.Items[i]
		if patch.Description != nil {
			it.Description = *patch.Description
		}
		if patch.Quantity != nil {
			it.Quantity = *patch.Quantity
		}
		if patch.UnitPrice != nil {
			it.UnitPrice = *patch.UnitPrice
		}
		it.LineTotal = it.Quantity * it.UnitPrice
		s.Recalculate(inv)
		return true
	}
	return false
}

// RemoveItem deletes the item with the given id. The last remaining item
// can never be removed: the call is a silent no-op so the item count never
// reaches zero through deletion.
func (s *InvoiceService) RemoveItem(inv *models.Invoice, id string) bool {
	if len(inv.Items) <= 1 {
		return false
	}
	for i := range inv.Items {
		if inv.Items[i].ID == id {
			inv.Items = append(inv.Items[:i], inv.Items[i+1:]...)
			s.Recalculate(inv)
			return true
		}
	}
	return false
}

// SetDiscount replaces the discount configuration and recalculates.
func (s *InvoiceService) SetDiscount(inv *models.Invoice, d models.DiscountConfig) {
	inv.Discount = d
	s.Recalculate(inv)
}

// SetTax switches the tax configuration. Entering custom mode from a preset
// assigns the default custom rate when the caller supplied none; switching
// back to a preset drops any previous custom rate.
func (s *InvoiceService) SetTax(inv *models.Invoice, t models.TaxRate) {
	if t.Custom && t.Rate == 0 {
		if inv.Tax.Custom {
			t.Rate = inv.Tax.Rate
		} else {
			t.Rate = models.DefaultCustomTaxRate
		}
	}
	inv.Tax = t
	s.Recalculate(inv)
}

// SetCustomTaxRate updates the rate while already in custom mode. It is a
// no-op for preset mode.
func (s *InvoiceService) SetCustomTaxRate(inv *models.Invoice, rate float64) {
	if !inv.Tax.Custom {
		return
	}
	inv.Tax.Rate = rate
	s.Recalculate(inv)
}

// NewInvoice builds a fresh default invoice whose number continues the
// sequence of the last saved invoice's number.
func (s *InvoiceService) NewInvoice(history []models.Invoice, now time.Time) *models.Invoice {
	inv := models.DefaultInvoice(now)
	last := 0
	if len(history) > 0 {
		last = trailingSequence(history[len(history)-1].Number)
	}
	inv.Number = models.NumberFor(now.Year(), last+1)
	return inv
}

// Duplicate copies a saved invoice into a new working invoice: new id, next
// sequential number after the current history length, dates reset to today
// and today + the default due window. Everything else is copied verbatim.
func (s *InvoiceService) Duplicate(src *models.Invoice, historyLen int, now time.Time) *models.Invoice {
	dup := src.Clone()
	dup.ID = uuid.NewString()
	dup.Number = models.NumberFor(now.Year(), historyLen+1)
	dup.IssueDate = now
	dup.DueDate = now.AddDate(0, 0, models.DueDays)
	dup.CreatedAt = now
	return dup
}

// trailingSequence parses the last dash-separated segment of an invoice
// number as an integer, returning 0 when it is not numeric.
func trailingSequence(number string) int {
	parts := strings.Split(number, "-")
	n, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return n
}
