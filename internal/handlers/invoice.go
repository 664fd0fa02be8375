package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/diewo77/invoice-builder/httpx"
	"github.com/diewo77/invoice-builder/i18n"
	"github.com/diewo77/invoice-builder/internal/export"
	"github.com/diewo77/invoice-builder/internal/models"
	"github.com/diewo77/invoice-builder/internal/services"
	"github.com/diewo77/invoice-builder/internal/store"
	"github.com/diewo77/invoice-builder/internal/validation"
)

// InvoiceHandler exposes the invoice operations over JSON. Every mutation
// follows the same shape: load current, apply through the service (which
// recalculates), persist, return the updated snapshot.
type InvoiceHandler struct {
	store       store.Store
	svc         *services.InvoiceService
	exporter    *export.Manager
	defaultLang string
	log         zerolog.Logger
}

func NewInvoiceHandler(st store.Store, svc *services.InvoiceService, exporter *export.Manager, defaultLang string, log zerolog.Logger) *InvoiceHandler {
	if !i18n.Supported(defaultLang) {
		defaultLang = i18n.DefaultLanguage
	}
	return &InvoiceHandler{store: st, svc: svc, exporter: exporter, defaultLang: defaultLang, log: log}
}

// Register mounts all routes on the mux.
func (h *InvoiceHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/invoice", h.Current)
	mux.HandleFunc("PATCH /api/invoice", h.Update)
	mux.HandleFunc("POST /api/invoice/items", h.AddItem)
	mux.HandleFunc("PATCH /api/invoice/items/{id}", h.UpdateItem)
	mux.HandleFunc("DELETE /api/invoice/items/{id}", h.RemoveItem)
	mux.HandleFunc("POST /api/invoice/save", h.Save)
	mux.HandleFunc("POST /api/invoice/new", h.New)

	mux.HandleFunc("GET /api/history", h.History)
	mux.HandleFunc("POST /api/history/{id}/load", h.Load)
	mux.HandleFunc("POST /api/history/{id}/duplicate", h.Duplicate)
	mux.HandleFunc("DELETE /api/history/{id}", h.Delete)

	mux.HandleFunc("GET /api/catalogs", h.Catalogs)
	mux.HandleFunc("GET /invoice/preview", h.Preview)
	mux.HandleFunc("POST /api/export", h.Export)
	mux.HandleFunc("GET /api/export/status", h.ExportStatus)
}

// lang picks the render language: an explicit query parameter wins, then
// the Accept-Language header, then the configured default.
func (h *InvoiceHandler) lang(r *http.Request) string {
	if l := r.URL.Query().Get("lang"); i18n.Supported(l) {
		return l
	}
	if header := r.Header.Get("Accept-Language"); header != "" {
		return i18n.DetectLanguage(header)
	}
	return h.defaultLang
}

func (h *InvoiceHandler) current(w http.ResponseWriter) *models.Invoice {
	inv, err := h.store.Current()
	if err != nil {
		h.log.Error().Err(err).Msg("load current invoice")
		httpx.JSONError(w, http.StatusInternalServerError, "load_failed", nil)
		return nil
	}
	return inv
}

func (h *InvoiceHandler) persist(w http.ResponseWriter, inv *models.Invoice) {
	if err := h.store.SetCurrent(inv); err != nil {
		h.log.Error().Err(err).Msg("persist current invoice")
		httpx.JSONError(w, http.StatusInternalServerError, "save_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *InvoiceHandler) Current(w http.ResponseWriter, r *http.Request) {
	if inv := h.current(w); inv != nil {
		httpx.JSON(w, http.StatusOK, inv)
	}
}

// invoicePatch is a partial update of the working invoice. Dates travel as
// "2006-01-02" strings; parties are replaced whole.
type invoicePatch struct {
	Number              *string                `json:"number,omitempty"`
	IssueDate           *string                `json:"issue_date,omitempty"`
	DueDate             *string                `json:"due_date,omitempty"`
	PaymentTerms        *string                `json:"payment_terms,omitempty"`
	Currency            *string                `json:"currency,omitempty"`
	Company             *models.PartyInfo      `json:"company,omitempty"`
	Client              *models.PartyInfo      `json:"client,omitempty"`
	Discount            *models.DiscountConfig `json:"discount,omitempty"`
	Tax                 *models.TaxRate        `json:"tax,omitempty"`
	CustomTaxRate       *float64               `json:"custom_tax_rate,omitempty"`
	Notes               *string                `json:"notes,omitempty"`
	PaymentInstructions *string                `json:"payment_instructions,omitempty"`
	AccentColor         *string                `json:"accent_color,omitempty"`
	VisibleFields       map[string]bool        `json:"visible_fields,omitempty"`
}

func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch invoicePatch
	if err := httpx.Decode(r, &patch); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	v := make(validation.Violations)
	if patch.Currency != nil {
		codes := make([]string, 0, len(models.Currencies))
		for _, c := range models.Currencies {
			codes = append(codes, c.Code)
		}
		validation.OneOf("currency", *patch.Currency, codes, v)
	}
	if patch.PaymentTerms != nil {
		keys := make([]string, 0, len(models.PaymentTermsList))
		for _, p := range models.PaymentTermsList {
			keys = append(keys, p.Key)
		}
		validation.OneOf("payment_terms", *patch.PaymentTerms, keys, v)
	}
	if patch.AccentColor != nil {
		// A blank accent would silently fall back to the default color at
		// render time; reject it at the boundary instead.
		validation.Required("accent_color", *patch.AccentColor, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", v)
		return
	}

	inv := h.current(w)
	if inv == nil {
		return
	}

	if patch.Number != nil {
		inv.Number = *patch.Number
	}
	if patch.IssueDate != nil {
		if d, err := time.Parse("2006-01-02", *patch.IssueDate); err == nil {
			inv.IssueDate = d
		}
	}
	if patch.DueDate != nil {
		if d, err := time.Parse("2006-01-02", *patch.DueDate); err == nil {
			inv.DueDate = d
		}
	}
	if patch.PaymentTerms != nil {
		inv.PaymentTerms = *patch.PaymentTerms
	}
	if patch.Currency != nil {
		inv.Currency = *patch.Currency
	}
	if patch.Company != nil {
		inv.Company = *patch.Company
	}
	if patch.Client != nil {
		inv.Client = *patch.Client
	}
	if patch.Notes != nil {
		inv.Notes = *patch.Notes
	}
	if patch.PaymentInstructions != nil {
		inv.PaymentInstructions = *patch.PaymentInstructions
	}
	if patch.AccentColor != nil {
		inv.AccentColor = *patch.AccentColor
	}
	for key, shown := range patch.VisibleFields {
		inv.Visible.Set(key, shown)
	}
	if patch.Discount != nil {
		h.svc.SetDiscount(inv, *patch.Discount)
	}
	if patch.Tax != nil {
		h.svc.SetTax(inv, *patch.Tax)
	}
	if patch.CustomTaxRate != nil {
		h.svc.SetCustomTaxRate(inv, *patch.CustomTaxRate)
	}

	h.persist(w, inv)
}

func (h *InvoiceHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	inv := h.current(w)
	if inv == nil {
		return
	}
	h.svc.AddItem(inv)
	h.persist(w, inv)
}

func (h *InvoiceHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var patch services.ItemPatch
	if err := httpx.Decode(r, &patch); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	v := make(validation.Violations)
	if patch.Quantity != nil {
		validation.NonNegative("quantity", *patch.Quantity, v)
	}
	if patch.UnitPrice != nil {
		validation.NonNegative("unit_price", *patch.UnitPrice, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "validation_failed", v)
		return
	}

	inv := h.current(w)
	if inv == nil {
		return
	}
	if !h.svc.UpdateItem(inv, r.PathValue("id"), patch) {
		httpx.JSONError(w, http.StatusNotFound, "item_not_found", nil)
		return
	}
	h.persist(w, inv)
}

func (h *InvoiceHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	inv := h.current(w)
	if inv == nil {
		return
	}
	// Removing the last remaining item is a silent no-op; the unchanged
	// invoice comes back either way.
	h.svc.RemoveItem(inv, r.PathValue("id"))
	h.persist(w, inv)
}

func (h *InvoiceHandler) Save(w http.ResponseWriter, r *http.Request) {
	inv := h.current(w)
	if inv == nil {
		return
	}
	inv.CreatedAt = time.Now()
	if err := h.store.Save(inv); err != nil {
		h.log.Error().Err(err).Str("id", inv.ID).Msg("save to history")
		httpx.JSONError(w, http.StatusInternalServerError, "save_failed", nil)
		return
	}
	h.persist(w, inv)
}

func (h *InvoiceHandler) New(w http.ResponseWriter, r *http.Request) {
	history, err := h.store.History()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "load_failed", nil)
		return
	}
	inv := h.svc.NewInvoice(history, time.Now())
	h.persist(w, inv)
}
