package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/diewo77/invoice-builder/httpx"
	"github.com/diewo77/invoice-builder/i18n"
	"github.com/diewo77/invoice-builder/internal/export"
	"github.com/diewo77/invoice-builder/internal/layout"
	"github.com/diewo77/invoice-builder/internal/models"
	"github.com/diewo77/invoice-builder/internal/render"
)

// Export kicks off a background PDF export of the working invoice. Only one
// export runs at a time; a second request while busy gets a 409.
func (h *InvoiceHandler) Export(w http.ResponseWriter, r *http.Request) {
	inv := h.current(w)
	if inv == nil {
		return
	}
	// The export outlives the request, so its context must not die with it.
	filename, err := h.exporter.Start(context.WithoutCancel(r.Context()), inv, h.lang(r))
	if err != nil {
		if errors.Is(err, export.ErrExportInFlight) {
			httpx.JSONError(w, http.StatusConflict, "export_in_flight", nil)
			return
		}
		h.log.Error().Err(err).Msg("start export")
		httpx.JSONError(w, http.StatusInternalServerError, "export_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]string{"filename": filename})
}

// ExportStatus reports whether an export is running, so a client can
// disable its export trigger while one is pending.
func (h *InvoiceHandler) ExportStatus(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]bool{"busy": h.exporter.Busy()})
}

// Preview renders the working invoice as a print-ready HTML page.
func (h *InvoiceHandler) Preview(w http.ResponseWriter, r *http.Request) {
	inv := h.current(w)
	if inv == nil {
		return
	}
	doc := layout.Compose(inv, h.lang(r))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.WriteHTML(doc, w); err != nil {
		h.log.Error().Err(err).Msg("render preview")
	}
}

type catalogEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Catalogs returns the localized option lists the invoice form needs.
func (h *InvoiceHandler) Catalogs(w http.ResponseWriter, r *http.Request) {
	l := h.lang(r)

	currencies := make([]catalogEntry, 0, len(models.Currencies))
	for _, c := range models.Currencies {
		currencies = append(currencies, catalogEntry{Key: c.Code, Label: c.Label(l)})
	}
	taxes := make([]catalogEntry, 0, len(models.TaxPresets))
	for _, p := range models.TaxPresets {
		key := strconv.FormatFloat(p.Rate, 'f', -1, 64)
		taxes = append(taxes, catalogEntry{Key: key, Label: p.Name(l)})
	}
	terms := make([]catalogEntry, 0, len(models.PaymentTermsList))
	for _, p := range models.PaymentTermsList {
		terms = append(terms, catalogEntry{Key: p.Key, Label: p.Name(l)})
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"language":      l,
		"languages":     i18n.Languages,
		"currencies":    currencies,
		"tax_presets":   taxes,
		"payment_terms": terms,
	})
}
