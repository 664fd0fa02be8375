package handlers

import (
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/invoice-builder/httpx"
)

func (h *InvoiceHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.store.History()
	if err != nil {
		h.log.Error().Err(err).Msg("load history")
		httpx.JSONError(w, http.StatusInternalServerError, "load_failed", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, history)
}

// Load replaces the working invoice with a saved snapshot.
func (h *InvoiceHandler) Load(w http.ResponseWriter, r *http.Request) {
	inv, err := h.store.Get(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
			return
		}
		h.log.Error().Err(err).Msg("load history entry")
		httpx.JSONError(w, http.StatusInternalServerError, "load_failed", nil)
		return
	}
	h.persist(w, inv)
}

// Duplicate copies a saved snapshot into a fresh working invoice with a new
// id, the next number in sequence and today's dates.
func (h *InvoiceHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	src, err := h.store.Get(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
			return
		}
		h.log.Error().Err(err).Msg("load history entry")
		httpx.JSONError(w, http.StatusInternalServerError, "load_failed", nil)
		return
	}
	history, err := h.store.History()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "load_failed", nil)
		return
	}
	dup := h.svc.Duplicate(src, len(history), time.Now())
	h.persist(w, dup)
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.PathValue("id")); err != nil {
		h.log.Error().Err(err).Msg("delete history entry")
		httpx.JSONError(w, http.StatusInternalServerError, "delete_failed", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
