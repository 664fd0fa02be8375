package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/invoice-builder/internal/export"
	"github.com/diewo77/invoice-builder/internal/models"
	"github.com/diewo77/invoice-builder/internal/services"
	"github.com/diewo77/invoice-builder/internal/store"
)

func testServer(t *testing.T) (*http.ServeMux, store.Store) {
	t.Helper()
	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "test.db")),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	st, err := store.NewGormStore(db, zerolog.Nop())
	require.NoError(t, err)

	exporter := export.NewManager(t.TempDir(), zerolog.Nop(), nil)
	h := NewInvoiceHandler(st, services.NewInvoiceService(), exporter, "es", zerolog.Nop())
	mux := http.NewServeMux()
	h.Register(mux)
	return mux, st
}

func do(t *testing.T, mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeInvoice(t *testing.T, rec *httptest.ResponseRecorder) models.Invoice {
	t.Helper()
	var inv models.Invoice
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inv))
	return inv
}

func TestGetInvoice_Default(t *testing.T) {
	mux, _ := testServer(t)
	rec := do(t, mux, http.MethodGet, "/api/invoice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	inv := decodeInvoice(t, rec)
	assert.NotEmpty(t, inv.ID)
	assert.Len(t, inv.Items, 2)
	assert.Equal(t, 1512.5, inv.Total)
}

func TestPatchInvoice_FieldsAndRecalc(t *testing.T) {
	mux, st := testServer(t)
	rec := do(t, mux, http.MethodPatch, "/api/invoice", map[string]any{
		"number":   "FAC-2024-099",
		"currency": "USD",
		"discount": map[string]any{"kind": "percentage", "value": 10},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	inv := decodeInvoice(t, rec)
	assert.Equal(t, "FAC-2024-099", inv.Number)
	assert.Equal(t, "USD", inv.Currency)
	assert.Equal(t, 125.0, inv.DiscountAmount)

	// The change is persisted, not just echoed.
	stored, err := st.Current()
	require.NoError(t, err)
	assert.Equal(t, "FAC-2024-099", stored.Number)
	assert.Equal(t, 125.0, stored.DiscountAmount)
}

func TestPatchInvoice_RejectsUnknownCurrency(t *testing.T) {
	mux, _ := testServer(t)
	rec := do(t, mux, http.MethodPatch, "/api/invoice", map[string]any{"currency": "XXX"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "currency")
}

func TestPatchInvoice_RejectsBlankAccentColor(t *testing.T) {
	mux, _ := testServer(t)
	rec := do(t, mux, http.MethodPatch, "/api/invoice", map[string]any{"accent_color": "  "})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "accent_color")
}

func TestPatchInvoice_RejectsUnknownField(t *testing.T) {
	mux, _ := testServer(t)
	rec := do(t, mux, http.MethodPatch, "/api/invoice", map[string]any{"no_such_field": 1})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPatchInvoice_Visibility(t *testing.T) {
	mux, _ := testServer(t)
	rec := do(t, mux, http.MethodPatch, "/api/invoice", map[string]any{
		"visible_fields": map[string]bool{"notes": false, "due_date": false},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	inv := decodeInvoice(t, rec)
	assert.False(t, inv.Visible.Notes)
	assert.False(t, inv.Visible.DueDate)
	assert.True(t, inv.Visible.ClientName)
}

func TestItems_AddUpdateRemove(t *testing.T) {
	mux, _ := testServer(t)

	rec := do(t, mux, http.MethodPost, "/api/invoice/items", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	inv := decodeInvoice(t, rec)
	require.Len(t, inv.Items, 3)
	added := inv.Items[2]

	rec = do(t, mux, http.MethodPatch, "/api/invoice/items/"+added.ID, map[string]any{
		"description": "Consultoría", "quantity": 2, "unit_price": 40,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	inv = decodeInvoice(t, rec)
	assert.Equal(t, 80.0, inv.Items[2].LineTotal)
	assert.Equal(t, 1330.0, inv.Subtotal)

	rec = do(t, mux, http.MethodDelete, "/api/invoice/items/"+added.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	inv = decodeInvoice(t, rec)
	assert.Len(t, inv.Items, 2)
}

func TestUpdateItem_RejectsNegativeQuantity(t *testing.T) {
	mux, st := testServer(t)
	cur, err := st.Current()
	require.NoError(t, err)

	rec := do(t, mux, http.MethodPatch, "/api/invoice/items/"+cur.Items[0].ID, map[string]any{
		"quantity": -3,
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "quantity")
}

func TestUpdateItem_UnknownID(t *testing.T) {
	mux, _ := testServer(t)
	rec := do(t, mux, http.MethodPatch, "/api/invoice/items/nope", map[string]any{"quantity": 1})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveItem_LastItemStays(t *testing.T) {
	mux, st := testServer(t)
	cur, err := st.Current()
	require.NoError(t, err)

	do(t, mux, http.MethodDelete, "/api/invoice/items/"+cur.Items[0].ID, nil)
	rec := do(t, mux, http.MethodDelete, "/api/invoice/items/"+cur.Items[1].ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	inv := decodeInvoice(t, rec)
	assert.Len(t, inv.Items, 1)
}

func TestSaveNewAndHistoryFlow(t *testing.T) {
	mux, _ := testServer(t)

	rec := do(t, mux, http.MethodPost, "/api/invoice/save", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	saved := decodeInvoice(t, rec)

	rec = do(t, mux, http.MethodGet, "/api/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []models.Invoice
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, saved.ID, history[0].ID)

	rec = do(t, mux, http.MethodPost, "/api/invoice/new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fresh := decodeInvoice(t, rec)
	assert.NotEqual(t, saved.ID, fresh.ID)
	assert.True(t, strings.HasPrefix(fresh.Number, "FAC-"))

	rec = do(t, mux, http.MethodPost, "/api/history/"+saved.ID+"/load", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, saved.ID, decodeInvoice(t, rec).ID)

	rec = do(t, mux, http.MethodPost, "/api/history/"+saved.ID+"/duplicate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	dup := decodeInvoice(t, rec)
	assert.NotEqual(t, saved.ID, dup.ID)
	assert.Equal(t, saved.Client, dup.Client)

	rec = do(t, mux, http.MethodDelete, "/api/history/"+saved.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, mux, http.MethodPost, "/api/history/"+saved.ID+"/load", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSave_OverwritesSameID(t *testing.T) {
	mux, _ := testServer(t)

	do(t, mux, http.MethodPost, "/api/invoice/save", nil)
	do(t, mux, http.MethodPatch, "/api/invoice", map[string]any{"notes": "actualizado"})
	do(t, mux, http.MethodPost, "/api/invoice/save", nil)

	rec := do(t, mux, http.MethodGet, "/api/history", nil)
	var history []models.Invoice
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, "actualizado", history[0].Notes)
}

func TestPreview_RendersHTML(t *testing.T) {
	mux, _ := testServer(t)
	rec := do(t, mux, http.MethodGet, "/invoice/preview?lang=en", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "INVOICE")
}

func TestExport_Accepted(t *testing.T) {
	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "test.db")),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	st, err := store.NewGormStore(db, zerolog.Nop())
	require.NoError(t, err)

	done := make(chan export.Result, 1)
	exporter := export.NewManager(t.TempDir(), zerolog.Nop(), func(res export.Result) { done <- res })
	h := NewInvoiceHandler(st, services.NewInvoiceService(), exporter, "es", zerolog.Nop())
	mux := http.NewServeMux()
	h.Register(mux)

	rec := do(t, mux, http.MethodPost, "/api/export", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp["filename"], "Factura_"))
	assert.True(t, strings.HasSuffix(resp["filename"], ".pdf"))

	select {
	case res := <-done:
		require.NoError(t, res.Err)
		assert.Equal(t, resp["filename"], res.Filename)
	case <-time.After(10 * time.Second):
		t.Fatal("export did not finish")
	}
}

func TestExportStatus_TracksRunningExport(t *testing.T) {
	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "test.db")),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	st, err := store.NewGormStore(db, zerolog.Nop())
	require.NoError(t, err)

	// The completion hook blocks, holding the export in its running state
	// until the test releases it.
	release := make(chan struct{})
	exporter := export.NewManager(t.TempDir(), zerolog.Nop(), func(export.Result) { <-release })
	h := NewInvoiceHandler(st, services.NewInvoiceService(), exporter, "es", zerolog.Nop())
	mux := http.NewServeMux()
	h.Register(mux)

	rec := do(t, mux, http.MethodGet, "/api/export/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"busy":false`)

	rec = do(t, mux, http.MethodPost, "/api/export", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)
	rec = do(t, mux, http.MethodGet, "/api/export/status", nil)
	assert.Contains(t, rec.Body.String(), `"busy":true`)

	close(release)
	require.Eventually(t, func() bool {
		rec := do(t, mux, http.MethodGet, "/api/export/status", nil)
		return strings.Contains(rec.Body.String(), `"busy":false`)
	}, 10*time.Second, 10*time.Millisecond)
}

func TestCatalogs(t *testing.T) {
	mux, _ := testServer(t)
	rec := do(t, mux, http.MethodGet, "/api/catalogs?lang=en", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Language     string `json:"language"`
		Languages    []string
		Currencies   []map[string]string `json:"currencies"`
		PaymentTerms []map[string]string `json:"payment_terms"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "en", resp.Language)
	require.NotEmpty(t, resp.Currencies)
	assert.Equal(t, "EUR", resp.Currencies[0]["key"])
	found := false
	for _, p := range resp.PaymentTerms {
		if p["key"] == "30dias" {
			found = true
			assert.Equal(t, "30 days", p["label"])
		}
	}
	assert.True(t, found)
}

func TestLangDetection_FallsBackToSpanish(t *testing.T) {
	mux, _ := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/catalogs", nil)
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), fmt.Sprintf("%q:%q", "language", "es"))
}
