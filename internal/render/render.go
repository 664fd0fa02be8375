// Package render draws a composed layout.Document onto concrete media.
// The PDF and HTML renderers consume the same fragment model, so both
// targets show the same logical layout.
package render

import (
	"fmt"

	"github.com/diewo77/invoice-builder/i18n"
	"github.com/diewo77/invoice-builder/internal/models"
)

// Filename builds the export artifact name: the locale-dependent document
// word, the invoice number, and the issue date.
func Filename(inv *models.Invoice, lang, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s",
		i18n.T(lang, "document_word"),
		inv.Number,
		inv.IssueDate.Format("2006-01-02"),
		ext,
	)
}
