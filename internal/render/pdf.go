package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/diewo77/invoice-builder/internal/layout"
)

// WritePDF draws the document page by page. Fragments arrive fully
// positioned, so this is a straight translation into gofpdf primitives;
// no layout decision is made here. The context is checked between pages so
// a cancelled export stops instead of finishing a large document.
func WritePDF(ctx context.Context, doc *layout.Document, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title, true)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	imgSeq := 0
	for pageIdx, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		pdf.AddPage()
		for _, f := range page.Fragments {
			switch f.Kind {
			case layout.KindRect:
				if f.Filled {
					pdf.SetFillColor(int(f.Fill.R), int(f.Fill.G), int(f.Fill.B))
					pdf.Rect(f.X, f.Y, f.W, f.H, "F")
				}
				if f.Stroked && f.H > 0 {
					pdf.SetDrawColor(int(f.Stroke.R), int(f.Stroke.G), int(f.Stroke.B))
					pdf.Rect(f.X, f.Y, f.W, f.H, "D")
				}
			case layout.KindText:
				style := ""
				if f.Bold {
					style = "B"
				}
				pdf.SetFont("Helvetica", style, f.FontSize)
				pdf.SetTextColor(int(f.Color.R), int(f.Color.G), int(f.Color.B))
				pdf.SetXY(f.X, f.Y)
				pdf.CellFormat(f.W, f.H, tr(f.Text), "", 0, f.Align, false, 0, "")
			case layout.KindImage:
				if !pdf.Ok() {
					continue
				}
				imgSeq++
				name := fmt.Sprintf("img-%d-%d", pageIdx, imgSeq)
				opts := gofpdf.ImageOptions{ImageType: strings.ToUpper(f.ImageFmt)}
				pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(f.Image))
				if pdf.Ok() {
					pdf.ImageOptions(name, f.X, f.Y, f.W, f.H, false, opts, 0, "")
				}
				// gofpdf rejects some images the stdlib decoder accepts
				// (16-bit or interlaced PNG, CMYK JPEG). Its error is
				// sticky and would fail the whole document; an image that
				// cannot be embedded is skipped instead. Errors raised
				// outside this branch are untouched and still surface.
				if !pdf.Ok() {
					pdf.ClearError()
				}
			}
		}
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("pdf build: %w", err)
	}
	return pdf.Output(w)
}
