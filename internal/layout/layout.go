package layout

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"

	"github.com/diewo77/invoice-builder/i18n"
	"github.com/diewo77/invoice-builder/internal/models"
)

// Section metrics, in mm. The logo bounding box, row heights, and footer
// line limits come straight from the document design; changing them changes
// every render target at once.
const (
	logoMaxW = 50.0
	logoMaxH = 20.0

	titleH     = 10.0
	lineH      = 5.0
	rowH       = 8.0
	stripH     = 10.0
	sectionGap = 8.0

	totalsWidth = 80.0
	totalsLineH = 6.0
	totalBandH  = 10.0

	footerWrapChars      = 50
	footerLineH          = 4.5
	notesMaxLines        = 3
	instructionsMaxLines = 4

	columnGap = 10.0
)

type composer struct {
	inv    *models.Invoice
	lang   string
	accent RGB
	y      float64
	frags  []Fragment
}

// Compose lays the invoice out onto the paginated document model. It never
// fails: undecodable logos are skipped, hidden and empty fields are omitted,
// and an invoice with no items produces a zero-height table.
func Compose(inv *models.Invoice, lang string) *Document {
	c := &composer{
		inv:    inv,
		lang:   lang,
		accent: ParseHexColor(inv.AccentColor, ParseHexColor(models.DefaultAccentColor, Black)),
	}
	c.header()
	c.parties()
	c.details()
	c.table()
	c.totals()
	c.footer()
	return &Document{
		Pages:  paginate(c.frags, c.y),
		Accent: c.accent,
		Lang:   lang,
		Title:  i18n.T(lang, "invoice"),
	}
}

func (c *composer) text(x, y, w, h float64, s string, size float64, bold bool, align string, col RGB) {
	c.frags = append(c.frags, Fragment{
		Kind: KindText, X: x, Y: y, W: w, H: h,
		Text: s, FontSize: size, Bold: bold, Align: align, Color: col,
	})
}

func (c *composer) fillRect(x, y, w, h float64, fill RGB) {
	c.frags = append(c.frags, Fragment{Kind: KindRect, X: x, Y: y, W: w, H: h, Fill: fill, Filled: true})
}

// fitBox scales (w, h) to fit inside (maxW, maxH) preserving aspect ratio.
func fitBox(w, h, maxW, maxH float64) (float64, float64) {
	scale := math.Min(maxW/w, maxH/h)
	if scale > 1 {
		scale = 1
	}
	return w * scale, h * scale
}

// header draws the optional logo at the left and the localized document
// title, with the invoice number beneath it when visible, right-aligned.
func (c *composer) header() {
	top := c.y
	blockH := titleH

	if len(c.inv.Company.Logo) > 0 {
		cfg, format, err := image.DecodeConfig(bytes.NewReader(c.inv.Company.Logo))
		if err == nil && cfg.Width > 0 && cfg.Height > 0 {
			w, h := fitBox(float64(cfg.Width), float64(cfg.Height), logoMaxW, logoMaxH)
			c.frags = append(c.frags, Fragment{
				Kind: KindImage, X: 0, Y: top, W: w, H: h,
				Image: c.inv.Company.Logo, ImageFmt: format,
			})
			if h > blockH {
				blockH = h
			}
		}
		// Decode failures skip the logo; the rest of the layout is unaffected.
	}

	c.text(ContentWidth-100, top, 100, titleH, i18n.T(c.lang, "invoice"), 24, true, AlignRight, c.accent)
	y := top + titleH
	if c.inv.Visible.Number {
		c.text(ContentWidth-100, y, 100, lineH, c.inv.Number, 10, false, AlignRight, Gray)
		y += lineH
	}
	if y-top > blockH {
		blockH = y - top
	}
	c.y = top + blockH + sectionGap
}

// parties draws the FROM and TO columns side by side. Both columns start at
// the same Y regardless of how many lines either one ends up with.
func (c *composer) parties() {
	top := c.y
	colW := (ContentWidth - columnGap) / 2

	leftH := c.party(0, top, colW, i18n.T(c.lang, "from"), c.inv.Company,
		c.inv.Visible.CompanyName, c.inv.Visible.CompanyTaxID,
		c.inv.Visible.CompanyAddress, c.inv.Visible.CompanyPhone, c.inv.Visible.CompanyEmail)
	rightH := c.party(colW+columnGap, top, colW, i18n.T(c.lang, "to"), c.inv.Client,
		c.inv.Visible.ClientName, c.inv.Visible.ClientTaxID,
		c.inv.Visible.ClientAddress, c.inv.Visible.ClientPhone, c.inv.Visible.ClientEmail)

	c.y = top + math.Max(leftH, rightH) + sectionGap
}

// party stacks the heading, the bold name, then only the visible, non-empty
// fields. Hidden or empty fields are skipped entirely, not blanked, so the
// block height is exactly the included line count times the line height.
func (c *composer) party(x, top, w float64, heading string, p models.PartyInfo, showName, showTaxID, showAddress, showPhone, showEmail bool) float64 {
	y := top
	c.text(x, y, w, lineH, heading, 9, true, AlignLeft, c.accent)
	y += lineH

	if showName && p.Name != "" {
		c.text(x, y, w, lineH, p.Name, 11, true, AlignLeft, Black)
		y += lineH
	}
	if showTaxID && p.TaxID != "" {
		c.text(x, y, w, lineH, p.TaxID, 9, false, AlignLeft, Gray)
		y += lineH
	}
	if showAddress && p.Address != "" {
		for _, line := range strings.Split(p.Address, "\n") {
			c.text(x, y, w, lineH, line, 9, false, AlignLeft, Gray)
			y += lineH
		}
	}
	if showPhone && p.Phone != "" {
		c.text(x, y, w, lineH, p.Phone, 9, false, AlignLeft, Gray)
		y += lineH
	}
	if showEmail && p.Email != "" {
		c.text(x, y, w, lineH, p.Email, 9, false, AlignLeft, Gray)
		y += lineH
	}
	return y - top
}

// details draws the banded strip of invoice metadata, dividing the content
// width evenly among the visible fields. With every field hidden the strip
// is omitted entirely, background band included.
func (c *composer) details() {
	type field struct{ label, value string }
	var fields []field
	if c.inv.Visible.IssueDate {
		fields = append(fields, field{i18n.T(c.lang, "date"), c.inv.IssueDate.Format("2006-01-02")})
	}
	if c.inv.Visible.DueDate {
		fields = append(fields, field{i18n.T(c.lang, "due_date"), c.inv.DueDate.Format("2006-01-02")})
	}
	if c.inv.Visible.PaymentTerms {
		fields = append(fields, field{i18n.T(c.lang, "payment"), models.PaymentTermLabel(c.inv.PaymentTerms, c.lang)})
	}
	if c.inv.Visible.Currency {
		fields = append(fields, field{i18n.T(c.lang, "currency"), c.inv.Currency})
	}
	if len(fields) == 0 {
		return
	}

	c.fillRect(0, c.y, ContentWidth, stripH, c.accent.Tint(0.92))
	cellW := ContentWidth / float64(len(fields))
	textY := c.y + (stripH-lineH)/2
	for i, f := range fields {
		c.text(float64(i)*cellW+2, textY, cellW-4, lineH, f.label+": "+f.value, 9, false, AlignLeft, Black)
	}
	c.y += stripH + sectionGap
}

// table draws the item table: a filled header row, one zebra-shaded row per
// item with the description truncated to the column, and an outer border
// whose height is the row count times the row height.
func (c *composer) table() {
	descW := ContentWidth * 0.45
	qtyW := ContentWidth * 0.15
	priceW := ContentWidth * 0.20
	totalW := ContentWidth * 0.20

	headTop := c.y
	c.fillRect(0, headTop, ContentWidth, rowH, c.accent)
	textY := headTop + (rowH-lineH)/2
	c.text(2, textY, descW-4, lineH, i18n.T(c.lang, "description"), 9, true, AlignLeft, White)
	c.text(descW, textY, qtyW-2, lineH, i18n.T(c.lang, "quantity"), 9, true, AlignRight, White)
	c.text(descW+qtyW, textY, priceW-2, lineH, i18n.T(c.lang, "unit_price"), 9, true, AlignRight, White)
	c.text(descW+qtyW+priceW, textY, totalW-2, lineH, i18n.T(c.lang, "total"), 9, true, AlignRight, White)

	rowsTop := headTop + rowH
	for i, it := range c.inv.Items {
		y := rowsTop + float64(i)*rowH
		if i%2 == 1 {
			c.fillRect(0, y, ContentWidth, rowH, ZebraGray)
		}
		rowTextY := y + (rowH-lineH)/2
		c.text(2, rowTextY, descW-4, lineH, truncateDescription(it.Description), 9, false, AlignLeft, Black)
		c.text(descW, rowTextY, qtyW-2, lineH, formatQuantity(it.Quantity), 9, false, AlignRight, Black)
		c.text(descW+qtyW, rowTextY, priceW-2, lineH, models.FormatAmount(it.UnitPrice, c.inv.Currency), 9, false, AlignRight, Black)
		c.text(descW+qtyW+priceW, rowTextY, totalW-2, lineH, models.FormatAmount(it.LineTotal, c.inv.Currency), 9, false, AlignRight, Black)
	}

	bodyH := float64(len(c.inv.Items)) * rowH
	c.frags = append(c.frags, Fragment{
		Kind: KindRect, X: 0, Y: rowsTop, W: ContentWidth, H: bodyH,
		Stroked: true, Stroke: Gray,
	})
	c.y = rowsTop + bodyH + sectionGap
}

// totals draws the right-aligned totals stack: subtotal, the discount line
// only when an amount applies, the tax line with its resolved label, and the
// emphasized total band with the currency code appended.
func (c *composer) totals() {
	x := ContentWidth - totalsWidth
	cur := c.inv.Currency

	line := func(label, value string, color RGB) {
		c.text(x, c.y, totalsWidth/2, totalsLineH, label, 10, false, AlignLeft, color)
		c.text(x+totalsWidth/2, c.y, totalsWidth/2, totalsLineH, value, 10, false, AlignRight, color)
		c.y += totalsLineH
	}

	line(i18n.T(c.lang, "subtotal"), models.FormatAmount(c.inv.Subtotal, cur), Black)

	if c.inv.DiscountAmount > 0 {
		label := i18n.T(c.lang, "discount")
		if c.inv.Discount.Kind == models.DiscountPercentage {
			label += " " + formatPercent(c.inv.Discount.Value)
		}
		line(label, "-"+models.FormatAmount(c.inv.DiscountAmount, cur), Black)
	}

	taxLabel := models.TaxLabel(c.inv.Tax, c.lang)
	if c.inv.Tax.Custom {
		taxLabel = i18n.T(c.lang, "tax") + " " + formatPercent(c.inv.Tax.Effective())
	}
	line(taxLabel, models.FormatAmount(c.inv.TaxAmount, cur), Black)

	c.fillRect(x, c.y, totalsWidth, totalBandH, c.accent)
	bandTextY := c.y + (totalBandH-lineH)/2
	c.text(x+2, bandTextY, totalsWidth/2, lineH, i18n.T(c.lang, "total_amount"), 12, true, AlignLeft, White)
	c.text(x+totalsWidth/2, bandTextY, totalsWidth/2-2, lineH,
		models.FormatAmount(c.inv.Total, cur)+" "+cur, 12, true, AlignRight, White)
	c.y += totalBandH + sectionGap
}

// footer draws notes and payment instructions side by side. Each column is
// independently omitted when hidden or empty; when only one shows it still
// starts at the same top offset as if both were present. Text past the
// per-column line limit is silently dropped.
func (c *composer) footer() {
	showNotes := c.inv.Visible.Notes && strings.TrimSpace(c.inv.Notes) != ""
	showInstructions := c.inv.Visible.PaymentInstructions && strings.TrimSpace(c.inv.PaymentInstructions) != ""
	if !showNotes && !showInstructions {
		return
	}

	top := c.y
	colW := (ContentWidth - columnGap) / 2
	bottom := top

	column := func(x float64, heading, text string, maxLines int) {
		c.text(x, top, colW, lineH, heading, 10, true, AlignLeft, Black)
		y := top + lineH
		for _, l := range wrapLines(text, footerWrapChars, maxLines) {
			c.text(x, y, colW, footerLineH, l, 9, false, AlignLeft, Gray)
			y += footerLineH
		}
		if y > bottom {
			bottom = y
		}
	}

	if showNotes {
		column(0, i18n.T(c.lang, "notes"), c.inv.Notes, notesMaxLines)
	}
	if showInstructions {
		column(colW+columnGap, i18n.T(c.lang, "payment_instructions"), c.inv.PaymentInstructions, instructionsMaxLines)
	}
	c.y = bottom
}
