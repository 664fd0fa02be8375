// Package layout turns an invoice into a positioned, paginated document
// model. It is pure geometry: sections are laid out top to bottom on a
// continuous strip of A4-width content, then the strip is cut into pages.
// Renderers draw the resulting fragments without re-running any layout
// decisions, so screen and PDF output stay logically identical.
package layout

import (
	"fmt"
	"math"
	"strconv"
)

// A4 portrait, millimetre units.
const (
	PageWidth  = 210.0
	PageHeight = 297.0
	Margin     = 15.0

	ContentWidth  = PageWidth - 2*Margin
	ContentHeight = PageHeight - 2*Margin
)

// Text alignment within a fragment box.
const (
	AlignLeft   = "L"
	AlignCenter = "C"
	AlignRight  = "R"
)

// Kind discriminates fragment payloads.
type Kind int

const (
	KindRect Kind = iota
	KindText
	KindImage
)

// RGB is a display color.
type RGB struct {
	R, G, B uint8
}

var (
	Black     = RGB{33, 33, 33}
	Gray      = RGB{110, 110, 110}
	White     = RGB{255, 255, 255}
	ZebraGray = RGB{243, 243, 245}
)

// ParseHexColor parses "#rrggbb". The fallback is returned for anything
// malformed so a bad accent can never break a render.
func ParseHexColor(s string, fallback RGB) RGB {
	if len(s) != 7 || s[0] != '#' {
		return fallback
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return fallback
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// Tint lightens a color toward white; used for the banded backgrounds
// derived from the accent color.
func (c RGB) Tint(f float64) RGB {
	mix := func(v uint8) uint8 {
		return uint8(math.Round(float64(v) + (255-float64(v))*f))
	}
	return RGB{R: mix(c.R), G: mix(c.G), B: mix(c.B)}
}

// Fragment is one positioned primitive. Coordinates are relative to the
// content strip while composing and to the page after pagination.
type Fragment struct {
	Kind Kind
	X, Y float64
	W, H float64

	// Text payload.
	Text     string
	FontSize float64
	Bold     bool
	Align    string
	Color    RGB

	// Rect payload.
	Fill    RGB
	Filled  bool
	Stroked bool
	Stroke  RGB

	// Image payload.
	Image    []byte
	ImageFmt string
}

// Page holds the fragments of one output page in draw order.
type Page struct {
	Fragments []Fragment
}

// Document is the paginated render model.
type Document struct {
	Pages  []Page
	Accent RGB
	Lang   string
	Title  string
}

// paginate cuts the content strip into fixed-height pages. Rects and images
// that straddle a cut are clipped into both pages, the same slicing the
// original's bitmap tiling produced; a text line lands on the page holding
// its top edge. Fragment coordinates are translated into page space with
// margins applied.
func paginate(frags []Fragment, stripHeight float64) []Page {
	pageCount := int(math.Ceil(stripHeight/ContentHeight)) - 1
	if pageCount < 0 {
		pageCount = 0
	}
	pages := make([]Page, pageCount+1)

	place := func(f Fragment, page int) {
		f.X += Margin
		f.Y = f.Y - float64(page)*ContentHeight + Margin
		pages[page].Fragments = append(pages[page].Fragments, f)
	}

	for _, f := range frags {
		first := int(f.Y / ContentHeight)
		if first > pageCount {
			first = pageCount
		}
		if f.Kind == KindText {
			place(f, first)
			continue
		}
		last := first
		if f.H > 0 {
			last = int((f.Y + f.H - 1e-9) / ContentHeight)
		}
		if last > pageCount {
			last = pageCount
		}
		for p := first; p <= last; p++ {
			clip := f
			top := math.Max(f.Y, float64(p)*ContentHeight)
			bottom := math.Min(f.Y+f.H, float64(p+1)*ContentHeight)
			clip.Y = top
			clip.H = bottom - top
			// An image fragment split here keeps its full bitmap, so the
			// renderers scale it into the shrunken slice rather than
			// cropping it. The only image today is the page-1 header logo,
			// which never reaches a cut; a cropping pass is needed before
			// images can appear lower on the page.
			place(clip, p)
		}
	}
	return pages
}

// formatQuantity renders a quantity without trailing zeros.
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// formatPercent renders a rate the way labels show it: "(21%)", "(7.5%)".
func formatPercent(rate float64) string {
	return fmt.Sprintf("(%g%%)", rate)
}
