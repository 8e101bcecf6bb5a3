// Package pdf composes receipt documents. The Canvas owns the low-level
// drawing primitives; the per-variant layout functions hold the geometry
// and issue draw calls against it. Coordinates are millimeters.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"tickets/internal/render/markup"
)

const fontFamily = "Helvetica"

// PageSize is a physical page in millimeters.
type PageSize struct {
	W, H float64
}

var (
	PageA4  = PageSize{W: 210, H: 297}
	PagePOS = PageSize{W: 58, H: 100}
)

// Canvas wraps a single-page document. Draw errors accumulate inside the
// underlying document and surface once from Output.
type Canvas struct {
	doc  *fpdf.Fpdf
	size PageSize
}

func NewCanvas(size PageSize) *Canvas {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: size.W, Ht: size.H},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	doc.AddPage()
	return &Canvas{doc: doc, size: size}
}

func (c *Canvas) Size() PageSize { return c.size }

// Border draws the receipt frame inset from every page edge.
func (c *Canvas) Border(inset, lineWidth float64) {
	c.doc.SetLineWidth(lineWidth)
	c.doc.SetDrawColor(0, 128, 0)
	c.doc.Rect(inset, inset, c.size.W-2*inset, c.size.H-2*inset, "D")
}

// CenteredText draws a single line centered across the full page width.
func (c *Canvas) CenteredText(text string, y, size float64, style markup.Style) {
	c.doc.SetFont(fontFamily, string(style), size)
	c.doc.SetXY(0, y)
	c.doc.CellFormat(c.size.W, size*0.6, text, "", 0, "C", false, 0, "")
}

// WrappedText draws text wrapped to width, centered horizontally on the
// page, and returns the vertical space consumed. Words longer than the
// printable width are hard-broken at the boundary rather than truncated.
func (c *Canvas) WrappedText(text string, y, width, lineHeight, size float64, style markup.Style, align string) float64 {
	c.doc.SetFont(fontFamily, string(style), size)
	x := (c.size.W - width) / 2
	c.doc.SetXY(x, y)
	c.doc.MultiCell(width, lineHeight, text, "", align, false)
	return c.doc.GetY() - y
}

// StyledParagraph flows markup runs left-aligned in a column of the given
// width, honoring run styles and explicit breaks. Returns the height used.
func (c *Canvas) StyledParagraph(runs []markup.Run, y, width, lineHeight, size float64) float64 {
	x := (c.size.W - width) / 2
	left, _, right, _ := c.doc.GetMargins()
	c.doc.SetLeftMargin(x)
	c.doc.SetRightMargin(c.size.W - x - width)
	c.doc.SetXY(x, y)

	for _, run := range runs {
		if run.NewLine {
			c.doc.Ln(lineHeight)
			continue
		}
		c.doc.SetFont(fontFamily, string(run.Style), size)
		c.doc.Write(lineHeight, run.Text)
	}
	height := c.doc.GetY() + lineHeight - y

	c.doc.SetLeftMargin(left)
	c.doc.SetRightMargin(right)
	return height
}

// LinkedText draws a centered line carrying a hyperlink annotation. An
// empty target renders plain black text instead of a dead link.
func (c *Canvas) LinkedText(text, target string, y, size float64) {
	c.doc.SetFont(fontFamily, "B", size)
	if target == "" {
		c.CenteredText(text, y, size, "B")
		return
	}
	c.doc.SetTextColor(0, 0, 255)
	c.doc.SetXY(0, y)
	c.doc.CellFormat(c.size.W, size*0.6, text, "", 0, "C", false, 0, target)
	c.doc.SetTextColor(0, 0, 0)
}

// ImageFile places a raster image from a file path.
func (c *Canvas) ImageFile(path string, x, y, w, h float64) {
	c.doc.ImageOptions(path, x, y, w, h, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
}

// ImageBytes registers in-memory PNG data under name and places it.
func (c *Canvas) ImageBytes(name string, data []byte, x, y, w, h float64) {
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	c.doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	c.doc.ImageOptions(name, x, y, w, h, false, opts, 0, "")
}

// Output serializes the page to a byte stream, reporting any draw error
// accumulated along the way.
func (c *Canvas) Output() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("serializing page: %w", err)
	}
	return buf.Bytes(), nil
}
