package pdf

import (
	"strings"

	"tickets/internal/domain/ticket"
	"tickets/internal/render/markup"
)

// Standard receipt geometry on A4.
const (
	stdMargin    = 10.0
	stdColumn    = 190.0 // printable width of the main column
	stdQRSize    = 100.0
	stdLogoSize  = 40.0
	stdLineH     = 6.0
	stdDetailGap = 8.0

	// Vertical window for the detail block. The lower bound keeps the
	// four detail lines (3 gaps + one line of text) clear of the contact
	// footer at y=252 no matter how far wrapped content spills down.
	stdDetailMinY = 216.0
	stdDetailMaxY = 220.0
)

// detailBlockY places the detail block below the wrapped content while
// pinning it inside its vertical window.
func detailBlockY(contentBottom float64) float64 {
	y := contentBottom + stdDetailGap
	if y < stdDetailMinY {
		y = stdDetailMinY
	}
	if y > stdDetailMaxY {
		y = stdDetailMaxY
	}
	return y
}

func layoutStandard(c *Canvas, rec ticket.Record, qrPath string, logo []byte, title string) {
	page := c.Size()

	c.Border(stdMargin, 1)
	c.CenteredText(title, 13, 12, "B")

	c.ImageBytes("logo", logo, (page.W-stdLogoSize)/2, 21, stdLogoSize, stdLogoSize)
	c.ImageFile(qrPath, (page.W-stdQRSize)/2, 64, stdQRSize, stdQRSize)

	y := 168.0
	y += c.WrappedText(strings.ToUpper(rec.Name), y, stdColumn, 8, 16, "B", "C")
	y += c.WrappedText(rec.StartDate+" - "+rec.EndDate, y+2, stdColumn, stdLineH, 12, "B", "C") + 2
	y += c.WrappedText(fallback(rec.EventName, "Private Event"), y+2, stdColumn, stdLineH, 12, "B", "C") + 2

	y += c.WrappedText("Description:", y+4, stdColumn, stdLineH, 12, "B", "C") + 4
	description := fallback(rec.Description, "Contact customer service for details.")
	y += c.StyledParagraph(markup.Parse(description), y, stdColumn, 5, 10)

	// Detail block sits below the wrapped content, never on top of the
	// contact footer.
	detailY := detailBlockY(y)
	for i, line := range []string{
		"Ticket ID: " + rec.TicketID,
		"Ticket Type: " + fallback(rec.TicketType, "regular"),
		"Ticket Holder: " + strings.ToUpper(rec.Name),
		"Reference Number: " + rec.Reference,
	} {
		c.CenteredText(line, detailY+float64(i)*stdDetailGap, 11, "B")
	}

	c.CenteredText("For event information, Contact", 252, 10, "")
	phone := fallback(rec.Phone, "customer service")
	var dial string
	if rec.Phone != "" {
		dial = "tel:" + rec.Phone
	}
	c.LinkedText(phone, dial, 258, 10)
	c.LinkedText("Click here for Event Location", fallback(rec.EventCoordinates, "https://www.chaleapp.org"), 266, 10)
}
