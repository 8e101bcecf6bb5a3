package pdf

import (
	"strings"

	"tickets/internal/domain/ticket"
)

// POS receipt geometry on 58x100mm thermal paper.
const (
	posMargin   = 5.0
	posColumn   = 44.0
	posQRSize   = 30.0
	posLogoSize = 14.0
	posLineH    = 3.2
)

func layoutPOS(c *Canvas, rec ticket.Record, qrPath string, logo []byte, title string) {
	page := c.Size()

	c.Border(posMargin, 0.5)
	c.CenteredText(title, 6.5, 7, "B")

	c.ImageBytes("logo", logo, (page.W-posLogoSize)/2, 11, posLogoSize, posLogoSize)
	c.ImageFile(qrPath, (page.W-posQRSize)/2, 27, posQRSize, posQRSize)

	y := 59.0
	y += c.WrappedText(fallback(rec.EventName, "Private Event"), y, posColumn, posLineH, 8, "B", "C")
	y += c.WrappedText(strings.ToUpper(rec.Name), y+1, posColumn, posLineH, 8, "B", "C") + 1
	y += c.WrappedText("Ref: "+rec.Reference, y+1, posColumn, posLineH, 6, "", "C") + 1
	y += c.WrappedText("Ticket "+rec.TicketID+" / "+fallback(rec.TicketType, "regular"), y, posColumn, posLineH, 6, "", "C")
	y += c.WrappedText(rec.StartDate+" - "+rec.EndDate, y+1, posColumn, posLineH, 6, "", "C") + 1

	var dial string
	if rec.Phone != "" {
		dial = "tel:" + rec.Phone
	}
	c.LinkedText(fallback(rec.Phone, "customer service"), dial, page.H-12, 6)
}
