package pdf

// layoutMinimal places nothing but the QR code, centered. The page carries
// a signed token, so there is no human-readable field set.
func layoutMinimal(c *Canvas, qrPath string, qrSize float64) {
	page := c.Size()
	c.ImageFile(qrPath, (page.W-qrSize)/2, (page.H-qrSize)/2, qrSize, qrSize)
}
