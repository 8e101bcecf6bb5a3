// Package assets holds the embedded brand imagery used by the receipt
// renderers.
package assets

import _ "embed"

// WebLogo is the full brand logo placed on receipt pages.
//
//go:embed web-logo.png
var WebLogo []byte

// QRLogo is the small mark composited into the center of QR codes.
//
//go:embed qr-logo.png
var QRLogo []byte
