// Package qr renders ticket QR codes: a high error-correction matrix with
// the brand mark composited into the center.
package qr

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	qrcode "github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
)

// qrSidePixels is the rendered edge length. Large enough that the logo
// overlay never obscures a full error-correction block.
const qrSidePixels = 512

type Encoder struct {
	logo []byte // PNG bytes of the center mark
	dir  string // temp dir, "" means the OS default
}

// NewEncoder builds an encoder stamping logo (PNG bytes) onto every code.
func NewEncoder(logo []byte) *Encoder {
	return &Encoder{logo: logo}
}

// NewEncoderInDir is NewEncoder with an explicit temp directory, used by
// tests to account for every artifact the encoder creates.
func NewEncoderInDir(logo []byte, dir string) *Encoder {
	return &Encoder{logo: logo, dir: dir}
}

// Encode renders payload into a brand-new PNG file and returns its path.
// Two calls never share a handle, even for identical payloads; the caller
// owns the file and must remove it once composition is done.
func (e *Encoder) Encode(payload string) (string, error) {
	code, err := qrcode.New(payload, qrcode.High)
	if err != nil {
		return "", fmt.Errorf("encoding qr payload: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, qrSidePixels, qrSidePixels))
	draw.Draw(img, img.Bounds(), code.Image(qrSidePixels), image.Point{}, draw.Src)

	if err := e.overlayLogo(img); err != nil {
		return "", err
	}

	f, err := os.CreateTemp(e.dir, "qrcode_*.png")
	if err != nil {
		return "", fmt.Errorf("creating qr image file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing qr image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("closing qr image: %w", err)
	}
	return f.Name(), nil
}

// overlayLogo centers the mark at a quarter of the code's linear dimension.
func (e *Encoder) overlayLogo(dst *image.RGBA) error {
	logo, err := png.Decode(bytes.NewReader(e.logo))
	if err != nil {
		return fmt.Errorf("loading qr logo asset: %w", err)
	}

	side := dst.Bounds().Dx() / 4
	scaled := image.NewRGBA(image.Rect(0, 0, side, side))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), logo, logo.Bounds(), xdraw.Over, nil)

	offset := (dst.Bounds().Dx() - side) / 2
	target := image.Rect(offset, offset, offset+side, offset+side)
	draw.Draw(dst, target, scaled, image.Point{}, draw.Over)
	return nil
}
