package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
	"tickets/internal/domain/ticket"
	"tickets/internal/render/qr"
)

const defaultTitle = "Benny Osbon Limited."

// Logo edge lengths in pixels per form factor, resampled once at
// construction time.
const (
	logoPixelsStandard = 150
	logoPixelsPOS      = 50
)

// MinimalOptions shapes the QR-only variant: the page is caller-defined.
type MinimalOptions struct {
	Page   PageSize
	QRSize float64 // mm
}

func (o MinimalOptions) withDefaults() MinimalOptions {
	if o.Page.W == 0 || o.Page.H == 0 {
		o.Page = PageSize{W: 80, H: 80}
	}
	if o.QRSize == 0 {
		o.QRSize = 60
	}
	return o
}

// Config tunes composition. Zero values fall back to the defaults the
// service ships with.
type Config struct {
	Title   string
	Payload qr.PayloadPolicy // QR payload for standard and POS receipts
	Minimal MinimalOptions
}

// Composer turns a ticket record into a raw, unencrypted document for one
// of the layout variants. Safe for concurrent use: the logo bitmaps are
// resampled once here and read-only afterwards.
type Composer struct {
	encoder *qr.Encoder
	signer  *qr.Signer
	cfg     Config

	logoStandard []byte
	logoPOS      []byte
}

func NewComposer(logo []byte, encoder *qr.Encoder, signer *qr.Signer, cfg Config) (*Composer, error) {
	if cfg.Title == "" {
		cfg.Title = defaultTitle
	}
	cfg.Minimal = cfg.Minimal.withDefaults()

	logoStandard, err := resizeLogo(logo, logoPixelsStandard)
	if err != nil {
		return nil, fmt.Errorf("preparing standard logo: %w", err)
	}
	logoPOS, err := resizeLogo(logo, logoPixelsPOS)
	if err != nil {
		return nil, fmt.Errorf("preparing pos logo: %w", err)
	}

	return &Composer{
		encoder:      encoder,
		signer:       signer,
		cfg:          cfg,
		logoStandard: logoStandard,
		logoPOS:      logoPOS,
	}, nil
}

// Compose validates the record against the variant's required fields, then
// renders the page. The protected flag comes from the caller's protection
// policy so validation and encryption can never disagree on whether a
// password is required. The QR image backing file is removed before
// returning, success or failure.
func (c *Composer) Compose(rec ticket.Record, v ticket.Variant, protected bool) ([]byte, error) {
	if err := rec.Validate(v, protected); err != nil {
		return nil, err
	}

	payload := c.signer.Payload(rec, c.payloadPolicy(v))
	qrPath, err := c.encoder.Encode(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ticket.ErrRender, err)
	}
	defer os.Remove(qrPath)

	var canvas *Canvas
	switch v {
	case ticket.VariantStandard:
		canvas = NewCanvas(PageA4)
		layoutStandard(canvas, rec, qrPath, c.logoStandard, c.cfg.Title)
	case ticket.VariantPOS:
		canvas = NewCanvas(PagePOS)
		layoutPOS(canvas, rec, qrPath, c.logoPOS, c.cfg.Title)
	case ticket.VariantMinimal:
		canvas = NewCanvas(c.cfg.Minimal.Page)
		layoutMinimal(canvas, qrPath, c.cfg.Minimal.QRSize)
	default:
		return nil, fmt.Errorf("%w: unknown variant %v", ticket.ErrRender, v)
	}

	data, err := canvas.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ticket.ErrRender, err)
	}
	return data, nil
}

// payloadPolicy: the minimal variant always encodes the signed token, the
// receipt variants follow configuration.
func (c *Composer) payloadPolicy(v ticket.Variant) qr.PayloadPolicy {
	if v == ticket.VariantMinimal {
		return qr.PayloadSignedToken
	}
	return c.cfg.Payload
}

func resizeLogo(data []byte, side int) ([]byte, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding logo asset: %w", err)
	}
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encoding resized logo: %w", err)
	}
	return buf.Bytes(), nil
}

// fallback substitutes a placeholder for fields the variant tolerates
// being absent.
func fallback(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}
