// Package protect applies one-time password protection to finished
// documents. Protection is one-directional: the service never decrypts
// what it produced.
package protect

import (
	"errors"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrEmptyPassword rejects a protection request before any staging I/O.
var ErrEmptyPassword = errors.New("protection requires a non-empty password")

// Protector re-encodes documents with AES-256 user-password access gating.
// The encryption primitive needs file-backed random access, so raw bytes
// are staged to disk; staging files are removed on every path.
type Protector struct {
	dir string // staging dir, "" means the OS default
}

func NewProtector() *Protector {
	return &Protector{}
}

// NewProtectorInDir stages into an explicit directory, used by tests to
// verify nothing is left behind.
func NewProtectorInDir(dir string) *Protector {
	return &Protector{dir: dir}
}

// Protect returns raw re-encoded so that opening requires password.
func (p *Protector) Protect(raw []byte, password string) ([]byte, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	in, err := stage(p.dir, raw)
	if err != nil {
		return nil, err
	}
	defer os.Remove(in)

	out, err := os.CreateTemp(p.dir, "receipt_*_locked.pdf")
	if err != nil {
		return nil, fmt.Errorf("creating staging file: %w", err)
	}
	outPath := out.Name()
	out.Close()
	defer os.Remove(outPath)

	conf := model.NewAESConfiguration(password, password, 256)
	if err := api.EncryptFile(in, outPath, conf); err != nil {
		return nil, fmt.Errorf("encrypting document: %w", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("reading protected document: %w", err)
	}
	return data, nil
}

func stage(dir string, raw []byte) (string, error) {
	f, err := os.CreateTemp(dir, "receipt_*.pdf")
	if err != nil {
		return "", fmt.Errorf("creating staging file: %w", err)
	}
	if _, err := f.Write(raw); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("staging document: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("staging document: %w", err)
	}
	return f.Name(), nil
}
