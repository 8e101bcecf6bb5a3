package ticket

import "fmt"

// Variant selects one of the fixed receipt layouts.
type Variant int

const (
	// VariantStandard is the full A4 receipt.
	VariantStandard Variant = iota
	// VariantPOS is the 58x100mm thermal printer receipt.
	VariantPOS
	// VariantMinimal is a small QR-only page keyed off a signed token.
	VariantMinimal
)

func (v Variant) String() string {
	switch v {
	case VariantStandard:
		return "standard"
	case VariantPOS:
		return "pos"
	case VariantMinimal:
		return "minimal"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// ParseVariant maps the wire name of a variant back to its value.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "standard", "":
		return VariantStandard, nil
	case "pos":
		return VariantPOS, nil
	case "minimal":
		return VariantMinimal, nil
	default:
		return 0, fmt.Errorf("unknown receipt variant %q", s)
	}
}

// RequiredFields lists the fields a variant hard-requires. Every other field
// renders with a placeholder when absent.
func (v Variant) RequiredFields(protected bool) []string {
	var fields []string
	switch v {
	case VariantMinimal:
		fields = []string{FieldReference}
	default:
		fields = []string{FieldReference, FieldName}
	}
	if protected {
		fields = append(fields, FieldPassword)
	}
	return fields
}

// ProtectionPolicy decides per variant whether the finished document gets
// password protection. Which variants are protected is a deployment choice,
// not something inferred from the record.
type ProtectionPolicy map[Variant]bool

// DefaultProtectionPolicy protects the standard receipt and leaves POS and
// minimal receipts open, matching how point-of-sale printers consume them.
func DefaultProtectionPolicy() ProtectionPolicy {
	return ProtectionPolicy{VariantStandard: true}
}

func (p ProtectionPolicy) Protected(v Variant) bool {
	return p[v]
}
