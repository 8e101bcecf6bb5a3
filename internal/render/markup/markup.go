// Package markup translates the tiny HTML subset that event descriptions
// may carry (<b>, <i>, <u>, <br>) into styled text runs. It knows nothing
// about page geometry; the canvas decides how runs are drawn.
package markup

import "strings"

// Style is an fpdf-compatible font style string: any combination of
// "B", "I" and "U".
type Style string

// Run is a piece of text to be drawn with a single style. NewLine marks an
// explicit break requested by a <br> tag.
type Run struct {
	Text    string
	Style   Style
	NewLine bool
}

type styleState struct {
	bold, italic, underline bool
}

func (s styleState) style() Style {
	var b strings.Builder
	if s.bold {
		b.WriteByte('B')
	}
	if s.italic {
		b.WriteByte('I')
	}
	if s.underline {
		b.WriteByte('U')
	}
	return Style(b.String())
}

// Parse splits text into runs. Unknown or malformed tags are kept as
// literal text rather than dropped, so no content is ever lost.
func Parse(text string) []Run {
	var (
		runs  []Run
		state styleState
		buf   strings.Builder
	)

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		runs = append(runs, Run{Text: buf.String(), Style: state.style()})
		buf.Reset()
	}

	for i := 0; i < len(text); {
		if text[i] != '<' {
			buf.WriteByte(text[i])
			i++
			continue
		}
		end := strings.IndexByte(text[i:], '>')
		if end < 0 {
			// Unterminated tag, treat the rest as literal text.
			buf.WriteString(text[i:])
			break
		}
		tag := strings.ToLower(strings.TrimSpace(text[i+1 : i+end]))
		closing := strings.HasPrefix(tag, "/")
		name := strings.TrimSuffix(strings.TrimPrefix(tag, "/"), "/")

		switch name {
		case "b", "i", "u":
			flush()
			on := !closing
			switch name {
			case "b":
				state.bold = on
			case "i":
				state.italic = on
			case "u":
				state.underline = on
			}
		case "br":
			flush()
			runs = append(runs, Run{NewLine: true, Style: state.style()})
		default:
			// Outside the supported subset: keep it verbatim.
			buf.WriteString(text[i : i+end+1])
		}
		i += end + 1
	}
	flush()
	return runs
}

// Strip returns text with the supported tags removed and <br> replaced by
// newlines, for outputs that cannot carry styling.
func Strip(text string) string {
	var b strings.Builder
	for _, run := range Parse(text) {
		if run.NewLine {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(run.Text)
	}
	return b.String()
}
