package markup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"tickets/internal/render/markup"
)

func TestParsePlainText(t *testing.T) {
	runs := markup.Parse("Access to VIP lounge")

	assert.Equal(t, []markup.Run{{Text: "Access to VIP lounge"}}, runs)
}

func TestParseStyledRuns(t *testing.T) {
	runs := markup.Parse("Gates open <b>7pm</b> sharp")

	assert.Equal(t, []markup.Run{
		{Text: "Gates open "},
		{Text: "7pm", Style: "B"},
		{Text: " sharp"},
	}, runs)
}

func TestParseNestedStyles(t *testing.T) {
	runs := markup.Parse("<b><i>both</i></b>")

	assert.Equal(t, []markup.Run{{Text: "both", Style: "BI"}}, runs)
}

func TestParseLineBreak(t *testing.T) {
	runs := markup.Parse("line one<br>line two")

	assert.Equal(t, []markup.Run{
		{Text: "line one"},
		{NewLine: true},
		{Text: "line two"},
	}, runs)
}

func TestParseKeepsUnknownTags(t *testing.T) {
	runs := markup.Parse(`before <a href="x">link</a> after`)

	assert.Equal(t, []markup.Run{
		{Text: `before <a href="x">link</a> after`},
	}, runs)
}

func TestParseUnterminatedTag(t *testing.T) {
	runs := markup.Parse("oops <b unclosed")

	assert.Equal(t, []markup.Run{{Text: "oops <b unclosed"}}, runs)
}

func TestStrip(t *testing.T) {
	got := markup.Strip("a <b>b</b><br><u>c</u>")

	assert.Equal(t, "a b\nc", got)
}
