package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetailBlockYStaysInWindow(t *testing.T) {
	// Short content gets pulled down to the floor of the window.
	assert.Equal(t, stdDetailMinY, detailBlockY(100))

	// Content ending just inside the window pushes the block along.
	assert.Equal(t, 218.0, detailBlockY(210))

	// Runaway wrapped content cannot shove the block into the footer:
	// the last detail line must finish above y=252.
	y := detailBlockY(500)
	assert.Equal(t, stdDetailMaxY, y)
	assert.Less(t, y+3*stdDetailGap+stdLineH, 252.0)
}
