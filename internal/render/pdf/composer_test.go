package pdf_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tickets/assets"
	"tickets/internal/domain/ticket"
	"tickets/internal/render/pdf"
	"tickets/internal/render/qr"
)

func newComposer(t *testing.T, cfg pdf.Config) (*pdf.Composer, string) {
	t.Helper()
	dir := t.TempDir()
	composer, err := pdf.NewComposer(
		assets.WebLogo,
		qr.NewEncoderInDir(assets.QRLogo, dir),
		qr.NewSigner([]byte("test-secret")),
		cfg,
	)
	require.NoError(t, err)
	return composer, dir
}

func record() ticket.Record {
	return ticket.Record{
		Reference:        "ABC123",
		Name:             "Jane Doe",
		Phone:            "+233000000",
		EventName:        "Harbour Nights",
		Description:      "Access to <b>VIP</b> lounge",
		EventCoordinates: "https://maps.example/x",
		StartDate:        "January 01, 2025 07:00PM GMT",
		EndDate:          "January 02, 2025 02:00AM GMT",
		TicketID:         "77",
		TicketType:       "VIP",
		Password:         "xy9Z2q",
	}
}

func assertNoLeftovers(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "composition must clean up its QR artifacts")
}

func TestComposeStandard(t *testing.T) {
	composer, dir := newComposer(t, pdf.Config{})

	data, err := composer.Compose(record(), ticket.VariantStandard, true)
	require.NoError(t, err)

	assert.True(t, len(data) > 1000)
	assert.Equal(t, "%PDF", string(data[:4]))
	assertNoLeftovers(t, dir)
}

func TestComposePOS(t *testing.T) {
	composer, dir := newComposer(t, pdf.Config{})

	rec := record()
	rec.Password = "" // POS is unprotected by default, no password needed

	data, err := composer.Compose(rec, ticket.VariantPOS, false)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
	assertNoLeftovers(t, dir)
}

func TestComposeMinimal(t *testing.T) {
	composer, dir := newComposer(t, pdf.Config{
		Minimal: pdf.MinimalOptions{Page: pdf.PageSize{W: 60, H: 60}, QRSize: 40},
	})

	data, err := composer.Compose(ticket.Record{Reference: "ABC123"}, ticket.VariantMinimal, false)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
	assertNoLeftovers(t, dir)
}

func TestComposeRejectsMissingName(t *testing.T) {
	composer, dir := newComposer(t, pdf.Config{})

	rec := record()
	rec.Name = ""

	data, err := composer.Compose(rec, ticket.VariantStandard, true)
	require.ErrorIs(t, err, ticket.ErrRender)
	assert.Nil(t, data, "no partial receipt may be emitted")
	assertNoLeftovers(t, dir)
}

func TestComposeRequiresPasswordOnlyWhenProtected(t *testing.T) {
	rec := record()
	rec.Password = ""

	composer, _ := newComposer(t, pdf.Config{})

	// The same composer serves both; the caller's protection flag alone
	// decides whether a password is demanded.
	_, err := composer.Compose(rec, ticket.VariantStandard, true)
	require.ErrorIs(t, err, ticket.ErrRender)

	data, err := composer.Compose(rec, ticket.VariantStandard, false)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestComposeToleratesAbsentOptionalFields(t *testing.T) {
	composer, dir := newComposer(t, pdf.Config{})

	rec := ticket.Record{
		Reference: "ABC123",
		Name:      "Jane Doe",
		Password:  "xy9Z2q",
	}

	data, err := composer.Compose(rec, ticket.VariantStandard, true)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
	assertNoLeftovers(t, dir)
}

func TestComposeSurvivesRunawayDescription(t *testing.T) {
	composer, dir := newComposer(t, pdf.Config{})

	rec := record()
	rec.Description = strings.Repeat("All-night access to the <b>VIP</b> lounge and afterparty. ", 40)

	data, err := composer.Compose(rec, ticket.VariantStandard, true)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
	assertNoLeftovers(t, dir)
}

func TestComposeRendersAreDistinct(t *testing.T) {
	composer, _ := newComposer(t, pdf.Config{})

	first, err := composer.Compose(record(), ticket.VariantStandard, true)
	require.NoError(t, err)
	second, err := composer.Compose(record(), ticket.VariantStandard, true)
	require.NoError(t, err)

	// Same content, but each invocation is a fresh document (timestamps,
	// fresh QR artifact), never a shared buffer.
	assert.NotSame(t, &first[0], &second[0])
}
