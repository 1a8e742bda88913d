package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/sitecanvas/internal/presentation/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "version 1.2.3")
}

func TestRenderer(t *testing.T) {
	render := tui.NewRenderer()
	out, err := render("# Acme\n\nFresh bread daily")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Fresh bread daily")
}
