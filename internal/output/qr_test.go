package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rsc.io/qr"
)

func TestDefaultQRConfig(t *testing.T) {
	cfg := DefaultQRConfig()

	assert.Equal(t, qr.M, cfg.Level, "default level should be M (medium)")
	assert.Equal(t, 1, cfg.QuietZone, "default quiet zone should be 1")
	assert.True(t, cfg.HalfBlocks, "half blocks should be enabled by default")
}

func TestCanRenderQR_Buffer(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, CanRenderQR(&buf), "bytes.Buffer should not be a terminal")
}

func TestCanRenderQR_Nil(t *testing.T) {
	assert.False(t, CanRenderQR(nil), "nil writer should not be a terminal")
}

func TestRenderQR_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultQRConfig()

	err := RenderQR(&buf, "1 legal winner thank year wave sausage worth useful legal winner thank yellow", cfg)

	require.NoError(t, err, "RenderQR should not error for non-terminal")
	assert.Empty(t, buf.String(), "no output should be produced for non-terminal")
}
