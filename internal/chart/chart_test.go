package chart

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/closest/internal/models"
)

func TestRenderDistribution(t *testing.T) {
	var dist models.Distribution
	dist.Counts[40] = 1
	dist.Counts[50] = 3
	dist.Counts[60] = 1
	winner := 50

	out, err := RenderDistribution(&dist, Options{Title: "Round #1", Highlight: &winner})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, height, img.Bounds().Dy())
	assert.Greater(t, img.Bounds().Dx(), models.DistributionSize*barWidth)
}

func TestRenderEmptyDistribution(t *testing.T) {
	out, err := RenderDistribution(&models.Distribution{}, Options{})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestRenderNilDistribution(t *testing.T) {
	_, err := RenderDistribution(nil, Options{})
	assert.Error(t, err)
}
