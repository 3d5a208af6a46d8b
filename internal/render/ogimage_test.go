package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrismarisTech/vine-lingo/internal/model"
)

func decodeCard(t *testing.T, data []byte) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, ImageWidth, bounds.Dx())
	assert.Equal(t, ImageHeight, bounds.Dy())
}

func TestRenderTermCard(t *testing.T) {
	png, err := RenderTermCard(&etvTerm)
	require.NoError(t, err)
	decodeCard(t, png)
}

func TestRenderTermCardWithoutExample(t *testing.T) {
	term := etvTerm
	term.Example = ""
	png, err := RenderTermCard(&term)
	require.NoError(t, err)
	decodeCard(t, png)
}

func TestRenderTermCardLongContent(t *testing.T) {
	term := model.Term{
		Term:       strings.Repeat("Very Long Term Name ", 5),
		Definition: strings.Repeat("An extremely long definition that would overflow the fixed canvas if it were not truncated and wrapped. ", 10),
		Example:    strings.Repeat("A long example sentence. ", 20),
		Category:   model.CategoryGeneral,
	}
	png, err := RenderTermCard(&term)
	require.NoError(t, err)
	decodeCard(t, png)
}

func TestRenderDefaultCard(t *testing.T) {
	png, err := RenderDefaultCard()
	require.NoError(t, err)
	decodeCard(t, png)
}
