package colors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/lanemarking/utils/colors"
)

func TestSchemeFallback(t *testing.T) {
	s, err := colors.NewScheme(map[string]string{"stop line for lane": "#00ff00"})
	require.NoError(t, err)

	assert.Equal(t, "#00ff00", colors.Hex(s.Get("stop line for lane", colors.Red)))
	assert.Equal(t, colors.White, s.Get("parking line", colors.White))
	assert.Equal(t, []string{"parking line", "stop line for lane"}, s.Keys())
}

func TestSchemeBadHex(t *testing.T) {
	_, err := colors.NewScheme(map[string]string{"sidewalk": "#12"})
	assert.Error(t, err)
	_, err = colors.NewScheme(map[string]string{"sidewalk": "#zzzzzz"})
	assert.Error(t, err)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#ffff00", colors.Hex(colors.Yellow))
	assert.Equal(t, "#be4a4c", colors.Hex(colors.RGB(190, 74, 76)))
	assert.Equal(t, "#333333", colors.Hex(colors.Grey(0.2)))
}
