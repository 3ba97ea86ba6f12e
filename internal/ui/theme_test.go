package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kosharny/ThunderpickMove/internal/engine"
)

func TestPaletteFallsBackToStandard(t *testing.T) {
	assert.Equal(t, PaletteFor(engine.ThemeStandard), PaletteFor(engine.ThemeType("sepia")))
	assert.NotEqual(t, PaletteFor(engine.ThemeStandard), PaletteFor(engine.ThemeStealthOps))
}

func TestBar(t *testing.T) {
	assert.Equal(t, "[#####-----]", Bar(50, 100, 10))
	assert.Equal(t, "[##########]", Bar(150, 100, 10))
	assert.Equal(t, "[---]", Bar(-1, 0, 1))
}

func TestStatusTextKeepsName(t *testing.T) {
	for _, s := range []engine.BodyStatus{engine.StatusCollapsed, engine.StatusNeutral, engine.StatusAlpha} {
		assert.True(t, strings.Contains(StatusText(s), string(s)), s)
	}
}
