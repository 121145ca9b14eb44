package watch

import (
	"testing"

	"trade_watch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipDistance(t *testing.T) {
	assert.InDelta(t, -500.0, PipDistance(1895, 1900, 0.01), 1e-9)
	assert.InDelta(t, 2000.0, PipDistance(1920, 1900, 0.01), 1e-9)
	assert.InDelta(t, 0.0, PipDistance(1900, 1900, 0.01), 1e-9)
}

func TestPartialClosePct(t *testing.T) {
	pct, err := PartialClosePct(1.0, 0.4)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, pct, 1e-9)

	pct, err = PartialClosePct(2.0, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, pct, 1e-9)

	_, err = PartialClosePct(0, 0.4)
	assert.Error(t, err)
}

func TestPartialClosePips(t *testing.T) {
	// buy: заработали, если цена выше входа
	assert.InDelta(t, 1000.0, PartialClosePips(models.SideBuy, 1900, 1910, 0.01), 1e-9)
	assert.InDelta(t, -1000.0, PartialClosePips(models.SideBuy, 1900, 1890, 0.01), 1e-9)
	// sell: наоборот
	assert.InDelta(t, -1000.0, PartialClosePips(models.SideSell, 1900, 1910, 0.01), 1e-9)
	assert.InDelta(t, 1000.0, PartialClosePips(models.SideSell, 1900, 1890, 0.01), 1e-9)
}
