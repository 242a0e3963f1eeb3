package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.23, Round2(1.2345), 1e-9)
	assert.InDelta(t, 1.24, Round2(1.235), 1e-9)
	assert.InDelta(t, -83.33, Round2(-83.3333), 1e-9)
	assert.Zero(t, Round2(0))
}

func TestRound1(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.2, Round1(1.24), 1e-9)
	assert.InDelta(t, 1.3, Round1(1.25), 1e-9)
}

func TestRatio(t *testing.T) {
	t.Parallel()

	got := Ratio(10, 4)
	require.NotNil(t, got)
	assert.InDelta(t, 2.5, *got, 1e-9)

	assert.Nil(t, Ratio(10, 0))
}

func TestPctOf(t *testing.T) {
	t.Parallel()

	got := PctOf(1, 3)
	require.NotNil(t, got)
	assert.InDelta(t, 33.33, *got, 1e-9)

	assert.Nil(t, PctOf(1, 0))

	zero := PctOf(0, 5)
	require.NotNil(t, zero)
	assert.Zero(t, *zero)
}
