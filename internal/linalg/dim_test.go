package linalg

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crux-ml/crux/internal/tensor"
)

func TestResolveCrossDimExplicit(t *testing.T) {
	dim := -1
	d, err := resolveCrossDim(&dim, tensor.Shape{2, 3})
	require.NoError(t, err)
	// Explicit dims pass through unmodified; wrapping happens later against
	// the broadcast rank.
	assert.Equal(t, -1, d)
}

func TestResolveCrossDimFindsExtent3(t *testing.T) {
	d, err := resolveCrossDim(nil, tensor.Shape{2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 1, d)

	d, err = resolveCrossDim(nil, tensor.Shape{3})
	require.NoError(t, err)
	assert.Equal(t, 0, d)
}

// Several axes of extent 3: the first one wins. Kept for compatibility with
// existing callers; do not change without flagging.
func TestResolveCrossDimFirstMatchWins(t *testing.T) {
	d, err := resolveCrossDim(nil, tensor.Shape{2, 3, 3})
	require.NoError(t, err)
	assert.Equal(t, 1, d)

	d, err = resolveCrossDim(nil, tensor.Shape{3, 3})
	require.NoError(t, err)
	assert.Equal(t, 0, d)
}

func TestResolveCrossDimNoSuitableAxis(t *testing.T) {
	_, err := resolveCrossDim(nil, tensor.Shape{2, 4, 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoSuitableAxis))

	_, err = resolveCrossDim(nil, tensor.Shape{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoSuitableAxis))
}
