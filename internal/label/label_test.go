package label

import (
	"testing"

	"github.com/astrodetect/astrodetect/internal/morph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabel_TwoDisjointComponents(t *testing.T) {
	w, h := 5, 1
	bytes := []byte{morph.Foreground, morph.Foreground, morph.Background, morph.Foreground, morph.Foreground}

	labels, n := Label(bytes, w, h, 4)
	require.Equal(t, 2, n)
	assert.Equal(t, labels[0], labels[1])
	assert.Equal(t, labels[3], labels[4])
	assert.NotEqual(t, labels[0], labels[3])
	assert.Equal(t, NoObj, labels[2])
}

func TestLabel_MaskedNeverEntersBFS(t *testing.T) {
	w, h := 3, 1
	bytes := []byte{morph.Foreground, morph.Masked, morph.Foreground}

	labels, n := Label(bytes, w, h, 8)
	assert.Equal(t, 2, n)
	assert.Equal(t, Masked, labels[1])
	assert.NotEqual(t, labels[0], labels[2])
}

func TestLabel_EightConnectivityJoinsDiagonals(t *testing.T) {
	w, h := 2, 2
	bytes := []byte{morph.Foreground, morph.Background, morph.Background, morph.Foreground}

	labels8, n8 := Label(bytes, w, h, 8)
	assert.Equal(t, 1, n8)
	assert.Equal(t, labels8[0], labels8[3])

	labels4, n4 := Label(bytes, w, h, 4)
	assert.Equal(t, 2, n4)
	assert.NotEqual(t, labels4[0], labels4[3])
}

func TestLabelAdjacency_PartitionsGraph(t *testing.T) {
	// nodes 0-1 connected, node 2 isolated, nodes 3-4 connected.
	n := 5
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
	}
	adj[0][1], adj[1][0] = true, true
	adj[3][4], adj[4][3] = true, true

	labels, numLabels := LabelAdjacency(adj)
	require.Equal(t, 3, numLabels)
	assert.Equal(t, labels[0], labels[1])
	assert.Equal(t, labels[3], labels[4])
	assert.NotEqual(t, labels[0], labels[2])
	assert.NotEqual(t, labels[2], labels[3])
}
