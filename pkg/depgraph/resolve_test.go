package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildChain creates root -> a -> b and returns the tree plus handles.
func buildChain(t *testing.T) (*Tree, NodeID, NodeID, NodeID) {
	t.Helper()
	tree := NewTree()
	root := tree.NewNode("root", "0.0.0")
	a := tree.NewNode("a", "1.0.0")
	b := tree.NewNode("b", "1.0.0")
	require.NoError(t, tree.AddChild(root, a))
	require.NoError(t, tree.AddChild(a, b))
	return tree, root, a, b
}

func TestResolveOrCreateFindsImmediateChild(t *testing.T) {
	tree, root, a, _ := buildChain(t)

	res := tree.ResolveOrCreate(root, "a", None)
	assert.Equal(t, a, res.Found)
	assert.Equal(t, root, res.ParentForCreate)
}

func TestResolveOrCreateFindsAncestorChild(t *testing.T) {
	tree, root, a, b := buildChain(t)

	// From b, "a" is found as a child of root two levels up.
	res := tree.ResolveOrCreate(b, "a", None)
	assert.Equal(t, a, res.Found)
	assert.Equal(t, root, res.ParentForCreate)
}

func TestResolveOrCreateMissing(t *testing.T) {
	tree, _, _, b := buildChain(t)

	res := tree.ResolveOrCreate(b, "nope", None)
	assert.Equal(t, None, res.Found)
	// New nodes are created at the point of need.
	assert.Equal(t, b, res.ParentForCreate)
}

func TestResolveOrCreateStopsAtBoundary(t *testing.T) {
	tree, root, a, b := buildChain(t)

	// "a" is visible from b without a boundary...
	res := tree.ResolveOrCreate(b, "a", None)
	assert.Equal(t, a, res.Found)

	// ...but a boundary at a hides root's children.
	res = tree.ResolveOrCreate(b, "a", a)
	assert.Equal(t, None, res.Found)
	assert.Equal(t, b, res.ParentForCreate)

	_ = root
}

func TestResolveOrCreateBoundaryChildStillVisible(t *testing.T) {
	tree, _, a, b := buildChain(t)

	// The boundary node itself is still searched.
	res := tree.ResolveOrCreate(b, "b", a)
	assert.Equal(t, b, res.Found)
	assert.Equal(t, a, res.ParentForCreate)
}

func TestResolve(t *testing.T) {
	tree, root, a, b := buildChain(t)

	assert.Equal(t, a, tree.Resolve(b, "a"))
	assert.Equal(t, b, tree.Resolve(b, "b"))
	assert.Equal(t, None, tree.Resolve(b, "nope"))
	assert.Equal(t, a, tree.Resolve(root, "a"))
}
