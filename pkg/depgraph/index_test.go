package depgraph

import (
	"testing"

	"github.com/monolink/monolink/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndex(t *testing.T) {
	tree := NewTree()
	root := tree.NewNode("common", "0.0.0")
	foo := tree.NewNode("foo", "1.0.0")
	bar := tree.NewNode("bar", "2.1.0")
	nested := tree.NewNode("baz", "0.5.0")
	require.NoError(t, tree.AddChild(root, foo))
	require.NoError(t, tree.AddChild(root, bar))
	require.NoError(t, tree.AddChild(foo, nested))

	ix, err := BuildIndex(tree, root)
	require.NoError(t, err)
	assert.Equal(t, 4, ix.Len())

	got, ok := ix.Get("baz@0.5.0")
	require.True(t, ok)
	assert.Equal(t, nested, got)

	_, ok = ix.Get("baz@9.9.9")
	assert.False(t, ok)
}

func TestBuildIndexDuplicateKey(t *testing.T) {
	tree := NewTree()
	root := tree.NewNode("common", "0.0.0")
	a := tree.NewNode("foo", "1.0.0")
	b := tree.NewNode("bar", "1.0.0")
	dup := tree.NewNode("foo", "1.0.0")
	require.NoError(t, tree.AddChild(root, a))
	require.NoError(t, tree.AddChild(root, b))
	require.NoError(t, tree.AddChild(b, dup))

	_, err := BuildIndex(tree, root)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStoreInconsistent))
}

func TestBuildIndexDistinctVersions(t *testing.T) {
	tree := NewTree()
	root := tree.NewNode("common", "0.0.0")
	a := tree.NewNode("foo", "1.0.0")
	b := tree.NewNode("bar", "1.0.0")
	shadow := tree.NewNode("foo", "2.0.0")
	require.NoError(t, tree.AddChild(root, a))
	require.NoError(t, tree.AddChild(root, b))
	require.NoError(t, tree.AddChild(b, shadow))

	ix, err := BuildIndex(tree, root)
	require.NoError(t, err)
	assert.Equal(t, 4, ix.Len())
}
