package depgraph

import (
	"testing"

	"github.com/monolink/monolink/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNode(t *testing.T) {
	tree := NewTree()
	id := tree.NewNode("foo", "1.0.0")

	node := tree.Node(id)
	assert.Equal(t, "foo", node.Name)
	assert.Equal(t, "1.0.0", node.Version)
	assert.Equal(t, "foo@1.0.0", node.NameAndVersion())
	assert.True(t, node.IsRoot())
}

func TestAddChild(t *testing.T) {
	tree := NewTree()
	root := tree.NewNode("root", "0.0.0")
	child := tree.NewNode("foo", "1.0.0")

	require.NoError(t, tree.AddChild(root, child))

	got, ok := tree.Child(root, "foo")
	require.True(t, ok)
	assert.Equal(t, child, got)
	assert.Equal(t, root, tree.Node(child).Parent)
	assert.False(t, tree.Node(child).IsRoot())
}

func TestAddChildDuplicateName(t *testing.T) {
	tree := NewTree()
	root := tree.NewNode("root", "0.0.0")
	a := tree.NewNode("foo", "1.0.0")
	b := tree.NewNode("foo", "2.0.0")

	require.NoError(t, tree.AddChild(root, a))
	err := tree.AddChild(root, b)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
}

func TestAddChildAlreadyAttached(t *testing.T) {
	tree := NewTree()
	root := tree.NewNode("root", "0.0.0")
	other := tree.NewNode("other", "0.0.0")
	child := tree.NewNode("foo", "1.0.0")

	require.NoError(t, tree.AddChild(root, child))
	err := tree.AddChild(other, child)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
}

func TestChildrenPreserveInsertionOrder(t *testing.T) {
	tree := NewTree()
	root := tree.NewNode("root", "0.0.0")

	names := []string{"zeta", "alpha", "mid"}
	for _, name := range names {
		id := tree.NewNode(name, "1.0.0")
		require.NoError(t, tree.AddChild(root, id))
	}

	var got []string
	for _, id := range tree.Children(root) {
		got = append(got, tree.Node(id).Name)
	}
	assert.Equal(t, names, got)
}
