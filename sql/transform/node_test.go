// Copyright 2024 The planner Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arboradb/planner/sql"
)

// fakeNode is a minimal sql.Node used only to exercise the tree framework
// without depending on the plan package.
type fakeNode struct {
	label string
	kids  []sql.Node
}

func leaf(label string) *fakeNode { return &fakeNode{label: label} }

func branch(label string, kids ...sql.Node) *fakeNode {
	return &fakeNode{label: label, kids: kids}
}

func (n *fakeNode) Children() []sql.Node { return n.kids }

func (n *fakeNode) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != len(n.kids) {
		return nil, sql.ErrInvalidChildrenNumber.New(n, len(children), len(n.kids))
	}
	nn := *n
	nn.kids = children
	return &nn, nil
}

func (n *fakeNode) Resolved() bool  { return true }
func (n *fakeNode) Schema() sql.Schema { return nil }
func (n *fakeNode) String() string  { return n.label }

func TestNodeIdentityPreservedWhenUnchanged(t *testing.T) {
	tree := branch("root", leaf("a"), branch("mid", leaf("b"), leaf("c")))

	out, same, err := Node(tree, func(n sql.Node) (sql.Node, TreeIdentity, error) {
		return n, SameTree, nil
	})
	require.NoError(t, err)
	require.Equal(t, SameTree, same)
	require.Same(t, tree, out)
}

func TestNodeBottomUpRewritesLeaves(t *testing.T) {
	tree := branch("root", leaf("a"), branch("mid", leaf("b"), leaf("target")))

	out, same, err := Node(tree, func(n sql.Node) (sql.Node, TreeIdentity, error) {
		if f, ok := n.(*fakeNode); ok && f.label == "target" {
			return leaf("rewritten"), NewTree, nil
		}
		return n, SameTree, nil
	})
	require.NoError(t, err)
	require.Equal(t, NewTree, same)

	var labels []string
	InspectNode(out, func(n sql.Node) bool {
		labels = append(labels, n.(*fakeNode).label)
		return true
	})
	require.Equal(t, []string{"root", "a", "mid", "b", "rewritten"}, labels)

	// the untouched subtree ("a" and "mid/b") must be shared by identity
	// with the original tree, not rebuilt.
	origRoot := tree
	newRoot := out.(*fakeNode)
	require.Same(t, origRoot.kids[0], newRoot.kids[0])
}

func TestNodeTopDownSeesRewrittenShapeImmediately(t *testing.T) {
	// Each pass halves a node labelled with an even count by rewriting it
	// to two children labelled with half the count; top-down means the new
	// children are visited (and can themselves be halved) within the same
	// call.
	tree := leaf("8")

	out, same, err := NodeTopDown(tree, func(n sql.Node) (sql.Node, TreeIdentity, error) {
		f := n.(*fakeNode)
		switch f.label {
		case "8":
			return branch("8", leaf("4"), leaf("4")), NewTree, nil
		case "4":
			return branch("4", leaf("2"), leaf("2")), NewTree, nil
		default:
			return n, SameTree, nil
		}
	})
	require.NoError(t, err)
	require.Equal(t, NewTree, same)

	var leaves []string
	InspectNode(out, func(n sql.Node) bool {
		f := n.(*fakeNode)
		if len(f.kids) == 0 {
			leaves = append(leaves, f.label)
		}
		return true
	})
	require.Equal(t, []string{"2", "2", "2", "2"}, leaves)
}

func TestSizeAndDepth(t *testing.T) {
	tree := branch("root", leaf("a"), branch("mid", leaf("b"), leaf("c")))
	require.Equal(t, 5, NodeSize(tree))
	require.Equal(t, 3, NodeDepth(tree))
	require.Equal(t, 1, NodeDepth(leaf("x")))
}

func TestCollectAndExists(t *testing.T) {
	tree := branch("root", leaf("a"), branch("mid", leaf("b"), leaf("target")))

	found := CollectNode(tree, func(n sql.Node) (string, bool) {
		f := n.(*fakeNode)
		if f.label == "target" {
			return f.label, true
		}
		return "", false
	})
	require.Equal(t, []string{"target"}, found)

	require.True(t, ExistsNode(tree, func(n sql.Node) bool {
		return n.(*fakeNode).label == "target"
	}))
	require.False(t, ForallNode(tree, func(n sql.Node) bool {
		return n.(*fakeNode).label == "target"
	}))
}
