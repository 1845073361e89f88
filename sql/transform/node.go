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

// Package transform is the generic, type-safe tree-rewrite framework every
// rule in this module is built on. It drives plan and expression rewrites
// top-down or bottom-up, threading a TreeIdentity signal so that a pass
// which touches nothing returns the exact original instance -- the signal
// the rules executor relies on to detect that a batch has converged.
package transform

import "github.com/arboradb/planner/sql"

// TreeIdentity reports whether a transform changed the tree it was applied
// to. SameTree means the returned value is (or is equivalent to) the input;
// NewTree means at least one node was rebuilt.
type TreeIdentity bool

const (
	SameTree TreeIdentity = true
	NewTree  TreeIdentity = false
)

// NodeFunc rewrites a single plan node, reporting whether it changed it.
type NodeFunc func(sql.Node) (sql.Node, TreeIdentity, error)

// Node applies f to n from the bottom up: f is called on each child before
// being called on n itself (with children already rewritten), so a rule can
// assume its own pattern-match sees already-simplified subtrees. If f
// changes nothing anywhere in the tree, Node returns n unchanged, by
// identity.
func Node(n sql.Node, f NodeFunc) (sql.Node, TreeIdentity, error) {
	children := n.Children()
	if len(children) == 0 {
		return f(n)
	}

	var newChildren []sql.Node
	childrenSame := SameTree
	for i, c := range children {
		newChild, same, err := Node(c, f)
		if err != nil {
			return nil, SameTree, err
		}
		if same == NewTree {
			if newChildren == nil {
				newChildren = make([]sql.Node, len(children))
				copy(newChildren, children)
			}
			newChildren[i] = newChild
			childrenSame = NewTree
		}
	}

	node := n
	if childrenSame == NewTree {
		var err error
		node, err = n.WithChildren(newChildren...)
		if err != nil {
			return nil, SameTree, err
		}
	}

	node, selfSame, err := f(node)
	if err != nil {
		return nil, SameTree, err
	}
	return node, childrenSame && selfSame, nil
}

// NodeTopDown applies f to n from the top down: f is called on n first, and
// only then recurses into the (possibly rewritten) node's children. This is
// the shape a rule needs when rewriting a node can expose a different,
// still-unvisited shape below it that the same rule should also see in this
// same pass. Like Node, an unchanged tree is returned by identity.
func NodeTopDown(n sql.Node, f NodeFunc) (sql.Node, TreeIdentity, error) {
	node, selfSame, err := f(n)
	if err != nil {
		return nil, SameTree, err
	}

	children := node.Children()
	if len(children) == 0 {
		return node, selfSame, nil
	}

	var newChildren []sql.Node
	childrenSame := SameTree
	for i, c := range children {
		newChild, same, err := NodeTopDown(c, f)
		if err != nil {
			return nil, SameTree, err
		}
		if same == NewTree {
			if newChildren == nil {
				newChildren = make([]sql.Node, len(children))
				copy(newChildren, children)
			}
			newChildren[i] = newChild
			childrenSame = NewTree
		}
	}

	if childrenSame == NewTree {
		node, err = node.WithChildren(newChildren...)
		if err != nil {
			return nil, SameTree, err
		}
	}
	return node, selfSame && childrenSame, nil
}

// NodeWithParentFunc is NodeFunc's analog for rewrites that need to inspect
// (but not alter) the parent node and this node's position among its
// siblings, for rewrites that need to know which side of a binary node a
// child sits on.
type NodeWithParentFunc func(n, parent sql.Node, childNum int) (sql.Node, TreeIdentity, error)

// NodeWithParent is Node's analog threading parent/childNum context.
func NodeWithParent(n sql.Node, f NodeWithParentFunc) (sql.Node, TreeIdentity, error) {
	return nodeWithParent(n, nil, -1, f)
}

func nodeWithParent(n, parent sql.Node, childNum int, f NodeWithParentFunc) (sql.Node, TreeIdentity, error) {
	children := n.Children()
	var newChildren []sql.Node
	childrenSame := SameTree
	for i, c := range children {
		newChild, same, err := nodeWithParent(c, n, i, f)
		if err != nil {
			return nil, SameTree, err
		}
		if same == NewTree {
			if newChildren == nil {
				newChildren = make([]sql.Node, len(children))
				copy(newChildren, children)
			}
			newChildren[i] = newChild
			childrenSame = NewTree
		}
	}

	node := n
	if childrenSame == NewTree {
		var err error
		node, err = n.WithChildren(newChildren...)
		if err != nil {
			return nil, SameTree, err
		}
	}

	node, selfSame, err := f(node, parent, childNum)
	if err != nil {
		return nil, SameTree, err
	}
	return node, childrenSame && selfSame, nil
}

// NodeExprsFunc rewrites every expression directly attached to a node
// (not its children's expressions).
type NodeExprsFunc func(sql.Expression) (sql.Expression, TreeIdentity, error)

// NodeExprs rewrites every expression a single node carries via
// sql.Expressioner, bottom-up within each expression, leaving the node's
// plan children untouched. Nodes that don't implement Expressioner, or that
// carry none, are returned unchanged.
func NodeExprs(n sql.Node, f ExprFunc) (sql.Node, TreeIdentity, error) {
	e, ok := n.(sql.Expressioner)
	if !ok {
		return n, SameTree, nil
	}
	exprs := e.Expressions()
	if len(exprs) == 0 {
		return n, SameTree, nil
	}

	newExprs := make([]sql.Expression, len(exprs))
	same := SameTree
	for i, expr := range exprs {
		newExpr, exprSame, err := Expr(expr, f)
		if err != nil {
			return nil, SameTree, err
		}
		newExprs[i] = newExpr
		if exprSame == NewTree {
			same = NewTree
		}
	}
	if same == SameTree {
		return n, SameTree, nil
	}
	newNode, err := e.WithExpressions(newExprs...)
	if err != nil {
		return nil, SameTree, err
	}
	return newNode, NewTree, nil
}

// NodeExprsUp applies NodeExprs to every node in the plan, bottom-up.
func NodeExprsUp(n sql.Node, f ExprFunc) (sql.Node, TreeIdentity, error) {
	return Node(n, func(node sql.Node) (sql.Node, TreeIdentity, error) {
		return NodeExprs(node, f)
	})
}
