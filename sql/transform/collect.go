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

import "github.com/arboradb/planner/sql"

// InspectNode performs a pre-order traversal of n, calling f at each node.
// Traversal into a node's children stops as soon as f returns false for it.
func InspectNode(n sql.Node, f func(sql.Node) bool) {
	if !f(n) {
		return
	}
	for _, c := range n.Children() {
		InspectNode(c, f)
	}
}

// InspectExpr is InspectNode's analog for expression trees.
func InspectExpr(e sql.Expression, f func(sql.Expression) bool) {
	if !f(e) {
		return
	}
	for _, c := range e.Children() {
		InspectExpr(c, f)
	}
}

// ExistsNode reports whether any node in n's subtree satisfies pred.
func ExistsNode(n sql.Node, pred func(sql.Node) bool) bool {
	found := false
	InspectNode(n, func(node sql.Node) bool {
		if found {
			return false
		}
		if pred(node) {
			found = true
			return false
		}
		return true
	})
	return found
}

// ForallNode reports whether every node in n's subtree satisfies pred.
func ForallNode(n sql.Node, pred func(sql.Node) bool) bool {
	return !ExistsNode(n, func(node sql.Node) bool { return !pred(node) })
}

// ExistsExpr is ExistsNode's analog for expression trees.
func ExistsExpr(e sql.Expression, pred func(sql.Expression) bool) bool {
	found := false
	InspectExpr(e, func(expr sql.Expression) bool {
		if found {
			return false
		}
		if pred(expr) {
			found = true
			return false
		}
		return true
	})
	return found
}

// ForallExpr is ForallNode's analog for expression trees.
func ForallExpr(e sql.Expression, pred func(sql.Expression) bool) bool {
	return !ExistsExpr(e, func(expr sql.Expression) bool { return !pred(expr) })
}

// CollectNode accumulates the result of applying a partial projection pf to
// every node in n's subtree that matches, in pre-order.
func CollectNode[T any](n sql.Node, pf func(sql.Node) (T, bool)) []T {
	var out []T
	InspectNode(n, func(node sql.Node) bool {
		if v, ok := pf(node); ok {
			out = append(out, v)
		}
		return true
	})
	return out
}

// CollectExpr is CollectNode's analog for expression trees.
func CollectExpr[T any](e sql.Expression, pf func(sql.Expression) (T, bool)) []T {
	var out []T
	InspectExpr(e, func(expr sql.Expression) bool {
		if v, ok := pf(expr); ok {
			out = append(out, v)
		}
		return true
	})
	return out
}

// NodeSize returns 1 plus the size of every child subtree.
func NodeSize(n sql.Node) int {
	size := 1
	for _, c := range n.Children() {
		size += NodeSize(c)
	}
	return size
}

// NodeDepth returns 1 plus the depth of the deepest child subtree, or 1 for
// a leaf.
func NodeDepth(n sql.Node) int {
	max := 0
	for _, c := range n.Children() {
		if d := NodeDepth(c); d > max {
			max = d
		}
	}
	return 1 + max
}

// ExprSize is NodeSize's analog for expression trees.
func ExprSize(e sql.Expression) int {
	size := 1
	for _, c := range e.Children() {
		size += ExprSize(c)
	}
	return size
}

// ExprDepth is NodeDepth's analog for expression trees.
func ExprDepth(e sql.Expression) int {
	max := 0
	for _, c := range e.Children() {
		if d := ExprDepth(c); d > max {
			max = d
		}
	}
	return 1 + max
}

// PrettyTree renders n's full subtree using its own String() method, which
// every node in this module builds via sql.TreePrinter.
func PrettyTree(n sql.Node) string {
	return n.String()
}
