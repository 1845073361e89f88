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

// Package plan implements the logical plan algebra: relational operators
// over the expression algebra in package expression, with no notion of
// physical execution.
package plan

import "github.com/arboradb/planner/sql"

// IsUnary reports whether node has exactly one child.
func IsUnary(node sql.Node) bool { return len(node.Children()) == 1 }

// IsBinary reports whether node has exactly two children.
func IsBinary(node sql.Node) bool { return len(node.Children()) == 2 }

// NillaryWithChildren is the common WithChildren implementation for every
// leaf node (LocalRelation, EmptyRelation, SingleRowRelation).
func NillaryWithChildren(node sql.Node, children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(node, len(children), 0)
	}
	return node, nil
}

// UnaryNode is embedded by every plan node with exactly one child (Project,
// Filter, Sort, Limit, Distinct, Aggregate, Subquery).
type UnaryNode struct {
	Child sql.Node
}

// Schema implements part of sql.Node: a unary node's default schema is its
// child's, unqualified; operators that change shape (Project, Aggregate)
// override this.
func (n UnaryNode) Schema() sql.Schema { return n.Child.Schema() }

// Resolved implements part of sql.Node.
func (n UnaryNode) Resolved() bool { return n.Child.Resolved() }

// Children implements part of sql.Node.
func (n UnaryNode) Children() []sql.Node { return []sql.Node{n.Child} }

// BinaryNode is embedded by every plan node with exactly two children (Join,
// Union, Intersect, Except).
type BinaryNode struct {
	Left  sql.Node
	Right sql.Node
}

// Children implements part of sql.Node.
func (n BinaryNode) Children() []sql.Node { return []sql.Node{n.Left, n.Right} }

// Resolved implements part of sql.Node.
func (n BinaryNode) Resolved() bool { return n.Left.Resolved() && n.Right.Resolved() }
