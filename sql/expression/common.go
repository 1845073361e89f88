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

// Package expression implements the expression algebra: literals, attribute
// references, arithmetic, comparison, logical predicates, conditionals,
// casts, aliases, and the analyzer-emitted aggregate placeholders.
package expression

import "github.com/arboradb/planner/sql"

// IsUnary reports whether e has exactly one child.
func IsUnary(e sql.Expression) bool { return len(e.Children()) == 1 }

// IsBinary reports whether e has exactly two children.
func IsBinary(e sql.Expression) bool { return len(e.Children()) == 2 }

// UnaryExpression is embedded by expressions with exactly one child
// (Alias, Cast, Not, SortOrder, IsNull, IsNotNull, Negate).
type UnaryExpression struct {
	Child sql.Expression
}

// Children implements part of sql.Expression.
func (e *UnaryExpression) Children() []sql.Expression { return []sql.Expression{e.Child} }

// Resolved implements part of sql.Expression.
func (e *UnaryExpression) Resolved() bool { return e.Child.Resolved() }

// References implements part of sql.Expression.
func (e *UnaryExpression) References() sql.AttributeSet { return e.Child.References() }

// IsFoldable implements part of sql.Expression: a unary expression is
// foldable iff its child is (every unary operator in this algebra is pure).
func (e *UnaryExpression) IsFoldable() bool { return e.Child.IsFoldable() }

// IsNullable reports the child's nullability, the default rule for unary
// expressions (Alias, Negate, Cast, Not); IsNull and IsNotNull override
// this since a null check's own result is never itself null.
func (e *UnaryExpression) IsNullable() bool { return e.Child.IsNullable() }

// BinaryExpression is embedded by expressions with exactly two children
// (arithmetic, comparison, And, Or).
type BinaryExpression struct {
	Left  sql.Expression
	Right sql.Expression
}

// Children implements part of sql.Expression.
func (e *BinaryExpression) Children() []sql.Expression {
	return []sql.Expression{e.Left, e.Right}
}

// Resolved implements part of sql.Expression.
func (e *BinaryExpression) Resolved() bool {
	return e.Left.Resolved() && e.Right.Resolved()
}

// References implements part of sql.Expression.
func (e *BinaryExpression) References() sql.AttributeSet {
	return e.Left.References().Union(e.Right.References())
}

// IsFoldable implements part of sql.Expression: a binary expression is
// foldable iff both children are (every binary operator in this algebra is
// pure).
func (e *BinaryExpression) IsFoldable() bool {
	return e.Left.IsFoldable() && e.Right.IsFoldable()
}

// IsNullable reports whether either operand is nullable, the default rule
// for binary expressions; arithmetic overrides this for Divide.
func (e *BinaryExpression) IsNullable() bool {
	return e.Left.IsNullable() || e.Right.IsNullable()
}

// AllFoldable reports whether every expression in exprs is foldable. Used by
// n-ary expressions (If, Coalesce) that don't fit the unary/binary shape.
func AllFoldable(exprs []sql.Expression) bool {
	for _, e := range exprs {
		if !e.IsFoldable() {
			return false
		}
	}
	return true
}

// AllResolved reports whether every expression in exprs is resolved.
func AllResolved(exprs []sql.Expression) bool {
	for _, e := range exprs {
		if !e.Resolved() {
			return false
		}
	}
	return true
}

// UnionReferences unions the reference sets of every expression in exprs.
func UnionReferences(exprs []sql.Expression) sql.AttributeSet {
	out := sql.NewAttributeSet()
	for _, e := range exprs {
		out = out.Union(e.References())
	}
	return out
}

// AnyNullable reports whether any expression in exprs is nullable.
func AnyNullable(exprs []sql.Expression) bool {
	for _, e := range exprs {
		if e.IsNullable() {
			return true
		}
	}
	return false
}
