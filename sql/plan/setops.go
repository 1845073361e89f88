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

package plan

import (
	"fmt"

	"github.com/arboradb/planner/sql"
	"github.com/arboradb/planner/sql/expression"
	"github.com/arboradb/planner/sql/types"
)

// setOpKind identifies which of the three set operators a setOp instance
// computes. All three require Left and Right to have the same number of
// columns and compatible (widest-common) types column by column.
type setOpKind int

const (
	setOpUnion setOpKind = iota
	setOpIntersect
	setOpExcept
)

var setOpName = map[setOpKind]string{setOpUnion: "Union", setOpIntersect: "Intersect", setOpExcept: "Except"}

// SetOperation is the shared implementation of Union, Intersect, and
// Except: binary operators that combine two same-arity row streams column
// by column rather than joining them on a predicate.
type SetOperation struct {
	BinaryNode
	kind     setOpKind
	Distinct bool
}

var _ sql.Node = (*SetOperation)(nil)

func newSetOp(kind setOpKind, left, right sql.Node, distinct bool) *SetOperation {
	return &SetOperation{BinaryNode: BinaryNode{Left: left, Right: right}, kind: kind, Distinct: distinct}
}

// NewUnion builds a Union of left and right. When distinct is true,
// duplicate rows across the combined output are removed (the way wrapping
// the result in Distinct would, but as a property of the operator itself so
// ReduceAliases and friends can still recognize the shape).
func NewUnion(left, right sql.Node, distinct bool) *SetOperation {
	return newSetOp(setOpUnion, left, right, distinct)
}

// NewIntersect builds an Intersect of left and right.
func NewIntersect(left, right sql.Node, distinct bool) *SetOperation {
	return newSetOp(setOpIntersect, left, right, distinct)
}

// NewExcept builds an Except of left and right (rows of left not present in
// right).
func NewExcept(left, right sql.Node, distinct bool) *SetOperation {
	return newSetOp(setOpExcept, left, right, distinct)
}

// Kind reports which of the three set operators this node computes.
func (s *SetOperation) Kind() string { return setOpName[s.kind] }

// IsUnion reports whether s is a Union.
func (s *SetOperation) IsUnion() bool { return s.kind == setOpUnion }

// IsIntersect reports whether s is an Intersect.
func (s *SetOperation) IsIntersect() bool { return s.kind == setOpIntersect }

// IsExcept reports whether s is an Except.
func (s *SetOperation) IsExcept() bool { return s.kind == setOpExcept }

// WithChildren implements sql.Node.
func (s *SetOperation) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(s, len(children), 2)
	}
	return newSetOp(s.kind, children[0], children[1], s.Distinct), nil
}

// Schema implements sql.Node: one column per position, named after the left
// side (by SQL convention the left operand's column names win). Nullability
// follows the operator: Union is nullable if either side's corresponding
// column is nullable, Intersect only if both are, and Except keeps the left
// side's nullability untouched (its output is exactly the left branch's
// rows).
func (s *SetOperation) Schema() sql.Schema {
	left := s.Left.Schema()
	right := s.Right.Schema()
	out := make(sql.Schema, len(left))
	for i, c := range left {
		nc := *c
		switch {
		case s.kind == setOpIntersect:
			nc.Nullable = c.Nullable && i < len(right) && right[i].Nullable
		case s.kind == setOpUnion && i < len(right) && right[i].Nullable:
			nc.Nullable = true
		}
		out[i] = &nc
	}
	return out
}

// StrictlyTyped implements sql.StrictlyTypedNode: the branches must align by
// column count and name, and every column pair must widen to a common type;
// a branch whose column isn't already at that widest type gets wrapped in a
// Project that casts it there, keeping the column's attribute ID stable.
func (s *SetOperation) StrictlyTyped() (sql.Node, error) {
	left, right := s.Left.Schema(), s.Right.Schema()
	if !SchemasCompatible(left, right) {
		return nil, sql.ErrSchemaMismatch.New(fmt.Sprintf("%s: branches do not align by column name, count, or type", s.Kind()))
	}

	newLeft, leftChanged := alignBranch(s.Left, left, right)
	newRight, rightChanged := alignBranch(s.Right, right, left)
	if !leftChanged && !rightChanged {
		return s, nil
	}
	return newSetOp(s.kind, newLeft, newRight, s.Distinct), nil
}

// alignBranch wraps branch in a Project that casts any column whose type
// isn't already the widest type shared with its counterpart in other,
// leaving columns that already match untouched. own and other must be the
// same length and already verified compatible by SchemasCompatible.
func alignBranch(branch sql.Node, own, other sql.Schema) (sql.Node, bool) {
	exprs := make([]sql.Expression, len(own))
	changed := false
	for i, c := range own {
		widest, _ := types.Widest(c.Type, other[i].Type)
		ref := expression.NewAttributeRefWithID(c.ID, c.Name, c.Type, c.Nullable)
		if c.Type.Equal(widest) {
			exprs[i] = ref
			continue
		}
		exprs[i] = expression.NewAliasWithID(c.ID, c.Name, expression.NewCast(ref, widest))
		changed = true
	}
	if !changed {
		return branch, false
	}
	return NewProject(exprs, branch), true
}

func (s *SetOperation) String() string {
	pr := sql.NewTreePrinter()
	if s.Distinct {
		_ = pr.WriteNode("%s(distinct)", s.Kind())
	} else {
		_ = pr.WriteNode("%s", s.Kind())
	}
	_ = pr.WriteChildren(s.Left.String(), s.Right.String())
	return pr.String()
}

// SchemasCompatible reports whether left and right have the same arity, the
// same column names in order, and a common widest type column by column --
// the alignment a set operator's StrictlyTyped requires before it can
// insert casts, and that PushLimitsThroughUnions relies on continuing to
// hold after the rewrite.
func SchemasCompatible(left, right sql.Schema) bool {
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if left[i].Name != right[i].Name {
			return false
		}
		if _, err := types.Widest(left[i].Type, right[i].Type); err != nil {
			return false
		}
	}
	return true
}
