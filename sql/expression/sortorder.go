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

package expression

import (
	"fmt"

	"github.com/arboradb/planner/sql"
	"github.com/arboradb/planner/sql/types"
)

// Direction is the ascending/descending half of a sort key.
type Direction byte

const (
	// Asc sorts values from smallest to largest.
	Asc Direction = iota
	// Desc sorts values from largest to smallest.
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// NullOrdering controls where null values fall relative to non-null ones
// within a sort key, independent of Direction.
type NullOrdering byte

const (
	// NullsFirst orders null values before every non-null value.
	NullsFirst NullOrdering = iota
	// NullsLast orders null values after every non-null value.
	NullsLast
)

func (n NullOrdering) String() string {
	if n == NullsLast {
		return "NULLS LAST"
	}
	return "NULLS FIRST"
}

// SortOrder wraps a single sort key: the expression to order by, its
// direction, and where nulls fall. It is a pass-through UnaryExpression --
// Plan.Sort carries a list of these rather than bare expressions, since
// sorting needs direction and null-placement alongside the key itself.
type SortOrder struct {
	UnaryExpression
	Direction    Direction
	NullOrdering NullOrdering
}

var _ sql.Expression = (*SortOrder)(nil)

// NewSortOrder builds a SortOrder with the default null ordering for its
// direction (nulls sort as the lowest value: first for Asc, last for Desc),
// matching how every numeric and string type in this algebra orders null.
func NewSortOrder(key sql.Expression, dir Direction) *SortOrder {
	ordering := NullsFirst
	if dir == Desc {
		ordering = NullsLast
	}
	return &SortOrder{UnaryExpression: UnaryExpression{Child: key}, Direction: dir, NullOrdering: ordering}
}

// NewSortOrderWithNulls builds a SortOrder with an explicit null ordering,
// overriding the default implied by direction.
func NewSortOrderWithNulls(key sql.Expression, dir Direction, nulls NullOrdering) *SortOrder {
	return &SortOrder{UnaryExpression: UnaryExpression{Child: key}, Direction: dir, NullOrdering: nulls}
}

// Key returns the expression being sorted on.
func (s *SortOrder) Key() sql.Expression { return s.Child }

// WithChildren implements sql.Expression.
func (s *SortOrder) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(s, len(children), 1)
	}
	return &SortOrder{UnaryExpression: UnaryExpression{Child: children[0]}, Direction: s.Direction, NullOrdering: s.NullOrdering}, nil
}

// DataType implements sql.Expression: a sort key's type is its child's,
// since SortOrder itself is never evaluated to a value -- only used to
// compare two rows.
func (s *SortOrder) DataType() types.DataType { return s.Child.DataType() }

// StrictlyTyped implements sql.Expression.
func (s *SortOrder) StrictlyTyped() (sql.Expression, error) {
	child, err := s.Child.StrictlyTyped()
	if err != nil {
		return nil, err
	}
	if sql.ExpressionSameAs(child, s.Child) {
		return s, nil
	}
	return &SortOrder{UnaryExpression: UnaryExpression{Child: child}, Direction: s.Direction, NullOrdering: s.NullOrdering}, nil
}

// Eval implements sql.Expression. Never called in plan-time evaluation:
// SortOrder is a comparison key, not a value-producing expression.
func (s *SortOrder) Eval() (interface{}, error) {
	return nil, sql.ErrUnresolvedExpression.New(s.String())
}

func (s *SortOrder) String() string {
	return fmt.Sprintf("%s %s %s", s.Child, s.Direction, s.NullOrdering)
}
