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

// And is three-valued conjunction: false short-circuits regardless of the
// other operand's nullness, and the result is null only when neither
// operand is false and at least one is null.
type And struct {
	BinaryExpression
}

var _ sql.Expression = (*And)(nil)

// NewAnd builds an And expression.
func NewAnd(left, right sql.Expression) *And { return &And{BinaryExpression{Left: left, Right: right}} }

// WithChildren implements sql.Expression.
func (a *And) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(a, len(children), 2)
	}
	return NewAnd(children[0], children[1]), nil
}

// DataType implements sql.Expression.
func (a *And) DataType() types.DataType { return types.Boolean }

// StrictlyTyped implements sql.Expression: both operands must be Boolean.
func (a *And) StrictlyTyped() (sql.Expression, error) {
	left, right, changed, err := strictifyBinaryBoolean(a.Left, a.Right)
	if err != nil {
		return nil, err
	}
	if !changed {
		return a, nil
	}
	return NewAnd(left, right), nil
}

// Eval implements sql.Expression.
func (a *And) Eval() (interface{}, error) {
	lv, err := a.Left.Eval()
	if err != nil {
		return nil, err
	}
	if lv == false {
		return false, nil
	}

	rv, err := a.Right.Eval()
	if err != nil {
		return nil, err
	}
	if rv == false {
		return false, nil
	}

	if lv == nil || rv == nil {
		return nil, nil
	}
	return true, nil
}

func (a *And) String() string { return fmt.Sprintf("(%s AND %s)", a.Left, a.Right) }

// Or is three-valued disjunction: true short-circuits regardless of the
// other operand's nullness, and the result is null only when neither
// operand is true and at least one is null.
type Or struct {
	BinaryExpression
}

var _ sql.Expression = (*Or)(nil)

// NewOr builds an Or expression.
func NewOr(left, right sql.Expression) *Or { return &Or{BinaryExpression{Left: left, Right: right}} }

// WithChildren implements sql.Expression.
func (o *Or) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(o, len(children), 2)
	}
	return NewOr(children[0], children[1]), nil
}

// DataType implements sql.Expression.
func (o *Or) DataType() types.DataType { return types.Boolean }

// StrictlyTyped implements sql.Expression.
func (o *Or) StrictlyTyped() (sql.Expression, error) {
	left, right, changed, err := strictifyBinaryBoolean(o.Left, o.Right)
	if err != nil {
		return nil, err
	}
	if !changed {
		return o, nil
	}
	return NewOr(left, right), nil
}

// Eval implements sql.Expression.
func (o *Or) Eval() (interface{}, error) {
	lv, err := o.Left.Eval()
	if err != nil {
		return nil, err
	}
	if lv == true {
		return true, nil
	}

	rv, err := o.Right.Eval()
	if err != nil {
		return nil, err
	}
	if rv == true {
		return true, nil
	}

	if lv == nil || rv == nil {
		return nil, nil
	}
	return false, nil
}

func (o *Or) String() string { return fmt.Sprintf("(%s OR %s)", o.Left, o.Right) }

// Not is three-valued negation: NOT NULL is NULL, not true.
type Not struct {
	UnaryExpression
}

var _ sql.Expression = (*Not)(nil)

// NewNot builds a Not expression.
func NewNot(child sql.Expression) *Not { return &Not{UnaryExpression{Child: child}} }

// WithChildren implements sql.Expression.
func (n *Not) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(n, len(children), 1)
	}
	return NewNot(children[0]), nil
}

// DataType implements sql.Expression.
func (n *Not) DataType() types.DataType { return types.Boolean }

// IsNullable implements sql.Expression: NOT NULL propagates null, unlike
// IsNull/IsNotNull which always resolve to a concrete Boolean.
func (n *Not) IsNullable() bool { return n.Child.IsNullable() }

// StrictlyTyped implements sql.Expression.
func (n *Not) StrictlyTyped() (sql.Expression, error) {
	child, err := n.Child.StrictlyTyped()
	if err != nil {
		return nil, err
	}
	if !child.DataType().Equal(types.Boolean) {
		return nil, sql.ErrTypeMismatch.New(child, child.DataType().Name(), types.Boolean.Name())
	}
	if sql.ExpressionSameAs(child, n.Child) {
		return n, nil
	}
	return NewNot(child), nil
}

// Eval implements sql.Expression.
func (n *Not) Eval() (interface{}, error) {
	v, err := n.Child.Eval()
	if err != nil || v == nil {
		return nil, err
	}
	return !v.(bool), nil
}

func (n *Not) String() string { return fmt.Sprintf("NOT %s", n.Child) }

// Negation reports whether e is a Not, the shape ReduceNegations matches on
// to push negation inward via De Morgan's laws or cancel double negatives.
func Negation(e sql.Expression) (*Not, bool) {
	n, ok := e.(*Not)
	return n, ok
}

func strictifyBinaryBoolean(left, right sql.Expression) (sql.Expression, sql.Expression, bool, error) {
	sl, err := left.StrictlyTyped()
	if err != nil {
		return nil, nil, false, err
	}
	sr, err := right.StrictlyTyped()
	if err != nil {
		return nil, nil, false, err
	}
	if !sl.DataType().Equal(types.Boolean) {
		return nil, nil, false, sql.ErrTypeMismatch.New(sl, sl.DataType().Name(), types.Boolean.Name())
	}
	if !sr.DataType().Equal(types.Boolean) {
		return nil, nil, false, sql.ErrTypeMismatch.New(sr, sr.DataType().Name(), types.Boolean.Name())
	}
	changed := !sql.ExpressionSameAs(sl, left) || !sql.ExpressionSameAs(sr, right)
	return sl, sr, changed, nil
}
