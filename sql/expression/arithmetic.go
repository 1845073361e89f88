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

	"github.com/spf13/cast"

	"github.com/arboradb/planner/sql"
	"github.com/arboradb/planner/sql/types"
)

// arithOp identifies one of the four arithmetic operators. ArithmeticExpr
// computes plus, minus and multiply; Divide is a separate type that only
// borrows opDivide's symbol.
type arithOp int

const (
	opPlus arithOp = iota
	opMinus
	opMultiply
	opDivide
)

var arithSymbol = map[arithOp]string{opPlus: "+", opMinus: "-", opMultiply: "*", opDivide: "/"}

// ArithmeticExpr is the shared implementation of Plus, Minus, and Multiply:
// binary operators whose result type is the widest of the two operand
// types, and whose nullability is the default "nullable if either operand
// is" rule.
type ArithmeticExpr struct {
	BinaryExpression
	op arithOp
}

var _ sql.Expression = (*ArithmeticExpr)(nil)

func newArithmetic(op arithOp, left, right sql.Expression) *ArithmeticExpr {
	return &ArithmeticExpr{BinaryExpression: BinaryExpression{Left: left, Right: right}, op: op}
}

// NewPlus builds a Plus expression.
func NewPlus(left, right sql.Expression) *ArithmeticExpr { return newArithmetic(opPlus, left, right) }

// NewMinus builds a Minus expression.
func NewMinus(left, right sql.Expression) *ArithmeticExpr {
	return newArithmetic(opMinus, left, right)
}

// NewMultiply builds a Multiply expression.
func NewMultiply(left, right sql.Expression) *ArithmeticExpr {
	return newArithmetic(opMultiply, left, right)
}

// WithChildren implements sql.Expression.
func (e *ArithmeticExpr) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(e, len(children), 2)
	}
	return newArithmetic(e.op, children[0], children[1]), nil
}

// DataType implements sql.Expression: widest of the two operand types.
func (e *ArithmeticExpr) DataType() types.DataType {
	t, err := types.Widest(e.Left.DataType(), e.Right.DataType())
	if err != nil {
		// Unresolved/ill-typed plans may ask for DataType before strict
		// typing has rejected them; fall back to the left operand's type
		// rather than panicking, the same way an unresolved reference
		// reports whatever placeholder type it was built with.
		return e.Left.DataType()
	}
	return t
}

// StrictlyTyped implements sql.Expression: both operands widen to a common
// numeric type, with casts inserted as needed.
func (e *ArithmeticExpr) StrictlyTyped() (sql.Expression, error) {
	left, right, changed, err := strictifyBinaryNumeric(e, e.Left, e.Right)
	if err != nil {
		return nil, err
	}
	if !changed {
		return e, nil
	}
	return newArithmetic(e.op, left, right), nil
}

// Eval implements sql.Expression.
func (e *ArithmeticExpr) Eval() (interface{}, error) {
	lv, err := e.Left.Eval()
	if err != nil {
		return nil, err
	}
	rv, err := e.Right.Eval()
	if err != nil {
		return nil, err
	}
	if lv == nil || rv == nil {
		return nil, nil
	}

	t := e.DataType()
	if t.IsFractional() {
		lf, rf := cast.ToFloat64(lv), cast.ToFloat64(rv)
		return arithFloat(e.op, lf, rf), nil
	}
	li, ri := cast.ToInt64(lv), cast.ToInt64(rv)
	return arithInt(e.op, li, ri), nil
}

func arithFloat(op arithOp, l, r float64) float64 {
	switch op {
	case opPlus:
		return l + r
	case opMinus:
		return l - r
	case opMultiply:
		return l * r
	default:
		panic(fmt.Sprintf("arithFloat: unexpected op %v", op))
	}
}

func arithInt(op arithOp, l, r int64) int64 {
	switch op {
	case opPlus:
		return l + r
	case opMinus:
		return l - r
	case opMultiply:
		return l * r
	default:
		panic(fmt.Sprintf("arithInt: unexpected op %v", op))
	}
}

func (e *ArithmeticExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, arithSymbol[e.op], e.Right)
}

// Divide is kept separate from ArithmeticExpr because it is unconditionally
// nullable (division by zero yields null, regardless of operand
// nullability) and evaluates that case specially.
type Divide struct {
	BinaryExpression
}

var _ sql.Expression = (*Divide)(nil)

// NewDivide builds a Divide expression.
func NewDivide(left, right sql.Expression) *Divide {
	return &Divide{BinaryExpression{Left: left, Right: right}}
}

// WithChildren implements sql.Expression.
func (d *Divide) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(d, len(children), 2)
	}
	return NewDivide(children[0], children[1]), nil
}

// DataType implements sql.Expression.
func (d *Divide) DataType() types.DataType {
	t, err := types.Widest(d.Left.DataType(), d.Right.DataType())
	if err != nil {
		return d.Left.DataType()
	}
	return t
}

// IsNullable implements sql.Expression: Divide is always nullable.
func (d *Divide) IsNullable() bool { return true }

// StrictlyTyped implements sql.Expression.
func (d *Divide) StrictlyTyped() (sql.Expression, error) {
	left, right, changed, err := strictifyBinaryNumeric(d, d.Left, d.Right)
	if err != nil {
		return nil, err
	}
	if !changed {
		return d, nil
	}
	return NewDivide(left, right), nil
}

// Eval implements sql.Expression.
func (d *Divide) Eval() (interface{}, error) {
	lv, err := d.Left.Eval()
	if err != nil {
		return nil, err
	}
	rv, err := d.Right.Eval()
	if err != nil {
		return nil, err
	}
	if lv == nil || rv == nil {
		return nil, nil
	}
	rf := cast.ToFloat64(rv)
	if rf == 0 {
		return nil, nil
	}
	return cast.ToFloat64(lv) / rf, nil
}

func (d *Divide) String() string { return fmt.Sprintf("(%s / %s)", d.Left, d.Right) }

// Negate is unary arithmetic negation.
type Negate struct {
	UnaryExpression
}

var _ sql.Expression = (*Negate)(nil)

// NewNegate builds a Negate expression.
func NewNegate(child sql.Expression) *Negate { return &Negate{UnaryExpression{Child: child}} }

// WithChildren implements sql.Expression.
func (n *Negate) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(n, len(children), 1)
	}
	return NewNegate(children[0]), nil
}

// DataType implements sql.Expression: negation doesn't change the type.
func (n *Negate) DataType() types.DataType { return n.Child.DataType() }

// StrictlyTyped implements sql.Expression: the child must be numeric;
// negation itself inserts no cast.
func (n *Negate) StrictlyTyped() (sql.Expression, error) {
	child, err := n.Child.StrictlyTyped()
	if err != nil {
		return nil, err
	}
	if !child.DataType().IsNumeric() {
		return nil, sql.ErrTypeMismatch.New(child, child.DataType().Name(), "a numeric type")
	}
	if sql.ExpressionSameAs(child, n.Child) {
		return n, nil
	}
	return NewNegate(child), nil
}

// Eval implements sql.Expression.
func (n *Negate) Eval() (interface{}, error) {
	v, err := n.Child.Eval()
	if err != nil || v == nil {
		return nil, err
	}
	if n.Child.DataType().IsFractional() {
		return -cast.ToFloat64(v), nil
	}
	return -cast.ToInt64(v), nil
}

func (n *Negate) String() string { return fmt.Sprintf("-%s", n.Child) }

// strictifyBinaryNumeric is the shared strict-typing routine for arithmetic
// and numeric comparison: strictify both sides, widen to their common
// numeric type, and promote each side that doesn't already match. owner is
// used only to name the offending operand in a TypeMismatch.
func strictifyBinaryNumeric(owner sql.Expression, left, right sql.Expression) (sql.Expression, sql.Expression, bool, error) {
	sl, err := left.StrictlyTyped()
	if err != nil {
		return nil, nil, false, err
	}
	sr, err := right.StrictlyTyped()
	if err != nil {
		return nil, nil, false, err
	}
	if !sl.DataType().IsNumeric() {
		return nil, nil, false, sql.ErrTypeMismatch.New(sl, sl.DataType().Name(), "a numeric type")
	}
	if !sr.DataType().IsNumeric() {
		return nil, nil, false, sql.ErrTypeMismatch.New(sr, sr.DataType().Name(), "a numeric type")
	}

	widest, err := types.Widest(sl.DataType(), sr.DataType())
	if err != nil {
		return nil, nil, false, sql.ErrTypeMismatch.New(owner, sl.DataType().Name(), sr.DataType().Name())
	}

	newLeft := PromoteDataType(sl, widest)
	newRight := PromoteDataType(sr, widest)
	changed := !sql.ExpressionSameAs(newLeft, left) || !sql.ExpressionSameAs(newRight, right)
	return newLeft, newRight, changed, nil
}
