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

// cmpOp identifies which of the six ordering comparisons a Comparison
// instance computes.
type cmpOp int

const (
	cmpEq cmpOp = iota
	cmpNotEq
	cmpLt
	cmpLtEq
	cmpGt
	cmpGtEq
)

var cmpSymbol = map[cmpOp]string{
	cmpEq: "=", cmpNotEq: "!=", cmpLt: "<", cmpLtEq: "<=", cmpGt: ">", cmpGtEq: ">=",
}

// Comparison is the shared implementation of Eq, NotEq, Lt, LtEq, Gt, and
// GtEq: binary predicates that always produce a Boolean, widening their
// operands to a common type before comparing.
type Comparison struct {
	BinaryExpression
	op cmpOp
}

var _ sql.Expression = (*Comparison)(nil)

func newComparison(op cmpOp, left, right sql.Expression) *Comparison {
	return &Comparison{BinaryExpression: BinaryExpression{Left: left, Right: right}, op: op}
}

// NewEq builds an Eq comparison.
func NewEq(left, right sql.Expression) *Comparison { return newComparison(cmpEq, left, right) }

// NewNotEq builds a NotEq comparison.
func NewNotEq(left, right sql.Expression) *Comparison { return newComparison(cmpNotEq, left, right) }

// NewLt builds a Lt comparison.
func NewLt(left, right sql.Expression) *Comparison { return newComparison(cmpLt, left, right) }

// NewLtEq builds a LtEq comparison.
func NewLtEq(left, right sql.Expression) *Comparison { return newComparison(cmpLtEq, left, right) }

// NewGt builds a Gt comparison.
func NewGt(left, right sql.Expression) *Comparison { return newComparison(cmpGt, left, right) }

// NewGtEq builds a GtEq comparison.
func NewGtEq(left, right sql.Expression) *Comparison { return newComparison(cmpGtEq, left, right) }

// WithChildren implements sql.Expression.
func (c *Comparison) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(c, len(children), 2)
	}
	return newComparison(c.op, children[0], children[1]), nil
}

// DataType implements sql.Expression: every comparison produces a Boolean.
func (c *Comparison) DataType() types.DataType { return types.Boolean }

// StrictlyTyped implements sql.Expression: operands of the same type
// (String to String, Boolean to Boolean included) are compared as they are,
// for every operator; two different numeric types widen to a common type
// through the numeric lattice.
func (c *Comparison) StrictlyTyped() (sql.Expression, error) {
	sl, err := c.Left.StrictlyTyped()
	if err != nil {
		return nil, err
	}
	sr, err := c.Right.StrictlyTyped()
	if err != nil {
		return nil, err
	}

	lt, rt := sl.DataType(), sr.DataType()
	var newLeft, newRight sql.Expression
	switch {
	case lt.Equal(rt):
		newLeft, newRight = sl, sr
	case lt.IsNumeric() && rt.IsNumeric():
		widest, werr := types.Widest(lt, rt)
		if werr != nil {
			return nil, sql.ErrTypeMismatch.New(c, lt.Name(), rt.Name())
		}
		newLeft, newRight = PromoteDataType(sl, widest), PromoteDataType(sr, widest)
	default:
		return nil, sql.ErrTypeMismatch.New(c, lt.Name(), rt.Name())
	}

	if sql.ExpressionSameAs(newLeft, c.Left) && sql.ExpressionSameAs(newRight, c.Right) {
		return c, nil
	}
	return newComparison(c.op, newLeft, newRight), nil
}

// Eval implements sql.Expression.
func (c *Comparison) Eval() (interface{}, error) {
	lv, err := c.Left.Eval()
	if err != nil {
		return nil, err
	}
	rv, err := c.Right.Eval()
	if err != nil {
		return nil, err
	}
	if lv == nil || rv == nil {
		return nil, nil
	}

	cmp, err := compareValues(c.Left.DataType(), lv, rv)
	if err != nil {
		return nil, err
	}

	switch c.op {
	case cmpEq:
		return cmp == 0, nil
	case cmpNotEq:
		return cmp != 0, nil
	case cmpLt:
		return cmp < 0, nil
	case cmpLtEq:
		return cmp <= 0, nil
	case cmpGt:
		return cmp > 0, nil
	case cmpGtEq:
		return cmp >= 0, nil
	default:
		return nil, fmt.Errorf("comparison: unexpected op %v", c.op)
	}
}

func compareValues(t types.DataType, a, b interface{}) (int, error) {
	switch {
	case t.IsNumeric():
		af, bf := cast.ToFloat64(a), cast.ToFloat64(b)
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	case t.Kind() == types.KindString:
		as, bs := cast.ToString(a), cast.ToString(b)
		switch {
		case as < bs:
			return -1, nil
		case as > bs:
			return 1, nil
		default:
			return 0, nil
		}
	case t.Kind() == types.KindBoolean:
		ab, bb := cast.ToBool(a), cast.ToBool(b)
		if ab == bb {
			return 0, nil
		}
		if !ab && bb {
			return -1, nil
		}
		return 1, nil
	default:
		return 0, sql.ErrTypeCheck.New(fmt.Sprintf("values of type %s are not comparable", t.Name()))
	}
}

func (c *Comparison) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left, cmpSymbol[c.op], c.Right)
}

// Symbol returns the comparison's operator as it renders in String, e.g.
// "=", "!=", "<". Used by the predicate package to negate a comparison
// without a type switch over every concrete operator.
func (c *Comparison) Symbol() string { return cmpSymbol[c.op] }

// IsNull is a unary predicate that tests whether its child evaluated to
// null. Like IsNotNull, and unlike the other unary expressions in this
// algebra, IsNull's own result is never itself null, so it overrides the
// UnaryExpression default.
type IsNull struct {
	UnaryExpression
}

var _ sql.Expression = (*IsNull)(nil)

// NewIsNull builds an IsNull predicate.
func NewIsNull(child sql.Expression) *IsNull { return &IsNull{UnaryExpression{Child: child}} }

// WithChildren implements sql.Expression.
func (n *IsNull) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(n, len(children), 1)
	}
	return NewIsNull(children[0]), nil
}

// DataType implements sql.Expression.
func (n *IsNull) DataType() types.DataType { return types.Boolean }

// IsNullable implements sql.Expression: a null check's result is itself
// never null.
func (n *IsNull) IsNullable() bool { return false }

// StrictlyTyped implements sql.Expression: IsNull imposes no type
// requirement on its child.
func (n *IsNull) StrictlyTyped() (sql.Expression, error) {
	child, err := n.Child.StrictlyTyped()
	if err != nil {
		return nil, err
	}
	if sql.ExpressionSameAs(child, n.Child) {
		return n, nil
	}
	return NewIsNull(child), nil
}

// Eval implements sql.Expression.
func (n *IsNull) Eval() (interface{}, error) {
	v, err := n.Child.Eval()
	if err != nil {
		return nil, err
	}
	return v == nil, nil
}

func (n *IsNull) String() string { return fmt.Sprintf("%s IS NULL", n.Child) }

// IsNotNull is the negation of IsNull, kept as a distinct node (rather than
// Not{IsNull{...}}) so ReduceNegations has a single hop to collapse rather
// than two.
type IsNotNull struct {
	UnaryExpression
}

var _ sql.Expression = (*IsNotNull)(nil)

// NewIsNotNull builds an IsNotNull predicate.
func NewIsNotNull(child sql.Expression) *IsNotNull {
	return &IsNotNull{UnaryExpression{Child: child}}
}

// WithChildren implements sql.Expression.
func (n *IsNotNull) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(n, len(children), 1)
	}
	return NewIsNotNull(children[0]), nil
}

// DataType implements sql.Expression.
func (n *IsNotNull) DataType() types.DataType { return types.Boolean }

// IsNullable implements sql.Expression.
func (n *IsNotNull) IsNullable() bool { return false }

// StrictlyTyped implements sql.Expression.
func (n *IsNotNull) StrictlyTyped() (sql.Expression, error) {
	child, err := n.Child.StrictlyTyped()
	if err != nil {
		return nil, err
	}
	if sql.ExpressionSameAs(child, n.Child) {
		return n, nil
	}
	return NewIsNotNull(child), nil
}

// Eval implements sql.Expression.
func (n *IsNotNull) Eval() (interface{}, error) {
	v, err := n.Child.Eval()
	if err != nil {
		return nil, err
	}
	return v != nil, nil
}

func (n *IsNotNull) String() string { return fmt.Sprintf("%s IS NOT NULL", n.Child) }

// AsIsNull reports whether e is itself an IsNull, returning it typed if so.
// A Not wrapping an IsNull is not matched.
func AsIsNull(e sql.Expression) (*IsNull, bool) {
	n, ok := e.(*IsNull)
	return n, ok
}
