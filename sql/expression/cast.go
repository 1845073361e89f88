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

// Cast represents CAST(x AS T). It is built both for user-written casts and
// by PromoteDataType, which the strict-typing pass uses to widen an operand
// along the numeric lattice; a Cast itself is allowed to narrow.
type Cast struct {
	UnaryExpression
	to types.DataType
}

var _ sql.Expression = (*Cast)(nil)

// NewCast builds a Cast of child to the given type.
func NewCast(child sql.Expression, to types.DataType) *Cast {
	return &Cast{UnaryExpression: UnaryExpression{Child: child}, to: to}
}

// To returns the target type of the cast.
func (c *Cast) To() types.DataType { return c.to }

// DataType implements sql.Expression.
func (c *Cast) DataType() types.DataType { return c.to }

// WithChildren implements sql.Expression.
func (c *Cast) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(c, len(children), 1)
	}
	return NewCast(children[0], c.to), nil
}

// StrictlyTyped implements sql.Expression: a Cast is strictly typed once its
// child is, regardless of whether to widens or narrows -- an explicit cast
// is the mechanism by which a user opts out of the implicit-widening-only
// rule that otherwise governs this algebra.
func (c *Cast) StrictlyTyped() (sql.Expression, error) {
	child, err := c.Child.StrictlyTyped()
	if err != nil {
		return nil, err
	}
	if sql.ExpressionSameAs(child, c.Child) {
		return c, nil
	}
	return NewCast(child, c.to), nil
}

// Eval implements sql.Expression.
func (c *Cast) Eval() (interface{}, error) {
	v, err := c.Child.Eval()
	if err != nil || v == nil {
		return nil, err
	}
	return coerce(v, c.to)
}

func coerce(v interface{}, to types.DataType) (interface{}, error) {
	switch to.Kind() {
	case types.KindBoolean:
		return cast.ToBoolE(v)
	case types.KindByte, types.KindShort, types.KindInt, types.KindLong:
		i, err := cast.ToInt64E(v)
		if err != nil {
			return nil, sql.ErrTypeMismatch.New(v, fmt.Sprintf("%T", v), to.Name())
		}
		return i, nil
	case types.KindFloat, types.KindDouble:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, sql.ErrTypeMismatch.New(v, fmt.Sprintf("%T", v), to.Name())
		}
		return f, nil
	case types.KindString:
		return cast.ToStringE(v)
	default:
		return v, nil
	}
}

func (c *Cast) String() string { return fmt.Sprintf("CAST(%s AS %s)", c.Child, c.to.Name()) }

// IsRedundantCast reports whether e is a Cast whose child already has the
// cast's target type -- identity casts that ReduceCasts collapses away.
func IsRedundantCast(e sql.Expression) (sql.Expression, bool) {
	c, ok := e.(*Cast)
	if !ok {
		return nil, false
	}
	if c.Child.DataType().Equal(c.to) {
		return c.Child, true
	}
	return nil, false
}

// MergeNestedCasts reports whether e is a Cast directly wrapping another
// Cast, in which case only the outer target type matters and the inner one
// can be discarded -- CAST(CAST(x AS A) AS B) simplifies to CAST(x AS B).
func MergeNestedCasts(e sql.Expression) (sql.Expression, bool) {
	outer, ok := e.(*Cast)
	if !ok {
		return nil, false
	}
	inner, ok := outer.Child.(*Cast)
	if !ok {
		return nil, false
	}
	return NewCast(inner.Child, outer.to), true
}

// PromoteDataType wraps e in an implicit Cast to target unless e is already
// of that type, in which case e is returned unchanged. This is the only
// place the strict-typing pass inserts a Cast node on its own initiative;
// every other cast in a plan is either user-written or analyzer-inserted
// for a declared column type.
func PromoteDataType(e sql.Expression, target types.DataType) sql.Expression {
	if e.DataType().Equal(target) {
		return e
	}
	return NewCast(e, target)
}
