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
	"strings"

	"github.com/arboradb/planner/sql"
	"github.com/arboradb/planner/sql/types"
)

// If evaluates Cond and returns IfTrue's value when Cond is true, IfFalse's
// value otherwise -- including when Cond evaluates to null, which If treats
// the same as false.
type If struct {
	Cond    sql.Expression
	IfTrue  sql.Expression
	IfFalse sql.Expression
}

var _ sql.Expression = (*If)(nil)

// NewIf builds an If expression.
func NewIf(cond, ifTrue, ifFalse sql.Expression) *If {
	return &If{Cond: cond, IfTrue: ifTrue, IfFalse: ifFalse}
}

// Children implements sql.Expression.
func (f *If) Children() []sql.Expression { return []sql.Expression{f.Cond, f.IfTrue, f.IfFalse} }

// WithChildren implements sql.Expression.
func (f *If) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 3 {
		return nil, sql.ErrInvalidChildrenNumber.New(f, len(children), 3)
	}
	return NewIf(children[0], children[1], children[2]), nil
}

// DataType implements sql.Expression: the widest of the two branches' types.
func (f *If) DataType() types.DataType {
	t, err := types.Widest(f.IfTrue.DataType(), f.IfFalse.DataType())
	if err != nil {
		return f.IfTrue.DataType()
	}
	return t
}

// IsNullable implements sql.Expression: If is nullable if either branch is,
// since either may end up supplying the result.
func (f *If) IsNullable() bool { return f.IfTrue.IsNullable() || f.IfFalse.IsNullable() }

// IsFoldable implements sql.Expression.
func (f *If) IsFoldable() bool { return AllFoldable(f.Children()) }

// Resolved implements sql.Expression.
func (f *If) Resolved() bool { return AllResolved(f.Children()) }

// References implements sql.Expression.
func (f *If) References() sql.AttributeSet { return UnionReferences(f.Children()) }

// StrictlyTyped implements sql.Expression: Cond must be Boolean; the two
// branches widen to a common type.
func (f *If) StrictlyTyped() (sql.Expression, error) {
	cond, err := f.Cond.StrictlyTyped()
	if err != nil {
		return nil, err
	}
	if !cond.DataType().Equal(types.Boolean) {
		return nil, sql.ErrTypeMismatch.New(cond, cond.DataType().Name(), types.Boolean.Name())
	}

	ifTrue, ifFalse, err := widenPair(f.IfTrue, f.IfFalse)
	if err != nil {
		return nil, err
	}

	if sql.ExpressionSameAs(cond, f.Cond) && sql.ExpressionSameAs(ifTrue, f.IfTrue) && sql.ExpressionSameAs(ifFalse, f.IfFalse) {
		return f, nil
	}
	return NewIf(cond, ifTrue, ifFalse), nil
}

// Eval implements sql.Expression.
func (f *If) Eval() (interface{}, error) {
	c, err := f.Cond.Eval()
	if err != nil {
		return nil, err
	}
	if c == true {
		return f.IfTrue.Eval()
	}
	return f.IfFalse.Eval()
}

func (f *If) String() string {
	return fmt.Sprintf("IF(%s, %s, %s)", f.Cond, f.IfTrue, f.IfFalse)
}

func widenPair(a, b sql.Expression) (sql.Expression, sql.Expression, error) {
	sa, err := a.StrictlyTyped()
	if err != nil {
		return nil, nil, err
	}
	sb, err := b.StrictlyTyped()
	if err != nil {
		return nil, nil, err
	}
	if sa.DataType().Equal(sb.DataType()) {
		return sa, sb, nil
	}
	widest, err := types.Widest(sa.DataType(), sb.DataType())
	if err != nil {
		return nil, nil, sql.ErrTypeMismatch.New(a, sa.DataType().Name(), sb.DataType().Name())
	}
	return PromoteDataType(sa, widest), PromoteDataType(sb, widest), nil
}

// Coalesce returns the value of the first of its arguments that is not
// null, or null if every argument is null. All arguments widen to a single
// common type.
type Coalesce struct {
	Args []sql.Expression
}

var _ sql.Expression = (*Coalesce)(nil)

// NewCoalesce builds a Coalesce expression over the given arguments.
func NewCoalesce(args ...sql.Expression) *Coalesce { return &Coalesce{Args: args} }

// Children implements sql.Expression.
func (c *Coalesce) Children() []sql.Expression { return c.Args }

// WithChildren implements sql.Expression.
func (c *Coalesce) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) == 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(c, len(children), -1)
	}
	return NewCoalesce(children...), nil
}

// DataType implements sql.Expression: the widest type among all arguments.
func (c *Coalesce) DataType() types.DataType {
	t := c.Args[0].DataType()
	for _, a := range c.Args[1:] {
		if w, err := types.Widest(t, a.DataType()); err == nil {
			t = w
		}
	}
	return t
}

// IsNullable implements sql.Expression: Coalesce is nullable only if every
// argument is (a single non-nullable argument guarantees a non-null result
// once reached).
func (c *Coalesce) IsNullable() bool {
	for _, a := range c.Args {
		if !a.IsNullable() {
			return false
		}
	}
	return true
}

// IsFoldable implements sql.Expression.
func (c *Coalesce) IsFoldable() bool { return AllFoldable(c.Args) }

// Resolved implements sql.Expression.
func (c *Coalesce) Resolved() bool { return AllResolved(c.Args) }

// References implements sql.Expression.
func (c *Coalesce) References() sql.AttributeSet { return UnionReferences(c.Args) }

// StrictlyTyped implements sql.Expression: every argument widens to the
// common type of the whole list.
func (c *Coalesce) StrictlyTyped() (sql.Expression, error) {
	strict := make([]sql.Expression, len(c.Args))
	for i, a := range c.Args {
		s, err := a.StrictlyTyped()
		if err != nil {
			return nil, err
		}
		strict[i] = s
	}

	target := strict[0].DataType()
	for _, s := range strict[1:] {
		if target.Equal(s.DataType()) {
			continue
		}
		w, err := types.Widest(target, s.DataType())
		if err != nil {
			return nil, sql.ErrTypeMismatch.New(c, target.Name(), s.DataType().Name())
		}
		target = w
	}

	changed := false
	promoted := make([]sql.Expression, len(strict))
	for i, s := range strict {
		promoted[i] = PromoteDataType(s, target)
		if !sql.ExpressionSameAs(promoted[i], c.Args[i]) {
			changed = true
		}
	}
	if !changed {
		return c, nil
	}
	return NewCoalesce(promoted...), nil
}

// Eval implements sql.Expression.
func (c *Coalesce) Eval() (interface{}, error) {
	for _, a := range c.Args {
		v, err := a.Eval()
		if err != nil {
			return nil, err
		}
		if v != nil {
			return v, nil
		}
	}
	return nil, nil
}

func (c *Coalesce) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("COALESCE(%s)", strings.Join(parts, ", "))
}
