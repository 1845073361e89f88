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

// Literal is a constant value of a known type. It is always resolved,
// always foldable, and nullable iff its value is nil.
type Literal struct {
	value    interface{}
	dataType types.DataType
}

var _ sql.Expression = (*Literal)(nil)

// NewLiteral builds a Literal of the given value and type.
func NewLiteral(value interface{}, dataType types.DataType) *Literal {
	return &Literal{value: value, dataType: dataType}
}

// Value returns the literal's Go value.
func (l *Literal) Value() interface{} { return l.value }

// Children implements sql.Expression.
func (l *Literal) Children() []sql.Expression { return nil }

// WithChildren implements sql.Expression.
func (l *Literal) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(l, len(children), 0)
	}
	return l, nil
}

// DataType implements sql.Expression.
func (l *Literal) DataType() types.DataType { return l.dataType }

// IsNullable implements sql.Expression.
func (l *Literal) IsNullable() bool { return l.value == nil }

// IsFoldable implements sql.Expression: literals are always foldable.
func (l *Literal) IsFoldable() bool { return true }

// Resolved implements sql.Expression: literals are always resolved.
func (l *Literal) Resolved() bool { return true }

// References implements sql.Expression: literals reference nothing.
func (l *Literal) References() sql.AttributeSet { return sql.NewAttributeSet() }

// StrictlyTyped implements sql.Expression: a literal is always already
// strictly typed.
func (l *Literal) StrictlyTyped() (sql.Expression, error) { return l, nil }

// Eval implements sql.Expression.
func (l *Literal) Eval() (interface{}, error) { return l.value, nil }

func (l *Literal) String() string {
	if l.value == nil {
		return "NULL"
	}
	if l.dataType.Kind() == types.KindString {
		return fmt.Sprintf("%q", l.value)
	}
	return fmt.Sprintf("%v", l.value)
}

// True and False are the canonical Boolean literals, used pervasively by the
// optimizer's constant-folding and predicate-simplification rules.
var (
	True  = NewLiteral(true, types.Boolean)
	False = NewLiteral(false, types.Boolean)
	Null  = func(t types.DataType) *Literal { return NewLiteral(nil, t) }
)

// IsTrue reports whether e is the literal TRUE.
func IsTrue(e sql.Expression) bool {
	l, ok := e.(*Literal)
	return ok && l.value == true
}

// IsFalse reports whether e is the literal FALSE.
func IsFalse(e sql.Expression) bool {
	l, ok := e.(*Literal)
	return ok && l.value == false
}

// IsNullLiteral reports whether e is a literal holding null.
func IsNullLiteral(e sql.Expression) bool {
	l, ok := e.(*Literal)
	return ok && l.value == nil
}
