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

// NamedExpression is implemented by expressions that carry a stable,
// globally unique AttributeID: attribute references, aliases, and the
// analyzer-emitted grouping/aggregation placeholders. Reference-set
// operations and the deduplication invariant are both stated in terms of
// this ID, not the expression's name, so renaming is transparent to them.
type NamedExpression interface {
	sql.Expression
	sql.Nameable
	ID() sql.AttributeID
	// ToAttribute returns an AttributeRef that reads this expression's
	// value under this expression's ID, name, type, and nullability --
	// the way a Project's output schema is derived from its list.
	ToAttribute() *AttributeRef
}

// AttributeRef is a leaf expression that reads one attribute of a plan's
// input row by identity. Two AttributeRefs refer to the same attribute iff
// their IDs match, regardless of name, qualifier, or any cast applied along
// the way -- this is the "sameByID" referential check the spec calls out.
type AttributeRef struct {
	id        sql.AttributeID
	name      string
	qualifier string
	dataType  types.DataType
	nullable  bool
}

var _ sql.Expression = (*AttributeRef)(nil)
var _ NamedExpression = (*AttributeRef)(nil)

// NewAttributeRef builds an AttributeRef with a fresh ID. Use this when
// introducing a brand-new attribute (e.g. a LocalRelation's columns).
func NewAttributeRef(name string, dataType types.DataType, nullable bool) *AttributeRef {
	return NewAttributeRefWithID(sql.NewAttributeID(), name, dataType, nullable)
}

// NewAttributeRefWithID builds an AttributeRef carrying an existing ID, used
// when a reference must resolve to a specific, already-assigned attribute
// (the normal case: the analyzer binds names to existing IDs).
func NewAttributeRefWithID(id sql.AttributeID, name string, dataType types.DataType, nullable bool) *AttributeRef {
	return &AttributeRef{id: id, name: name, dataType: dataType, nullable: nullable}
}

// WithQualifier returns a copy of the reference scoped under the given
// table/subquery alias.
func (a *AttributeRef) WithQualifier(qualifier string) *AttributeRef {
	na := *a
	na.qualifier = qualifier
	return &na
}

// ID implements NamedExpression.
func (a *AttributeRef) ID() sql.AttributeID { return a.id }

// Name implements sql.Nameable.
func (a *AttributeRef) Name() string { return a.name }

// Table implements sql.Tableable.
func (a *AttributeRef) Table() string { return a.qualifier }

// Children implements sql.Expression: a reference is a leaf.
func (a *AttributeRef) Children() []sql.Expression { return nil }

// WithChildren implements sql.Expression.
func (a *AttributeRef) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(a, len(children), 0)
	}
	return a, nil
}

// DataType implements sql.Expression.
func (a *AttributeRef) DataType() types.DataType { return a.dataType }

// IsNullable implements sql.Expression.
func (a *AttributeRef) IsNullable() bool { return a.nullable }

// IsFoldable implements sql.Expression: an attribute reference is never
// foldable -- foldability excludes any attribute reference by definition.
func (a *AttributeRef) IsFoldable() bool { return false }

// Resolved implements sql.Expression: a reference is resolved as soon as it
// exists; binding happens by construction (the analyzer only ever builds
// one once it has found the attribute it names).
func (a *AttributeRef) Resolved() bool { return true }

// References implements sql.Expression.
func (a *AttributeRef) References() sql.AttributeSet { return sql.NewAttributeSet(a.id) }

// StrictlyTyped implements sql.Expression: a reference is already strictly
// typed.
func (a *AttributeRef) StrictlyTyped() (sql.Expression, error) { return a, nil }

// Eval implements sql.Expression. Never called: IsFoldable is always false.
func (a *AttributeRef) Eval() (interface{}, error) {
	return nil, sql.ErrUnresolvedExpression.New(a.String())
}

// ToAttribute implements NamedExpression: a reference to itself is itself.
func (a *AttributeRef) ToAttribute() *AttributeRef { return a }

// SameByID reports whether a and other name the same attribute, ignoring
// name, qualifier, type, and nullability -- the referential identity check
// that survives renaming.
func (a *AttributeRef) SameByID(other *AttributeRef) bool { return a.id == other.id }

func (a *AttributeRef) String() string {
	if a.qualifier != "" {
		return fmt.Sprintf("%s.%s", a.qualifier, a.name)
	}
	return a.name
}
