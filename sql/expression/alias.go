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

// Alias gives a name (and a fresh attribute identity) to an expression.
// Aliasing a reference to attribute X does not change X's identity: it
// introduces a *new* identity that happens to alias X's value, which is why
// ToAttribute()'s ID differs from any AttributeRef that might appear inside
// Child.
type Alias struct {
	UnaryExpression
	name string
	id   sql.AttributeID
}

var _ sql.Expression = (*Alias)(nil)
var _ NamedExpression = (*Alias)(nil)

// NewAlias builds an Alias with a fresh ID.
func NewAlias(name string, child sql.Expression) *Alias {
	return &Alias{UnaryExpression: UnaryExpression{Child: child}, name: name, id: sql.NewAttributeID()}
}

// NewAliasWithID builds an Alias carrying a specific ID, used when a rule
// must preserve an existing alias's identity across a rewrite (ReduceAliases,
// MergeProjects) so that references to it elsewhere in the plan stay valid.
func NewAliasWithID(id sql.AttributeID, name string, child sql.Expression) *Alias {
	return &Alias{UnaryExpression: UnaryExpression{Child: child}, name: name, id: id}
}

// ID implements NamedExpression.
func (a *Alias) ID() sql.AttributeID { return a.id }

// Name implements sql.Nameable.
func (a *Alias) Name() string { return a.name }

// DataType implements sql.Expression: an alias has its child's type.
func (a *Alias) DataType() types.DataType { return a.Child.DataType() }

// WithChildren implements sql.Expression.
func (a *Alias) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(a, len(children), 1)
	}
	return NewAliasWithID(a.id, a.name, children[0]), nil
}

// StrictlyTyped implements sql.Expression: an alias is strictly typed iff
// its child is; the rewrite preserves the alias's own identity and name.
func (a *Alias) StrictlyTyped() (sql.Expression, error) {
	child, err := a.Child.StrictlyTyped()
	if err != nil {
		return nil, err
	}
	if sql.ExpressionSameAs(child, a.Child) {
		return a, nil
	}
	return NewAliasWithID(a.id, a.name, child), nil
}

// Eval implements sql.Expression.
func (a *Alias) Eval() (interface{}, error) { return a.Child.Eval() }

// ToAttribute implements NamedExpression: the attribute this alias
// introduces, carrying this alias's ID, name, and the child's type/nullability.
func (a *Alias) ToAttribute() *AttributeRef {
	return NewAttributeRefWithID(a.id, a.name, a.Child.DataType(), a.Child.IsNullable())
}

func (a *Alias) String() string {
	return fmt.Sprintf("%s AS %s", a.Child, a.name)
}

// PlaceholderKind distinguishes the two kinds of analyzer-emitted aliasing
// placeholder that appear in a post-analysis Aggregate node.
type PlaceholderKind uint8

const (
	// GroupingKind tags a placeholder standing in for one of Aggregate's
	// grouping-key expressions.
	GroupingKind PlaceholderKind = iota
	// AggregationKind tags a placeholder standing in for one of
	// Aggregate's aggregate-function expressions.
	AggregationKind
)

// GroupingAlias is an Alias additionally tagged as originating from an
// Aggregate's grouping-key list, so PushFiltersThroughAggregates knows it is
// safe to expand back to its original grouping expression when pushing a
// filter below the Aggregate.
type GroupingAlias struct {
	Alias
	Origin sql.Expression
}

var _ sql.Expression = (*GroupingAlias)(nil)
var _ NamedExpression = (*GroupingAlias)(nil)

// NewGroupingAlias wraps a grouping expression as a named, identifiable
// placeholder.
func NewGroupingAlias(name string, origin sql.Expression) *GroupingAlias {
	return &GroupingAlias{Alias: *NewAlias(name, origin), Origin: origin}
}

// Kind reports that this placeholder originates from a grouping key.
func (g *GroupingAlias) Kind() PlaceholderKind { return GroupingKind }

// WithChildren implements sql.Expression.
func (g *GroupingAlias) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(g, len(children), 1)
	}
	return &GroupingAlias{Alias: *NewAliasWithID(g.id, g.name, children[0]), Origin: children[0]}, nil
}

func (g *GroupingAlias) ToAttribute() *AttributeRef { return g.Alias.ToAttribute() }

// StrictlyTyped implements sql.Expression, preserving the GroupingAlias
// wrapper (and its Origin) across the rewrite; Alias.StrictlyTyped would
// otherwise degrade this back to a plain Alias.
func (g *GroupingAlias) StrictlyTyped() (sql.Expression, error) {
	child, err := g.Child.StrictlyTyped()
	if err != nil {
		return nil, err
	}
	if sql.ExpressionSameAs(child, g.Child) {
		return g, nil
	}
	return &GroupingAlias{Alias: *NewAliasWithID(g.id, g.name, child), Origin: child}, nil
}

// AggregationAlias is an Alias additionally tagged as originating from an
// Aggregate's function list (a Count/Sum/etc. placeholder, represented here
// by its underlying pure expression since this core has no function
// registry of its own).
type AggregationAlias struct {
	Alias
}

var _ sql.Expression = (*AggregationAlias)(nil)
var _ NamedExpression = (*AggregationAlias)(nil)

// NewAggregationAlias wraps an aggregate-function expression as a named,
// identifiable placeholder.
func NewAggregationAlias(name string, fn sql.Expression) *AggregationAlias {
	return &AggregationAlias{Alias: *NewAlias(name, fn)}
}

// Kind reports that this placeholder originates from an aggregate function.
func (g *AggregationAlias) Kind() PlaceholderKind { return AggregationKind }

// WithChildren implements sql.Expression.
func (g *AggregationAlias) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(g, len(children), 1)
	}
	return &AggregationAlias{Alias: *NewAliasWithID(g.id, g.name, children[0])}, nil
}

func (g *AggregationAlias) ToAttribute() *AttributeRef { return g.Alias.ToAttribute() }

// StrictlyTyped implements sql.Expression, preserving the AggregationAlias
// wrapper across the rewrite.
func (g *AggregationAlias) StrictlyTyped() (sql.Expression, error) {
	child, err := g.Child.StrictlyTyped()
	if err != nil {
		return nil, err
	}
	if sql.ExpressionSameAs(child, g.Child) {
		return g, nil
	}
	return &AggregationAlias{Alias: *NewAliasWithID(g.id, g.name, child)}, nil
}
