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

// Package sql defines the core abstractions shared by the expression
// algebra, the logical plan algebra, and the tree-rewrite framework: the
// Node and Expression interfaces, schemas, and attribute identity.
package sql

import "github.com/arboradb/planner/sql/types"

// Nameable is implemented by anything with a SQL-visible name: attribute
// references, aliases, and the grouping/aggregation placeholders.
type Nameable interface {
	Name() string
}

// Tableable is implemented by expressions that carry a table qualifier,
// such as a qualified attribute reference (t.col).
type Tableable interface {
	Table() string
}

// Node is an immutable node in a logical plan tree. Every Node is a value:
// rewriting a plan never mutates an existing Node, it produces a new one via
// WithChildren.
type Node interface {
	// Children returns this node's direct child plans, in order. A leaf
	// relation returns nil.
	Children() []Node

	// WithChildren returns a copy of this node with its children replaced.
	// len(children) must match len(Children()); otherwise an
	// ErrInvalidChildrenNumber is returned. Unchanged children are still
	// expected to be passed back in; WithChildren does not itself detect
	// that nothing changed (the tree framework does).
	WithChildren(children ...Node) (Node, error)

	// Resolved reports whether every expression and child in this subtree
	// is resolved: all attribute references bind to an attribute by ID, and
	// every data type is known.
	Resolved() bool

	// Schema returns the node's output schema. Schema may only be called on
	// a Resolved node; calling it otherwise is a programmer error.
	Schema() Schema

	// String renders this node's full pretty-printed subtree, using
	// TreePrinter's box-drawing layout. Each node renders its own line and
	// reattaches its children's own String() output beneath it, so the
	// result is the complete plan, not just this node.
	String() string
}

// StrictlyTypedNode is implemented by plan operators whose strict typing
// obligation goes beyond what their own expressions already enforce: a set
// operator must align its branches' schemas (inserting widening casts where
// they don't already match), and Limit must bind a valid integral bound.
// Most node kinds need no such step and don't implement this interface.
type StrictlyTypedNode interface {
	Node

	// StrictlyTyped returns a version of this node with any required branch
	// realignment applied, or a TypeCheck/SchemaMismatch failure describing
	// the offending operand.
	StrictlyTyped() (Node, error)
}

// Expressioner is implemented by plan nodes that carry expressions as part
// of their own definition (Project's list, Filter's condition, Aggregate's
// keys and functions, ...), as distinct from child plans.
type Expressioner interface {
	Expressions() []Expression
	WithExpressions(exprs ...Expression) (Node, error)
}

// Expression is an immutable node in an expression tree.
type Expression interface {
	// Children returns this expression's direct child expressions, in
	// order. A leaf (Literal, AttributeRef) returns nil.
	Children() []Expression

	// WithChildren returns a copy of this expression with its children
	// replaced. len(children) must match len(Children()).
	WithChildren(children ...Expression) (Expression, error)

	// DataType returns the expression's inferred data type.
	DataType() types.DataType

	// IsNullable reports whether the expression may evaluate to null. It is
	// derived from the expression's children and its own semantics (e.g.
	// Divide is always nullable, for division by zero).
	IsNullable() bool

	// IsFoldable reports whether the expression can be evaluated at plan
	// time: all of its children are foldable and the expression's operator
	// is pure. Foldability excludes any attribute reference.
	IsFoldable() bool

	// Resolved reports whether this expression and all its descendants are
	// resolved.
	Resolved() bool

	// References returns the set of attribute IDs this expression reads,
	// directly or through its children.
	References() AttributeSet

	// StrictlyTyped returns a version of this expression with any required
	// implicit casts inserted and its children made strictly typed, or a
	// TypeMismatch failure describing the offending child and the expected
	// type class. It never panics: type errors are reported, not thrown.
	StrictlyTyped() (Expression, error)

	// Eval evaluates the expression at plan time. It is only meaningful
	// (and only ever called by this module) when IsFoldable() is true: a
	// foldable expression has no attribute references, so it needs no row
	// to evaluate against. This is how FoldConstants turns a closed
	// arithmetic/logical expression into a Literal; it is not a general
	// execution interface.
	Eval() (interface{}, error)

	// String renders a single-line, human readable (SQL-like) description
	// of this expression, including its children.
	String() string
}

// IsStrictlyTyped reports whether e is resolved and its StrictlyTyped form
// is identical to itself, i.e. no further cast insertion would change it.
func IsStrictlyTyped(e Expression) bool {
	if !e.Resolved() {
		return false
	}
	strict, err := e.StrictlyTyped()
	if err != nil {
		return false
	}
	return ExpressionsEqual(strict, e)
}

// IsWellTyped reports whether e's StrictlyTyped computation succeeds.
func IsWellTyped(e Expression) bool {
	_, err := e.StrictlyTyped()
	return err == nil
}

// Column describes one attribute of a plan's output schema.
type Column struct {
	// Name is the attribute's display name.
	Name string
	// Qualifier is the table/subquery alias the attribute is scoped under,
	// if any.
	Qualifier string
	// Type is the attribute's data type.
	Type types.DataType
	// Nullable reports whether the attribute may hold null.
	Nullable bool
	// ID is the attribute's globally unique identity, stable across
	// renames and casts.
	ID AttributeID
}

// Schema is the ordered output of a plan node.
type Schema []*Column

// IDs returns the attribute IDs of every column in the schema, in order.
func (s Schema) IDs() []AttributeID {
	ids := make([]AttributeID, len(s))
	for i, c := range s {
		ids[i] = c.ID
	}
	return ids
}

// AttributeSet returns the schema's column IDs as a set.
func (s Schema) AttributeSet() AttributeSet {
	return NewAttributeSet(s.IDs()...)
}

// EqualShape reports whether two schemas have the same number of columns,
// names (in order), types, and nullability -- the notion of "equivalence"
// the optimizer's schema-preservation law is stated in terms of. It
// deliberately ignores ID and Qualifier, since those are allowed to differ
// between a plan and its optimized equivalent.
func (s Schema) EqualShape(other Schema) bool {
	if len(s) != len(other) {
		return false
	}
	for i, c := range s {
		o := other[i]
		if c.Name != o.Name || c.Nullable != o.Nullable || !c.Type.Equal(o.Type) {
			return false
		}
	}
	return true
}

// MakeNullable returns a copy of the schema with every column marked
// nullable, used by outer-join schema computation.
func MakeNullable(s Schema) Schema {
	out := make(Schema, len(s))
	for i, c := range s {
		cc := *c
		cc.Nullable = true
		out[i] = &cc
	}
	return out
}

// WithQualifier returns a copy of the schema with every column's Qualifier
// set to q, used by Subquery to scope its child's output.
func WithQualifier(s Schema, q string) Schema {
	out := make(Schema, len(s))
	for i, c := range s {
		cc := *c
		cc.Qualifier = q
		out[i] = &cc
	}
	return out
}
