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

package plan

import (
	"fmt"

	"github.com/arboradb/planner/sql"
)

// LocalRelation is a leaf node whose schema is fixed at construction time --
// the base-table placeholder every plan bottoms out at once the analyzer has
// resolved a name to a concrete source. This core carries no catalog or
// storage layer, so a LocalRelation's schema is exactly what it is told to
// have.
type LocalRelation struct {
	name   string
	schema sql.Schema
}

var _ sql.Node = (*LocalRelation)(nil)
var _ sql.Nameable = (*LocalRelation)(nil)

// NewLocalRelation builds a LocalRelation with the given name and schema.
func NewLocalRelation(name string, schema sql.Schema) *LocalRelation {
	return &LocalRelation{name: name, schema: schema}
}

// Name implements sql.Nameable.
func (r *LocalRelation) Name() string { return r.name }

// Children implements sql.Node: a LocalRelation is a leaf.
func (r *LocalRelation) Children() []sql.Node { return nil }

// WithChildren implements sql.Node.
func (r *LocalRelation) WithChildren(children ...sql.Node) (sql.Node, error) {
	return NillaryWithChildren(r, children...)
}

// Resolved implements sql.Node: a LocalRelation is resolved as soon as it
// exists.
func (r *LocalRelation) Resolved() bool { return true }

// Schema implements sql.Node.
func (r *LocalRelation) Schema() sql.Schema { return r.schema }

// newInstance returns a LocalRelation identical in shape but with every
// column given a fresh AttributeID. MultiInstanceRelation uses this to let
// the same named relation appear more than once in a single plan (a
// self-join) without its two occurrences aliasing each other's attributes.
func (r *LocalRelation) newInstance() *LocalRelation {
	fresh := make(sql.Schema, len(r.schema))
	for i, c := range r.schema {
		nc := *c
		nc.ID = sql.NewAttributeID()
		fresh[i] = &nc
	}
	return NewLocalRelation(r.name, fresh)
}

func (r *LocalRelation) String() string { return fmt.Sprintf("LocalRelation(%s)", r.name) }

// MultiInstanceRelation is implemented by leaf nodes that can produce a
// fresh, attribute-distinct copy of themselves. The analyzer calls
// NewInstance when the same relation is bound under two different aliases
// in one query (self-joins, recursive references) so that attribute
// identity stays one-to-one with occurrence rather than with name.
type MultiInstanceRelation interface {
	sql.Node
	NewInstance() sql.Node
}

var _ MultiInstanceRelation = (*LocalRelation)(nil)

// NewInstance implements MultiInstanceRelation.
func (r *LocalRelation) NewInstance() sql.Node { return r.newInstance() }

// SingleRowRelation is a leaf producing exactly one row and no columns, the
// base relation underneath a query with no FROM clause (SELECT 1 + 1).
type SingleRowRelation struct{}

var _ sql.Node = (*SingleRowRelation)(nil)

// NewSingleRowRelation builds a SingleRowRelation.
func NewSingleRowRelation() *SingleRowRelation { return &SingleRowRelation{} }

// Children implements sql.Node.
func (r *SingleRowRelation) Children() []sql.Node { return nil }

// WithChildren implements sql.Node.
func (r *SingleRowRelation) WithChildren(children ...sql.Node) (sql.Node, error) {
	return NillaryWithChildren(r, children...)
}

// Resolved implements sql.Node.
func (r *SingleRowRelation) Resolved() bool { return true }

// Schema implements sql.Node.
func (r *SingleRowRelation) Schema() sql.Schema { return nil }

func (r *SingleRowRelation) String() string { return "SingleRowRelation" }

// EmptyRelation is a leaf producing no rows at all, the shape
// FoldConstantFilters rewrites a statically-false filter down to.
type EmptyRelation struct {
	schema sql.Schema
}

var _ sql.Node = (*EmptyRelation)(nil)

// NewEmptyRelation builds an EmptyRelation carrying the given schema (the
// schema of whatever subtree it replaces, so the rest of the plan above it
// still typechecks).
func NewEmptyRelation(schema sql.Schema) *EmptyRelation { return &EmptyRelation{schema: schema} }

// Children implements sql.Node.
func (r *EmptyRelation) Children() []sql.Node { return nil }

// WithChildren implements sql.Node.
func (r *EmptyRelation) WithChildren(children ...sql.Node) (sql.Node, error) {
	return NillaryWithChildren(r, children...)
}

// Resolved implements sql.Node.
func (r *EmptyRelation) Resolved() bool { return true }

// Schema implements sql.Node.
func (r *EmptyRelation) Schema() sql.Schema { return r.schema }

func (r *EmptyRelation) String() string { return "EmptyRelation" }
