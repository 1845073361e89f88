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

import "github.com/arboradb/planner/sql"

// Subquery wraps a nested plan so it can appear as a node in an outer plan
// (a derived table) without losing the distinction between "this subtree is
// a self-contained query" and "this subtree is just more of the same
// query". EliminateSubqueries erases this wrapper once the analyzer no
// longer needs the boundary, splicing Query directly into the outer plan.
type Subquery struct {
	UnaryNode
	CorrelatedAlias string
}

var _ sql.Node = (*Subquery)(nil)

// NewSubquery wraps query as a Subquery, optionally under the given alias
// (the name by which the outer query refers to it, e.g. "FROM (...) AS t").
func NewSubquery(query sql.Node, alias string) *Subquery {
	return &Subquery{UnaryNode: UnaryNode{Child: query}, CorrelatedAlias: alias}
}

// Query returns the wrapped plan.
func (s *Subquery) Query() sql.Node { return s.Child }

// WithChildren implements sql.Node.
func (s *Subquery) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(s, len(children), 1)
	}
	return NewSubquery(children[0], s.CorrelatedAlias), nil
}

// Schema implements sql.Node: a Subquery's schema is its query's, qualified
// under its alias so the outer plan can resolve "t.col" against it.
func (s *Subquery) Schema() sql.Schema {
	if s.CorrelatedAlias == "" {
		return s.Child.Schema()
	}
	return sql.WithQualifier(s.Child.Schema(), s.CorrelatedAlias)
}

func (s *Subquery) String() string {
	pr := sql.NewTreePrinter()
	if s.CorrelatedAlias != "" {
		_ = pr.WriteNode("Subquery(%s)", s.CorrelatedAlias)
	} else {
		_ = pr.WriteNode("Subquery")
	}
	_ = pr.WriteChildren(s.Child.String())
	return pr.String()
}
