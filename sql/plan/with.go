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
	"strings"

	"github.com/arboradb/planner/sql"
)

// CTE binds a single name to a subplan within a WITH clause.
type CTE struct {
	Name  string
	Query sql.Node
}

// With evaluates a list of named common table expressions before Child, so
// that Child (and later CTEs, for a WITH ... RECURSIVE-style chain) can
// refer to their outputs as if they were base relations. The binding
// itself carries no semantics of its own: the analyzer resolves each
// reference to a CTE name by substituting that CTE's Query, and once every
// reference is resolved this wrapper has nothing left to contribute and is
// stripped like Subquery.
type With struct {
	UnaryNode
	CTEs []CTE
}

var _ sql.Node = (*With)(nil)

// NewWith builds a With node wrapping child with the given CTE bindings.
func NewWith(ctes []CTE, child sql.Node) *With {
	return &With{UnaryNode: UnaryNode{Child: child}, CTEs: ctes}
}

// Resolved implements sql.Node.
func (w *With) Resolved() bool {
	if !w.Child.Resolved() {
		return false
	}
	for _, c := range w.CTEs {
		if !c.Query.Resolved() {
			return false
		}
	}
	return true
}

// WithChildren implements sql.Node: children are interpreted as [child,
// cte1.Query, cte2.Query, ...] so transform.Node can rewrite CTE bodies
// along with the main query.
func (w *With) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != len(w.CTEs)+1 {
		return nil, sql.ErrInvalidChildrenNumber.New(w, len(children), len(w.CTEs)+1)
	}
	newCTEs := make([]CTE, len(w.CTEs))
	for i, c := range w.CTEs {
		newCTEs[i] = CTE{Name: c.Name, Query: children[i+1]}
	}
	return NewWith(newCTEs, children[0]), nil
}

// Children implements sql.Node.
func (w *With) Children() []sql.Node {
	children := make([]sql.Node, 0, len(w.CTEs)+1)
	children = append(children, w.Child)
	for _, c := range w.CTEs {
		children = append(children, c.Query)
	}
	return children
}

func (w *With) String() string {
	names := make([]string, len(w.CTEs))
	for i, c := range w.CTEs {
		names[i] = c.Name
	}
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("With(%s)", strings.Join(names, ", "))
	_ = pr.WriteChildren(w.Child.String())
	return pr.String()
}
