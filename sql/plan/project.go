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
	"strings"

	"github.com/arboradb/planner/sql"
	"github.com/arboradb/planner/sql/expression"
)

// Project computes a list of expressions over its child's rows, becoming the
// new output schema. Every expression in the list must be a
// expression.NamedExpression so the resulting schema has a stable attribute
// identity to reference further up the plan.
type Project struct {
	UnaryNode
	ProjectList []sql.Expression
}

var _ sql.Node = (*Project)(nil)
var _ sql.Expressioner = (*Project)(nil)

// NewProject builds a Project over child. projectList may be empty here --
// the optimizer's input-contract check rejects an empty one with
// ErrEmptyProjections before any rule runs, rather than this constructor
// doing so itself.
func NewProject(projectList []sql.Expression, child sql.Node) *Project {
	return &Project{UnaryNode: UnaryNode{Child: child}, ProjectList: projectList}
}

// Expressions implements sql.Expressioner.
func (p *Project) Expressions() []sql.Expression { return p.ProjectList }

// WithExpressions implements sql.Expressioner.
func (p *Project) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(p.ProjectList) {
		return nil, sql.ErrInvalidChildrenNumber.New(p, len(exprs), len(p.ProjectList))
	}
	return NewProject(exprs, p.Child), nil
}

// Schema implements sql.Node: one output column per projected expression,
// named and typed from the expression itself.
func (p *Project) Schema() sql.Schema {
	schema := make(sql.Schema, len(p.ProjectList))
	for i, e := range p.ProjectList {
		schema[i] = columnForExpression(e)
	}
	return schema
}

// Resolved implements sql.Node.
func (p *Project) Resolved() bool {
	return p.Child.Resolved() && expression.AllResolved(p.ProjectList)
}

// WithChildren implements sql.Node.
func (p *Project) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(p, len(children), 1)
	}
	return NewProject(p.ProjectList, children[0]), nil
}

func (p *Project) String() string {
	pr := sql.NewTreePrinter()
	names := make([]string, len(p.ProjectList))
	for i, e := range p.ProjectList {
		names[i] = e.String()
	}
	_ = pr.WriteNode("Project(%s)", strings.Join(names, ", "))
	_ = pr.WriteChildren(p.Child.String())
	return pr.String()
}

// columnForExpression derives a Column describing e's contribution to a
// Project's or Aggregate's output schema: a expression.NamedExpression
// supplies its own ID and name, an unnamed expression falls back to its
// string form as an anonymous column with a fresh ID.
func columnForExpression(e sql.Expression) *sql.Column {
	if named, ok := e.(expression.NamedExpression); ok {
		return &sql.Column{
			Name:     named.Name(),
			Type:     named.DataType(),
			Nullable: named.IsNullable(),
			ID:       named.ID(),
		}
	}
	return &sql.Column{
		Name:     fmt.Sprintf("%s", e),
		Type:     e.DataType(),
		Nullable: e.IsNullable(),
		ID:       sql.NewAttributeID(),
	}
}
