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
	"github.com/arboradb/planner/sql/expression"
)

// Aggregate groups its child's rows by GroupByExprs and computes
// SelectedExprs over each group. SelectedExprs is the Aggregate's full
// output list (mirroring Project's ProjectList) and typically contains a mix
// of plain grouping-key references and aggregate-function placeholders
// (expression.GroupingAlias / expression.AggregationAlias), since SQL lets
// a GROUP BY query select both at once.
type Aggregate struct {
	UnaryNode
	SelectedExprs []sql.Expression
	GroupByExprs  []sql.Expression
}

var _ sql.Node = (*Aggregate)(nil)
var _ sql.Expressioner = (*Aggregate)(nil)

// NewAggregate builds an Aggregate over child.
func NewAggregate(selectedExprs, groupByExprs []sql.Expression, child sql.Node) *Aggregate {
	return &Aggregate{UnaryNode: UnaryNode{Child: child}, SelectedExprs: selectedExprs, GroupByExprs: groupByExprs}
}

// Expressions implements sql.Expressioner: SelectedExprs followed by
// GroupByExprs, in that order, so WithExpressions can split them back apart
// by length.
func (a *Aggregate) Expressions() []sql.Expression {
	return append(append([]sql.Expression{}, a.SelectedExprs...), a.GroupByExprs...)
}

// WithExpressions implements sql.Expressioner.
func (a *Aggregate) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	want := len(a.SelectedExprs) + len(a.GroupByExprs)
	if len(exprs) != want {
		return nil, sql.ErrInvalidChildrenNumber.New(a, len(exprs), want)
	}
	selected := exprs[:len(a.SelectedExprs)]
	groupBy := exprs[len(a.SelectedExprs):]
	return NewAggregate(selected, groupBy, a.Child), nil
}

// Resolved implements sql.Node.
func (a *Aggregate) Resolved() bool {
	return a.Child.Resolved() &&
		expression.AllResolved(a.SelectedExprs) &&
		expression.AllResolved(a.GroupByExprs)
}

// WithChildren implements sql.Node.
func (a *Aggregate) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(a, len(children), 1)
	}
	return NewAggregate(a.SelectedExprs, a.GroupByExprs, children[0]), nil
}

// Schema implements sql.Node: one output column per selected expression,
// the same derivation Project uses.
func (a *Aggregate) Schema() sql.Schema {
	schema := make(sql.Schema, len(a.SelectedExprs))
	for i, e := range a.SelectedExprs {
		schema[i] = columnForExpression(e)
	}
	return schema
}

func (a *Aggregate) String() string {
	selected := make([]string, len(a.SelectedExprs))
	for i, e := range a.SelectedExprs {
		selected[i] = e.String()
	}
	groupBy := make([]string, len(a.GroupByExprs))
	for i, e := range a.GroupByExprs {
		groupBy[i] = e.String()
	}

	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("Aggregate(%s GROUP BY %s)", strings.Join(selected, ", "), strings.Join(groupBy, ", "))
	_ = pr.WriteChildren(a.Child.String())
	return pr.String()
}
