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
	"github.com/arboradb/planner/sql"
)

// Filter keeps only the rows of its child for which Condition evaluates to
// true; rows for which it evaluates to false or null are dropped.
type Filter struct {
	UnaryNode
	Condition sql.Expression
}

var _ sql.Node = (*Filter)(nil)
var _ sql.Expressioner = (*Filter)(nil)

// NewFilter builds a Filter over child.
func NewFilter(condition sql.Expression, child sql.Node) *Filter {
	return &Filter{UnaryNode: UnaryNode{Child: child}, Condition: condition}
}

// Expressions implements sql.Expressioner.
func (f *Filter) Expressions() []sql.Expression { return []sql.Expression{f.Condition} }

// WithExpressions implements sql.Expressioner.
func (f *Filter) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(f, len(exprs), 1)
	}
	return NewFilter(exprs[0], f.Child), nil
}

// Resolved implements sql.Node.
func (f *Filter) Resolved() bool { return f.Child.Resolved() && f.Condition.Resolved() }

// WithChildren implements sql.Node.
func (f *Filter) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(f, len(children), 1)
	}
	return NewFilter(f.Condition, children[0]), nil
}

func (f *Filter) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("Filter(%s)", f.Condition)
	_ = pr.WriteChildren(f.Child.String())
	return pr.String()
}
