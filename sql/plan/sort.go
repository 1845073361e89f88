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

// Sort orders its child's rows by a list of sort keys, each an
// expression.SortOrder carrying its own direction and null placement.
type Sort struct {
	UnaryNode
	SortFields []sql.Expression
}

var _ sql.Node = (*Sort)(nil)
var _ sql.Expressioner = (*Sort)(nil)

// NewSort builds a Sort node over child. Each element of sortFields must be
// an *expression.SortOrder.
func NewSort(sortFields []sql.Expression, child sql.Node) *Sort {
	return &Sort{UnaryNode: UnaryNode{Child: child}, SortFields: sortFields}
}

// Expressions implements sql.Expressioner.
func (s *Sort) Expressions() []sql.Expression { return s.SortFields }

// WithExpressions implements sql.Expressioner.
func (s *Sort) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(s.SortFields) {
		return nil, sql.ErrInvalidChildrenNumber.New(s, len(exprs), len(s.SortFields))
	}
	return NewSort(exprs, s.Child), nil
}

// Resolved implements sql.Node.
func (s *Sort) Resolved() bool {
	return s.Child.Resolved() && expression.AllResolved(s.SortFields)
}

// WithChildren implements sql.Node.
func (s *Sort) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(s, len(children), 1)
	}
	return NewSort(s.SortFields, children[0]), nil
}

func (s *Sort) String() string {
	parts := make([]string, len(s.SortFields))
	for i, f := range s.SortFields {
		parts[i] = f.String()
	}
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("Sort(%s)", strings.Join(parts, ", "))
	_ = pr.WriteChildren(s.Child.String())
	return pr.String()
}
