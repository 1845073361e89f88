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

// Distinct eliminates duplicate rows from its child's output, comparing
// rows by value across every column of the child's schema.
type Distinct struct {
	UnaryNode
}

var _ sql.Node = (*Distinct)(nil)

// NewDistinct builds a Distinct node over child.
func NewDistinct(child sql.Node) *Distinct { return &Distinct{UnaryNode{Child: child}} }

// WithChildren implements sql.Node.
func (d *Distinct) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(d, len(children), 1)
	}
	return NewDistinct(children[0]), nil
}

func (d *Distinct) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("Distinct")
	_ = pr.WriteChildren(d.Child.String())
	return pr.String()
}
