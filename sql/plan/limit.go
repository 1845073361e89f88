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

// Limit caps its child's output at N rows.
type Limit struct {
	UnaryNode
	Size int64
}

var _ sql.Node = (*Limit)(nil)

// NewLimit builds a Limit node over child.
func NewLimit(size int64, child sql.Node) *Limit {
	return &Limit{UnaryNode: UnaryNode{Child: child}, Size: size}
}

// WithChildren implements sql.Node.
func (l *Limit) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(l, len(children), 1)
	}
	return NewLimit(l.Size, children[0]), nil
}

func (l *Limit) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("Limit(%d)", l.Size)
	_ = pr.WriteChildren(l.Child.String())
	return pr.String()
}

// StrictlyTyped implements sql.StrictlyTypedNode: a Limit's bound must be a
// non-negative integral literal. This module's Size is always a concrete
// int64 rather than an arbitrary expression, so the only way that
// invariant can be violated is a negative size.
func (l *Limit) StrictlyTyped() (sql.Node, error) {
	if l.Size < 0 {
		return nil, sql.ErrTypeCheck.New(l, fmt.Sprintf("limit bound must be non-negative, got %d", l.Size))
	}
	return l, nil
}
