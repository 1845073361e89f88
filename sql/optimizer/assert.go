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

package optimizer

import (
	"github.com/arboradb/planner/sql"
	"github.com/arboradb/planner/sql/plan"
	"github.com/arboradb/planner/sql/transform"
)

// applyStrictTyping rewrites n bottom-up, replacing every node that
// implements sql.StrictlyTypedNode with its strictly-typed form (inserting
// the widening casts a set operator's branches need, and rejecting a
// malformed Limit bound). Most node kinds don't implement the interface and
// pass through untouched.
func applyStrictTyping(n sql.Node) (sql.Node, error) {
	out, _, err := transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		typed, ok := node.(sql.StrictlyTypedNode)
		if !ok {
			return node, transform.SameTree, nil
		}
		strict, err := typed.StrictlyTyped()
		if err != nil {
			return nil, transform.SameTree, err
		}
		if sql.NodeSameAs(strict, node) {
			return node, transform.SameTree, nil
		}
		return strict, transform.NewTree, nil
	})
	return out, err
}

// checkInputContract walks n checking the invariants Optimize requires of
// its input before running any rule batch: every Project carries a
// non-empty projection list, and every binary node's two children expose
// disjoint attribute IDs (the deduplication invariant -- a rule that joined
// a relation against itself without first deduplicating its attribute IDs
// would make every reference upstream ambiguous).
func checkInputContract(n sql.Node) error {
	if p, ok := n.(*plan.Project); ok && len(p.ProjectList) == 0 {
		return sql.ErrEmptyProjections.New()
	}

	children := n.Children()
	if len(children) == 2 {
		left, right := children[0].Schema(), children[1].Schema()
		rightIDs := right.AttributeSet()
		for _, id := range left.IDs() {
			if rightIDs.Contains(id) {
				return sql.ErrDuplicateAttributeIDs.New(id, n)
			}
		}
	}

	for _, c := range children {
		if err := checkInputContract(c); err != nil {
			return err
		}
	}
	return nil
}
