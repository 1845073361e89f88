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

package predicate

import "github.com/arboradb/planner/sql"

// CanPushBelow reports whether expr's references are all produced by
// source, i.e. whether expr is safe to evaluate below a node whose output
// schema is source -- the subsetOfByID check PushFiltersThroughJoins uses
// to route each conjunct to one side of the join.
func CanPushBelow(expr sql.Expression, source sql.Schema) bool {
	return expr.References().SubsetOf(source.AttributeSet())
}

// Partition splits exprs into those that CanPushBelow source and those that
// cannot, preserving relative order within each group.
func Partition(exprs []sql.Expression, source sql.Schema) (pushable, remaining []sql.Expression) {
	for _, e := range exprs {
		if CanPushBelow(e, source) {
			pushable = append(pushable, e)
		} else {
			remaining = append(remaining, e)
		}
	}
	return pushable, remaining
}
