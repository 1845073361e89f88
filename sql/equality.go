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

package sql

import "reflect"

// NodesEqual reports whether two plans are structurally equal: same shape,
// same field values, recursively through their children. Every concrete
// Node in this module is a plain (possibly pointer) struct with comparable
// fields, so reflect.DeepEqual is exactly structural equality here -- the
// same trick the rules executor's convergence check relies on.
func NodesEqual(a, b Node) bool {
	return reflect.DeepEqual(a, b)
}

// ExpressionsEqual is NodesEqual's analog for expressions.
func ExpressionsEqual(a, b Expression) bool {
	return reflect.DeepEqual(a, b)
}

// NodeSameAs reports whether a and b are the same node: either the same
// instance (reference equality, cheap) or structurally equal (value
// equality, the fallback). Rewrite rules that don't change a tree are
// expected to return the very same instance, which makes the reference
// check the common, fast path; the structural fallback makes sameAs robust
// even when a rule rebuilds an unchanged tree with fresh nodes.
func NodeSameAs(a, b Node) bool {
	if a == b {
		return true
	}
	return NodesEqual(a, b)
}

// ExpressionSameAs is NodeSameAs's analog for expressions.
func ExpressionSameAs(a, b Expression) bool {
	if a == b {
		return true
	}
	return ExpressionsEqual(a, b)
}
