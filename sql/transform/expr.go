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

package transform

import "github.com/arboradb/planner/sql"

// ExprFunc rewrites a single expression, reporting whether it changed it.
type ExprFunc func(sql.Expression) (sql.Expression, TreeIdentity, error)

// Expr applies f to e from the bottom up, exactly as Node does for plans.
func Expr(e sql.Expression, f ExprFunc) (sql.Expression, TreeIdentity, error) {
	children := e.Children()
	if len(children) == 0 {
		return f(e)
	}

	var newChildren []sql.Expression
	childrenSame := SameTree
	for i, c := range children {
		newChild, same, err := Expr(c, f)
		if err != nil {
			return nil, SameTree, err
		}
		if same == NewTree {
			if newChildren == nil {
				newChildren = make([]sql.Expression, len(children))
				copy(newChildren, children)
			}
			newChildren[i] = newChild
			childrenSame = NewTree
		}
	}

	expr := e
	if childrenSame == NewTree {
		var err error
		expr, err = e.WithChildren(newChildren...)
		if err != nil {
			return nil, SameTree, err
		}
	}

	expr, selfSame, err := f(expr)
	if err != nil {
		return nil, SameTree, err
	}
	return expr, childrenSame && selfSame, nil
}

// ExprTopDown is Expr's top-down analog, for rewrites that need to see a
// rewritten node's newly exposed shape again in the same pass. The rules in
// this module's optimizer use the bottom-up Expr.
func ExprTopDown(e sql.Expression, f ExprFunc) (sql.Expression, TreeIdentity, error) {
	expr, selfSame, err := f(e)
	if err != nil {
		return nil, SameTree, err
	}

	children := expr.Children()
	if len(children) == 0 {
		return expr, selfSame, nil
	}

	var newChildren []sql.Expression
	childrenSame := SameTree
	for i, c := range children {
		newChild, same, err := ExprTopDown(c, f)
		if err != nil {
			return nil, SameTree, err
		}
		if same == NewTree {
			if newChildren == nil {
				newChildren = make([]sql.Expression, len(children))
				copy(newChildren, children)
			}
			newChildren[i] = newChild
			childrenSame = NewTree
		}
	}

	if childrenSame == NewTree {
		expr, err = expr.WithChildren(newChildren...)
		if err != nil {
			return nil, SameTree, err
		}
	}
	return expr, selfSame && childrenSame, nil
}
