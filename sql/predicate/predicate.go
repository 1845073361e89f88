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

// Package predicate implements conjunctive/disjunctive normal-form
// splitting and De Morgan rewriting over the expression algebra, shared by
// several optimizer rules (CNFConversion, ReduceNegations,
// PushFiltersThroughJoins, PushFiltersThroughAggregates).
package predicate

import (
	"github.com/arboradb/planner/sql"
	"github.com/arboradb/planner/sql/expression"
)

// SplitConjunction recursively breaks expr into its top-level AND operands.
// An expr with no top-level And is returned as a single-element slice.
func SplitConjunction(expr sql.Expression) []sql.Expression {
	and, ok := expr.(*expression.And)
	if !ok {
		return []sql.Expression{expr}
	}
	return append(SplitConjunction(and.Left), SplitConjunction(and.Right)...)
}

// SplitDisjunction recursively breaks expr into its top-level OR operands.
func SplitDisjunction(expr sql.Expression) []sql.Expression {
	or, ok := expr.(*expression.Or)
	if !ok {
		return []sql.Expression{expr}
	}
	return append(SplitDisjunction(or.Left), SplitDisjunction(or.Right)...)
}

// JoinConjunction folds exprs back into a single expression with AND,
// left-associatively. Panics on an empty slice -- callers must check length
// first, since there is no identity element worth inventing (an empty
// conjunction would have to be the literal TRUE, which callers should
// construct explicitly if that's what they mean).
func JoinConjunction(exprs []sql.Expression) sql.Expression {
	if len(exprs) == 0 {
		panic("predicate: JoinConjunction called with no expressions")
	}
	result := exprs[0]
	for _, e := range exprs[1:] {
		result = expression.NewAnd(result, e)
	}
	return result
}

// JoinDisjunction folds exprs back into a single expression with OR,
// left-associatively. Panics on an empty slice, for the same reason as
// JoinConjunction.
func JoinDisjunction(exprs []sql.Expression) sql.Expression {
	if len(exprs) == 0 {
		panic("predicate: JoinDisjunction called with no expressions")
	}
	result := exprs[0]
	for _, e := range exprs[1:] {
		result = expression.NewOr(result, e)
	}
	return result
}

// PushNotInward applies a single step of De Morgan's laws and double-
// negation elimination to a Not node, returning the rewritten expression
// and whether a rewrite actually happened. It is not recursive -- callers
// fold this over a tree with transform.Expr to push every negation down to
// the leaves.
func PushNotInward(e sql.Expression) (sql.Expression, bool) {
	not, ok := e.(*expression.Not)
	if !ok {
		return e, false
	}

	switch child := not.Child.(type) {
	case *expression.Not:
		// NOT NOT x => x
		return child.Child, true
	case *expression.And:
		// NOT (a AND b) => (NOT a) OR (NOT b)
		return expression.NewOr(expression.NewNot(child.Left), expression.NewNot(child.Right)), true
	case *expression.Or:
		// NOT (a OR b) => (NOT a) AND (NOT b)
		return expression.NewAnd(expression.NewNot(child.Left), expression.NewNot(child.Right)), true
	default:
		negated, ok := NegateComparison(not.Child)
		if !ok {
			return not, false
		}
		return negated, true
	}
}

// NegateComparison returns the logical negation of a single comparison or
// null-check expression as a comparison of the opposite sense (NOT (a = b)
// => a != b, NOT (a < b) => a >= b, NOT (x IS NULL) => x IS NOT NULL),
// avoiding the extra Not wrapper PushNotInward would otherwise leave behind.
func NegateComparison(e sql.Expression) (sql.Expression, bool) {
	switch c := e.(type) {
	case *expression.Comparison:
		return negateComparisonOp(c), true
	case *expression.IsNull:
		return expression.NewIsNotNull(c.Child), true
	case *expression.IsNotNull:
		return expression.NewIsNull(c.Child), true
	default:
		return nil, false
	}
}

func negateComparisonOp(c *expression.Comparison) sql.Expression {
	left, right := c.Left, c.Right
	switch c.Symbol() {
	case "=":
		return expression.NewNotEq(left, right)
	case "!=":
		return expression.NewEq(left, right)
	case "<":
		return expression.NewGtEq(left, right)
	case "<=":
		return expression.NewGt(left, right)
	case ">":
		return expression.NewLtEq(left, right)
	default: // ">="
		return expression.NewLt(left, right)
	}
}
