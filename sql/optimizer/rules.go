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
	"github.com/arboradb/planner/sql/expression"
	"github.com/arboradb/planner/sql/plan"
	"github.com/arboradb/planner/sql/predicate"
	"github.com/arboradb/planner/sql/transform"
)

// DefaultRules is the ordered list every DefaultBatches caller runs.
// Order matters: earlier rules expose rewrite opportunities for later
// ones (CNFConversion before EliminateCommonPredicates, MergeFilters
// before PushFiltersThroughJoins, and so on).
var DefaultRules = []Rule{
	{Name: "FoldConstants", Apply: foldConstants},
	{Name: "FoldConstantFilters", Apply: foldConstantFilters},
	{Name: "FoldLogicalPredicates", Apply: foldLogicalPredicates},
	{Name: "CNFConversion", Apply: cnfConversion},
	{Name: "EliminateCommonPredicates", Apply: eliminateCommonPredicates},
	{Name: "ReduceAliases", Apply: reduceAliases},
	{Name: "ReduceCasts", Apply: reduceCasts},
	{Name: "MergeFilters", Apply: mergeFilters},
	{Name: "ReduceLimits", Apply: reduceLimits},
	{Name: "ReduceNegations", Apply: reduceNegations},
	{Name: "MergeProjects", Apply: mergeProjects},
	{Name: "EliminateSubqueries", Apply: eliminateSubqueries},
	{Name: "PushFiltersThroughProjects", Apply: pushFiltersThroughProjects},
	{Name: "PushFiltersThroughJoins", Apply: pushFiltersThroughJoins},
	{Name: "PushFiltersThroughAggregates", Apply: pushFiltersThroughAggregates},
	{Name: "PushProjectsThroughLimits", Apply: pushProjectsThroughLimits},
	{Name: "PushLimitsThroughUnions", Apply: pushLimitsThroughUnions},
}

// foldConstants replaces any foldable subexpression with a literal of its
// evaluated value, preserving type and nullability.
func foldConstants(ctx *sql.Context, o *Optimizer, n sql.Node) (sql.Node, error) {
	out, _, err := transform.NodeExprsUp(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		if _, ok := e.(*expression.Literal); ok {
			return e, transform.SameTree, nil
		}
		// A NamedExpression's identity (its attribute ID) is load-bearing
		// for everything above it in the plan; folding it away here would
		// fold the identity out of existence along with the value. Its
		// child still gets folded, on the way up to it.
		if _, ok := e.(expression.NamedExpression); ok {
			return e, transform.SameTree, nil
		}
		if !e.IsFoldable() {
			return e, transform.SameTree, nil
		}
		v, err := e.Eval()
		if err != nil {
			return e, transform.SameTree, nil
		}
		return expression.NewLiteral(v, e.DataType()), transform.NewTree, nil
	})
	return out, err
}

// foldConstantFilters rewrites Filter(p, TRUE) to p and Filter(p, FALSE) (or
// a statically-null condition) to an EmptyRelation carrying p's schema.
func foldConstantFilters(ctx *sql.Context, o *Optimizer, n sql.Node) (sql.Node, error) {
	out, _, err := transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		f, ok := node.(*plan.Filter)
		if !ok {
			return node, transform.SameTree, nil
		}
		switch {
		case expression.IsTrue(f.Condition):
			return f.Child, transform.NewTree, nil
		case expression.IsFalse(f.Condition) || expression.IsNullLiteral(f.Condition):
			return plan.NewEmptyRelation(f.Child.Schema()), transform.NewTree, nil
		default:
			return node, transform.SameTree, nil
		}
	})
	return out, err
}

// foldLogicalPredicates applies the Boolean-algebra identities that hold
// regardless of nullability concerns already handled by And/Or/Not's own
// Eval: TRUE OR x = TRUE, FALSE AND x = FALSE, NOT TRUE = FALSE,
// NOT FALSE = TRUE, x AND x = x, x OR x = x (by structural equality),
// IF(TRUE, y, _) = y, IF(FALSE, _, n) = n.
func foldLogicalPredicates(ctx *sql.Context, o *Optimizer, n sql.Node) (sql.Node, error) {
	out, _, err := transform.NodeExprsUp(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		return foldLogicalPredicateExpr(e)
	})
	return out, err
}

func foldLogicalPredicateExpr(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
	switch v := e.(type) {
	case *expression.Or:
		if expression.IsTrue(v.Left) || expression.IsTrue(v.Right) {
			return expression.True, transform.NewTree, nil
		}
		if sql.ExpressionsEqual(v.Left, v.Right) {
			return v.Left, transform.NewTree, nil
		}
	case *expression.And:
		if expression.IsFalse(v.Left) || expression.IsFalse(v.Right) {
			return expression.False, transform.NewTree, nil
		}
		if sql.ExpressionsEqual(v.Left, v.Right) {
			return v.Left, transform.NewTree, nil
		}
	case *expression.Not:
		if expression.IsTrue(v.Child) {
			return expression.False, transform.NewTree, nil
		}
		if expression.IsFalse(v.Child) {
			return expression.True, transform.NewTree, nil
		}
	case *expression.If:
		if expression.IsTrue(v.Cond) {
			return v.IfTrue, transform.NewTree, nil
		}
		if expression.IsFalse(v.Cond) {
			return v.IfFalse, transform.NewTree, nil
		}
	}
	return e, transform.SameTree, nil
}

// cnfConversion rewrites every Filter's condition into conjunctive normal
// form, recursively pushing negations inward with De Morgan's laws and then
// distributing OR over AND. Each step strictly reduces either negation
// depth or disjunction-of-conjunction nesting, so the rewrite terminates.
func cnfConversion(ctx *sql.Context, o *Optimizer, n sql.Node) (sql.Node, error) {
	out, _, err := transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		f, ok := node.(*plan.Filter)
		if !ok {
			return node, transform.SameTree, nil
		}
		cnf, changed, err := toCNF(f.Condition)
		if err != nil {
			return nil, transform.SameTree, err
		}
		if !changed {
			return node, transform.SameTree, nil
		}
		return plan.NewFilter(cnf, f.Child), transform.NewTree, nil
	})
	return out, err
}

// toCNF pushes every negation to the leaves, then repeatedly distributes OR
// over AND until no disjunction has a conjunction as a direct operand.
func toCNF(e sql.Expression) (sql.Expression, bool, error) {
	pushed, anyPush, err := pushNotsToLeaves(e)
	if err != nil {
		return nil, false, err
	}
	distributed, anyDist := distributeOrOverAnd(pushed)
	return distributed, anyPush || anyDist, nil
}

func pushNotsToLeaves(e sql.Expression) (sql.Expression, bool, error) {
	out, same, err := transform.Expr(e, func(expr sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		rewritten, ok := predicate.PushNotInward(expr)
		if !ok {
			return expr, transform.SameTree, nil
		}
		return rewritten, transform.NewTree, nil
	})
	if err != nil {
		return nil, false, err
	}
	if same == transform.SameTree {
		return out, false, nil
	}
	// A single pushdown step can expose another Not to push (NOT NOT NOT x),
	// so keep pushing until a pass changes nothing.
	again, changedAgain, err := pushNotsToLeaves(out)
	if err != nil {
		return nil, false, err
	}
	return again, true || changedAgain, nil
}

func distributeOrOverAnd(e sql.Expression) (sql.Expression, bool) {
	out, same, _ := transform.Expr(e, func(expr sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		or, ok := expr.(*expression.Or)
		if !ok {
			return expr, transform.SameTree, nil
		}
		if and, ok := or.Left.(*expression.And); ok {
			// (a AND b) OR c => (a OR c) AND (b OR c)
			return expression.NewAnd(expression.NewOr(and.Left, or.Right), expression.NewOr(and.Right, or.Right)), transform.NewTree, nil
		}
		if and, ok := or.Right.(*expression.And); ok {
			// a OR (b AND c) => (a OR b) AND (a OR c)
			return expression.NewAnd(expression.NewOr(or.Left, and.Left), expression.NewOr(or.Left, and.Right)), transform.NewTree, nil
		}
		return expr, transform.SameTree, nil
	})
	if same == transform.SameTree {
		return out, false
	}
	again, _ := distributeOrOverAnd(out)
	return again, true
}

// eliminateCommonPredicates collapses p AND p to p, p OR p to p (both by
// structural equality, sound under three-valued logic since the same
// sub-expression is evaluated only once either way), and
// IF(c, v, v) to COALESCE(c, v) which preserves the condition's
// null-propagation without needing its value.
func eliminateCommonPredicates(ctx *sql.Context, o *Optimizer, n sql.Node) (sql.Node, error) {
	out, _, err := transform.NodeExprsUp(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		switch v := e.(type) {
		case *expression.And:
			if sql.ExpressionsEqual(v.Left, v.Right) {
				return v.Left, transform.NewTree, nil
			}
		case *expression.Or:
			if sql.ExpressionsEqual(v.Left, v.Right) {
				return v.Left, transform.NewTree, nil
			}
		case *expression.If:
			if sql.ExpressionsEqual(v.IfTrue, v.IfFalse) {
				return expression.NewCoalesce(v.Cond, v.IfTrue), transform.NewTree, nil
			}
		}
		return e, transform.SameTree, nil
	})
	return out, err
}

// reduceAliases collapses a chain of aliases, Alias(Alias(x, _), n) =>
// Alias(x, n), keeping only the outermost name and identity.
func reduceAliases(ctx *sql.Context, o *Optimizer, n sql.Node) (sql.Node, error) {
	out, _, err := transform.NodeExprsUp(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		outer, ok := e.(*expression.Alias)
		if !ok {
			return e, transform.SameTree, nil
		}
		inner, ok := outer.Child.(*expression.Alias)
		if !ok {
			return e, transform.SameTree, nil
		}
		return expression.NewAliasWithID(outer.ID(), outer.Name(), inner.Child), transform.NewTree, nil
	})
	return out, err
}

// reduceCasts drops a Cast that doesn't change the type, and collapses a
// Cast directly wrapping another Cast down to a single Cast at the outer
// target type.
func reduceCasts(ctx *sql.Context, o *Optimizer, n sql.Node) (sql.Node, error) {
	out, _, err := transform.NodeExprsUp(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		if merged, ok := expression.MergeNestedCasts(e); ok {
			return merged, transform.NewTree, nil
		}
		if reduced, ok := expression.IsRedundantCast(e); ok {
			return reduced, transform.NewTree, nil
		}
		return e, transform.SameTree, nil
	})
	return out, err
}

// mergeFilters collapses two directly nested Filters into one whose
// condition is the conjunction of both.
func mergeFilters(ctx *sql.Context, o *Optimizer, n sql.Node) (sql.Node, error) {
	out, _, err := transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		outer, ok := node.(*plan.Filter)
		if !ok {
			return node, transform.SameTree, nil
		}
		inner, ok := outer.Child.(*plan.Filter)
		if !ok {
			return node, transform.SameTree, nil
		}
		return plan.NewFilter(expression.NewAnd(inner.Condition, outer.Condition), inner.Child), transform.NewTree, nil
	})
	return out, err
}

// reduceLimits collapses two directly nested Limits into one bounded by the
// smaller of the two sizes.
func reduceLimits(ctx *sql.Context, o *Optimizer, n sql.Node) (sql.Node, error) {
	out, _, err := transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		outer, ok := node.(*plan.Limit)
		if !ok {
			return node, transform.SameTree, nil
		}
		inner, ok := outer.Child.(*plan.Limit)
		if !ok {
			return node, transform.SameTree, nil
		}
		if inner.Size < outer.Size {
			return plan.NewLimit(inner.Size, inner.Child), transform.NewTree, nil
		}
		return plan.NewLimit(outer.Size, inner.Child), transform.NewTree, nil
	})
	return out, err
}

// reduceNegations pushes NOT inward via De Morgan's laws and comparison
// flips, cancels double negation, rewrites If(NOT c, y, n) to If(c, n, y),
// and folds a AND NOT a to FALSE / a OR NOT a to TRUE when the operand
// matches structurally.
func reduceNegations(ctx *sql.Context, o *Optimizer, n sql.Node) (sql.Node, error) {
	out, _, err := transform.NodeExprsUp(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		switch v := e.(type) {
		case *expression.Not:
			if rewritten, ok := predicate.PushNotInward(v); ok {
				return rewritten, transform.NewTree, nil
			}
		case *expression.If:
			if not, ok := expression.Negation(v.Cond); ok {
				return expression.NewIf(not.Child, v.IfFalse, v.IfTrue), transform.NewTree, nil
			}
		case *expression.And:
			if isNegationOf(v.Right, v.Left) || isNegationOf(v.Left, v.Right) {
				return expression.False, transform.NewTree, nil
			}
		case *expression.Or:
			if isNegationOf(v.Right, v.Left) || isNegationOf(v.Left, v.Right) {
				return expression.True, transform.NewTree, nil
			}
		}
		return e, transform.SameTree, nil
	})
	return out, err
}

// isNegationOf reports whether candidate is the logical negation of operand,
// either as an explicit Not wrapper or as the already-negated comparison
// form PushNotInward would have produced (IsNull vs IsNotNull, < vs >=, and
// so on) for the same child.
func isNegationOf(candidate, operand sql.Expression) bool {
	if not, ok := expression.Negation(candidate); ok {
		return sql.ExpressionsEqual(not.Child, operand)
	}
	negated, ok := predicate.NegateComparison(operand)
	return ok && sql.ExpressionsEqual(negated, candidate)
}

// mergeProjects collapses two directly nested Projects into one, inlining
// the inner project list's alias definitions into the outer list by ID; it
// also erases a Project whose list is exactly its child's own output
// attributes, in the same order, by ID.
func mergeProjects(ctx *sql.Context, o *Optimizer, n sql.Node) (sql.Node, error) {
	out, _, err := transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		outer, ok := node.(*plan.Project)
		if !ok {
			return node, transform.SameTree, nil
		}

		if inner, ok := outer.Child.(*plan.Project); ok {
			bindings := aliasBindingsByID(inner.ProjectList)
			inlined := make([]sql.Expression, len(outer.ProjectList))
			for i, e := range outer.ProjectList {
				inlined[i] = inlineAttributeRefs(e, bindings)
			}
			return plan.NewProject(inlined, inner.Child), transform.NewTree, nil
		}

		if projectIsIdentity(outer) {
			return outer.Child, transform.NewTree, nil
		}
		return node, transform.SameTree, nil
	})
	return out, err
}

// aliasBindingsByID maps every named expression's attribute ID to the
// expression it was defined as, for substitution into an outer scope.
func aliasBindingsByID(list []sql.Expression) map[sql.AttributeID]sql.Expression {
	bindings := make(map[sql.AttributeID]sql.Expression, len(list))
	for _, e := range list {
		if named, ok := e.(expression.NamedExpression); ok {
			bindings[named.ID()] = e
		}
	}
	return bindings
}

// inlineAttributeRefs replaces every AttributeRef in e whose ID has a
// binding with the bound expression's underlying value expression.
func inlineAttributeRefs(e sql.Expression, bindings map[sql.AttributeID]sql.Expression) sql.Expression {
	out, _, _ := transform.Expr(e, func(expr sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		ref, ok := expr.(*expression.AttributeRef)
		if !ok {
			return expr, transform.SameTree, nil
		}
		bound, ok := bindings[ref.ID()]
		if !ok {
			return expr, transform.SameTree, nil
		}
		if alias, ok := bound.(*expression.Alias); ok {
			return alias.Child, transform.NewTree, nil
		}
		return bound, transform.NewTree, nil
	})
	return out
}

// projectIsIdentity reports whether p's list is exactly p.Child's output
// attributes, in the same order, by ID -- the shape that makes the Project
// a no-op.
func projectIsIdentity(p *plan.Project) bool {
	childSchema := p.Child.Schema()
	if len(p.ProjectList) != len(childSchema) {
		return false
	}
	for i, e := range p.ProjectList {
		ref, ok := e.(*expression.AttributeRef)
		if !ok || ref.ID() != childSchema[i].ID {
			return false
		}
	}
	return true
}

// eliminateSubqueries drops Subquery wrappers and strips their qualifier
// from attribute references in the surrounding plan, once the analyzer no
// longer needs the boundary to resolve names. With wrappers are dropped the
// same way, leaving their main child in place.
func eliminateSubqueries(ctx *sql.Context, o *Optimizer, n sql.Node) (sql.Node, error) {
	aliases := transform.CollectNode(n, func(node sql.Node) (string, bool) {
		sub, ok := node.(*plan.Subquery)
		if !ok || sub.CorrelatedAlias == "" {
			return "", false
		}
		return sub.CorrelatedAlias, true
	})

	out, same, err := transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		if with, ok := node.(*plan.With); ok {
			return with.Child, transform.NewTree, nil
		}
		sub, ok := node.(*plan.Subquery)
		if !ok {
			return node, transform.SameTree, nil
		}
		return sub.Query(), transform.NewTree, nil
	})
	if err != nil || same == transform.SameTree || len(aliases) == 0 {
		return out, err
	}

	out, _, err = transform.NodeExprsUp(out, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		ref, ok := e.(*expression.AttributeRef)
		if !ok || ref.Table() == "" {
			return e, transform.SameTree, nil
		}
		for _, alias := range aliases {
			if ref.Table() == alias {
				return ref.WithQualifier(""), transform.NewTree, nil
			}
		}
		return e, transform.SameTree, nil
	})
	return out, err
}

// pushFiltersThroughProjects pushes Filter(c, Project(list, p)) below the
// Project, inlining the project list's alias definitions into c by ID.
// Every expression in this algebra is side-effect free, so the only real
// requirement is that the condition's references resolve against list's
// attributes, which inlining guarantees.
func pushFiltersThroughProjects(ctx *sql.Context, o *Optimizer, n sql.Node) (sql.Node, error) {
	out, _, err := transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		f, ok := node.(*plan.Filter)
		if !ok {
			return node, transform.SameTree, nil
		}
		p, ok := f.Child.(*plan.Project)
		if !ok {
			return node, transform.SameTree, nil
		}
		bindings := aliasBindingsByID(p.ProjectList)
		inlined := inlineAttributeRefs(f.Condition, bindings)
		return plan.NewProject(p.ProjectList, plan.NewFilter(inlined, p.Child)), transform.NewTree, nil
	})
	return out, err
}

// pushFiltersThroughJoins applies only to inner joins: it splits the filter
// into its top-level conjuncts and partitions them by whether their
// reference set is a subset of the left output, the right output, or
// neither. Left-only conjuncts become a Filter on the left child,
// right-only on the right child, and the remainder (including anything
// that references both sides) stays attached to the join condition.
func pushFiltersThroughJoins(ctx *sql.Context, o *Optimizer, n sql.Node) (sql.Node, error) {
	out, _, err := transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		f, ok := node.(*plan.Filter)
		if !ok {
			return node, transform.SameTree, nil
		}
		j, ok := f.Child.(*plan.JoinNode)
		if !ok || j.Op != plan.JoinTypeInner {
			return node, transform.SameTree, nil
		}

		conjuncts := predicate.SplitConjunction(f.Condition)
		leftSchema, rightSchema := j.Left.Schema(), j.Right.Schema()

		var leftOnly, rightOnly, remainder []sql.Expression
		for _, c := range conjuncts {
			switch {
			case predicate.CanPushBelow(c, leftSchema):
				leftOnly = append(leftOnly, c)
			case predicate.CanPushBelow(c, rightSchema):
				rightOnly = append(rightOnly, c)
			default:
				remainder = append(remainder, c)
			}
		}
		if len(leftOnly) == 0 && len(rightOnly) == 0 {
			return node, transform.SameTree, nil
		}

		newLeft := j.Left
		if len(leftOnly) > 0 {
			newLeft = plan.NewFilter(predicate.JoinConjunction(leftOnly), j.Left)
		}
		newRight := j.Right
		if len(rightOnly) > 0 {
			newRight = plan.NewFilter(predicate.JoinConjunction(rightOnly), j.Right)
		}

		newCondition := j.Condition
		if len(remainder) > 0 {
			all := append([]sql.Expression{}, remainder...)
			if newCondition != nil {
				all = append(all, newCondition)
			}
			newCondition = predicate.JoinConjunction(all)
		}

		newJoin := plan.NewJoin(newLeft, newRight, j.Op, newCondition)
		return newJoin, transform.NewTree, nil
	})
	return out, err
}

// pushFiltersThroughAggregates applies to Filter(c, Aggregate(...)) when
// every selected expression is pure: it CNF-splits c, and any conjunct that
// references no aggregate-function attribute is pushed below the Aggregate
// by expanding its grouping-alias references back to their original
// grouping expressions. Conjuncts that reference an aggregate stay above.
func pushFiltersThroughAggregates(ctx *sql.Context, o *Optimizer, n sql.Node) (sql.Node, error) {
	out, _, err := transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		f, ok := node.(*plan.Filter)
		if !ok {
			return node, transform.SameTree, nil
		}
		agg, ok := f.Child.(*plan.Aggregate)
		if !ok {
			return node, transform.SameTree, nil
		}

		aggAttrs := aggregationAttributeIDs(agg.SelectedExprs)
		conjuncts := predicate.SplitConjunction(f.Condition)

		var pushable, remaining []sql.Expression
		for _, c := range conjuncts {
			if referencesAny(c, aggAttrs) {
				remaining = append(remaining, c)
				continue
			}
			pushable = append(pushable, expandGroupingRefs(c, agg.SelectedExprs))
		}
		if len(pushable) == 0 {
			return node, transform.SameTree, nil
		}

		newChild := plan.NewFilter(predicate.JoinConjunction(pushable), agg.Child)
		newAgg := plan.NewAggregate(agg.SelectedExprs, agg.GroupByExprs, newChild)
		if len(remaining) == 0 {
			return newAgg, transform.NewTree, nil
		}
		return plan.NewFilter(predicate.JoinConjunction(remaining), newAgg), transform.NewTree, nil
	})
	return out, err
}

// aggregationAttributeIDs collects the attribute IDs introduced by every
// AggregationAlias in selected.
func aggregationAttributeIDs(selected []sql.Expression) map[sql.AttributeID]bool {
	ids := make(map[sql.AttributeID]bool)
	for _, e := range selected {
		if agg, ok := e.(*expression.AggregationAlias); ok {
			ids[agg.ID()] = true
		}
	}
	return ids
}

func referencesAny(e sql.Expression, ids map[sql.AttributeID]bool) bool {
	for id := range ids {
		if e.References().Contains(id) {
			return true
		}
	}
	return false
}

// expandGroupingRefs replaces any AttributeRef in e that names a
// GroupingAlias from selected with that alias's original grouping
// expression, so the reference is meaningful below the Aggregate.
func expandGroupingRefs(e sql.Expression, selected []sql.Expression) sql.Expression {
	bindings := make(map[sql.AttributeID]sql.Expression)
	for _, s := range selected {
		if g, ok := s.(*expression.GroupingAlias); ok {
			bindings[g.ID()] = g.Origin
		}
	}
	out, _, _ := transform.Expr(e, func(expr sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		ref, ok := expr.(*expression.AttributeRef)
		if !ok {
			return expr, transform.SameTree, nil
		}
		origin, ok := bindings[ref.ID()]
		if !ok {
			return expr, transform.SameTree, nil
		}
		return origin, transform.NewTree, nil
	})
	return out
}

// pushProjectsThroughLimits swaps Project(list, Limit(p, n)) to
// Limit(Project(list, p), n); safe because projection is row-wise and
// doesn't change how many rows flow through.
func pushProjectsThroughLimits(ctx *sql.Context, o *Optimizer, n sql.Node) (sql.Node, error) {
	out, _, err := transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		p, ok := node.(*plan.Project)
		if !ok {
			return node, transform.SameTree, nil
		}
		l, ok := p.Child.(*plan.Limit)
		if !ok {
			return node, transform.SameTree, nil
		}
		return plan.NewLimit(l.Size, plan.NewProject(p.ProjectList, l.Child)), transform.NewTree, nil
	})
	return out, err
}

// pushLimitsThroughUnions rewrites Limit(Union(l, r), n) to
// Limit(Union(Limit(l, n), Limit(r, n)), n): each branch can be capped at n
// rows independently since the union can never need more than n rows from
// either side to produce its own first n. A branch that is already a Limit
// is folded into rather than nested under the new one, so this rule doesn't
// keep re-expanding what ReduceLimits just collapsed.
func pushLimitsThroughUnions(ctx *sql.Context, o *Optimizer, n sql.Node) (sql.Node, error) {
	out, _, err := transform.Node(n, func(node sql.Node) (sql.Node, transform.TreeIdentity, error) {
		l, ok := node.(*plan.Limit)
		if !ok {
			return node, transform.SameTree, nil
		}
		u, ok := l.Child.(*plan.SetOperation)
		if !ok || !u.IsUnion() {
			return node, transform.SameTree, nil
		}
		newLeft := limitBranch(l.Size, u.Left)
		newRight := limitBranch(l.Size, u.Right)
		return plan.NewLimit(l.Size, plan.NewUnion(newLeft, newRight, u.Distinct)), transform.NewTree, nil
	})
	return out, err
}

// limitBranch caps branch at size rows, folding into an existing Limit
// child rather than nesting a new one on top of it.
func limitBranch(size int64, branch sql.Node) sql.Node {
	if inner, ok := branch.(*plan.Limit); ok {
		if inner.Size < size {
			size = inner.Size
		}
		return plan.NewLimit(size, inner.Child)
	}
	return plan.NewLimit(size, branch)
}
