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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arboradb/planner/sql"
	"github.com/arboradb/planner/sql/expression"
	"github.com/arboradb/planner/sql/plan"
	"github.com/arboradb/planner/sql/types"
)

func testRelation() (*plan.LocalRelation, *expression.AttributeRef, *expression.AttributeRef) {
	a := expression.NewAttributeRef("a", types.Int, false)
	b := expression.NewAttributeRef("b", types.Int, true)
	schema := sql.Schema{
		{Name: "a", Type: types.Int, ID: a.ID()},
		{Name: "b", Type: types.Int, Nullable: true, ID: b.ID()},
	}
	return plan.NewLocalRelation("t", schema), a, b
}

func applyRule(t *testing.T, rule RuleFunc, n sql.Node) sql.Node {
	out, err := rule(sql.NewEmptyContext(), NewDefault(), n)
	require.NoError(t, err)
	return out
}

func TestFoldConstantsEvaluatesClosedArithmetic(t *testing.T) {
	rel, a, _ := testRelation()
	two := expression.NewLiteral(int64(2), types.Int)
	three := expression.NewLiteral(int64(3), types.Int)
	p := plan.NewProject([]sql.Expression{a, expression.NewAlias("sum", expression.NewPlus(two, three))}, rel)

	out := applyRule(t, foldConstants, p).(*plan.Project)
	lit, ok := out.ProjectList[1].(*expression.Alias).Child.(*expression.Literal)
	require.True(t, ok)
	require.EqualValues(t, int64(5), lit.Value())
}

func TestFoldConstantFiltersDropsTrueFilter(t *testing.T) {
	rel, _, _ := testRelation()
	f := plan.NewFilter(expression.True, rel)

	out := applyRule(t, foldConstantFilters, f)
	require.Same(t, sql.Node(rel), out)
}

func TestFoldConstantFiltersReplacesFalseWithEmptyRelation(t *testing.T) {
	rel, _, _ := testRelation()
	f := plan.NewFilter(expression.False, rel)

	out := applyRule(t, foldConstantFilters, f)
	empty, ok := out.(*plan.EmptyRelation)
	require.True(t, ok)
	require.Equal(t, rel.Schema(), empty.Schema())
}

func TestFoldLogicalPredicatesShortCircuitsOr(t *testing.T) {
	rel, a, _ := testRelation()
	cond := expression.NewOr(expression.True, expression.NewIsNotNull(a))
	f := plan.NewFilter(cond, rel)

	out := applyRule(t, foldLogicalPredicates, f).(*plan.Filter)
	require.True(t, expression.IsTrue(out.Condition))
}

func TestFoldLogicalPredicatesCollapsesIdenticalAnd(t *testing.T) {
	rel, a, _ := testRelation()
	isNotNull := expression.NewIsNotNull(a)
	cond := expression.NewAnd(isNotNull, expression.NewIsNotNull(a))
	f := plan.NewFilter(cond, rel)

	out := applyRule(t, foldLogicalPredicates, f).(*plan.Filter)
	require.IsType(t, &expression.IsNotNull{}, out.Condition)
}

func TestCNFConversionDistributesOrOverAnd(t *testing.T) {
	rel, a, b := testRelation()
	cond := expression.NewOr(
		expression.NewAnd(expression.NewIsNotNull(a), expression.NewIsNotNull(b)),
		expression.NewIsNull(a),
	)
	f := plan.NewFilter(cond, rel)

	out := applyRule(t, cnfConversion, f).(*plan.Filter)
	and, ok := out.Condition.(*expression.And)
	require.True(t, ok)
	require.IsType(t, &expression.Or{}, and.Left)
	require.IsType(t, &expression.Or{}, and.Right)
}

func TestEliminateCommonPredicatesCollapsesIfWithEqualBranches(t *testing.T) {
	rel, a, _ := testRelation()
	cond := expression.NewIsNotNull(a)
	ifExpr := expression.NewIf(cond, a, a)
	p := plan.NewProject([]sql.Expression{expression.NewAlias("x", ifExpr)}, rel)

	out := applyRule(t, eliminateCommonPredicates, p).(*plan.Project)
	_, ok := out.ProjectList[0].(*expression.Alias).Child.(*expression.Coalesce)
	require.True(t, ok)
}

func TestReduceAliasesCollapsesChain(t *testing.T) {
	rel, a, _ := testRelation()
	inner := expression.NewAlias("inner", a)
	outer := expression.NewAlias("outer", inner)
	p := plan.NewProject([]sql.Expression{outer}, rel)

	out := applyRule(t, reduceAliases, p).(*plan.Project)
	alias := out.ProjectList[0].(*expression.Alias)
	require.Equal(t, "outer", alias.Name())
	require.Same(t, sql.Expression(a), alias.Child)
}

func TestReduceCastsDropsRedundantAndMergesNested(t *testing.T) {
	rel, a, _ := testRelation()
	nested := expression.NewCast(expression.NewCast(a, types.Long), types.Double)
	p := plan.NewProject([]sql.Expression{expression.NewAlias("x", nested)}, rel)

	out := applyRule(t, reduceCasts, p).(*plan.Project)
	cast := out.ProjectList[0].(*expression.Alias).Child.(*expression.Cast)
	require.True(t, cast.To().Equal(types.Double))
	require.Same(t, sql.Expression(a), cast.Child)
}

func TestMergeFiltersCombinesNestedConditions(t *testing.T) {
	rel, a, b := testRelation()
	inner := plan.NewFilter(expression.NewIsNotNull(a), rel)
	outer := plan.NewFilter(expression.NewIsNotNull(b), inner)

	out := applyRule(t, mergeFilters, outer).(*plan.Filter)
	require.Same(t, sql.Node(rel), out.Child)
	and, ok := out.Condition.(*expression.And)
	require.True(t, ok)
	require.IsType(t, &expression.IsNotNull{}, and.Left)
	require.IsType(t, &expression.IsNotNull{}, and.Right)
}

func TestReduceLimitsKeepsSmallerBound(t *testing.T) {
	rel, _, _ := testRelation()
	inner := plan.NewLimit(10, rel)
	outer := plan.NewLimit(5, inner)

	out := applyRule(t, reduceLimits, outer).(*plan.Limit)
	require.EqualValues(t, 5, out.Size)
	require.Same(t, sql.Node(rel), out.Child)
}

func TestReduceNegationsCancelsDoubleNegative(t *testing.T) {
	rel, a, _ := testRelation()
	cond := expression.NewNot(expression.NewNot(expression.NewIsNotNull(a)))
	f := plan.NewFilter(cond, rel)

	out := applyRule(t, reduceNegations, f).(*plan.Filter)
	require.IsType(t, &expression.IsNotNull{}, out.Condition)
}

func TestReduceNegationsFoldsContradictionToFalse(t *testing.T) {
	rel, a, _ := testRelation()
	isNotNull := expression.NewIsNotNull(a)
	cond := expression.NewAnd(isNotNull, expression.NewNot(isNotNull))
	f := plan.NewFilter(cond, rel)

	out := applyRule(t, reduceNegations, f).(*plan.Filter)
	require.True(t, expression.IsFalse(out.Condition))
}

func TestMergeProjectsInlinesInnerAliases(t *testing.T) {
	rel, a, _ := testRelation()
	inner := plan.NewProject([]sql.Expression{expression.NewAlias("renamed", a)}, rel)
	innerAttr := inner.ProjectList[0].(*expression.Alias).ToAttribute()
	outer := plan.NewProject([]sql.Expression{innerAttr}, inner)

	out := applyRule(t, mergeProjects, outer).(*plan.Project)
	require.Same(t, sql.Node(rel), out.Child)
	require.Same(t, sql.Expression(a), out.ProjectList[0])
}

func TestMergeProjectsErasesIdentityProjection(t *testing.T) {
	rel, a, b := testRelation()
	p := plan.NewProject([]sql.Expression{a, b}, rel)

	out := applyRule(t, mergeProjects, p)
	require.Same(t, sql.Node(rel), out)
}

func TestEliminateSubqueriesDropsWrapperAndStripsQualifier(t *testing.T) {
	rel, a, _ := testRelation()
	sub := plan.NewSubquery(rel, "t2")
	qualified := a.WithQualifier("t2")
	f := plan.NewFilter(expression.NewIsNotNull(qualified), sub)

	out := applyRule(t, eliminateSubqueries, f).(*plan.Filter)
	require.Same(t, sql.Node(rel), out.Child)
	ref := out.Condition.(*expression.IsNotNull).Child.(*expression.AttributeRef)
	require.Equal(t, "", ref.Table())
}

func TestPushFiltersThroughProjectsInlinesAliasIntoCondition(t *testing.T) {
	rel, a, _ := testRelation()
	alias := expression.NewAlias("renamed", a)
	p := plan.NewProject([]sql.Expression{alias}, rel)
	f := plan.NewFilter(expression.NewIsNotNull(alias.ToAttribute()), p)

	out := applyRule(t, pushFiltersThroughProjects, f).(*plan.Project)
	pushedFilter := out.Child.(*plan.Filter)
	ref := pushedFilter.Condition.(*expression.IsNotNull).Child.(*expression.AttributeRef)
	require.Equal(t, a.ID(), ref.ID())
}

func TestPushFiltersThroughJoinsPartitionsBySide(t *testing.T) {
	left, a, _ := testRelation()
	right, _, rb := testRelation()
	join := plan.NewJoin(left, right, plan.JoinTypeInner, expression.NewEq(a, rb))
	cond := expression.NewAnd(expression.NewIsNotNull(a), expression.NewIsNotNull(rb))
	f := plan.NewFilter(cond, join)

	out := applyRule(t, pushFiltersThroughJoins, f).(*plan.JoinNode)
	leftFilter, ok := out.Left.(*plan.Filter)
	require.True(t, ok)
	require.IsType(t, &expression.IsNotNull{}, leftFilter.Condition)
	rightFilter, ok := out.Right.(*plan.Filter)
	require.True(t, ok)
	require.IsType(t, &expression.IsNotNull{}, rightFilter.Condition)
}

func TestPushFiltersThroughJoinsLeavesOuterJoinsAlone(t *testing.T) {
	left, a, _ := testRelation()
	right, _, rb := testRelation()
	join := plan.NewJoin(left, right, plan.JoinTypeLeftOuter, expression.NewEq(a, rb))
	f := plan.NewFilter(expression.NewIsNotNull(a), join)

	out := applyRule(t, pushFiltersThroughJoins, f)
	require.Same(t, sql.Node(f), out)
}

func TestPushFiltersThroughAggregatesSplitsByAggregateReference(t *testing.T) {
	rel, a, b := testRelation()
	grouping := expression.NewGroupingAlias("a", a)
	aggAlias := expression.NewAggregationAlias("total", b)
	agg := plan.NewAggregate([]sql.Expression{grouping, aggAlias}, []sql.Expression{a}, rel)

	pushable := expression.NewIsNotNull(grouping.ToAttribute())
	remaining := expression.NewIsNotNull(aggAlias.ToAttribute())
	f := plan.NewFilter(expression.NewAnd(pushable, remaining), agg)

	out := applyRule(t, pushFiltersThroughAggregates, f).(*plan.Filter)
	require.IsType(t, &expression.IsNotNull{}, out.Condition)

	newAgg := out.Child.(*plan.Aggregate)
	pushedFilter := newAgg.Child.(*plan.Filter)
	ref := pushedFilter.Condition.(*expression.IsNotNull).Child.(*expression.AttributeRef)
	require.Equal(t, a.ID(), ref.ID())
}

func TestPushProjectsThroughLimitsSwapsOrder(t *testing.T) {
	rel, a, _ := testRelation()
	limit := plan.NewLimit(5, rel)
	p := plan.NewProject([]sql.Expression{a}, limit)

	out := applyRule(t, pushProjectsThroughLimits, p).(*plan.Limit)
	require.EqualValues(t, 5, out.Size)
	_, ok := out.Child.(*plan.Project)
	require.True(t, ok)
}

func TestPushLimitsThroughUnionsDuplicatesBoundToBothBranches(t *testing.T) {
	left, _, _ := testRelation()
	right, _, _ := testRelation()
	union := plan.NewUnion(left, right, false)
	limit := plan.NewLimit(3, union)

	out := applyRule(t, pushLimitsThroughUnions, limit).(*plan.Limit)
	innerUnion := out.Child.(*plan.SetOperation)
	leftLimit := innerUnion.Left.(*plan.Limit)
	rightLimit := innerUnion.Right.(*plan.Limit)
	require.EqualValues(t, 3, leftLimit.Size)
	require.EqualValues(t, 3, rightLimit.Size)
}

func TestPushLimitsThroughUnionsFoldsExistingBranchLimits(t *testing.T) {
	left, _, _ := testRelation()
	right, _, _ := testRelation()
	union := plan.NewUnion(plan.NewLimit(5, left), plan.NewLimit(5, right), false)
	limit := plan.NewLimit(3, union)

	out := applyRule(t, pushLimitsThroughUnions, limit).(*plan.Limit)
	innerUnion := out.Child.(*plan.SetOperation)
	leftLimit := innerUnion.Left.(*plan.Limit)
	rightLimit := innerUnion.Right.(*plan.Limit)
	require.EqualValues(t, 3, leftLimit.Size)
	require.Same(t, sql.Node(left), leftLimit.Child)
	require.EqualValues(t, 3, rightLimit.Size)
	require.Same(t, sql.Node(right), rightLimit.Child)
}
