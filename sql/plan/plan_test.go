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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/arboradb/planner/sql"
	"github.com/arboradb/planner/sql/expression"
	"github.com/arboradb/planner/sql/types"
)

// schemaShape ignores AttributeID, which is assigned fresh on every
// construction, when comparing a derived schema against an expected shape.
var schemaShape = cmpopts.IgnoreFields(sql.Column{}, "ID")

func testRelation() (*LocalRelation, *expression.AttributeRef, *expression.AttributeRef) {
	a := expression.NewAttributeRef("a", types.Int, false)
	b := expression.NewAttributeRef("b", types.String, true)
	schema := sql.Schema{
		{Name: "a", Type: types.Int, ID: a.ID()},
		{Name: "b", Type: types.String, Nullable: true, ID: b.ID()},
	}
	return NewLocalRelation("t", schema), a, b
}

func TestProjectSchemaDerivesFromExpressions(t *testing.T) {
	rel, a, _ := testRelation()
	alias := expression.NewAlias("renamed", a)
	p := NewProject([]sql.Expression{alias}, rel)

	schema := p.Schema()
	require.Len(t, schema, 1)
	require.Equal(t, "renamed", schema[0].Name)
	require.Equal(t, types.Int, schema[0].Type)
	require.Equal(t, alias.ID(), schema[0].ID)
}

func TestProjectWithChildrenRejectsWrongArity(t *testing.T) {
	rel, _, _ := testRelation()
	p := NewProject(nil, rel)
	_, err := p.WithChildren(rel, rel)
	require.Error(t, err)
}

func TestFilterResolvedRequiresConditionResolved(t *testing.T) {
	rel, a, _ := testRelation()
	f := NewFilter(expression.NewIsNotNull(a), rel)
	require.True(t, f.Resolved())
}

func TestLocalRelationNewInstanceFreshensIDs(t *testing.T) {
	rel, a, _ := testRelation()
	fresh := rel.NewInstance().(*LocalRelation)

	require.NotEqual(t, a.ID(), fresh.Schema()[0].ID)
	require.Equal(t, rel.Schema()[0].Name, fresh.Schema()[0].Name)
}

func TestJoinLeftOuterMakesRightSchemaNullable(t *testing.T) {
	left, a, _ := testRelation()
	right, _, _ := testRelation()
	join := NewJoin(left, right, JoinTypeLeftOuter, expression.NewEq(a, a))

	schema := join.Schema()
	require.Len(t, schema, 4)
	require.False(t, schema[0].Nullable)
	require.True(t, schema[2].Nullable, "right side's non-nullable column should be forced nullable")
}

func TestJoinLeftSemiProjectsOnlyLeftSchema(t *testing.T) {
	left, _, _ := testRelation()
	right, _, _ := testRelation()
	join := NewJoin(left, right, JoinTypeLeftSemi, nil)

	require.Equal(t, left.Schema(), join.Schema())
}

func TestJoinFullOuterMakesBothSidesNullable(t *testing.T) {
	left, _, _ := testRelation()
	right, _, _ := testRelation()
	join := NewJoin(left, right, JoinTypeFullOuter, nil)

	for _, c := range join.Schema() {
		require.True(t, c.Nullable)
	}
}

func TestSplitJoinConditionFlattensConjuncts(t *testing.T) {
	left, a, b := testRelation()
	right, _, _ := testRelation()
	cond := expression.NewAnd(expression.NewIsNotNull(a), expression.NewIsNotNull(b))
	join := NewJoin(left, right, JoinTypeInner, cond)

	parts := SplitJoinCondition(join)
	require.Len(t, parts, 2)
}

func TestAggregateExpressionsRoundTripsThroughWithExpressions(t *testing.T) {
	rel, a, _ := testRelation()
	grouping := expression.NewGroupingAlias("a", a)
	agg := NewAggregate([]sql.Expression{grouping}, []sql.Expression{a}, rel)

	exprs := agg.Expressions()
	require.Len(t, exprs, 2)

	out, err := agg.WithExpressions(exprs...)
	require.NoError(t, err)
	require.Equal(t, agg.SelectedExprs, out.(*Aggregate).SelectedExprs)
}

func TestSetOperationSchemaUnionsNullability(t *testing.T) {
	left, _, _ := testRelation()
	right, _, _ := testRelation()
	union := NewUnion(left, right, true)

	schema := union.Schema()
	require.Len(t, schema, 2)
	require.True(t, schema[1].Nullable)
}

func TestSetOperationSchemaMatchesExpectedShape(t *testing.T) {
	left, _, _ := testRelation()
	right, _, _ := testRelation()
	union := NewUnion(left, right, true)

	want := sql.Schema{
		{Name: "a", Type: types.Int, Nullable: false},
		{Name: "b", Type: types.String, Nullable: true},
	}
	if diff := cmp.Diff(want, union.Schema(), schemaShape); diff != "" {
		t.Errorf("union schema shape mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemasCompatibleRequiresSameArity(t *testing.T) {
	left, _, _ := testRelation()
	rightSchema := sql.Schema{{Name: "x", Type: types.Int}}
	right := NewLocalRelation("u", rightSchema)

	require.False(t, SchemasCompatible(left.Schema(), right.Schema()))
}

func TestSubqueryQualifiesSchemaUnderAlias(t *testing.T) {
	rel, _, _ := testRelation()
	sub := NewSubquery(rel, "t2")

	schema := sub.Schema()
	require.Equal(t, "t2", schema[0].Qualifier)
}

func TestWithChildrenIncludesCTEBodies(t *testing.T) {
	rel, _, _ := testRelation()
	main, _, _ := testRelation()
	with := NewWith([]CTE{{Name: "cte1", Query: rel}}, main)

	require.Len(t, with.Children(), 2)

	out, err := with.WithChildren(main, rel)
	require.NoError(t, err)
	require.Len(t, out.(*With).CTEs, 1)
}

func TestSortResolvedChecksSortFields(t *testing.T) {
	rel, a, _ := testRelation()
	sort := NewSort([]sql.Expression{expression.NewSortOrder(a, expression.Asc)}, rel)
	require.True(t, sort.Resolved())
}

func TestLimitWithChildrenPreservesSize(t *testing.T) {
	rel, _, _ := testRelation()
	limit := NewLimit(10, rel)
	out, err := limit.WithChildren(rel)
	require.NoError(t, err)
	require.EqualValues(t, 10, out.(*Limit).Size)
}
