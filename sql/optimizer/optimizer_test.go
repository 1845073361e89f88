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
)

type unresolvedNode struct {
	plan.LocalRelation
}

func (u *unresolvedNode) Resolved() bool { return false }

func TestOptimizeRejectsUnresolvedPlan(t *testing.T) {
	rel, _, _ := testRelation()
	u := &unresolvedNode{LocalRelation: *rel}

	_, err := NewDefault().Optimize(sql.NewEmptyContext(), u)
	require.Error(t, err)
	require.True(t, sql.ErrUnresolvedPlan.Is(err))
}

func TestOptimizeCollapsesRedundantPlanShape(t *testing.T) {
	rel, a, _ := testRelation()
	// Filter(TRUE, Filter(IsNotNull(a), Project([a, b], rel))) should settle
	// down to just Filter(IsNotNull(a), rel): the TRUE filter drops out, the
	// identity projection erases, and nothing is left to push further.
	inner := plan.NewFilter(expression.NewIsNotNull(a), plan.NewProject(asExprs(rel.Schema()), rel))
	outer := plan.NewFilter(expression.True, inner)

	out, err := NewDefault().Optimize(sql.NewEmptyContext(), outer)
	require.NoError(t, err)

	f, ok := out.(*plan.Filter)
	require.True(t, ok)
	require.IsType(t, &expression.IsNotNull{}, f.Condition)
	require.Same(t, sql.Node(rel), f.Child)
}

func asExprs(schema sql.Schema) []sql.Expression {
	exprs := make([]sql.Expression, len(schema))
	for i, c := range schema {
		exprs[i] = expression.NewAttributeRefWithID(c.ID, c.Name, c.Type, c.Nullable)
	}
	return exprs
}

func TestSigMatchesForStructurallyEqualPlans(t *testing.T) {
	rel, a, _ := testRelation()
	f1 := plan.NewFilter(expression.NewIsNotNull(a), rel)
	f2 := plan.NewFilter(expression.NewIsNotNull(a), rel)

	sig1, err := Sig(f1)
	require.NoError(t, err)
	sig2, err := Sig(f2)
	require.NoError(t, err)
	require.Equal(t, sig1, sig2)
}

func TestSigDiffersForDifferentPlans(t *testing.T) {
	rel, a, b := testRelation()
	f1 := plan.NewFilter(expression.NewIsNotNull(a), rel)
	f2 := plan.NewFilter(expression.NewIsNotNull(b), rel)

	sig1, err := Sig(f1)
	require.NoError(t, err)
	sig2, err := Sig(f2)
	require.NoError(t, err)
	require.NotEqual(t, sig1, sig2)
}
