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

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arboradb/planner/sql"
	"github.com/arboradb/planner/sql/expression"
	"github.com/arboradb/planner/sql/types"
)

func TestSplitConjunctionFlattensNestedAnds(t *testing.T) {
	a := expression.NewLiteral(true, types.Boolean)
	b := expression.NewLiteral(false, types.Boolean)
	c := expression.NewLiteral(true, types.Boolean)

	expr := expression.NewAnd(expression.NewAnd(a, b), c)
	parts := SplitConjunction(expr)
	require.Len(t, parts, 3)
	require.Same(t, a, parts[0])
	require.Same(t, b, parts[1])
	require.Same(t, c, parts[2])
}

func TestSplitConjunctionOnNonAndReturnsSingleElement(t *testing.T) {
	lit := expression.NewLiteral(true, types.Boolean)
	parts := SplitConjunction(lit)
	require.Len(t, parts, 1)
	require.Same(t, lit, parts[0])
}

func TestJoinConjunctionRoundTrips(t *testing.T) {
	a := expression.NewLiteral(true, types.Boolean)
	b := expression.NewLiteral(false, types.Boolean)
	joined := JoinConjunction([]sql.Expression{a, b})
	require.Equal(t, SplitConjunction(joined), []sql.Expression{a, b})
}

func TestPushNotInwardDoubleNegation(t *testing.T) {
	a := expression.NewAttributeRef("a", types.Boolean, false)
	not := expression.NewNot(expression.NewNot(a))
	out, changed := PushNotInward(not)
	require.True(t, changed)
	require.Same(t, a, out)
}

func TestPushNotInwardDeMorganAnd(t *testing.T) {
	a := expression.NewAttributeRef("a", types.Boolean, false)
	b := expression.NewAttributeRef("b", types.Boolean, false)
	not := expression.NewNot(expression.NewAnd(a, b))

	out, changed := PushNotInward(not)
	require.True(t, changed)

	or, ok := out.(*expression.Or)
	require.True(t, ok)
	require.IsType(t, &expression.Not{}, or.Left)
	require.IsType(t, &expression.Not{}, or.Right)
}

func TestNegateComparisonFlipsOperator(t *testing.T) {
	a := expression.NewAttributeRef("a", types.Int, false)
	b := expression.NewAttributeRef("b", types.Int, false)
	lt := expression.NewLt(a, b)

	negated, ok := NegateComparison(lt)
	require.True(t, ok)
	require.Equal(t, "(a >= b)", negated.String())
}

func TestCanPushBelowChecksReferenceSubset(t *testing.T) {
	a := expression.NewAttributeRef("a", types.Int, false)
	b := expression.NewAttributeRef("b", types.Int, false)

	source := sql.Schema{
		{Name: "a", Type: types.Int, ID: a.ID()},
	}

	require.True(t, CanPushBelow(expression.NewEq(a, expression.NewLiteral(int64(1), types.Int)), source))
	require.False(t, CanPushBelow(expression.NewEq(a, b), source))
}

func TestPartitionSplitsByPushability(t *testing.T) {
	a := expression.NewAttributeRef("a", types.Int, false)
	b := expression.NewAttributeRef("b", types.Int, false)
	source := sql.Schema{{Name: "a", Type: types.Int, ID: a.ID()}}

	pushable, remaining := Partition([]sql.Expression{
		expression.NewEq(a, expression.NewLiteral(int64(1), types.Int)),
		expression.NewEq(a, b),
	}, source)

	require.Len(t, pushable, 1)
	require.Len(t, remaining, 1)
}
