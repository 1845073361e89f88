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

package expression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arboradb/planner/sql/types"
)

func TestCastEval(t *testing.T) {
	c := NewCast(NewLiteral(int64(3), types.Int), types.Double)
	v, err := c.Eval()
	require.NoError(t, err)
	require.EqualValues(t, 3.0, v)
}

func TestCastAllowsNarrowing(t *testing.T) {
	c := NewCast(NewLiteral(3.9, types.Double), types.Int)
	_, err := c.StrictlyTyped()
	require.NoError(t, err)
}

func TestIsRedundantCast(t *testing.T) {
	c := NewCast(NewLiteral(int64(3), types.Int), types.Int)
	child, ok := IsRedundantCast(c)
	require.True(t, ok)
	require.Equal(t, types.Int, child.DataType())
}

func TestIsRedundantCastFalseWhenTypesDiffer(t *testing.T) {
	c := NewCast(NewLiteral(int64(3), types.Int), types.Double)
	_, ok := IsRedundantCast(c)
	require.False(t, ok)
}

func TestMergeNestedCasts(t *testing.T) {
	inner := NewCast(NewLiteral(int64(3), types.Int), types.Double)
	outer := NewCast(inner, types.String)
	merged, ok := MergeNestedCasts(outer)
	require.True(t, ok)

	c := merged.(*Cast)
	require.Equal(t, types.String, c.To())
	require.Same(t, inner.Child, c.Child)
}

func TestPromoteDataTypeNoOpWhenAlreadyTarget(t *testing.T) {
	lit := NewLiteral(int64(3), types.Int)
	out := PromoteDataType(lit, types.Int)
	require.Same(t, lit, out)
}

func TestPromoteDataTypeWrapsInCast(t *testing.T) {
	lit := NewLiteral(int64(3), types.Int)
	out := PromoteDataType(lit, types.Double)
	_, ok := out.(*Cast)
	require.True(t, ok)
}
