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

func TestIfEval(t *testing.T) {
	f := NewIf(NewLiteral(true, types.Boolean), NewLiteral(int64(1), types.Int), NewLiteral(int64(2), types.Int))
	v, err := f.Eval()
	require.NoError(t, err)
	require.EqualValues(t, 1, v)
}

func TestIfTreatsNullConditionAsFalse(t *testing.T) {
	f := NewIf(NewLiteral(nil, types.Boolean), NewLiteral(int64(1), types.Int), NewLiteral(int64(2), types.Int))
	v, err := f.Eval()
	require.NoError(t, err)
	require.EqualValues(t, 2, v)
}

func TestIfStrictlyTypedRejectsNonBooleanCond(t *testing.T) {
	f := NewIf(NewLiteral(int64(1), types.Int), NewLiteral(int64(1), types.Int), NewLiteral(int64(2), types.Int))
	_, err := f.StrictlyTyped()
	require.Error(t, err)
}

func TestIfWidensBranches(t *testing.T) {
	f := NewIf(NewLiteral(true, types.Boolean), NewLiteral(int64(1), types.Int), NewLiteral(2.5, types.Double))
	require.Equal(t, types.Double, f.DataType())
}

func TestCoalesceReturnsFirstNonNull(t *testing.T) {
	c := NewCoalesce(NewLiteral(nil, types.Int), NewLiteral(nil, types.Int), NewLiteral(int64(3), types.Int))
	v, err := c.Eval()
	require.NoError(t, err)
	require.EqualValues(t, 3, v)
}

func TestCoalesceAllNullYieldsNull(t *testing.T) {
	c := NewCoalesce(NewLiteral(nil, types.Int), NewLiteral(nil, types.Int))
	v, err := c.Eval()
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestCoalesceNotNullableWhenAnyArgIsNotNullable(t *testing.T) {
	c := NewCoalesce(NewLiteral(nil, types.Int), NewLiteral(int64(1), types.Int))
	require.False(t, c.IsNullable())
}

func TestCoalesceNullableWhenAllArgsNullable(t *testing.T) {
	c := NewCoalesce(NewLiteral(nil, types.Int), NewLiteral(nil, types.Int))
	require.True(t, c.IsNullable())
}
