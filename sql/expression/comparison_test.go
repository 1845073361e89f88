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

func TestComparisonDataTypeIsAlwaysBoolean(t *testing.T) {
	eq := NewEq(NewLiteral(int64(1), types.Int), NewLiteral(int64(1), types.Int))
	require.Equal(t, types.Boolean, eq.DataType())
}

func TestEqEval(t *testing.T) {
	eq := NewEq(NewLiteral(int64(1), types.Int), NewLiteral(int64(1), types.Int))
	v, err := eq.Eval()
	require.NoError(t, err)
	require.Equal(t, true, v)
}

func TestComparisonNullPropagates(t *testing.T) {
	eq := NewEq(NewLiteral(nil, types.Int), NewLiteral(int64(1), types.Int))
	v, err := eq.Eval()
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestLtAcrossWidenedTypes(t *testing.T) {
	lt := NewLt(NewLiteral(int64(1), types.Int), NewLiteral(2.5, types.Double))
	v, err := lt.Eval()
	require.NoError(t, err)
	require.Equal(t, true, v)
}

func TestIsNullIsNeverNullable(t *testing.T) {
	isNull := NewIsNull(NewLiteral(nil, types.Int))
	require.False(t, isNull.IsNullable())

	v, err := isNull.Eval()
	require.NoError(t, err)
	require.Equal(t, true, v)
}

func TestIsNotNull(t *testing.T) {
	isNotNull := NewIsNotNull(NewLiteral(int64(1), types.Int))
	v, err := isNotNull.Eval()
	require.NoError(t, err)
	require.Equal(t, true, v)
}

func TestComparisonRejectsIncomparableTypes(t *testing.T) {
	eq := NewEq(NewLiteral("x", types.String), NewLiteral(int64(1), types.Int))
	_, err := eq.StrictlyTyped()
	require.Error(t, err)
}

func TestComparisonAllowsLikeNonNumericTypes(t *testing.T) {
	eq := NewEq(NewLiteral("x", types.String), NewLiteral("y", types.String))
	strict, err := eq.StrictlyTyped()
	require.NoError(t, err)
	require.Same(t, eq, strict)
}
