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

func TestAndThreeValued(t *testing.T) {
	var testCases = []struct {
		name        string
		left, right interface{}
		expected    interface{}
	}{
		{"left is true, right is false", true, false, false},
		{"left is true, right is null", true, nil, nil},
		{"left is false, right is true", false, true, false},
		{"left is null, right is true", nil, true, nil},
		{"left is false, right is null", false, nil, false},
		{"left is null, right is false", nil, false, false},
		{"both true", true, true, true},
		{"both false", false, false, false},
		{"both null", nil, nil, nil},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewAnd(
				NewLiteral(tt.left, types.Boolean),
				NewLiteral(tt.right, types.Boolean),
			).Eval()
			require.NoError(t, err)
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestOrThreeValued(t *testing.T) {
	var testCases = []struct {
		name        string
		left, right interface{}
		expected    interface{}
	}{
		{"left is true, right is false", true, false, true},
		{"left is null, right is true", nil, true, true},
		{"left is false, right is true", false, true, true},
		{"left is true, right is null", true, nil, true},
		{"both true", true, true, true},
		{"both false", false, false, false},
		{"both null", nil, nil, nil},
		{"left is false, right is null", false, nil, nil},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewOr(
				NewLiteral(tt.left, types.Boolean),
				NewLiteral(tt.right, types.Boolean),
			).Eval()
			require.NoError(t, err)
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestNotThreeValued(t *testing.T) {
	var testCases = []struct {
		value    interface{}
		expected interface{}
	}{
		{true, false},
		{false, true},
		{nil, nil},
	}

	for _, tt := range testCases {
		result, err := NewNot(NewLiteral(tt.value, types.Boolean)).Eval()
		require.NoError(t, err)
		require.Equal(t, tt.expected, result)
	}
}

func TestAndIsNullableOnlyWhenOperandIs(t *testing.T) {
	and := NewAnd(NewLiteral(true, types.Boolean), NewLiteral(nil, types.Boolean))
	require.True(t, and.IsNullable())

	and2 := NewAnd(NewLiteral(true, types.Boolean), NewLiteral(false, types.Boolean))
	require.False(t, and2.IsNullable())
}

func TestNotStrictlyTypedRejectsNonBoolean(t *testing.T) {
	_, err := NewNot(NewLiteral(1, types.Int)).StrictlyTyped()
	require.Error(t, err)
}

func TestAndStrictlyTypedIdentityWhenAlreadyTyped(t *testing.T) {
	and := NewAnd(NewLiteral(true, types.Boolean), NewLiteral(false, types.Boolean))
	out, err := and.StrictlyTyped()
	require.NoError(t, err)
	require.Same(t, and, out)
}
