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

func TestNewSortOrderDefaultsNullsFirstForAsc(t *testing.T) {
	s := NewSortOrder(NewLiteral(int64(1), types.Int), Asc)
	require.Equal(t, NullsFirst, s.NullOrdering)
}

func TestNewSortOrderDefaultsNullsLastForDesc(t *testing.T) {
	s := NewSortOrder(NewLiteral(int64(1), types.Int), Desc)
	require.Equal(t, NullsLast, s.NullOrdering)
}

func TestNewSortOrderWithNullsOverridesDefault(t *testing.T) {
	s := NewSortOrderWithNulls(NewLiteral(int64(1), types.Int), Asc, NullsLast)
	require.Equal(t, NullsLast, s.NullOrdering)
}

func TestSortOrderString(t *testing.T) {
	s := NewSortOrder(NewLiteral(int64(1), types.Int), Desc)
	require.Equal(t, "1 DESC NULLS LAST", s.String())
}
