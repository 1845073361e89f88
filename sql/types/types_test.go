package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNarrowerThan(t *testing.T) {
	require.True(t, Byte.NarrowerThan(Short))
	require.True(t, Int.NarrowerThan(Long))
	require.True(t, Long.NarrowerThan(Float))
	require.False(t, Double.NarrowerThan(Float))
	require.False(t, Boolean.NarrowerThan(Int))
	require.False(t, Int.NarrowerThan(Int))
}

func TestWidestNumeric(t *testing.T) {
	w, err := Widest(Int, Long)
	require.NoError(t, err)
	require.Equal(t, Long, w)

	w, err = Widest(Long, Int)
	require.NoError(t, err)
	require.Equal(t, Long, w)

	w, err = Widest(Byte, Double)
	require.NoError(t, err)
	require.Equal(t, Double, w)
}

func TestWidestIncomparable(t *testing.T) {
	_, err := Widest(Boolean, Int)
	require.Error(t, err)

	_, err = Widest(String, Double)
	require.Error(t, err)
}

func TestWidestCommutativeAndAssociative(t *testing.T) {
	types := []DataType{Byte, Short, Int, Long, Float, Double}
	for _, a := range types {
		for _, b := range types {
			wab, err1 := Widest(a, b)
			wba, err2 := Widest(b, a)
			require.NoError(t, err1)
			require.NoError(t, err2)
			require.True(t, wab.Equal(wba))
		}
	}

	for _, a := range types {
		for _, b := range types {
			for _, c := range types {
				bc, err := Widest(b, c)
				require.NoError(t, err)
				left, err := Widest(a, bc)
				require.NoError(t, err)

				ab, err := Widest(a, b)
				require.NoError(t, err)
				right, err := Widest(ab, c)
				require.NoError(t, err)

				require.True(t, left.Equal(right))
			}
		}
	}
}

func TestStructEquality(t *testing.T) {
	s1 := NewStruct(StructField{Name: "a", Type: Int}, StructField{Name: "b", Type: String, Nullable: true})
	s2 := NewStruct(StructField{Name: "a", Type: Int}, StructField{Name: "b", Type: String, Nullable: true})
	s3 := NewStruct(StructField{Name: "a", Type: Int})

	require.True(t, s1.Equal(s2))
	require.False(t, s1.Equal(s3))
}
