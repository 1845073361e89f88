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

// Package types implements the closed set of primitive data types
// supported by the logical plan algebra, along with the numeric widening
// lattice used for implicit promotion.
package types

import (
	"fmt"

	errors "gopkg.in/src-d/go-errors.v1"
)

// ErrNoCommonType is returned by Widest when two types have no widening
// partner in common (e.g. Boolean and Int).
var ErrNoCommonType = errors.NewKind("types %s and %s have no common widening type")

// Kind identifies one member of the closed data type set.
type Kind uint8

const (
	KindBoolean Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindString
	KindStruct
)

// DataType is an immutable, comparable description of the shape of a value:
// one of the primitive kinds, or a Struct of named, typed, nullable fields.
// DataType holds a slice of struct fields, so it is not comparable with ==;
// compare values with Equal.
type DataType struct {
	kind   Kind
	fields []StructField // only set when kind == KindStruct
}

// StructField is one named, typed, nullable member of a Struct type.
type StructField struct {
	Name     string
	Type     DataType
	Nullable bool
}

var (
	Boolean = DataType{kind: KindBoolean}
	Byte    = DataType{kind: KindByte}
	Short   = DataType{kind: KindShort}
	Int     = DataType{kind: KindInt}
	Long    = DataType{kind: KindLong}
	Float   = DataType{kind: KindFloat}
	Double  = DataType{kind: KindDouble}
	String  = DataType{kind: KindString}
)

// NewStruct builds a Struct DataType with the given fields, in order.
func NewStruct(fields ...StructField) DataType {
	return DataType{kind: KindStruct, fields: fields}
}

// Kind returns the data type's kind.
func (t DataType) Kind() Kind { return t.kind }

// Fields returns the fields of a Struct type, or nil for any other kind.
func (t DataType) Fields() []StructField { return t.fields }

// Name returns the SQL name of the type, as used in pretty-printing and
// error messages.
func (t DataType) Name() string {
	switch t.kind {
	case KindBoolean:
		return "BOOLEAN"
	case KindByte:
		return "TINYINT"
	case KindShort:
		return "SMALLINT"
	case KindInt:
		return "INT"
	case KindLong:
		return "BIGINT"
	case KindFloat:
		return "FLOAT"
	case KindDouble:
		return "DOUBLE"
	case KindString:
		return "STRING"
	case KindStruct:
		names := make([]string, len(t.fields))
		for i, f := range t.fields {
			names[i] = fmt.Sprintf("%s: %s", f.Name, f.Type.Name())
		}
		return fmt.Sprintf("STRUCT<%v>", names)
	default:
		return "UNKNOWN"
	}
}

func (t DataType) String() string { return t.Name() }

// Equal reports whether two data types are identical (same kind, and for
// Struct, same fields in the same order).
func (t DataType) Equal(other DataType) bool {
	if t.kind != other.kind {
		return false
	}
	if t.kind != KindStruct {
		return true
	}
	if len(t.fields) != len(other.fields) {
		return false
	}
	for i, f := range t.fields {
		g := other.fields[i]
		if f.Name != g.Name || f.Nullable != g.Nullable || !f.Type.Equal(g.Type) {
			return false
		}
	}
	return true
}

// IsNumeric reports whether the type participates in the numeric widening
// lattice.
func (t DataType) IsNumeric() bool {
	switch t.kind {
	case KindByte, KindShort, KindInt, KindLong, KindFloat, KindDouble:
		return true
	default:
		return false
	}
}

// IsIntegral reports whether the type is one of the integral numeric kinds.
func (t DataType) IsIntegral() bool {
	switch t.kind {
	case KindByte, KindShort, KindInt, KindLong:
		return true
	default:
		return false
	}
}

// IsFractional reports whether the type is one of the fractional numeric
// kinds.
func (t DataType) IsFractional() bool {
	switch t.kind {
	case KindFloat, KindDouble:
		return true
	default:
		return false
	}
}

// rank gives the numeric kinds' position in the widening lattice
// Byte < Short < Int < Long < Float < Double. Non-numeric kinds have no
// rank and are never compared by it.
func rank(k Kind) (int, bool) {
	switch k {
	case KindByte:
		return 0, true
	case KindShort:
		return 1, true
	case KindInt:
		return 2, true
	case KindLong:
		return 3, true
	case KindFloat:
		return 4, true
	case KindDouble:
		return 5, true
	default:
		return 0, false
	}
}

// NarrowerThan reports whether t is strictly narrower than other in the
// numeric widening lattice. Non-numeric types, and any pair that includes a
// non-numeric type, are never narrower than one another.
func (t DataType) NarrowerThan(other DataType) bool {
	tr, ok1 := rank(t.kind)
	or, ok2 := rank(other.kind)
	return ok1 && ok2 && tr < or
}

// Widest returns the least upper bound of a and b in the numeric widening
// lattice: the narrowest type that both a and b can be implicitly promoted
// to without loss. Two identical types (including two identical Structs, or
// Boolean with Boolean, or String with String) widen to themselves. Boolean
// and String have no widening partners other than themselves; mixing them
// with a numeric type, a Struct, or each other is an error.
func Widest(a, b DataType) (DataType, error) {
	if a.Equal(b) {
		return a, nil
	}
	ar, aNum := rank(a.kind)
	br, bNum := rank(b.kind)
	if aNum && bNum {
		if ar >= br {
			return a, nil
		}
		return b, nil
	}
	return DataType{}, ErrNoCommonType.New(a.Name(), b.Name())
}
