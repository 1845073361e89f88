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
	"github.com/arboradb/planner/sql"
	"github.com/arboradb/planner/sql/predicate"
)

// JoinType identifies one of the five join kinds this algebra models. There
// is deliberately no physical variant (hash/merge/lookup) here: this core
// never chooses a join strategy, only a join semantics.
type JoinType uint8

const (
	// JoinTypeInner keeps only row pairs for which Condition is true.
	JoinTypeInner JoinType = iota
	// JoinTypeLeftSemi keeps each left row at most once, if some right row
	// satisfies Condition, projecting only the left side's columns.
	JoinTypeLeftSemi
	// JoinTypeLeftOuter keeps every left row, pairing it with a row of
	// nulls on the right when no right row satisfies Condition.
	JoinTypeLeftOuter
	// JoinTypeRightOuter is the mirror image of JoinTypeLeftOuter.
	JoinTypeRightOuter
	// JoinTypeFullOuter keeps every row from both sides, padding with
	// nulls on whichever side lacks a match.
	JoinTypeFullOuter
)

func (t JoinType) String() string {
	switch t {
	case JoinTypeInner:
		return "Inner"
	case JoinTypeLeftSemi:
		return "LeftSemi"
	case JoinTypeLeftOuter:
		return "LeftOuter"
	case JoinTypeRightOuter:
		return "RightOuter"
	case JoinTypeFullOuter:
		return "FullOuter"
	default:
		return "Unknown"
	}
}

// IsOuter reports whether t can introduce null-padded rows.
func (t JoinType) IsOuter() bool {
	return t == JoinTypeLeftOuter || t == JoinTypeRightOuter || t == JoinTypeFullOuter
}

// JoinNode combines the rows of Left and Right according to Op, keeping
// only the pairs for which Condition holds (vacuously true for a join with
// no condition, i.e. a cross join).
type JoinNode struct {
	BinaryNode
	Condition sql.Expression
	Op        JoinType
}

var _ sql.Node = (*JoinNode)(nil)
var _ sql.Expressioner = (*JoinNode)(nil)

// NewJoin builds a JoinNode of the given kind between left and right.
func NewJoin(left, right sql.Node, op JoinType, condition sql.Expression) *JoinNode {
	return &JoinNode{BinaryNode: BinaryNode{Left: left, Right: right}, Op: op, Condition: condition}
}

// Expressions implements sql.Expressioner.
func (j *JoinNode) Expressions() []sql.Expression {
	if j.Condition == nil {
		return nil
	}
	return []sql.Expression{j.Condition}
}

// WithExpressions implements sql.Expressioner.
func (j *JoinNode) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if j.Condition == nil {
		if len(exprs) != 0 {
			return nil, sql.ErrInvalidChildrenNumber.New(j, len(exprs), 0)
		}
		return j, nil
	}
	if len(exprs) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(j, len(exprs), 1)
	}
	return NewJoin(j.Left, j.Right, j.Op, exprs[0]), nil
}

// Resolved implements sql.Node.
func (j *JoinNode) Resolved() bool {
	resolved := j.Left.Resolved() && j.Right.Resolved()
	if j.Condition != nil {
		resolved = resolved && j.Condition.Resolved()
	}
	return resolved
}

// WithChildren implements sql.Node.
func (j *JoinNode) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(j, len(children), 2)
	}
	return NewJoin(children[0], children[1], j.Op, j.Condition), nil
}

// Schema implements sql.Node: the outer sides of the join have every
// column forced nullable, since an unmatched row on that side contributes
// nulls; LeftSemi projects only the left side's columns, since its purpose
// is existence-testing, not combination.
func (j *JoinNode) Schema() sql.Schema {
	switch j.Op {
	case JoinTypeLeftOuter:
		return append(j.Left.Schema(), sql.MakeNullable(j.Right.Schema())...)
	case JoinTypeRightOuter:
		return append(sql.MakeNullable(j.Left.Schema()), j.Right.Schema()...)
	case JoinTypeFullOuter:
		return append(sql.MakeNullable(j.Left.Schema()), sql.MakeNullable(j.Right.Schema())...)
	case JoinTypeLeftSemi:
		return j.Left.Schema()
	default:
		return append(j.Left.Schema(), j.Right.Schema()...)
	}
}

func (j *JoinNode) String() string {
	pr := sql.NewTreePrinter()
	if j.Condition != nil {
		_ = pr.WriteNode("%sJoin(%s)", j.Op, j.Condition)
	} else {
		_ = pr.WriteNode("%sJoin", j.Op)
	}
	_ = pr.WriteChildren(j.Left.String(), j.Right.String())
	return pr.String()
}

// SplitJoinCondition splits j's condition into its top-level conjuncts.
// PushFiltersThroughJoins does not call it: that rule splits the Filter
// above the join, not the join's own condition.
func SplitJoinCondition(j *JoinNode) []sql.Expression {
	if j.Condition == nil {
		return nil
	}
	return predicate.SplitConjunction(j.Condition)
}
