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

package sql

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrInvalidChildrenNumber is returned when WithChildren is called with
	// the wrong number of children for the node/expression's shape.
	ErrInvalidChildrenNumber = errors.NewKind("%T: invalid children number, got %d, expected %d")

	// ErrEmptyProjections is returned when a Project is constructed with no
	// projection list, violating the invariant that Project's output list
	// is non-empty.
	ErrEmptyProjections = errors.NewKind("project list must not be empty")

	// ErrUnresolvedPlan is raised when an operation that requires a
	// resolved plan (Schema, or the optimizer) is invoked on one that isn't.
	// This is a programmer error: an unresolved plan should never reach the
	// optimizer.
	ErrUnresolvedPlan = errors.NewKind("unresolved plan reached an operation that requires resolution: %s")

	// ErrUnresolvedExpression mirrors ErrUnresolvedPlan for expressions.
	ErrUnresolvedExpression = errors.NewKind("unresolved expression reached an operation that requires resolution: %s")

	// ErrDuplicateAttributeIDs is raised when the deduplication invariant is
	// violated: a binary plan node's children share an attribute ID.
	ErrDuplicateAttributeIDs = errors.NewKind("attribute id %d appears on both sides of %T")

	// ErrMaxIterationsReached is emitted as a diagnostic (not necessarily
	// fatal) when a fixed-point rule batch is capped before converging.
	ErrMaxIterationsReached = errors.NewKind("rule batch %q did not converge after %d iterations")

	// ErrTypeMismatch is the expression-level typing failure: strict typing
	// of an expression failed because an operand's type could not be
	// reconciled with what the operator expects.
	ErrTypeMismatch = errors.NewKind("type mismatch: %s has type %s, expected %s")

	// ErrTypeCheck is the plan-level typing failure: strict typing of a
	// plan operator failed (e.g. a negative Limit bound).
	ErrTypeCheck = errors.NewKind("type check failed for %T: %s")

	// ErrSchemaMismatch is raised when two branches of a set operator
	// (Union/Intersect/Except) don't align by column count or name.
	ErrSchemaMismatch = errors.NewKind("schemas of set operator branches do not align: %s")
)
