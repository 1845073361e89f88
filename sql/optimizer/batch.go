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

// Package optimizer implements the rule-based plan optimizer: ordered
// batches of rewrite rules run to a fixed point (or once) over a resolved
// logical plan.
package optimizer

import (
	"github.com/arboradb/planner/sql"
)

// RuleFunc rewrites a plan, given the surrounding optimizer for rules that
// need to recurse into sub-plans (subqueries, CTE bodies) through it.
type RuleFunc func(ctx *sql.Context, o *Optimizer, n sql.Node) (sql.Node, error)

// Rule pairs a RuleFunc with the name under which it is logged and
// diagnosed.
type Rule struct {
	Name  string
	Apply RuleFunc
}

// Batch is a named, ordered list of rules applied together, either once or
// repeatedly until the plan stops changing.
type Batch struct {
	Name string
	// Iterations bounds how many times the batch's rules run in sequence
	// over the plan. 1 means "once"; anything greater means "to a fixed
	// point, or until Iterations is reached, whichever comes first".
	Iterations int
	Rules      []Rule
}

// Eval runs b's rules over n, either once or to a fixed point depending on
// b.Iterations, returning sql.ErrMaxIterationsReached (along with the
// furthest plan reached) if convergence isn't found in time.
func (b *Batch) Eval(ctx *sql.Context, o *Optimizer, n sql.Node) (sql.Node, error) {
	if b.Iterations <= 0 {
		return n, nil
	}

	prev := n
	cur, err := b.evalOnce(ctx, o, n)
	if err != nil {
		return nil, err
	}

	if b.Iterations == 1 {
		return cur, nil
	}

	for i := 1; !nodesConverged(prev, cur); {
		prev = cur
		cur, err = b.evalOnce(ctx, o, cur)
		if err != nil {
			return nil, err
		}

		i++
		if i >= b.Iterations && !nodesConverged(prev, cur) {
			ctx.Log("optimizer: batch %q did not converge within %d iterations", b.Name, b.Iterations)
			return cur, sql.ErrMaxIterationsReached.New(b.Name, b.Iterations)
		}
	}

	return cur, nil
}

func (b *Batch) evalOnce(ctx *sql.Context, o *Optimizer, n sql.Node) (sql.Node, error) {
	result := n
	for _, rule := range b.Rules {
		var err error
		result, err = rule.Apply(ctx, o, result)
		if err != nil {
			return nil, err
		}
		ctx.Log("optimizer: applied rule %q", rule.Name)
	}
	return result, nil
}

// nodesConverged reports whether a and b are the same plan, either by
// pointer identity (the common case: a rule batch that made no changes
// returns its input node unchanged) or by deep structural equality.
func nodesConverged(a, b sql.Node) bool {
	if sql.NodeSameAs(a, b) {
		return true
	}
	return sql.NodesEqual(a, b)
}
