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

package optimizer

import (
	"github.com/mitchellh/hashstructure"

	"github.com/arboradb/planner/sql"
)

// maxBatchIterations bounds the fixed-point loop the default batch runs to,
// mirroring the analyzer's own iteration cap.
const maxBatchIterations = 100

// Optimizer drives an ordered list of Batches over a resolved logical plan.
// It carries no catalog or session state of its own -- every rule it runs
// is a pure plan -> plan function.
type Optimizer struct {
	batches []Batch
}

// New builds an Optimizer running the given batches, in order.
func New(batches []Batch) *Optimizer {
	return &Optimizer{batches: batches}
}

// NewDefault builds an Optimizer running DefaultBatches().
func NewDefault() *Optimizer {
	return New(DefaultBatches())
}

// DefaultBatches builds the ordered rule list this module runs by default:
// every rule in DefaultRules, applied together in declaration order, to a
// fixed point.
func DefaultBatches() []Batch {
	return []Batch{
		{Name: "default", Iterations: maxBatchIterations, Rules: DefaultRules},
	}
}

// Optimize runs o's batches over n in order, feeding each batch's output
// plan into the next. n must be Resolved(); calling Optimize on an
// unresolved plan is a programmer error and returns ErrUnresolvedPlan
// rather than running any rule against it. Before any batch runs, n's input
// contract is enforced: every Project's list is non-empty, every binary
// node's children expose disjoint attribute IDs, and every node's own
// strict-typing obligation (set-operator branch alignment, Limit's bound)
// is satisfied -- the last of which can itself rewrite n by inserting the
// casts a set operator's branches need.
func (o *Optimizer) Optimize(ctx *sql.Context, n sql.Node) (sql.Node, error) {
	if !n.Resolved() {
		return nil, sql.ErrUnresolvedPlan.New(n.String())
	}

	n, err := applyStrictTyping(n)
	if err != nil {
		return nil, err
	}
	if err := checkInputContract(n); err != nil {
		return nil, err
	}

	span, ctx := ctx.Span("optimizer.Optimize")
	defer span.Finish()

	result := n
	for _, batch := range o.batches {
		batchSpan, batchCtx := ctx.Span("optimizer.Batch." + batch.Name)
		var err error
		result, err = batch.Eval(batchCtx, o, result)
		batchSpan.Finish()
		if err != nil {
			if !sql.ErrMaxIterationsReached.Is(err) {
				return nil, err
			}
			// A capped batch still returns its furthest-reached plan; that
			// plan is safe to keep using, so only the diagnostic is fatal
			// to the batch, not to the run as a whole.
		}
	}
	return result, nil
}

// Sig returns a structural hash of n's shape, computed over its rendered
// String() tree, for callers that want a cheap equality pre-check before
// falling back to the exact reflect.DeepEqual comparison sql.NodesEqual
// performs. Two plans with different Sig values are guaranteed unequal;
// equal Sig values are not proof of equality, only a hint worth confirming.
func Sig(n sql.Node) (uint64, error) {
	return hashstructure.Hash(n.String(), nil)
}
