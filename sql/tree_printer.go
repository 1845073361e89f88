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

import (
	"fmt"
	"strings"
)

// TreePrinter renders a node and its already-rendered children using
// box-drawing characters: "├─ " for a non-last child, "└─ " for the last,
// and "│  "/"   " continuation prefixes for that child's own subtree. A
// node's pretty-printed form is built bottom-up: each child renders itself
// first, and the parent reattaches those strings via WriteChildren.
type TreePrinter struct {
	line     string
	children []string
}

// NewTreePrinter returns an empty TreePrinter.
func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

// WriteNode sets this printer's own line, formatted like fmt.Sprintf.
func (p *TreePrinter) WriteNode(format string, args ...interface{}) error {
	p.line = fmt.Sprintf(format, args...)
	return nil
}

// WriteChildren attaches one already-rendered subtree per child, in order.
func (p *TreePrinter) WriteChildren(children ...string) error {
	p.children = append(p.children, children...)
	return nil
}

// String renders the full tree as a single, possibly multi-line string.
func (p *TreePrinter) String() string {
	var b strings.Builder
	b.WriteString(p.line)
	for i, child := range p.children {
		last := i == len(p.children)-1
		connector, continuation := "├─ ", "│  "
		if last {
			connector, continuation = "└─ ", "   "
		}
		for j, l := range strings.Split(child, "\n") {
			b.WriteString("\n")
			if j == 0 {
				b.WriteString(connector)
			} else {
				b.WriteString(continuation)
			}
			b.WriteString(l)
		}
	}
	return b.String()
}
