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
	"context"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
)

// Context carries the ambient concerns of a planning run: cancellation (via
// the embedded context.Context), a logger for rule diagnostics, and a
// tracer for instrumenting batch/rule execution. It is not involved in row
// evaluation -- this module has none -- only in observing the rewrite
// process itself.
type Context struct {
	context.Context
	logger logrus.FieldLogger
	tracer opentracing.Tracer
}

// NewContext builds a Context around the given context.Context, applying
// any options.
func NewContext(ctx context.Context, opts ...ContextOption) *Context {
	c := &Context{
		Context: ctx,
		logger:  logrus.StandardLogger(),
		tracer:  opentracing.NoopTracer{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewEmptyContext returns a Context with default logging and a no-op
// tracer, suitable for tests and one-off optimizer runs.
func NewEmptyContext() *Context {
	return NewContext(context.Background())
}

// ContextOption configures a Context at construction time.
type ContextOption func(*Context)

// WithLogger overrides the Context's logger.
func WithLogger(l logrus.FieldLogger) ContextOption {
	return func(c *Context) { c.logger = l }
}

// WithTracer overrides the Context's tracer.
func WithTracer(t opentracing.Tracer) ContextOption {
	return func(c *Context) { c.tracer = t }
}

// Log records a diagnostic message at info level. The message is passed
// through as given; optimizer callers add their own "optimizer: " prefix.
func (c *Context) Log(format string, args ...interface{}) {
	c.logger.Infof(format, args...)
}

// Span starts a new tracing span as a child of any span already active on
// this Context, returning the span and a derived Context that carries it.
// Callers must call span.Finish() when the traced work completes.
func (c *Context) Span(opName string, opts ...opentracing.StartSpanOption) (opentracing.Span, *Context) {
	if parent := opentracing.SpanFromContext(c.Context); parent != nil {
		opts = append(opts, opentracing.ChildOf(parent.Context()))
	}
	span := c.tracer.StartSpan(opName, opts...)
	nc := *c
	nc.Context = opentracing.ContextWithSpan(c.Context, span)
	return span, &nc
}
