/*
SPDX-License-Identifier: Apache-2.0
*/

// Package admission decides whether collection events, quality tests and
// processing steps may enter the record, and serves the read side of the ledger.
//
// An Engine is bound to one ledger transaction. Every check reads committed state
// and every mutation is buffered in that transaction, so an invocation either
// commits all of its writes or none of them. A key is never read after it has
// been written in the same invocation.
package admission

import (
	"log/slog"
	"time"

	"herbtrace-chaincode/internal/conservation"
	"herbtrace-chaincode/internal/domain"
	"herbtrace-chaincode/internal/ids"
	"herbtrace-chaincode/internal/ledger"
	"herbtrace-chaincode/internal/lineage"
	"herbtrace-chaincode/internal/metrics"
	"herbtrace-chaincode/internal/quota"
	"herbtrace-chaincode/internal/trace"
	"herbtrace-chaincode/internal/validation"
)

// Record kinds used in logs and metrics.
const (
	KindCollection = "collection"
	KindQuality    = "quality"
	KindProcessing = "processing"
	KindBatch      = "batch"
	KindLink       = "link"
	KindRule       = "rule"
)

// Engine runs admission and lineage operations against one transaction.
type Engine struct {
	store     ledger.Store
	ids       *ids.Generator
	events    ledger.EventSink
	validator *validation.Validator
	logger    *slog.Logger
	metrics   *metrics.Metrics

	registry *conservation.Registry
	quotas   *quota.Ledger
	lineage  *lineage.Manager
	trace    *trace.Assembler
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithEventSink publishes ledger events, such as quality evaluations, to sink.
func WithEventSink(sink ledger.EventSink) Option {
	return func(e *Engine) {
		e.events = sink
	}
}

func WithValidator(v *validation.Validator) Option {
	return func(e *Engine) {
		e.validator = v
	}
}

// NewEngine binds an engine to store. gen must be scoped to the same transaction
// so generated ids and timestamps are deterministic across endorsers.
func NewEngine(store ledger.Store, gen *ids.Generator, opts ...Option) *Engine {
	e := &Engine{
		store:     store,
		ids:       gen,
		validator: validation.Default(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	lineageOpts := []lineage.Option{lineage.WithLogger(e.logger)}
	if e.events != nil {
		lineageOpts = append(lineageOpts, lineage.WithEventSink(e.events))
	}
	e.registry = conservation.NewRegistry(store)
	e.quotas = quota.New(store)
	e.lineage = lineage.NewManager(store, gen, lineageOpts...)
	e.trace = trace.NewAssembler(store)
	return e
}

// recordedAt is the invocation's timestamp as stored on admitted records.
func (e *Engine) recordedAt() string {
	return e.ids.Now().UTC().Format(time.RFC3339)
}

// fail logs and counts a failed operation and returns err unchanged.
// Rule rejections are expected outcomes and log at info; anything else is an error.
func (e *Engine) fail(kind string, err error) error {
	if r, ok := domain.AsRejection(err); ok {
		e.logger.Info("admission rejected", "kind", kind, "rule", r.Rule, "reason", r.Reason)
		e.metrics.IncrementRejection(r.Rule)
		e.metrics.IncrementAdmission(kind, metrics.OutcomeRejected)
		return err
	}
	e.logger.Error("admission failed", "kind", kind, "error", err)
	e.metrics.IncrementAdmission(kind, metrics.OutcomeError)
	return err
}

func (e *Engine) accepted(kind string) {
	e.metrics.IncrementAdmission(kind, metrics.OutcomeAccepted)
}
