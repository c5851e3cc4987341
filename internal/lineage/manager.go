/*
SPDX-License-Identifier: Apache-2.0
*/

// Package lineage owns product batches and the append-only links from a batch to
// its collection events, processing steps and quality tests.
package lineage

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"herbtrace-chaincode/internal/domain"
	"herbtrace-chaincode/internal/ids"
	"herbtrace-chaincode/internal/ledger"
)

// EventQualityEvaluated is emitted whenever a quality test sets a batch's status.
const EventQualityEvaluated = "QualityEvaluated"

// QualityEvaluated is the payload of EventQualityEvaluated. It keeps the status a
// test overwrote, since the batch itself only records the latest one.
type QualityEvaluated struct {
	BatchID        string             `json:"batchId"`
	TestID         string             `json:"testId"`
	PreviousStatus domain.BatchStatus `json:"previousStatus"`
	Status         domain.BatchStatus `json:"status"`
}

// Manager creates batches and links records to them.
type Manager struct {
	store  ledger.Store
	ids    *ids.Generator
	events ledger.EventSink
	logger *slog.Logger
}

type Option func(*Manager)

func WithEventSink(sink ledger.EventSink) Option {
	return func(m *Manager) {
		m.events = sink
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

func NewManager(store ledger.Store, gen *ids.Generator, opts ...Option) *Manager {
	m := &Manager{store: store, ids: gen, logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateBatch allocates an id and verification token for b and stores it with
// empty reference lists in status CREATED. Client-supplied ids, links, token and
// status are ignored.
func (m *Manager) CreateBatch(b domain.ProductBatch) (*domain.ProductBatch, error) {
	b.DocType = domain.DocProductBatch
	b.ID = m.ids.New(ids.PrefixBatch)
	b.VerificationToken = m.ids.Token(b.ID)
	b.SourceCollectionEvents = []string{}
	b.ProcessingSteps = []string{}
	b.QualityTests = []string{}
	b.Status = domain.BatchCreated

	if err := SaveBatch(m.store, b); err != nil {
		return nil, err
	}
	index := domain.TokenIndex{DocType: domain.DocTokenIndex, Token: b.VerificationToken, BatchID: b.ID}
	if err := ledger.PutJSON(m.store, tokenKey(b.VerificationToken), index); err != nil {
		return nil, err
	}
	m.logger.Info("batch created", "batch_id", b.ID, "species", b.Species)
	return &b, nil
}

// GetBatch returns the batch or a not-found rejection.
func (m *Manager) GetBatch(id string) (*domain.ProductBatch, error) {
	batch, found, err := LoadBatch(m.store, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFound("batch", id)
	}
	return &batch, nil
}

// GetBatchByToken resolves a verification token to its batch.
func (m *Manager) GetBatchByToken(token string) (*domain.ProductBatch, error) {
	var index domain.TokenIndex
	found, err := ledger.GetJSON(m.store, tokenKey(token), &index)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFound("verification token", token)
	}
	return m.GetBatch(index.BatchID)
}

// LinkCollectionEvent adds eventID to the batch's sources and marks the event as
// assigned to it. Linking the same pair twice is a no-op on the source list.
// An event already assigned to another batch is rejected.
func (m *Manager) LinkCollectionEvent(eventID, batchID string) (*domain.ProductBatch, error) {
	event, found, err := LoadCollectionEvent(m.store, eventID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFound("collection event", eventID)
	}
	batch, err := m.GetBatch(batchID)
	if err != nil {
		return nil, err
	}
	if event.BatchID != "" && event.BatchID != batchID {
		return nil, domain.Reject(domain.RuleLineage,
			"collection event %s is already assigned to batch %s", eventID, event.BatchID)
	}

	var changed bool
	batch.SourceCollectionEvents, changed = appendUnique(batch.SourceCollectionEvents, eventID)
	if changed {
		if err := SaveBatch(m.store, *batch); err != nil {
			return nil, err
		}
	}
	if event.Status != domain.EventAssignedToBatch || event.BatchID != batchID {
		event.Status = domain.EventAssignedToBatch
		event.BatchID = batchID
		if err := SaveCollectionEvent(m.store, event); err != nil {
			return nil, err
		}
	}
	m.logger.Info("collection event linked", "event_id", eventID, "batch_id", batchID, "new_link", changed)
	return batch, nil
}

// LinkQualityTest appends test to batch and sets the batch status from its result.
// The latest test decides the status; the overwritten status is published in a
// QualityEvaluated event.
func (m *Manager) LinkQualityTest(batch *domain.ProductBatch, test domain.QualityTest) error {
	previous := batch.Status
	next := domain.QualityStatus(test.OverallPassed)
	if err := m.transition(batch, next); err != nil {
		return err
	}
	batch.QualityTests, _ = appendUnique(batch.QualityTests, test.ID)
	if err := SaveBatch(m.store, *batch); err != nil {
		return err
	}
	return m.emit(EventQualityEvaluated, QualityEvaluated{
		BatchID:        batch.ID,
		TestID:         test.ID,
		PreviousStatus: previous,
		Status:         next,
	})
}

// LinkProcessingStep appends stepID to batch and marks it PROCESSING_UPDATED.
func (m *Manager) LinkProcessingStep(batch *domain.ProductBatch, stepID string) error {
	if err := m.transition(batch, domain.BatchProcessingUpdated); err != nil {
		return err
	}
	batch.ProcessingSteps, _ = appendUnique(batch.ProcessingSteps, stepID)
	return SaveBatch(m.store, *batch)
}

func (m *Manager) transition(batch *domain.ProductBatch, next domain.BatchStatus) error {
	if !batch.Status.CanTransitionTo(next) {
		return domain.Reject(domain.RuleLineage, "batch %s cannot move from %s to %s", batch.ID, batch.Status, next)
	}
	batch.Status = next
	return nil
}

func (m *Manager) emit(name string, payload any) error {
	if m.events == nil {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", name, err)
	}
	if err := m.events.Emit(name, raw); err != nil {
		return fmt.Errorf("failed to emit %s event: %w", name, err)
	}
	return nil
}
