/*
SPDX-License-Identifier: Apache-2.0
*/

// Package trace reconstructs the full provenance of a product batch.
package trace

import (
	"fmt"

	"herbtrace-chaincode/internal/domain"
	"herbtrace-chaincode/internal/ledger"
	"herbtrace-chaincode/internal/lineage"
)

// Assembler reads a batch and every record it references. It never writes.
type Assembler struct {
	store ledger.Store
}

func NewAssembler(store ledger.Store) *Assembler {
	return &Assembler{store: store}
}

// Assemble returns the batch with its source collection events, processing steps
// and quality tests in link order. Referenced records that no longer resolve are
// skipped and reported in Warnings.
func (a *Assembler) Assemble(batchID string) (*domain.Traceability, error) {
	batch, found, err := lineage.LoadBatch(a.store, batchID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFound("batch", batchID)
	}

	result := &domain.Traceability{
		Batch:                  batch,
		SourceCollectionEvents: make([]domain.CollectionEvent, 0, len(batch.SourceCollectionEvents)),
		ProcessingSteps:        make([]domain.ProcessingStep, 0, len(batch.ProcessingSteps)),
		QualityTests:           make([]domain.QualityTest, 0, len(batch.QualityTests)),
		Warnings:               []string{},
	}

	for _, id := range batch.SourceCollectionEvents {
		event, found, err := lineage.LoadCollectionEvent(a.store, id)
		if err != nil {
			return nil, err
		}
		if !found {
			result.Warnings = append(result.Warnings, missing("collection event", id))
			continue
		}
		result.SourceCollectionEvents = append(result.SourceCollectionEvents, event)
	}

	for _, id := range batch.ProcessingSteps {
		step, found, err := lineage.LoadProcessingStep(a.store, id)
		if err != nil {
			return nil, err
		}
		if !found {
			result.Warnings = append(result.Warnings, missing("processing step", id))
			continue
		}
		result.ProcessingSteps = append(result.ProcessingSteps, step)
	}

	for _, id := range batch.QualityTests {
		test, found, err := lineage.LoadQualityTest(a.store, id)
		if err != nil {
			return nil, err
		}
		if !found {
			result.Warnings = append(result.Warnings, missing("quality test", id))
			continue
		}
		result.QualityTests = append(result.QualityTests, test)
	}

	return result, nil
}

func missing(entity, id string) string {
	return fmt.Sprintf("%s %s referenced by batch but not found", entity, id)
}
