/*
SPDX-License-Identifier: Apache-2.0
*/

package admission

import (
	"herbtrace-chaincode/internal/domain"
	"herbtrace-chaincode/internal/ids"
	"herbtrace-chaincode/internal/lineage"
)

// RecordProcessingStep stores a step against an existing batch and marks the
// batch PROCESSING_UPDATED. A step without a timestamp gets the invocation's.
func (e *Engine) RecordProcessingStep(in domain.ProcessingStep) (*domain.ProcessingStep, error) {
	step, err := e.validator.ProcessingStep(in)
	if err != nil {
		return nil, e.fail(KindProcessing, err)
	}
	batch, err := e.lineage.GetBatch(step.BatchID)
	if err != nil {
		return nil, e.fail(KindProcessing, err)
	}

	step.ID = e.ids.New(ids.PrefixProcessing)
	step.DocType = domain.DocProcessingStep
	if step.Timestamp == "" {
		step.Timestamp = e.recordedAt()
	}

	if err := lineage.SaveProcessingStep(e.store, step); err != nil {
		return nil, e.fail(KindProcessing, err)
	}
	if err := e.lineage.LinkProcessingStep(batch, step.ID); err != nil {
		return nil, e.fail(KindProcessing, err)
	}

	e.logger.Info("processing step recorded", "step_id", step.ID, "batch_id", batch.ID, "process_type", step.ProcessType)
	e.accepted(KindProcessing)
	return &step, nil
}
