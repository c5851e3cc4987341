/*
SPDX-License-Identifier: Apache-2.0
*/

package admission

import (
	"strings"
	"time"

	"herbtrace-chaincode/internal/domain"
)

// CreateProductBatch registers a new batch with empty lineage.
func (e *Engine) CreateProductBatch(in domain.ProductBatch) (*domain.ProductBatch, error) {
	batch, err := e.validator.ProductBatch(in)
	if err != nil {
		return nil, e.fail(KindBatch, err)
	}
	created, err := e.lineage.CreateBatch(batch)
	if err != nil {
		return nil, e.fail(KindBatch, err)
	}
	e.accepted(KindBatch)
	return created, nil
}

// LinkCollectionEventToBatch records eventID as a source of batchID.
func (e *Engine) LinkCollectionEventToBatch(eventID, batchID string) (*domain.ProductBatch, error) {
	eventID, batchID = strings.TrimSpace(eventID), strings.TrimSpace(batchID)
	if eventID == "" || batchID == "" {
		return nil, e.fail(KindLink, domain.Malformed("eventId and batchId are required"))
	}
	batch, err := e.lineage.LinkCollectionEvent(eventID, batchID)
	if err != nil {
		return nil, e.fail(KindLink, err)
	}
	e.accepted(KindLink)
	return batch, nil
}

func (e *Engine) GetProductBatch(batchID string) (*domain.ProductBatch, error) {
	return e.lineage.GetBatch(batchID)
}

// GetBatchByToken resolves the verification token printed on a product.
func (e *Engine) GetBatchByToken(token string) (*domain.ProductBatch, error) {
	return e.lineage.GetBatchByToken(strings.ToUpper(strings.TrimSpace(token)))
}

// GetFullTraceability assembles the batch with every linked record.
func (e *Engine) GetFullTraceability(batchID string) (*domain.Traceability, error) {
	start := time.Now()
	defer func() {
		e.metrics.ObserveTraceLatency(time.Since(start))
	}()

	result, err := e.trace.Assemble(batchID)
	if err != nil {
		return nil, err
	}
	if len(result.Warnings) > 0 {
		e.logger.Warn("traceability has dangling references", "batch_id", batchID, "warnings", result.Warnings)
	}
	return result, nil
}
