/*
SPDX-License-Identifier: Apache-2.0
*/

package lineage

import (
	"herbtrace-chaincode/internal/domain"
	"herbtrace-chaincode/internal/ledger"
)

func batchKey(id string) string    { return ledger.Key(ledger.PrefixBatch, id) }
func eventKey(id string) string    { return ledger.Key(ledger.PrefixCollection, id) }
func testKey(id string) string     { return ledger.Key(ledger.PrefixQuality, id) }
func stepKey(id string) string     { return ledger.Key(ledger.PrefixProcessing, id) }
func tokenKey(token string) string { return ledger.Key(ledger.PrefixToken, token) }

// LoadBatch reads a batch. found is false when it does not exist.
func LoadBatch(s ledger.Store, id string) (batch domain.ProductBatch, found bool, err error) {
	found, err = ledger.GetJSON(s, batchKey(id), &batch)
	return batch, found, err
}

func LoadCollectionEvent(s ledger.Store, id string) (event domain.CollectionEvent, found bool, err error) {
	found, err = ledger.GetJSON(s, eventKey(id), &event)
	return event, found, err
}

func LoadQualityTest(s ledger.Store, id string) (test domain.QualityTest, found bool, err error) {
	found, err = ledger.GetJSON(s, testKey(id), &test)
	return test, found, err
}

func LoadProcessingStep(s ledger.Store, id string) (step domain.ProcessingStep, found bool, err error) {
	found, err = ledger.GetJSON(s, stepKey(id), &step)
	return step, found, err
}

func SaveBatch(s ledger.Store, batch domain.ProductBatch) error {
	batch.DocType = domain.DocProductBatch
	return ledger.PutJSON(s, batchKey(batch.ID), batch)
}

func SaveCollectionEvent(s ledger.Store, event domain.CollectionEvent) error {
	event.DocType = domain.DocCollectionEvent
	return ledger.PutJSON(s, eventKey(event.ID), event)
}

func SaveQualityTest(s ledger.Store, test domain.QualityTest) error {
	test.DocType = domain.DocQualityTest
	return ledger.PutJSON(s, testKey(test.ID), test)
}

func SaveProcessingStep(s ledger.Store, step domain.ProcessingStep) error {
	step.DocType = domain.DocProcessingStep
	return ledger.PutJSON(s, stepKey(step.ID), step)
}

// appendUnique appends id unless list already holds it. It reports whether list changed.
func appendUnique(list []string, id string) ([]string, bool) {
	for _, existing := range list {
		if existing == id {
			return list, false
		}
	}
	return append(list, id), true
}
