/*
SPDX-License-Identifier: Apache-2.0
*/

package admission

import (
	"herbtrace-chaincode/internal/domain"
	"herbtrace-chaincode/internal/ids"
	"herbtrace-chaincode/internal/lineage"
	"herbtrace-chaincode/internal/quality"
)

// RecordQualityTest evaluates a laboratory submission against the species'
// quality profile, stores it whatever the outcome, and links it to its batch. The
// batch status follows the latest test.
func (e *Engine) RecordQualityTest(in domain.QualityTest) (*domain.QualityTest, error) {
	test, err := e.validator.QualityTest(in)
	if err != nil {
		return nil, e.fail(KindQuality, err)
	}
	batch, err := e.lineage.GetBatch(test.BatchID)
	if err != nil {
		return nil, e.fail(KindQuality, err)
	}
	profile, err := e.registry.Profile(test.Species)
	if err != nil {
		return nil, e.fail(KindQuality, err)
	}

	test = quality.Apply(test, profile)
	test.ID = e.ids.New(ids.PrefixQuality)
	test.RecordedAt = e.recordedAt()
	test.DocType = domain.DocQualityTest

	if test.Species != batch.Species {
		e.logger.Warn("quality test species differs from batch",
			"test_species", test.Species, "batch_id", batch.ID, "batch_species", batch.Species)
	}

	if err := lineage.SaveQualityTest(e.store, test); err != nil {
		return nil, e.fail(KindQuality, err)
	}
	if err := e.lineage.LinkQualityTest(batch, test); err != nil {
		return nil, e.fail(KindQuality, err)
	}

	e.logger.Info("quality test recorded",
		"test_id", test.ID,
		"batch_id", batch.ID,
		"overall_passed", test.OverallPassed,
		"certification_level", test.CertificationLevel)
	e.accepted(KindQuality)
	e.metrics.IncrementQuality(test.OverallPassed)
	return &test, nil
}
