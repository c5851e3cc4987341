/*
SPDX-License-Identifier: Apache-2.0
*/

package admission

import (
	"strings"

	"herbtrace-chaincode/internal/domain"
	"herbtrace-chaincode/internal/ledger"
	"herbtrace-chaincode/internal/lineage"
	"herbtrace-chaincode/internal/validation"
)

func (e *Engine) GetCollectionEvent(id string) (*domain.CollectionEvent, error) {
	event, found, err := lineage.LoadCollectionEvent(e.store, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFound("collection event", id)
	}
	return &event, nil
}

func (e *Engine) GetQualityTest(id string) (*domain.QualityTest, error) {
	test, found, err := lineage.LoadQualityTest(e.store, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFound("quality test", id)
	}
	return &test, nil
}

func (e *Engine) GetProcessingStep(id string) (*domain.ProcessingStep, error) {
	step, found, err := lineage.LoadProcessingStep(e.store, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.NotFound("processing step", id)
	}
	return &step, nil
}

// ListCollectionEvents returns events filtered by species and an inclusive
// collection date range. Empty filters match everything.
func (e *Engine) ListCollectionEvents(species, fromDate, toDate string) ([]domain.CollectionEvent, error) {
	if err := dateRange(fromDate, toDate); err != nil {
		return nil, err
	}
	return ledger.Collect[domain.CollectionEvent](e.store, ledger.Selector{
		DocType:   domain.DocCollectionEvent,
		Equals:    map[string]string{"species": validation.NormalizeSpecies(species)},
		DateField: "collectionDate",
		From:      fromDate,
		To:        toDate,
	})
}

// ListQualityTests returns tests filtered by species, lab and an inclusive test
// date range. Empty filters match everything.
func (e *Engine) ListQualityTests(species, labID, fromDate, toDate string) ([]domain.QualityTest, error) {
	if err := dateRange(fromDate, toDate); err != nil {
		return nil, err
	}
	return ledger.Collect[domain.QualityTest](e.store, ledger.Selector{
		DocType:   domain.DocQualityTest,
		Equals:    map[string]string{"species": validation.NormalizeSpecies(species), "labId": labID},
		DateField: "testDate",
		From:      fromDate,
		To:        toDate,
	})
}

// GetDailyQuota returns how much collectorID has collected of species on date.
func (e *Engine) GetDailyQuota(collectorID, species, date string) (*domain.DailyQuotaCounter, error) {
	collectorID = strings.TrimSpace(collectorID)
	date = strings.TrimSpace(date)
	if collectorID == "" || species == "" {
		return nil, domain.Malformed("collectorId and species are required")
	}
	if date == "" {
		return nil, domain.Malformed("invalid date: this field is required")
	}
	if err := validation.Date("date", date); err != nil {
		return nil, err
	}
	counter, err := e.quotas.Read(collectorID, validation.NormalizeSpecies(species), date)
	if err != nil {
		return nil, err
	}
	return &counter, nil
}

func dateRange(fromDate, toDate string) error {
	if err := validation.Date("fromDate", fromDate); err != nil {
		return err
	}
	if err := validation.Date("toDate", toDate); err != nil {
		return err
	}
	if fromDate != "" && toDate != "" && fromDate > toDate {
		return domain.Malformed("invalid date range: fromDate %s is after toDate %s", fromDate, toDate)
	}
	return nil
}
