/*
SPDX-License-Identifier: Apache-2.0
*/

package admission

import (
	"herbtrace-chaincode/internal/conservation"
	"herbtrace-chaincode/internal/domain"
	"herbtrace-chaincode/internal/geofence"
	"herbtrace-chaincode/internal/ids"
	"herbtrace-chaincode/internal/lineage"
	"herbtrace-chaincode/internal/quota"
	"herbtrace-chaincode/internal/season"
)

// RecordCollectionEvent admits a harvest. The checks run in a fixed order and stop
// at the first failure: input validation, protected areas, collection season,
// then the collector's daily quota. On success the event is stored with status
// COLLECTED and the quota counter is raised by its quantity.
func (e *Engine) RecordCollectionEvent(in domain.CollectionEvent) (*domain.CollectionEvent, error) {
	event, err := e.validator.CollectionEvent(in)
	if err != nil {
		return nil, e.fail(KindCollection, err)
	}
	date, err := season.ParseDate(event.CollectionDate)
	if err != nil {
		return nil, e.fail(KindCollection, domain.Malformed("invalid collectionDate: must be a YYYY-MM-DD date"))
	}

	areas, err := e.registry.ProtectedAreas()
	if err != nil {
		return nil, e.fail(KindCollection, err)
	}
	if err := geofence.Validate(areas, event.Location, event.Species); err != nil {
		return nil, e.fail(KindCollection, err)
	}

	limit, err := e.registry.Limit(event.Species)
	if err != nil {
		return nil, e.fail(KindCollection, err)
	}
	if err := season.Validate(conservation.Window(limit), event.Species, date); err != nil {
		return nil, e.fail(KindCollection, err)
	}

	counter, err := e.quotas.Read(event.CollectorID, event.Species, event.CollectionDate)
	if err != nil {
		return nil, e.fail(KindCollection, err)
	}
	if err := quota.Check(counter, event.Quantity, limit); err != nil {
		return nil, e.fail(KindCollection, err)
	}

	event.ID = e.ids.New(ids.PrefixCollection)
	event.Status = domain.EventCollected
	event.BatchID = ""
	event.RecordedAt = e.recordedAt()

	if err := lineage.SaveCollectionEvent(e.store, event); err != nil {
		return nil, e.fail(KindCollection, err)
	}
	if err := e.quotas.Write(quota.Increment(counter, event.Quantity)); err != nil {
		return nil, e.fail(KindCollection, err)
	}

	e.logger.Info("collection event admitted",
		"event_id", event.ID,
		"collector_id", event.CollectorID,
		"species", event.Species,
		"quantity", event.Quantity,
		"daily_total", counter.Total+event.Quantity)
	e.accepted(KindCollection)
	e.metrics.AddCollected(event.Species, event.Quantity)
	event.DocType = domain.DocCollectionEvent
	return &event, nil
}
