/*
SPDX-License-Identifier: Apache-2.0
*/

// Package quota enforces the per-collector, per-species, per-day collection cap.
//
// A counter is read and later written inside the same invocation. The new total is
// computed only from the value read in that invocation, never from a cached one, so
// when two invocations race on the same counter the ledger's read-set validation
// rejects one of them and its caller retries from a fresh read.
package quota

import (
	"herbtrace-chaincode/internal/domain"
	"herbtrace-chaincode/internal/ledger"
)

// Ledger reads and writes daily quota counters.
type Ledger struct {
	store ledger.Store
}

func New(store ledger.Store) *Ledger {
	return &Ledger{store: store}
}

// CounterKey is the ledger key of the counter for (collector, species, date).
func CounterKey(collectorID, species, date string) string {
	return ledger.Key(ledger.PrefixQuota, collectorID, species, date)
}

// Read returns the counter for (collector, species, date), or a zero counter when
// nothing was collected yet that day.
func (l *Ledger) Read(collectorID, species, date string) (domain.DailyQuotaCounter, error) {
	counter := domain.DailyQuotaCounter{
		DocType:     domain.DocQuotaCounter,
		CollectorID: collectorID,
		Species:     species,
		Date:        date,
	}
	if _, err := ledger.GetJSON(l.store, CounterKey(collectorID, species, date), &counter); err != nil {
		return domain.DailyQuotaCounter{}, err
	}
	return counter, nil
}

// Write stores counter under its key.
func (l *Ledger) Write(counter domain.DailyQuotaCounter) error {
	return ledger.PutJSON(l.store, CounterKey(counter.CollectorID, counter.Species, counter.Date), counter)
}

// Check rejects proposed when it would take counter past limit.DailyLimit.
// Only a limit marked Uncapped skips the check.
func Check(counter domain.DailyQuotaCounter, proposed float64, limit domain.ConservationLimit) error {
	if limit.Uncapped {
		return nil
	}
	if counter.Total+proposed > limit.DailyLimit {
		return domain.Reject(domain.RuleQuota,
			"daily quota exceeded for %s by collector %s on %s: current %g, requested %g, daily limit %g",
			counter.Species, counter.CollectorID, counter.Date, counter.Total, proposed, limit.DailyLimit)
	}
	return nil
}

// Increment returns counter with accepted added to its total.
func Increment(counter domain.DailyQuotaCounter, accepted float64) domain.DailyQuotaCounter {
	counter.Total += accepted
	return counter
}
