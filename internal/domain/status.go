/*
SPDX-License-Identifier: Apache-2.0
*/

package domain

// EventStatus is the lifecycle state of a collection event.
type EventStatus string

const (
	EventCollected       EventStatus = "COLLECTED"
	EventAssignedToBatch EventStatus = "ASSIGNED_TO_BATCH"
)

// BatchStatus is the lifecycle state of a product batch.
type BatchStatus string

const (
	BatchCreated           BatchStatus = "CREATED"
	BatchQualityPassed     BatchStatus = "QUALITY_PASSED"
	BatchQualityFailed     BatchStatus = "QUALITY_FAILED"
	BatchProcessingUpdated BatchStatus = "PROCESSING_UPDATED"
)

// CertificationFailed replaces the submitted certification level of a failed test.
const CertificationFailed = "FAILED"

// CanTransitionTo reports whether a batch in status s may move to next.
// CREATED is only ever the initial status. Quality results may flip between
// passed and failed at any point after creation, including after processing.
func (s BatchStatus) CanTransitionTo(next BatchStatus) bool {
	switch next {
	case BatchQualityPassed, BatchQualityFailed, BatchProcessingUpdated:
		return s.Valid()
	default:
		return false
	}
}

// Valid reports whether s is a known batch status.
func (s BatchStatus) Valid() bool {
	switch s {
	case BatchCreated, BatchQualityPassed, BatchQualityFailed, BatchProcessingUpdated:
		return true
	}
	return false
}

// QualityStatus maps an overall quality result onto the batch status it produces.
func QualityStatus(passed bool) BatchStatus {
	if passed {
		return BatchQualityPassed
	}
	return BatchQualityFailed
}
