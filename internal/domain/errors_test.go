package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRejectionKinds(t *testing.T) {
	rule := Reject(RuleQuota, "daily quota exceeded: current %d", 90)
	assert.True(t, errors.Is(rule, ErrRejected))
	assert.False(t, errors.Is(rule, ErrNotFound))
	assert.Equal(t, "daily quota exceeded: current 90", rule.Error())

	missing := NotFound("batch", "BATCH_1")
	assert.True(t, errors.Is(missing, ErrRejected))
	assert.True(t, errors.Is(missing, ErrNotFound))
	assert.Equal(t, "batch BATCH_1 not found", missing.Error())

	bad := Malformed("quantity must be positive")
	assert.True(t, errors.Is(bad, ErrMalformed))
	assert.True(t, errors.Is(bad, ErrRejected))
}

func TestAsRejectionThroughWrapping(t *testing.T) {
	err := fmt.Errorf("admission: %w", Reject(RuleSeason, "out of season"))
	r, ok := AsRejection(err)
	assert.True(t, ok)
	assert.Equal(t, RuleSeason, r.Rule)

	_, ok = AsRejection(errors.New("boom"))
	assert.False(t, ok)
}

func TestBatchStatusTransitions(t *testing.T) {
	assert.True(t, BatchCreated.CanTransitionTo(BatchQualityPassed))
	assert.True(t, BatchQualityPassed.CanTransitionTo(BatchQualityFailed))
	assert.True(t, BatchQualityFailed.CanTransitionTo(BatchProcessingUpdated))
	assert.True(t, BatchProcessingUpdated.CanTransitionTo(BatchQualityPassed))
	assert.False(t, BatchQualityPassed.CanTransitionTo(BatchCreated))
	assert.False(t, BatchStatus("UNKNOWN").CanTransitionTo(BatchQualityPassed))

	assert.Equal(t, BatchQualityPassed, QualityStatus(true))
	assert.Equal(t, BatchQualityFailed, QualityStatus(false))
}
