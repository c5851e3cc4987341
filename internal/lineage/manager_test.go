package lineage

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herbtrace-chaincode/internal/domain"
	"herbtrace-chaincode/internal/ids"
	"herbtrace-chaincode/internal/ledger"
)

func clock() time.Time { return time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC) }

// inTx runs fn against a manager bound to a fresh transaction and commits it.
func inTx(t *testing.T, l *ledger.MemoryLedger, fn func(m *Manager) error) error {
	t.Helper()
	return l.Update(func(tx *ledger.MemoryTx) error {
		return fn(NewManager(tx, ids.NewRandomGenerator(clock), WithEventSink(tx)))
	})
}

func createBatch(t *testing.T, l *ledger.MemoryLedger) domain.ProductBatch {
	t.Helper()
	var created *domain.ProductBatch
	require.NoError(t, inTx(t, l, func(m *Manager) error {
		var err error
		created, err = m.CreateBatch(domain.ProductBatch{
			ProductName:    "Ashwagandha Root Powder",
			Species:        "ASHWAGANDHA",
			ManufacturerID: "MFG_1",
			CreationDate:   "2025-01-15",
			Quantity:       50,
			Status:         domain.BatchQualityPassed,
		})
		return err
	}))
	return *created
}

func storeEvent(t *testing.T, l *ledger.MemoryLedger, id string) {
	t.Helper()
	require.NoError(t, l.Update(func(tx *ledger.MemoryTx) error {
		return SaveCollectionEvent(tx, domain.CollectionEvent{ID: id, Species: "ASHWAGANDHA", Quantity: 10, Status: domain.EventCollected})
	}))
}

func TestCreateBatch(t *testing.T) {
	l := ledger.NewMemoryLedger()
	b := createBatch(t, l)

	assert.Regexp(t, `^BATCH_\d+_[0-9a-f]{8}$`, b.ID)
	assert.Regexp(t, `^[0-9A-F]{16}$`, b.VerificationToken)
	assert.Equal(t, domain.BatchCreated, b.Status, "client-supplied status is ignored")
	assert.Empty(t, b.SourceCollectionEvents)
	assert.NotNil(t, b.SourceCollectionEvents)
	assert.NotNil(t, b.ProcessingSteps)
	assert.NotNil(t, b.QualityTests)

	got, err := NewManager(l.Begin(), nil).GetBatchByToken(b.VerificationToken)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}

func TestGetBatchNotFound(t *testing.T) {
	_, err := NewManager(ledger.NewMemoryLedger().Begin(), nil).GetBatch("BATCH_missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "batch BATCH_missing not found", err.Error())

	_, err = NewManager(ledger.NewMemoryLedger().Begin(), nil).GetBatchByToken("NOPE")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLinkCollectionEventIsIdempotent(t *testing.T) {
	l := ledger.NewMemoryLedger()
	b := createBatch(t, l)
	storeEvent(t, l, "COL_1")

	for i := 0; i < 2; i++ {
		require.NoError(t, inTx(t, l, func(m *Manager) error {
			_, err := m.LinkCollectionEvent("COL_1", b.ID)
			return err
		}))
	}

	batch, _, err := LoadBatch(l.Begin(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"COL_1"}, batch.SourceCollectionEvents)

	event, _, err := LoadCollectionEvent(l.Begin(), "COL_1")
	require.NoError(t, err)
	assert.Equal(t, domain.EventAssignedToBatch, event.Status)
	assert.Equal(t, b.ID, event.BatchID)
}

func TestLinkCollectionEventMissingRecords(t *testing.T) {
	l := ledger.NewMemoryLedger()
	b := createBatch(t, l)
	storeEvent(t, l, "COL_1")

	err := inTx(t, l, func(m *Manager) error {
		_, err := m.LinkCollectionEvent("COL_missing", b.ID)
		return err
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "collection event COL_missing not found")

	err = inTx(t, l, func(m *Manager) error {
		_, err := m.LinkCollectionEvent("COL_1", "BATCH_missing")
		return err
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	event, _, err := LoadCollectionEvent(l.Begin(), "COL_1")
	require.NoError(t, err)
	assert.Equal(t, domain.EventCollected, event.Status)
}

func TestLinkCollectionEventToSecondBatchRejected(t *testing.T) {
	l := ledger.NewMemoryLedger()
	first := createBatch(t, l)
	second := createBatch(t, l)
	storeEvent(t, l, "COL_1")

	require.NoError(t, inTx(t, l, func(m *Manager) error {
		_, err := m.LinkCollectionEvent("COL_1", first.ID)
		return err
	}))
	err := inTx(t, l, func(m *Manager) error {
		_, err := m.LinkCollectionEvent("COL_1", second.ID)
		return err
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRejected))
	assert.Contains(t, err.Error(), first.ID)

	batch, _, err := LoadBatch(l.Begin(), second.ID)
	require.NoError(t, err)
	assert.Empty(t, batch.SourceCollectionEvents)
}

func TestLinkQualityTestLatestWins(t *testing.T) {
	l := ledger.NewMemoryLedger()
	b := createBatch(t, l)

	link := func(testID string, passed bool) {
		require.NoError(t, inTx(t, l, func(m *Manager) error {
			batch, err := m.GetBatch(b.ID)
			if err != nil {
				return err
			}
			return m.LinkQualityTest(batch, domain.QualityTest{ID: testID, OverallPassed: passed})
		}))
	}
	link("QT_1", true)
	link("QT_2", false)

	batch, _, err := LoadBatch(l.Begin(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BatchQualityFailed, batch.Status)
	assert.Equal(t, []string{"QT_1", "QT_2"}, batch.QualityTests)

	events := l.Events()
	require.Len(t, events, 2)
	var last QualityEvaluated
	require.NoError(t, json.Unmarshal(events[1].Payload, &last))
	assert.Equal(t, EventQualityEvaluated, events[1].Name)
	assert.Equal(t, domain.BatchQualityPassed, last.PreviousStatus)
	assert.Equal(t, domain.BatchQualityFailed, last.Status)
}

func TestLinkProcessingStep(t *testing.T) {
	l := ledger.NewMemoryLedger()
	b := createBatch(t, l)

	require.NoError(t, inTx(t, l, func(m *Manager) error {
		batch, err := m.GetBatch(b.ID)
		if err != nil {
			return err
		}
		return m.LinkProcessingStep(batch, "PROC_1")
	}))

	batch, _, err := LoadBatch(l.Begin(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BatchProcessingUpdated, batch.Status)
	assert.Equal(t, []string{"PROC_1"}, batch.ProcessingSteps)
}

func TestLinkRejectsCorruptStatus(t *testing.T) {
	m := NewManager(ledger.NewMemoryLedger().Begin(), nil)
	batch := &domain.ProductBatch{ID: "BATCH_1", Status: "ARCHIVED"}
	err := m.LinkProcessingStep(batch, "PROC_1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRejected))
}
