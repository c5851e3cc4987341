/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"herbtrace-chaincode/internal/domain"
)

// Tx identifies the transaction a Store belongs to.
type Tx interface {
	TxID() string
	TxTime() (time.Time, error)
}

// Event is a ledger event recorded on commit.
type Event struct {
	Name    string
	Payload []byte
}

type versioned struct {
	value   []byte
	version uint64
}

// MemoryLedger is an in-process world state with Fabric's transaction semantics:
// reads see committed state only (no read-your-writes), writes are buffered until
// Commit, and Commit fails with domain.ErrConflict if any key read by the
// transaction was changed by another commit in the meantime.
type MemoryLedger struct {
	mu     sync.Mutex
	state  map[string]versioned
	seq    uint64
	events []Event
	now    func() time.Time
}

// MemoryOption configures a MemoryLedger.
type MemoryOption func(*MemoryLedger)

// WithClock sets the clock used for transaction timestamps.
func WithClock(now func() time.Time) MemoryOption {
	return func(l *MemoryLedger) {
		l.now = now
	}
}

func NewMemoryLedger(opts ...MemoryOption) *MemoryLedger {
	l := &MemoryLedger{
		state: make(map[string]versioned),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Begin starts a transaction.
func (l *MemoryLedger) Begin() *MemoryTx {
	return &MemoryTx{
		ledger:    l,
		id:        uuid.NewString(),
		timestamp: l.now().UTC(),
		reads:     make(map[string]uint64),
		writes:    make(map[string][]byte),
	}
}

// Update runs fn in a fresh transaction and commits it. An error from fn discards
// every buffered write. It does not retry conflicts.
func (l *MemoryLedger) Update(fn func(tx *MemoryTx) error) error {
	tx := l.Begin()
	if err := fn(tx); err != nil {
		tx.Discard()
		return err
	}
	return tx.Commit()
}

// State returns the committed value of key, or nil.
func (l *MemoryLedger) State(key string) []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	v, ok := l.state[key]
	if !ok {
		return nil
	}
	return cloneBytes(v.value)
}

// Events returns every event committed so far.
func (l *MemoryLedger) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Event(nil), l.events...)
}

// MemoryTx is one transaction against a MemoryLedger.
type MemoryTx struct {
	ledger    *MemoryLedger
	id        string
	timestamp time.Time
	reads     map[string]uint64
	writes    map[string][]byte
	events    []Event
	done      bool
}

func (tx *MemoryTx) TxID() string { return tx.id }

func (tx *MemoryTx) TxTime() (time.Time, error) { return tx.timestamp, nil }

func (tx *MemoryTx) Get(key string) ([]byte, error) {
	if tx.done {
		return nil, fmt.Errorf("transaction %s already finished", tx.id)
	}
	tx.ledger.mu.Lock()
	defer tx.ledger.mu.Unlock()
	v := tx.ledger.state[key]
	tx.recordRead(key, v.version)
	return cloneBytes(v.value), nil
}

func (tx *MemoryTx) Put(key string, value []byte) error {
	if tx.done {
		return fmt.Errorf("transaction %s already finished", tx.id)
	}
	if key == "" {
		return fmt.Errorf("key must not be empty")
	}
	tx.writes[key] = cloneBytes(value)
	return nil
}

func (tx *MemoryTx) Emit(name string, payload []byte) error {
	tx.events = append(tx.events, Event{Name: name, Payload: cloneBytes(payload)})
	return nil
}

// Query scans committed state under the selector's key prefix in key order.
func (tx *MemoryTx) Query(sel Selector) (Iterator, error) {
	prefix, err := sel.Prefix()
	if err != nil {
		return nil, err
	}
	tx.ledger.mu.Lock()
	defer tx.ledger.mu.Unlock()

	start, end := PrefixRange(prefix)
	keys := make([]string, 0)
	for k := range tx.ledger.state {
		if k >= start && k < end {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	records := make([]Record, 0, len(keys))
	for _, k := range keys {
		v := tx.ledger.state[k]
		tx.recordRead(k, v.version)
		if sel.Matches(v.value) {
			records = append(records, Record{Key: k, Value: cloneBytes(v.value)})
		}
	}
	return &sliceIterator{records: records}, nil
}

// Commit validates the read set and applies buffered writes and events.
func (tx *MemoryTx) Commit() error {
	if tx.done {
		return fmt.Errorf("transaction %s already finished", tx.id)
	}
	tx.done = true

	l := tx.ledger
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, version := range tx.reads {
		if l.state[key].version != version {
			return fmt.Errorf("%w: key %s changed since transaction %s read it", domain.ErrConflict, key, tx.id)
		}
	}
	for key, value := range tx.writes {
		l.seq++
		l.state[key] = versioned{value: value, version: l.seq}
	}
	l.events = append(l.events, tx.events...)
	return nil
}

// Discard drops the transaction without applying it.
func (tx *MemoryTx) Discard() {
	tx.done = true
	tx.writes = nil
	tx.events = nil
}

func (tx *MemoryTx) recordRead(key string, version uint64) {
	if _, seen := tx.reads[key]; !seen {
		tx.reads[key] = version
	}
}

type sliceIterator struct {
	records []Record
	pos     int
}

func (s *sliceIterator) HasNext() bool { return s.pos < len(s.records) }

func (s *sliceIterator) Next() (Record, error) {
	if s.pos >= len(s.records) {
		return Record{}, fmt.Errorf("iterator exhausted")
	}
	rec := s.records[s.pos]
	s.pos++
	return rec, nil
}

func (s *sliceIterator) Close() error { return nil }

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
