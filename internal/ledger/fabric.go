/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	"fmt"
	"time"

	"github.com/hyperledger/fabric-chaincode-go/shim"
)

// FabricStore adapts a chaincode stub to Store and EventSink. Fabric buffers the
// writes of a transaction and validates its read set at commit, so a concurrent
// writer to the same key invalidates this transaction with an MVCC conflict.
type FabricStore struct {
	stub        shim.ChaincodeStubInterface
	richQueries bool
}

// FabricOption configures a FabricStore.
type FabricOption func(*FabricStore)

// WithRichQueries routes Query through CouchDB selectors instead of key-range scans.
func WithRichQueries(enabled bool) FabricOption {
	return func(s *FabricStore) {
		s.richQueries = enabled
	}
}

func NewFabricStore(stub shim.ChaincodeStubInterface, opts ...FabricOption) *FabricStore {
	s := &FabricStore{stub: stub}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FabricStore) Get(key string) ([]byte, error) {
	return s.stub.GetState(key)
}

func (s *FabricStore) Put(key string, value []byte) error {
	return s.stub.PutState(key, value)
}

func (s *FabricStore) Emit(name string, payload []byte) error {
	return s.stub.SetEvent(name, payload)
}

// Query uses a CouchDB rich query when enabled, otherwise it scans the document
// type's key range and filters with the selector, which works on LevelDB peers.
func (s *FabricStore) Query(sel Selector) (Iterator, error) {
	if s.richQueries {
		query, err := sel.CouchQuery()
		if err != nil {
			return nil, err
		}
		it, err := s.stub.GetQueryResult(query)
		if err != nil {
			return nil, fmt.Errorf("failed to run rich query: %w", err)
		}
		return &fabricIterator{it: it}, nil
	}

	prefix, err := sel.Prefix()
	if err != nil {
		return nil, err
	}
	start, end := PrefixRange(prefix)
	it, err := s.stub.GetStateByRange(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s by range: %w", sel.DocType, err)
	}
	return newFilterIterator(&fabricIterator{it: it}, sel), nil
}

// TxID returns the id of the transaction being simulated.
func (s *FabricStore) TxID() string {
	return s.stub.GetTxID()
}

// TxTime returns the client-supplied transaction timestamp, which is identical on
// every endorsing peer, unlike the local clock.
func (s *FabricStore) TxTime() (time.Time, error) {
	ts, err := s.stub.GetTxTimestamp()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read transaction timestamp: %w", err)
	}
	return ts.AsTime().UTC(), nil
}

type fabricIterator struct {
	it shim.StateQueryIteratorInterface
}

func (f *fabricIterator) HasNext() bool { return f.it.HasNext() }

func (f *fabricIterator) Next() (Record, error) {
	kv, err := f.it.Next()
	if err != nil {
		return Record{}, err
	}
	return Record{Key: kv.Key, Value: kv.Value}, nil
}

func (f *fabricIterator) Close() error { return f.it.Close() }

// filterIterator drops records the selector rejects. It looks one record ahead so
// HasNext stays accurate.
type filterIterator struct {
	inner   Iterator
	sel     Selector
	next    *Record
	pending error
}

func newFilterIterator(inner Iterator, sel Selector) *filterIterator {
	f := &filterIterator{inner: inner, sel: sel}
	f.advance()
	return f
}

func (f *filterIterator) advance() {
	f.next = nil
	for f.inner.HasNext() {
		rec, err := f.inner.Next()
		if err != nil {
			f.pending = err
			return
		}
		if f.sel.Matches(rec.Value) {
			f.next = &rec
			return
		}
	}
}

func (f *filterIterator) HasNext() bool { return f.next != nil || f.pending != nil }

func (f *filterIterator) Next() (Record, error) {
	if f.pending != nil {
		err := f.pending
		f.pending = nil
		return Record{}, err
	}
	if f.next == nil {
		return Record{}, fmt.Errorf("iterator exhausted")
	}
	rec := *f.next
	f.advance()
	return rec, nil
}

func (f *filterIterator) Close() error { return f.inner.Close() }
