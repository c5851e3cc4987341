/*
SPDX-License-Identifier: Apache-2.0
*/

// Package ledger is the world-state contract the provenance engine runs against,
// with a Fabric stub adapter and an in-memory ledger that validates read sets the
// way Fabric's MVCC check does.
package ledger

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Store is the per-invocation view of the ledger. Every call made through one
// Store belongs to the same transaction and commits atomically or not at all.
type Store interface {
	// Get returns nil, nil when key is absent.
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Query(sel Selector) (Iterator, error)
}

// EventSink receives ledger events emitted on commit.
type EventSink interface {
	Emit(name string, payload []byte) error
}

// Iterator walks query results. Callers must Close it.
type Iterator interface {
	HasNext() bool
	Next() (Record, error)
	Close() error
}

// Record is one key/value pair returned by a query.
type Record struct {
	Key   string
	Value []byte
}

// Key prefixes, one per document type.
const (
	PrefixCollection = "COLLECTION_"
	PrefixQuality    = "QUALITY_"
	PrefixProcessing = "PROCESSING_"
	PrefixBatch      = "BATCH_"
	PrefixToken      = "TOKEN_"
	PrefixQuota      = "QUOTA_"
	PrefixLimit      = "LIMIT_"
	PrefixArea       = "AREA_"
	PrefixProfile    = "PROFILE_"
)

// PrefixRange returns the [start, end) key range holding every key that begins
// with prefix. The end bound appends U+10FFFF, the same bound Fabric uses for
// partial composite key scans, so it sorts after any key whose next character is
// a valid code point below it. Key parts must not contain U+10FFFF; see
// ValidKeyPart.
func PrefixRange(prefix string) (start, end string) {
	return prefix, prefix + string(utf8.MaxRune)
}

// ValidKeyPart reports whether part can be used inside a key and still be
// reached by a prefix scan: valid UTF-8 without U+0000 or U+10FFFF.
func ValidKeyPart(part string) bool {
	if !utf8.ValidString(part) {
		return false
	}
	return !strings.ContainsRune(part, 0) && !strings.ContainsRune(part, utf8.MaxRune)
}

// Key joins a prefix and id parts. Parts are separated with "|" so identifiers
// that contain underscores stay unambiguous.
func Key(prefix string, parts ...string) string {
	return prefix + strings.Join(parts, "|")
}

// GetJSON reads key into v. It reports false when the key is absent.
func GetJSON(s Store, key string, v any) (bool, error) {
	raw, err := s.Get(key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

// PutJSON marshals v and writes it under key.
func PutJSON(s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.Put(key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Collect runs sel and decodes every record into a T. Records that match the
// selector but fail to decode are returned as an error.
func Collect[T any](s Store, sel Selector) ([]T, error) {
	iter, err := s.Query(sel)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", sel.DocType, err)
	}
	defer iter.Close()

	out := []T{}
	for iter.HasNext() {
		rec, err := iter.Next()
		if err != nil {
			return nil, fmt.Errorf("failed during results iteration: %w", err)
		}
		var v T
		if err := json.Unmarshal(rec.Value, &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", rec.Key, err)
		}
		out = append(out, v)
	}
	return out, nil
}
