/*
SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	"encoding/json"
	"fmt"

	"herbtrace-chaincode/internal/domain"
)

var docPrefixes = map[string]string{
	domain.DocCollectionEvent:   PrefixCollection,
	domain.DocQualityTest:       PrefixQuality,
	domain.DocProcessingStep:    PrefixProcessing,
	domain.DocProductBatch:      PrefixBatch,
	domain.DocTokenIndex:        PrefixToken,
	domain.DocQuotaCounter:      PrefixQuota,
	domain.DocConservationLimit: PrefixLimit,
	domain.DocProtectedArea:     PrefixArea,
	domain.DocQualityProfile:    PrefixProfile,
}

// Selector is a structural predicate over stored JSON documents: a document type,
// exact matches on top-level string fields, and an optional inclusive range on a
// date field. Empty Equals values and empty bounds are ignored.
type Selector struct {
	DocType   string
	Equals    map[string]string
	DateField string
	From      string
	To        string
}

// Prefix returns the key prefix holding sel's document type.
func (sel Selector) Prefix() (string, error) {
	prefix, ok := docPrefixes[sel.DocType]
	if !ok {
		return "", fmt.Errorf("unknown document type %q", sel.DocType)
	}
	return prefix, nil
}

// Matches reports whether the JSON document doc satisfies sel.
func (sel Selector) Matches(doc []byte) bool {
	var fields map[string]any
	if err := json.Unmarshal(doc, &fields); err != nil {
		return false
	}
	if fields["docType"] != sel.DocType {
		return false
	}
	for name, want := range sel.Equals {
		if want == "" {
			continue
		}
		got, ok := fields[name].(string)
		if !ok || got != want {
			return false
		}
	}
	if sel.DateField == "" || (sel.From == "" && sel.To == "") {
		return true
	}
	date, ok := fields[sel.DateField].(string)
	if !ok {
		return false
	}
	// ISO dates order lexically.
	if sel.From != "" && date < sel.From {
		return false
	}
	if sel.To != "" && date > sel.To {
		return false
	}
	return true
}

// CouchQuery renders sel as a CouchDB Mango query for rich-query peers.
func (sel Selector) CouchQuery() (string, error) {
	clause := map[string]any{"docType": sel.DocType}
	for name, want := range sel.Equals {
		if want != "" {
			clause[name] = want
		}
	}
	if sel.DateField != "" {
		bounds := map[string]string{}
		if sel.From != "" {
			bounds["$gte"] = sel.From
		}
		if sel.To != "" {
			bounds["$lte"] = sel.To
		}
		if len(bounds) > 0 {
			clause[sel.DateField] = bounds
		}
	}
	raw, err := json.Marshal(map[string]any{"selector": clause})
	if err != nil {
		return "", fmt.Errorf("failed to marshal selector: %w", err)
	}
	return string(raw), nil
}
