/*
SPDX-License-Identifier: Apache-2.0
*/

package domain

import (
	"errors"
	"fmt"
)

// Error message constants shared by errors and tests.
const (
	ErrMsgRejected  = "rejected"
	ErrMsgNotFound  = "not found"
	ErrMsgMalformed = "malformed input"
	ErrMsgConflict  = "write conflict"
)

// Error kinds. Every *Rejection matches ErrRejected via errors.Is, and
// not-found or malformed rejections additionally match their own kind.
// ErrConflict is transient: the caller may retry the whole invocation.
var (
	ErrRejected  = errors.New(ErrMsgRejected)
	ErrNotFound  = errors.New(ErrMsgNotFound)
	ErrMalformed = errors.New(ErrMsgMalformed)
	ErrConflict  = errors.New(ErrMsgConflict)
)

// Rule names reported on rejections.
const (
	RuleGeofence = "geofence"
	RuleSeason   = "season"
	RuleQuota    = "quota"
	RuleLineage  = "lineage"
	RuleInput    = "input"
	RuleExists   = "exists"
)

// Rejection is a business-rule failure. Its message is the human-readable reason.
type Rejection struct {
	Rule   string
	Reason string
	Kind   error
}

func (r *Rejection) Error() string { return r.Reason }

func (r *Rejection) Unwrap() []error {
	if r.Kind == nil || r.Kind == ErrRejected {
		return []error{ErrRejected}
	}
	return []error{ErrRejected, r.Kind}
}

// Reject builds a rule rejection with a formatted reason.
func Reject(rule, format string, args ...any) *Rejection {
	return &Rejection{Rule: rule, Reason: fmt.Sprintf(format, args...), Kind: ErrRejected}
}

// NotFound reports a missing record, e.g. "batch BATCH_1 not found".
func NotFound(entity, id string) *Rejection {
	return &Rejection{Rule: RuleExists, Reason: fmt.Sprintf("%s %s not found", entity, id), Kind: ErrNotFound}
}

// Malformed reports input that failed boundary validation.
func Malformed(format string, args ...any) *Rejection {
	return &Rejection{Rule: RuleInput, Reason: fmt.Sprintf(format, args...), Kind: ErrMalformed}
}

// AsRejection returns the rejection wrapped in err, if any.
func AsRejection(err error) (*Rejection, bool) {
	var r *Rejection
	if errors.As(err, &r) {
		return r, true
	}
	return nil, false
}
