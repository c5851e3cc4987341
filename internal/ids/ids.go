/*
SPDX-License-Identifier: Apache-2.0
*/

// Package ids generates record identifiers and batch verification tokens.
package ids

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Identifier prefixes.
const (
	PrefixCollection = "COL"
	PrefixQuality    = "QT"
	PrefixProcessing = "PROC"
	PrefixBatch      = "BATCH"
)

// TokenLength is the length of a verification token, sized for compact QR codes.
const TokenLength = 16

const suffixLength = 8

// namespace scopes name-based UUIDs derived from transaction ids.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:herbtrace:ids"))

// Generator produces identifiers of the form PREFIX_<unix-millis>_<suffix>.
//
// A generator bound to a transaction derives its suffixes from the transaction id
// and a sequence number, so every endorsing peer computes the same identifiers for
// the same proposal. An unbound generator uses random UUIDs.
type Generator struct {
	now  func() time.Time
	salt string

	mu  sync.Mutex
	seq int
}

// NewTxGenerator returns a deterministic generator for one transaction.
func NewTxGenerator(txID string, txTime time.Time) *Generator {
	return &Generator{
		now:  func() time.Time { return txTime },
		salt: txID,
	}
}

// NewRandomGenerator returns a generator using the given clock and random suffixes.
func NewRandomGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

// New returns a fresh identifier with the given prefix.
func (g *Generator) New(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, g.now().UnixMilli(), g.suffix())
}

// Token derives a batch verification token: a one-way hash over the batch id,
// the timestamp and a salt, truncated and upper-cased.
func (g *Generator) Token(batchID string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%s", batchID, g.now().UnixNano(), g.entropy())))
	return strings.ToUpper(hex.EncodeToString(sum[:]))[:TokenLength]
}

// Now returns the generator's notion of the current time.
func (g *Generator) Now() time.Time {
	return g.now()
}

func (g *Generator) suffix() string {
	return strings.ReplaceAll(g.entropy(), "-", "")[:suffixLength]
}

func (g *Generator) entropy() string {
	if g.salt == "" {
		return uuid.NewString()
	}
	g.mu.Lock()
	g.seq++
	n := g.seq
	g.mu.Unlock()
	return uuid.NewSHA1(namespace, []byte(fmt.Sprintf("%s/%d", g.salt, n))).String()
}
