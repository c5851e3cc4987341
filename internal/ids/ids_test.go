package ids

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	idPattern    = regexp.MustCompile(`^COL_1735689600000_[0-9a-f]{8}$`)
	tokenPattern = regexp.MustCompile(`^[0-9A-F]{16}$`)
)

func fixedClock() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

func TestNewIdentifierFormat(t *testing.T) {
	g := NewRandomGenerator(fixedClock)
	id := g.New(PrefixCollection)
	assert.Regexp(t, idPattern, id)
}

func TestRandomGeneratorIsCollisionResistant(t *testing.T) {
	g := NewRandomGenerator(fixedClock)
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := g.New(PrefixCollection)
		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestTxGeneratorIsDeterministicPerTransaction(t *testing.T) {
	a := NewTxGenerator("tx-1", fixedClock())
	b := NewTxGenerator("tx-1", fixedClock())
	assert.Equal(t, a.New(PrefixBatch), b.New(PrefixBatch))
	assert.Equal(t, a.Token("BATCH_1"), b.Token("BATCH_1"))

	first := NewTxGenerator("tx-2", fixedClock())
	assert.NotEqual(t, first.New(PrefixBatch), first.New(PrefixBatch), "sequence advances within a transaction")

	other := NewTxGenerator("tx-3", fixedClock())
	assert.NotEqual(t, NewTxGenerator("tx-2", fixedClock()).New(PrefixBatch), other.New(PrefixBatch))
}

func TestTokenFormat(t *testing.T) {
	g := NewRandomGenerator(fixedClock)
	token := g.Token("BATCH_1735689600000_abcd1234")
	assert.Len(t, token, TokenLength)
	assert.Regexp(t, tokenPattern, token)
	assert.NotEqual(t, token, g.Token("BATCH_1735689600000_abcd1234"), "random salt differs per call")
}
