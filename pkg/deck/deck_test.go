package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	cards := New()
	assert.Equal(t, 52, len(cards))

	seen := make(map[string]bool)
	for _, card := range cards {
		assert.False(t, seen[card.ID], "duplicate card id: %s", card.ID)
		seen[card.ID] = true
	}
	assert.Equal(t, 52, len(seen))
}

func TestDeterministicShuffle(t *testing.T) {
	a := DeterministicShuffle(New(), 12345)
	b := DeterministicShuffle(New(), 12345)
	assert.Equal(t, a, b)

	c := DeterministicShuffle(New(), 54321)
	assert.NotEqual(t, a, c)

	// still a full deck
	assert.Equal(t, 52, len(a))
	seen := make(map[string]bool)
	for _, card := range a {
		seen[card.ID] = true
	}
	assert.Equal(t, 52, len(seen))
}

func TestDeterministicShuffle_doesNotModifyInput(t *testing.T) {
	original := New()
	DeterministicShuffle(original, 12345)
	assert.Equal(t, New(), original)
}
