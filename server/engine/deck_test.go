package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckComposition(t *testing.T) {
	bj := blackjackCards()
	require.Len(t, bj, 52)
	seen := make(map[Card]bool, len(bj))
	for _, c := range bj {
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}

	nf := noufiCards()
	require.Len(t, nf, 40)
	for _, c := range nf {
		switch c.Rank {
		case Ace, Jack, Queen, King:
			t.Errorf("noufi deck has no face ranks: %s", c)
		}
	}
}

func TestDeckReshufflesAtThreshold(t *testing.T) {
	d := NewBlackjackDeck(7)
	require.Equal(t, 52, d.Remaining())

	for i := 0; i < 52-blackjackReshuffleAt; i++ {
		d.Draw()
	}
	require.Equal(t, blackjackReshuffleAt, d.Remaining())

	// The next draw sees the pile at the threshold and replaces it first.
	d.Draw()
	assert.Equal(t, 51, d.Remaining())
}

func TestNoufiDeckReshufflesAtThreshold(t *testing.T) {
	d := NewNoufiDeck(11)
	require.Equal(t, 40, d.Remaining())

	for i := 0; i < 40-noufiReshuffleAt; i++ {
		d.Draw()
	}
	require.Equal(t, noufiReshuffleAt, d.Remaining())

	d.Draw()
	assert.Equal(t, 39, d.Remaining())
}

func TestDrawNeverExhausts(t *testing.T) {
	d := NewNoufiDeck(3)
	for i := 0; i < 500; i++ {
		d.Draw()
		assert.Greater(t, d.Remaining(), 0)
	}
}

func TestSeededShuffleIsDeterministic(t *testing.T) {
	a := NewBlackjackDeck(42)
	b := NewBlackjackDeck(42)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Draw(), b.Draw())
	}
}
