package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlackjackValue(t *testing.T) {
	tests := []struct {
		name  string
		ranks []Rank
		want  int
	}{
		{"empty", nil, 0},
		{"face cards", []Rank{"K", "Q"}, 20},
		{"natural", []Rank{"A", "K"}, 21},
		{"soft seventeen", []Rank{"A", "6"}, 17},
		{"ace demoted", []Rank{"A", "7", "9"}, 17},
		{"two aces stay soft", []Rank{"A", "A", "9"}, 21},
		{"three aces", []Rank{"A", "A", "A"}, 13},
		{"all aces demoted", []Rank{"A", "A", "K", "Q"}, 22},
		{"plain bust", []Rank{"K", "Q", "5"}, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BlackjackValue(cards(tt.ranks...)))
		})
	}
}

func TestNoufiValue(t *testing.T) {
	tests := []struct {
		name  string
		ranks []Rank
		want  int
	}{
		{"zero ranks", []Rank{"8", "9", "10"}, 0},
		{"wraps mod ten", []Rank{"5", "5"}, 0},
		{"eleven scores one", []Rank{"5", "6"}, 1},
		{"mixed", []Rank{"3", "8", "10"}, 3},
		{"best hand", []Rank{"4", "5"}, 9},
		{"one plus zero", []Rank{"1", "8"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NoufiValue(cards(tt.ranks...)))
		})
	}
}

func TestIsBlackjack(t *testing.T) {
	assert.True(t, IsBlackjack(cards("A", "K")))
	assert.True(t, IsBlackjack(cards("10", "A")))
	assert.False(t, IsBlackjack(cards("K", "5", "6")), "21 in three cards is not a natural")
	assert.False(t, IsBlackjack(cards("K", "Q")))
}

func TestIsHchich(t *testing.T) {
	assert.True(t, IsHchich(cards("8", "9", "10")))
	assert.True(t, IsHchich(cards("10", "10", "8")))
	assert.False(t, IsHchich(cards("8", "9", "2")))
	assert.False(t, IsHchich(nil))
}

func TestNormalRank(t *testing.T) {
	for _, r := range []Rank{"J", "Q", "K"} {
		assert.Equal(t, Rank("10"), normalRank(r))
	}
	assert.Equal(t, Rank("A"), normalRank("A"))
	assert.Equal(t, Rank("7"), normalRank("7"))
}
