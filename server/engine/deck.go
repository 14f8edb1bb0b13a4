package engine

import (
	"math/rand"
	"time"
)

// Reshuffle thresholds: a fresh full deck replaces the current one whenever
// the remaining count is at or below the threshold before a draw, so a draw
// can never come up empty mid-round.
const (
	blackjackReshuffleAt = 15
	noufiReshuffleAt     = 10
)

// Deck is an ordered, shuffled pile owned by exactly one round.
type Deck struct {
	cards     []Card
	threshold int
	build     func() []Card
	rng       *rand.Rand
}

func newDeck(build func() []Card, threshold int, seed int64) *Deck {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	d := &Deck{
		threshold: threshold,
		build:     build,
		rng:       rand.New(rand.NewSource(seed)),
	}
	d.cards = d.shuffled()
	return d
}

// NewBlackjackDeck returns a shuffled 52-card deck. Seed 0 means
// time-seeded; tests pass an explicit seed.
func NewBlackjackDeck(seed int64) *Deck {
	return newDeck(blackjackCards, blackjackReshuffleAt, seed)
}

// NewNoufiDeck returns a shuffled 40-card deck of ranks 1..10.
func NewNoufiDeck(seed int64) *Deck {
	return newDeck(noufiCards, noufiReshuffleAt, seed)
}

func blackjackCards() []Card {
	cards := make([]Card, 0, 52)
	for _, s := range suits {
		for _, r := range blackjackRanks {
			cards = append(cards, Card{Suit: s, Rank: r})
		}
	}
	return cards
}

func noufiCards() []Card {
	cards := make([]Card, 0, 40)
	for _, s := range suits {
		for _, r := range noufiRanks {
			cards = append(cards, Card{Suit: s, Rank: r})
		}
	}
	return cards
}

func (d *Deck) shuffled() []Card {
	cards := d.build()
	for i := len(cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return cards
}

// Draw removes and returns the top card. It is total: at or below the
// reshuffle threshold the pile is replaced with a full shuffled deck first.
func (d *Deck) Draw() Card {
	if len(d.cards) <= d.threshold {
		d.cards = d.shuffled()
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c
}

func (d *Deck) Remaining() int { return len(d.cards) }
