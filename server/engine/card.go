package engine

import "strconv"

type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

var suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Rank is the printed rank of a card: "A", "2".."10", "J", "Q", "K" in the
// blackjack deck, "1".."10" in the noufi deck.
type Rank string

const (
	Ace   Rank = "A"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
)

var blackjackRanks = []Rank{Ace, "2", "3", "4", "5", "6", "7", "8", "9", Ten, Jack, Queen, King}

var noufiRanks = []Rank{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}

// Card is a plain value; two cards of the same suit and rank are
// indistinguishable.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

var suitSymbols = map[Suit]string{
	Hearts: "♥", Diamonds: "♦", Clubs: "♣", Spades: "♠",
}

func (c Card) String() string {
	return suitSymbols[c.Suit] + string(c.Rank)
}

// normalRank maps face cards to the rank they compare and score as. Split
// eligibility and the 10-value score both go through it, so {10,K} splits
// while {9,10} does not.
func normalRank(r Rank) Rank {
	switch r {
	case Jack, Queen, King:
		return Ten
	}
	return r
}

func blackjackCardValue(r Rank) int {
	if r == Ace {
		return 11
	}
	n, _ := strconv.Atoi(string(normalRank(r)))
	return n
}

// BlackjackValue scores a hand with aces demoted from 11 to 1 one at a time
// while the total is over 21. An ace never counts as 11 and 1 in the same
// evaluation.
func BlackjackValue(hand []Card) int {
	total := 0
	aces := 0
	for _, c := range hand {
		total += blackjackCardValue(c.Rank)
		if c.Rank == Ace {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// IsBlackjack reports a natural: exactly two cards totaling 21.
func IsBlackjack(hand []Card) bool {
	return len(hand) == 2 && BlackjackValue(hand) == 21
}

func noufiCardValue(r Rank) int {
	switch r {
	case "8", "9", "10":
		return 0
	}
	n, _ := strconv.Atoi(string(r))
	return n
}

// NoufiValue scores a hand modulo 10; ranks 8, 9 and 10 count as zero.
func NoufiValue(hand []Card) int {
	sum := 0
	for _, c := range hand {
		sum += noufiCardValue(c.Rank)
	}
	return sum % 10
}

// IsHchich reports the lowest-tier noufi hand: every card a zero-value rank.
// Informational only, settlement sees just the score of 0.
func IsHchich(hand []Card) bool {
	if len(hand) == 0 {
		return false
	}
	for _, c := range hand {
		if noufiCardValue(c.Rank) != 0 {
			return false
		}
	}
	return true
}
