package engine

import "context"

type fakeBalance struct {
	balance     float64
	debits      []float64
	credits     []float64
	failBalance error
	failDebit   error
	failCredit  error
}

func (f *fakeBalance) CurrentBalance(ctx context.Context) (float64, error) {
	if f.failBalance != nil {
		return 0, f.failBalance
	}
	return f.balance, nil
}

func (f *fakeBalance) Debit(ctx context.Context, amount float64) error {
	if f.failDebit != nil {
		return f.failDebit
	}
	if amount > f.balance {
		return ErrInsufficientBalance
	}
	f.balance -= amount
	f.debits = append(f.debits, amount)
	return nil
}

func (f *fakeBalance) Credit(ctx context.Context, amount float64) error {
	if f.failCredit != nil {
		return f.failCredit
	}
	f.balance += amount
	f.credits = append(f.credits, amount)
	return nil
}

type fakeRecorder struct {
	records []WagerRecord
	fail    error
}

func (f *fakeRecorder) Record(ctx context.Context, rec WagerRecord) error {
	if f.fail != nil {
		return f.fail
	}
	f.records = append(f.records, rec)
	return nil
}

func card(r Rank) Card { return Card{Suit: Clubs, Rank: r} }

func cards(ranks ...Rank) []Card {
	out := make([]Card, len(ranks))
	for i, r := range ranks {
		out[i] = card(r)
	}
	return out
}

// stackDeck fixes the next draws in order. Filler twos beneath the stacked
// cards keep the pile comfortably above its reshuffle threshold, so the
// order cannot be disturbed, and any draws past the stack (a dealer pulling
// to 17) come out as harmless twos.
func stackDeck(d *Deck, next ...Card) {
	pile := make([]Card, d.threshold+len(next)+32)
	for i := range pile {
		pile[i] = Card{Suit: Hearts, Rank: "2"}
	}
	for i, c := range next {
		pile[len(pile)-1-i] = c
	}
	d.cards = pile
}
