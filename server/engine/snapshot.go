package engine

import "fmt"

// Snapshots exist so the surrounding application can park an in-progress
// round (a disconnect, a page reload) and hand it back later. The engine
// never persists anything itself; it only produces and consumes these.

type BlackjackSnapshot struct {
	Deck           []Card    `json:"deck"`
	Seats          []Seat    `json:"seats"`
	Dealer         []Card    `json:"dealer"`
	DealerRevealed bool      `json:"dealerRevealed"`
	Current        int       `json:"current"`
	Phase          Phase     `json:"phase"`
	LastChip       float64   `json:"lastChip"`
	PrevBets       []float64 `json:"prevBets"`
}

func (r *BlackjackRound) Snapshot() *BlackjackSnapshot {
	snap := &BlackjackSnapshot{
		Deck:           append([]Card(nil), r.deck.cards...),
		Dealer:         append([]Card(nil), r.dealer...),
		DealerRevealed: r.dealerRevealed,
		Current:        r.current,
		Phase:          r.phase,
		LastChip:       r.lastChip,
		PrevBets:       append([]float64(nil), r.prevBets...),
	}
	for _, s := range r.seats {
		cp := *s
		cp.Hand = append([]Card(nil), s.Hand...)
		snap.Seats = append(snap.Seats, cp)
	}
	return snap
}

// RestoreBlackjack rebuilds a round from a snapshot, reattaching it to live
// gateways. Settled rounds cannot be restored; there is nothing left to do
// with them.
func RestoreBlackjack(snap *BlackjackSnapshot, balance BalanceGateway, history HistoryRecorder) (*BlackjackRound, error) {
	if snap == nil {
		return nil, fmt.Errorf("nil snapshot")
	}
	if len(snap.Seats) != BlackjackSeats || len(snap.PrevBets) != BlackjackSeats {
		return nil, fmt.Errorf("snapshot has %d seats, want %d", len(snap.Seats), BlackjackSeats)
	}
	if snap.Phase == PhaseSettled {
		return nil, fmt.Errorf("cannot restore a settled round")
	}
	r := NewBlackjackRound(balance, history, 0)
	r.deck.cards = append([]Card(nil), snap.Deck...)
	for i := range snap.Seats {
		s := snap.Seats[i]
		s.Hand = append([]Card(nil), snap.Seats[i].Hand...)
		r.seats[i] = &s
	}
	r.dealer = append([]Card(nil), snap.Dealer...)
	r.dealerRevealed = snap.DealerRevealed
	r.current = snap.Current
	r.phase = snap.Phase
	r.lastChip = snap.LastChip
	copy(r.prevBets, snap.PrevBets)
	return r, nil
}

type NoufiSnapshot struct {
	Deck           []Card      `json:"deck"`
	Seats          []NoufiSeat `json:"seats"`
	Dealer         []Card      `json:"dealer"`
	DealerRevealed bool        `json:"dealerRevealed"`
	Current        int         `json:"current"`
	Phase          Phase       `json:"phase"`
	LastChip       float64     `json:"lastChip"`
	PrevBets       []float64   `json:"prevBets"`
}

func (r *NoufiRound) Snapshot() *NoufiSnapshot {
	snap := &NoufiSnapshot{
		Deck:           append([]Card(nil), r.deck.cards...),
		Dealer:         append([]Card(nil), r.dealer...),
		DealerRevealed: r.dealerRevealed,
		Current:        r.current,
		Phase:          r.phase,
		LastChip:       r.lastChip,
		PrevBets:       append([]float64(nil), r.prevBets...),
	}
	for _, s := range r.seats {
		cp := *s
		cp.Hand = append([]Card(nil), s.Hand...)
		snap.Seats = append(snap.Seats, cp)
	}
	return snap
}

func RestoreNoufi(snap *NoufiSnapshot, balance BalanceGateway, history HistoryRecorder) (*NoufiRound, error) {
	if snap == nil {
		return nil, fmt.Errorf("nil snapshot")
	}
	if len(snap.Seats) != NoufiSeats || len(snap.PrevBets) != NoufiSeats {
		return nil, fmt.Errorf("snapshot has %d seats, want %d", len(snap.Seats), NoufiSeats)
	}
	if snap.Phase == PhaseSettled {
		return nil, fmt.Errorf("cannot restore a settled round")
	}
	r := NewNoufiRound(balance, history, 0)
	r.deck.cards = append([]Card(nil), snap.Deck...)
	for i := range snap.Seats {
		s := snap.Seats[i]
		s.Hand = append([]Card(nil), snap.Seats[i].Hand...)
		r.seats[i] = &s
	}
	r.dealer = append([]Card(nil), snap.Dealer...)
	r.dealerRevealed = snap.DealerRevealed
	r.current = snap.Current
	r.phase = snap.Phase
	r.lastChip = snap.LastChip
	copy(r.prevBets, snap.PrevBets)
	return r, nil
}
