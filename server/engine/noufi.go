package engine

import "context"

// NoufiSeats is the number of hands one player may back in the nine-point
// game.
const NoufiSeats = 4

const noufiCardsPerHand = 3

// NoufiSeat is a wagered three-card hand. Score is fixed at reveal time and
// never changes afterwards.
type NoufiSeat struct {
	Hand     []Card     `json:"hand"`
	Bet      float64    `json:"bet"`
	Status   SeatStatus `json:"status"`
	Score    int        `json:"score"`
	Revealed bool       `json:"revealed"`
}

// NoufiRound is the nine-point table: same betting lifecycle as blackjack
// but with no player decisions after the deal. The player turn is a reveal
// sequence; once every backed hand is shown the dealer's hand is revealed
// and the round settles.
type NoufiRound struct {
	deck           *Deck
	seats          []*NoufiSeat
	dealer         []Card
	dealerRevealed bool
	current        int
	phase          Phase

	lastChip float64
	prevBets []float64

	balance BalanceGateway
	history HistoryRecorder
	result  *Settlement
}

func NewNoufiRound(balance BalanceGateway, history HistoryRecorder, seed int64) *NoufiRound {
	r := &NoufiRound{
		deck:     NewNoufiDeck(seed),
		prevBets: make([]float64, NoufiSeats),
		balance:  balance,
		history:  history,
	}
	r.reset()
	return r
}

// Reset begins a fresh betting phase, keeping only the previous bets.
func (r *NoufiRound) Reset() {
	r.deck = NewNoufiDeck(0)
	r.reset()
}

func (r *NoufiRound) reset() {
	r.seats = make([]*NoufiSeat, NoufiSeats)
	for i := range r.seats {
		r.seats[i] = &NoufiSeat{Status: StatusBetting}
	}
	r.dealer = nil
	r.dealerRevealed = false
	r.current = 0
	r.phase = PhaseBetting
	r.result = nil
}

func (r *NoufiRound) Phase() Phase { return r.phase }

func (r *NoufiRound) CurrentSeat() int { return r.current }

func (r *NoufiRound) Result() *Settlement { return r.result }

func (r *NoufiRound) DealerRevealed() bool { return r.dealerRevealed }

func (r *NoufiRound) Seat(i int) NoufiSeat { return *r.seats[i] }

func (r *NoufiRound) totalBet() float64 {
	total := 0.0
	for _, s := range r.seats {
		total += s.Bet
	}
	return total
}

func (r *NoufiRound) PlaceBet(ctx context.Context, seat int, amount float64) error {
	if r.phase != PhaseBetting {
		return invalidf("bets are closed")
	}
	if seat < 0 || seat >= NoufiSeats || !isChip(amount) {
		return invalidf("bad seat or chip")
	}
	bal, err := r.balance.CurrentBalance(ctx)
	if err != nil {
		return gatewayErr(err)
	}
	if r.seats[seat].Bet+amount > bal {
		return ErrInsufficientBalance
	}
	r.seats[seat].Bet += amount
	r.lastChip = amount
	return nil
}

func (r *NoufiRound) ClearBet(seat int) error {
	if r.phase != PhaseBetting {
		return invalidf("bets are closed")
	}
	if seat < 0 || seat >= NoufiSeats {
		return invalidf("bad seat")
	}
	r.seats[seat].Bet = 0
	return nil
}

func (r *NoufiRound) UndoBet(seat int) error {
	if r.phase != PhaseBetting {
		return invalidf("bets are closed")
	}
	if seat < 0 || seat >= NoufiSeats {
		return invalidf("bad seat")
	}
	if r.lastChip > 0 && r.seats[seat].Bet >= r.lastChip {
		r.seats[seat].Bet -= r.lastChip
	}
	return nil
}

func (r *NoufiRound) BetAll(ctx context.Context, amount float64) error {
	if r.phase != PhaseBetting {
		return invalidf("bets are closed")
	}
	if !isChip(amount) {
		return invalidf("bad chip")
	}
	bal, err := r.balance.CurrentBalance(ctx)
	if err != nil {
		return gatewayErr(err)
	}
	for _, s := range r.seats {
		if s.Bet+amount <= bal {
			s.Bet += amount
		}
	}
	r.lastChip = amount
	return nil
}

func (r *NoufiRound) ClearAll() error {
	if r.phase != PhaseBetting {
		return invalidf("bets are closed")
	}
	for _, s := range r.seats {
		s.Bet = 0
	}
	return nil
}

func (r *NoufiRound) RepeatBets(ctx context.Context) error {
	if r.phase != PhaseBetting {
		return invalidf("bets are closed")
	}
	total := 0.0
	for _, b := range r.prevBets {
		total += b
	}
	if total <= 0 {
		return invalidf("no previous bets to repeat")
	}
	bal, err := r.balance.CurrentBalance(ctx)
	if err != nil {
		return gatewayErr(err)
	}
	if total > bal {
		return ErrInsufficientBalance
	}
	for i, s := range r.seats {
		s.Bet = r.prevBets[i]
	}
	return nil
}

// Deal debits the full wager and deals three interleaved passes: each backed
// seat gets a card, then the dealer, three times over. All hands stay face
// down until their reveal turn.
func (r *NoufiRound) Deal(ctx context.Context) error {
	if r.phase != PhaseBetting {
		return invalidf("already dealt")
	}
	total := r.totalBet()
	if total <= 0 {
		return invalidf("at least one seat must have a bet")
	}
	if err := r.balance.Debit(ctx, total); err != nil {
		return gatewayErr(err)
	}

	r.phase = PhaseDealing
	for _, s := range r.seats {
		s.Hand = nil
		s.Score = 0
		s.Revealed = false
		if s.Bet > 0 {
			s.Status = StatusPlaying
		} else {
			s.Status = StatusDone
		}
	}
	r.dealer = nil
	r.dealerRevealed = false

	for pass := 0; pass < noufiCardsPerHand; pass++ {
		for _, s := range r.seats {
			if s.Status == StatusPlaying {
				s.Hand = append(s.Hand, r.deck.Draw())
			}
		}
		r.dealer = append(r.dealer, r.deck.Draw())
	}

	for i, s := range r.seats {
		r.prevBets[i] = s.Bet
	}
	r.phase = PhasePlayerTurn
	for i, s := range r.seats {
		if s.Status == StatusPlaying {
			r.current = i
			break
		}
	}
	return nil
}

// Reveal turns over the active hand, fixes its score and marks it done.
// When the last hand is shown the dealer's hand is revealed and the round
// settles; the returned settlement is non-nil in that case.
func (r *NoufiRound) Reveal(ctx context.Context) (*Settlement, error) {
	if r.phase != PhasePlayerTurn {
		return nil, invalidf("no hand to reveal")
	}
	s := r.seats[r.current]
	if s.Status != StatusPlaying {
		return nil, invalidf("no hand to reveal")
	}
	s.Revealed = true
	s.Score = NoufiValue(s.Hand)
	s.Status = StatusDone

	for i := r.current + 1; i < len(r.seats); i++ {
		if r.seats[i].Status == StatusPlaying {
			r.current = i
			return nil, nil
		}
	}
	r.phase = PhaseDealerTurn
	r.dealerRevealed = true

	st := settleNoufi(r.seats, r.dealer)
	for _, res := range st.Seats {
		r.seats[res.Seat].Status = res.Status
	}
	r.result = &st
	r.phase = PhaseSettled
	return r.result, settleEffects(ctx, r.balance, r.history, r.result)
}
