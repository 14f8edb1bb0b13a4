package engine

import "context"

// Phase is the round lifecycle. A round is created in betting and is done
// once it reaches settled; there is no way back.
type Phase string

const (
	PhaseBetting    Phase = "betting"
	PhaseDealing    Phase = "dealing"
	PhasePlayerTurn Phase = "playerTurn"
	PhaseDealerTurn Phase = "dealerTurn"
	PhaseSettled    Phase = "settled"
)

type SeatStatus string

const (
	StatusBetting   SeatStatus = "betting"
	StatusPlaying   SeatStatus = "playing"
	StatusStanding  SeatStatus = "standing"
	StatusBust      SeatStatus = "bust"
	StatusBlackjack SeatStatus = "blackjack"
	StatusPush      SeatStatus = "push"
	StatusWin       SeatStatus = "win"
	StatusLose      SeatStatus = "lose"
	StatusDone      SeatStatus = "done"
)

const (
	// BlackjackSeats is the number of concurrent hands one player may
	// field, splits included.
	BlackjackSeats = 3

	// maxSplits bounds how many times a lineage of hands may split.
	maxSplits = 2

	dealerStandsAt = 17
)

// Seat is one hand in a round: its cards, its wager and where it is in the
// turn cycle. Splits records the lineage depth so a split hand cannot split
// forever.
type Seat struct {
	Hand   []Card     `json:"hand"`
	Bet    float64    `json:"bet"`
	Status SeatStatus `json:"status"`
	Splits int        `json:"splits"`
}

// BlackjackRound drives one betting→dealing→playerTurn→dealerTurn→settled
// cycle for up to three hands against the dealer. All mutation is
// sequential; the round is owned by a single player session. The only I/O
// it performs goes through the balance gateway and history recorder.
type BlackjackRound struct {
	deck           *Deck
	seats          []*Seat
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

func NewBlackjackRound(balance BalanceGateway, history HistoryRecorder, seed int64) *BlackjackRound {
	r := &BlackjackRound{
		deck:     NewBlackjackDeck(seed),
		prevBets: make([]float64, BlackjackSeats),
		balance:  balance,
		history:  history,
	}
	r.reset()
	return r
}

// Reset discards the round and begins a fresh betting phase. Previous bets
// survive so the player can repeat them; nothing else does.
func (r *BlackjackRound) Reset() {
	r.deck = NewBlackjackDeck(0)
	r.reset()
}

func (r *BlackjackRound) reset() {
	r.seats = make([]*Seat, BlackjackSeats)
	for i := range r.seats {
		r.seats[i] = &Seat{Status: StatusBetting}
	}
	r.dealer = nil
	r.dealerRevealed = false
	r.current = 0
	r.phase = PhaseBetting
	r.result = nil
}

func (r *BlackjackRound) Phase() Phase { return r.phase }

func (r *BlackjackRound) CurrentSeat() int { return r.current }

func (r *BlackjackRound) Result() *Settlement { return r.result }

func (r *BlackjackRound) Seat(i int) Seat { return *r.seats[i] }

func (r *BlackjackRound) DealerRevealed() bool { return r.dealerRevealed }

func (r *BlackjackRound) totalBet() float64 {
	total := 0.0
	for _, s := range r.seats {
		total += s.Bet
	}
	return total
}

// PlaceBet adds one chip to a seat. Affordability is checked against the
// gateway's reported balance; on success the chip amount is remembered for
// undo.
func (r *BlackjackRound) PlaceBet(ctx context.Context, seat int, amount float64) error {
	if r.phase != PhaseBetting {
		return invalidf("bets are closed")
	}
	if seat < 0 || seat >= BlackjackSeats || !isChip(amount) {
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

func (r *BlackjackRound) ClearBet(seat int) error {
	if r.phase != PhaseBetting {
		return invalidf("bets are closed")
	}
	if seat < 0 || seat >= BlackjackSeats {
		return invalidf("bad seat")
	}
	r.seats[seat].Bet = 0
	return nil
}

// UndoBet takes back the last chip placed, if this seat's bet covers it.
func (r *BlackjackRound) UndoBet(seat int) error {
	if r.phase != PhaseBetting {
		return invalidf("bets are closed")
	}
	if seat < 0 || seat >= BlackjackSeats {
		return invalidf("bad seat")
	}
	if r.lastChip > 0 && r.seats[seat].Bet >= r.lastChip {
		r.seats[seat].Bet -= r.lastChip
	}
	return nil
}

// BetAll drops one chip on every seat that can still afford it; seats the
// balance cannot cover are skipped, not failed.
func (r *BlackjackRound) BetAll(ctx context.Context, amount float64) error {
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

func (r *BlackjackRound) ClearAll() error {
	if r.phase != PhaseBetting {
		return invalidf("bets are closed")
	}
	for _, s := range r.seats {
		s.Bet = 0
	}
	return nil
}

// RepeatBets restores the per-seat bets of the previous deal. The caller
// typically follows up with Deal.
func (r *BlackjackRound) RepeatBets(ctx context.Context) error {
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

// Deal debits the full wager, then deals two interleaved passes: every
// betting seat gets a card, then the dealer, twice. Two-card 21s are marked
// blackjack immediately. If no seat is left to act the dealer plays out at
// once and the returned settlement is non-nil.
func (r *BlackjackRound) Deal(ctx context.Context) (*Settlement, error) {
	if r.phase != PhaseBetting {
		return nil, invalidf("already dealt")
	}
	total := r.totalBet()
	if total <= 0 {
		return nil, invalidf("at least one seat must have a bet")
	}
	if err := r.balance.Debit(ctx, total); err != nil {
		return nil, gatewayErr(err)
	}

	r.phase = PhaseDealing
	for _, s := range r.seats {
		s.Hand = nil
		s.Splits = 0
		if s.Bet > 0 {
			s.Status = StatusPlaying
		} else {
			s.Status = StatusDone
		}
	}
	r.dealer = nil
	r.dealerRevealed = false

	for pass := 0; pass < 2; pass++ {
		for _, s := range r.seats {
			if s.Status == StatusPlaying {
				s.Hand = append(s.Hand, r.deck.Draw())
			}
		}
		r.dealer = append(r.dealer, r.deck.Draw())
	}

	for _, s := range r.seats {
		if s.Status == StatusPlaying && IsBlackjack(s.Hand) {
			s.Status = StatusBlackjack
		}
	}
	copy(r.prevBets, r.bets())

	r.phase = PhasePlayerTurn
	for i, s := range r.seats {
		if s.Status == StatusPlaying {
			r.current = i
			return nil, nil
		}
	}
	// Nothing to play: everyone has blackjack or sat out.
	return r.dealerPlay(ctx)
}

func (r *BlackjackRound) bets() []float64 {
	out := make([]float64, len(r.seats))
	for i, s := range r.seats {
		out[i] = s.Bet
	}
	return out
}

func (r *BlackjackRound) requireTurn() (*Seat, error) {
	if r.phase != PhasePlayerTurn {
		return nil, invalidf("no active hand")
	}
	s := r.seats[r.current]
	if s.Status != StatusPlaying {
		return nil, invalidf("no active hand")
	}
	return s, nil
}

// Hit draws one card into the active hand. On 21 the hand stands, over 21 it
// busts; either way the turn advances. Below 21 the same hand keeps acting.
func (r *BlackjackRound) Hit(ctx context.Context) (*Settlement, error) {
	s, err := r.requireTurn()
	if err != nil {
		return nil, err
	}
	s.Hand = append(s.Hand, r.deck.Draw())
	switch v := BlackjackValue(s.Hand); {
	case v > 21:
		s.Status = StatusBust
	case v == 21:
		s.Status = StatusStanding
	default:
		return nil, nil
	}
	return r.advance(ctx)
}

func (r *BlackjackRound) Stand(ctx context.Context) (*Settlement, error) {
	s, err := r.requireTurn()
	if err != nil {
		return nil, err
	}
	s.Status = StatusStanding
	return r.advance(ctx)
}

// Double doubles the wager on an untouched two-card hand, draws exactly one
// card and ends the hand's turn. The extra bet is debited before anything
// changes, so a refusal leaves the hand as it was.
func (r *BlackjackRound) Double(ctx context.Context) (*Settlement, error) {
	s, err := r.requireTurn()
	if err != nil {
		return nil, err
	}
	if len(s.Hand) != 2 {
		return nil, invalidf("double requires the original two cards")
	}
	if err := r.balance.Debit(ctx, s.Bet); err != nil {
		return nil, gatewayErr(err)
	}
	s.Bet *= 2
	s.Hand = append(s.Hand, r.deck.Draw())
	if BlackjackValue(s.Hand) > 21 {
		s.Status = StatusBust
	} else {
		s.Status = StatusStanding
	}
	return r.advance(ctx)
}

// Split separates a matching two-card hand into two hands of one card each,
// moves the second card to the first empty seat with an equal bet, and deals
// one fresh card to both. Both hands inherit the incremented split count.
// Face cards compare as tens, so {10,K} splits.
func (r *BlackjackRound) Split(ctx context.Context) (*Settlement, error) {
	s, err := r.requireTurn()
	if err != nil {
		return nil, err
	}
	if len(s.Hand) != 2 {
		return nil, invalidf("split requires exactly two cards")
	}
	if normalRank(s.Hand[0].Rank) != normalRank(s.Hand[1].Rank) {
		return nil, invalidf("split requires matching ranks")
	}
	if s.Splits >= maxSplits {
		return nil, invalidf("split limit reached")
	}
	if r.liveSeats() >= BlackjackSeats {
		return nil, invalidf("no seat available for the split hand")
	}
	target := r.emptySeat()
	if target == nil {
		return nil, invalidf("no seat available for the split hand")
	}
	if err := r.balance.Debit(ctx, s.Bet); err != nil {
		return nil, gatewayErr(err)
	}

	moved := s.Hand[1]
	s.Hand = s.Hand[:1]
	s.Splits++

	target.Hand = []Card{moved}
	target.Bet = s.Bet
	target.Status = StatusPlaying
	target.Splits = s.Splits

	s.Hand = append(s.Hand, r.deck.Draw())
	target.Hand = append(target.Hand, r.deck.Draw())

	if IsBlackjack(s.Hand) {
		s.Status = StatusBlackjack
	}
	if IsBlackjack(target.Hand) {
		target.Status = StatusBlackjack
	}
	if s.Status == StatusBlackjack {
		return r.advance(ctx)
	}
	return nil, nil
}

func (r *BlackjackRound) liveSeats() int {
	n := 0
	for _, s := range r.seats {
		if len(s.Hand) > 0 {
			n++
		}
	}
	return n
}

func (r *BlackjackRound) emptySeat() *Seat {
	for _, s := range r.seats {
		if len(s.Hand) == 0 {
			return s
		}
	}
	return nil
}

// advance moves to the next seat still playing, or hands the round to the
// dealer when none remains.
func (r *BlackjackRound) advance(ctx context.Context) (*Settlement, error) {
	for i := r.current + 1; i < len(r.seats); i++ {
		if r.seats[i].Status == StatusPlaying {
			r.current = i
			return nil, nil
		}
	}
	r.phase = PhaseDealerTurn
	return r.dealerPlay(ctx)
}

// dealerPlay reveals the hole card and draws to 17 or better. The dealer
// stands on every 17, soft or hard.
func (r *BlackjackRound) dealerPlay(ctx context.Context) (*Settlement, error) {
	r.phase = PhaseDealerTurn
	r.dealerRevealed = true
	for BlackjackValue(r.dealer) < dealerStandsAt {
		r.dealer = append(r.dealer, r.deck.Draw())
	}
	st := settleBlackjack(r.seats, r.dealer)
	return r.finish(ctx, st)
}

// finish records the settlement exactly once and runs the side effects.
// Outcomes stand even when a gateway call fails; the error tells the caller
// what to reconcile.
func (r *BlackjackRound) finish(ctx context.Context, st Settlement) (*Settlement, error) {
	for _, res := range st.Seats {
		r.seats[res.Seat].Status = res.Status
	}
	r.result = &st
	r.phase = PhaseSettled
	return r.result, settleEffects(ctx, r.balance, r.history, r.result)
}
