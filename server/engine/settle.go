package engine

import (
	"context"
	"errors"
	"fmt"
)

// Chips are the fixed bet denominations shared by both table games.
var Chips = []float64{1, 5, 10, 25, 100}

func isChip(amount float64) bool {
	for _, c := range Chips {
		if amount == c {
			return true
		}
	}
	return false
}

// SeatResult is the settled view of one seat, carried back to the UI.
type SeatResult struct {
	Seat   int        `json:"seat"`
	Status SeatStatus `json:"status"`
	Value  int        `json:"value"`
	Bet    float64    `json:"bet"`
	Payout float64    `json:"payout"`
	Hchich bool       `json:"hchich,omitempty"`
}

// Settlement is the terminal result of a round. It is computed exactly once;
// after it exists the round accepts no further actions.
type Settlement struct {
	GameType        string       `json:"gameType"`
	DealerValue     int          `json:"dealerValue"`
	DealerBlackjack bool         `json:"dealerBlackjack,omitempty"`
	DealerBust      bool         `json:"dealerBust,omitempty"`
	TotalBet        float64      `json:"totalBet"`
	TotalPayout     float64      `json:"totalPayout"`
	Seats           []SeatResult `json:"seats"`
}

// Outcome is the round-level label recorded in history: win when anything
// came back, lose otherwise.
func (s *Settlement) Outcome() string {
	if s.TotalPayout > 0 {
		return "win"
	}
	return "lose"
}

// settleBlackjack applies the payout table to every seat that wagered.
//
//	blackjack vs blackjack  push       1.0x
//	blackjack               blackjack  2.5x
//	<=21 vs dealer bust     win        2.0x
//	<=21 above dealer       win        2.0x
//	tied with dealer        push       1.0x
//	below dealer, or bust   lose       0
func settleBlackjack(seats []*Seat, dealer []Card) Settlement {
	st := Settlement{
		GameType:        "blackjack",
		DealerValue:     BlackjackValue(dealer),
		DealerBlackjack: IsBlackjack(dealer),
	}
	st.DealerBust = st.DealerValue > 21

	for i, s := range seats {
		if s.Bet <= 0 {
			continue
		}
		res := SeatResult{Seat: i, Value: BlackjackValue(s.Hand), Bet: s.Bet}
		switch {
		case s.Status == StatusBust:
			res.Status = StatusBust
		case s.Status == StatusBlackjack && st.DealerBlackjack:
			res.Status = StatusPush
			res.Payout = s.Bet
		case s.Status == StatusBlackjack:
			res.Status = StatusBlackjack
			res.Payout = s.Bet * 2.5
		case st.DealerBust || res.Value > st.DealerValue:
			res.Status = StatusWin
			res.Payout = s.Bet * 2
		case res.Value == st.DealerValue:
			res.Status = StatusPush
			res.Payout = s.Bet
		default:
			res.Status = StatusLose
		}
		st.TotalBet += res.Bet
		st.TotalPayout += res.Payout
		st.Seats = append(st.Seats, res)
	}
	return st
}

// settleEffects credits the payout and records the wager after outcomes are
// fixed. Failures never undo the settlement; the joined error tells the
// caller what is left to reconcile out-of-band.
func settleEffects(ctx context.Context, balance BalanceGateway, history HistoryRecorder, st *Settlement) error {
	var errs []error
	if st.TotalPayout > 0 {
		if err := balance.Credit(ctx, st.TotalPayout); err != nil {
			errs = append(errs, fmt.Errorf("credit payout: %w", gatewayErr(err)))
		}
	}
	rec := WagerRecord{
		GameType:    st.GameType,
		TotalBet:    st.TotalBet,
		Outcome:     st.Outcome(),
		TotalPayout: st.TotalPayout,
	}
	if err := history.Record(ctx, rec); err != nil {
		errs = append(errs, fmt.Errorf("record wager: %w", gatewayErr(err)))
	}
	return errors.Join(errs...)
}

// settleNoufi compares fixed scores; modulo-10 hands cannot bust, so it is a
// plain greater/less/equal against the dealer.
func settleNoufi(seats []*NoufiSeat, dealer []Card) Settlement {
	st := Settlement{
		GameType:    "noufi",
		DealerValue: NoufiValue(dealer),
	}
	for i, s := range seats {
		if s.Bet <= 0 {
			continue
		}
		res := SeatResult{
			Seat:   i,
			Value:  s.Score,
			Bet:    s.Bet,
			Hchich: IsHchich(s.Hand),
		}
		switch {
		case s.Score > st.DealerValue:
			res.Status = StatusWin
			res.Payout = s.Bet * 2
		case s.Score < st.DealerValue:
			res.Status = StatusLose
		default:
			res.Status = StatusPush
			res.Payout = s.Bet
		}
		st.TotalBet += res.Bet
		st.TotalPayout += res.Payout
		st.Seats = append(st.Seats, res)
	}
	return st
}
