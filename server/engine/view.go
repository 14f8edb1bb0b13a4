package engine

// Views are what the round discloses to a client. They differ from
// snapshots in one way only: the dealer's hole card stays hidden until the
// reveal flag flips. The full value is always known internally.

type SeatView struct {
	Hand   []Card     `json:"hand"`
	Bet    float64    `json:"bet"`
	Status SeatStatus `json:"status"`
	Value  int        `json:"value"`
	Splits int        `json:"splits,omitempty"`
}

type RoundView struct {
	Phase          Phase       `json:"phase"`
	Current        int         `json:"current"`
	Seats          []SeatView  `json:"seats"`
	Dealer         []Card      `json:"dealer"`
	DealerValue    int         `json:"dealerValue"`
	DealerRevealed bool        `json:"dealerRevealed"`
	Settlement     *Settlement `json:"settlement,omitempty"`
}

func (r *BlackjackRound) View() RoundView {
	v := RoundView{
		Phase:          r.phase,
		Current:        r.current,
		DealerRevealed: r.dealerRevealed,
		Settlement:     r.result,
	}
	for _, s := range r.seats {
		v.Seats = append(v.Seats, SeatView{
			Hand:   append([]Card(nil), s.Hand...),
			Bet:    s.Bet,
			Status: s.Status,
			Value:  BlackjackValue(s.Hand),
			Splits: s.Splits,
		})
	}
	v.Dealer, v.DealerValue = dealerDisclosure(r.dealer, r.dealerRevealed, BlackjackValue)
	return v
}

func (r *NoufiRound) View() RoundView {
	v := RoundView{
		Phase:          r.phase,
		Current:        r.current,
		DealerRevealed: r.dealerRevealed,
		Settlement:     r.result,
	}
	for _, s := range r.seats {
		sv := SeatView{
			Bet:    s.Bet,
			Status: s.Status,
		}
		// A noufi hand stays face down until its reveal turn.
		if s.Revealed {
			sv.Hand = append([]Card(nil), s.Hand...)
			sv.Value = s.Score
		} else {
			sv.Hand = concealed(len(s.Hand))
		}
		v.Seats = append(v.Seats, sv)
	}
	v.Dealer, v.DealerValue = dealerDisclosure(r.dealer, r.dealerRevealed, NoufiValue)
	return v
}

// dealerDisclosure shows the full dealer hand once revealed; before that
// only the upcard and its value leak out.
func dealerDisclosure(dealer []Card, revealed bool, score func([]Card) int) ([]Card, int) {
	if revealed || len(dealer) == 0 {
		return append([]Card(nil), dealer...), score(dealer)
	}
	up := dealer[:1]
	return append(append([]Card(nil), up...), concealed(len(dealer)-1)...), score(up)
}

// concealed stands in for n face-down cards.
func concealed(n int) []Card {
	cards := make([]Card, n)
	return cards
}
