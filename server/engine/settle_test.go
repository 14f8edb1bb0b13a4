package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettleBlackjackPayoutTable(t *testing.T) {
	dealer19 := cards("10", "9")

	tests := []struct {
		name       string
		seat       *Seat
		dealer     []Card
		wantStatus SeatStatus
		wantPayout float64
	}{
		{
			name:       "bust loses even against a dealer bust",
			seat:       &Seat{Hand: cards("K", "Q", "5"), Bet: 10, Status: StatusBust},
			dealer:     cards("K", "Q", "5"),
			wantStatus: StatusBust,
			wantPayout: 0,
		},
		{
			name:       "natural pays 2.5x",
			seat:       &Seat{Hand: cards("A", "K"), Bet: 10, Status: StatusBlackjack},
			dealer:     dealer19,
			wantStatus: StatusBlackjack,
			wantPayout: 25,
		},
		{
			name:       "natural against a natural pushes",
			seat:       &Seat{Hand: cards("A", "K"), Bet: 10, Status: StatusBlackjack},
			dealer:     cards("A", "Q"),
			wantStatus: StatusPush,
			wantPayout: 10,
		},
		{
			name:       "dealer bust pays 2x",
			seat:       &Seat{Hand: cards("K", "5"), Bet: 10, Status: StatusStanding},
			dealer:     cards("K", "6", "8"),
			wantStatus: StatusWin,
			wantPayout: 20,
		},
		{
			name:       "higher value pays 2x",
			seat:       &Seat{Hand: cards("K", "Q"), Bet: 10, Status: StatusStanding},
			dealer:     dealer19,
			wantStatus: StatusWin,
			wantPayout: 20,
		},
		{
			name:       "tie pushes",
			seat:       &Seat{Hand: cards("K", "9"), Bet: 10, Status: StatusStanding},
			dealer:     dealer19,
			wantStatus: StatusPush,
			wantPayout: 10,
		},
		{
			name:       "lower value loses",
			seat:       &Seat{Hand: cards("K", "8"), Bet: 10, Status: StatusStanding},
			dealer:     dealer19,
			wantStatus: StatusLose,
			wantPayout: 0,
		},
		{
			name:       "three-card 21 is not a natural",
			seat:       &Seat{Hand: cards("K", "5", "6"), Bet: 10, Status: StatusStanding},
			dealer:     dealer19,
			wantStatus: StatusWin,
			wantPayout: 20,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seats := []*Seat{tt.seat, {Status: StatusDone}}
			st := settleBlackjack(seats, tt.dealer)
			assert.Len(t, st.Seats, 1, "unwagered seats never settle")
			assert.Equal(t, tt.wantStatus, st.Seats[0].Status)
			assert.Equal(t, tt.wantPayout, st.Seats[0].Payout)
			assert.Equal(t, tt.wantPayout, st.TotalPayout)
			assert.Equal(t, 10.0, st.TotalBet)
		})
	}
}

func TestSettleBlackjackTotals(t *testing.T) {
	seats := []*Seat{
		{Hand: cards("K", "Q"), Bet: 10, Status: StatusStanding},
		{Hand: cards("A", "K"), Bet: 25, Status: StatusBlackjack},
		{Hand: cards("K", "Q", "5"), Bet: 5, Status: StatusBust},
	}
	st := settleBlackjack(seats, cards("10", "9"))

	assert.Equal(t, 40.0, st.TotalBet)
	assert.Equal(t, 20+62.5, st.TotalPayout)
	assert.Equal(t, "win", st.Outcome())
}

func TestSettleNoufi(t *testing.T) {
	seats := []*NoufiSeat{
		{Hand: cards("4", "5", "10"), Bet: 10, Score: 9},
		{Hand: cards("2", "5", "10"), Bet: 10, Score: 7},
		{Hand: cards("1", "2", "10"), Bet: 10, Score: 3},
		{Hand: cards("8", "9", "10"), Bet: 10, Score: 0},
	}
	st := settleNoufi(seats, cards("2", "5", "9"))

	assert.Equal(t, 7, st.DealerValue)
	assert.Equal(t, StatusWin, st.Seats[0].Status)
	assert.Equal(t, 20.0, st.Seats[0].Payout)
	assert.Equal(t, StatusPush, st.Seats[1].Status)
	assert.Equal(t, 10.0, st.Seats[1].Payout)
	assert.Equal(t, StatusLose, st.Seats[2].Status)
	assert.Zero(t, st.Seats[2].Payout)
	assert.Equal(t, StatusLose, st.Seats[3].Status)
	assert.True(t, st.Seats[3].Hchich)
	assert.Equal(t, 30.0, st.TotalPayout)
	assert.Equal(t, "win", st.Outcome())
}

func TestOutcomeLabel(t *testing.T) {
	assert.Equal(t, "lose", (&Settlement{}).Outcome())
	assert.Equal(t, "win", (&Settlement{TotalPayout: 10}).Outcome())
}

func TestIsChip(t *testing.T) {
	for _, c := range Chips {
		assert.True(t, isChip(c))
	}
	assert.False(t, isChip(0))
	assert.False(t, isChip(7))
	assert.False(t, isChip(-5))
}
