package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grid builds reels from rows written left to right, the way the machine is
// displayed.
func grid(rows [slotRows][slotReels]string) [][]string {
	reels := make([][]string, slotReels)
	for x := range reels {
		reels[x] = make([]string, slotRows)
		for y := 0; y < slotRows; y++ {
			reels[x][y] = rows[y][x]
		}
	}
	return reels
}

func TestEvaluateSpin(t *testing.T) {
	tests := []struct {
		name      string
		rows      [slotRows][slotReels]string
		bet       float64
		payout    float64
		wantLines []int
	}{
		{
			name: "no run",
			rows: [slotRows][slotReels]string{
				{"diamond", "crown", "diamond", "crown", "diamond"},
				{"crown", "temple", "crown", "temple", "crown"},
				{"temple", "crown", "temple", "crown", "temple"},
			},
			bet: 10,
		},
		{
			name: "two in a row pays nothing",
			rows: [slotRows][slotReels]string{
				{"diamond", "diamond", "crown", "crown", "temple"},
				{"crown", "temple", "crown", "temple", "crown"},
				{"temple", "crown", "temple", "crown", "temple"},
			},
			bet: 10,
		},
		{
			name: "three crowns on the bottom",
			rows: [slotRows][slotReels]string{
				{"diamond", "crown", "diamond", "crown", "diamond"},
				{"crown", "temple", "crown", "temple", "crown"},
				{"crown", "crown", "crown", "temple", "crown"},
			},
			bet:       10,
			payout:    5 * 10 * 1,
			wantLines: []int{2},
		},
		{
			name: "full line of diamonds",
			rows: [slotRows][slotReels]string{
				{"diamond", "diamond", "diamond", "diamond", "diamond"},
				{"crown", "temple", "crown", "temple", "crown"},
				{"temple", "crown", "temple", "crown", "temple"},
			},
			bet:       2,
			payout:    50 * 2 * 3,
			wantLines: []int{0},
		},
		{
			name: "run must start on the first reel",
			rows: [slotRows][slotReels]string{
				{"crown", "temple", "temple", "temple", "temple"},
				{"crown", "temple", "crown", "temple", "crown"},
				{"temple", "crown", "temple", "crown", "temple"},
			},
			bet: 10,
		},
		{
			name: "two lines pay together",
			rows: [slotRows][slotReels]string{
				{"temple", "temple", "temple", "temple", "crown"},
				{"lightning", "lightning", "lightning", "crown", "crown"},
				{"temple", "crown", "temple", "crown", "temple"},
			},
			bet:       1,
			payout:    10*1*2 + 15*1*1,
			wantLines: []int{0, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payout, lines := evaluateSpin(grid(tt.rows), tt.bet)
			assert.Equal(t, tt.payout, payout)
			assert.Equal(t, tt.wantLines, lines)
		})
	}
}

func TestSpinIsConsistentWithItsGrid(t *testing.T) {
	known := make(map[string]bool, len(SlotSymbols))
	for _, s := range SlotSymbols {
		known[s.Name] = true
	}

	m := NewSlotMachine(99)
	for i := 0; i < 50; i++ {
		res := m.Spin(5)
		require.Len(t, res.Reels, slotReels)
		for _, reel := range res.Reels {
			require.Len(t, reel, slotRows)
			for _, sym := range reel {
				assert.True(t, known[sym], "every cell holds a known symbol, got %q", sym)
			}
		}
		payout, lines := evaluateSpin(res.Reels, res.Bet)
		assert.Equal(t, payout, res.Payout)
		assert.Equal(t, lines, res.WinningLines)
	}
}

func TestSeededSpinsAreDeterministic(t *testing.T) {
	a := NewSlotMachine(7)
	b := NewSlotMachine(7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Spin(1), b.Spin(1))
	}
}
