package engine

import (
	"math/rand"
	"time"
)

// Slot machine: 5 reels by 3 rows, three straight-row paylines. A payline
// pays when its leading run from the left holds 3 or more of the same
// symbol.

const (
	slotReels = 5
	slotRows  = 3
)

type SlotSymbol struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

var SlotSymbols = []SlotSymbol{
	{Name: "diamond", Multiplier: 50},
	{Name: "amphora", Multiplier: 25},
	{Name: "lightning", Multiplier: 15},
	{Name: "temple", Multiplier: 10},
	{Name: "crown", Multiplier: 5},
}

var slotPaylines = []string{"top", "middle", "bottom"}

type SpinResult struct {
	Reels        [][]string `json:"reels"` // [reel][row]
	Bet          float64    `json:"bet"`
	Payout       float64    `json:"payout"`
	WinningLines []int      `json:"winningLines,omitempty"`
}

type SlotMachine struct {
	rng *rand.Rand
}

func NewSlotMachine(seed int64) *SlotMachine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SlotMachine{rng: rand.New(rand.NewSource(seed))}
}

// Spin rolls a fresh grid and evaluates it. The machine holds no money;
// debit and credit happen around it.
func (m *SlotMachine) Spin(bet float64) SpinResult {
	reels := make([][]string, slotReels)
	for x := range reels {
		reels[x] = make([]string, slotRows)
		for y := range reels[x] {
			reels[x][y] = SlotSymbols[m.rng.Intn(len(SlotSymbols))].Name
		}
	}
	payout, lines := evaluateSpin(reels, bet)
	return SpinResult{Reels: reels, Bet: bet, Payout: payout, WinningLines: lines}
}

// evaluateSpin pays each row line multiplier × bet × (matches-2) for a
// leading run of 3 or more.
func evaluateSpin(reels [][]string, bet float64) (float64, []int) {
	payout := 0.0
	var lines []int
	for row := 0; row < slotRows; row++ {
		first := reels[0][row]
		matches := 1
		for x := 1; x < slotReels; x++ {
			if reels[x][row] != first {
				break
			}
			matches++
		}
		if matches < 3 {
			continue
		}
		lines = append(lines, row)
		payout += symbolMultiplier(first) * bet * float64(matches-2)
	}
	return payout, lines
}

func symbolMultiplier(name string) float64 {
	for _, s := range SlotSymbols {
		if s.Name == name {
			return s.Multiplier
		}
	}
	return 1
}

// Paylines names the rows in display order.
func Paylines() []string { return append([]string(nil), slotPaylines...) }
