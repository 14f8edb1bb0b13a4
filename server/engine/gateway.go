package engine

import "context"

// BalanceGateway is the single authority on what a player can afford. The
// engine never keeps its own balance; it asks, debits and credits here and
// treats every answer as the truth of the moment.
type BalanceGateway interface {
	CurrentBalance(ctx context.Context) (float64, error)
	// Debit removes amount from the balance. Implementations return
	// ErrInsufficientBalance (possibly wrapped) when the balance cannot
	// cover it, and must not partially apply.
	Debit(ctx context.Context, amount float64) error
	Credit(ctx context.Context, amount float64) error
}

// WagerRecord is the one settlement entry written per round.
type WagerRecord struct {
	GameType    string  `json:"gameType"`
	TotalBet    float64 `json:"totalBet"`
	Outcome     string  `json:"outcome"`
	TotalPayout float64 `json:"totalPayout"`
}

// HistoryRecorder durably logs wagers. Recording is best-effort: a failure
// is surfaced to the caller but never rolls back game state.
type HistoryRecorder interface {
	Record(ctx context.Context, rec WagerRecord) error
}
