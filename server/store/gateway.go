package store

import (
	"context"
	"errors"
	"fmt"

	"cardhouse/server/engine"
)

// PlayerGateway adapts one user's balance row to the engine's gateway
// contract. Store sentinels are translated so the engine only ever sees its
// own error taxonomy.
type PlayerGateway struct {
	db     *DB
	userID int64
}

func NewPlayerGateway(db *DB, userID int64) *PlayerGateway {
	return &PlayerGateway{db: db, userID: userID}
}

func (g *PlayerGateway) CurrentBalance(ctx context.Context) (float64, error) {
	return g.db.Balance(ctx, g.userID)
}

func (g *PlayerGateway) Debit(ctx context.Context, amount float64) error {
	err := g.db.Debit(ctx, g.userID, amount)
	if errors.Is(err, ErrInsufficientFunds) {
		return fmt.Errorf("user %d: %w", g.userID, engine.ErrInsufficientBalance)
	}
	return err
}

func (g *PlayerGateway) Credit(ctx context.Context, amount float64) error {
	return g.db.Credit(ctx, g.userID, amount)
}

// WagerRecorder writes settled rounds into game_history for one user.
type WagerRecorder struct {
	db     *DB
	userID int64
}

func NewWagerRecorder(db *DB, userID int64) *WagerRecorder {
	return &WagerRecorder{db: db, userID: userID}
}

func (w *WagerRecorder) Record(ctx context.Context, rec engine.WagerRecord) error {
	_, err := w.db.RecordGame(ctx, GameRecord{
		UserID:   w.userID,
		GameType: rec.GameType,
		Bet:      rec.TotalBet,
		Outcome:  rec.Outcome,
		Payout:   rec.TotalPayout,
	})
	return err
}
