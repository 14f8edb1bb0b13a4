package store

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

//go:embed schema.sql
var schema embed.FS

// Sentinel errors calling code branches on; everything else comes back as
// the driver error.
var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

type DB struct{ *pgxpool.Pool }

func Open(dsn string) (*DB, error) {
	p, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &DB{p}, nil
}

func (db *DB) Close(ctx context.Context)      { db.Pool.Close() }
func (db *DB) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

func Migrate(ctx context.Context, db *DB) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
}

/* -----------------------------
   Users and balances
------------------------------*/

// UpsertUser creates or refreshes a user and returns its id. The password is
// stored as a bcrypt hash; the balance only applies on first insert.
func (db *DB) UpsertUser(ctx context.Context, username, password, role string, balance float64) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	var id int64
	err = db.QueryRow(ctx, `
        INSERT INTO users(username, password_hash, role, balance)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (username) DO UPDATE
          SET password_hash = EXCLUDED.password_hash,
              role = EXCLUDED.role
        RETURNING id
    `, username, string(hash), role, balance).Scan(&id)
	return id, err
}

func (db *DB) GetUser(ctx context.Context, id int64) (*User, error) {
	u := &User{}
	err := db.QueryRow(ctx, `
        SELECT id, username, role, balance, created_at
          FROM users WHERE id = $1
    `, id).Scan(&u.ID, &u.Username, &u.Role, &u.Balance, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate checks a username/password pair against the stored bcrypt
// hash. Unknown users and bad passwords both come back ErrNotFound so the
// two cases are indistinguishable to a caller.
func (db *DB) Authenticate(ctx context.Context, username, password string) (*User, error) {
	u := &User{}
	var hash string
	err := db.QueryRow(ctx, `
        SELECT id, username, role, balance, created_at, password_hash
          FROM users WHERE username = $1
    `, username).Scan(&u.ID, &u.Username, &u.Role, &u.Balance, &u.CreatedAt, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (db *DB) Balance(ctx context.Context, userID int64) (float64, error) {
	var bal float64
	err := db.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1`, userID).Scan(&bal)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return bal, err
}

// Debit takes amount off the user's balance. The guard in the UPDATE makes
// it atomic: zero rows means the balance did not cover the amount (or the
// user does not exist).
func (db *DB) Debit(ctx context.Context, userID int64, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("debit amount must be positive, got %v", amount)
	}
	tag, err := db.Exec(ctx, `
        UPDATE users SET balance = balance - $2
         WHERE id = $1 AND balance >= $2
    `, userID, amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := db.Balance(ctx, userID); err != nil {
			return err
		}
		return ErrInsufficientFunds
	}
	return nil
}

func (db *DB) Credit(ctx context.Context, userID int64, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive, got %v", amount)
	}
	tag, err := db.Exec(ctx, `
        UPDATE users SET balance = balance + $2 WHERE id = $1
    `, userID, amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

/* -----------------------------
   Game history
------------------------------*/

type GameRecord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	GameType  string    `json:"gameType"`
	Bet       float64   `json:"bet"`
	Outcome   string    `json:"outcome"`
	Payout    float64   `json:"payout"`
	CreatedAt time.Time `json:"createdAt"`
}

func (db *DB) RecordGame(ctx context.Context, rec GameRecord) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, `
        INSERT INTO game_history(user_id, game_type, bet, outcome, payout)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id
    `, rec.UserID, rec.GameType, rec.Bet, rec.Outcome, rec.Payout).Scan(&id)
	return id, err
}

func (db *DB) GameHistory(ctx context.Context, userID int64, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(ctx, `
        SELECT id, user_id, game_type, bet, outcome, payout, created_at
          FROM game_history
         WHERE user_id = $1
         ORDER BY created_at DESC
         LIMIT $2
    `, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []GameRecord
	for rows.Next() {
		var r GameRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.GameType, &r.Bet, &r.Outcome, &r.Payout, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type Stats struct {
	Games       int     `json:"games"`
	Wins        int     `json:"wins"`
	TotalBet    float64 `json:"totalBet"`
	TotalPayout float64 `json:"totalPayout"`
	Net         float64 `json:"net"`
}

// UserStats aggregates a player's career across every game type.
func (db *DB) UserStats(ctx context.Context, userID int64) (Stats, error) {
	var s Stats
	err := db.QueryRow(ctx, `
        SELECT COUNT(*)::int,
               SUM(CASE WHEN outcome = 'win' THEN 1 ELSE 0 END)::int,
               COALESCE(SUM(bet), 0),
               COALESCE(SUM(payout), 0)
          FROM game_history
         WHERE user_id = $1
    `, userID).Scan(&s.Games, &s.Wins, &s.TotalBet, &s.TotalPayout)
	if err != nil {
		return Stats{}, err
	}
	s.Net = s.TotalPayout - s.TotalBet
	return s, nil
}

/* -----------------------------
   Transfers
------------------------------*/

type Transfer struct {
	ID         int64     `json:"id"`
	FromUserID int64     `json:"fromUserId"`
	ToUserID   int64     `json:"toUserId"`
	Amount     float64   `json:"amount"`
	Type       string    `json:"type"`
	Status     string    `json:"status"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TransferFunds moves money between two users and writes the ledger row in
// one transaction. The sender's guarded debit keeps the pair from going
// negative under concurrent transfers.
func (db *DB) TransferFunds(ctx context.Context, fromID, toID int64, amount float64, note string) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("transfer amount must be positive, got %v", amount)
	}
	if fromID == toID {
		return 0, fmt.Errorf("cannot transfer to the same user")
	}
	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx) // safe if already committed

	tag, err := tx.Exec(ctx, `
        UPDATE users SET balance = balance - $2
         WHERE id = $1 AND balance >= $2
    `, fromID, amount)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrInsufficientFunds
	}

	tag, err = tx.Exec(ctx, `
        UPDATE users SET balance = balance + $2 WHERE id = $1
    `, toID, amount)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrNotFound
	}

	var id int64
	if err := tx.QueryRow(ctx, `
        INSERT INTO transfers(from_user_id, to_user_id, amount, note)
        VALUES ($1,$2,$3,$4)
        RETURNING id
    `, fromID, toID, amount, note).Scan(&id); err != nil {
		return 0, err
	}
	return id, tx.Commit(ctx)
}

// Transfers lists the ledger rows a user appears in, either side, newest
// first.
func (db *DB) Transfers(ctx context.Context, userID int64, limit int) ([]Transfer, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(ctx, `
        SELECT id, from_user_id, to_user_id, amount, type, status, note, created_at
          FROM transfers
         WHERE from_user_id = $1 OR to_user_id = $1
         ORDER BY created_at DESC
         LIMIT $2
    `, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Transfer
	for rows.Next() {
		var t Transfer
		if err := rows.Scan(&t.ID, &t.FromUserID, &t.ToUserID, &t.Amount, &t.Type, &t.Status, &t.Note, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

/* -----------------------------
   Seed data
------------------------------*/

// Seed creates the three stock accounts used in development. Idempotent;
// existing users keep their current balance.
func Seed(ctx context.Context, db *DB) error {
	seeds := []struct {
		username, password, role string
		balance                  float64
	}{
		{"admin", "admin123", "ADMIN", 1000},
		{"agent", "agent123", "AGENT", 500},
		{"user", "user123", "USER", 100},
	}
	for _, s := range seeds {
		if _, err := db.UpsertUser(ctx, s.username, s.password, s.role, s.balance); err != nil {
			return fmt.Errorf("seed %s: %w", s.username, err)
		}
	}
	return nil
}
