package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"cardhouse/server/engine"
	"cardhouse/server/store"
)

func Router(db *store.DB, logger *log.Logger) http.Handler {
	s := newSessions(db)
	r := chi.NewRouter()

	r.Get("/api/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, map[string]any{"ok": true})
	})

	r.Post("/api/login", func(w http.ResponseWriter, req *http.Request) {
		var in struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		u, err := db.Authenticate(req.Context(), in.Username, in.Password)
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, u)
	})

	r.Get("/api/users/{id}/balance", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		bal, err := db.Balance(req.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"balance": bal})
	})

	r.Get("/api/users/{id}/history", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
		recs, err := db.GameHistory(req.Context(), id, limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"rows": recs})
	})

	r.Get("/api/users/{id}/stats", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		stats, err := db.UserStats(req.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, stats)
	})

	r.Get("/api/users/{id}/transfers", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
		rows, err := db.Transfers(req.Context(), id, limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"rows": rows})
	})

	r.Post("/api/transfers", func(w http.ResponseWriter, req *http.Request) {
		var in struct {
			FromUserID int64   `json:"fromUserId"`
			ToUserID   int64   `json:"toUserId"`
			Amount     float64 `json:"amount"`
			Note       string  `json:"note"`
		}
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		if in.FromUserID <= 0 || in.ToUserID <= 0 || in.Amount <= 0 {
			http.Error(w, "invalid transfer parameters", http.StatusBadRequest)
			return
		}
		id, err := db.TransferFunds(req.Context(), in.FromUserID, in.ToUserID, in.Amount, in.Note)
		switch {
		case errors.Is(err, store.ErrInsufficientFunds):
			http.Error(w, "insufficient balance", http.StatusPaymentRequired)
			return
		case errors.Is(err, store.ErrNotFound):
			http.Error(w, "user not found", http.StatusNotFound)
			return
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"id": id})
	})

	r.Get("/api/games/blackjack", func(w http.ResponseWriter, req *http.Request) {
		userID, ok := queryUserID(w, req)
		if !ok {
			return
		}
		sess := s.get(userID)
		sess.mu.Lock()
		defer sess.mu.Unlock()
		writeJSON(w, sess.blackjack.View())
	})

	r.Post("/api/games/blackjack", func(w http.ResponseWriter, req *http.Request) {
		var in gameAction
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		if in.UserID <= 0 {
			http.Error(w, "missing userId", http.StatusBadRequest)
			return
		}
		sess := s.get(in.UserID)
		sess.mu.Lock()
		defer sess.mu.Unlock()

		ctx := req.Context()
		bj := sess.blackjack
		var st *engine.Settlement
		var err error
		switch in.Action {
		case "bet":
			err = bj.PlaceBet(ctx, in.Seat, in.Amount)
		case "clear":
			err = bj.ClearBet(in.Seat)
		case "undo":
			err = bj.UndoBet(in.Seat)
		case "bet-all":
			err = bj.BetAll(ctx, in.Amount)
		case "clear-all":
			err = bj.ClearAll()
		case "repeat":
			err = bj.RepeatBets(ctx)
		case "deal":
			st, err = bj.Deal(ctx)
		case "hit":
			st, err = bj.Hit(ctx)
		case "stand":
			st, err = bj.Stand(ctx)
		case "double":
			st, err = bj.Double(ctx)
		case "split":
			st, err = bj.Split(ctx)
		case "new-round":
			bj.Reset()
		default:
			http.Error(w, "unknown action "+in.Action, http.StatusBadRequest)
			return
		}
		if err != nil && st == nil {
			writeEngineError(w, err)
			return
		}
		if err != nil {
			// The round settled; the failed side effect is reconciled
			// out-of-band, the player still sees the result.
			logger.Error("settlement side effect failed", "game", "blackjack", "user", in.UserID, "error", err)
		}
		writeJSON(w, bj.View())
	})

	r.Get("/api/games/noufi", func(w http.ResponseWriter, req *http.Request) {
		userID, ok := queryUserID(w, req)
		if !ok {
			return
		}
		sess := s.get(userID)
		sess.mu.Lock()
		defer sess.mu.Unlock()
		writeJSON(w, sess.noufi.View())
	})

	r.Post("/api/games/noufi", func(w http.ResponseWriter, req *http.Request) {
		var in gameAction
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		if in.UserID <= 0 {
			http.Error(w, "missing userId", http.StatusBadRequest)
			return
		}
		sess := s.get(in.UserID)
		sess.mu.Lock()
		defer sess.mu.Unlock()

		ctx := req.Context()
		nf := sess.noufi
		var st *engine.Settlement
		var err error
		switch in.Action {
		case "bet":
			err = nf.PlaceBet(ctx, in.Seat, in.Amount)
		case "clear":
			err = nf.ClearBet(in.Seat)
		case "undo":
			err = nf.UndoBet(in.Seat)
		case "bet-all":
			err = nf.BetAll(ctx, in.Amount)
		case "clear-all":
			err = nf.ClearAll()
		case "repeat":
			err = nf.RepeatBets(ctx)
		case "deal":
			err = nf.Deal(ctx)
		case "reveal":
			st, err = nf.Reveal(ctx)
		case "new-round":
			nf.Reset()
		default:
			http.Error(w, "unknown action "+in.Action, http.StatusBadRequest)
			return
		}
		if err != nil && st == nil {
			writeEngineError(w, err)
			return
		}
		if err != nil {
			logger.Error("settlement side effect failed", "game", "noufi", "user", in.UserID, "error", err)
		}
		writeJSON(w, nf.View())
	})

	r.Post("/api/games/slots", func(w http.ResponseWriter, req *http.Request) {
		var in struct {
			UserID int64   `json:"userId"`
			Bet    float64 `json:"bet"`
		}
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		if in.UserID <= 0 || in.Bet <= 0 {
			http.Error(w, "userId and a positive bet are required", http.StatusBadRequest)
			return
		}
		sess := s.get(in.UserID)
		sess.mu.Lock()
		defer sess.mu.Unlock()

		ctx := req.Context()
		if err := db.Debit(ctx, in.UserID, in.Bet); err != nil {
			if errors.Is(err, store.ErrInsufficientFunds) {
				http.Error(w, "insufficient balance", http.StatusPaymentRequired)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		res := sess.slots.Spin(in.Bet)
		if res.Payout > 0 {
			if err := db.Credit(ctx, in.UserID, res.Payout); err != nil {
				logger.Error("slot payout credit failed", "user", in.UserID, "payout", res.Payout, "error", err)
			}
		}
		outcome := "lose"
		if res.Payout > 0 {
			outcome = "win"
		}
		if _, err := db.RecordGame(ctx, store.GameRecord{
			UserID:   in.UserID,
			GameType: "slots",
			Bet:      in.Bet,
			Outcome:  outcome,
			Payout:   res.Payout,
		}); err != nil {
			logger.Error("slot spin record failed", "user", in.UserID, "error", err)
		}
		writeJSON(w, res)
	})

	return r
}

// gameAction is the one request shape both table games share.
type gameAction struct {
	UserID int64   `json:"userId"`
	Action string  `json:"action"`
	Seat   int     `json:"seat"`
	Amount float64 `json:"amount"`
}

func pathID(w http.ResponseWriter, req *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "bad id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func queryUserID(w http.ResponseWriter, req *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(req.URL.Query().Get("userId"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "missing userId", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeEngineError maps the engine's error taxonomy onto HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidAction):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, engine.ErrInsufficientBalance):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	case errors.Is(err, engine.ErrGateway):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
