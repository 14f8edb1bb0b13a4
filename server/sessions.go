package main

import (
	"sync"

	"cardhouse/server/engine"
	"cardhouse/server/store"
)

// tableSession is one user's live tables. Rounds are single-threaded by
// contract, so every action on them happens under mu; the HTTP layer is the
// only caller.
type tableSession struct {
	mu        sync.Mutex
	blackjack *engine.BlackjackRound
	noufi     *engine.NoufiRound
	slots     *engine.SlotMachine
}

// sessions hands out a lazily created tableSession per user, wired to that
// user's balance row and history.
type sessions struct {
	mu   sync.Mutex
	byID map[int64]*tableSession
	db   *store.DB
}

func newSessions(db *store.DB) *sessions {
	return &sessions{byID: make(map[int64]*tableSession), db: db}
}

func (s *sessions) get(userID int64) *tableSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[userID]
	if !ok {
		balance := store.NewPlayerGateway(s.db, userID)
		history := store.NewWagerRecorder(s.db, userID)
		sess = &tableSession{
			blackjack: engine.NewBlackjackRound(balance, history, 0),
			noufi:     engine.NewNoufiRound(balance, history, 0),
			slots:     engine.NewSlotMachine(0),
		}
		s.byID[userID] = sess
	}
	return sess
}
