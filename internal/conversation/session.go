package conversation

import (
	"strings"
	"sync"
	"time"
)

// HistoryLimit caps the number of exchanges retained per user.
const HistoryLimit = 10

// Exchange is one inbound/outbound pair kept for AI context.
type Exchange struct {
	Input string
	Reply string
	At    time.Time
}

// userSession is the per-user conversational position. preFAQ remembers the
// state the user was in before the last FAQ interaction so "back" can return
// there.
type userSession struct {
	stateID string
	preFAQ  string
	history []Exchange
}

// Sessions is the concurrency-safe per-user state store. Records are created
// lazily at the initial state and live for the process lifetime unless reset.
type Sessions struct {
	mu      sync.Mutex
	initial string
	users   map[string]*userSession
}

// NewSessions creates a session store whose lazily created records start at
// the given initial state id.
func NewSessions(initial string) *Sessions {
	return &Sessions{initial: initial, users: make(map[string]*userSession)}
}

func (s *Sessions) user(userID string) *userSession {
	u, ok := s.users[userID]
	if !ok {
		u = &userSession{stateID: s.initial}
		s.users[userID] = u
	}
	return u
}

// Current returns the user's current state id.
func (s *Sessions) Current(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user(userID).stateID
}

// Set moves the user to stateID.
func (s *Sessions) Set(userID, stateID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user(userID).stateID = stateID
}

// SetPreFAQ records the state to return to when the user navigates back out
// of an FAQ answer.
func (s *Sessions) SetPreFAQ(userID, stateID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user(userID).preFAQ = stateID
}

// ClearPreFAQ drops the recorded pre-FAQ state. Called when the user leaves
// the FAQ context through a normal transition, so a later back command is
// not hijacked to a stale state.
func (s *Sessions) ClearPreFAQ(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user(userID).preFAQ = ""
}

// TakePreFAQ returns and clears the recorded pre-FAQ state.
func (s *Sessions) TakePreFAQ(userID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.user(userID)
	if u.preFAQ == "" {
		return "", false
	}
	stateID := u.preFAQ
	u.preFAQ = ""
	return stateID, true
}

// AppendExchange records an inbound/outbound pair, keeping at most
// HistoryLimit entries.
func (s *Sessions) AppendExchange(userID, input, reply string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.user(userID)
	u.history = append(u.history, Exchange{Input: input, Reply: reply, At: time.Now()})
	if len(u.history) > HistoryLimit {
		u.history = u.history[len(u.history)-HistoryLimit:]
	}
}

// History returns a copy of the user's retained exchanges, oldest first.
func (s *Sessions) History(userID string) []Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	out := make([]Exchange, len(u.history))
	copy(out, u.history)
	return out
}

// HistoryContext renders the retained exchanges as a prompt context block.
func (s *Sessions) HistoryContext(userID string) string {
	exchanges := s.History(userID)
	if len(exchanges) == 0 {
		return ""
	}
	var b strings.Builder
	for _, e := range exchanges {
		b.WriteString("User: " + e.Input + "\n")
		b.WriteString("Bot: " + e.Reply + "\n")
	}
	return b.String()
}

// Reset removes the user's record entirely; the next message starts fresh at
// the initial state.
func (s *Sessions) Reset(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
}

// Count returns the number of users with a session record.
func (s *Sessions) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}
