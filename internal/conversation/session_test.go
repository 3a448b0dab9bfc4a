package conversation

import (
	"strings"
	"testing"
)

func TestSessionsLazyInitial(t *testing.T) {
	s := NewSessions("greeting")
	if got := s.Current("u1"); got != "greeting" {
		t.Errorf("new user must start at the initial state, got %q", got)
	}

	s.Set("u1", "menu")
	if got := s.Current("u1"); got != "menu" {
		t.Errorf("expected menu, got %q", got)
	}
	if got := s.Current("u2"); got != "greeting" {
		t.Errorf("u2 must be independent, got %q", got)
	}
}

func TestSessionsPreFAQTakeOnce(t *testing.T) {
	s := NewSessions("greeting")
	if _, ok := s.TakePreFAQ("u1"); ok {
		t.Error("no pre-FAQ state recorded yet")
	}

	s.SetPreFAQ("u1", "ss_info")
	got, ok := s.TakePreFAQ("u1")
	if !ok || got != "ss_info" {
		t.Errorf("expected recorded state, got %q ok=%v", got, ok)
	}
	if _, ok := s.TakePreFAQ("u1"); ok {
		t.Error("take must clear the recorded state")
	}
}

func TestSessionsHistoryCapped(t *testing.T) {
	s := NewSessions("greeting")
	for i := 0; i < HistoryLimit+5; i++ {
		s.AppendExchange("u1", "in", "out")
	}
	if got := len(s.History("u1")); got != HistoryLimit {
		t.Errorf("expected history capped at %d, got %d", HistoryLimit, got)
	}
}

func TestSessionsHistoryContext(t *testing.T) {
	s := NewSessions("greeting")
	if got := s.HistoryContext("u1"); got != "" {
		t.Errorf("empty history must render empty, got %q", got)
	}

	s.AppendExchange("u1", "halo", "Halo juga!")
	got := s.HistoryContext("u1")
	if !strings.Contains(got, "User: halo") || !strings.Contains(got, "Bot: Halo juga!") {
		t.Errorf("unexpected context %q", got)
	}
}

func TestSessionsReset(t *testing.T) {
	s := NewSessions("greeting")
	s.Set("u1", "menu")
	s.SetPreFAQ("u1", "ss_info")
	s.AppendExchange("u1", "in", "out")

	s.Reset("u1")
	if got := s.Current("u1"); got != "greeting" {
		t.Errorf("reset must return to the initial state, got %q", got)
	}
	if len(s.History("u1")) != 0 {
		t.Error("reset must clear history")
	}
	if _, ok := s.TakePreFAQ("u1"); ok {
		t.Error("reset must clear the pre-FAQ state")
	}
}

func TestSessionsCount(t *testing.T) {
	s := NewSessions("greeting")
	if s.Count() != 0 {
		t.Error("expected empty store")
	}
	s.Current("u1")
	s.Set("u2", "menu")
	if got := s.Count(); got != 2 {
		t.Errorf("expected 2 sessions, got %d", got)
	}
}
