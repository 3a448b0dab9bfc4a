package faq

import (
	"log/slog"
	"math/rand/v2"
	"sync"
)

// DefaultBatchSize is the number of FAQs offered per rotation batch.
const DefaultBatchSize = 3

// userHistory holds the asked-sets for a single user. Its mutex serializes
// read-modify-write cycles per user without blocking other users.
type userHistory struct {
	mu       sync.Mutex
	products map[Product]map[string]struct{}
}

// Tracker records which FAQ entries each user has already seen per product
// and serves randomized batches of unseen questions. In-memory only; history
// is bounded by the small static corpus per product.
type Tracker struct {
	mu    sync.Mutex
	users map[string]*userHistory
}

// NewTracker creates an empty rotation tracker.
func NewTracker() *Tracker {
	return &Tracker{users: make(map[string]*userHistory)}
}

// user returns the history record for userID, creating it if needed.
func (t *Tracker) user(userID string) *userHistory {
	t.mu.Lock()
	defer t.mu.Unlock()
	h, ok := t.users[userID]
	if !ok {
		h = &userHistory{products: make(map[Product]map[string]struct{})}
		t.users[userID] = h
	}
	return h
}

// GetRandomFAQs returns count questions drawn without replacement from those
// not yet marked asked for (userID, product). When fewer than count remain
// unseen, the asked-set for that pair is cleared first so a full batch is
// always returned.
func (t *Tracker) GetRandomFAQs(userID string, product Product, count int) []Question {
	all := ByProduct(product)
	if len(all) == 0 {
		return nil
	}
	if count > len(all) {
		count = len(all)
	}

	h := t.user(userID)
	h.mu.Lock()
	defer h.mu.Unlock()

	asked := h.products[product]
	available := make([]Question, 0, len(all))
	for _, q := range all {
		if _, seen := asked[q.ID]; !seen {
			available = append(available, q)
		}
	}

	if len(available) < count {
		slog.Debug("Tracker exhausted FAQs, resetting history", "userID", userID, "product", product)
		delete(h.products, product)
		available = append(available[:0:0], all...)
	}

	rand.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})
	return available[:count]
}

// MarkAsAsked adds faqID to the asked-set for (userID, product). Idempotent.
func (t *Tracker) MarkAsAsked(userID string, product Product, faqID string) {
	h := t.user(userID)
	h.mu.Lock()
	defer h.mu.Unlock()

	asked, ok := h.products[product]
	if !ok {
		asked = make(map[string]struct{})
		h.products[product] = asked
	}
	asked[faqID] = struct{}{}
	slog.Debug("Tracker marked FAQ as asked", "userID", userID, "product", product, "faqID", faqID)
}

// ResetHistory clears the asked-set for (userID, product).
func (t *Tracker) ResetHistory(userID string, product Product) {
	h := t.user(userID)
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.products, product)
}

// ResetAllHistory clears every asked-set for userID.
func (t *Tracker) ResetAllHistory(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.users, userID)
}

// Stats reports corpus size, asked count and remaining count for a pair.
func (t *Tracker) Stats(userID string, product Product) (total, asked, remaining int) {
	all := ByProduct(product)
	h := t.user(userID)
	h.mu.Lock()
	defer h.mu.Unlock()
	asked = len(h.products[product])
	return len(all), asked, len(all) - asked
}
