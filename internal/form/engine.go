package form

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/egxadev/wa-webhook/internal/models"
	"github.com/egxadev/wa-webhook/internal/util"
	"github.com/looplab/fsm"
)

// DefaultSessionTimeout is the idle timeout after which a form session is
// treated as absent.
const DefaultSessionTimeout = 10 * time.Minute

// Session lifecycle states. Collecting is the only non-terminal state;
// reaching any other state removes the session.
const (
	StateCollecting = "collecting"
	StateCompleted  = "completed"
	StateCancelled  = "cancelled"
	StateExpired    = "expired"
)

// Session lifecycle events.
const (
	EventComplete = "complete"
	EventCancel   = "cancel"
	EventExpire   = "expire"
)

// Canned engine responses.
const (
	expiredText   = "Session kamu udah expired nih 😅\n\nKetik *menu* buat mulai lagi ya!"
	cancelledText = "Oke, form dibatalin ya! 👌\n\nKetik *menu* kalau mau mulai lagi."
	invalidText   = "Input ga valid nih, coba lagi ya!"
)

var cancelTokens = map[string]struct{}{
	"batal":  {},
	"cancel": {},
	"stop":   {},
}

// IsCancelToken reports whether input is a form cancellation command.
func IsCancelToken(input string) bool {
	_, ok := cancelTokens[strings.ToLower(strings.TrimSpace(input))]
	return ok
}

// Session is an in-flight form for one user. Step is always a valid index
// into the form's field list while the session exists.
type Session struct {
	UserID         string
	FormType       string
	Step           int
	Values         map[string]string
	StartedAt      time.Time
	LastActivityAt time.Time

	lifecycle *fsm.FSM
}

// State returns the session's lifecycle state.
func (s *Session) State() string {
	return s.lifecycle.Current()
}

func newLifecycle() *fsm.FSM {
	return fsm.NewFSM(
		StateCollecting,
		fsm.Events{
			{Name: EventComplete, Src: []string{StateCollecting}, Dst: StateCompleted},
			{Name: EventCancel, Src: []string{StateCollecting}, Dst: StateCancelled},
			{Name: EventExpire, Src: []string{StateCollecting}, Dst: StateExpired},
		},
		fsm.Callbacks{},
	)
}

// InquirySink receives completed purchase-inquiry submissions.
type InquirySink interface {
	SaveInquiry(inquiry models.PurchaseInquiry) error
}

// Engine manages form sessions keyed by user id. At most one session exists
// per user; starting a new form silently replaces any prior session.
type Engine struct {
	locks    *util.KeyedMutex
	mu       sync.Mutex // guards the sessions map
	sessions map[string]*Session
	timeout  time.Duration
	sink     InquirySink
	now      func() time.Time
}

// Option defines a configuration option for the Engine.
type Option func(*Engine)

// WithTimeout overrides the idle session timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithInquirySink sets the sink that receives completed submissions.
func WithInquirySink(sink InquirySink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithClock overrides the time source (used in tests).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates a form session engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		locks:    util.NewKeyedMutex(),
		sessions: make(map[string]*Session),
		timeout:  DefaultSessionTimeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartForm creates a new session at step 0 for userID, replacing any prior
// session, and returns the first field's prompt prefixed with the form's
// acknowledgment.
func (e *Engine) StartForm(userID, formType string) (models.Message, bool) {
	def, ok := Lookup(formType)
	if !ok {
		slog.Error("Engine StartForm unknown form type", "userID", userID, "formType", formType)
		return models.Message{}, false
	}

	unlock := e.locks.Lock(userID)
	defer unlock()

	now := e.now()
	session := &Session{
		UserID:         userID,
		FormType:       formType,
		Step:           0,
		Values:         make(map[string]string),
		StartedAt:      now,
		LastActivityAt: now,
		lifecycle:      newLifecycle(),
	}

	e.mu.Lock()
	e.sessions[userID] = session
	e.mu.Unlock()

	slog.Info("Engine form session started", "userID", userID, "formType", formType)
	return models.NewTextMessage(def.Ack + "\n\n" + def.Fields[0].Prompt), true
}

// HasActiveForm reports whether userID has a non-expired session. A stale
// session found here is lazily removed; this check is the only place expiry
// is enforced, the periodic sweep merely bounds memory.
func (e *Engine) HasActiveForm(userID string) bool {
	unlock := e.locks.Lock(userID)
	defer unlock()
	return e.activeSessionLocked(userID) != nil
}

// activeSessionLocked returns the live session for userID, expiring it in
// place when the idle timeout has elapsed. Caller must hold the user lock.
func (e *Engine) activeSessionLocked(userID string) *Session {
	e.mu.Lock()
	session, ok := e.sessions[userID]
	e.mu.Unlock()
	if !ok {
		return nil
	}

	if e.now().Sub(session.LastActivityAt) > e.timeout {
		if err := session.lifecycle.Event(context.Background(), EventExpire); err != nil {
			slog.Debug("Engine lifecycle expire event failed", "error", err, "userID", userID)
		}
		e.mu.Lock()
		delete(e.sessions, userID)
		e.mu.Unlock()
		slog.Info("Engine form session expired", "userID", userID, "formType", session.FormType)
		return nil
	}
	return session
}

// ProcessInput advances the session for userID with the given raw input and
// returns the next outbound message. It never fails: missing or expired
// sessions yield a canned restart message.
func (e *Engine) ProcessInput(ctx context.Context, userID, input string) models.Message {
	unlock := e.locks.Lock(userID)
	defer unlock()

	session := e.activeSessionLocked(userID)
	if session == nil {
		return models.NewTextMessage(expiredText)
	}

	if IsCancelToken(input) {
		if err := session.lifecycle.Event(ctx, EventCancel); err != nil {
			slog.Debug("Engine lifecycle cancel event failed", "error", err, "userID", userID)
		}
		e.mu.Lock()
		delete(e.sessions, userID)
		e.mu.Unlock()
		slog.Info("Engine form session cancelled", "userID", userID, "formType", session.FormType)
		return models.NewTextMessage(cancelledText)
	}

	def, ok := Lookup(session.FormType)
	if !ok {
		// Definition disappeared out from under a live session; treat as expired.
		e.mu.Lock()
		delete(e.sessions, userID)
		e.mu.Unlock()
		slog.Error("Engine session references unknown form type", "userID", userID, "formType", session.FormType)
		return models.NewTextMessage(expiredText)
	}

	field := def.Fields[session.Step]
	if field.Validate != nil && !field.Validate(input) {
		// No progress and no activity refresh; the timeout clock keeps running.
		errText := field.ErrorText
		if errText == "" {
			errText = invalidText
		}
		return models.NewTextMessage(errText)
	}

	value := input
	if field.Normalize != nil {
		value = field.Normalize(input)
	}
	session.Values[field.Name] = value
	session.Step++
	session.LastActivityAt = e.now()

	if session.Step >= len(def.Fields) {
		return e.completeLocked(ctx, session)
	}

	return models.NewTextMessage("Oke! ✅\n\n" + def.Fields[session.Step].Prompt)
}

// completeLocked finishes the session: persists the inquiry, fires the
// lifecycle event and removes the session. Caller must hold the user lock.
func (e *Engine) completeLocked(ctx context.Context, session *Session) models.Message {
	if e.sink != nil {
		if err := e.sink.SaveInquiry(e.buildInquiry(session)); err != nil {
			// Delivery of the routing message matters more than the lead record.
			slog.Error("Engine failed to persist inquiry", "error", err, "userID", session.UserID)
		}
	}

	if err := session.lifecycle.Event(ctx, EventComplete); err != nil {
		slog.Debug("Engine lifecycle complete event failed", "error", err, "userID", session.UserID)
	}

	e.mu.Lock()
	delete(e.sessions, session.UserID)
	e.mu.Unlock()

	slog.Info("Engine form session completed", "userID", session.UserID, "formType", session.FormType)
	return models.NewTextMessage(completionText(session.Values))
}

func (e *Engine) buildInquiry(session *Session) models.PurchaseInquiry {
	age, _ := strconv.Atoi(session.Values[FieldAge])
	return models.PurchaseInquiry{
		RoomID:    session.UserID,
		BuyerType: session.Values[FieldBuyerType],
		Name:      session.Values[FieldName],
		Age:       age,
		Gender:    session.Values[FieldGender],
		City:      session.Values[FieldCity],
		Purpose:   session.Values[FieldPurpose],
		CreatedAt: e.now(),
	}
}

// CancelForm removes the user's session if one exists. This is the
// administrative path; conversational cancellation goes through ProcessInput.
func (e *Engine) CancelForm(userID string) bool {
	unlock := e.locks.Lock(userID)
	defer unlock()

	e.mu.Lock()
	session, ok := e.sessions[userID]
	if ok {
		delete(e.sessions, userID)
	}
	e.mu.Unlock()
	if !ok {
		return false
	}

	if err := session.lifecycle.Event(context.Background(), EventCancel); err != nil {
		slog.Debug("Engine lifecycle cancel event failed", "error", err, "userID", userID)
	}
	slog.Info("Engine form session cancelled", "userID", userID, "formType", session.FormType)
	return true
}

// CleanupExpired removes every session whose idle timeout has elapsed and
// returns the number removed. Eviction takes the same per-user lock as
// ProcessInput so the sweep never races an in-flight answer.
func (e *Engine) CleanupExpired() int {
	e.mu.Lock()
	userIDs := make([]string, 0, len(e.sessions))
	for userID := range e.sessions {
		userIDs = append(userIDs, userID)
	}
	e.mu.Unlock()

	removed := 0
	for _, userID := range userIDs {
		unlock := e.locks.Lock(userID)
		if e.activeSessionLocked(userID) == nil {
			removed++
		}
		unlock()
	}
	if removed > 0 {
		slog.Debug("Engine sweep evicted expired sessions", "count", removed)
	}
	return removed
}

// ActiveSessions returns the number of sessions currently held, including
// any that have expired but not yet been observed.
func (e *Engine) ActiveSessions() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.sessions)
}

// SessionSnapshot returns a copy of the user's session for inspection. It
// takes the same per-user lock as ProcessInput so the copy never observes a
// half-applied answer.
func (e *Engine) SessionSnapshot(userID string) (Session, bool) {
	unlock := e.locks.Lock(userID)
	defer unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	session, ok := e.sessions[userID]
	if !ok {
		return Session{}, false
	}
	snapshot := *session
	snapshot.Values = make(map[string]string, len(session.Values))
	for k, v := range session.Values {
		snapshot.Values[k] = v
	}
	return snapshot, true
}

// completionText synthesizes the closing message, routing on the collected
// purpose and buyer type.
func completionText(values map[string]string) string {
	var b strings.Builder
	b.WriteString("Terima kasih " + values[FieldName] + "! 🙏\n\nData kamu udah aku catat:\n")
	b.WriteString("• Tipe: " + values[FieldBuyerType] + "\n")
	b.WriteString("• Umur: " + values[FieldAge] + " tahun\n")
	b.WriteString("• Kota: " + values[FieldCity] + "\n\n")

	purpose := values[FieldPurpose]
	city := values[FieldCity]
	switch {
	case purpose == PurposeOnline:
		b.WriteString("Untuk pembelian online, kamu bisa langsung ke:\n")
		b.WriteString("🛒 Web: www.example.com/shop\n\n")
		b.WriteString("Atau hubungi CS kami:\n")
		b.WriteString("📞 WhatsApp: +62 812-3456-7890")
	case purpose == PurposePartnership:
		b.WriteString("Untuk kerjasama bisnis, silakan hubungi:\n")
		b.WriteString("📞 WhatsApp: +62 811-9876-5432\n")
		b.WriteString("📧 Email: partnership@example.com\n\n")
		b.WriteString("Tim kita akan senang diskusi sama kamu! 🤝")
	case purpose == PurposeEndUser && values[FieldBuyerType] == "individu":
		b.WriteString("Untuk kebutuhan pribadi, hubungi reseller terdekat:\n")
		b.WriteString("📞 WhatsApp: +62 812-3456-7890\n\n")
		b.WriteString("Sebutkan kota kamu (" + city + ") buat diarahkan ke reseller setempat ya! 😊")
	case purpose == PurposeBulk:
		b.WriteString("Untuk pembelian dalam jumlah banyak, hubungi distributor:\n")
		b.WriteString("📞 WhatsApp: +62 812-3456-7890\n\n")
		b.WriteString("Sebutkan kota kamu (" + city + ") buat info harga grosir! 💼")
	default:
		b.WriteString("Silakan hubungi CS kami untuk info lebih lanjut:\n")
		b.WriteString("📞 WhatsApp: +62 812-3456-7890")
	}

	b.WriteString("\n\nTerima kasih! Ketik *menu* kalau butuh info lainnya 😊")
	return b.String()
}
