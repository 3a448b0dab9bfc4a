package conversation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/egxadev/wa-webhook/internal/faq"
	"github.com/egxadev/wa-webhook/internal/form"
	"github.com/egxadev/wa-webhook/internal/models"
	"github.com/egxadev/wa-webhook/internal/util"
)

// Fixed texts and row ids used by the dynamic FAQ list.
const (
	faqPrompt       = "Mau tau yang lain? Pilih pertanyaan di bawah ya! 👇"
	faqListButton   = "Lihat Pertanyaan"
	faqSectionTitle = "Pertanyaan Lainnya"

	backRowID     = "faq_back"
	mainMenuRowID = "main_menu"
)

var backTokens = map[string]struct{}{
	"kembali": {},
	"back":    {},
	backRowID: {},
}

// Generator produces a free-text reply for AI-kind states. Implementations
// may fail; the resolver then falls back to the state's canned text.
type Generator interface {
	GenerateReply(ctx context.Context, input, promptContext string) (string, error)
}

// FAQState binds a state id to the product whose FAQ rotation it serves.
// Entering such a state renders a dynamic question list instead of the
// state's static payload.
type FAQState struct {
	Product faq.Product
	Intro   string
}

// Resolver is the orchestrator: given (user, raw input) it consults the
// active form session, FAQ interception, and the state graph in a fixed
// order and always produces a renderable outbound message.
type Resolver struct {
	def          *Definition
	sessions     *Sessions
	tracker      *faq.Tracker
	forms        *form.Engine
	generator    Generator
	faqStates    map[string]FAQState
	formTriggers map[string]string
	locks        *util.KeyedMutex
}

// Option defines a configuration option for the Resolver.
type Option func(*Resolver)

// WithGenerator sets the free-text generator used by AI-kind states.
func WithGenerator(g Generator) Option {
	return func(r *Resolver) { r.generator = g }
}

// WithFAQStates replaces the state-id to product side table.
func WithFAQStates(states map[string]FAQState) Option {
	return func(r *Resolver) { r.faqStates = states }
}

// WithFormTriggers replaces the form-start token table. Keys must be
// lower-cased.
func WithFormTriggers(triggers map[string]string) Option {
	return func(r *Resolver) { r.formTriggers = triggers }
}

// NewResolver creates a resolver over a validated definition. The form
// engine and FAQ tracker are required collaborators.
func NewResolver(def *Definition, forms *form.Engine, tracker *faq.Tracker, opts ...Option) *Resolver {
	r := &Resolver{
		def:          def,
		sessions:     NewSessions(def.InitialState),
		tracker:      tracker,
		forms:        forms,
		faqStates:    defaultFAQStates(),
		formTriggers: defaultFormTriggers(),
		locks:        util.NewKeyedMutex(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func defaultFAQStates() map[string]FAQState {
	return map[string]FAQState{
		"silverstream_faq": {Product: faq.ProductSilverStream, Intro: "Pertanyaan yang sering ditanyain soal SilverStream nih! 👇"},
		"stimel_faq":       {Product: faq.ProductStimel, Intro: "Pertanyaan yang sering ditanyain soal Stimel-02 nih! 👇"},
		"akusehat_faq":     {Product: faq.ProductAkuSehat, Intro: "Pertanyaan yang sering ditanyain soal AkuSehat nih! 👇"},
	}
}

func defaultFormTriggers() map[string]string {
	return map[string]string{
		"beli":     form.TypePurchaseInquiry,
		"mau beli": form.TypePurchaseInquiry,
	}
}

// normalizeInput keeps only the first line (list-row selections echo the row
// description on following lines), trims and lower-cases.
func normalizeInput(raw string) string {
	line := raw
	if i := strings.IndexAny(raw, "\r\n"); i >= 0 {
		line = raw[:i]
	}
	return strings.ToLower(strings.TrimSpace(line))
}

func isBackToken(input string) bool {
	_, ok := backTokens[input]
	return ok
}

// Resolve advances the user's conversation with the given raw input and
// returns the outbound reply. It never fails: invariant violations degrade
// to the definition's internal-error text.
func (r *Resolver) Resolve(ctx context.Context, userID, rawInput string) models.Message {
	unlock := r.locks.Lock(userID)
	defer unlock()

	// An active form owns the raw input entirely, menu keywords included.
	if r.forms != nil && r.forms.HasActiveForm(userID) {
		reply := r.forms.ProcessInput(ctx, userID, rawInput)
		r.sessions.AppendExchange(userID, rawInput, replySummary(reply))
		return reply
	}

	input := normalizeInput(rawInput)
	slog.Debug("Resolver resolving input", "userID", userID, "input", input, "state", r.sessions.Current(userID))

	reply := r.resolveNormalized(ctx, userID, input)
	r.sessions.AppendExchange(userID, input, replySummary(reply))
	return reply
}

func (r *Resolver) resolveNormalized(ctx context.Context, userID, input string) models.Message {
	if formType, ok := r.formTriggers[input]; ok {
		return r.startForm(userID, formType)
	}

	currentID := r.sessions.Current(userID)
	current, ok := r.def.State(currentID)
	if !ok {
		slog.Error("Resolver current state missing from definition", "userID", userID, "state", currentID)
		r.sessions.Set(userID, r.def.InitialState)
		return models.NewTextMessage(r.def.ErrorText)
	}

	if target, ok := current.Transitions.Get(input); ok && strings.HasPrefix(target, FormTargetPrefix) {
		return r.startForm(userID, strings.TrimPrefix(target, FormTargetPrefix))
	}

	if target, ok := r.def.Keywords.Get(input); ok {
		return r.enterState(ctx, userID, input, target)
	}

	if isBackToken(input) {
		if prev, ok := r.sessions.TakePreFAQ(userID); ok {
			return r.enterState(ctx, userID, input, prev)
		}
	}

	if reply, ok := r.interceptFAQ(userID, input); ok {
		return reply
	}

	if target, ok := current.Transitions.Get(input); ok {
		return r.enterState(ctx, userID, input, target)
	}

	// Partial match walks keys in declaration order; first hit wins. Empty
	// input would match every key, so it skips straight to the fallback.
	if input != "" {
		for _, key := range current.Transitions.Keys() {
			if strings.Contains(key, input) || strings.Contains(input, key) {
				target, _ := current.Transitions.Get(key)
				return r.enterState(ctx, userID, input, target)
			}
		}
	}

	if current.Fallback != "" {
		return r.enterState(ctx, userID, input, current.Fallback)
	}
	return models.NewTextMessage(r.def.UnknownInputText)
}

// interceptFAQ matches the input against the FAQ corpus by question text,
// then by id convention. On a hit it marks the question asked, draws the
// next batch and renders the answer list.
func (r *Resolver) interceptFAQ(userID, input string) (models.Message, bool) {
	q, product, ok := faq.ByQuestion(input)
	if !ok && strings.HasPrefix(input, faq.IDPrefix) {
		q, product, ok = faq.ByID(input)
	}
	if !ok {
		return models.Message{}, false
	}

	r.sessions.SetPreFAQ(userID, r.sessions.Current(userID))
	r.tracker.MarkAsAsked(userID, product, q.ID)
	batch := r.tracker.GetRandomFAQs(userID, product, faq.DefaultBatchSize)

	slog.Debug("Resolver FAQ answered", "userID", userID, "product", product, "faqID", q.ID)
	return faqListMessage(q.Answer+"\n\n"+faqPrompt, batch), true
}

// enterState applies the transition to stateID and renders its message.
// Form targets start a session, FAQ-enabled states render a dynamic list,
// AI states generate a reply, and a dangling target degrades to the
// internal-error text without moving the user.
func (r *Resolver) enterState(ctx context.Context, userID, input, stateID string) models.Message {
	if strings.HasPrefix(stateID, FormTargetPrefix) {
		return r.startForm(userID, strings.TrimPrefix(stateID, FormTargetPrefix))
	}

	state, ok := r.def.State(stateID)
	if !ok {
		slog.Error("Resolver transition target missing from definition", "userID", userID, "target", stateID)
		return models.NewTextMessage(r.def.ErrorText)
	}

	if fs, isFAQ := r.faqStates[stateID]; isFAQ {
		prev := r.sessions.Current(userID)
		r.sessions.Set(userID, stateID)
		if prev != stateID {
			r.sessions.SetPreFAQ(userID, prev)
		}
		batch := r.tracker.GetRandomFAQs(userID, fs.Product, faq.DefaultBatchSize)
		return faqListMessage(fs.Intro, batch)
	}

	r.sessions.Set(userID, stateID)
	r.sessions.ClearPreFAQ(userID)

	if state.Kind == KindAI {
		return r.generateReply(ctx, userID, input, state)
	}

	if state.EndConversation {
		slog.Info("Resolver conversation ended", "userID", userID, "state", stateID)
		r.sessions.Set(userID, r.def.InitialState)
	}
	return state.Message
}

func (r *Resolver) generateReply(ctx context.Context, userID, input string, state *State) models.Message {
	if r.generator == nil {
		return models.NewTextMessage(state.AIFallback)
	}
	promptContext := state.AIContext
	if history := r.sessions.HistoryContext(userID); history != "" {
		promptContext += "\n\nPercakapan terakhir:\n" + history
	}
	reply, err := r.generator.GenerateReply(ctx, input, promptContext)
	if err != nil {
		slog.Warn("Resolver reply generation failed, using canned text", "error", err, "userID", userID, "state", state.ID)
		return models.NewTextMessage(state.AIFallback)
	}
	return models.NewTextMessage(reply)
}

func (r *Resolver) startForm(userID, formType string) models.Message {
	if r.forms == nil {
		slog.Error("Resolver form trigger fired with no form engine", "userID", userID, "formType", formType)
		return models.NewTextMessage(r.def.ErrorText)
	}
	msg, ok := r.forms.StartForm(userID, formType)
	if !ok {
		return models.NewTextMessage(r.def.ErrorText)
	}
	return msg
}

// faqListMessage renders an FAQ batch as a list: one row per question plus
// the two fixed navigation rows.
func faqListMessage(body string, questions []faq.Question) models.Message {
	rows := make([]models.ListRow, 0, len(questions)+2)
	for _, q := range questions {
		rows = append(rows, models.ListRow{
			ID:          q.ID,
			Title:       models.TruncateTitle(q.Question),
			Description: q.Question,
		})
	}
	rows = append(rows,
		models.ListRow{ID: backRowID, Title: "Kembali", Description: "Balik ke menu sebelumnya"},
		models.ListRow{ID: mainMenuRowID, Title: "Menu Utama", Description: "Balik ke menu awal"},
	)
	sections := []models.ListSection{{Title: faqSectionTitle, Rows: rows}}
	return models.NewListMessage(body, faqListButton, sections)
}

func replySummary(msg models.Message) string {
	if msg.Type == models.MessageTypeText {
		return msg.Text
	}
	if msg.Interactive != nil {
		return msg.Interactive.Body
	}
	return ""
}

// Reset clears every trace of the user: conversation position, any form
// session and the FAQ rotation history.
func (r *Resolver) Reset(userID string) {
	unlock := r.locks.Lock(userID)
	defer unlock()

	r.sessions.Reset(userID)
	if r.forms != nil {
		r.forms.CancelForm(userID)
	}
	r.tracker.ResetAllHistory(userID)
	slog.Info("Resolver reset user", "userID", userID)
}

// Info summarizes the loaded definition for the administrative surface.
type Info struct {
	Version     string `json:"version"`
	Description string `json:"description"`
	StateCount  int    `json:"state_count"`
	ActiveUsers int    `json:"active_users"`
}

// Info returns definition metadata and the live user count.
func (r *Resolver) Info() Info {
	return Info{
		Version:     r.def.Version,
		Description: r.def.Description,
		StateCount:  r.def.StateCount(),
		ActiveUsers: r.sessions.Count(),
	}
}
