// Package conversation implements the static conversation definition and the
// resolver that turns (user, raw input) into the next outbound message.
//
// The definition is loaded once at startup, validated for integrity, and
// treated as read-only for the process lifetime. Reload requires a restart.
package conversation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/egxadev/wa-webhook/internal/models"
	"gopkg.in/yaml.v3"
)

// StateKind is the renderable kind of a conversation state.
type StateKind string

const (
	KindText   StateKind = "text"
	KindButton StateKind = "button"
	KindList   StateKind = "list"
	KindAI     StateKind = "ai"
)

// FormTargetPrefix marks a transition target that starts a form session
// instead of entering a state. The suffix names the form type.
const FormTargetPrefix = "form:"

// TransitionTable maps lower-cased literal inputs to target state ids while
// preserving the declaration order of the source document. Order matters:
// partial matching resolves ties by declaration order.
type TransitionTable struct {
	keys    []string
	targets map[string]string
}

// Get returns the target for an exact key match.
func (t *TransitionTable) Get(key string) (string, bool) {
	if t.targets == nil {
		return "", false
	}
	target, ok := t.targets[key]
	return target, ok
}

// Keys returns the keys in declaration order. The slice is shared; callers
// must not mutate it.
func (t *TransitionTable) Keys() []string {
	return t.keys
}

// Len returns the number of entries.
func (t *TransitionTable) Len() int {
	return len(t.keys)
}

func (t *TransitionTable) add(key, target string) {
	key = strings.ToLower(strings.TrimSpace(key))
	if t.targets == nil {
		t.targets = make(map[string]string)
	}
	if _, exists := t.targets[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.targets[key] = target
}

// UnmarshalJSON decodes a JSON object token by token so key order survives.
func (t *TransitionTable) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read transition table: %w", err)
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("transition table must be an object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read transition key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("transition key must be a string, got %v", keyTok)
		}
		var target string
		if err := dec.Decode(&target); err != nil {
			return fmt.Errorf("failed to read transition target for %q: %w", key, err)
		}
		t.add(key, target)
	}
	return nil
}

// UnmarshalYAML decodes a YAML mapping node preserving key order.
func (t *TransitionTable) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("transition table must be a mapping, got kind %d", node.Kind)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		t.add(node.Content[i].Value, node.Content[i+1].Value)
	}
	return nil
}

// State is a validated node in the conversation graph. For text, button and
// list kinds Message holds the prebuilt outbound payload; for the ai kind
// AIContext and AIFallback drive generation instead.
type State struct {
	ID              string
	Kind            StateKind
	Message         models.Message
	AIContext       string
	AIFallback      string
	Transitions     TransitionTable
	Fallback        string
	EndConversation bool
}

// Definition is the validated, immutable conversation graph.
type Definition struct {
	Version          string
	Description      string
	InitialState     string
	Keywords         TransitionTable
	UnknownInputText string
	ErrorText        string

	states map[string]*State
}

// State returns the state with the given id.
func (d *Definition) State(id string) (*State, bool) {
	s, ok := d.states[id]
	return s, ok
}

// StateCount returns the number of states in the graph.
func (d *Definition) StateCount() int {
	return len(d.states)
}

// rawDefinition mirrors the on-disk document format.
type rawDefinition struct {
	Version           string              `json:"version" yaml:"version"`
	Description       string              `json:"description" yaml:"description"`
	InitialState      string              `json:"initial_state" yaml:"initial_state"`
	States            map[string]rawState `json:"states" yaml:"states"`
	Keywords          TransitionTable     `json:"keywords" yaml:"keywords"`
	FallbackResponses rawFallbacks        `json:"fallback_responses" yaml:"fallback_responses"`
}

type rawState struct {
	Type            string          `json:"type" yaml:"type"`
	Message         any             `json:"message" yaml:"message"`
	Transitions     TransitionTable `json:"transitions" yaml:"transitions"`
	Fallback        string          `json:"fallback" yaml:"fallback"`
	EndConversation bool            `json:"end_conversation" yaml:"end_conversation"`
}

type rawFallbacks struct {
	UnknownInput string `json:"unknown_input" yaml:"unknown_input"`
	Error        string `json:"error" yaml:"error"`
}

// build validates the raw document and compiles it into a Definition.
// Integrity violations (dangling targets, malformed payloads, platform limit
// breaches) are fatal here so they can never surface at runtime.
func build(raw rawDefinition) (*Definition, error) {
	if raw.InitialState == "" {
		return nil, fmt.Errorf("definition missing initial_state")
	}
	if len(raw.States) == 0 {
		return nil, fmt.Errorf("definition has no states")
	}
	if _, ok := raw.States[raw.InitialState]; !ok {
		return nil, fmt.Errorf("initial_state %q does not exist", raw.InitialState)
	}
	if raw.FallbackResponses.UnknownInput == "" || raw.FallbackResponses.Error == "" {
		return nil, fmt.Errorf("definition missing fallback_responses.unknown_input or .error")
	}

	def := &Definition{
		Version:          raw.Version,
		Description:      raw.Description,
		InitialState:     raw.InitialState,
		Keywords:         raw.Keywords,
		UnknownInputText: raw.FallbackResponses.UnknownInput,
		ErrorText:        raw.FallbackResponses.Error,
		states:           make(map[string]*State, len(raw.States)),
	}

	for id, rs := range raw.States {
		state, err := buildState(id, rs)
		if err != nil {
			return nil, fmt.Errorf("state %q: %w", id, err)
		}
		def.states[id] = state
	}

	// Reference integrity across transitions, fallbacks and keywords.
	for id, state := range def.states {
		for _, key := range state.Transitions.Keys() {
			target, _ := state.Transitions.Get(key)
			if err := checkTarget(def, target); err != nil {
				return nil, fmt.Errorf("state %q transition %q: %w", id, key, err)
			}
		}
		if state.Fallback != "" {
			if err := checkTarget(def, state.Fallback); err != nil {
				return nil, fmt.Errorf("state %q fallback: %w", id, err)
			}
		}
	}
	for _, key := range def.Keywords.Keys() {
		target, _ := def.Keywords.Get(key)
		if err := checkTarget(def, target); err != nil {
			return nil, fmt.Errorf("keyword %q: %w", key, err)
		}
	}

	return def, nil
}

func checkTarget(def *Definition, target string) error {
	if strings.HasPrefix(target, FormTargetPrefix) {
		if target == FormTargetPrefix {
			return fmt.Errorf("form target missing form type")
		}
		return nil
	}
	if _, ok := def.states[target]; !ok {
		return fmt.Errorf("target %q does not exist", target)
	}
	return nil
}

func buildState(id string, rs rawState) (*State, error) {
	kind := StateKind(rs.Type)
	state := &State{
		ID:              id,
		Kind:            kind,
		Transitions:     rs.Transitions,
		Fallback:        rs.Fallback,
		EndConversation: rs.EndConversation,
	}

	switch kind {
	case KindText, KindButton, KindList:
		msg, err := translateMessage(kind, rs.Message)
		if err != nil {
			return nil, err
		}
		if err := msg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid message payload: %w", err)
		}
		state.Message = msg
	case KindAI:
		fallback, context, err := translateAIPayload(rs.Message)
		if err != nil {
			return nil, err
		}
		state.AIFallback = fallback
		state.AIContext = context
	default:
		return nil, fmt.Errorf("unknown state type %q", rs.Type)
	}

	return state, nil
}

// translateMessage converts the untyped document payload into a validated
// outbound message. An unrecognized shape is a load-time error, never a
// runtime surprise.
func translateMessage(kind StateKind, payload any) (models.Message, error) {
	switch kind {
	case KindText:
		body, ok := payload.(string)
		if !ok {
			return models.Message{}, fmt.Errorf("text payload must be a string, got %T", payload)
		}
		return models.NewTextMessage(body), nil

	case KindButton:
		m, ok := payload.(map[string]any)
		if !ok {
			return models.Message{}, fmt.Errorf("button payload must be a mapping, got %T", payload)
		}
		body, _ := m["body"].(string)
		rawButtons, _ := m["buttons"].([]any)
		buttons := make([]models.Button, 0, len(rawButtons))
		for i, rb := range rawButtons {
			bm, ok := rb.(map[string]any)
			if !ok {
				return models.Message{}, fmt.Errorf("button %d must be a mapping, got %T", i, rb)
			}
			btnID, _ := bm["id"].(string)
			title, _ := bm["title"].(string)
			buttons = append(buttons, models.Button{ID: btnID, Title: title})
		}
		return models.NewButtonMessage(body, buttons), nil

	case KindList:
		m, ok := payload.(map[string]any)
		if !ok {
			return models.Message{}, fmt.Errorf("list payload must be a mapping, got %T", payload)
		}
		body, _ := m["body"].(string)
		buttonLabel, _ := m["button"].(string)
		rawSections, _ := m["sections"].([]any)
		sections := make([]models.ListSection, 0, len(rawSections))
		for i, rsec := range rawSections {
			sm, ok := rsec.(map[string]any)
			if !ok {
				return models.Message{}, fmt.Errorf("section %d must be a mapping, got %T", i, rsec)
			}
			title, _ := sm["title"].(string)
			rawRows, _ := sm["rows"].([]any)
			rows := make([]models.ListRow, 0, len(rawRows))
			for j, rr := range rawRows {
				rm, ok := rr.(map[string]any)
				if !ok {
					return models.Message{}, fmt.Errorf("section %d row %d must be a mapping, got %T", i, j, rr)
				}
				rowID, _ := rm["id"].(string)
				rowTitle, _ := rm["title"].(string)
				desc, _ := rm["description"].(string)
				rows = append(rows, models.ListRow{ID: rowID, Title: rowTitle, Description: desc})
			}
			sections = append(sections, models.ListSection{Title: title, Rows: rows})
		}
		return models.NewListMessage(body, buttonLabel, sections), nil

	default:
		return models.Message{}, fmt.Errorf("unknown message kind %q", kind)
	}
}

// translateAIPayload accepts either a plain string (canned fallback text) or
// a mapping with "fallback" and optional "context" keys.
func translateAIPayload(payload any) (fallback, context string, err error) {
	switch v := payload.(type) {
	case string:
		fallback = v
	case map[string]any:
		fallback, _ = v["fallback"].(string)
		context, _ = v["context"].(string)
	default:
		return "", "", fmt.Errorf("ai payload must be a string or mapping, got %T", payload)
	}
	if fallback == "" {
		return "", "", fmt.Errorf("ai payload missing fallback text")
	}
	return fallback, context, nil
}
