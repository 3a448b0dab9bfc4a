package conversation

import (
	"strings"
	"testing"
)

const validJSON = `{
  "version": "1.0.0",
  "description": "test tree",
  "initial_state": "start",
  "states": {
    "start": {
      "type": "button",
      "message": {
        "body": "pilih",
        "buttons": [
          {"id": "a", "title": "Opsi A"},
          {"id": "b", "title": "Opsi B"}
        ]
      },
      "transitions": {"opsi a": "detail", "opsi b": "start"}
    },
    "detail": {
      "type": "text",
      "message": "detail produk",
      "transitions": {"kembali": "start", "beli": "form:purchase_inquiry"},
      "fallback": "start"
    },
    "listing": {
      "type": "list",
      "message": {
        "body": "daftar",
        "button": "Lihat",
        "sections": [
          {"title": "S", "rows": [{"id": "r1", "title": "Baris 1", "description": "d"}]}
        ]
      },
      "transitions": {"baris 1": "detail"}
    },
    "bebas": {
      "type": "ai",
      "message": {"fallback": "maaf, coba lagi", "context": "produk kesehatan"},
      "transitions": {}
    },
    "tutup": {
      "type": "text",
      "message": "sampai jumpa",
      "transitions": {},
      "end_conversation": true
    }
  },
  "keywords": {"menu": "start", "bantuan": "start"},
  "fallback_responses": {
    "unknown_input": "tidak paham",
    "error": "ada error"
  }
}`

func TestParseJSONValid(t *testing.T) {
	def, err := ParseJSON([]byte(validJSON))
	if err != nil {
		t.Fatalf("expected valid definition, got %v", err)
	}
	if def.Version != "1.0.0" || def.InitialState != "start" {
		t.Errorf("unexpected metadata: %s / %s", def.Version, def.InitialState)
	}
	if def.StateCount() != 5 {
		t.Errorf("expected 5 states, got %d", def.StateCount())
	}

	state, ok := def.State("start")
	if !ok {
		t.Fatal("expected start state")
	}
	if state.Kind != KindButton || len(state.Message.Interactive.Buttons) != 2 {
		t.Errorf("unexpected start state payload: %+v", state.Message)
	}
	if target, ok := state.Transitions.Get("opsi a"); !ok || target != "detail" {
		t.Errorf("unexpected transition target: %q", target)
	}

	ai, _ := def.State("bebas")
	if ai.Kind != KindAI || ai.AIFallback != "maaf, coba lagi" || ai.AIContext != "produk kesehatan" {
		t.Errorf("unexpected ai state: %+v", ai)
	}

	end, _ := def.State("tutup")
	if !end.EndConversation {
		t.Error("expected end_conversation flag")
	}
}

func TestParseJSONPreservesTransitionOrder(t *testing.T) {
	doc := `{
	  "version": "1", "initial_state": "s",
	  "states": {
	    "s": {"type": "text", "message": "m",
	      "transitions": {"Zebra": "s", "apple": "s", "Mango": "s"}}
	  },
	  "keywords": {},
	  "fallback_responses": {"unknown_input": "u", "error": "e"}
	}`
	def, err := ParseJSON([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state, _ := def.State("s")
	keys := state.Transitions.Keys()
	want := []string{"zebra", "apple", "mango"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(keys))
	}
	for i, key := range want {
		if keys[i] != key {
			t.Errorf("key %d: expected %q (declaration order, lower-cased), got %q", i, key, keys[i])
		}
	}
}

func TestParseYAMLPreservesTransitionOrder(t *testing.T) {
	doc := `
version: "1"
initial_state: s
states:
  s:
    type: text
    message: m
    transitions:
      Zebra: s
      apple: s
      Mango: s
keywords: {}
fallback_responses:
  unknown_input: u
  error: e
`
	def, err := ParseYAML([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state, _ := def.State("s")
	keys := state.Transitions.Keys()
	want := []string{"zebra", "apple", "mango"}
	for i, key := range want {
		if keys[i] != key {
			t.Errorf("key %d: expected %q, got %q", i, key, keys[i])
		}
	}
}

func TestParseJSONIntegrityErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			"dangling transition",
			`{"version":"1","initial_state":"s","states":{"s":{"type":"text","message":"m","transitions":{"x":"nope"}}},"keywords":{},"fallback_responses":{"unknown_input":"u","error":"e"}}`,
			"does not exist",
		},
		{
			"dangling fallback",
			`{"version":"1","initial_state":"s","states":{"s":{"type":"text","message":"m","transitions":{},"fallback":"nope"}},"keywords":{},"fallback_responses":{"unknown_input":"u","error":"e"}}`,
			"fallback",
		},
		{
			"dangling keyword",
			`{"version":"1","initial_state":"s","states":{"s":{"type":"text","message":"m","transitions":{}}},"keywords":{"menu":"nope"},"fallback_responses":{"unknown_input":"u","error":"e"}}`,
			"keyword",
		},
		{
			"missing initial state",
			`{"version":"1","initial_state":"nope","states":{"s":{"type":"text","message":"m","transitions":{}}},"keywords":{},"fallback_responses":{"unknown_input":"u","error":"e"}}`,
			"initial_state",
		},
		{
			"missing fallback responses",
			`{"version":"1","initial_state":"s","states":{"s":{"type":"text","message":"m","transitions":{}}},"keywords":{},"fallback_responses":{"unknown_input":"","error":""}}`,
			"fallback_responses",
		},
		{
			"unknown state type",
			`{"version":"1","initial_state":"s","states":{"s":{"type":"video","message":"m","transitions":{}}},"keywords":{},"fallback_responses":{"unknown_input":"u","error":"e"}}`,
			"unknown state type",
		},
		{
			"too many buttons",
			`{"version":"1","initial_state":"s","states":{"s":{"type":"button","message":{"body":"b","buttons":[{"id":"1","title":"1"},{"id":"2","title":"2"},{"id":"3","title":"3"},{"id":"4","title":"4"}]},"transitions":{}}},"keywords":{},"fallback_responses":{"unknown_input":"u","error":"e"}}`,
			"button",
		},
		{
			"bare form target",
			`{"version":"1","initial_state":"s","states":{"s":{"type":"text","message":"m","transitions":{"x":"form:"}}},"keywords":{},"fallback_responses":{"unknown_input":"u","error":"e"}}`,
			"form target",
		},
		{
			"ai payload without fallback",
			`{"version":"1","initial_state":"s","states":{"s":{"type":"ai","message":{"context":"c"},"transitions":{}}},"keywords":{},"fallback_responses":{"unknown_input":"u","error":"e"}}`,
			"fallback text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected load-time error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadShippedDefinition(t *testing.T) {
	def, err := LoadDefinition("../../conversation-tree.json")
	if err != nil {
		t.Fatalf("shipped definition must load cleanly: %v", err)
	}
	if def.InitialState != "greeting" {
		t.Errorf("unexpected initial state %q", def.InitialState)
	}
	if _, ok := def.Keywords.Get("menu"); !ok {
		t.Error("expected menu keyword")
	}
	if _, ok := def.Keywords.Get("bantuan"); !ok {
		t.Error("expected bantuan keyword")
	}
	for _, id := range []string{"silverstream_faq", "stimel_faq", "akusehat_faq"} {
		if _, ok := def.State(id); !ok {
			t.Errorf("expected FAQ-enabled state %q", id)
		}
	}
}
