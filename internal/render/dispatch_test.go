package render

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"
)

func mustJSON(t *testing.T, payload map[string]interface{}) []byte {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return body
}

// TestHandleUnknownEvent tests that an undeclared event type renders
// nothing.
func TestHandleUnknownEvent(t *testing.T) {
	p := NewPipeline(nil)
	body := mustJSON(t, map[string]interface{}{"some": "payload"})

	if lines := p.Handle(body, "application/json", "registry_package", DefaultHookConfig()); lines != nil {
		t.Fatalf("expected no output for unknown event, got %v", lines)
	}
}

// TestHandleMalformedBody tests that an undecodable body renders nothing
// instead of failing.
func TestHandleMalformedBody(t *testing.T) {
	p := NewPipeline(nil)

	if lines := p.Handle([]byte("{not json"), "application/json", "push", DefaultHookConfig()); lines != nil {
		t.Fatalf("expected no output for malformed body, got %v", lines)
	}
	if lines := p.Handle([]byte("no_payload_field=1"), "application/x-www-form-urlencoded", "push", DefaultHookConfig()); lines != nil {
		t.Fatalf("expected no output for form body without payload, got %v", lines)
	}
}

// TestHandleFormEncodedPayload tests the legacy form encoding where the JSON
// document rides in a "payload" field.
func TestHandleFormEncodedPayload(t *testing.T) {
	document := mustJSON(t, map[string]interface{}{"zen": "Design for failure."})
	body := []byte(url.Values{"payload": {string(document)}}.Encode())

	p := NewPipeline(nil)
	lines := p.Handle(body, "application/x-www-form-urlencoded", "ping", DefaultHookConfig())
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	if got := StripColors(lines[0]); got != "[GitHub] Design for failure." {
		t.Fatalf("unexpected ping line: %q", got)
	}
}

// TestHandleStripsColors tests that use_colors=false removes every control
// code from every line centrally.
func TestHandleStripsColors(t *testing.T) {
	cfg := DefaultHookConfig()
	cfg.UseColors = false

	p := NewPipeline(nil)
	lines := p.Handle(mustJSON(t, pushPayload("main", 2)), "application/json", "push", cfg)
	for _, line := range lines {
		if strings.ContainsAny(line, "\x02\x03\x0f\x16\x1d\x1f") {
			t.Fatalf("expected stripped line, got %q", line)
		}
	}
}

// TestHandlePushEndToEnd tests the full push path: five commits against a
// limit of three yields a header, three commit lines, and a truncation line.
func TestHandlePushEndToEnd(t *testing.T) {
	cfg := DefaultHookConfig()
	cfg.UseColors = false

	p := NewPipeline(nil)
	lines := p.Handle(mustJSON(t, pushPayload("main", 5)), "application/json", "push", cfg)

	want := []string{
		"[widget] alice pushed 5 commits to main [+5/-0/±0] https://github.com/acme/widget/compare/aaa...bbb",
		"[widget] alice 0000000 - commit message 0",
		"[widget] alice 0000001 - commit message 1",
		"[widget] alice 0000002 - commit message 2",
		"[widget] ... and 2 more commits.",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}
