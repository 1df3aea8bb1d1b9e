package internal

import (
	"testing"

	"gopkg.in/yaml.v3"
)

// TestRuleEngineEvaluate tests that the rule engine correctly evaluates a simple rule.
func TestRuleEngineEvaluate(t *testing.T) {
	cfg := RulesConfig{
		Rules: []Rule{
			{When: "action == \"opened\"", Emit: EmitList{"pr.opened"}},
			{When: "action == \"closed\" && merged == true", Emit: EmitList{"pr.merged"}},
		},
	}

	engine, err := NewRuleEngine(cfg)
	if err != nil {
		t.Fatalf("new rule engine: %v", err)
	}

	event := Event{
		Provider:   "github",
		Name:       "pull_request",
		RawPayload: []byte(`{"action":"opened","merged":false}`),
	}

	matches := engine.Evaluate(event)
	if len(matches) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(matches))
	}
	if matches[0].Topic != "pr.opened" {
		t.Fatalf("expected topic pr.opened, got %q", matches[0].Topic)
	}
}

// TestRuleEngineEvaluateMissingField tests that a rule referencing a field the payload lacks does not match.
func TestRuleEngineEvaluateMissingField(t *testing.T) {
	cfg := RulesConfig{
		Rules: []Rule{
			{When: "missing == true", Emit: EmitList{"never"}},
		},
	}

	engine, err := NewRuleEngine(cfg)
	if err != nil {
		t.Fatalf("new rule engine: %v", err)
	}

	event := Event{
		Provider:   "github",
		Name:       "push",
		RawPayload: []byte(`{}`),
	}

	if matches := engine.Evaluate(event); len(matches) != 0 {
		t.Fatalf("expected no topics, got %d", len(matches))
	}
}

// TestRuleEngineWithDrivers tests that a match carries the rule's driver restriction.
func TestRuleEngineWithDrivers(t *testing.T) {
	cfg := RulesConfig{
		Rules: []Rule{
			{When: "action == \"opened\"", Emit: EmitList{"pr.opened"}, Drivers: []string{"amqp", "http"}},
		},
	}

	engine, err := NewRuleEngine(cfg)
	if err != nil {
		t.Fatalf("new rule engine: %v", err)
	}

	event := Event{
		Provider:   "github",
		Name:       "pull_request",
		RawPayload: []byte(`{"action":"opened"}`),
	}

	matches := engine.Evaluate(event)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if len(matches[0].Drivers) != 2 {
		t.Fatalf("expected 2 drivers, got %d", len(matches[0].Drivers))
	}
}

// TestRuleEngineMultipleEmit tests that one matching rule yields one match per emitted topic.
func TestRuleEngineMultipleEmit(t *testing.T) {
	cfg := RulesConfig{
		Rules: []Rule{
			{When: "action == \"opened\"", Emit: EmitList{"pr.opened", "pr.any"}},
		},
	}

	engine, err := NewRuleEngine(cfg)
	if err != nil {
		t.Fatalf("new rule engine: %v", err)
	}

	event := Event{
		Provider:   "github",
		Name:       "pull_request",
		RawPayload: []byte(`{"action":"opened"}`),
	}

	matches := engine.Evaluate(event)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Topic != "pr.opened" || matches[1].Topic != "pr.any" {
		t.Fatalf("unexpected topics: %v", matches)
	}
}

// TestRuleEngineJSONPathDot tests that a $.-prefixed reference resolves through the payload document.
func TestRuleEngineJSONPathDot(t *testing.T) {
	cfg := RulesConfig{
		Rules: []Rule{
			{When: "$.pull_request.draft == false", Emit: EmitList{"pr.opened"}},
		},
	}

	engine, err := NewRuleEngine(cfg)
	if err != nil {
		t.Fatalf("new rule engine: %v", err)
	}

	event := Event{
		Provider:   "github",
		Name:       "pull_request",
		RawPayload: []byte(`{"pull_request":{"draft":false}}`),
	}

	if matches := engine.Evaluate(event); len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
}

// TestRuleEngineJSONPathDeep tests that a multi-level JSONPath reference resolves.
func TestRuleEngineJSONPathDeep(t *testing.T) {
	cfg := RulesConfig{
		Rules: []Rule{
			{When: "$.repository.owner.login == \"acme\"", Emit: EmitList{"org.acme"}},
		},
	}

	engine, err := NewRuleEngine(cfg)
	if err != nil {
		t.Fatalf("new rule engine: %v", err)
	}

	event := Event{
		Provider:   "github",
		Name:       "push",
		RawPayload: []byte(`{"repository":{"owner":{"login":"acme"}}}`),
	}

	if matches := engine.Evaluate(event); len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
}

// TestRuleEngineEscapedFlatName tests that a bracket-escaped dotted name resolves through the flattened payload.
func TestRuleEngineEscapedFlatName(t *testing.T) {
	cfg := RulesConfig{
		Rules: []Rule{
			{When: "[pull_request.draft] == false", Emit: EmitList{"pr.ready"}},
		},
	}

	engine, err := NewRuleEngine(cfg)
	if err != nil {
		t.Fatalf("new rule engine: %v", err)
	}

	event := Event{
		Provider:   "github",
		Name:       "pull_request",
		RawPayload: []byte(`{"pull_request":{"draft":false}}`),
	}

	if matches := engine.Evaluate(event); len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
}

// TestRuleEngineStrictRejectsConstantRule tests that strict mode refuses a rule that reads no payload field.
func TestRuleEngineStrictRejectsConstantRule(t *testing.T) {
	cfg := RulesConfig{
		Rules: []Rule{
			{When: "1 == 1", Emit: EmitList{"always"}},
		},
		Strict: true,
	}

	if _, err := NewRuleEngine(cfg); err == nil {
		t.Fatalf("expected strict mode to reject a constant rule")
	}
}

// TestRuleEngineBadExpression tests that an unparseable expression fails compilation.
func TestRuleEngineBadExpression(t *testing.T) {
	cfg := RulesConfig{
		Rules: []Rule{
			{When: "action ==", Emit: EmitList{"never"}},
		},
	}

	if _, err := NewRuleEngine(cfg); err == nil {
		t.Fatalf("expected compile error for malformed expression")
	}
}

// TestRuleEngineNilEngine tests that a nil engine evaluates to no matches.
func TestRuleEngineNilEngine(t *testing.T) {
	var engine *RuleEngine
	if matches := engine.Evaluate(Event{RawPayload: []byte(`{}`)}); matches != nil {
		t.Fatalf("expected nil matches from nil engine, got %v", matches)
	}
}

// TestEmitListScalarYAML tests that emit accepts both a scalar and a list in YAML.
func TestEmitListScalarYAML(t *testing.T) {
	var scalar Rule
	if err := yaml.Unmarshal([]byte("when: action == \"opened\"\nemit: pr.opened\n"), &scalar); err != nil {
		t.Fatalf("unmarshal scalar emit: %v", err)
	}
	if len(scalar.Emit) != 1 || scalar.Emit[0] != "pr.opened" {
		t.Fatalf("unexpected scalar emit: %v", scalar.Emit)
	}

	var list Rule
	if err := yaml.Unmarshal([]byte("when: action == \"opened\"\nemit: [pr.opened, pr.any]\n"), &list); err != nil {
		t.Fatalf("unmarshal list emit: %v", err)
	}
	if len(list.Emit) != 2 {
		t.Fatalf("unexpected list emit: %v", list.Emit)
	}
}
