package internal

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/PaesslerAG/jsonpath"
)

// Rule routes matching events to one or more topics. When is a govaluate
// expression over the flattened payload; fields may also be addressed with
// JSONPath ($.pull_request.draft). Emit lists the topics a match publishes
// to, and Drivers optionally narrows which publisher drivers carry them.
type Rule struct {
	When    string   `yaml:"when"`
	Emit    EmitList `yaml:"emit"`
	Drivers []string `yaml:"drivers"`
}

// EmitList accepts either a single topic or a list of topics in YAML.
type EmitList []string

func (e *EmitList) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*e = EmitList{single}
		return nil
	}
	var many []string
	if err := unmarshal(&many); err != nil {
		return err
	}
	*e = EmitList(many)
	return nil
}

// Match is one routing decision: a topic and, optionally, the drivers that
// should carry it.
type Match struct {
	Topic   string
	Drivers []string
}

type compiledRule struct {
	emit    EmitList
	drivers []string
	expr    *govaluate.EvaluableExpression
}

// RuleEngine evaluates routing rules against inbound events.
type RuleEngine struct {
	rules  []compiledRule
	logger *log.Logger
}

// jsonPathToken matches bare JSONPath references inside a rule expression so
// they can be handed to govaluate as escaped parameter names.
var jsonPathToken = regexp.MustCompile(`\$\.[A-Za-z0-9_.\[\]*]+`)

// NewRuleEngine compiles the configured rules. In strict mode a rule whose
// expression references no payload field at all is rejected, since it would
// match every event or none.
func NewRuleEngine(cfg RulesConfig) (*RuleEngine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	rules := make([]compiledRule, 0, len(cfg.Rules))
	for i, rule := range cfg.Rules {
		source := jsonPathToken.ReplaceAllString(rule.When, "[$0]")
		expr, err := govaluate.NewEvaluableExpression(source)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		if cfg.Strict && len(expr.Vars()) == 0 {
			return nil, fmt.Errorf("rule %d references no payload fields", i)
		}
		rules = append(rules, compiledRule{emit: rule.Emit, drivers: rule.Drivers, expr: expr})
	}

	return &RuleEngine{rules: rules, logger: logger}, nil
}

// Evaluate returns the topics the event routes to. Rules that error,
// including rules referencing fields the payload lacks, simply do not match.
func (r *RuleEngine) Evaluate(event Event) []Match {
	if r == nil || len(r.rules) == 0 {
		return nil
	}

	params := newEventParameters(event)

	var matches []Match
	for _, rule := range r.rules {
		result, err := rule.expr.Eval(params)
		if err != nil {
			continue
		}
		matched, _ := result.(bool)
		if !matched {
			continue
		}
		for _, topic := range rule.emit {
			matches = append(matches, Match{Topic: topic, Drivers: rule.drivers})
		}
	}
	return matches
}

// eventParameters resolves expression variables: JSONPath references go
// through the decoded payload document, plain names through the flattened
// map.
type eventParameters struct {
	flat     map[string]interface{}
	document interface{}
}

func newEventParameters(event Event) eventParameters {
	params := eventParameters{flat: event.Data, document: event.RawObject}

	if params.document == nil && len(event.RawPayload) > 0 {
		var decoded interface{}
		if err := json.Unmarshal(event.RawPayload, &decoded); err == nil {
			params.document = decoded
		}
	}
	if params.flat == nil {
		if object, ok := params.document.(map[string]interface{}); ok {
			params.flat = Flatten(object)
		}
	}
	return params
}

func (p eventParameters) Get(name string) (interface{}, error) {
	if strings.HasPrefix(name, "$.") {
		if p.document == nil {
			return nil, fmt.Errorf("no payload for %s", name)
		}
		return jsonpath.Get(name, p.document)
	}
	value, ok := p.flat[name]
	if !ok {
		return nil, fmt.Errorf("no field %s", name)
	}
	return value, nil
}
