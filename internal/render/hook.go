package render

import "strings"

// HookConfig holds the per-hook rendering options. A zero value is not
// meaningful; build one with DefaultHookConfig or ParseHookConfig so absent
// options pick up their defaults.
type HookConfig struct {
	// Branches restricts push rendering to the listed branch names,
	// compared case-insensitively. Empty means all branches.
	Branches []string
	// Events is a whitelist of category or category_action keys.
	// Empty means every event is allowed.
	Events []string

	UseColors       bool
	ShowBranch      bool
	ShowTags        bool
	PreferUsername  bool
	FullProjectName bool
	TitleOnly       bool
	DistinctOnly    bool

	// LineLimit caps the number of per-commit lines before a push is
	// summarized with a truncation line. 3 matches the reference default.
	LineLimit int
}

// DefaultHookConfig returns the options used when a hook has no stored
// configuration.
func DefaultHookConfig() HookConfig {
	return HookConfig{
		UseColors:      true,
		ShowBranch:     true,
		ShowTags:       true,
		PreferUsername: true,
		DistinctOnly:   true,
		LineLimit:      3,
	}
}

// ParseHookConfig builds a HookConfig from a loosely typed options map, the
// shape hook options take both in the YAML config file and in stored hook
// records. Unknown keys are ignored, absent keys keep their defaults.
func ParseHookConfig(options map[string]interface{}) HookConfig {
	cfg := DefaultHookConfig()
	if len(options) == 0 {
		return cfg
	}

	if v, ok := options["branches"]; ok {
		cfg.Branches = parseBranches(v)
	}
	if v, ok := options["events"]; ok {
		cfg.Events = stringList(v)
	}

	cfg.UseColors = boolOption(options, "use_colors", cfg.UseColors)
	cfg.ShowBranch = boolOption(options, "show_branch", cfg.ShowBranch)
	cfg.ShowTags = boolOption(options, "show_tags", cfg.ShowTags)
	cfg.PreferUsername = boolOption(options, "prefer_username", cfg.PreferUsername)
	cfg.FullProjectName = boolOption(options, "full_project_name", cfg.FullProjectName)
	cfg.TitleOnly = boolOption(options, "title_only", cfg.TitleOnly)
	cfg.DistinctOnly = boolOption(options, "distinct_only", cfg.DistinctOnly)

	if v, ok := options["line_limit"]; ok {
		if n, ok := intValue(v); ok && n > 0 {
			cfg.LineLimit = n
		}
	}
	return cfg
}

// IsEventAllowed reports whether an event in the given category, with an
// optional sub-action, passes the hook's event whitelist. An empty whitelist
// allows everything. The key is the category alone, or category_action when
// an action is present.
func (c HookConfig) IsEventAllowed(category, action string) bool {
	if len(c.Events) == 0 {
		return true
	}
	key := category
	if action != "" {
		key = category + "_" + action
	}
	for _, allowed := range c.Events {
		if allowed == key {
			return true
		}
	}
	return false
}

// parseBranches accepts either a comma-separated string ("master, dev") or a
// list of names and normalizes them to trimmed lowercase.
func parseBranches(v interface{}) []string {
	var names []string
	switch typed := v.(type) {
	case string:
		names = strings.Split(typed, ",")
	default:
		names = stringList(v)
	}

	out := make([]string, 0, len(names))
	for _, name := range names {
		trimmed := strings.ToLower(strings.TrimSpace(name))
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func stringList(v interface{}) []string {
	switch typed := v.(type) {
	case []string:
		return typed
	case []interface{}:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if typed == "" {
			return nil
		}
		return []string{typed}
	default:
		return nil
	}
}

func boolOption(options map[string]interface{}, key string, fallback bool) bool {
	v, ok := options[key]
	if !ok {
		return fallback
	}
	b, ok := v.(bool)
	if !ok {
		return fallback
	}
	return b
}

func intValue(v interface{}) (int, bool) {
	switch typed := v.(type) {
	case int:
		return typed, true
	case int64:
		return int(typed), true
	case float64:
		return int(typed), true
	default:
		return 0, false
	}
}
