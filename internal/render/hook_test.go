package render

import "testing"

// TestDefaultHookConfig tests that absent options fall back to the documented
// defaults.
func TestDefaultHookConfig(t *testing.T) {
	cfg := ParseHookConfig(nil)

	if !cfg.UseColors || !cfg.ShowBranch || !cfg.ShowTags || !cfg.PreferUsername || !cfg.DistinctOnly {
		t.Fatalf("expected boolean defaults to be true, got %+v", cfg)
	}
	if cfg.FullProjectName || cfg.TitleOnly {
		t.Fatalf("expected full_project_name and title_only to default to false")
	}
	if cfg.LineLimit != 3 {
		t.Fatalf("expected default line_limit 3, got %d", cfg.LineLimit)
	}
	if len(cfg.Branches) != 0 || len(cfg.Events) != 0 {
		t.Fatalf("expected no default branch or event filters")
	}
}

// TestParseHookConfigOverrides tests that provided options replace defaults.
func TestParseHookConfigOverrides(t *testing.T) {
	cfg := ParseHookConfig(map[string]interface{}{
		"use_colors": false,
		"title_only": true,
		"line_limit": float64(5),
		"events":     []interface{}{"push", "issue_opened"},
	})

	if cfg.UseColors {
		t.Fatalf("expected use_colors false")
	}
	if !cfg.TitleOnly {
		t.Fatalf("expected title_only true")
	}
	if cfg.LineLimit != 5 {
		t.Fatalf("expected line_limit 5, got %d", cfg.LineLimit)
	}
	if len(cfg.Events) != 2 {
		t.Fatalf("expected 2 whitelisted events, got %v", cfg.Events)
	}
}

// TestParseHookConfigBranchesString tests that a comma-separated branches
// string is split, trimmed, and lowercased.
func TestParseHookConfigBranchesString(t *testing.T) {
	cfg := ParseHookConfig(map[string]interface{}{"branches": "Master, dev "})

	if len(cfg.Branches) != 2 || cfg.Branches[0] != "master" || cfg.Branches[1] != "dev" {
		t.Fatalf("expected [master dev], got %v", cfg.Branches)
	}
}

// TestIsEventAllowedNoWhitelist tests that an empty whitelist allows
// everything.
func TestIsEventAllowedNoWhitelist(t *testing.T) {
	cfg := DefaultHookConfig()

	if !cfg.IsEventAllowed("push", "") {
		t.Fatalf("expected push to be allowed")
	}
	if !cfg.IsEventAllowed("issue", "opened") {
		t.Fatalf("expected issue_opened to be allowed")
	}
}

// TestIsEventAllowedWhitelist tests category and category_action key
// matching against a configured whitelist.
func TestIsEventAllowedWhitelist(t *testing.T) {
	cfg := DefaultHookConfig()
	cfg.Events = []string{"push", "issue_opened"}

	if !cfg.IsEventAllowed("push", "") {
		t.Fatalf("expected push to be allowed")
	}
	if !cfg.IsEventAllowed("issue", "opened") {
		t.Fatalf("expected issue_opened to be allowed")
	}
	if cfg.IsEventAllowed("issue", "closed") {
		t.Fatalf("expected issue_closed to be filtered")
	}
	if cfg.IsEventAllowed("fork", "") {
		t.Fatalf("expected fork to be filtered")
	}
}
