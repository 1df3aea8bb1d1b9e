// Package storage defines persistence for hook registrations. The rendering
// pipeline itself never writes configuration; it only reads records through
// the HookStore interface.
package storage

import (
	"context"
	"encoding/json"
	"time"
)

// HookRecord is one hook registration: which repository it belongs to and
// the rendering options its deliveries use. Options are stored as a JSON
// object keyed by option name (use_colors, branches, line_limit, ...).
type HookRecord struct {
	HookID      string
	Project     string
	Owner       string
	OptionsJSON string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Options decodes the stored option map. An empty OptionsJSON yields an
// empty map, never an error.
func (r HookRecord) Options() (map[string]interface{}, error) {
	if r.OptionsJSON == "" {
		return map[string]interface{}{}, nil
	}
	var options map[string]interface{}
	if err := json.Unmarshal([]byte(r.OptionsJSON), &options); err != nil {
		return nil, err
	}
	return options, nil
}

// HookFilter selects hook rows.
type HookFilter struct {
	Project    string
	Owner      string
	ActiveOnly bool
}

// HookStore defines the persistence interface for hook registrations.
// GetHook returns (nil, nil) for an unknown hook id.
type HookStore interface {
	UpsertHook(ctx context.Context, record HookRecord) error
	GetHook(ctx context.Context, hookID string) (*HookRecord, error)
	ListHooks(ctx context.Context, filter HookFilter) ([]HookRecord, error)
	DeactivateHook(ctx context.Context, hookID string) error
	Close() error
}
