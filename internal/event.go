package internal

// Event is one inbound webhook delivery as seen by the routing layer.
type Event struct {
	// Provider is the source-control host the hook came from.
	Provider string `json:"provider"`
	// Name is the declared event type from the provider's event header.
	Name string `json:"name"`
	// HookID identifies the hook registration the delivery targeted.
	HookID string `json:"hook_id,omitempty"`
	// Data is the flattened payload used by rule expressions.
	Data map[string]interface{} `json:"-"`
	// RawPayload is the undecoded request body, used by JSONPath rules.
	RawPayload []byte `json:"-"`
	// RawObject is the decoded payload document, when it decoded at all.
	RawObject interface{} `json:"-"`
}

// RenderedMessage is the pipeline's output for one event: the ordered chat
// lines plus enough metadata for downstream delivery to pick a channel.
type RenderedMessage struct {
	HookID   string   `json:"hook_id,omitempty"`
	Provider string   `json:"provider"`
	Event    string   `json:"event"`
	Lines    []string `json:"lines"`
	// Colors reports whether the lines still carry mIRC color codes. When
	// false they were stripped at render time per the hook's use_colors
	// option.
	Colors bool `json:"colors"`
}
