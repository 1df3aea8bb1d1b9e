package webhook

import (
	"io"
	"log"
	"net/http"
	"path"
	"strings"

	"hookrelay/internal"
	"hookrelay/internal/render"
	"hookrelay/pkg/storage"
)

// GitHubHandler receives GitHub webhook deliveries, renders them into chat
// lines, and routes the result downstream. It always answers 200 for a
// delivery it could read: malformed, filtered, or unknown events are
// swallowed so one bad delivery never makes the provider back off.
type GitHubHandler struct {
	pipeline     *render.Pipeline
	store        storage.HookStore
	defaults     render.HookConfig
	rules        *internal.RuleEngine
	publisher    internal.Publisher
	logger       *log.Logger
	basePath     string
	maxBody      int64
	defaultTopic string
}

// GitHubHandlerConfig wires the handler's collaborators. Store may be nil;
// every delivery then uses Defaults.
type GitHubHandlerConfig struct {
	Pipeline     *render.Pipeline
	Store        storage.HookStore
	Defaults     render.HookConfig
	Rules        *internal.RuleEngine
	Publisher    internal.Publisher
	Logger       *log.Logger
	BasePath     string
	MaxBodyBytes int64
	DefaultTopic string
}

func NewGitHubHandler(cfg GitHubHandlerConfig) *GitHubHandler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	return &GitHubHandler{
		pipeline:     cfg.Pipeline,
		store:        cfg.Store,
		defaults:     cfg.Defaults,
		rules:        cfg.Rules,
		publisher:    cfg.Publisher,
		logger:       logger,
		basePath:     strings.TrimRight(cfg.BasePath, "/"),
		maxBody:      maxBody,
		defaultTopic: cfg.DefaultTopic,
	}
}

func (h *GitHubHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	eventName := r.Header.Get("X-GitHub-Event")
	internal.IncRequest(eventName)

	hookID := h.hookID(r)
	cfg := h.resolveConfig(r, hookID)

	contentType := r.Header.Get("Content-Type")
	lines := h.pipeline.Handle(body, contentType, eventName, cfg)

	document := documentBytes(body, contentType)
	rawObject, flattened := rawObjectAndFlatten(document)

	if len(lines) == 0 {
		if rawObject == nil {
			internal.IncParseError(eventName)
		} else {
			internal.IncSuppressedEvent(eventName)
		}
		w.WriteHeader(http.StatusOK)
		return
	}
	internal.AddRenderedLines(eventName, len(lines))

	h.emit(r, internal.Event{
		Provider:   "github",
		Name:       eventName,
		HookID:     hookID,
		Data:       flattened,
		RawPayload: document,
		RawObject:  rawObject,
	}, internal.RenderedMessage{
		HookID:   hookID,
		Provider: "github",
		Event:    eventName,
		Lines:    lines,
		Colors:   cfg.UseColors,
	})

	w.WriteHeader(http.StatusOK)
}

// hookID identifies the hook registration: a "hook" query parameter, or the
// path segment after the mount point.
func (h *GitHubHandler) hookID(r *http.Request) string {
	if id := r.URL.Query().Get("hook"); id != "" {
		return id
	}
	trimmed := strings.TrimRight(r.URL.Path, "/")
	if trimmed == h.basePath {
		return ""
	}
	return path.Base(trimmed)
}

func (h *GitHubHandler) resolveConfig(r *http.Request, hookID string) render.HookConfig {
	if h.store == nil || hookID == "" {
		return h.defaults
	}
	record, err := h.store.GetHook(r.Context(), hookID)
	if err != nil {
		h.logger.Printf("hook %s lookup failed: %v", hookID, err)
		return h.defaults
	}
	if record == nil || !record.Active {
		return h.defaults
	}
	options, err := record.Options()
	if err != nil {
		h.logger.Printf("hook %s has bad options: %v", hookID, err)
		return h.defaults
	}
	return render.ParseHookConfig(options)
}

func (h *GitHubHandler) emit(r *http.Request, event internal.Event, msg internal.RenderedMessage) {
	matches := h.rules.Evaluate(event)
	if len(matches) == 0 && h.defaultTopic != "" {
		matches = []internal.Match{{Topic: h.defaultTopic}}
	}
	h.logger.Printf("event=%s hook=%s lines=%d topics=%d", event.Name, event.HookID, len(msg.Lines), len(matches))
	for _, match := range matches {
		if err := h.publisher.PublishForDrivers(r.Context(), match.Topic, msg, match.Drivers); err != nil {
			h.logger.Printf("publish %s failed: %v", match.Topic, err)
		}
	}
}
