// Package render turns raw source-control webhook payloads into single-line,
// mIRC-colored messages ready for delivery to a chat relay. It classifies
// events, applies per-hook filtering, and degrades silently: malformed
// payloads, unknown event types, and filtered events all render to nothing
// rather than surfacing an error.
package render

import (
	"encoding/json"
	"net/url"
	"strings"
)

// EventType is the declared webhook event type, as carried by the provider's
// event header.
type EventType string

// The closed set of event types this pipeline renders. Anything else yields
// empty output so new provider events degrade silently.
const (
	EventPing                     EventType = "ping"
	EventPush                     EventType = "push"
	EventIssues                   EventType = "issues"
	EventIssueComment             EventType = "issue_comment"
	EventCommitComment            EventType = "commit_comment"
	EventCreate                   EventType = "create"
	EventDelete                   EventType = "delete"
	EventPullRequest              EventType = "pull_request"
	EventPullRequestReviewComment EventType = "pull_request_review_comment"
	EventGollum                   EventType = "gollum"
	EventWatch                    EventType = "watch"
	EventRelease                  EventType = "release"
	EventFork                     EventType = "fork"
	EventMember                   EventType = "member"
	EventPublic                   EventType = "public"
	EventTeamAdd                  EventType = "team_add"
	EventStatus                   EventType = "status"
	EventDeployment               EventType = "deployment"
	EventDeploymentStatus         EventType = "deployment_status"
)

// Pipeline renders webhook events into message lines. It is stateless apart
// from the shortener client and safe for concurrent use.
type Pipeline struct {
	shortener *Shortener
}

// NewPipeline builds a rendering pipeline. A nil shortener leaves URLs
// untouched.
func NewPipeline(shortener *Shortener) *Pipeline {
	return &Pipeline{shortener: shortener}
}

// Handle decodes the raw request body, dispatches it to the renderer for the
// declared event type, and returns the ordered message lines. The body may be
// a JSON document or a form-encoded "payload" field carrying one. Undecodable
// bodies and unknown event types return no lines and no error.
func (p *Pipeline) Handle(body []byte, contentType string, eventType string, cfg HookConfig) []string {
	raw := decodePayload(body, contentType)
	if raw == nil {
		return nil
	}

	lines := p.dispatch(raw, EventType(eventType), cfg)

	if !cfg.UseColors {
		for i, line := range lines {
			lines[i] = StripColors(line)
		}
	}
	return lines
}

func (p *Pipeline) dispatch(raw map[string]interface{}, eventType EventType, cfg HookConfig) []string {
	switch eventType {
	case EventPing:
		return p.renderPing(raw, cfg)
	case EventPush:
		return p.renderPush(raw, cfg)
	case EventIssues:
		return p.renderIssues(raw, cfg)
	case EventIssueComment:
		return p.renderIssueComment(raw, cfg)
	case EventCommitComment:
		return p.renderCommitComment(raw, cfg)
	case EventCreate:
		return p.renderCreate(raw, cfg)
	case EventDelete:
		return p.renderDelete(raw, cfg)
	case EventPullRequest:
		return p.renderPullRequest(raw, cfg)
	case EventPullRequestReviewComment:
		return p.renderPullRequestReviewComment(raw, cfg)
	case EventGollum:
		return p.renderGollum(raw, cfg)
	case EventWatch:
		return p.renderWatch(raw, cfg)
	case EventRelease:
		return p.renderRelease(raw, cfg)
	case EventFork:
		return p.renderFork(raw, cfg)
	case EventMember:
		return p.renderMember(raw, cfg)
	case EventPublic:
		return p.renderPublic(raw, cfg)
	case EventTeamAdd:
		return p.renderTeamAdd(raw, cfg)
	case EventStatus:
		return p.renderStatus(raw, cfg)
	case EventDeployment:
		return p.renderDeployment(raw, cfg)
	case EventDeploymentStatus:
		return p.renderDeploymentStatus(raw, cfg)
	default:
		return nil
	}
}

// decodePayload extracts the JSON object from either a JSON body or a
// form-encoded body with a "payload" field. Anything else decodes to nil.
func decodePayload(body []byte, contentType string) map[string]interface{} {
	document := body
	if !strings.Contains(contentType, "json") {
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return nil
		}
		payload := values.Get("payload")
		if payload == "" {
			return nil
		}
		document = []byte(payload)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(document, &raw); err != nil {
		return nil
	}
	return raw
}

func (p *Pipeline) shorten(target string) string {
	return p.shortener.Shorten(target)
}
