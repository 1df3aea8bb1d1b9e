package render

import (
	"fmt"
	"strings"
)

// Renderers for every non-push event. Each one gates itself on the hook's
// event whitelist before doing any work, so filtered events never trigger a
// shortener call.

// projectHeader formats the bracketed repository name that prefixes every
// line.
func projectHeader(name string) string {
	return fmt.Sprintf("%s[%s%s%s]", Reset, Blue, name, Reset)
}

func repositoryName(raw map[string]interface{}) string {
	return stringField(childMap(raw, "repository"), "name")
}

func senderLogin(raw map[string]interface{}) string {
	return stringField(childMap(raw, "sender"), "login")
}

// renderPing answers the provider's hook test with its zen line. Ping is not
// subject to the whitelist; it exists so a freshly configured hook shows
// signs of life.
func (p *Pipeline) renderPing(raw map[string]interface{}, _ HookConfig) []string {
	return []string{fmt.Sprintf("%s %s", projectHeader("GitHub"), stringField(raw, "zen"))}
}

func (p *Pipeline) renderIssues(raw map[string]interface{}, cfg HookConfig) []string {
	action := stringField(raw, "action")
	if !cfg.IsEventAllowed("issue", action) {
		return nil
	}
	issue := childMap(raw, "issue")
	return []string{fmt.Sprintf("%s %s%s%s %s issue %s#%s%s: %s - %s%s%s",
		projectHeader(repositoryName(raw)),
		Orange, senderLogin(raw), Reset,
		action,
		Green, numberField(issue, "number"), Reset,
		stringField(issue, "title"),
		Pink, p.shorten(stringField(issue, "html_url")), Reset,
	)}
}

// commentVerb maps comment actions to a readable clause; anything that is
// not an edit or a delete reads as a fresh comment.
func commentVerb(action string) string {
	switch action {
	case "edited":
		return "edited a comment"
	case "deleted":
		return "deleted a comment"
	default:
		return "commented"
	}
}

func (p *Pipeline) renderIssueComment(raw map[string]interface{}, cfg HookConfig) []string {
	action := stringField(raw, "action")
	if !cfg.IsEventAllowed("issue_comment", action) {
		return nil
	}
	issue := childMap(raw, "issue")
	return []string{fmt.Sprintf("%s %s%s%s %s on issue %s#%s%s: %s - %s%s%s",
		projectHeader(repositoryName(raw)),
		Orange, senderLogin(raw), Reset,
		commentVerb(action),
		Green, numberField(issue, "number"), Reset,
		stringField(issue, "title"),
		Pink, p.shorten(stringField(childMap(raw, "comment"), "html_url")), Reset,
	)}
}

func (p *Pipeline) renderCommitComment(raw map[string]interface{}, cfg HookConfig) []string {
	action := stringField(raw, "action")
	if !cfg.IsEventAllowed("commit_comment", action) {
		return nil
	}
	comment := childMap(raw, "comment")
	return []string{fmt.Sprintf("%s %s%s%s %s on commit %s%s%s - %s%s%s",
		projectHeader(repositoryName(raw)),
		Orange, stringField(childMap(comment, "user"), "login"), Reset,
		commentVerb(action),
		Green, stringField(comment, "commit_id"), Reset,
		Pink, p.shorten(stringField(comment, "html_url")), Reset,
	)}
}

func (p *Pipeline) renderCreate(raw map[string]interface{}, cfg HookConfig) []string {
	refType := stringField(raw, "ref_type")
	if !cfg.IsEventAllowed("create", refType) {
		return nil
	}

	pieces := []string{
		projectHeader(repositoryName(raw)),
		fmt.Sprintf("%s%s%s created %s", Orange, senderLogin(raw), Reset, refType),
	}
	// ref is null when the repository itself was created.
	if ref := stringField(raw, "ref"); ref != "" {
		pieces = append(pieces, fmt.Sprintf("%s%s%s", Green, ref, Reset))
	}
	// The repository page is the only URL the payload carries.
	repoURL := stringField(childMap(raw, "repository"), "html_url")
	pieces = append(pieces, fmt.Sprintf("- %s%s%s", Pink, p.shorten(repoURL), Reset))

	return []string{strings.Join(pieces, " ")}
}

func (p *Pipeline) renderDelete(raw map[string]interface{}, cfg HookConfig) []string {
	refType := stringField(raw, "ref_type")
	if !cfg.IsEventAllowed("delete", refType) {
		return nil
	}
	repoURL := stringField(childMap(raw, "repository"), "html_url")
	return []string{fmt.Sprintf("%s %s%s%s deleted %s %s%s%s - %s%s%s",
		projectHeader(repositoryName(raw)),
		Orange, senderLogin(raw), Reset,
		refType,
		Green, stringField(raw, "ref"), Reset,
		Pink, p.shorten(repoURL), Reset,
	)}
}

func (p *Pipeline) renderPullRequest(raw map[string]interface{}, cfg HookConfig) []string {
	action := stringField(raw, "action")
	if !cfg.IsEventAllowed("pr", action) {
		return nil
	}
	pr := childMap(raw, "pull_request")
	return []string{fmt.Sprintf("%s %s%s%s %s pull request %s#%s%s: %s - %s%s%s",
		projectHeader(repositoryName(raw)),
		Orange, senderLogin(raw), Reset,
		action,
		Green, numberField(raw, "number"), Reset,
		stringField(pr, "title"),
		Pink, p.shorten(stringField(pr, "html_url")), Reset,
	)}
}

func (p *Pipeline) renderPullRequestReviewComment(raw map[string]interface{}, cfg HookConfig) []string {
	action := stringField(raw, "action")
	if !cfg.IsEventAllowed("pr_review", action) {
		return nil
	}
	comment := childMap(raw, "comment")

	// The payload has no PR number field; it is the tail of the API URL.
	prURL := stringField(comment, "pull_request_url")
	num := prURL
	if idx := strings.LastIndex(prURL, "/"); idx >= 0 {
		num = prURL[idx+1:]
	}

	return []string{fmt.Sprintf("%s %s%s%s reviewed pull request %s#%s%s commit - %s%s%s",
		projectHeader(repositoryName(raw)),
		Orange, stringField(childMap(comment, "user"), "login"), Reset,
		Green, num, Reset,
		Pink, p.shorten(stringField(comment, "html_url")), Reset,
	)}
}

func (p *Pipeline) renderGollum(raw map[string]interface{}, cfg HookConfig) []string {
	pages := childSlice(raw, "pages")
	if len(pages) == 0 {
		return nil
	}
	firstPage, _ := pages[0].(map[string]interface{})

	// Wiki payloads carry the action per page, not at the top level.
	if !cfg.IsEventAllowed("gollum", stringField(firstPage, "action")) {
		return nil
	}

	name := repositoryName(raw)
	who := senderLogin(raw)

	if len(pages) == 1 {
		return []string{fmt.Sprintf("%s %s%s%s %s page %s%s%s - %s%s%s",
			projectHeader(name),
			Orange, who, Reset,
			stringField(firstPage, "action"),
			Green, stringField(firstPage, "page_name"), Reset,
			Pink, p.shorten(stringField(firstPage, "html_url")), Reset,
		)}
	}

	lines := []string{fmt.Sprintf("%s %s%s%s updated the Wiki",
		projectHeader(name), Orange, who, Reset)}
	for _, item := range pages {
		page, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s Page %s%s%s %s - %s%s%s",
			projectHeader(name),
			Green, stringField(page, "page_name"), Reset,
			stringField(page, "action"),
			Pink, p.shorten(stringField(page, "html_url")), Reset,
		))
	}
	return lines
}

func (p *Pipeline) renderWatch(raw map[string]interface{}, cfg HookConfig) []string {
	if !cfg.IsEventAllowed("watch", stringField(raw, "action")) {
		return nil
	}
	name := repositoryName(raw)
	sender := childMap(raw, "sender")
	return []string{fmt.Sprintf("%s %s%s%s starred %s%s%s - %s%s%s",
		projectHeader(name),
		Orange, stringField(sender, "login"), Reset,
		Green, name, Reset,
		Pink, p.shorten(stringField(sender, "html_url")), Reset,
	)}
}

func (p *Pipeline) renderRelease(raw map[string]interface{}, cfg HookConfig) []string {
	action := stringField(raw, "action")
	if !cfg.IsEventAllowed("release", action) {
		return nil
	}
	release := childMap(raw, "release")
	return []string{fmt.Sprintf("%s %s%s%s %s %s%s | %s%s - %s%s%s",
		projectHeader(repositoryName(raw)),
		Orange, senderLogin(raw), Reset,
		action,
		Green, stringField(release, "tag_name"), stringField(release, "name"), Reset,
		Pink, p.shorten(stringField(release, "html_url")), Reset,
	)}
}

func (p *Pipeline) renderFork(raw map[string]interface{}, cfg HookConfig) []string {
	if !cfg.IsEventAllowed("fork", "") {
		return nil
	}
	owner := childMap(childMap(raw, "forkee"), "owner")
	return []string{fmt.Sprintf("%s %s%s%s forked the repository - %s%s%s",
		projectHeader(repositoryName(raw)),
		Orange, stringField(owner, "login"), Reset,
		Pink, p.shorten(stringField(owner, "html_url")), Reset,
	)}
}

func (p *Pipeline) renderMember(raw map[string]interface{}, cfg HookConfig) []string {
	action := stringField(raw, "action")
	if !cfg.IsEventAllowed("member", action) {
		return nil
	}
	member := childMap(raw, "member")
	return []string{fmt.Sprintf("%s %s%s%s %s user %s%s%s - %s%s%s",
		projectHeader(repositoryName(raw)),
		Orange, senderLogin(raw), Reset,
		action,
		Green, stringField(member, "login"), Reset,
		Pink, p.shorten(stringField(member, "html_url")), Reset,
	)}
}

func (p *Pipeline) renderPublic(raw map[string]interface{}, cfg HookConfig) []string {
	if !cfg.IsEventAllowed("public", "") {
		return nil
	}
	return []string{fmt.Sprintf("%s %s%s%s made the repository public!",
		projectHeader(repositoryName(raw)),
		Orange, senderLogin(raw), Reset,
	)}
}

func (p *Pipeline) renderTeamAdd(raw map[string]interface{}, cfg HookConfig) []string {
	if !cfg.IsEventAllowed("team_add", "") {
		return nil
	}
	return []string{fmt.Sprintf("%s %s%s%s added the team %s%s%s to the repository!",
		projectHeader(repositoryName(raw)),
		Orange, senderLogin(raw), Reset,
		Green, stringField(childMap(raw, "team"), "name"), Reset,
	)}
}

func (p *Pipeline) renderStatus(raw map[string]interface{}, cfg HookConfig) []string {
	state := stringField(raw, "state")
	if !cfg.IsEventAllowed("status", state) {
		return nil
	}

	stateColor := Green
	if !strings.EqualFold(state, "success") {
		stateColor = Red
	}

	return []string{fmt.Sprintf("%s %s%s%s. %s - %s%s%s",
		projectHeader(repositoryName(raw)),
		stateColor, capitalize(state), Reset,
		stringField(raw, "description"),
		Pink, stringField(raw, "target_url"), Reset,
	)}
}

// Deployment events have no rendering yet. The stubs keep the event types
// claimed so they fail visibly (one blank line) rather than silently.
func (p *Pipeline) renderDeployment(_ map[string]interface{}, _ HookConfig) []string {
	return []string{""}
}

func (p *Pipeline) renderDeploymentStatus(_ map[string]interface{}, _ HookConfig) []string {
	return []string{""}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
