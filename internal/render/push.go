package render

import (
	"fmt"
	"strings"
)

// renderPush is the push summarizer. A push renders as a header line, up to
// LineLimit per-commit lines, and a truncation line once the limit is
// exceeded. Pushes with no commits at all are ref updates: branch or tag
// creations and deletions, rendered by nonCommitSummary instead.
func (p *Pipeline) renderPush(raw map[string]interface{}, cfg HookConfig) []string {
	np := NormalizePush(raw)

	// Branch filtering happens before anything else; a suppressed push must
	// not cost a shortener call.
	if len(cfg.Branches) > 0 && np.Branch != "" && !containsFold(cfg.Branches, np.Branch) {
		return nil
	}

	commits := childSlice(raw, "commits")
	if len(commits) == 0 {
		var lines []string
		if cfg.ShowTags && np.Tag != "" {
			if line := p.nonCommitSummary(np, cfg); line != "" {
				lines = append(lines, line)
			}
		}
		if np.Branch != "" {
			if line := p.nonCommitSummary(np, cfg); line != "" {
				lines = append(lines, line)
			}
		}
		// No commits, no tag, no branch: nothing worth saying.
		return lines
	}

	if !cfg.IsEventAllowed("push", "") {
		return nil
	}

	projectName := pushProjectName(raw, cfg)
	lines := []string{p.pushSummary(projectName, np, cfg)}

	limit := cfg.LineLimit
	total := len(commits)
	emitted := 0
	for _, item := range commits {
		commit, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if cfg.DistinctOnly && !boolField(commit, "distinct") {
			// Already announced on this ref, likely a rewritten-history push.
			continue
		}

		// Stop at the limit, unless exactly one commit would remain: a
		// "... and 1 more commits." line is worse than just showing it.
		if emitted > limit || (emitted == limit && total != limit+1) {
			lines = append(lines, pushFinalSummary(projectName, total, limit))
			break
		}

		lines = append(lines, commitSummary(projectName, commit, cfg))
		emitted++
	}

	return lines
}

// pushProjectName returns the short repository name, or owner/name when the
// hook asks for the full form.
func pushProjectName(raw map[string]interface{}, cfg HookConfig) string {
	repository := childMap(raw, "repository")
	name := stringField(repository, "name")
	if cfg.FullProjectName {
		owner := stringField(childMap(repository, "owner"), "name")
		if owner != "" {
			name = owner + "/" + name
		}
	}
	return name
}

// pushSummary builds the push header: project, pusher, commit count, target
// branch, file-movement tally, and a link to the compare view.
func (p *Pipeline) pushSummary(projectName string, np NormalizedPush, cfg HookConfig) string {
	commits := childSlice(np.Original, "commits")

	pieces := []string{projectHeader(projectName)}

	if np.Pusher != "" {
		pieces = append(pieces, fmt.Sprintf("%s%s%s pushed", Orange, np.Pusher, Reset))
	}

	noun := "commits"
	if len(commits) == 1 {
		noun = "commit"
	}
	pieces = append(pieces, fmt.Sprintf("%s%d%s %s", Green, len(commits), Reset, noun))

	if cfg.ShowBranch && np.Branch != "" {
		pieces = append(pieces, fmt.Sprintf("to %s%s%s", Green, np.Branch, Reset))
	}

	pieces = append(pieces, fmt.Sprintf("[+%d/-%d/±%d]",
		len(np.Files.Added), len(np.Files.Removed), len(np.Files.Modified)))

	pieces = append(pieces, fmt.Sprintf("%s%s%s",
		Pink, p.shorten(stringField(np.Original, "compare")), Reset))

	return strings.Join(pieces, " ")
}

// commitSummary builds the one-line description of a single commit:
// attribution, abbreviated sha, and the message.
func commitSummary(projectName string, commit map[string]interface{}, cfg HookConfig) string {
	author := childMap(commit, "author")
	committer := childMap(commit, "committer")

	pieces := []string{projectHeader(projectName)}

	// Attribution priority: platform handle, author's name, committer's
	// name. The clause is dropped entirely when none resolve.
	attribution := ""
	if cfg.PreferUsername {
		attribution = stringField(author, "username")
	}
	if attribution == "" {
		attribution = stringField(author, "name")
	}
	if attribution == "" {
		attribution = stringField(committer, "name")
	}
	if attribution != "" {
		pieces = append(pieces, fmt.Sprintf("%s%s%s", Orange, attribution, Reset))
	}

	sha := stringField(commit, "id")
	if len(sha) > 7 {
		sha = sha[:7]
	}
	pieces = append(pieces, fmt.Sprintf("%s%s%s", Green, sha, Reset), "-")

	message := stringField(commit, "message")
	if cfg.TitleOnly {
		message, _, _ = strings.Cut(message, "\n")
	}
	pieces = append(pieces, message)

	return strings.Join(pieces, " ")
}

// pushFinalSummary is the truncation line. The count deliberately uses the
// raw commit total, not the distinct-filtered one.
func pushFinalSummary(projectName string, totalCommits, limit int) string {
	return fmt.Sprintf("%s ... and %d more commits.", projectHeader(projectName), totalCommits-limit)
}

// nonCommitSummary renders a push that carries no commits: a branch or tag
// creation or deletion. It returns "" when the matching create/delete event
// is filtered out by the hook's whitelist.
func (p *Pipeline) nonCommitSummary(np NormalizedPush, cfg HookConfig) string {
	original := np.Original
	headCommit := childMap(original, "head_commit")

	pieces := []string{projectHeader(pushProjectName(original, cfg))}

	if np.Pusher != "" {
		pieces = append(pieces, fmt.Sprintf("%s%s%s", Orange, np.Pusher, Reset))
	}

	switch {
	case np.Tag != "":
		if headCommit == nil {
			// A tag push without a head commit is a deletion.
			if !cfg.IsEventAllowed("delete", "tag") {
				return ""
			}
			pieces = append(pieces, verbFor(np.Pusher, "deleted", "Deleted"), "tag")
		} else {
			if !cfg.IsEventAllowed("create", "tag") {
				return ""
			}
			sha := stringField(headCommit, "id")
			if len(sha) > 7 {
				sha = sha[:7]
			}
			pieces = append(pieces,
				verbFor(np.Pusher, "tagged", "Tagged"),
				fmt.Sprintf("%s%s%s as", Green, sha, Reset))
		}
		pieces = append(pieces, fmt.Sprintf("%s%s%s", Green, np.Tag, Reset))

	case np.Branch != "":
		if boolField(original, "deleted") {
			if !cfg.IsEventAllowed("delete", "branch") {
				return ""
			}
			pieces = append(pieces, verbFor(np.Pusher, "deleted branch", "Deleted branch"))
		} else {
			if !cfg.IsEventAllowed("create", "branch") {
				return ""
			}
			pieces = append(pieces, verbFor(np.Pusher, "created branch", "Created branch"))
		}
		pieces = append(pieces, fmt.Sprintf("%s%s%s", Green, np.Branch, Reset))
	}

	if headCommit != nil {
		pieces = append(pieces, fmt.Sprintf("%s%s%s",
			Pink, p.shorten(stringField(headCommit, "url")), Reset))
	}

	return strings.Join(pieces, " ")
}

// verbFor lowercases the verb when a pusher leads the sentence and
// capitalizes it when the line has no subject.
func verbFor(pusher, withSubject, withoutSubject string) string {
	if pusher != "" {
		return withSubject
	}
	return withoutSubject
}

func containsFold(haystack []string, needle string) bool {
	needle = strings.ToLower(needle)
	for _, item := range haystack {
		if item == needle {
			return true
		}
	}
	return false
}
