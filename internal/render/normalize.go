package render

import "regexp"

// DeployKeyPusher replaces the literal "none" the provider reports as the
// pusher name when a deploy key pushes.
const DeployKeyPusher = "A deploy key"

var refPattern = regexp.MustCompile(`^refs/(heads|tags)/(.+)$`)

// FileSummary aggregates the file paths touched across every commit in a
// push, in commit order and then added/removed/modified order per commit.
type FileSummary struct {
	All      []string
	Added    []string
	Removed  []string
	Modified []string
}

// NormalizedPush is the provider-agnostic view of a push payload. At most
// one of Branch and Tag is set; both stay empty when neither ref matches
// the refs/heads or refs/tags pattern. Pusher is empty for system-generated
// and test-triggered events. Original keeps the raw payload for renderers
// that need fields normalization does not cover.
type NormalizedPush struct {
	Branch   string
	Tag      string
	Pusher   string
	Files    FileSummary
	Original map[string]interface{}
}

// NormalizePush extracts the branch or tag name, the pusher identity, and
// the aggregated file movement from a raw push payload.
func NormalizePush(raw map[string]interface{}) NormalizedPush {
	np := NormalizedPush{Original: raw}

	// ref carries the pushed ref; base_ref is the fallback GitHub fills in
	// for pushes created from another ref. First match wins.
	for _, ref := range []string{stringField(raw, "ref"), stringField(raw, "base_ref")} {
		match := refPattern.FindStringSubmatch(ref)
		if match == nil {
			continue
		}
		if match[1] == "heads" {
			np.Branch = match[2]
		} else {
			np.Tag = match[2]
		}
		break
	}

	if pusher, ok := raw["pusher"].(map[string]interface{}); ok {
		np.Pusher = stringField(pusher, "name")
		if np.Pusher == "none" {
			np.Pusher = DeployKeyPusher
		}
	}

	for _, item := range childSlice(raw, "commits") {
		commit, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		for _, path := range stringList(commit["added"]) {
			np.Files.Added = append(np.Files.Added, path)
			np.Files.All = append(np.Files.All, path)
		}
		for _, path := range stringList(commit["removed"]) {
			np.Files.Removed = append(np.Files.Removed, path)
			np.Files.All = append(np.Files.All, path)
		}
		for _, path := range stringList(commit["modified"]) {
			np.Files.Modified = append(np.Files.Modified, path)
			np.Files.All = append(np.Files.All, path)
		}
	}

	return np
}
