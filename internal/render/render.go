// Package render converts change-set and history records into the
// plain-text or JSON documents served to consumers. One canonical
// shape exists per record type; the key names and rule characters are
// part of the compatibility contract with existing consumers.
package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/gorewood/gitprompts/internal/gitrepo"
)

// ErrEncoding marks a caller-internal invariant violation: patch bytes
// that are not valid UTF-8. It indicates a bug, not a user error.
var ErrEncoding = errors.New("patch text is not valid UTF-8")

const (
	newAddition = "New Addition"
	deletedFile = "Deleted"

	diffRuleWidth    = 50
	historyRuleWidth = 10
)

// DiffEntry is the canonical JSON projection of a changed file.
type DiffEntry struct {
	APath string `json:"a_path" jsonschema:"path before the change, or New Addition"`
	BPath string `json:"b_path" jsonschema:"path after the change, or Deleted"`
	Diff  string `json:"diff"   jsonschema:"raw unified diff body"`
}

// CommitEntry is the canonical JSON projection of a commit.
type CommitEntry struct {
	Hexsha     string `json:"hexsha"      jsonschema:"full commit hash"`
	Author     string `json:"author"      jsonschema:"author display name"`
	CreateTime string `json:"create_time" jsonschema:"authoring time, UTC, ISO-8601"`
	Message    string `json:"message"     jsonschema:"full commit message, trimmed"`
}

// Renderer produces documents in the single format chosen at startup.
// Rendering is pure: it never touches the repository.
type Renderer struct {
	format Format
}

// New returns a Renderer for the given format.
func New(format Format) *Renderer {
	return &Renderer{format: format}
}

// Format returns the renderer's output format.
func (r *Renderer) Format() Format {
	return r.format
}

// FormatName returns the format name used in framing sentences.
func (r *Renderer) FormatName() string {
	return r.format.Name()
}

// DiffEntries projects changed files onto their canonical JSON shape,
// substituting "New Addition" and "Deleted" for absent paths. The
// error wraps ErrEncoding if any patch body is not valid UTF-8.
func DiffEntries(files []gitrepo.ChangedFile) ([]DiffEntry, error) {
	for _, f := range files {
		if !utf8.ValidString(f.PatchText) {
			return nil, fmt.Errorf("%s -> %s: %w", f.OldPath, f.NewPath, ErrEncoding)
		}
	}
	return lo.Map(files, func(f gitrepo.ChangedFile, _ int) DiffEntry {
		return DiffEntry{
			APath: valueOr(f.OldPath, newAddition),
			BPath: valueOr(f.NewPath, deletedFile),
			Diff:  f.PatchText,
		}
	}), nil
}

// CommitEntries projects commits onto their canonical JSON shape.
func CommitEntries(commits []gitrepo.Commit) []CommitEntry {
	return lo.Map(commits, func(c gitrepo.Commit, _ int) CommitEntry {
		return CommitEntry{
			Hexsha:     c.SHA,
			Author:     c.Author,
			CreateTime: c.When.UTC().Format(time.RFC3339),
			Message:    c.Message,
		}
	})
}

// Changes renders a change set. Plain text emits, per file, a
// "File: old -> new" header, a 50-dash rule, the raw patch body and a
// 50-equals rule; JSON emits a pretty-printed array of
// {a_path, b_path, diff} objects with non-ASCII content preserved.
func (r *Renderer) Changes(files []gitrepo.ChangedFile) (string, error) {
	entries, err := DiffEntries(files)
	if err != nil {
		return "", err
	}
	if r.format == JSON {
		return marshalIndented(entries)
	}

	blocks := lo.Map(entries, func(e DiffEntry, _ int) string {
		var b strings.Builder
		fmt.Fprintf(&b, "File: %s -> %s\n", e.APath, e.BPath)
		b.WriteString(strings.Repeat("-", diffRuleWidth))
		b.WriteString("\n")
		b.WriteString(e.Diff)
		b.WriteString(strings.Repeat("=", diffRuleWidth))
		b.WriteString("\n")
		return b.String()
	})
	return strings.Join(blocks, "\n"), nil
}

// History renders a history range. Plain text with no commits is the
// literal no-commits sentence; otherwise a header naming the range,
// then one block per commit separated by a 10-dash rule. JSON is a
// pretty-printed array of {hexsha, author, create_time, message}.
func (r *Renderer) History(commits []gitrepo.Commit, ancestor string) (string, error) {
	if r.format == JSON {
		return marshalIndented(CommitEntries(commits))
	}
	if len(commits) == 0 {
		return NoCommitsMessage(ancestor), nil
	}

	rule := strings.Repeat("-", historyRuleWidth)
	blocks := lo.Map(commits, func(c gitrepo.Commit, _ int) string {
		return fmt.Sprintf("%s by %s at %s\n\n%s",
			c.SHA, c.Author, c.When.UTC().Format(time.RFC3339), c.Message)
	})
	return fmt.Sprintf("Commit messages between %s and HEAD:\n%s\n\n%s",
		ancestor, rule, strings.Join(blocks, "\n\n"+rule+"\n\n")), nil
}

// HistoryError renders the explicit empty-history object used when a
// standalone JSON history would otherwise be an ambiguous empty array.
func (r *Renderer) HistoryError(ancestor string) string {
	out, _ := json.Marshal(map[string]string{"error_message": NoCommitsMessage(ancestor)})
	return string(out)
}

// Composite renders the combined history-plus-diff document used by
// the PR-description and commit-message views. JSON nests the two
// record arrays under commit_history and diff; plain text concatenates
// the two renderings with a blank line.
func (r *Renderer) Composite(commits []gitrepo.Commit, files []gitrepo.ChangedFile, ancestor string) (string, error) {
	if r.format == JSON {
		entries, err := DiffEntries(files)
		if err != nil {
			return "", err
		}
		doc := struct {
			CommitHistory []CommitEntry `json:"commit_history"`
			Diff          []DiffEntry   `json:"diff"`
		}{CommitEntries(commits), entries}
		return marshalIndented(doc)
	}

	history, err := r.History(commits, ancestor)
	if err != nil {
		return "", err
	}
	changes, err := r.Changes(files)
	if err != nil {
		return "", err
	}
	return history + "\n\n" + changes, nil
}

// NoCommitsMessage is the literal sentence for an empty history range.
func NoCommitsMessage(ancestor string) string {
	return fmt.Sprintf("No commits found between %s and HEAD.", ancestor)
}

// marshalIndented encodes v with 2-space indentation and without
// HTML escaping, so patch bodies keep <, > and & intact.
func marshalIndented(v any) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return "", fmt.Errorf("encoding JSON: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
