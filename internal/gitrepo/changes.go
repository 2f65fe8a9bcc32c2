package gitrepo

import (
	"bytes"
	"context"
	"fmt"

	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/samber/lo"

	"github.com/gorewood/gitprompts/internal/match"
)

// Changes returns the changed files between source and target with
// full per-file patch bodies. Entries whose old or new path matches an
// exclusion pattern are dropped; the order of survivors follows the
// underlying tree diff.
func (r *Repository) Changes(ctx context.Context, source, target string, excludes []string) ([]ChangedFile, error) {
	src, err := r.resolveCommit(source)
	if err != nil {
		return nil, err
	}
	dst, err := r.resolveCommit(target)
	if err != nil {
		return nil, err
	}

	patch, err := src.PatchContext(ctx, dst)
	if err != nil {
		return nil, fmt.Errorf("diffing %s..%s: %w", source, target, err)
	}

	files := make([]ChangedFile, 0, len(patch.FilePatches()))
	for _, fp := range patch.FilePatches() {
		changed, err := encodeFilePatch(fp)
		if err != nil {
			return nil, err
		}
		files = append(files, changed)
	}
	return filterExcluded(files, excludes), nil
}

// encodeFilePatch renders one file patch as unified diff text and
// extracts its old/new paths. A nil from-file is a creation, a nil
// to-file a deletion.
func encodeFilePatch(fp fdiff.FilePatch) (ChangedFile, error) {
	var buf bytes.Buffer
	encoder := fdiff.NewUnifiedEncoder(&buf, fdiff.DefaultContextLines)
	if err := encoder.Encode(singleFilePatch{fp}); err != nil {
		return ChangedFile{}, fmt.Errorf("encoding patch: %w", err)
	}

	changed := ChangedFile{PatchText: buf.String()}
	from, to := fp.Files()
	if from != nil {
		changed.OldPath = from.Path()
	}
	if to != nil {
		changed.NewPath = to.Path()
	}
	return changed, nil
}

// singleFilePatch adapts one FilePatch to the Patch interface the
// unified encoder consumes, so each file gets its own patch body.
type singleFilePatch struct {
	fp fdiff.FilePatch
}

func (p singleFilePatch) FilePatches() []fdiff.FilePatch { return []fdiff.FilePatch{p.fp} }
func (p singleFilePatch) Message() string                { return "" }

func filterExcluded(files []ChangedFile, excludes []string) []ChangedFile {
	return lo.Filter(files, func(f ChangedFile, _ int) bool {
		return !match.ExcludedFile(f.OldPath, f.NewPath, excludes)
	})
}
