package gitrepo

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
	gitdiff "github.com/go-git/go-git/v5/utils/diff"
	"github.com/samber/lo"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// StagedChanges returns the difference between the HEAD commit and the
// staged index (not the working tree) with full patch bodies. Staged
// creations, modifications and deletions are covered; exclusion
// patterns are applied as in Changes.
func (r *Repository) StagedChanges(ctx context.Context, excludes []string) ([]ChangedFile, error) {
	head, err := r.resolveCommit("HEAD")
	if err != nil {
		return nil, err
	}
	tree, err := head.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading HEAD tree: %w", err)
	}

	committed := make(map[string]treeEntry)
	err = tree.Files().ForEach(func(f *object.File) error {
		committed[f.Name] = treeEntry{hash: f.Blob.Hash, mode: f.Mode}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking HEAD tree: %w", err)
	}

	idx, err := r.repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}

	var files []ChangedFile
	staged := make(map[string]bool, len(idx.Entries))
	for _, entry := range idx.Entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		staged[entry.Name] = true

		prev, existed := committed[entry.Name]
		if existed && prev.hash == entry.Hash {
			continue
		}

		var changed ChangedFile
		if existed {
			changed, err = r.blobPatch(entry.Name, entry.Name, prev, treeEntry{hash: entry.Hash, mode: entry.Mode})
		} else {
			changed, err = r.blobPatch("", entry.Name, treeEntry{}, treeEntry{hash: entry.Hash, mode: entry.Mode})
		}
		if err != nil {
			return nil, err
		}
		files = append(files, changed)
	}

	// Paths present in HEAD but gone from the index are staged deletions.
	err = tree.Files().ForEach(func(f *object.File) error {
		if staged[f.Name] {
			return nil
		}
		changed, err := r.blobPatch(f.Name, "", treeEntry{hash: f.Blob.Hash, mode: f.Mode}, treeEntry{})
		if err != nil {
			return err
		}
		files = append(files, changed)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return filterExcluded(files, excludes), nil
}

type treeEntry struct {
	hash plumbing.Hash
	mode filemode.FileMode
}

// blobPatch builds the unified patch between two blobs, reusing the
// same encoder tree diffs go through. An empty path on either side
// marks a creation or deletion.
func (r *Repository) blobPatch(oldPath, newPath string, before, after treeEntry) (ChangedFile, error) {
	oldContent, oldBinary, err := r.blobContent(before.hash)
	if err != nil {
		return ChangedFile{}, err
	}
	newContent, newBinary, err := r.blobContent(after.hash)
	if err != nil {
		return ChangedFile{}, err
	}

	fp := indexFilePatch{binary: oldBinary || newBinary}
	if oldPath != "" {
		fp.from = &fileStat{hash: before.hash, mode: before.mode, path: oldPath}
	}
	if newPath != "" {
		fp.to = &fileStat{hash: after.hash, mode: after.mode, path: newPath}
	}
	if !fp.binary {
		fp.chunks = lo.Map(gitdiff.Do(oldContent, newContent), toChunk)
	}
	return encodeFilePatch(fp)
}

// blobContent loads a blob's bytes and reports whether it looks
// binary. A zero hash yields empty content (absent side of the diff).
func (r *Repository) blobContent(hash plumbing.Hash) (string, bool, error) {
	if hash.IsZero() {
		return "", false, nil
	}
	blob, err := r.repo.BlobObject(hash)
	if err != nil {
		return "", false, fmt.Errorf("reading blob %s: %w", hash, err)
	}
	reader, err := blob.Reader()
	if err != nil {
		return "", false, fmt.Errorf("opening blob %s: %w", hash, err)
	}
	defer reader.Close() //nolint:errcheck // read-only object reader

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", false, fmt.Errorf("reading blob %s: %w", hash, err)
	}
	return string(data), bytes.IndexByte(data, 0) >= 0, nil
}

func toChunk(d diffmatchpatch.Diff, _ int) fdiff.Chunk {
	op := fdiff.Equal
	switch d.Type {
	case diffmatchpatch.DiffInsert:
		op = fdiff.Add
	case diffmatchpatch.DiffDelete:
		op = fdiff.Delete
	case diffmatchpatch.DiffEqual:
	}
	return chunk{content: d.Text, op: op}
}

// indexFilePatch, fileStat and chunk implement the plumbing diff
// interfaces over blobs taken from the index, which have no tree to
// diff against.

type indexFilePatch struct {
	from, to fdiff.File
	chunks   []fdiff.Chunk
	binary   bool
}

func (p indexFilePatch) IsBinary() bool               { return p.binary }
func (p indexFilePatch) Files() (from, to fdiff.File) { return p.from, p.to }
func (p indexFilePatch) Chunks() []fdiff.Chunk        { return p.chunks }

type fileStat struct {
	hash plumbing.Hash
	mode filemode.FileMode
	path string
}

func (f *fileStat) Hash() plumbing.Hash     { return f.hash }
func (f *fileStat) Mode() filemode.FileMode { return f.mode }
func (f *fileStat) Path() string            { return f.path }

type chunk struct {
	content string
	op      fdiff.Operation
}

func (c chunk) Content() string       { return c.content }
func (c chunk) Type() fdiff.Operation { return c.op }
