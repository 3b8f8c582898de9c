package rewrite

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cstamp/internal/ast"
)

// Change is a pending byte-range replacement, not yet written to the file.
type Change struct {
	Range ast.Range
	Text  string
}

// applyChanges splices every change into content and returns the rewritten
// bytes. Changes are applied from the highest start offset downwards so the
// offsets of changes still pending are never shifted by an earlier splice.
// Overlapping ranges are rejected.
func applyChanges(content []byte, changes []Change) ([]byte, error) {
	sorted := make([]Change, len(changes))
	copy(sorted, changes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Range.Start > sorted[j].Range.Start
	})

	for i, c := range sorted {
		if int(c.Range.End) > len(content) {
			return nil, fmt.Errorf("change range [%d,%d) exceeds file size %d", c.Range.Start, c.Range.End, len(content))
		}
		if i > 0 && c.Range.End > sorted[i-1].Range.Start {
			return nil, fmt.Errorf("overlapping changes at offsets %d and %d", c.Range.Start, sorted[i-1].Range.Start)
		}
	}

	out := content
	for _, c := range sorted {
		patched := make([]byte, 0, len(out)-c.Range.Len()+len(c.Text))
		patched = append(patched, out[:c.Range.Start]...)
		patched = append(patched, c.Text...)
		patched = append(patched, out[c.Range.End:]...)
		out = patched
	}
	return out, nil
}

// writeFileAtomic replaces the file at path with content, going through a
// temp file in the same directory and a rename so a crash never leaves a
// half-written target. The original file mode is preserved.
func writeFileAtomic(path string, content []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(info.Mode()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
