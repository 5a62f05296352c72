package internal

import (
	"context"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
	"github.com/sirupsen/logrus"
)

const maxArchiveEntries = 10000 // zip-bomb protection

// StdinPath is the input identifier that denotes standard input.
const StdinPath = "-"

// StdinName is printed in place of a path when reading standard input.
const StdinName = "<stdin>"

// Input identifies one logical buffer to scan. Inner is set for entries
// inside an archive.
type Input struct {
	Path  string
	Inner string
}

// DisplayName is the identifier written in filename mode and used in
// diagnostics.
func (in Input) DisplayName() string {
	if in.Path == StdinPath {
		return StdinName
	}
	if in.Inner != "" {
		return in.Path + "::" + in.Inner
	}
	return in.Path
}

// IsArchive by extension. O(1) map lookup
var archiveExt = map[string]struct{}{
	".zip": {}, ".tar": {}, ".gz": {}, ".bz2": {}, ".xz": {},
	".rar": {}, ".br": {}, ".lz4": {}, ".lz": {}, ".mz": {},
	".sz": {}, ".s2": {}, ".zz": {}, ".zst": {}, ".7z": {},
}

func IsArchive(path string) bool {
	_, ok := archiveExt[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ExpandInputs turns the CLI's path arguments into the ordered list of
// logical inputs: directories are walked when Recursive is set, archives
// are expanded into their entries when Archives is set. Order is
// preserved; any expansion failure aborts the run.
func ExpandInputs(ctx context.Context, paths []string, opts Options) ([]Input, error) {
	var inputs []Input
	for _, p := range paths {
		if p == StdinPath {
			inputs = append(inputs, Input{Path: StdinPath})
			continue
		}
		st, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", p, err)
		}
		switch {
		case st.IsDir():
			if !opts.Recursive {
				return nil, fmt.Errorf("%q is a directory (use --recursive)", p)
			}
			dirInputs, err := expandDir(ctx, p, opts)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, dirInputs...)
		case opts.Archives && IsArchive(p):
			entries, err := expandArchive(ctx, p)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, entries...)
		default:
			inputs = append(inputs, Input{Path: p})
		}
	}
	return inputs, nil
}

// expandDir walks root depth-first, cutting branches deeper than
// opts.Depth (0 means unlimited).
func expandDir(ctx context.Context, root string, opts Options) ([]Input, error) {
	var inputs []Input
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %q: %w", path, err)
		}
		if d.IsDir() {
			if opts.Depth > 0 {
				rel, _ := filepath.Rel(root, path)
				if rel != "." && depthCount(rel) >= opts.Depth {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if opts.Archives && IsArchive(path) {
			entries, err := expandArchive(ctx, path)
			if err != nil {
				return err
			}
			inputs = append(inputs, entries...)
			return nil
		}
		inputs = append(inputs, Input{Path: path})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inputs, nil
}

// expandArchive lists an archive's regular entries as inputs.
func expandArchive(ctx context.Context, path string) ([]Input, error) {
	fsys, err := archives.FileSystem(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("open archive %q: %w", path, err)
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer closer.Close()
	}

	var inputs []Input
	err = iofs.WalkDir(fsys, ".", func(inner string, d iofs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk archive %q: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if len(inputs) >= maxArchiveEntries {
			logrus.Warnf("Archive %s truncated: too many entries (>= %d)", path, maxArchiveEntries)
			return iofs.SkipAll
		}
		inputs = append(inputs, Input{Path: path, Inner: inner})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inputs, nil
}

func depthCount(rel string) int {
	if rel == "" {
		return 0
	}
	return strings.Count(rel, string(os.PathSeparator)) + 1
}
