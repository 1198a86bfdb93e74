// Package fileset discovers the files a rewrite run operates on.
//
// Callers hand it a mix of file and directory paths; directories are
// walked recursively. Regex include/exclude filters match against
// slash-separated relative paths, and a size cap keeps the walk away
// from artifacts that were never meant to be rewritten.
package fileset

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// File is one discovered file.
type File struct {
	// Absolute is the resolved filesystem path.
	Absolute string

	// Relative is the path as addressed by the caller, slash-separated.
	// Filters match against this.
	Relative string

	// Base is the path within its collect root; for file arguments it is
	// the caller's relative path, or the basename when the argument is
	// absolute or escapes the working directory. Output-directory
	// layouts key on this.
	Base string
}

// Raw reads the file's full content.
func (f File) Raw() ([]byte, error) {
	return os.ReadFile(f.Absolute)
}

// Size returns the file's size in bytes.
func (f File) Size() (int64, error) {
	info, err := os.Stat(f.Absolute)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// FileSet is an ordered collection of discovered files.
type FileSet []File

// Paths returns the relative paths, in discovery order.
func (fi FileSet) Paths() []string {
	paths := make([]string, len(fi))
	for i, f := range fi {
		paths[i] = f.Relative
	}
	return paths
}

// Options controls discovery.
type Options struct {
	// Include, when non-nil, keeps only files whose relative path
	// matches.
	Include *regexp.Regexp

	// Exclude, when non-nil, drops files whose relative path matches.
	Exclude *regexp.Regexp

	// MaxSize drops files larger than this many bytes. Zero means no
	// limit.
	MaxSize int64
}

// Collect expands the given paths into a FileSet. Files are taken as-is
// (subject to filters); directories are walked recursively, skipping
// .git and vendor.
func Collect(paths []string, opts Options) (FileSet, error) {
	var found FileSet
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if !info.IsDir() {
			rel := filepath.Clean(path)
			if opts.keep(filepath.ToSlash(rel), info.Size()) {
				found = append(found, newFile(path, rel, fileBase(rel)))
			}
			continue
		}

		walked, err := walk(path, opts)
		if err != nil {
			return nil, err
		}
		found = append(found, walked...)
	}
	return found, nil
}

func walk(root string, opts Options) (FileSet, error) {
	var found FileSet
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" || d.Name() == "vendor" {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		rel := filepath.ToSlash(filepath.Clean(path))
		if !opts.keep(rel, info.Size()) {
			return nil
		}
		base, err := filepath.Rel(root, path)
		if err != nil {
			base = filepath.Base(path)
		}
		found = append(found, newFile(path, filepath.Clean(path), base))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return found, nil
}

// fileBase derives the output-layout key for a file argument: the
// cleaned relative path when it stays inside the working directory, so
// sibling files with the same name land in distinct output locations.
// Absolute and parent-escaping arguments fall back to the file name.
func fileBase(rel string) string {
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Base(rel)
	}
	return rel
}

func (o Options) keep(rel string, size int64) bool {
	if o.MaxSize > 0 && size > o.MaxSize {
		return false
	}
	if o.Include != nil && !o.Include.MatchString(rel) {
		return false
	}
	if o.Exclude != nil && o.Exclude.MatchString(rel) {
		return false
	}
	return true
}

func newFile(path, rel, base string) File {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return File{
		Absolute: abs,
		Relative: filepath.ToSlash(rel),
		Base:     filepath.ToSlash(base),
	}
}

// LooksBinary reports whether content appears to be binary, using the
// usual NUL-byte sniff over the first 8000 bytes.
func LooksBinary(content []byte) bool {
	sniff := content
	if len(sniff) > 8000 {
		sniff = sniff[:8000]
	}
	return bytes.IndexByte(sniff, 0) >= 0
}
