// Package importer bulk-loads snippet files from a directory tree.
package importer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/snip-dev/snip/internal/snippet"
)

// MaxFileSize is the largest file the importer will turn into a snippet.
const MaxFileSize = 256 * 1024

// Options configures an import run.
type Options struct {
	// Root is the directory to walk.
	Root string
	// Tags are attached to every imported snippet.
	Tags []string
	// Progress, if set, is called once per imported file.
	Progress func(path string)
}

// Result summarises an import run.
type Result struct {
	Imported int
	Skipped  int
	Failed   int
	Errors   []error
}

// Creator is the subset of the snippet store the importer needs.
type Creator interface {
	Create(snippet.Snippet) error
}

// Import walks opts.Root and creates one snippet per importable file.
// Gitignored paths, dotfiles, binaries, oversized files, and names that
// already exist in the store are skipped, not errors.
func Import(store Creator, opts Options) (Result, error) {
	var res Result

	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return res, fmt.Errorf("importer: resolve root: %w", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return res, fmt.Errorf("importer: %s is not a directory", opts.Root)
	}

	ignore := NewIgnoreMatcher(root)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, err)
			return nil
		}
		if d.IsDir() {
			if path != root && HardIgnore(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if ignore.Match(rel) || SkipFile(d.Name()) {
			res.Skipped++
			return nil
		}

		info, err := d.Info()
		if err != nil || info.Size() > MaxFileSize {
			res.Skipped++
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Errorf("read %s: %w", rel, err))
			return nil
		}
		if len(content) == 0 || !utf8.Valid(content) {
			res.Skipped++
			return nil
		}

		sn := snippet.New(
			NameForPath(rel),
			string(content),
			snippet.LanguageForFile(path),
			opts.Tags,
		)
		if err := store.Create(sn); err != nil {
			if errors.Is(err, snippet.ErrDuplicateName) {
				res.Skipped++
				return nil
			}
			res.Failed++
			res.Errors = append(res.Errors, fmt.Errorf("import %s: %w", rel, err))
			return nil
		}

		res.Imported++
		if opts.Progress != nil {
			opts.Progress(rel)
		}
		return nil
	})

	return res, err
}

// NameForPath derives a snippet name from a relative file path:
// separators become dashes and the extension is dropped.
func NameForPath(rel string) string {
	name := filepath.ToSlash(rel)
	if ext := filepath.Ext(name); ext != "" {
		name = name[:len(name)-len(ext)]
	}
	name = strings.ReplaceAll(name, "/", "-")
	if len(name) > snippet.MaxNameLength {
		name = name[:snippet.MaxNameLength]
	}
	return name
}
