package langscan

import (
	"fmt"
	"iter"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// DefaultExtension is the extension of the files that are scanned when no other extension is configured.
const DefaultExtension = "php"

// SourceUnit is the content of a single source file.
type SourceUnit struct {
	Path string
	Text string
}

// Progress receives a tick for every file that has been handled.
// *progressbar.ProgressBar satisfies it.
type Progress interface {
	Add(num int) error
}

// CollectKeys extracts the literals of all units and returns them deduplicated and sorted ascending.
func CollectKeys(units iter.Seq[SourceUnit]) []string {
	pool := make(map[string]struct{})
	for unit := range units {
		for m := range Matches(unit.Text) {
			pool[m.Text] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(pool))
}

// NewExtractor creates an extractor that reads source files from fs.
func NewExtractor(fs afero.Fs, opts ...Opt) (*Extractor, error) {
	e := &Extractor{
		fs:        fs,
		extension: DefaultExtension,
		logger:    zerolog.Nop(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Extractor finds translation keys in a tree of source files.
type Extractor struct {
	fs        afero.Fs
	extension string
	// Paths relative to the scanned root that match any of these patterns are not enumerated.
	exclude []glob.Glob
	logger  zerolog.Logger
}

// Opt is a functional option for the Extractor.
type Opt func(*Extractor) error

// WithExtension sets the extension (without dot) of the files to scan. The comparison is case-sensitive.
func WithExtension(ext string) Opt {
	return func(e *Extractor) error {
		if ext == "" {
			return fmt.Errorf("extension can not be empty")
		}

		e.extension = ext
		return nil
	}
}

// WithExclude skips every path (relative to the scanned root, slash separated) that matches one of the patterns.
// A matching directory is skipped with all of its content.
func WithExclude(patterns ...string) Opt {
	return func(e *Extractor) error {
		for _, pattern := range patterns {
			g, err := glob.Compile(pattern, '/')
			if err != nil {
				return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
			}

			e.exclude = append(e.exclude, g)
		}

		return nil
	}
}

// WithLogger sets the logger used to report scanned files.
func WithLogger(logger zerolog.Logger) Opt {
	return func(e *Extractor) error {
		e.logger = logger
		return nil
	}
}

// Files returns all files below root in lexical order, regardless of their extension.
func (e *Extractor) Files(root string) ([]string, error) {
	var files []string

	err := afero.Walk(e.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if path != root && e.excluded(root, path) {
			e.logger.Debug().Str("path", path).Msg("excluded")
			if info.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if !info.IsDir() {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	return files, nil
}

// Accepts reports whether the file at path is scanned for translation keys.
func (e *Extractor) Accepts(path string) bool {
	return filepath.Ext(path) == "."+e.extension
}

// KeysFromFiles scans every accepted file and returns the unique keys sorted ascending.
// Reading stops at the first file that can not be read. Progress may be nil.
func (e *Extractor) KeysFromFiles(files []string, progress Progress) ([]string, error) {
	var readErr error

	units := func(yield func(SourceUnit) bool) {
		for _, path := range files {
			if e.Accepts(path) {
				content, err := afero.ReadFile(e.fs, path)
				if err != nil {
					readErr = fmt.Errorf("reading source file %s: %w", path, err)
					return
				}

				e.logger.Debug().Str("path", path).Int("bytes", len(content)).Msg("scanning")

				if !yield(SourceUnit{Path: path, Text: string(content)}) {
					return
				}
			}

			if progress != nil {
				_ = progress.Add(1)
			}
		}
	}

	keys := CollectKeys(units)
	if readErr != nil {
		return nil, readErr
	}

	return keys, nil
}

// KeysFromDir scans every accepted file below root and returns the unique keys sorted ascending.
func (e *Extractor) KeysFromDir(root string) ([]string, error) {
	files, err := e.Files(root)
	if err != nil {
		return nil, err
	}

	return e.KeysFromFiles(files, nil)
}

func (e *Extractor) excluded(root, path string) bool {
	if len(e.exclude) == 0 {
		return false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	rel = filepath.ToSlash(rel)
	for _, g := range e.exclude {
		if g.Match(rel) {
			return true
		}
	}

	return false
}
