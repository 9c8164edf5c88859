package langscan

import (
	"bytes"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// jsonEscaper escapes catalog text for the output file.
// Only double quotes and line breaks are escaped, a backslash is written as is.
var jsonEscaper = strings.NewReplacer(`"`, `\"`, "\n", `\n`)

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{values: make(map[string]string)}
}

// Catalog maps translation keys to their translations.
// Keys are kept in insertion order.
type Catalog struct {
	keys   []string
	values map[string]string
}

// Set stores the value for key. A new key is appended, an existing key keeps its position.
func (c *Catalog) Set(key, value string) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}

	c.values[key] = value
}

// Get returns the value for key.
func (c *Catalog) Get(key string) (string, bool) {
	value, ok := c.values[key]
	return value, ok
}

// Has reports whether key is in the catalog.
func (c *Catalog) Has(key string) bool {
	_, ok := c.values[key]
	return ok
}

// Keys returns the keys in catalog order.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.keys)
}

// Merge appends every key that is not in the catalog yet, using the key as its value.
// Existing translations are never changed. Keys should be sorted and unique, as returned by CollectKeys.
// The appended keys are returned.
func (c *Catalog) Merge(keys []string) []string {
	var added []string
	for _, key := range keys {
		if c.Has(key) {
			continue
		}

		c.Set(key, key)
		added = append(added, key)
	}

	return added
}

// Marshal renders the catalog as a JSON object with one four space indented entry per line.
func (c *Catalog) Marshal() []byte {
	var buf bytes.Buffer

	buf.WriteString("{\n")
	for i, key := range c.keys {
		if i > 0 {
			buf.WriteString(",\n")
		}

		fmt.Fprintf(&buf, `    "%s": "%s"`, jsonEscaper.Replace(key), jsonEscaper.Replace(c.values[key]))
	}
	buf.WriteString("\n}\n")

	return buf.Bytes()
}

// MarshalText implements encoding.TextMarshaler.
func (c *Catalog) MarshalText() ([]byte, error) {
	return c.Marshal(), nil
}

// WriteCatalog replaces the file at path with content.
// The content is written to a temporary file first so readers never see a partially written catalog.
// An existing file keeps its permissions, a new file is created with 0644.
func WriteCatalog(fs afero.Fs, path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, iofs.ErrNotExist) {
		return fmt.Errorf("reading catalog permissions: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating catalog directory: %w", err)
	}

	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temporary catalog: %w", err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(content)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("writing temporary catalog: %w", err)
	}

	if err := fs.Chmod(tmpName, mode); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("setting catalog permissions: %w", err)
	}

	if err := fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("replacing catalog: %w", err)
	}

	return nil
}

// Result describes an updated catalog.
type Result struct {
	Path string
	// Kept is the number of entries that were already in the catalog.
	Kept int
	// Added holds the keys appended to the catalog, sorted ascending.
	Added   []string
	Content []byte
}

// UpdateCatalog merges keys into the catalog at path and renders the new content.
// The file itself is only replaced when write is true.
func UpdateCatalog(fs afero.Fs, path string, keys []string, write bool) (*Result, error) {
	catalog, err := ReadCatalog(fs, path)
	if err != nil {
		return nil, err
	}

	kept := catalog.Len()
	added := catalog.Merge(keys)
	content := catalog.Marshal()

	if write {
		if err := WriteCatalog(fs, path, content); err != nil {
			return nil, err
		}
	}

	return &Result{
		Path:    path,
		Kept:    kept,
		Added:   added,
		Content: content,
	}, nil
}
