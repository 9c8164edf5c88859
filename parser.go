package langscan

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

// ReadCatalog reads the catalog stored at path.
// A missing file, invalid JSON or a JSON value that is not an object results in an empty catalog.
func ReadCatalog(fsys afero.Fs, path string) (*Catalog, error) {
	content, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewCatalog(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	return ParseCatalog(content), nil
}

// ParseCatalog decodes a JSON object into a catalog, keeping the order of the keys.
// When a key is repeated the first position is kept with the last value.
// Values that are not strings are stored as their JSON text, null as an empty string.
func ParseCatalog(data []byte) *Catalog {
	c := NewCatalog()

	if !gjson.ValidBytes(data) {
		return c
	}

	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return c
	}

	result.ForEach(func(key, value gjson.Result) bool {
		c.Set(key.String(), catalogValue(value))
		return true
	})

	return c
}

func catalogValue(value gjson.Result) string {
	switch value.Type {
	case gjson.String:
		return value.String()
	case gjson.Null:
		return ""
	}

	return value.Raw
}
