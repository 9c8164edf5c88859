package langscan

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no language code is given.
const DefaultLanguage = "pl"

var (
	ErrInvalidLanguage = errors.New("invalid language")

	langRe = regexp.MustCompile(`^(?i)([a-z]{2,8})([-_][a-z]{4})?([-_][a-z]{2}|[-_]\d{3})?$`)
)

// LanguageID holds the language and an optional region.
type LanguageID struct {
	Language string
	Region   string
}

func (l LanguageID) String() string {
	if l.Region != "" {
		return l.Language + "-" + l.Region
	}

	return l.Language
}

// ParseLanguage parses a language code like pl, en_US or pt-BR.
func ParseLanguage(code string) (LanguageID, error) {
	if !langRe.MatchString(code) {
		return LanguageID{}, fmt.Errorf("%w: %q", ErrInvalidLanguage, code)
	}

	tag, err := language.Parse(code)
	if err != nil {
		return LanguageID{}, fmt.Errorf("%w: %q: %w", ErrInvalidLanguage, code, err)
	}

	var id LanguageID

	base, baseconf := tag.Base()
	if baseconf != language.Exact {
		return LanguageID{}, fmt.Errorf("%w: %q: could not parse base language", ErrInvalidLanguage, code)
	}

	id.Language = base.String()

	region, regionconf := tag.Region()
	if regionconf == language.Exact {
		id.Region = region.String()
	}

	return id, nil
}

// CatalogPath returns the path of the catalog for the language code in dir.
// The code is used as given, so en_US is stored in en_US.json.
func CatalogPath(dir, code string) (string, error) {
	if _, err := ParseLanguage(code); err != nil {
		return "", err
	}

	return filepath.Join(dir, code+".json"), nil
}
