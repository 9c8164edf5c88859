package langscan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	cases := []struct {
		input     string
		expectErr bool
		language  string
		region    string
	}{
		{
			input:    "pl",
			language: "pl",
		},
		{
			input:    "en-US",
			language: "en",
			region:   "US",
		},
		{
			input:    "en_GB",
			language: "en",
			region:   "GB",
		},
		{
			input:    "pt-BR",
			language: "pt",
			region:   "BR",
		},
		{
			input:     "invalid",
			expectErr: true,
		},
		{
			// An accept header is not a language code.
			input:     "en-GB,en;q=0.5",
			expectErr: true,
		},
		{
			input:     "../pl",
			expectErr: true,
		},
		{
			input:     "",
			expectErr: true,
		},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			id, err := ParseLanguage(c.input)
			if c.expectErr {
				require.ErrorIs(t, err, ErrInvalidLanguage)
				return
			}

			require.NoError(t, err)
			require.Equal(t, c.language, id.Language)
			require.Equal(t, c.region, id.Region)
		})
	}
}

func TestLanguageIDString(t *testing.T) {
	require.Equal(t, "pl", LanguageID{Language: "pl"}.String())
	require.Equal(t, "en-US", LanguageID{Language: "en", Region: "US"}.String())
}

func TestCatalogPath(t *testing.T) {
	path, err := CatalogPath("resources/lang", "pl")
	require.NoError(t, err)
	require.Equal(t, "resources/lang/pl.json", path)

	path, err = CatalogPath("resources/lang", "en_US")
	require.NoError(t, err)
	require.Equal(t, "resources/lang/en_US.json", path)

	_, err = CatalogPath("resources/lang", "../../etc/passwd")
	require.ErrorIs(t, err, ErrInvalidLanguage)
}
