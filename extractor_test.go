package langscan

import (
	"os"
	"slices"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestCollectKeys(t *testing.T) {
	units := []SourceUnit{
		{Path: "b.php", Text: `__('Shared') __('Zebra')`},
		{Path: "a.php", Text: `@lang('Shared') __('Apple') __('apple')`},
		{Path: "c.php", Text: `__()`},
	}

	keys := CollectKeys(slices.Values(units))
	require.Equal(t, []string{"Apple", "Shared", "Zebra", "apple"}, keys)
}

func TestCollectKeysEmpty(t *testing.T) {
	require.Empty(t, CollectKeys(slices.Values([]SourceUnit(nil))))
}

func TestKeysFromDir(t *testing.T) {
	extractor, err := NewExtractor(afero.NewOsFs())
	require.NoError(t, err)

	keys, err := extractor.KeysFromDir("./testdata/extractor")
	require.NoError(t, err)

	require.Equal(t, []string{
		"Dashboard",
		"It's saved",
		"Record created",
		"Vendor text",
		"Welcome",
		"Welcome back, :name",
	}, keys)
}

func TestKeysFromDirExclude(t *testing.T) {
	extractor, err := NewExtractor(afero.NewOsFs(), WithExclude("vendor"))
	require.NoError(t, err)

	keys, err := extractor.KeysFromDir("./testdata/extractor")
	require.NoError(t, err)

	require.NotContains(t, keys, "Vendor text")
	require.Len(t, keys, 5)
}

func TestFilesListsEveryFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, file := range []string{"/app/b.php", "/app/a.txt", "/app/sub/c.php", "/app/storage/cache/d.php"} {
		require.NoError(t, afero.WriteFile(fs, file, []byte(`__('x')`), 0o644))
	}

	extractor, err := NewExtractor(fs, WithExclude("storage/**"))
	require.NoError(t, err)

	files, err := extractor.Files("/app")
	require.NoError(t, err)
	require.Equal(t, []string{"/app/a.txt", "/app/b.php", "/app/sub/c.php"}, files)
}

func TestWithExtension(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/app/a.php", []byte(`__('From php')`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/app/b.blade", []byte(`__('From blade')`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/app/c.PHP", []byte(`__('Upper case')`), 0o644))

	extractor, err := NewExtractor(fs, WithExtension("blade"))
	require.NoError(t, err)

	keys, err := extractor.KeysFromDir("/app")
	require.NoError(t, err)
	require.Equal(t, []string{"From blade"}, keys)

	_, err = NewExtractor(fs, WithExtension(""))
	require.Error(t, err)
}

func TestInvalidExcludePattern(t *testing.T) {
	_, err := NewExtractor(afero.NewMemMapFs(), WithExclude("[unclosed"))
	require.Error(t, err)
}

func TestKeysFromFilesProgress(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/app/a.php", []byte(`__('A')`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/app/b.txt", []byte(`__('B')`), 0o644))

	extractor, err := NewExtractor(fs)
	require.NoError(t, err)

	files, err := extractor.Files("/app")
	require.NoError(t, err)

	progress := &countingProgress{}
	keys, err := extractor.KeysFromFiles(files, progress)
	require.NoError(t, err)
	require.Equal(t, []string{"A"}, keys)
	require.Equal(t, 2, progress.count)
}

func TestKeysFromFilesUnreadable(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/app/a.php", []byte(`__('A')`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/app/b.php", []byte(`__('B')`), 0o644))

	extractor, err := NewExtractor(&failingOpenFs{Fs: fs, path: "/app/b.php"})
	require.NoError(t, err)

	_, err = extractor.KeysFromFiles([]string{"/app/a.php", "/app/b.php"}, nil)
	require.ErrorIs(t, err, os.ErrPermission)
	require.ErrorContains(t, err, "/app/b.php")
}

type countingProgress struct {
	count int
}

func (p *countingProgress) Add(num int) error {
	p.count += num
	return nil
}

// failingOpenFs fails to open a single path.
type failingOpenFs struct {
	afero.Fs
	path string
}

func (f *failingOpenFs) Open(name string) (afero.File, error) {
	if name == f.path {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}

	return f.Fs.Open(name)
}
