package images

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/accu-org/accu-website/converter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0o755))
	require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
}

func TestCopy(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "article", "images")

	writeFile(t, filepath.Join(src, "content", "images", "journals", "cv31-5", "fig1.png"), "one")
	writeFile(t, filepath.Join(src, "content", "images", "journals", "cv31-5", "fig2.jpg"), "two")

	err := Copy([]converter.Rename{
		{Original: "content/images/journals/cv31-5/fig1.png", New: "my_title_1.png"},
		{Original: "content/images/journals/cv31-5/fig2.jpg", New: "my_title_2.jpg"},
	}, src, dst)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dst, "my_title_1.png"))
	require.NoError(t, err)
	assert.Equal(t, "one", string(got))

	got, err = os.ReadFile(filepath.Join(dst, "my_title_2.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))
}

func TestCopyEmptyPlanCreatesNothing(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "unused")
	require.NoError(t, Copy(nil, t.TempDir(), dst))
	assert.NoDirExists(t, dst)
}

func TestCopyMissingSource(t *testing.T) {
	err := Copy([]converter.Rename{{Original: "content/images/journals/nope.png", New: "x_1.png"}}, t.TempDir(), t.TempDir())
	require.ErrorIs(t, err, ErrMissingSource)
}

func TestCopyRejectsPathNames(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "a.png"), "a")

	for _, name := range []string{"", "../a.png", "dir/a.png", ".."} {
		err := Copy([]converter.Rename{{Original: "a.png", New: name}}, src, t.TempDir())
		require.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}
