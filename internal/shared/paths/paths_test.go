package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := Expand("~/decks/q1.pptx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "decks", "q1.pptx"), got)

	got, err = Expand("relative/file.docx")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))

	_, err = Expand("")
	assert.Error(t, err)
}

func TestExtensions(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ext  string
		with string
		ens  string
	}{
		{"no extension", "/out/report", ".docx", "/out/report.docx", "/out/report.docx"},
		{"swap pdf", "/out/deck.pptx", ".pdf", "/out/deck.pdf", "/out/deck.pptx"},
		{"upper case", "/out/BOOK.XLSX", ".xlsx", "/out/BOOK.xlsx", "/out/BOOK.XLSX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.with, WithExt(tt.in, tt.ext))
			assert.Equal(t, tt.ens, EnsureExt(tt.in, tt.ext))
		})
	}
	assert.Equal(t, ".xlsx", Ext("/out/BOOK.XLSX"))
}

func TestTemplateKind(t *testing.T) {
	tests := map[string]Kind{
		"a.pptx": KindPowerPoint,
		"a.POTX": KindPowerPoint,
		"b.docx": KindWord,
		"b.dotx": KindWord,
		"c.xlsx": KindExcel,
		"c.xltx": KindExcel,
	}
	for name, want := range tests {
		kind, ok := TemplateKind(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, kind, name)
	}

	_, ok := TemplateKind("notes.txt")
	assert.False(t, ok)
}

func TestPrepareOutput(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "deeper", "deck.pptx")

	got, err := PrepareOutput(target)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	info, err := os.Stat(filepath.Dir(target))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWorkingFile(t *testing.T) {
	assert.Equal(t, filepath.Join("/tmp/w", "abc.pptx"), WorkingFile("/tmp/w", "abc", ExtPPTX))
}
