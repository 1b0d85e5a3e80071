package validator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSet(t *testing.T, manifest string, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "set.toml"), []byte(manifest), 0644))
	for _, f := range files {
		p := filepath.Join(dir, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}
	return dir
}

func TestValidSet(t *testing.T) {
	dir := makeSet(t, `
[set]
id = "fruit"
name = "Fruit"
schema_version = "1.0"
back = "back.png"

[[faces]]
image = "img/apple.png"

[[faces]]
label = "🍒"
`, "back.png", "img/apple.png")

	results, err := NewValidator(dir).Validate()
	require.NoError(t, err)
	assert.Empty(t, results.Errors)
	assert.Equal(t, []string{"set has 2 faces, a full board needs 18"}, results.Warnings)
}

func TestInvalidSet(t *testing.T) {
	dir := makeSet(t, `
[set]
schema_version = "2.0"
back = "missing-back.png"

[[faces]]
image = "a.png"

[[faces]]
image = "a.png"

[[faces]]

[[faces]]
label = "x"

[[faces]]
label = "x"

[[faces]]
image = "art.svg"
`, "a.png", "art.svg")

	results, err := NewValidator(dir).Validate()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"set.id is required in set.toml",
		"set.name is required in set.toml",
		"unsupported schema_version: 2.0 (supported: 1.0)",
		"back face image not found: missing-back.png",
		"faces[2] repeats the image of faces[1]: a.png",
		"faces[3] needs an image or a label",
		"faces[5] repeats the glyph of faces[4]: x",
	}, results.Errors)
	assert.Contains(t, results.Warnings, "faces[6] uses an unsupported image format (.svg), it will be shown as text")
}

func TestMissingManifest(t *testing.T) {
	_, err := NewValidator(t.TempDir()).Validate()
	assert.ErrorContains(t, err, "set.toml not found")
}

func TestBrokenManifest(t *testing.T) {
	dir := makeSet(t, "[set\n")
	_, err := NewValidator(dir).Validate()
	assert.ErrorContains(t, err, "error parsing set.toml")
}
