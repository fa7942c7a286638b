package keyfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKeyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keys.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "one key per line",
			content:  "key-one\nkey-two\nkey-three\n",
			expected: []string{"key-one", "key-two", "key-three"},
		},
		{
			name:     "blank lines and comments skipped",
			content:  "# production keys\n\nkey-one\n\n  # staging\nkey-two\n",
			expected: []string{"key-one", "key-two"},
		},
		{
			name:     "whitespace trimmed",
			content:  "  key-one  \n\tkey-two\n",
			expected: []string{"key-one", "key-two"},
		},
		{
			name:     "empty file yields no keys",
			content:  "",
			expected: []string{},
		},
		{
			name:     "comments only yields no keys",
			content:  "# nothing here\n# at all\n",
			expected: []string{},
		},
		{
			name:     "no trailing newline",
			content:  "key-one",
			expected: []string{"key-one"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys, err := Load(writeKeyFile(t, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, keys)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	keys, err := Load(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	assert.Error(t, err)
	assert.Nil(t, keys)
}
