package readme

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/naka-gawa/readme-streak/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	start = "<!-- STREAK:START -->"
	end   = "<!-- STREAK:END -->"
)

func TestReplace(t *testing.T) {
	testCases := []struct {
		name        string
		text        string
		expected    string
		expectError bool
	}{
		{
			name:     "replaces the region and keeps the surroundings",
			text:     "# Hi\n\n" + start + "\nold\nstuff\n" + end + "\n\nfooter\n",
			expected: "# Hi\n\nNEW\n\nfooter\n",
		},
		{
			name:     "empty region",
			text:     start + end,
			expected: "NEW",
		},
		{
			name:     "only the first region is replaced",
			text:     start + "a" + end + "|" + start + "b" + end,
			expected: "NEW|" + start + "b" + end,
		},
		{
			name:     "end marker before start is skipped",
			text:     end + "x" + start + "y" + end + "z",
			expected: end + "xNEWz",
		},
		{
			name:        "start marker missing",
			text:        "intro\n" + end + "\n",
			expectError: true,
		},
		{
			name:        "end marker missing",
			text:        start + "\nintro\n",
			expectError: true,
		},
		{
			name:        "end marker only before start",
			text:        end + "\n" + start + "\n",
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Replace(tc.text, start, end, "NEW")
			if tc.expectError {
				var configErr *domain.ConfigError
				assert.True(t, errors.As(err, &configErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestPatch_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte("head\n"+start+"\nstale\n"+end+"\ntail\n"), 0o644))

	require.NoError(t, Patch(path, start, end, start+"\nfresh\n"+end))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "head\n"+start+"\nfresh\n"+end+"\ntail\n", string(content))

	// Patching again with the same fragment is a no-op.
	require.NoError(t, Patch(path, start, end, start+"\nfresh\n"+end))
	again, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, again)
}

func TestPatch_MissingMarkerLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	original := []byte("head\n" + start + "\nno end here\n")
	require.NoError(t, os.WriteFile(path, original, 0o644))

	err := Patch(path, start, end, "NEW")

	var configErr *domain.ConfigError
	require.True(t, errors.As(err, &configErr))
	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, original, content)
}

func TestPatch_MissingFile(t *testing.T) {
	err := Patch(filepath.Join(t.TempDir(), "nope.md"), start, end, "NEW")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
