// ABOUTME: Tests for the embedded software catalog and recommendation table.
// ABOUTME: Verifies canonicalized lookup and the fixed data contract.

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8, c.Len())
	assert.Len(t, c.Tasks(), 6)
}

func TestLookup(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	e, ok := c.Lookup("python")
	require.True(t, ok)
	assert.Equal(t, "python", e.Name)
	assert.Equal(t, "3.11.0", e.LatestVersion)
	assert.Equal(t, "Python programming language", e.Description)
}

func TestLookupCaseInsensitive(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	for _, name := range []string{"Python", "PYTHON", "  python  ", "PyThOn"} {
		e, ok := c.Lookup(name)
		require.True(t, ok, "lookup %q", name)
		assert.Equal(t, "python", e.Name)
	}
}

func TestLookupAbsent(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	_, ok := c.Lookup("emacs")
	assert.False(t, ok)
}

func TestRecommendations(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	recs, ok := c.Recommendations("web development")
	require.True(t, ok)
	assert.Equal(t, []string{"python", "nodejs", "vscode", "git"}, recs)

	recs, ok = c.Recommendations("  Full Stack ")
	require.True(t, ok)
	assert.Len(t, recs, 6)

	_, ok = c.Recommendations("quantum computing")
	assert.False(t, ok)
}

func TestRecommendationsReturnsCopy(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	recs, ok := c.Recommendations("containerization")
	require.True(t, ok)
	recs[0] = "mutated"

	again, _ := c.Recommendations("containerization")
	assert.Equal(t, "docker", again[0])
}

func TestParseRejectsUnknownRecommendation(t *testing.T) {
	data := []byte(`
software:
  git:
    description: "Version control system"
    latest_version: "2.43.0"
    category: "tooling"
tasks:
  "web development": [git, emacs]
`)
	_, err := parse(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "emacs")
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Python", "python"},
		{"  GIT  ", "git"},
		{"nodejs", "nodejs"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Canonicalize(tt.in))
	}
}
