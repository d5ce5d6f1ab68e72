// ABOUTME: Tests for the result envelope's JSON shape.

package lifecycle

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeSuccessShape(t *testing.T) {
	res := ok(map[string]any{"name": "python"})

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, true, decoded["ok"])
	assert.Contains(t, decoded, "data")
	assert.NotContains(t, decoded, "error")
}

func TestEnvelopeFailureShape(t *testing.T) {
	res := failHint(CodeSoftwareNotFound, "software \"emacs\" not found in catalog", "try the catalog")

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, false, decoded["ok"])
	assert.NotContains(t, decoded, "data")

	errObj := decoded["error"].(map[string]any)
	assert.Equal(t, "software_not_found", errObj["code"])
	assert.Equal(t, "try the catalog", errObj["hint"])
}

func TestEnvelopeHintOmittedWhenEmpty(t *testing.T) {
	res := fail(CodeNotInstalled, "not installed")

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hint")
}
