package serve

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_ValidateUnmarshal(t *testing.T) {
	input := `{"type":"validate","payload":{"content":"*.go @org/team\n","repo_root":"/tmp/repo","checks":["syntax","owners"],"owners_must_be_teams":true}}`

	var req Request
	err := json.Unmarshal([]byte(input), &req)
	require.NoError(t, err)

	assert.Equal(t, "validate", req.Type)

	var payload ValidatePayload
	err = json.Unmarshal(req.Payload, &payload)
	require.NoError(t, err)

	assert.Equal(t, "*.go @org/team\n", payload.Content)
	assert.Equal(t, "/tmp/repo", payload.RepoRoot)
	assert.Equal(t, []string{"syntax", "owners"}, payload.Checks)
	assert.True(t, payload.OwnersMustBeTeams)
	assert.False(t, payload.AllowUnownedPatterns)
}

func TestResponse_Marshal(t *testing.T) {
	resp := Response{
		Success: true,
		Type:    "ready",
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"success":true`)
	assert.Contains(t, string(data), `"type":"ready"`)
}
