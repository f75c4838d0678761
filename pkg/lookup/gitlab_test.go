package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGitLab(t *testing.T) {
	lk, err := NewGitLab(GitLabConfig{Token: "test-token"})
	require.NoError(t, err)
	require.NotNil(t, lk)

	var _ Lookup = lk
}

func TestNewGitLabSelfHosted(t *testing.T) {
	lk, err := NewGitLab(GitLabConfig{
		Token:   "test-token",
		BaseURL: "https://gitlab.example.com",
	})
	require.NoError(t, err)
	assert.NotNil(t, lk)
}
