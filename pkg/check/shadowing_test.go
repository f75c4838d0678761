package check

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ownerlint/ownerlint/pkg/types"
)

func TestAvoidShadowingSubset(t *testing.T) {
	root := repoTree(t, map[string]string{"src/x.rs": ""})
	cc := &Context{
		Document: parseDoc(t, "*.rs @a\n**/*.rs @b\n"),
		RepoRoot: root,
	}

	issues, err := NewAvoidShadowing().Run(context.Background(), cc)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, types.SeverityWarning, issues[0].Severity)
	assert.Equal(t, "pattern '*.rs' is shadowed by pattern '**/*.rs' on line 2", issues[0].Message)
	require.NotNil(t, issues[0].Span)
	assert.Equal(t, uint32(1), issues[0].Span.Line, "the earlier, dead pattern is the finding site")
}

func TestAvoidShadowingPartialOverlap(t *testing.T) {
	root := repoTree(t, map[string]string{
		"src/x.rs": "",
		"lib/y.rs": "",
	})
	cc := &Context{
		Document: parseDoc(t, "*.rs @a\nsrc/ @b\n"),
		RepoRoot: root,
	}

	issues, err := NewAvoidShadowing().Run(context.Background(), cc)
	require.NoError(t, err)
	assert.Empty(t, issues, "a pattern that still wins somewhere is not shadowed")
}

func TestAvoidShadowingEmptyMatchedSet(t *testing.T) {
	root := repoTree(t, map[string]string{"main.go": ""})
	cc := &Context{
		Document: parseDoc(t, "*.rs @a\n* @b\n"),
		RepoRoot: root,
	}

	issues, err := NewAvoidShadowing().Run(context.Background(), cc)
	require.NoError(t, err)
	assert.Empty(t, issues, "a pattern matching nothing has nothing to shadow")
}

func TestAvoidShadowingCatchAll(t *testing.T) {
	root := repoTree(t, map[string]string{
		"src/x.rs":  "",
		"docs/d.md": "",
	})
	cc := &Context{
		Document: parseDoc(t, "src/ @a\ndocs/ @b\n* @all\n"),
		RepoRoot: root,
	}

	issues, err := NewAvoidShadowing().Run(context.Background(), cc)
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "pattern 'src/' is shadowed by pattern '*' on line 3", issues[0].Message)
	assert.Equal(t, "pattern 'docs/' is shadowed by pattern '*' on line 3", issues[1].Message)
}

func TestAvoidShadowingEquivalentSpelling(t *testing.T) {
	// Containment is decided on matched sets, so a differently written
	// but behaviorally identical later pattern still shadows.
	root := repoTree(t, map[string]string{"pkg/a.go": "", "b.go": ""})
	cc := &Context{
		Document: parseDoc(t, "*.go @a\n**/*.go @b\n"),
		RepoRoot: root,
	}

	issues, err := NewAvoidShadowing().Run(context.Background(), cc)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "shadowed by pattern '**/*.go'")
}
