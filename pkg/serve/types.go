package serve

import (
	"encoding/json"

	"github.com/ownerlint/ownerlint/pkg/types"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "validate" | "parse" | "version" | "shutdown"
	Payload json.RawMessage `json:"payload"`
}

// ValidatePayload is the payload for "validate" requests. Content is the
// CODEOWNERS text itself; the host process owns file discovery. RepoRoot and
// Checks are optional, and the config fields default to the zero value.
type ValidatePayload struct {
	Content  string   `json:"content"`
	RepoRoot string   `json:"repo_root,omitempty"`
	Checks   []string `json:"checks,omitempty"`

	IgnoredOwners        []string `json:"ignored_owners,omitempty"`
	OwnersMustBeTeams    bool     `json:"owners_must_be_teams,omitempty"`
	AllowUnownedPatterns bool     `json:"allow_unowned_patterns,omitempty"`
	SkipPatterns         []string `json:"skip_patterns,omitempty"`
	Repository           string   `json:"repository,omitempty"`
}

// ParsePayload is the payload for "parse" requests
type ParsePayload struct {
	Content string `json:"content"`
}

// ParseData is the data field for "parse" responses
type ParseData struct {
	Lines  []types.Line `json:"lines"`
	Errors []string     `json:"errors"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | "validate" | "parse" | "version" | "error"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version string `json:"version"`
}

// VersionData is the data field for "version" responses
type VersionData struct {
	Version string `json:"version"`
}
