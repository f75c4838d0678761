package sarif

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/ownerlint/ownerlint/pkg/types"
)

// SARIF 2.1.0 constants
const (
	SchemaURI   = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version     = "2.1.0"
	ToolName    = "ownerlint"
	ToolVersion = "0.1.0"
)

// Report is the top-level SARIF report structure
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single invocation of the tool
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool describes the analysis tool
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains tool metadata
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules,omitempty"`
}

// Rule represents one validation check
type Rule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	ShortDescription ShortDescription `json:"shortDescription"`
}

// ShortDescription contains rule description text
type ShortDescription struct {
	Text string `json:"text"`
}

// Result represents a single finding
type Result struct {
	RuleID    string     `json:"ruleId"`
	Level     string     `json:"level"`
	Message   Message    `json:"message"`
	Locations []Location `json:"locations"`
}

// Message contains the result message
type Message struct {
	Text string `json:"text"`
}

// Location describes where a result was found
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation specifies file location. Region is absent for findings
// that have no position in the CODEOWNERS text, an unowned repository file
// for example.
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           *Region          `json:"region,omitempty"`
}

// ArtifactLocation identifies the file
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region specifies the line/column range
type Region struct {
	StartLine   int     `json:"startLine"`
	StartColumn int     `json:"startColumn"`
	EndLine     int     `json:"endLine"`
	EndColumn   int     `json:"endColumn"`
	Snippet     Snippet `json:"snippet,omitempty"`
}

// Snippet contains the flagged source text
type Snippet struct {
	Text string `json:"text"`
}

// NewReport creates a new SARIF report with initialized structure
func NewReport() *Report {
	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:    ToolName,
						Version: ToolVersion,
						Rules:   []Rule{},
					},
				},
				Results: []Result{},
			},
		},
	}
}

// AddRule adds one check to the report as a SARIF rule
func (r *Report) AddRule(id, description string) {
	r.Runs[0].Tool.Driver.Rules = append(r.Runs[0].Tool.Driver.Rules, Rule{
		ID:   id,
		Name: id,
		ShortDescription: ShortDescription{
			Text: description,
		},
	})
}

// AddResult adds a finding to the report. ruleID is the check name, filePath
// locates the CODEOWNERS file, and snippet holds the flagged source text when
// the issue carries a span.
func (r *Report) AddResult(ruleID string, issue types.Issue, filePath, snippet string) {
	// Convert file path to URI format
	uri := formatFileURI(filePath)

	location := Location{
		PhysicalLocation: PhysicalLocation{
			ArtifactLocation: ArtifactLocation{
				URI: uri,
			},
		},
	}

	if issue.Span != nil {
		region := &Region{
			StartLine:   int(issue.Span.Line),
			StartColumn: int(issue.Span.Column),
			EndLine:     int(issue.Span.Line),
			EndColumn:   int(issue.Span.Column + issue.Span.Length),
		}
		if snippet != "" {
			region.Snippet = Snippet{Text: snippet}
		}
		location.PhysicalLocation.Region = region
	}

	r.Runs[0].Results = append(r.Runs[0].Results, Result{
		RuleID: ruleID,
		Level:  string(issue.Severity),
		Message: Message{
			Text: issue.Message,
		},
		Locations: []Location{location},
	})
}

// ToJSON serializes the report to JSON bytes
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// formatFileURI converts a file path to SARIF URI format
// Absolute paths get file:// prefix, relative paths stay as-is
func formatFileURI(path string) string {
	if filepath.IsAbs(path) {
		// Normalize path separators for URI format
		path = filepath.ToSlash(path)
		// Ensure path starts with /
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	// Relative paths stay as-is
	return filepath.ToSlash(path)
}
