package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ownerlint/ownerlint"
	"github.com/ownerlint/ownerlint/pkg/check"
	"github.com/ownerlint/ownerlint/pkg/sarif"
)

var (
	okLabel      = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel    = color.New(color.FgRed, color.Bold).SprintFunc()
	errorWord    = color.New(color.FgRed).SprintFunc()
	warningWord  = color.New(color.FgYellow).SprintFunc()
	positionText = color.New(color.Faint).SprintFunc()
)

// checkDescriptions are the SARIF rule descriptions, one per check name.
var checkDescriptions = map[string]string{
	check.NameSyntax:         "Reports malformed lines, malformed owner tokens, and rules without owners",
	check.NameFiles:          "Reports patterns that match no files in the repository",
	check.NameDupPatterns:    "Reports patterns defined more than once",
	check.NameOwners:         "Reports owners that do not exist or cannot be verified",
	check.NameNotOwned:       "Reports repository files not covered by any rule",
	check.NameAvoidShadowing: "Reports patterns whose matches are fully re-covered by a later pattern",
}

// writeResult renders the validation result in the requested format.
func writeResult(cmd *cobra.Command, format, path, content string, result ownerlint.Result) error {
	switch format {
	case "json":
		return writeJSON(cmd, result)
	case "sarif":
		return writeSARIF(cmd, path, content, result)
	default:
		return writeHuman(cmd, result)
	}
}

// jsonIssue is the JSON view of one finding. Line and column are absent for
// findings without a position in the CODEOWNERS text.
type jsonIssue struct {
	Line     uint32 `json:"line,omitempty"`
	Column   uint32 `json:"column,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

func writeJSON(cmd *cobra.Command, result ownerlint.Result) error {
	out := make(map[string][]jsonIssue, len(result))
	for name, issues := range result {
		list := make([]jsonIssue, 0, len(issues))
		for _, issue := range issues {
			ji := jsonIssue{
				Message:  issue.Message,
				Severity: string(issue.Severity),
			}
			if issue.Span != nil {
				ji.Line = issue.Span.Line
				ji.Column = issue.Span.Column
			}
			list = append(list, ji)
		}
		out[name] = list
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func writeHuman(cmd *cobra.Command, result ownerlint.Result) error {
	out := cmd.OutOrStdout()
	configureColor(out)

	names := sortedNames(result)

	errorCount, warningCount := 0, 0
	for _, name := range names {
		issues := result[name]
		if len(issues) == 0 {
			if !quiet {
				fmt.Fprintf(out, "%s %s\n", okLabel("[OK]"), name)
			}
			continue
		}

		fmt.Fprintf(out, "%s %s\n", failLabel("[ERR]"), name)
		for _, issue := range issues {
			severity := warningWord(string(issue.Severity))
			if issue.Severity == ownerlint.SeverityError {
				severity = errorWord(string(issue.Severity))
				errorCount++
			} else {
				warningCount++
			}

			if issue.Span != nil {
				pos := fmt.Sprintf("%d:%d", issue.Span.Line, issue.Span.Column)
				fmt.Fprintf(out, "    %s %s: %s\n", positionText(pos), severity, issue.Message)
			} else {
				fmt.Fprintf(out, "    %s: %s\n", severity, issue.Message)
			}
		}
	}

	total := errorCount + warningCount
	if total == 0 {
		if !quiet {
			fmt.Fprintf(out, "\n%d check(s) executed, no issues found\n", len(names))
		}
		return nil
	}

	fmt.Fprintf(out, "\n%d check(s) executed, %d issue(s) found: %d error(s), %d warning(s)\n",
		len(names), total, errorCount, warningCount)
	return nil
}

func writeSARIF(cmd *cobra.Command, path, content string, result ownerlint.Result) error {
	report := sarif.NewReport()

	names := sortedNames(result)
	for _, name := range names {
		desc := checkDescriptions[name]
		if desc == "" {
			desc = name
		}
		report.AddRule(name, desc)
	}

	for _, name := range names {
		for _, issue := range result[name] {
			snippet := ""
			if issue.Span != nil {
				snippet = content[issue.Span.Offset:issue.Span.End()]
			}
			report.AddResult(name, issue, path, snippet)
		}
	}

	jsonBytes, err := report.ToJSON()
	if err != nil {
		return fmt.Errorf("serializing SARIF: %w", err)
	}

	if _, err := cmd.OutOrStdout().Write(jsonBytes); err != nil {
		return fmt.Errorf("writing SARIF output: %w", err)
	}
	return nil
}

func sortedNames(result ownerlint.Result) []string {
	names := make([]string, 0, len(result))
	for name := range result {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// configureColor applies the --color mode. In auto mode color is on only
// when writing to a terminal and NO_COLOR is unset.
func configureColor(out io.Writer) {
	switch colorMode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		if os.Getenv("NO_COLOR") != "" {
			color.NoColor = true
			return
		}
		f, ok := out.(*os.File)
		color.NoColor = !ok || !term.IsTerminal(int(f.Fd()))
	}
}
