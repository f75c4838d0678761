//go:build wasm

package main

import (
	"context"
	"encoding/json"
	"sync"
	"syscall/js"

	"github.com/ownerlint/ownerlint"
	"github.com/ownerlint/ownerlint/pkg/check"
	"github.com/ownerlint/ownerlint/pkg/parse"
	"github.com/ownerlint/ownerlint/pkg/serve"
)

var (
	validators   = make(map[int]*ownerlint.Validator)
	validatorsMu sync.RWMutex
	nextID       int
)

// validatorConfig is the JSON configuration accepted by newValidator. Without
// an explicit check list the validator runs the checks that need no file
// tree. Owner verification is unavailable in WASM, there are no credentials.
type validatorConfig struct {
	Checks               []string `json:"checks"`
	IgnoredOwners        []string `json:"ignored_owners"`
	OwnersMustBeTeams    bool     `json:"owners_must_be_teams"`
	AllowUnownedPatterns bool     `json:"allow_unowned_patterns"`
	SkipPatterns         []string `json:"skip_patterns"`
	Repository           string   `json:"repository"`
}

// newValidator creates a new validator with the given config JSON.
// JS: OwnerlintNewValidator(configJSON) -> {handle} or {error}
func newValidator(this js.Value, args []js.Value) interface{} {
	var cfg validatorConfig
	if len(args) > 0 && args[0].String() != "" {
		if err := json.Unmarshal([]byte(args[0].String()), &cfg); err != nil {
			return map[string]interface{}{"error": "failed to parse config: " + err.Error()}
		}
	}

	opts := []ownerlint.Option{ownerlint.WithConfig(ownerlint.CheckConfig{
		IgnoredOwners:        cfg.IgnoredOwners,
		OwnersMustBeTeams:    cfg.OwnersMustBeTeams,
		AllowUnownedPatterns: cfg.AllowUnownedPatterns,
		SkipPatterns:         cfg.SkipPatterns,
		Repository:           cfg.Repository,
	})}
	if len(cfg.Checks) > 0 {
		opts = append(opts, ownerlint.WithChecks(cfg.Checks...))
	} else {
		opts = append(opts, ownerlint.WithChecks(check.NameSyntax, check.NameDupPatterns))
	}

	v, err := ownerlint.New(opts...)
	if err != nil {
		return map[string]interface{}{"error": "failed to create validator: " + err.Error()}
	}

	// Register validator
	validatorsMu.Lock()
	id := nextID
	nextID++
	validators[id] = v
	validatorsMu.Unlock()

	return map[string]interface{}{"handle": id}
}

// validate validates a single CODEOWNERS content string. The optional repo
// root only matters when the selected checks walk the file tree, which needs
// a WASI-style mount to be visible.
// JS: OwnerlintValidate(handle, content, repoRoot) -> JSON result or {error}
func validate(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return map[string]interface{}{"error": "handle and content arguments required"}
	}

	handle := args[0].Int()
	content := args[1].String()
	repoRoot := ""
	if len(args) > 2 {
		repoRoot = args[2].String()
	}

	validatorsMu.RLock()
	v, ok := validators[handle]
	validatorsMu.RUnlock()

	if !ok {
		return map[string]interface{}{"error": "invalid validator handle"}
	}

	result, err := v.ValidateString(context.Background(), content, repoRoot)
	if err != nil {
		return map[string]interface{}{"error": "validation failed: " + err.Error()}
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal result: " + err.Error()}
	}

	return string(jsonBytes)
}

// parseContent parses CODEOWNERS content without running any checks.
// JS: OwnerlintParse(content) -> JSON {lines, errors} or {error}
func parseContent(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "content argument required"}
	}

	doc, errs := parse.Parse(args[0].String())
	if errs == nil {
		errs = []string{}
	}

	jsonBytes, err := json.Marshal(serve.ParseData{Lines: doc.Lines, Errors: errs})
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal result: " + err.Error()}
	}

	return string(jsonBytes)
}

// closeValidator releases a validator handle.
// JS: OwnerlintCloseValidator(handle)
func closeValidator(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return map[string]interface{}{"error": "handle argument required"}
	}

	handle := args[0].Int()

	validatorsMu.Lock()
	_, ok := validators[handle]
	if ok {
		delete(validators, handle)
	}
	validatorsMu.Unlock()

	if !ok {
		return map[string]interface{}{"error": "invalid validator handle"}
	}

	return nil
}

// listChecks returns the available check names as JSON.
// JS: OwnerlintChecks() -> JSON {default, experimental}
func listChecks(this js.Value, args []js.Value) interface{} {
	jsonBytes, err := json.Marshal(map[string][]string{
		"default":      ownerlint.DefaultChecks(),
		"experimental": ownerlint.ExperimentalChecks(),
	})
	if err != nil {
		return map[string]interface{}{"error": "failed to marshal checks: " + err.Error()}
	}

	return string(jsonBytes)
}
