// Package generate produces synthetic CODEOWNERS files for benchmarks,
// fixtures, and parser stress tests. Output is built from a fixed vocabulary
// of valid tokens, so everything generated parses cleanly, and generation is
// deterministic per seed.
package generate

import (
	"math/rand/v2"
	"strings"
)

// Config controls fixture generation.
type Config struct {
	// NumRules is the number of rule lines to generate.
	NumRules int

	// NumComments caps the section comments interspersed between rules.
	NumComments int

	// MaxOwnersPerRule bounds owners per rule. Values below 1 are treated
	// as 1.
	MaxOwnersPerRule int

	// Seed makes generation deterministic.
	Seed uint64
}

// DefaultConfig returns the baseline generation parameters.
func DefaultConfig() Config {
	return Config{
		NumRules:         100,
		NumComments:      20,
		MaxOwnersPerRule: 4,
		Seed:             42,
	}
}

// NewConfig sizes a config for the given rule count, with comments at about
// a fifth of the rules.
func NewConfig(numRules int) Config {
	cfg := DefaultConfig()
	cfg.NumRules = numRules
	cfg.NumComments = numRules / 5
	return cfg
}

// Small is a fixture of about 10 rules.
func Small() Config { return NewConfig(10) }

// Medium is a fixture of about 100 rules.
func Medium() Config { return NewConfig(100) }

// Large is a fixture of about 1000 rules.
func Large() Config { return NewConfig(1000) }

// XLarge is a fixture of about 10000 rules.
func XLarge() Config { return NewConfig(10000) }

// TargetBytes sizes a fixture for approximately the given byte count. A
// generated line averages around 50 bytes; GitHub caps CODEOWNERS files at
// 3MB, so TargetBytes(3_000_000) approximates the largest file the platform
// accepts.
func TargetBytes(bytes int) Config {
	rules := bytes / avgLineBytes
	if rules < 1 {
		rules = 1
	}
	return NewConfig(rules)
}

// WithSeed returns a copy of the config with a different seed.
func (c Config) WithSeed(seed uint64) Config {
	c.Seed = seed
	return c
}

const (
	// Owner kind weights out of 100; the remainder produces emails.
	weightUser = 50
	weightTeam = 30

	// Chance out of 100 of a section comment before a rule.
	commentChance = 20

	avgLineBytes = 50
)

var (
	patternTemplates = []string{
		"*.{ext}",
		"**/*.{ext}",
		"/{dir}/",
		"/{dir}/**",
		"/{dir}/*.{ext}",
		"/src/{dir}/",
		"/src/**/*.{ext}",
		"/{dir}/**/test_*.{ext}",
		"docs/**/*.md",
		"!vendor/",
	}

	extensions   = []string{"rs", "py", "js", "ts", "go", "md", "yaml", "json", "toml"}
	directories  = []string{"src", "lib", "tests", "docs", "config", "scripts", "api", "core"}
	usernames    = []string{"alice", "bob", "charlie", "dev", "maintainer", "reviewer"}
	orgs         = []string{"acme", "github", "myorg"}
	teams        = []string{"core", "platform", "frontend", "backend", "infra", "docs"}
	sectionNames = []string{"Frontend", "Backend", "Infrastructure", "Documentation"}
)

// Generate produces a CODEOWNERS file as text. The same config always
// produces the same bytes.
func Generate(cfg Config) string {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))

	maxOwners := cfg.MaxOwnersPerRule
	if maxOwners < 1 {
		maxOwners = 1
	}

	var b strings.Builder
	b.Grow((cfg.NumRules + cfg.NumComments + 2) * avgLineBytes)
	b.WriteString("# Auto-generated CODEOWNERS fixture\n\n")

	rules, comments := 0, 0
	for rules < cfg.NumRules {
		if comments < cfg.NumComments && rules > 0 && rng.IntN(100) < commentChance {
			b.WriteString("\n# ")
			b.WriteString(sectionNames[rng.IntN(len(sectionNames))])
			b.WriteString(" section\n")
			comments++
		}

		pattern := patternTemplates[rng.IntN(len(patternTemplates))]
		pattern = strings.ReplaceAll(pattern, "{ext}", extensions[rng.IntN(len(extensions))])
		pattern = strings.ReplaceAll(pattern, "{dir}", directories[rng.IntN(len(directories))])
		b.WriteString(pattern)

		numOwners := rng.IntN(maxOwners) + 1
		for i := 0; i < numOwners; i++ {
			b.WriteByte(' ')
			b.WriteString(randomOwner(rng))
		}
		b.WriteByte('\n')
		rules++
	}

	return b.String()
}

func randomOwner(rng *rand.Rand) string {
	roll := rng.IntN(100)
	switch {
	case roll < weightUser:
		return "@" + usernames[rng.IntN(len(usernames))]
	case roll < weightUser+weightTeam:
		return "@" + orgs[rng.IntN(len(orgs))] + "/" + teams[rng.IntN(len(teams))]
	default:
		return usernames[rng.IntN(len(usernames))] + "@example.com"
	}
}
