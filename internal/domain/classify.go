package domain

import (
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
)

// Evidence records one indicator match: which keyword fired, on which line of
// which file, and what it implied.
type Evidence struct {
	File     string `json:"file"`
	Line     string `json:"line"`
	Keyword  string `json:"keyword"`
	Verb     string `json:"verb,omitempty"`
	Breaking bool   `json:"breaking,omitempty"`
}

// ClassificationResult is the transient outcome of analysing one staged
// diff.
type ClassificationResult struct {
	Verb     string     `json:"verb"`
	Breaking bool       `json:"breaking"`
	Scopes   []string   `json:"scopes,omitempty"`
	Summary  string     `json:"summary,omitempty"`
	Evidence []Evidence `json:"evidence,omitempty"`
}

// Classify scans the staged diff for configured indicator keywords and picks
// the commit verb. The verb with the most keyword matches wins; ties go to
// the verb whose indicator is configured earliest; no match falls back to
// the configured default verb. The breaking flag is raised by any breaking
// indicator, independent of which verb wins. An empty diff is a valid input
// and yields the default classification.
func Classify(diffText string, cfg Config) ClassificationResult {
	files := ScanDiff(diffText)

	var (
		result     ClassificationResult
		votes      = make(map[string]int)
		firstMatch = make(map[string]int) // verb -> earliest indicator index
	)

	for _, f := range files {
		for _, line := range f.Added {
			lower := strings.ToLower(line)
			for i, ind := range cfg.Indicators {
				if !strings.Contains(lower, ind.Keyword) {
					continue
				}
				result.Evidence = append(result.Evidence, Evidence{
					File:     f.Path,
					Line:     line,
					Keyword:  ind.Keyword,
					Verb:     ind.Verb,
					Breaking: ind.Breaking,
				})
				if ind.Breaking {
					result.Breaking = true
				}
				if ind.Verb == "" {
					continue
				}
				votes[ind.Verb]++
				if _, ok := firstMatch[ind.Verb]; !ok {
					firstMatch[ind.Verb] = i
				}
			}
		}
	}

	result.Verb = electVerb(votes, firstMatch, cfg.DefaultVerb)
	result.Scopes = attributeScopes(files, cfg.Scopes)
	result.Summary = deriveSummary(files)
	return result
}

// electVerb picks the verb with the highest vote count, breaking ties by
// earliest indicator configuration order.
func electVerb(votes map[string]int, firstMatch map[string]int, fallback string) string {
	best := fallback
	bestVotes := 0
	bestIndex := -1

	for verb, n := range votes {
		idx := firstMatch[verb]
		switch {
		case n > bestVotes:
		case n == bestVotes && bestIndex >= 0 && idx < bestIndex:
		default:
			continue
		}
		best, bestVotes, bestIndex = verb, n, idx
	}

	return best
}

// attributeScopes maps changed paths onto configured scopes by longest
// matching prefix. Scopes appear in configuration order; paths matching no
// rule land in the unscoped bucket, reported last.
func attributeScopes(files []FileChange, rules []ScopeRule) []string {
	if len(files) == 0 {
		return nil
	}

	matched := make(map[string]bool)
	unscoped := false
	for _, f := range files {
		name := ""
		longest := -1
		for _, r := range rules {
			if strings.HasPrefix(f.Path, r.Prefix) && len(r.Prefix) > longest {
				name = r.Name
				longest = len(r.Prefix)
			}
		}
		if name == "" {
			unscoped = true
			continue
		}
		matched[name] = true
	}

	var scopes []string
	for _, r := range rules {
		if matched[r.Name] {
			scopes = append(scopes, r.Name)
			matched[r.Name] = false
		}
	}
	if unscoped {
		scopes = append(scopes, ScopeUnscoped)
	}
	return scopes
}

// deriveSummary builds a short lowercase summary from the first added line,
// splitting CamelCase identifiers into words so code changes read as prose.
// Falls back to "codebase" when the diff carries no usable text.
const summaryMaxWords = 6

func deriveSummary(files []FileChange) string {
	for _, f := range files {
		for _, line := range f.Added {
			if words := humanize(line); len(words) > 0 {
				if len(words) > summaryMaxWords {
					words = words[:summaryMaxWords]
				}
				return strings.Join(words, " ")
			}
		}
	}
	return "codebase"
}

// humanize tokenizes a code line into lowercase words, expanding CamelCase
// and snake_case identifiers and discarding punctuation-only tokens.
func humanize(line string) []string {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var words []string
	for _, field := range fields {
		for _, part := range camelcase.Split(field) {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			if !hasLetter(part) {
				continue
			}
			words = append(words, part)
		}
	}
	return words
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
