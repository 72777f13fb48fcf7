package domain

import "fmt"

// Verb is one entry of the controlled vocabulary allowed to start a subject
// line.
type Verb struct {
	Label       string `toml:"label"       yaml:"label"       json:"label"`
	Description string `toml:"description" yaml:"description" json:"description,omitempty"`
}

// Indicator maps a diff keyword to the verb it implies. A keyword may also
// (or only) signal a breaking change; an indicator with an empty Verb
// contributes no vote and only raises the breaking flag.
type Indicator struct {
	Keyword  string `toml:"keyword"  yaml:"keyword"  json:"keyword"`
	Verb     string `toml:"verb"     yaml:"verb"     json:"verb,omitempty"`
	Breaking bool   `toml:"breaking" yaml:"breaking" json:"breaking,omitempty"`
}

// ScopeRule attributes changed file paths to a named scope by path prefix.
type ScopeRule struct {
	Name   string `toml:"name"   yaml:"name"   json:"name"`
	Prefix string `toml:"prefix" yaml:"prefix" json:"prefix"`
}

// ScopeUnscoped is the bucket for changed paths no scope rule matches.
const ScopeUnscoped = "unscoped"

// Requirement is the inclusion marker carried in a section heading.
type Requirement string

const (
	Required           Requirement = "Required"
	Optional           Requirement = "Optional"
	RequiredIfBreaking Requirement = "Required if any"
)

// AutoFill names the classifier evidence a section body is seeded from.
type AutoFill string

const (
	AutoFillNone     AutoFill = ""
	AutoFillChanges  AutoFill = "changes"
	AutoFillBreaking AutoFill = "breaking"
)

// SectionTemplate defines one named body section of the commit message.
type SectionTemplate struct {
	Name        string      `toml:"name"        yaml:"name"        json:"name"`
	Requirement Requirement `toml:"requirement" yaml:"requirement" json:"requirement"`
	Placeholder string      `toml:"placeholder" yaml:"placeholder" json:"placeholder,omitempty"`
	AutoFill    AutoFill    `toml:"auto_fill"   yaml:"auto_fill"   json:"auto_fill,omitempty"`
}

// Heading returns the heading line the section is rendered and parsed with,
// e.g. "# References [Required]".
func (t SectionTemplate) Heading() string {
	return "# " + t.Name + " [" + string(t.Requirement) + "]"
}

// FormatRules holds the numeric and boolean formatting limits the validator
// enforces.
type FormatRules struct {
	SubjectMaxLength   int  `toml:"subject_max_length"   yaml:"subject_max_length"   json:"subject_max_length"`
	BodyMaxLength      int  `toml:"body_max_length"      yaml:"body_max_length"      json:"body_max_length"`
	RequireVerb        bool `toml:"require_verb"         yaml:"require_verb"         json:"require_verb"`
	RequireCapitalised bool `toml:"require_capitalised"  yaml:"require_capitalised"  json:"require_capitalised"`
	ForbidTrailingStop bool `toml:"forbid_trailing_stop" yaml:"forbid_trailing_stop" json:"forbid_trailing_stop"`
	RequireSeparator   bool `toml:"require_separator"    yaml:"require_separator"    json:"require_separator"`
}

// Config is the immutable configuration snapshot threaded into every core
// call. Ordering is significant: indicator order breaks classification ties
// and section order fixes body layout.
type Config struct {
	DefaultVerb string            `toml:"default_verb" yaml:"default_verb" json:"default_verb"`
	Verbs       []Verb            `toml:"verbs"        yaml:"verbs"        json:"verbs"`
	Indicators  []Indicator       `toml:"indicators"   yaml:"indicators"   json:"indicators"`
	Scopes      []ScopeRule       `toml:"scopes"       yaml:"scopes"       json:"scopes,omitempty"`
	Sections    []SectionTemplate `toml:"sections"     yaml:"sections"     json:"sections"`
	Rules       FormatRules       `toml:"rules"        yaml:"rules"        json:"rules"`
}

// HasVerb reports whether label is a configured standard verb (exact match).
func (c Config) HasVerb(label string) bool {
	for _, v := range c.Verbs {
		if v.Label == label {
			return true
		}
	}
	return false
}

// VerbLabels returns the configured verb labels in order.
func (c Config) VerbLabels() []string {
	labels := make([]string, len(c.Verbs))
	for i, v := range c.Verbs {
		labels[i] = v.Label
	}
	return labels
}

// SectionByName returns the template with the given name.
func (c Config) SectionByName(name string) (SectionTemplate, bool) {
	for _, s := range c.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return SectionTemplate{}, false
}

// DefaultConfig returns the built-in configuration used when no user file
// exists.
func DefaultConfig() Config {
	return Config{
		DefaultVerb: "Add",
		Verbs: []Verb{
			{Label: "Add", Description: "Create a capability, e.g. feature, test, dependency"},
			{Label: "Cut", Description: "Remove a capability, e.g. feature, test, dependency"},
			{Label: "Fix", Description: "Fix an issue, e.g. bug, typo, error, misstatement"},
			{Label: "Bump", Description: "Increase the version of something, e.g. a dependency"},
			{Label: "Make", Description: "Change the build process, tooling, or infrastructure"},
			{Label: "Start", Description: "Begin doing something, e.g. enable a feature flag"},
			{Label: "Stop", Description: "End doing something, e.g. disable a feature flag"},
			{Label: "Refactor", Description: "Restructure code without changing behaviour"},
			{Label: "Reformat", Description: "Change formatting only, e.g. indentation, line breaks"},
			{Label: "Optimise", Description: "Improve performance without changing behaviour"},
			{Label: "Document", Description: "Change documentation only"},
			{Label: "Revert", Description: "Undo an earlier change"},
		},
		Indicators: []Indicator{
			{Keyword: "fix", Verb: "Fix"},
			{Keyword: "bug", Verb: "Fix"},
			{Keyword: "issue", Verb: "Fix"},
			{Keyword: "typo", Verb: "Fix"},
			{Keyword: "error", Verb: "Fix"},
			{Keyword: "add", Verb: "Add"},
			{Keyword: "create", Verb: "Add"},
			{Keyword: "implement", Verb: "Add"},
			{Keyword: "introduce", Verb: "Add"},
			{Keyword: "remove", Verb: "Cut", Breaking: true},
			{Keyword: "delete", Verb: "Cut", Breaking: true},
			{Keyword: "deprecate", Verb: "Cut", Breaking: true},
			{Keyword: "drop", Verb: "Cut", Breaking: true},
			{Keyword: "upgrade", Verb: "Bump"},
			{Keyword: "bump", Verb: "Bump"},
			{Keyword: "rename", Verb: "Refactor", Breaking: true},
			{Keyword: "refactor", Verb: "Refactor"},
			{Keyword: "migrate", Verb: "Make", Breaking: true},
			{Keyword: "build", Verb: "Make"},
			{Keyword: "enable", Verb: "Start"},
			{Keyword: "disable", Verb: "Stop"},
			{Keyword: "optimise", Verb: "Optimise"},
			{Keyword: "optimize", Verb: "Optimise"},
			{Keyword: "document", Verb: "Document"},
			{Keyword: "readme", Verb: "Document"},
			{Keyword: "reformat", Verb: "Reformat"},
			{Keyword: "revert", Verb: "Revert"},
			{Keyword: "breaking", Breaking: true},
		},
		Sections: []SectionTemplate{
			{
				Name:        "References",
				Requirement: Required,
				Placeholder: "# Link to related tickets, docs, or discussions\nCloses #\nRelates to #\nSee also: ",
			},
			{
				Name:        "Changes Overview",
				Requirement: Required,
				Placeholder: "# Briefly describe the purpose of these changes",
				AutoFill:    AutoFillChanges,
			},
			{
				Name:        "Breaking Changes",
				Requirement: RequiredIfBreaking,
				Placeholder: "# List any backward-incompatible changes and migration steps",
				AutoFill:    AutoFillBreaking,
			},
			{
				Name:        "Testing Instructions",
				Requirement: Optional,
				Placeholder: "# Describe how to test these changes\n1. Steps to test\n2. Expected outcomes\n3. Edge cases to verify",
			},
			{
				Name:        "Dependencies",
				Requirement: Optional,
				Placeholder: "# List any prerequisite changes or dependencies\n- [ ] Database migrations\n- [ ] Configuration updates\n- [ ] External service changes",
			},
		},
		Rules: FormatRules{
			SubjectMaxLength:   50,
			BodyMaxLength:      72,
			RequireVerb:        true,
			RequireCapitalised: true,
			ForbidTrailingStop: true,
			RequireSeparator:   true,
		},
	}
}

// Validate checks the config for invalid values and returns a descriptive
// error.
func (c Config) Validate() error {
	if len(c.Verbs) == 0 {
		return fmt.Errorf("at least one standard verb is required")
	}

	seen := make(map[string]bool, len(c.Verbs))
	for _, v := range c.Verbs {
		if v.Label == "" {
			return fmt.Errorf("verb with empty label")
		}
		if seen[v.Label] {
			return fmt.Errorf("duplicate verb %q", v.Label)
		}
		seen[v.Label] = true
	}

	if c.DefaultVerb == "" {
		return fmt.Errorf("default_verb must be set")
	}
	if !c.HasVerb(c.DefaultVerb) {
		return fmt.Errorf("default_verb %q is not a configured verb", c.DefaultVerb)
	}

	for _, ind := range c.Indicators {
		if ind.Keyword == "" {
			return fmt.Errorf("indicator with empty keyword")
		}
		if ind.Verb != "" && !c.HasVerb(ind.Verb) {
			return fmt.Errorf("indicator %q maps to unknown verb %q", ind.Keyword, ind.Verb)
		}
	}

	sections := make(map[string]bool, len(c.Sections))
	for _, s := range c.Sections {
		if s.Name == "" {
			return fmt.Errorf("section with empty name")
		}
		if sections[s.Name] {
			return fmt.Errorf("duplicate section %q", s.Name)
		}
		sections[s.Name] = true
		switch s.Requirement {
		case Required, Optional, RequiredIfBreaking:
		default:
			return fmt.Errorf("section %q has unknown requirement %q", s.Name, s.Requirement)
		}
	}

	if c.Rules.SubjectMaxLength <= 0 {
		return fmt.Errorf("rules.subject_max_length must be > 0 (got %d)", c.Rules.SubjectMaxLength)
	}
	if c.Rules.BodyMaxLength <= 0 {
		return fmt.Errorf("rules.body_max_length must be > 0 (got %d)", c.Rules.BodyMaxLength)
	}

	for _, sc := range c.Scopes {
		if sc.Name == "" || sc.Prefix == "" {
			return fmt.Errorf("scope rule needs both name and prefix")
		}
	}

	return nil
}
