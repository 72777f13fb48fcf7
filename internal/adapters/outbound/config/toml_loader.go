package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/commitcraft/commitcraft/internal/domain"
)

const (
	tomlFileName = ".commitcraft.toml"
	yamlFileName = ".commitcraft.yaml"
	userConfig   = "commitcraft/config.toml"
)

// Loader implements domain.ConfigLoader. Built-in defaults are overlaid
// with the user-level file ($XDG_CONFIG_HOME/commitcraft/config.toml) and
// then with a project-local .commitcraft.toml or .commitcraft.yaml, so the
// most specific file wins.
type Loader struct {
	projectPath string
	userPath    string // overridable for tests
}

// New creates a Loader rooted at projectPath.
func New(projectPath string) *Loader {
	return &Loader{
		projectPath: projectPath,
		userPath:    filepath.Join(xdg.ConfigHome, filepath.FromSlash(userConfig)),
	}
}

// WithUserPath overrides the user-level config location.
func (l *Loader) WithUserPath(path string) *Loader {
	l.userPath = path
	return l
}

// Load builds the effective configuration. Missing files are not errors:
// defaults apply. Malformed or invalid files are.
func (l *Loader) Load() (domain.Config, error) {
	cfg := domain.DefaultConfig()

	candidates := []string{
		l.userPath,
		filepath.Join(l.projectPath, tomlFileName),
		filepath.Join(l.projectPath, yamlFileName),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return domain.Config{}, fmt.Errorf("reading %s: %w", path, err)
		}

		var file fileConfig
		if err := decode(path, data, &file); err != nil {
			return domain.Config{}, err
		}
		cfg = merge(cfg, file)
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// fileConfig mirrors domain.Config with optional fields, so a user file can
// override only what it names.
type fileConfig struct {
	DefaultVerb string                   `toml:"default_verb" yaml:"default_verb"`
	Verbs       []domain.Verb            `toml:"verbs"        yaml:"verbs"`
	Indicators  []domain.Indicator       `toml:"indicators"   yaml:"indicators"`
	Scopes      []domain.ScopeRule       `toml:"scopes"       yaml:"scopes"`
	Sections    []domain.SectionTemplate `toml:"sections"     yaml:"sections"`
	Rules       *rulesConfig             `toml:"rules"        yaml:"rules"`
}

type rulesConfig struct {
	SubjectMaxLength   *int  `toml:"subject_max_length"   yaml:"subject_max_length"`
	BodyMaxLength      *int  `toml:"body_max_length"      yaml:"body_max_length"`
	RequireVerb        *bool `toml:"require_verb"         yaml:"require_verb"`
	RequireCapitalised *bool `toml:"require_capitalised"  yaml:"require_capitalised"`
	ForbidTrailingStop *bool `toml:"forbid_trailing_stop" yaml:"forbid_trailing_stop"`
	RequireSeparator   *bool `toml:"require_separator"    yaml:"require_separator"`
}

func decode(path string, data []byte, out *fileConfig) error {
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
		return nil
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// merge overlays explicit file values on the base config. Slices replace
// the base table entirely; a partial table would make indicator and section
// ordering ambiguous.
func merge(base domain.Config, file fileConfig) domain.Config {
	result := base

	if file.DefaultVerb != "" {
		result.DefaultVerb = file.DefaultVerb
	}
	if len(file.Verbs) > 0 {
		result.Verbs = file.Verbs
	}
	if len(file.Indicators) > 0 {
		result.Indicators = file.Indicators
	}
	if len(file.Scopes) > 0 {
		result.Scopes = file.Scopes
	}
	if len(file.Sections) > 0 {
		result.Sections = file.Sections
	}

	if file.Rules != nil {
		if file.Rules.SubjectMaxLength != nil {
			result.Rules.SubjectMaxLength = *file.Rules.SubjectMaxLength
		}
		if file.Rules.BodyMaxLength != nil {
			result.Rules.BodyMaxLength = *file.Rules.BodyMaxLength
		}
		if file.Rules.RequireVerb != nil {
			result.Rules.RequireVerb = *file.Rules.RequireVerb
		}
		if file.Rules.RequireCapitalised != nil {
			result.Rules.RequireCapitalised = *file.Rules.RequireCapitalised
		}
		if file.Rules.ForbidTrailingStop != nil {
			result.Rules.ForbidTrailingStop = *file.Rules.ForbidTrailingStop
		}
		if file.Rules.RequireSeparator != nil {
			result.Rules.RequireSeparator = *file.Rules.RequireSeparator
		}
	}

	return result
}

// Render serializes a config to TOML, used by `commitcraft init` to write a
// starter file.
func Render(cfg domain.Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	header := "# commitcraft configuration\n# Remove what you do not want to override; defaults apply.\n\n"
	return header + string(data), nil
}
