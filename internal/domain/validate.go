package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule identifiers carried on violations.
const (
	RuleEmptyMessage   = "empty-message"
	RuleSubjectLength  = "subject-length"
	RuleSubjectVerb    = "subject-verb"
	RuleSubjectCase    = "subject-capitalised"
	RuleSubjectStop    = "subject-full-stop"
	RuleSeparator      = "subject-body-separator"
	RuleBodyLineLength = "body-line-length"
	RuleMissingSection = "missing-section"
)

// Violation is one broken format rule with a human-readable explanation.
// Line is the 1-based line number in the message text, 0 when the rule is
// not line-scoped.
type Violation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// ValidateText checks raw commit message text against the format rules and
// returns every violation found, in a stable order: subject rules first,
// then the separator rule, then body line rules in line order, then missing
// sections in configured order. Empty input returns ErrEmptyMessage since
// there is no message to validate.
//
// Pure: the same input always yields the same violation list.
func ValidateText(raw string, cfg Config) ([]Violation, error) {
	res, err := parseMessage(raw, cfg)
	if err != nil {
		return nil, err
	}

	violations := subjectViolations(res.msg.Subject, cfg)

	if res.structure != nil && cfg.Rules.RequireSeparator {
		violations = append(violations, Violation{
			Rule:    RuleSeparator,
			Message: capitalize(res.structure.Reason),
			Line:    res.structure.Line,
		})
	}

	violations = append(violations, bodyLineViolations(raw, res, cfg)...)
	if res.bodyStart > 0 {
		// Section requirements only apply to messages that carry a body;
		// a bare subject line is judged on subject rules alone.
		violations = append(violations, missingSectionViolations(res.msg, cfg)...)
	}
	return violations, nil
}

// Validate checks an in-memory message by validating its rendered text. A
// message with an empty subject yields a single empty-message violation.
func Validate(msg CommitMessage, cfg Config) []Violation {
	violations, err := ValidateText(msg.Render(), cfg)
	if err != nil {
		return []Violation{{Rule: RuleEmptyMessage, Message: "Empty commit message"}}
	}
	return violations
}

func subjectViolations(subject string, cfg Config) []Violation {
	var violations []Violation

	if n := utf8.RuneCountInString(subject); n > cfg.Rules.SubjectMaxLength {
		violations = append(violations, Violation{
			Rule:    RuleSubjectLength,
			Message: fmt.Sprintf("Subject line is %d characters (max %d)", n, cfg.Rules.SubjectMaxLength),
			Line:    1,
		})
	}

	if cfg.Rules.RequireVerb {
		first := ""
		if fields := strings.Fields(subject); len(fields) > 0 {
			first = fields[0]
		}
		if !cfg.HasVerb(first) {
			violations = append(violations, Violation{
				Rule: RuleSubjectVerb,
				Message: fmt.Sprintf("Subject must start with a standard verb: %s",
					strings.Join(cfg.VerbLabels(), ", ")),
				Line: 1,
			})
		}
	}

	if cfg.Rules.RequireCapitalised {
		r, _ := utf8.DecodeRuneInString(subject)
		if r == utf8.RuneError || !unicode.IsUpper(r) {
			violations = append(violations, Violation{
				Rule:    RuleSubjectCase,
				Message: "Subject line not capitalised",
				Line:    1,
			})
		}
	}

	if cfg.Rules.ForbidTrailingStop && strings.HasSuffix(subject, ".") {
		violations = append(violations, Violation{
			Rule:    RuleSubjectStop,
			Message: "Subject line ends with a full stop",
			Line:    1,
		})
	}

	return violations
}

// bodyLineViolations reports every body line over the limit, each with its
// 1-based line number in the raw text. The limit is inclusive: a line of
// exactly the configured length passes.
func bodyLineViolations(raw string, res parsed, cfg Config) []Violation {
	if res.bodyStart == 0 {
		return nil
	}

	var violations []Violation
	lines := strings.Split(raw, "\n")
	for i := res.bodyStart - 1; i < len(lines); i++ {
		n := utf8.RuneCountInString(lines[i])
		if n > cfg.Rules.BodyMaxLength {
			violations = append(violations, Violation{
				Rule:    RuleBodyLineLength,
				Message: fmt.Sprintf("Line %d is %d characters (max %d)", i+1, n, cfg.Rules.BodyMaxLength),
				Line:    i + 1,
			})
		}
	}
	return violations
}

// missingSectionViolations reports absent required sections in configured
// order. Sections whose required-ness is conditional on the breaking flag
// are never reported: the condition is not observable from the message
// alone, and the composer already enforces it where the flag is known.
func missingSectionViolations(msg CommitMessage, cfg Config) []Violation {
	var violations []Violation
	for _, tmpl := range cfg.Sections {
		if tmpl.Requirement != Required {
			continue
		}
		if msg.HasSection(tmpl.Name) {
			continue
		}
		violations = append(violations, Violation{
			Rule:    RuleMissingSection,
			Message: fmt.Sprintf("Missing required section: %s", tmpl.Name),
		})
	}
	return violations
}
