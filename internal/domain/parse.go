package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrEmptyMessage reports a message with no discernible subject.
var ErrEmptyMessage = errors.New("commit message has no subject")

// StructureError reports a malformed subject/body separation.
type StructureError struct {
	Line   int // 1-based line number where the problem was found
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// headingRe recognizes section heading lines: "# <title> [<marker>]".
// Template placeholder comments also start with "# " but never carry a
// requirement marker, so they stay inside section bodies.
var headingRe = regexp.MustCompile(`^# (.+) \[(Required|Optional|Required if any)\]$`)

// parsed is the lenient parse outcome: the message plus any structural
// problem found, with enough position info for the validator.
type parsed struct {
	msg       CommitMessage
	structure *StructureError // nil when the separator is well-formed
	bodyStart int             // 1-based line number of the first body line; 0 when no body
}

// Parse splits raw commit message text into a subject and recognized
// sections. The first non-blank line is the subject; exactly one blank line
// must separate it from the body. Body lines before the first recognized
// heading form an implicit unnamed overview section. Headings must match a
// configured section exactly (case-sensitive); unknown marker headings are
// preserved verbatim as opaque sections.
//
// Empty input fails with ErrEmptyMessage; a malformed separator fails with
// a StructureError.
func Parse(raw string, cfg Config) (CommitMessage, error) {
	res, err := parseMessage(raw, cfg)
	if err != nil {
		return CommitMessage{}, err
	}
	if res.structure != nil {
		return CommitMessage{}, res.structure
	}
	return res.msg, nil
}

// parseMessage is the lenient parser shared by Parse and the validator: a
// bad separator is recorded rather than fatal, so validation can report it
// as an ordinary violation.
func parseMessage(raw string, cfg Config) (parsed, error) {
	lines := strings.Split(raw, "\n")

	subjectIdx := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			subjectIdx = i
			break
		}
	}
	if subjectIdx < 0 {
		return parsed{}, ErrEmptyMessage
	}

	res := parsed{msg: CommitMessage{Subject: lines[subjectIdx]}}

	// Locate the first body line and check the separator.
	next := subjectIdx + 1
	blanks := 0
	for next < len(lines) && strings.TrimSpace(lines[next]) == "" {
		blanks++
		next++
	}

	if next >= len(lines) {
		// Subject-only message: nothing after the subject but blank lines.
		return res, nil
	}

	switch {
	case blanks == 0:
		res.structure = &StructureError{
			Line:   subjectIdx + 2,
			Reason: "no blank line between subject and body",
		}
	case blanks > 1:
		res.structure = &StructureError{
			Line:   subjectIdx + 2,
			Reason: fmt.Sprintf("%d blank lines between subject and body (exactly one required)", blanks),
		}
	}

	res.bodyStart = next + 1
	res.msg.Sections = splitSections(lines[next:], cfg)
	return res, nil
}

// splitSections walks body lines, starting a new section at every heading
// line. Trailing blank lines of each section body are dropped (Render
// reinserts the blank separators).
func splitSections(lines []string, cfg Config) []Section {
	var (
		sections []Section
		current  = Section{} // implicit overview until the first heading
		started  = false     // current holds any content yet
		body     []string
	)

	flush := func() {
		text := strings.Join(body, "\n")
		text = strings.TrimRight(text, " \t\n")
		current.Body = text
		if started || text != "" {
			sections = append(sections, current)
		}
		body = nil
	}

	for _, line := range lines {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			if started || len(body) > 0 {
				flush()
			}
			// Only an exact heading match makes a recognized section;
			// anything else is carried as an opaque section.
			current = Section{Heading: line}
			if tmpl, ok := cfg.SectionByName(m[1]); ok && tmpl.Heading() == line {
				current.Name = tmpl.Name
			}
			started = true
			continue
		}
		body = append(body, line)
	}
	flush()

	return sections
}
