package domain

import "strings"

// Section is one named block of commit message body. The implicit overview
// block (body text before any recognized heading) has empty Name and
// Heading. Sections parsed from unknown marker headings keep their heading
// verbatim so unrecognized content survives a round-trip.
type Section struct {
	Name    string `json:"name,omitempty"`
	Heading string `json:"heading,omitempty"`
	Body    string `json:"body,omitempty"`
}

// CommitMessage is the parsed representation of a commit message: a subject
// line plus ordered body sections.
type CommitMessage struct {
	Subject  string    `json:"subject"`
	Sections []Section `json:"sections,omitempty"`
}

// SectionBody returns the body of the named section, or "" when absent.
func (m CommitMessage) SectionBody(name string) string {
	for _, s := range m.Sections {
		if s.Name == name {
			return s.Body
		}
	}
	return ""
}

// HasSection reports whether the named section is present.
func (m CommitMessage) HasSection(name string) bool {
	for _, s := range m.Sections {
		if s.Name == name {
			return true
		}
	}
	return false
}

// SetSectionBody replaces the body of the named section, returning a new
// message. Unknown names are ignored.
func (m CommitMessage) SetSectionBody(name, body string) CommitMessage {
	out := m
	out.Sections = make([]Section, len(m.Sections))
	copy(out.Sections, m.Sections)
	for i := range out.Sections {
		if out.Sections[i].Name == name {
			out.Sections[i].Body = strings.TrimRight(body, "\n")
		}
	}
	return out
}

// Render serializes the message back to raw text: subject, one blank line,
// then sections separated by blank lines. Inverse of Parse.
func (m CommitMessage) Render() string {
	var b strings.Builder
	b.WriteString(m.Subject)

	for _, s := range m.Sections {
		b.WriteString("\n\n")
		switch {
		case s.Heading != "" && s.Body != "":
			b.WriteString(s.Heading)
			b.WriteString("\n")
			b.WriteString(s.Body)
		case s.Heading != "":
			b.WriteString(s.Heading)
		default:
			b.WriteString(s.Body)
		}
	}

	b.WriteString("\n")
	return b.String()
}
