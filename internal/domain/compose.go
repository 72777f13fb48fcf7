package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/muesli/reflow/wordwrap"
)

// Overrides carries user-supplied edits applied on top of a classification:
// a replacement for the derived subject summary, and replacement bodies per
// section name.
type Overrides struct {
	Summary  string
	Sections map[string]string
}

// changesPerFile caps how many added lines the Changes Overview quotes per
// file.
const changesPerFile = 3

// Compose assembles a draft commit message from a classification, the
// configured section templates, and optional user edits. Pure: each call
// returns a fresh CommitMessage, so the draft can be regenerated after
// edits.
//
// Subject is verb + summary, capitalized, with any trailing full stop
// stripped, truncated at a word boundary to the subject limit. Sections are
// emitted in configured order: required sections fall back to their
// placeholder, optional sections without content are omitted, and sections
// conditional on the breaking flag appear only when it is set. Bodies are
// wrapped at the body limit, breaking only at whitespace.
func Compose(res ClassificationResult, cfg Config, ov Overrides) CommitMessage {
	msg := CommitMessage{
		Subject: composeSubject(res, cfg, ov),
	}

	for _, tmpl := range cfg.Sections {
		if tmpl.Requirement == RequiredIfBreaking && !res.Breaking {
			continue
		}

		body := sectionBody(tmpl, res, ov)
		if body == "" && tmpl.Requirement == Optional {
			continue
		}

		// Trailing whitespace is normalized here so a composed message
		// survives a parse/render round-trip unchanged.
		msg.Sections = append(msg.Sections, Section{
			Name:    tmpl.Name,
			Heading: tmpl.Heading(),
			Body:    strings.TrimRight(wrapBody(body, cfg.Rules.BodyMaxLength), " \t\n"),
		})
	}

	return msg
}

func composeSubject(res ClassificationResult, cfg Config, ov Overrides) string {
	summary := ov.Summary
	if summary == "" {
		summary = res.Summary
	}

	subject := strings.TrimSpace(res.Verb + " " + summary)
	subject = capitalize(subject)
	subject = strings.TrimRight(subject, ".")
	return truncateAtWord(subject, cfg.Rules.SubjectMaxLength)
}

func sectionBody(tmpl SectionTemplate, res ClassificationResult, ov Overrides) string {
	if override, ok := ov.Sections[tmpl.Name]; ok && strings.TrimSpace(override) != "" {
		return strings.TrimRight(override, "\n")
	}

	// Placeholders count as content only for sections that must appear;
	// an optional section without user or derived content is omitted.
	body := ""
	if tmpl.Requirement != Optional {
		body = tmpl.Placeholder
	}
	if extra := autoFillBody(tmpl.AutoFill, res); extra != "" {
		if body != "" {
			body += "\n\n"
		}
		body += extra
	}
	return strings.TrimRight(body, "\n")
}

// autoFillBody seeds a section body from classifier evidence.
func autoFillBody(kind AutoFill, res ClassificationResult) string {
	switch kind {
	case AutoFillChanges:
		return changesBullets(res.Evidence)
	case AutoFillBreaking:
		return breakingBullets(res.Evidence)
	default:
		return ""
	}
}

func changesBullets(evidence []Evidence) string {
	var (
		order []string
		lines = make(map[string][]string)
		seen  = make(map[string]bool)
	)
	for _, ev := range evidence {
		key := ev.File + "\x00" + ev.Line
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, ok := lines[ev.File]; !ok {
			order = append(order, ev.File)
		}
		if len(lines[ev.File]) < changesPerFile {
			lines[ev.File] = append(lines[ev.File], ev.Line)
		}
	}

	var b strings.Builder
	for _, file := range order {
		b.WriteString("* In " + file + ":\n")
		for _, line := range lines[file] {
			b.WriteString("  - " + line + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func breakingBullets(evidence []Evidence) string {
	var (
		b    strings.Builder
		seen = make(map[string]bool)
	)
	for _, ev := range evidence {
		if !ev.Breaking {
			continue
		}
		key := ev.File + "\x00" + ev.Line
		if seen[key] {
			continue
		}
		seen[key] = true
		b.WriteString("* Breaking change in " + ev.File + ":\n  " + ev.Line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// wrapBody wraps text so no line exceeds limit, breaking only at whitespace
// and never mid-word. Words longer than the limit are left intact.
func wrapBody(text string, limit int) string {
	if text == "" || limit <= 0 {
		return text
	}
	return wordwrap.String(text, limit)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// truncateAtWord shortens s to at most max runes, cutting at the last word
// boundary that fits. A single overlong word is cut hard at the limit.
func truncateAtWord(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)
	cut := max
	for i := max; i > 0; i-- {
		if unicode.IsSpace(runes[i-1]) {
			cut = i - 1
			break
		}
		if i == 1 {
			cut = max
		}
	}
	return strings.TrimRight(string(runes[:cut]), " \t.")
}
