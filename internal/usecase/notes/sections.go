package notes

import (
	"regexp"
	"strings"
)

var (
	headingRe     = regexp.MustCompile(`^#+\s+`)
	subheadingRe  = regexp.MustCompile(`^###\s+(.+)$`)
	inlineLabelRe = regexp.MustCompile(`^[A-Za-z][A-Za-z\s]*:`)
)

// SplitSections splits markdown-flavoured model output into named sections.
// A line starting with one or more '#' characters opens a new section whose
// key is the lowercased heading text. Lines before the first heading are
// ignored. Headings that accumulate no content produce no entry.
func SplitSections(text string) map[string]string {
	sections := make(map[string]string)
	var key string
	var lines []string

	flush := func() {
		if key != "" && len(lines) > 0 {
			sections[key] = strings.TrimSpace(strings.Join(lines, "\n"))
		}
		lines = nil
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if headingRe.MatchString(trimmed) {
			flush()
			key = strings.ToLower(strings.TrimSpace(headingRe.ReplaceAllString(trimmed, "")))
			continue
		}
		if key != "" && trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	flush()

	return sections
}

// Subsection is a labelled slice of a section body, in source order.
type Subsection struct {
	Label string
	Body  string
}

// SplitSubsections divides a section body into labelled subsections. Two
// label forms open a subsection: a "### " subheading line, or a short line
// ending in a colon such as "Next Steps:". Content before any label lands
// in an implicit "General" subsection.
func SplitSubsections(body string) []Subsection {
	var out []Subsection
	label := "General"
	var lines []string

	flush := func() {
		text := strings.TrimSpace(strings.Join(lines, "\n"))
		if text != "" {
			out = append(out, Subsection{Label: label, Body: text})
		}
		lines = nil
	}

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)

		if m := subheadingRe.FindStringSubmatch(trimmed); m != nil {
			flush()
			label = strings.TrimSpace(m[1])
			continue
		}
		if isLabelLine(trimmed) {
			flush()
			label = strings.TrimSuffix(trimmed, ":")
			continue
		}
		lines = append(lines, line)
	}
	flush()

	return out
}

// isLabelLine reports whether a line is a standalone subsection label like
// "Action Items:". List items and long prose lines that merely contain a
// colon do not qualify.
func isLabelLine(line string) bool {
	if line == "" || !strings.HasSuffix(line, ":") {
		return false
	}
	if !inlineLabelRe.MatchString(line) {
		return false
	}
	// A label is the whole line, not a prefix of a sentence.
	return strings.Count(line, ":") == 1 && len(line) <= 60
}
