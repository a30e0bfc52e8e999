package notes

import (
	"regexp"
	"strings"
)

var itemMarkerRe = regexp.MustCompile(`^\s*(?:[-•*]|\d+\.)\s+(.*)$`)

// ExtractItems pulls list items out of a block of text. Bulleted ("-", "•",
// "*") and numbered ("1.") markers both count. A non-empty line without a
// marker continues the preceding item. If the block contains no markers at
// all, each non-empty line becomes its own item.
func ExtractItems(text string) []string {
	var items []string
	var current []string
	sawMarker := false

	flush := func() {
		if len(current) > 0 {
			item := strings.TrimSpace(strings.Join(current, "\n"))
			if item != "" {
				items = append(items, item)
			}
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if m := itemMarkerRe.FindStringSubmatch(line); m != nil {
			flush()
			sawMarker = true
			current = []string{strings.TrimSpace(m[1])}
			continue
		}
		if sawMarker {
			current = append(current, trimmed)
		} else {
			items = append(items, trimmed)
		}
	}
	flush()

	return items
}

// sectionItems extracts list items from a section, folding subsection
// labels into the items so grouping survives the flattening: items under a
// "### Infrastructure" subheading or an "Infrastructure:" label come back
// as "**Infrastructure**: item". Leading unlabelled content stays bare.
func sectionItems(body string) []string {
	var items []string
	for _, sub := range SplitSubsections(body) {
		for _, item := range ExtractItems(sub.Body) {
			if sub.Label != "General" {
				item = "**" + sub.Label + "**: " + item
			}
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return ExtractItems(body)
	}
	return items
}

// extractLabeledList finds a labelled list inside free text, e.g. a
// "Key Points:" label followed by bullets, and returns the items under it.
// Matching stops at the next label line or blank-line break after items
// have started.
func extractLabeledList(text, label string) []string {
	var collected []string
	inList := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.EqualFold(strings.TrimSuffix(trimmed, ":"), label) && strings.HasSuffix(trimmed, ":") {
			inList = true
			continue
		}
		if !inList {
			continue
		}
		if trimmed == "" || isLabelLine(trimmed) {
			break
		}
		collected = append(collected, line)
	}

	if len(collected) == 0 {
		return nil
	}
	return ExtractItems(strings.Join(collected, "\n"))
}
