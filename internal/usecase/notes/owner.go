package notes

import (
	"regexp"
	"strings"
)

var (
	ownerAnnotationRe = regexp.MustCompile(`\(Owner:\s*([^,)]+)(?:,\s*Deadline:\s*([^)]+))?\)`)
	ownerStripRe      = regexp.MustCompile(`\s*\(Owner:[^)]*\)`)
	modalOwnerRe      = regexp.MustCompile(`([A-Z][a-z]+(?: [A-Z][a-z]+)?) (?:will|should|needs to|is going to|has to)`)
	assignedOwnerRe   = regexp.MustCompile(`(?:assigned to|owned by|responsibility of) ([A-Z][a-z]+(?: [A-Z][a-z]+)?)`)
)

// ownershipPatterns in priority order: modal phrasing first, then
// assigned-to phrasing.
var ownershipPatterns = []*regexp.Regexp{modalOwnerRe, assignedOwnerRe}

// nonNames are capitalized sentence openers that the modal pattern would
// otherwise mistake for a person.
var nonNames = map[string]bool{
	"The": true, "This": true, "That": true, "It": true,
	"We": true, "They": true, "Team": true, "Everyone": true,
	"Someone": true, "He": true, "She": true, "There": true,
}

// ExtractOwnerDeadline reads an explicit "(Owner: name, Deadline: date)"
// annotation from an action item. It returns the item with the annotation
// stripped, plus the owner and deadline, both empty when absent.
func ExtractOwnerDeadline(item string) (text, owner, deadline string) {
	m := ownerAnnotationRe.FindStringSubmatch(item)
	if m == nil {
		return strings.TrimSpace(item), "", ""
	}
	owner = strings.TrimSpace(m[1])
	deadline = strings.TrimSpace(m[2])
	text = strings.TrimSpace(ownerStripRe.ReplaceAllString(item, ""))
	return text, owner, deadline
}

// InferOwner guesses the responsible person from item phrasing when no
// explicit annotation exists. A candidate from "Alice will ..." or
// "assigned to Bob" phrasing only counts when it matches a known
// participant name (substring either direction, case-insensitive); as a
// last resort, a participant whose name literally appears in the item
// owns it. Without a participant list, no owner is ever inferred.
func InferOwner(item string, names []string) string {
	if len(names) == 0 {
		return ""
	}

	for _, pattern := range ownershipPatterns {
		m := pattern.FindStringSubmatch(item)
		if m == nil {
			continue
		}
		candidate := m[1]
		if nonNames[strings.Fields(candidate)[0]] {
			continue
		}
		for _, name := range names {
			if name == "" {
				continue
			}
			if containsFold(candidate, name) || containsFold(name, candidate) {
				return name
			}
		}
	}

	for _, name := range names {
		if name != "" && strings.Contains(item, name) {
			return name
		}
	}
	return ""
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
