package notes

import (
	"regexp"
	"strings"

	"github.com/meeting-notes-team/meeting-notes/internal/domain/entities"
)

// Fields is the structured content recovered from a model completion.
type Fields struct {
	Summary      string
	KeyPoints    []string
	ActionItems  []string
	Decisions    []string
	Participants []entities.Participant
}

// Section heading aliases accepted for each field, lowercase.
var (
	summaryAliases     = []string{"summary", "meeting summary", "executive summary", "overview"}
	keyPointAliases    = []string{"key points", "key takeaways", "main points", "highlights"}
	actionItemAliases  = []string{"action items", "next steps", "action points", "tasks"}
	decisionAliases    = []string{"decisions", "decisions made", "key decisions"}
	participantAliases = []string{"participants", "attendees", "speakers"}
)

const fallbackSummaryLimit = 500

// ParseCompletion recovers structured meeting fields from raw model output.
// The completion is expected to be markdown with headed sections, but when
// no summary, key points, or action items can be recovered that way, the
// whole text goes through a paragraph-plus-bullet heuristic instead.
// Decisions are mirrored into KeyPoints with a bold Decision prefix so
// they surface in the takeaways list too. The style selects the fallback
// split point between key points and action items.
func ParseCompletion(raw string, style entities.FormatStyle) Fields {
	sections := SplitSections(raw)

	var f Fields
	f.Summary = firstSection(sections, summaryAliases)
	if body := firstSection(sections, participantAliases); body != "" {
		f.Participants = parseParticipants(body)
	}
	if body := firstSection(sections, keyPointAliases); body != "" {
		f.KeyPoints = sectionItems(body)
	}
	if body := firstSection(sections, actionItemAliases); body != "" {
		f.ActionItems = normalizeOwnerAnnotations(sectionItems(body), participantNames(f.Participants))
	}
	if body := firstSection(sections, decisionAliases); body != "" {
		f.Decisions = ExtractItems(body)
	}

	for _, d := range f.Decisions {
		f.KeyPoints = append(f.KeyPoints, "**"+CategoryDecision+"**: "+d)
	}

	if f.Summary == "" && len(f.KeyPoints) == 0 && len(f.ActionItems) == 0 {
		f.Summary, f.KeyPoints, f.ActionItems = heuristicFallback(raw, style)
	}

	if f.Summary == "" {
		f.Summary = truncate(strings.TrimSpace(raw), fallbackSummaryLimit)
	}
	return f
}

func firstSection(sections map[string]string, aliases []string) string {
	for _, a := range aliases {
		if body, ok := sections[a]; ok {
			return body
		}
	}
	return ""
}

var fallbackBulletRe = regexp.MustCompile(`^\s*[-•*]\s+(.*)$`)

// heuristicFallback recovers fields from a completion with no usable
// sections. Colon-labelled lists are tried first; failing that, bullet
// lines anywhere in the text are split between key points and action
// items. The first non-empty paragraph becomes the summary either way.
func heuristicFallback(raw string, style entities.FormatStyle) (summary string, keyPoints, actionItems []string) {
	raw = strings.TrimSpace(raw)

	keyPoints = extractLabeledList(raw, "Key Points")
	actionItems = extractLabeledList(raw, "Action Items")

	if len(keyPoints) == 0 && len(actionItems) == 0 {
		if bullets := scanBullets(raw); len(bullets) > 0 {
			keyPoints, actionItems = splitFallbackBullets(bullets, style)
		}
	}

	for _, p := range strings.Split(raw, "\n\n") {
		if t := strings.TrimSpace(p); t != "" {
			summary = t
			break
		}
	}
	return summary, keyPoints, actionItems
}

// scanBullets collects bullet lines from anywhere in the text. Numbered
// lines do not count here; the fallback only trusts explicit bullets.
func scanBullets(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if m := fallbackBulletRe.FindStringSubmatch(line); m != nil {
			out = append(out, strings.TrimSpace(m[1]))
		}
	}
	return out
}

// splitFallbackBullets divides fallback bullets between key points and
// action items. The rich layout takes up to ten key points with the
// remainder as action items; the simple layout keeps seven plus at most
// five overflow action items.
func splitFallbackBullets(bullets []string, style entities.FormatStyle) (keyPoints, actionItems []string) {
	if style == entities.FormatStyleSimple {
		split := 7
		if len(bullets) < split {
			split = len(bullets)
		}
		keyPoints = bullets[:split]
		actionItems = bullets[split:]
		if len(actionItems) > 5 {
			actionItems = actionItems[:5]
		}
		return keyPoints, actionItems
	}

	split := 10
	if len(bullets) < split {
		split = len(bullets)
	}
	return bullets[:split], bullets[split:]
}

var participantRoleRe = regexp.MustCompile(`^(.+?)\s*[-–(]\s*([^)]+?)\)?$`)

// parseParticipants reads a participants section. Items may carry a role
// after a dash or in parentheses, e.g. "Alice Chen - Engineering" or
// "Bob (PM)".
func parseParticipants(body string) []entities.Participant {
	var out []entities.Participant
	for _, item := range ExtractItems(body) {
		item = strings.Trim(item, "* ")
		if item == "" {
			continue
		}
		p := entities.Participant{Name: item}
		if m := participantRoleRe.FindStringSubmatch(item); m != nil {
			p.Name = strings.TrimSpace(m[1])
			p.Role = strings.TrimSpace(m[2])
		}
		p.ID = p.Name
		out = append(out, p)
	}
	return out
}

// normalizeOwnerAnnotations appends an "(Owner: ...)" annotation to action
// items whose owner is only implied by phrasing, so every item downstream
// carries its owner the same way. Inference is gated on the participant
// list; without one, items pass through unchanged.
func normalizeOwnerAnnotations(items []string, names []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, owner, _ := ExtractOwnerDeadline(item); owner == "" {
			if inferred := InferOwner(item, names); inferred != "" {
				item = item + " (Owner: " + inferred + ")"
			}
		}
		out = append(out, item)
	}
	return out
}

func participantNames(participants []entities.Participant) []string {
	names := make([]string, 0, len(participants))
	for _, p := range participants {
		names = append(names, p.Name)
	}
	return names
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
