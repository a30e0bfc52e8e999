package notes

import (
	"fmt"
	"strings"
	"time"

	"github.com/meeting-notes-team/meeting-notes/internal/domain/entities"
)

// RenderOptions carries everything besides the parsed fields that the
// document needs.
type RenderOptions struct {
	MeetingDate time.Time
	GeneratedAt time.Time
	HasSpeakers bool
	Style       entities.FormatStyle
}

// FormatNotes renders parsed fields into the final markdown document.
// FormatStyleSimple produces the flat legacy layout, everything else gets
// the rich layout with categorized sections and grouped action items.
func FormatNotes(f Fields, opts RenderOptions) string {
	if opts.Style == entities.FormatStyleSimple {
		return formatSimple(f, opts)
	}
	return formatRich(f, opts)
}

// formatRich writes the canonical layout. Fixed section order: title,
// summary, key takeaways, the four reserved-category sections, action
// items, participants, transcript notice, footer. Empty sections are
// omitted except Summary, Key Takeaways, and Full Transcript.
func formatRich(f Fields, opts RenderOptions) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Meeting Notes - %s\n\n", opts.MeetingDate.Format("January 2, 2006"))

	writeSummary(&b, f.Summary)

	routed := routePoints(f.KeyPoints)

	b.WriteString("## Key Takeaways\n\n")
	for _, label := range routed.categoryOrder {
		b.WriteString("### " + label + "\n\n")
		for _, p := range routed.categories[label] {
			b.WriteString("- " + p + "\n")
		}
		b.WriteString("\n")
	}
	if len(routed.general) > 0 {
		b.WriteString("### General Points\n\n")
		for _, p := range routed.general {
			b.WriteString("- " + p + "\n")
		}
		b.WriteString("\n")
	}
	if len(routed.categoryOrder) == 0 && len(routed.general) == 0 {
		b.WriteString("- No key points identified.\n\n")
	}

	writeNumberedSection(&b, "Decisions Made", routed.decisions)
	writeNumberedSection(&b, "Technical Details", routed.technical)
	writeNumberedSection(&b, "Cost and Resource Considerations", routed.costs)
	writeNumberedSection(&b, "Risks and Issues", routed.risks)

	writeActionItems(&b, f.ActionItems, participantNames(f.Participants))
	writeParticipants(&b, f.Participants)
	writeTranscriptNotice(&b, opts.HasSpeakers)
	writeFooter(&b, opts.GeneratedAt)

	return b.String()
}

// routedPoints is the outcome of categorizing every key point: the four
// reserved buckets, free-form categories in first-encounter order, and
// the uncategorized remainder.
type routedPoints struct {
	decisions     []string
	technical     []string
	costs         []string
	risks         []string
	categories    map[string][]string
	categoryOrder []string
	general       []string
}

func routePoints(points []string) routedPoints {
	r := routedPoints{categories: make(map[string][]string)}
	for _, p := range points {
		category, text := CategorizePoint(p)
		switch category {
		case "":
			r.general = append(r.general, text)
		case CategoryDecision:
			r.decisions = append(r.decisions, text)
		case CategoryTechnical:
			r.technical = append(r.technical, text)
		case CategoryCost:
			r.costs = append(r.costs, text)
		case CategoryRisk:
			r.risks = append(r.risks, text)
		default:
			if _, seen := r.categories[category]; !seen {
				r.categoryOrder = append(r.categoryOrder, category)
			}
			r.categories[category] = append(r.categories[category], text)
		}
	}
	return r
}

func writeSummary(b *strings.Builder, summary string) {
	b.WriteString("## Summary\n\n")
	if summary != "" {
		b.WriteString(summary + "\n\n")
	} else {
		b.WriteString("No summary available.\n\n")
	}
}

func writeNumberedSection(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("## " + heading + "\n\n")
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
	b.WriteString("\n")
}

// writeActionItems renders action items as numbered lists, grouped under
// a subheading when the item carries a bold label that is not a reserved
// category. Ungrouped items get an "Other Action Items" subheading only
// when grouped ones exist. An empty list omits the whole section.
func writeActionItems(b *strings.Builder, items []string, names []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString("## Action Items\n\n")

	groups := make(map[string][]string)
	var groupOrder []string
	var ungrouped []string

	for _, item := range items {
		label, rest := CategoryLabel(item)
		if label == "" || reservedCategories[strings.ToLower(label)] != "" {
			ungrouped = append(ungrouped, item)
			continue
		}
		if _, seen := groups[label]; !seen {
			groupOrder = append(groupOrder, label)
		}
		groups[label] = append(groups[label], rest)
	}

	for _, label := range groupOrder {
		b.WriteString("### " + label + "\n\n")
		for i, item := range groups[label] {
			writeActionLine(b, i+1, item, names)
		}
		b.WriteString("\n")
	}

	if len(ungrouped) > 0 {
		if len(groupOrder) > 0 {
			b.WriteString("### Other Action Items\n\n")
		}
		for i, item := range ungrouped {
			writeActionLine(b, i+1, item, names)
		}
		b.WriteString("\n")
	}
}

// writeActionLine numbers one action item, moving its owner and deadline
// into a trailing bold bracket annotation. Owners missing from the item
// are inferred against the participant list as a last resort.
func writeActionLine(b *strings.Builder, n int, item string, names []string) {
	text, owner, deadline := ExtractOwnerDeadline(item)
	if owner == "" {
		owner = InferOwner(text, names)
	}
	switch {
	case owner != "" && deadline != "":
		fmt.Fprintf(b, "%d. %s **[Owner: %s, Deadline: %s]**\n", n, text, owner, deadline)
	case owner != "":
		fmt.Fprintf(b, "%d. %s **[Owner: %s]**\n", n, text, owner)
	default:
		fmt.Fprintf(b, "%d. %s\n", n, text)
	}
}

func writeParticipants(b *strings.Builder, participants []entities.Participant) {
	if len(participants) == 0 {
		return
	}
	b.WriteString("## Participants\n\n")
	for _, p := range participants {
		b.WriteString("- " + p.DisplayName())
		switch {
		case p.Role != "" && p.Organization != "":
			b.WriteString(" (" + p.Role + ", " + p.Organization + ")")
		case p.Role != "":
			b.WriteString(" (" + p.Role + ")")
		case p.Organization != "":
			b.WriteString(" (" + p.Organization + ")")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeTranscriptNotice(b *strings.Builder, hasSpeakers bool) {
	b.WriteString("## Full Transcript\n\n")
	if hasSpeakers {
		b.WriteString("The full transcript with speaker identification is available in the attached file.\n")
	} else {
		b.WriteString("The full transcript is available in the attached file.\n")
	}
}

func writeFooter(b *strings.Builder, generatedAt time.Time) {
	fmt.Fprintf(b, "\n---\n*Notes generated on %s at %s*\n",
		generatedAt.Format("2006-01-02"), generatedAt.Format("15:04:05"))
}

// formatSimple is the legacy flat layout: one Key Takeaways list and a
// plain numbered Action Items list, no categorization.
func formatSimple(f Fields, opts RenderOptions) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Meeting Notes - %s\n\n", opts.MeetingDate.Format("January 2, 2006"))

	writeSummary(&b, f.Summary)

	b.WriteString("## Key Takeaways\n\n")
	if len(f.KeyPoints) > 0 {
		for _, p := range f.KeyPoints {
			b.WriteString("- " + p + "\n")
		}
	} else {
		b.WriteString("- No key points identified.\n")
	}
	b.WriteString("\n")

	if len(f.ActionItems) > 0 {
		b.WriteString("## Action Items\n\n")
		for i, item := range f.ActionItems {
			fmt.Fprintf(&b, "%d. %s\n", i+1, item)
		}
		b.WriteString("\n")
	}

	writeTranscriptNotice(&b, opts.HasSpeakers)
	writeFooter(&b, opts.GeneratedAt)

	return b.String()
}
