package notes

import (
	"strings"
	"testing"
	"time"

	"github.com/meeting-notes-team/meeting-notes/internal/domain/entities"
)

func renderOpts(style entities.FormatStyle) RenderOptions {
	return RenderOptions{
		MeetingDate: time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC),
		GeneratedAt: time.Date(2025, time.June, 5, 14, 30, 0, 0, time.UTC),
		HasSpeakers: true,
		Style:       style,
	}
}

// assertOrdered checks that every needle occurs in doc, each one after
// the previous match.
func assertOrdered(t *testing.T, doc string, needles []string) {
	t.Helper()
	pos := 0
	for _, want := range needles {
		idx := strings.Index(doc[pos:], want)
		if idx < 0 {
			t.Fatalf("document missing %q after offset %d\n\n%s", want, pos, doc)
		}
		pos += idx + len(want)
	}
}

func TestFormatNotes_Rich(t *testing.T) {
	f := Fields{
		Summary: "Quarterly planning recap.",
		KeyPoints: []string{
			"Roadmap approved",
			"**Decision**: ship behind a flag",
			"**Risk**: vendor lock-in",
			"**Technical**: storage moves to S3",
			"**Cost**: headcount flat through Q3",
		},
		ActionItems: []string{
			"**Infrastructure**: rotate certs (Owner: Alice)",
			"Update the wiki (Owner: Bob, Deadline: Friday)",
		},
		Participants: []entities.Participant{
			{ID: "alice", Name: "Alice", Role: "Engineering", Organization: "Acme"},
			{ID: "bob", Name: "Bob"},
		},
	}

	doc := FormatNotes(f, renderOpts(entities.FormatStyleRich))

	assertOrdered(t, doc, []string{
		"# Meeting Notes - June 5, 2025",
		"## Summary\n\nQuarterly planning recap.",
		"## Key Takeaways",
		"### General Points\n\n- Roadmap approved",
		"## Decisions Made\n\n1. ship behind a flag",
		"## Technical Details\n\n1. storage moves to S3",
		"## Cost and Resource Considerations\n\n1. headcount flat through Q3",
		"## Risks and Issues\n\n1. vendor lock-in",
		"## Action Items",
		"### Infrastructure\n\n1. rotate certs **[Owner: Alice]**",
		"### Other Action Items\n\n1. Update the wiki **[Owner: Bob, Deadline: Friday]**",
		"## Participants\n\n- Alice (Engineering, Acme)\n- Bob\n",
		"## Full Transcript",
		"*Notes generated on 2025-06-05 at 14:30:00*",
	})

	// Categorized points must not leak into the takeaways list.
	takeaways := doc[strings.Index(doc, "## Key Takeaways"):strings.Index(doc, "## Decisions Made")]
	if strings.Contains(takeaways, "flag") || strings.Contains(takeaways, "vendor") {
		t.Errorf("categorized points leaked into takeaways:\n%s", takeaways)
	}
}

func TestFormatNotes_FreeFormCategories(t *testing.T) {
	f := Fields{
		Summary: "Infra review.",
		KeyPoints: []string{
			"**Security**: rotate the signing keys",
			"Standup moves to 9am",
			"**Hiring**: two backend roles open",
			"**Security**: audit scheduled for July",
		},
	}
	doc := FormatNotes(f, renderOpts(entities.FormatStyleRich))

	assertOrdered(t, doc, []string{
		"## Key Takeaways",
		"### Security\n\n- rotate the signing keys\n- audit scheduled for July",
		"### Hiring\n\n- two backend roles open",
		"### General Points\n\n- Standup moves to 9am",
	})
}

func TestFormatNotes_NoGroupsMeansNoOtherHeading(t *testing.T) {
	f := Fields{
		Summary:     "Short sync.",
		ActionItems: []string{"Send the recap (Owner: Alice)"},
	}
	doc := FormatNotes(f, renderOpts(entities.FormatStyleRich))

	if strings.Contains(doc, "### Other Action Items") {
		t.Error("ungrouped-only items should not get the Other heading")
	}
	if !strings.Contains(doc, "1. Send the recap **[Owner: Alice]**") {
		t.Errorf("action item missing:\n%s", doc)
	}
}

func TestFormatNotes_EmptyFieldsStillRenderSkeleton(t *testing.T) {
	doc := FormatNotes(Fields{}, RenderOptions{
		MeetingDate: time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC),
		GeneratedAt: time.Date(2025, time.June, 5, 14, 30, 0, 0, time.UTC),
		Style:       entities.FormatStyleRich,
	})

	for _, want := range []string{
		"No summary available.",
		"- No key points identified.",
		"## Full Transcript\n\nThe full transcript is available in the attached file.",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("empty skeleton missing %q", want)
		}
	}
	for _, absent := range []string{"## Participants", "## Action Items"} {
		if strings.Contains(doc, absent) {
			t.Errorf("empty section %q should be omitted", absent)
		}
	}
}

func TestFormatNotes_TranscriptNoticeWording(t *testing.T) {
	opts := renderOpts(entities.FormatStyleRich)
	doc := FormatNotes(Fields{Summary: "x"}, opts)
	if !strings.Contains(doc, "The full transcript with speaker identification is available in the attached file.") {
		t.Errorf("speaker-labeled notice missing:\n%s", doc)
	}

	opts.HasSpeakers = false
	doc = FormatNotes(Fields{Summary: "x"}, opts)
	if !strings.Contains(doc, "The full transcript is available in the attached file.") {
		t.Errorf("plain notice missing:\n%s", doc)
	}
	if strings.Contains(doc, "speaker identification") {
		t.Error("plain notice should not mention speaker identification")
	}
}

func TestFormatNotes_OwnerInferredFromParticipants(t *testing.T) {
	f := Fields{
		Summary:     "Sync.",
		ActionItems: []string{"Carol will file the incident report"},
		Participants: []entities.Participant{
			{ID: "carol", Name: "Carol"},
		},
	}
	doc := FormatNotes(f, renderOpts(entities.FormatStyleRich))
	if !strings.Contains(doc, "1. Carol will file the incident report **[Owner: Carol]**") {
		t.Errorf("owner not inferred from participants:\n%s", doc)
	}
}

func TestFormatNotes_Simple(t *testing.T) {
	f := Fields{
		Summary:     "Weekly sync recap.",
		KeyPoints:   []string{"**Decision**: defer the launch"},
		ActionItems: []string{"Book the room"},
	}
	doc := FormatNotes(f, renderOpts(entities.FormatStyleSimple))

	if !strings.Contains(doc, "## Key Takeaways\n\n- **Decision**: defer the launch") {
		t.Errorf("simple layout should not categorize points:\n%s", doc)
	}
	if strings.Contains(doc, "## Decisions Made") {
		t.Error("simple layout must not emit category sections")
	}
	if !strings.Contains(doc, "## Action Items\n\n1. Book the room") {
		t.Errorf("simple action items missing:\n%s", doc)
	}
}

func TestFormatNotes_DocumentShape(t *testing.T) {
	raw := "## Summary\nHello.\n\n" +
		"## Key Takeaways\n- **Technical**: uses v2 API\n\n" +
		"## Action Items\n1. Ship it (Owner: Bob)\n"
	f := ParseCompletion(raw, entities.FormatStyleRich)
	doc := FormatNotes(f, renderOpts(entities.FormatStyleRich))

	assertOrdered(t, doc, []string{
		"## Summary\n\nHello.",
		"## Key Takeaways",
		"## Technical Details\n\n1. uses v2 API",
		"## Action Items\n\n1. Ship it **[Owner: Bob]**",
		"## Full Transcript",
	})
}
