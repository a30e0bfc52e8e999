package notes

import (
	"fmt"
	"strings"
	"testing"

	"github.com/meeting-notes-team/meeting-notes/internal/domain/entities"
)

const sampleCompletion = `# Summary
The platform team reviewed the Q3 roadmap and agreed to prioritize the
billing migration.

# Participants
- Alice Chen - Engineering
- Bob (Product)

# Key Points
- Billing migration moves to July
- **Technical**: legacy cron jobs move to the scheduler
- Cost: new instances add $400/month

# Decisions
- Ship the migration behind a feature flag

# Action Items
- Alice Chen will draft the migration plan
- Update the status page (Owner: Bob, Deadline: Friday)
`

func TestParseCompletion(t *testing.T) {
	f := ParseCompletion(sampleCompletion, entities.FormatStyleRich)

	if !strings.Contains(f.Summary, "Q3 roadmap") {
		t.Errorf("summary not extracted: %q", f.Summary)
	}

	if len(f.Participants) != 2 {
		t.Fatalf("expected 2 participants, got %+v", f.Participants)
	}
	if f.Participants[0].Name != "Alice Chen" || f.Participants[0].Role != "Engineering" {
		t.Errorf("dash-form participant parsed as %+v", f.Participants[0])
	}
	if f.Participants[1].Name != "Bob" || f.Participants[1].Role != "Product" {
		t.Errorf("paren-form participant parsed as %+v", f.Participants[1])
	}

	if len(f.Decisions) != 1 {
		t.Fatalf("expected 1 decision, got %v", f.Decisions)
	}

	// Decisions are mirrored into key points with a bold prefix.
	found := false
	for _, p := range f.KeyPoints {
		if p == "**Decision**: Ship the migration behind a feature flag" {
			found = true
		}
	}
	if !found {
		t.Errorf("decision not mirrored into key points: %v", f.KeyPoints)
	}

	if len(f.ActionItems) != 2 {
		t.Fatalf("expected 2 action items, got %v", f.ActionItems)
	}
	// The inferred owner gets an explicit annotation.
	if !strings.Contains(f.ActionItems[0], "(Owner: Alice Chen)") {
		t.Errorf("inferred owner not annotated: %q", f.ActionItems[0])
	}
	if !strings.Contains(f.ActionItems[1], "Owner: Bob") {
		t.Errorf("explicit annotation lost: %q", f.ActionItems[1])
	}
}

func TestParseCompletion_AliasHeadings(t *testing.T) {
	raw := "# Meeting Summary\nShort recap.\n\n# Next Steps\n- book the room\n\n# Key Takeaways\n- all good\n"
	f := ParseCompletion(raw, entities.FormatStyleRich)
	if f.Summary != "Short recap." {
		t.Errorf("alias summary heading not recognized: %q", f.Summary)
	}
	if len(f.ActionItems) != 1 || f.ActionItems[0] != "book the room" {
		t.Errorf("alias action heading not recognized: %v", f.ActionItems)
	}
	if len(f.KeyPoints) != 1 {
		t.Errorf("alias key point heading not recognized: %v", f.KeyPoints)
	}
}

func TestParseCompletion_UnheadedFallback(t *testing.T) {
	raw := "The team met to discuss hiring. Two roles were approved.\n\n" +
		"Interviews start next month and budget stays flat."
	f := ParseCompletion(raw, entities.FormatStyleRich)

	if f.Summary != "The team met to discuss hiring. Two roles were approved." {
		t.Errorf("fallback summary should be the first paragraph: %q", f.Summary)
	}
	if len(f.KeyPoints) != 0 || len(f.ActionItems) != 0 {
		t.Errorf("prose without bullets should yield no lists: %v / %v", f.KeyPoints, f.ActionItems)
	}
}

func TestParseCompletion_NoStructureBulletFallback(t *testing.T) {
	var b strings.Builder
	b.WriteString("The team met to discuss the launch\n\n")
	for i := 1; i <= 12; i++ {
		fmt.Fprintf(&b, "- item %d\n", i)
	}
	raw := b.String()

	f := ParseCompletion(raw, entities.FormatStyleRich)
	if f.Summary != "The team met to discuss the launch" {
		t.Errorf("summary should be the first paragraph: %q", f.Summary)
	}
	if len(f.KeyPoints) != 10 {
		t.Fatalf("rich split should keep 10 key points, got %d: %v", len(f.KeyPoints), f.KeyPoints)
	}
	if len(f.ActionItems) != 2 {
		t.Fatalf("rich split should push the remainder to action items, got %v", f.ActionItems)
	}
	if f.KeyPoints[0] != "item 1" || f.ActionItems[0] != "item 11" {
		t.Errorf("bullets split out of order: %v / %v", f.KeyPoints, f.ActionItems)
	}

	f = ParseCompletion(raw, entities.FormatStyleSimple)
	if len(f.KeyPoints) != 7 || len(f.ActionItems) != 5 {
		t.Errorf("simple split should be 7 key points and 5 action items, got %d/%d",
			len(f.KeyPoints), len(f.ActionItems))
	}
}

func TestParseCompletion_OwnerRequiresParticipants(t *testing.T) {
	raw := "## Action Items\n- Jane will fix the bug\n"
	f := ParseCompletion(raw, entities.FormatStyleRich)
	if len(f.ActionItems) != 1 {
		t.Fatalf("expected 1 action item, got %v", f.ActionItems)
	}
	if strings.Contains(f.ActionItems[0], "Owner:") {
		t.Errorf("owner invented without participants: %q", f.ActionItems[0])
	}
}

func TestParseCompletion_SectionsWithoutSummary(t *testing.T) {
	raw := "# Key Points\n- only points here\n"
	f := ParseCompletion(raw, entities.FormatStyleRich)
	if f.Summary == "" {
		t.Error("summary should fall back to raw text when no summary section exists")
	}
}
