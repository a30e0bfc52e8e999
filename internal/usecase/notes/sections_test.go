package notes

import (
	"reflect"
	"testing"
)

func TestSplitSections(t *testing.T) {
	text := `Preamble the model added.

# Summary
The team agreed to ship on Friday.

## Key Points
- Budget approved
- Hiring paused

# Empty Heading

# Action Items
- Alice will draft the plan
`
	got := SplitSections(text)

	want := map[string]string{
		"summary":      "The team agreed to ship on Friday.",
		"key points":   "- Budget approved\n- Hiring paused",
		"action items": "- Alice will draft the plan",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSections() = %#v, want %#v", got, want)
	}
	if _, ok := got["empty heading"]; ok {
		t.Error("heading with no content should not produce a section")
	}
}

func TestSplitSections_NoHeadings(t *testing.T) {
	got := SplitSections("just plain text\nwith two lines")
	if len(got) != 0 {
		t.Errorf("expected no sections, got %#v", got)
	}
}

func TestSplitSubsections(t *testing.T) {
	body := `- intro point

### Budget
- cut travel

Next Steps:
- plan Q3
- book room`

	got := SplitSubsections(body)
	want := []Subsection{
		{Label: "General", Body: "- intro point"},
		{Label: "Budget", Body: "- cut travel"},
		{Label: "Next Steps", Body: "- plan Q3\n- book room"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSubsections() = %#v, want %#v", got, want)
	}
}

func TestSplitSubsections_ColonProseIsNotLabel(t *testing.T) {
	body := "The ratio was 3:1 which everyone accepted.\nDeadline was discussed: no change."
	got := SplitSubsections(body)
	if len(got) != 1 || got[0].Label != "General" {
		t.Errorf("prose containing colons should stay in General, got %#v", got)
	}
}
