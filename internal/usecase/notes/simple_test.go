package notes

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("We met today. Budget looks fine! Any questions? None.")
	want := []string{"We met today.", "Budget looks fine!", "Any questions?", "None."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSentences() = %v, want %v", got, want)
	}
}

func TestSplitSentences_AbbreviationsAndNumbers(t *testing.T) {
	got := SplitSentences("Dr. Smith joined late. Costs rose 3.5 percent. Done.")
	want := []string{"Dr. Smith joined late.", "Costs rose 3.5 percent.", "Done."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitSentences() = %v, want %v", got, want)
	}
}

func TestSplitSentences_TrailingFragment(t *testing.T) {
	got := SplitSentences("Complete sentence. trailing fragment without period")
	if len(got) != 2 || got[1] != "trailing fragment without period" {
		t.Errorf("SplitSentences() = %v", got)
	}
}

func TestSummarizeExtractive(t *testing.T) {
	transcript := "The team met to review the launch. Metrics look healthy. " +
		"Churn is down this quarter. Alice will prepare the press release. " +
		"Bob needs to update the pricing page. The new design tested well. " +
		"Support volume stayed flat."

	f := SummarizeExtractive(transcript)

	if !strings.HasPrefix(f.Summary, "The team met") {
		t.Errorf("summary should open the transcript: %q", f.Summary)
	}

	if len(f.ActionItems) != 2 {
		t.Fatalf("expected 2 action items, got %v", f.ActionItems)
	}
	if !strings.HasPrefix(f.ActionItems[0], "Alice will prepare") {
		t.Errorf("first action sentence not captured: %q", f.ActionItems[0])
	}

	for _, p := range f.KeyPoints {
		if isActionSentence(p) {
			t.Errorf("action sentence leaked into key points: %q", p)
		}
	}
	if len(f.KeyPoints) == 0 {
		t.Error("expected key points from remaining sentences")
	}
}

func TestSummarizeExtractive_Empty(t *testing.T) {
	f := SummarizeExtractive("   ")
	if f.Summary != "" || f.KeyPoints != nil || f.ActionItems != nil {
		t.Errorf("expected zero fields, got %+v", f)
	}
}
