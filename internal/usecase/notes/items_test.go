package notes

import (
	"reflect"
	"testing"
)

func TestExtractItems_MixedMarkers(t *testing.T) {
	text := `- first point
• second point
* third point
1. fourth point
2. fifth point`

	got := ExtractItems(text)
	want := []string{"first point", "second point", "third point", "fourth point", "fifth point"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractItems() = %v, want %v", got, want)
	}
}

func TestExtractItems_ContinuationLines(t *testing.T) {
	text := `- deploy the new service
  and watch the error rate
- update the runbook`

	got := ExtractItems(text)
	want := []string{"deploy the new service\nand watch the error rate", "update the runbook"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractItems() = %v, want %v", got, want)
	}
}

func TestExtractItems_NoMarkersFallsBackToLines(t *testing.T) {
	got := ExtractItems("budget approved\nhiring paused\n\n")
	want := []string{"budget approved", "hiring paused"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractItems() = %v, want %v", got, want)
	}
}

func TestExtractItems_Empty(t *testing.T) {
	if got := ExtractItems("  \n\n"); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestSectionItems_FoldsSubsectionLabels(t *testing.T) {
	body := `- kickoff recap

### Infrastructure
- move cron jobs to the scheduler

Billing:
- freeze invoice changes`

	got := sectionItems(body)
	want := []string{
		"kickoff recap",
		"**Infrastructure**: move cron jobs to the scheduler",
		"**Billing**: freeze invoice changes",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sectionItems() = %v, want %v", got, want)
	}
}

func TestSectionItems_PlainListUnchanged(t *testing.T) {
	got := sectionItems("- one\n- two")
	want := []string{"one", "two"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sectionItems() = %v, want %v", got, want)
	}
}

func TestExtractLabeledList(t *testing.T) {
	text := `Some intro prose.

Key Points:
- budget approved
- hiring paused

Other Label:
- unrelated`

	got := extractLabeledList(text, "Key Points")
	want := []string{"budget approved", "hiring paused"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractLabeledList() = %v, want %v", got, want)
	}

	if got := extractLabeledList(text, "Missing"); got != nil {
		t.Errorf("absent label should yield nil, got %v", got)
	}
}
