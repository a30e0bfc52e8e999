package ai

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuildNotesPrompt(t *testing.T) {
	prompt := BuildNotesPrompt("Alice: Hello everyone.", []string{"Alice", "Bob"})

	if !strings.Contains(prompt, "Known participants: Alice, Bob") {
		t.Errorf("participants missing from prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Alice: Hello everyone.") {
		t.Errorf("transcript missing from prompt:\n%s", prompt)
	}
}

func TestTruncateTranscript(t *testing.T) {
	long := strings.Repeat("a", 60) + strings.Repeat("z", 60)

	got := TruncateTranscript(long, 40)
	if !strings.Contains(got, "[... transcript truncated ...]") {
		t.Error("expected elision marker")
	}
	if !strings.HasPrefix(got, strings.Repeat("a", 20)) {
		t.Error("head of transcript should survive")
	}
	if !strings.HasSuffix(got, strings.Repeat("z", 20)) {
		t.Error("tail of transcript should survive")
	}

	short := "short transcript"
	if TruncateTranscript(short, 40) != short {
		t.Error("transcript under the limit must pass through unchanged")
	}
}

func TestExtractParticipantHints(t *testing.T) {
	transcript := "Alice Chen: Let's start.\n\nBob: Agreed.\n\nAlice Chen: Moving on.\nnot a speaker: line"
	got := ExtractParticipantHints(transcript)
	want := []string{"Alice Chen", "Bob"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractParticipantHints() = %v, want %v", got, want)
	}
}
