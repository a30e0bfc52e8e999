package transcript

import (
	"reflect"
	"testing"

	"github.com/meeting-notes-team/meeting-notes/internal/domain/entities"
)

func word(content string, start int64) entities.TranscriptToken {
	return entities.TranscriptToken{Kind: entities.TokenPronunciation, Content: content, StartMS: start}
}

func punct(content string) entities.TranscriptToken {
	return entities.TranscriptToken{Kind: entities.TokenPunctuation, Content: content}
}

func TestReconstruct_SpeakerChangeClosesTurn(t *testing.T) {
	tokens := []entities.TranscriptToken{
		word("Hello", 0), word("there", 500), punct("."),
		word("Hi", 1200), punct("!"),
		word("Welcome", 2000),
	}
	segments := []entities.SpeakerSegment{
		{Speaker: "Alice", TokenStarts: []int64{0, 500}},
		{Speaker: "Bob", TokenStarts: []int64{1200}},
		{Speaker: "Alice", TokenStarts: []int64{2000}},
	}

	got := Reconstruct(tokens, segments)
	want := []entities.SpeakerTurn{
		{Speaker: "Alice", Text: "Hello there."},
		{Speaker: "Bob", Text: "Hi!"},
		{Speaker: "Alice", Text: "Welcome"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reconstruct() = %+v, want %+v", got, want)
	}
}

func TestReconstruct_UnmatchedTokenGetsUnknown(t *testing.T) {
	tokens := []entities.TranscriptToken{word("Orphan", 42)}
	got := Reconstruct(tokens, nil)
	if len(got) != 1 || got[0].Speaker != UnknownSpeaker {
		t.Fatalf("expected one Unknown turn, got %+v", got)
	}
}

func TestReconstruct_LeadingPunctuationIgnored(t *testing.T) {
	tokens := []entities.TranscriptToken{punct("..."), word("Start", 0)}
	segments := []entities.SpeakerSegment{{Speaker: "A", TokenStarts: []int64{0}}}
	got := Reconstruct(tokens, segments)
	if len(got) != 1 || got[0].Text != "Start" {
		t.Fatalf("leading punctuation should be dropped, got %+v", got)
	}
}

func TestReconstruct_Empty(t *testing.T) {
	if got := Reconstruct(nil, nil); got != nil {
		t.Errorf("expected nil for empty input, got %+v", got)
	}
}

func TestTokensFromWords(t *testing.T) {
	words := []entities.TranscriptWord{
		{Word: "Hello,", StartMS: 0, Speaker: "A"},
		{Word: "world.", StartMS: 400, Speaker: "A"},
		{Word: "Hi", StartMS: 900, Speaker: "B"},
	}

	tokens, segments := TokensFromWords(words)

	turns := Reconstruct(tokens, segments)
	want := []entities.SpeakerTurn{
		{Speaker: "A", Text: "Hello, world."},
		{Speaker: "B", Text: "Hi"},
	}
	if !reflect.DeepEqual(turns, want) {
		t.Errorf("round trip turns = %+v, want %+v", turns, want)
	}

	if len(segments) != 2 {
		t.Errorf("expected 2 segments, got %d", len(segments))
	}
}

func TestRenderSpeakerText(t *testing.T) {
	turns := []entities.SpeakerTurn{
		{Speaker: "Alice", Text: "Hello."},
		{Speaker: "Bob", Text: "Hi."},
	}
	got := RenderSpeakerText(turns)
	want := "Alice: Hello.\n\nBob: Hi.\n\n"
	if got != want {
		t.Errorf("RenderSpeakerText() = %q, want %q", got, want)
	}
}

func TestParticipantsFromTurns(t *testing.T) {
	turns := []entities.SpeakerTurn{
		{Speaker: "spk_0", Text: "a"},
		{Speaker: "B", Text: "b"},
		{Speaker: "spk_0", Text: "c"},
		{Speaker: "Jane Doe", Text: "d"},
	}
	got := ParticipantsFromTurns(turns)
	if len(got) != 3 {
		t.Fatalf("expected 3 participants, got %d", len(got))
	}
	if got[0].Name != "Speaker 0" {
		t.Errorf("spk_0 display = %q, want %q", got[0].Name, "Speaker 0")
	}
	if got[1].Name != "Speaker B" {
		t.Errorf("B display = %q, want %q", got[1].Name, "Speaker B")
	}
	if got[2].Name != "Jane Doe" {
		t.Errorf("named speaker display = %q, want %q", got[2].Name, "Jane Doe")
	}
}
