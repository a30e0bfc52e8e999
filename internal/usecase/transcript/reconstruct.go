package transcript

import (
	"fmt"
	"strings"

	"github.com/meeting-notes-team/meeting-notes/internal/domain/entities"
)

// UnknownSpeaker is assigned to tokens whose start time does not belong to
// any speaker segment. A miss is a defined fallback, not an error.
const UnknownSpeaker = "Unknown"

// Reconstruct merges a time-ordered token stream with speaker segments into
// contiguous speaker turns. Consecutive words from the same speaker
// accumulate into one turn; a speaker change closes the turn. Punctuation
// tokens attach to the preceding word with no space.
func Reconstruct(tokens []entities.TranscriptToken, segments []entities.SpeakerSegment) []entities.SpeakerTurn {
	speakerByStart := make(map[int64]string)
	for _, seg := range segments {
		for _, start := range seg.TokenStarts {
			speakerByStart[start] = seg.Speaker
		}
	}

	var turns []entities.SpeakerTurn
	var current entities.SpeakerTurn
	open := false

	for _, tok := range tokens {
		if tok.Kind != entities.TokenPronunciation {
			if open && tok.Content != "" {
				current.Text += tok.Content
			}
			continue
		}

		speaker, ok := speakerByStart[tok.StartMS]
		if !ok {
			speaker = UnknownSpeaker
		}

		if !open || speaker != current.Speaker {
			if open && current.Text != "" {
				turns = append(turns, current)
			}
			current = entities.SpeakerTurn{Speaker: speaker, Text: tok.Content}
			open = true
		} else {
			current.Text += " " + tok.Content
		}
	}

	if open && current.Text != "" {
		turns = append(turns, current)
	}

	return turns
}

// TokensFromWords converts provider words into the token/segment form used by
// Reconstruct. Trailing sentence punctuation is split into punctuation tokens
// and segments group consecutive words by speaker.
func TokensFromWords(words []entities.TranscriptWord) ([]entities.TranscriptToken, []entities.SpeakerSegment) {
	var tokens []entities.TranscriptToken
	var segments []entities.SpeakerSegment

	for _, w := range words {
		text := w.Word
		var punct string
		for len(text) > 0 && strings.ContainsRune(".,!?;:", rune(text[len(text)-1])) {
			punct = string(text[len(text)-1]) + punct
			text = text[:len(text)-1]
		}
		if text == "" {
			// Word was pure punctuation
			text, punct = w.Word, ""
		}

		tokens = append(tokens, entities.TranscriptToken{
			Kind:    entities.TokenPronunciation,
			Content: text,
			StartMS: w.StartMS,
		})
		if punct != "" {
			tokens = append(tokens, entities.TranscriptToken{
				Kind:    entities.TokenPunctuation,
				Content: punct,
			})
		}

		if len(segments) == 0 || segments[len(segments)-1].Speaker != w.Speaker {
			segments = append(segments, entities.SpeakerSegment{Speaker: w.Speaker})
		}
		last := &segments[len(segments)-1]
		last.TokenStarts = append(last.TokenStarts, w.StartMS)
	}

	return tokens, segments
}

// RenderSpeakerText renders turns as "Speaker: text" paragraphs.
func RenderSpeakerText(turns []entities.SpeakerTurn) string {
	var b strings.Builder
	for _, t := range turns {
		fmt.Fprintf(&b, "%s: %s\n\n", t.Speaker, t.Text)
	}
	return b.String()
}

// ParticipantsFromTurns derives participants from the distinct speaker labels
// in encounter order. Diarization labels like "spk_3" or bare "A" get a
// readable "Speaker N" display name.
func ParticipantsFromTurns(turns []entities.SpeakerTurn) []entities.Participant {
	seen := make(map[string]bool)
	var out []entities.Participant
	for _, t := range turns {
		if t.Speaker == "" || seen[t.Speaker] {
			continue
		}
		seen[t.Speaker] = true
		out = append(out, entities.Participant{
			ID:   t.Speaker,
			Name: speakerDisplayName(t.Speaker),
		})
	}
	return out
}

func speakerDisplayName(label string) string {
	if strings.HasPrefix(label, "spk_") {
		parts := strings.Split(label, "_")
		return "Speaker " + parts[len(parts)-1]
	}
	if len(label) <= 2 {
		return "Speaker " + label
	}
	return label
}
