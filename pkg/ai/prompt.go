package ai

import (
	"regexp"
	"strings"
)

// maxPromptTranscript caps how much transcript text a prompt carries. Longer
// transcripts keep their head and tail and drop the middle, since openings
// and closings carry most of the decisions and action items.
const maxPromptTranscript = 40000

const systemPrompt = `You are an assistant that writes structured meeting notes. ` +
	`Respond in markdown with these sections: Summary, Key Points, Decisions, ` +
	`Action Items, Participants. Prefix categorized points with a bold label ` +
	`like **Decision**, **Technical**, **Cost** or **Risk**. Annotate action ` +
	`items with (Owner: name, Deadline: date) when the transcript makes them clear.`

var speakerLineRe = regexp.MustCompile(`(?m)^([A-Z][a-z]+(?: [A-Z][a-z]+)?):`)

// BuildNotesPrompt assembles the user prompt for notes generation.
func BuildNotesPrompt(transcript string, participants []string) string {
	var b strings.Builder

	b.WriteString("Write meeting notes for the following transcript.\n")
	if len(participants) > 0 {
		b.WriteString("Known participants: " + strings.Join(participants, ", ") + "\n")
	}
	b.WriteString("\nTranscript:\n")
	b.WriteString(TruncateTranscript(transcript, maxPromptTranscript))
	return b.String()
}

// TruncateTranscript shortens a transcript to limit bytes by keeping equal
// halves from the start and end with an elision marker between them.
func TruncateTranscript(transcript string, limit int) string {
	if len(transcript) <= limit {
		return transcript
	}
	half := limit / 2
	return transcript[:half] + "\n\n[... transcript truncated ...]\n\n" + transcript[len(transcript)-half:]
}

// ExtractParticipantHints pulls likely speaker names from "Name:" lines in a
// speaker-labelled transcript, deduplicated in encounter order.
func ExtractParticipantHints(transcript string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range speakerLineRe.FindAllStringSubmatch(transcript, -1) {
		name := m[1]
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
