package notes

import "strings"

// Phrases that mark a sentence as action-flavoured in extractive mode.
var actionPhrases = []string{
	"will ", "should ", "need to", "needs to", "have to", "has to",
	"going to", "action item", "follow up", "next step",
}

// SplitSentences breaks text into sentences on '.', '!' and '?' followed by
// whitespace. Common abbreviations and decimal points stay intact.
func SplitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		b.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		// A terminator mid-number ("3.5") or mid-word is not a boundary.
		if i+1 < len(runes) && runes[i+1] != ' ' && runes[i+1] != '\n' && runes[i+1] != '\t' {
			continue
		}
		if r == '.' && endsWithAbbreviation(b.String()) {
			continue
		}
		if s := strings.TrimSpace(b.String()); s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

var abbreviations = []string{"mr.", "mrs.", "ms.", "dr.", "vs.", "etc.", "e.g.", "i.e.", "st.", "inc."}

func endsWithAbbreviation(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	for _, abbr := range abbreviations {
		if strings.HasSuffix(lower, abbr) {
			return true
		}
	}
	return false
}

// SummarizeExtractive builds fields straight from transcript text without a
// model, used when no completion is available. The opening sentences form
// the summary, action-flavoured sentences become action items and the
// remaining early sentences become key points.
func SummarizeExtractive(transcript string) Fields {
	var f Fields
	sentences := SplitSentences(strings.TrimSpace(transcript))
	if len(sentences) == 0 {
		return f
	}

	summaryCount := len(sentences)
	if summaryCount > 3 {
		summaryCount = 3
	}
	f.Summary = strings.Join(sentences[:summaryCount], " ")

	for _, s := range sentences {
		if len(f.ActionItems) >= 5 {
			break
		}
		if isActionSentence(s) {
			f.ActionItems = append(f.ActionItems, s)
		}
	}

	for _, s := range sentences[summaryCount:] {
		if len(f.KeyPoints) >= 7 {
			break
		}
		if isActionSentence(s) {
			continue
		}
		f.KeyPoints = append(f.KeyPoints, s)
	}
	return f
}

func isActionSentence(s string) bool {
	lower := strings.ToLower(s)
	for _, phrase := range actionPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
