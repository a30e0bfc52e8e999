package notes

import (
	"regexp"
	"strings"
)

// Reserved point categories. Points carrying one of these prefixes render
// into their own document section instead of the general list.
const (
	CategoryDecision  = "Decision"
	CategoryTechnical = "Technical"
	CategoryCost      = "Cost"
	CategoryRisk      = "Risk"
)

var (
	boldCategoryRe  = regexp.MustCompile(`^\*\*([^*]+)\*\*:\s*(.*)`)
	plainCategoryRe = regexp.MustCompile(`^([A-Za-z][A-Za-z ]*):\s*(.*)`)
)

// reservedCategories maps lowercase category names to their canonical form.
var reservedCategories = map[string]string{
	"decision":  CategoryDecision,
	"technical": CategoryTechnical,
	"cost":      CategoryCost,
	"risk":      CategoryRisk,
}

// CategorizePoint inspects a key point for a category prefix, either bold
// ("**Decision**: we ship Friday") or plain ("Risk: churn may rise"). The
// four reserved categories come back under their canonical names; any
// other label becomes a free-form category. Points without a recognized
// prefix come back with an empty category and unchanged text.
func CategorizePoint(point string) (category, text string) {
	trimmed := strings.TrimSpace(point)

	for _, re := range []*regexp.Regexp{boldCategoryRe, plainCategoryRe} {
		m := re.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		label := strings.TrimSpace(m[1])
		if canon, ok := reservedCategories[strings.ToLower(label)]; ok {
			return canon, strings.TrimSpace(m[2])
		}
		return label, strings.TrimSpace(m[2])
	}
	return "", trimmed
}

// CategoryLabel extracts a bold "**Label**:" prefix from an action item,
// returning the label and the remainder. Used to group action items by the
// label the model attached.
func CategoryLabel(item string) (label, text string) {
	if m := boldCategoryRe.FindStringSubmatch(strings.TrimSpace(item)); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return "", strings.TrimSpace(item)
}
