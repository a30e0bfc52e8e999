package notes

import "testing"

func TestCategorizePoint(t *testing.T) {
	tests := []struct {
		name     string
		point    string
		category string
		text     string
	}{
		{"bold decision", "**Decision**: ship on Friday", CategoryDecision, "ship on Friday"},
		{"plain risk", "Risk: churn may rise in Q3", CategoryRisk, "churn may rise in Q3"},
		{"bold technical lowercase", "**technical**: move to pgbouncer", CategoryTechnical, "move to pgbouncer"},
		{"plain cost", "Cost: adds $400/month", CategoryCost, "adds $400/month"},
		{"free-form bold label", "**Marketing**: launch the campaign", "Marketing", "launch the campaign"},
		{"free-form plain label", "Customer Feedback: onboarding is confusing", "Customer Feedback", "onboarding is confusing"},
		{"no prefix", "everyone liked the demo", "", "everyone liked the demo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, text := CategorizePoint(tt.point)
			if category != tt.category || text != tt.text {
				t.Errorf("CategorizePoint(%q) = (%q, %q), want (%q, %q)",
					tt.point, category, text, tt.category, tt.text)
			}
		})
	}
}

func TestCategoryLabel(t *testing.T) {
	label, text := CategoryLabel("**Infrastructure**: rotate the TLS certs")
	if label != "Infrastructure" || text != "rotate the TLS certs" {
		t.Errorf("got (%q, %q)", label, text)
	}

	label, text = CategoryLabel("plain item with no label")
	if label != "" || text != "plain item with no label" {
		t.Errorf("got (%q, %q)", label, text)
	}
}
