package notes

import "testing"

func TestExtractOwnerDeadline(t *testing.T) {
	tests := []struct {
		name     string
		item     string
		text     string
		owner    string
		deadline string
	}{
		{
			"owner and deadline",
			"Draft the migration plan (Owner: Alice Chen, Deadline: June 12)",
			"Draft the migration plan", "Alice Chen", "June 12",
		},
		{
			"owner only",
			"Update the runbook (Owner: Bob)",
			"Update the runbook", "Bob", "",
		},
		{
			"no annotation",
			"Review the budget",
			"Review the budget", "", "",
		},
		{
			"annotation mid sentence",
			"Ship v2 (Owner: Carol) before the offsite",
			"Ship v2 before the offsite", "Carol", "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, owner, deadline := ExtractOwnerDeadline(tt.item)
			if text != tt.text || owner != tt.owner || deadline != tt.deadline {
				t.Errorf("ExtractOwnerDeadline(%q) = (%q, %q, %q), want (%q, %q, %q)",
					tt.item, text, owner, deadline, tt.text, tt.owner, tt.deadline)
			}
		})
	}
}

func TestInferOwner(t *testing.T) {
	names := []string{"Alice Chen", "Bob Smith", "Carol", "Dan Brown"}
	tests := []struct {
		item string
		want string
	}{
		{"Alice will send the report", "Alice Chen"},
		{"Bob Smith needs to fix the build", "Bob Smith"},
		{"This task is assigned to Carol", "Carol"},
		{"Cleanup owned by Dan Brown", "Dan Brown"},
		{"The team will decide later", ""},
		{"We should revisit pricing", ""},
		{"Follow up with Carol about the vendor", "Carol"},
		{"no owner mentioned here", ""},
	}

	for _, tt := range tests {
		if got := InferOwner(tt.item, names); got != tt.want {
			t.Errorf("InferOwner(%q) = %q, want %q", tt.item, got, tt.want)
		}
	}
}

func TestInferOwner_RequiresParticipants(t *testing.T) {
	items := []string{
		"Jane will fix the bug",
		"This task is assigned to Victor",
	}
	for _, item := range items {
		if got := InferOwner(item, nil); got != "" {
			t.Errorf("InferOwner(%q, nil) = %q, want no owner", item, got)
		}
	}

	// A phrasing match that is not a known participant stays unowned.
	if got := InferOwner("Jane will fix the bug", []string{"Bob"}); got != "" {
		t.Errorf("unknown name accepted as owner: %q", got)
	}
}
