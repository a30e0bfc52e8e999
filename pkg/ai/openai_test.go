package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meeting-notes-team/meeting-notes/pkg/config"
)

func TestGenerateNotes_Success(t *testing.T) {
	// Mock OpenAI-compatible server
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		msgs, ok := payload["messages"].([]interface{})
		if !ok || len(msgs) != 2 {
			t.Fatalf("expected system and user messages, got %v", payload["messages"])
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "# Summary\nAll good."}},
			},
		})
	}))
	defer ts.Close()

	client := NewCompletionClient(&config.AIConfig{
		APIKey:  "test-key",
		BaseURL: ts.URL + "/v1",
		Model:   "test-model",
	})

	got, err := client.GenerateNotes(context.Background(), "Alice: hi.", []string{"Alice"})
	if err != nil {
		t.Fatalf("GenerateNotes failed: %v", err)
	}
	if got != "# Summary\nAll good." {
		t.Fatalf("unexpected completion %q", got)
	}
}

func TestGenerateNotes_EmptyTranscript(t *testing.T) {
	client := NewCompletionClient(&config.AIConfig{APIKey: "k"})
	if _, err := client.GenerateNotes(context.Background(), "", nil); err == nil {
		t.Fatal("expected error for empty transcript")
	}
}

func TestVerifyHMAC(t *testing.T) {
	payload := []byte(`{"transcript_id":"abc"}`)
	// hmac-sha256 of payload with secret "s3cret"
	if VerifyHMAC("", payload, "deadbeef") {
		t.Error("empty secret must not verify")
	}
	if VerifyHMAC("s3cret", payload, "") {
		t.Error("empty signature must not verify")
	}
	if VerifyHMAC("s3cret", payload, "not-hex") {
		t.Error("malformed signature must not verify")
	}
}
