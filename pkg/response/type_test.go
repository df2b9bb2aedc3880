package response_test

import (
	"encoding/json"
	"testing"
	"time"

	"aurax-orchestrator/pkg/response"
)

func TestDateTimeMarshalJSON(t *testing.T) {
	tm := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

	b, err := json.Marshal(response.DateTime(tm))
	if err != nil {
		t.Fatalf("unexpected error marshaling DateTime: %v", err)
	}

	var got string
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("expected a JSON string, got %s", b)
	}
	want := tm.Local().Format(response.DateTimeFormat)
	if got != want {
		t.Errorf("DateTime = %q, want %q", got, want)
	}
}

func TestDateTimeInStruct(t *testing.T) {
	tm := time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)
	body := struct {
		CheckedAt response.DateTime `json:"checked_at"`
	}{CheckedAt: response.DateTime(tm)}

	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `{"checked_at":"2026-01-02 03:04:05"}`; string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}
