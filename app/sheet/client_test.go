package sheet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientAppendRow(t *testing.T) {
	var gotAuth string
	var gotBody map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Failed to decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	err := client.AppendRow(context.Background(), []string{"2026-01-05", "AAPL", "600000"})
	if err != nil {
		t.Fatalf("AppendRow failed: %v", err)
	}

	if gotAuth != "Bearer secret" {
		t.Errorf("Expected bearer token, got %q", gotAuth)
	}
	if len(gotBody["values"]) != 3 || gotBody["values"][1] != "AAPL" {
		t.Errorf("Unexpected row payload: %v", gotBody)
	}
}

func TestClientAppendRowServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if err := client.AppendRow(context.Background(), []string{"x"}); err == nil {
		t.Error("Expected error on HTTP 500")
	}
}

func TestClientColumn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("column"); got != "fingerprint" {
			t.Errorf("Expected column=fingerprint, got %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "50" {
			t.Errorf("Expected limit=50, got %q", got)
		}
		json.NewEncoder(w).Encode([]string{"A - 1", "B - 2"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	values, err := client.Column(context.Background(), "fingerprint", 50)
	if err != nil {
		t.Fatalf("Column failed: %v", err)
	}
	if len(values) != 2 || values[0] != "A - 1" {
		t.Errorf("Unexpected column values: %v", values)
	}
}
