package widget

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientSend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		if req["message"] != "hi" || req["userId"] != "sess-1" {
			t.Fatalf("unexpected payload: %v", req)
		}
		json.NewEncoder(w).Encode(map[string]string{"reply": "Hello!"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	reply, err := client.Send(context.Background(), "sess-1", "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Hello!" {
		t.Fatalf("expected Hello!, got %q", reply)
	}
}

func TestClientSendRelayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "chatbot service unavailable"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Send(context.Background(), "sess-1", "hi")
	if err == nil {
		t.Fatal("expected an error")
	}
}
