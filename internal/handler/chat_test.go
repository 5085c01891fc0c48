package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/podderSoykot/Saloon-chatbot/internal/config"
	"github.com/podderSoykot/Saloon-chatbot/internal/service"
)

type upstreamStub struct {
	server *httptest.Server
	calls  int64
	body   []byte
}

// newUpstream fakes the hosted chatbot service with a fixed response.
func newUpstream(t *testing.T, status int, response string) *upstreamStub {
	t.Helper()
	stub := &upstreamStub{}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&stub.calls, 1)
		body, _ := io.ReadAll(r.Body)
		stub.body = body
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func newChatRouter(upstreamURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Chatbot.APIURL = upstreamURL
	cfg.Chatbot.DefaultUserID = "user123"
	cfg.Chatbot.Timeout = 5 * time.Second

	h := NewChatHandler(service.NewRelayService(cfg))

	r := gin.New()
	r.POST("/api/chat", h.Chat)
	return r
}

func postChat(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestChatForwardsTrimmedMessage(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK, `{"bot": "Hello!"}`)
	r := newChatRouter(upstream.server.URL)

	resp := postChat(r, `{"message": "  hi there  "}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var forwarded map[string]string
	if err := json.Unmarshal(upstream.body, &forwarded); err != nil {
		t.Fatalf("upstream body not JSON: %v", err)
	}
	if forwarded["message"] != "hi there" {
		t.Fatalf("expected trimmed message %q, got %q", "hi there", forwarded["message"])
	}
	if forwarded["user_id"] != "user123" {
		t.Fatalf("expected default user_id user123, got %q", forwarded["user_id"])
	}

	var reply map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &reply); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	if reply["reply"] != "Hello!" {
		t.Fatalf("expected reply Hello!, got %q", reply["reply"])
	}
}

func TestChatCustomUserID(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK, `{"bot": "ok"}`)
	r := newChatRouter(upstream.server.URL)

	resp := postChat(r, `{"message": "hi", "userId": "guest-42"}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var forwarded map[string]string
	json.Unmarshal(upstream.body, &forwarded)
	if forwarded["user_id"] != "guest-42" {
		t.Fatalf("expected user_id guest-42, got %q", forwarded["user_id"])
	}
}

func TestChatRejectsEmptyMessages(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK, `{"bot": "never"}`)
	r := newChatRouter(upstream.server.URL)

	cases := []struct {
		name string
		body string
	}{
		{"empty string", `{"message": ""}`},
		{"whitespace only", `{"message": "   "}`},
		{"missing message", `{}`},
		{"non-string message", `{"message": 42}`},
		{"null message", `{"message": null}`},
		{"not json", `hello`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postChat(r, tc.body)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body not JSON: %v", err)
			}
			if body["error"] == "" {
				t.Fatal("expected an error field")
			}
		})
	}

	if n := atomic.LoadInt64(&upstream.calls); n != 0 {
		t.Fatalf("expected no upstream calls for invalid input, got %d", n)
	}
}

func TestChatUpstreamFailureIsTerminal(t *testing.T) {
	upstream := newUpstream(t, http.StatusServiceUnavailable, `{"error": "down"}`)
	r := newChatRouter(upstream.server.URL)

	resp := postChat(r, `{"message": "hi"}`)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	var body map[string]string
	json.Unmarshal(resp.Body.Bytes(), &body)
	if body["error"] == "" {
		t.Fatal("expected an error field")
	}
	if n := atomic.LoadInt64(&upstream.calls); n != 1 {
		t.Fatalf("expected exactly one upstream attempt, got %d", n)
	}
}

func TestChatUpstreamMissingBotField(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK, `{}`)
	r := newChatRouter(upstream.server.URL)

	resp := postChat(r, `{"message": "hi"}`)

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
	var body map[string]string
	json.Unmarshal(resp.Body.Bytes(), &body)
	if body["error"] == "" {
		t.Fatal("expected an error field")
	}
}

func TestChatUpstreamUnreachable(t *testing.T) {
	upstream := newUpstream(t, http.StatusOK, `{"bot": "ok"}`)
	url := upstream.server.URL
	upstream.server.Close()

	r := newChatRouter(url)
	resp := postChat(r, `{"message": "hi"}`)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}
