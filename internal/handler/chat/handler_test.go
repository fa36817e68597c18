package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/blogifyhq/blogify/internal/middleware"
	"github.com/blogifyhq/blogify/internal/service/ai"
	chatservice "github.com/blogifyhq/blogify/internal/service/chat"
	"github.com/blogifyhq/blogify/internal/service/user"
)

type fakeOrchestrator struct {
	reply     string
	err       error
	lastToken string
	lastOwner string
}

func (f *fakeOrchestrator) Handle(_ context.Context, token, _ string, ownerID string) (string, error) {
	f.lastToken = token
	f.lastOwner = ownerID
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestRouter(orch Orchestrator) *chi.Mux {
	r := chi.NewRouter()
	New(orch).RegisterRoutes(r)
	return r
}

func postChat(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSendMessageSuccess(t *testing.T) {
	orch := &fakeOrchestrator{reply: "hi there"}
	rec := postChat(t, newTestRouter(orch), `{"message":"hello","sessionId":"tok-1"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["response"] != "hi there" {
		t.Fatalf("response = %q", payload["response"])
	}
	if orch.lastToken != "tok-1" {
		t.Fatalf("session token not forwarded: %q", orch.lastToken)
	}
	if orch.lastOwner != "" {
		t.Fatalf("anonymous request should carry no owner, got %q", orch.lastOwner)
	}
}

func TestSendMessageMissingFields(t *testing.T) {
	router := newTestRouter(&fakeOrchestrator{reply: "unused"})

	for _, body := range []string{
		`{"message":"hello"}`,
		`{"sessionId":"tok-1"}`,
		`{}`,
	} {
		rec := postChat(t, router, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Message and sessionId are required.") {
			t.Fatalf("body %s: unexpected error message %s", body, rec.Body.String())
		}
	}
}

func TestSendMessageMalformedJSON(t *testing.T) {
	rec := postChat(t, newTestRouter(&fakeOrchestrator{}), `{"message":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSendMessageErrorMapping(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
	}{
		{chatservice.ErrInvalidRequest, http.StatusBadRequest},
		{fmt.Errorf("complete: %w", ai.ErrAuthenticationFailed), http.StatusUnauthorized},
		{fmt.Errorf("complete: %w", ai.ErrRateLimited), http.StatusTooManyRequests},
		{fmt.Errorf("complete: %w", ai.ErrServiceOverloaded), http.StatusServiceUnavailable},
		{fmt.Errorf("save session: connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		router := newTestRouter(&fakeOrchestrator{err: tc.err})
		rec := postChat(t, router, `{"message":"hello","sessionId":"tok-1"}`)
		if rec.Code != tc.wantStatus {
			t.Fatalf("err %v: status = %d, want %d", tc.err, rec.Code, tc.wantStatus)
		}
	}
}

func TestSendMessageGenericErrorBody(t *testing.T) {
	router := newTestRouter(&fakeOrchestrator{err: fmt.Errorf("boom")})
	rec := postChat(t, router, `{"message":"hello","sessionId":"tok-1"}`)
	if !strings.Contains(rec.Body.String(), "Failed to get response from AI.") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestSendMessageNilOrchestrator(t *testing.T) {
	rec := postChat(t, newTestRouter(nil), `{"message":"hello","sessionId":"tok-1"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestSendMessageForwardsIdentity(t *testing.T) {
	orch := &fakeOrchestrator{reply: "ok"}
	router := newTestRouter(orch)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"message":"hello","sessionId":"tok-1"}`))
	req.Header.Set("Content-Type", "application/json")
	ctx := middleware.WithIdentity(req.Context(), user.Identity{UserID: "507f1f77bcf86cd799439011"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req.WithContext(ctx))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if orch.lastOwner != "507f1f77bcf86cd799439011" {
		t.Fatalf("owner not forwarded: %q", orch.lastOwner)
	}
}

func TestSystemInfo(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/info", nil)
	rec := httptest.NewRecorder()
	newTestRouter(nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var info map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info["platform"] == "" {
		t.Fatal("platform missing")
	}
	if _, ok := info["cpuCores"]; !ok {
		t.Fatal("cpuCores missing")
	}
}
