package game

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hollowgames/whisper-room/backend/internal/config"
	"github.com/hollowgames/whisper-room/backend/internal/model/chat"
	"github.com/hollowgames/whisper-room/backend/internal/model/script"
	gameservice "github.com/hollowgames/whisper-room/backend/internal/service/game"
)

func setupRouter(t *testing.T) (*chi.Mux, *gameservice.Service) {
	t.Helper()
	cfg := config.GameConfig{
		TypingDelayMin: time.Millisecond,
		TypingDelayMax: 2 * time.Millisecond,
		PuzzleTimeout:  30 * time.Second,
		SpamTimeout:    30 * time.Second,
		SpamInterval:   10 * time.Millisecond,
		EscapeSolved:   2,
		EscapeWindow:   time.Minute,
	}
	svc := gameservice.NewService(script.NewMemoryStore(script.Seed()), cfg)
	t.Cleanup(svc.Shutdown)

	r := chi.NewRouter()
	New(svc).RegisterRoutes(r)
	return r, svc
}

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestStartSession(t *testing.T) {
	r, _ := setupRouter(t)

	resp := postJSON(t, r, "/session", map[string]string{"playerName": "Kim"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var session chat.Session
	if err := json.Unmarshal(resp.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session.ID == "" || session.PlayerName != "Kim" {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestStartSessionMissingName(t *testing.T) {
	r, _ := setupRouter(t)

	resp := postJSON(t, r, "/session", map[string]string{})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestMessageUnknownSession(t *testing.T) {
	r, _ := setupRouter(t)

	resp := postJSON(t, r, "/session/nope/messages", map[string]string{"text": "hello"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestMessageEmptyText(t *testing.T) {
	r, _ := setupRouter(t)
	id := startSession(t, r)

	resp := postJSON(t, r, "/session/"+id+"/messages", map[string]string{"text": "  "})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestMessageAfterEndConflicts(t *testing.T) {
	r, _ := setupRouter(t)
	id := startSession(t, r)

	// Revealing the name ends the session on the spot.
	resp := postJSON(t, r, "/session/"+id+"/messages", map[string]string{"text": "i am Kim"})
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", resp.Code)
	}

	resp = postJSON(t, r, "/session/"+id+"/messages", map[string]string{"text": "hello?"})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 after ending, got %d", resp.Code)
	}
}

func TestAnswerWithoutPuzzleConflicts(t *testing.T) {
	r, _ := setupRouter(t)
	id := startSession(t, r)

	resp := postJSON(t, r, "/session/"+id+"/answer", map[string]string{"text": "42"})
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}

func TestSnapshotAndTranscript(t *testing.T) {
	r, _ := setupRouter(t)
	id := startSession(t, r)

	req := httptest.NewRequest(http.MethodGet, "/session/"+id+"/", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("snapshot: expected 200, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/session/"+id+"/transcript", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("transcript: expected 200, got %d", resp.Code)
	}

	var transcript []chat.Message
	if err := json.Unmarshal(resp.Body.Bytes(), &transcript); err != nil {
		t.Fatalf("decode transcript: %v", err)
	}
	if len(transcript) == 0 {
		t.Fatal("transcript should contain the system greeting")
	}
}

func TestRestart(t *testing.T) {
	r, _ := setupRouter(t)
	id := startSession(t, r)

	resp := postJSON(t, r, "/session/"+id+"/restart", nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var fresh chat.Session
	if err := json.Unmarshal(resp.Body.Bytes(), &fresh); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if fresh.ID == id {
		t.Fatal("restart reused the session ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/session/"+id+"/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("old session should be gone, got %d", rec.Code)
	}
}

func startSession(t *testing.T, r http.Handler) string {
	t.Helper()
	resp := postJSON(t, r, "/session", map[string]string{"playerName": "Kim"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("start session: expected 201, got %d", resp.Code)
	}
	var session chat.Session
	if err := json.Unmarshal(resp.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return session.ID
}
