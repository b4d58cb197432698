package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/evamarchetti/lessonplanner-backend/pkg/errors"
)

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	return body
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusOK, map[string]any{"success": true})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if body := decodeBody(t, w); body["success"] != true {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestWriteErrorUnauthorizedShape(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session missing"))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "Unauthorized" {
		t.Fatalf("expected the generic message, got %v", body["error"])
	}
	if _, ok := body["message"]; ok {
		t.Fatal("401 responses must not carry internal detail")
	}
}

func TestWriteErrorValidationExposesMessage(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, pkgerrors.New(pkgerrors.CodeValidation, "No API key configured"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "No API key configured" {
		t.Fatalf("unexpected error message %v", body["error"])
	}
}

func TestWriteErrorInternalIncludesDetailAndStack(t *testing.T) {
	w := httptest.NewRecorder()
	cause := errors.New("pq: connection refused")
	WriteError(context.Background(), nil, w, pkgerrors.Wrap(pkgerrors.CodeInternal, cause, "saving plan"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "Internal Server Error" {
		t.Fatalf("unexpected error %v", body["error"])
	}
	if body["message"] != "pq: connection refused" {
		t.Fatalf("unexpected message %v", body["message"])
	}
	if stack, ok := body["stack"].(string); !ok || stack == "" {
		t.Fatal("expected a stack trace")
	}
}

func TestWriteErrorUpstreamExposesMessageWithoutStack(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, pkgerrors.New(pkgerrors.CodeUpstream, "OpenAI API error: 429"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["error"] != "OpenAI API error: 429" {
		t.Fatalf("unexpected error %v", body["error"])
	}
	if _, ok := body["stack"]; ok {
		t.Fatal("upstream errors should not carry a stack trace")
	}
}

func TestWriteErrorUntyped(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, errors.New("boom"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["error"] != "Internal Server Error" {
		t.Fatalf("unexpected error %v", body["error"])
	}
}
