package preview

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"famtree/internal/manifest"
	"famtree/internal/testsupport"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	root := t.TempDir()
	testsupport.WriteText(t, filepath.Join(root, "index.html"), "<h1>Surnames</h1>")
	testsupport.WriteText(t, filepath.Join(root, "ppl", "doe", "ann_abc.html"), "<h1>Doe, Ann</h1>")
	m := &manifest.Manifest{
		Index:  "index.html",
		Roster: "individuals.html",
		People: []manifest.Person{{Pointer: "@I1@", ID: "abc123", Name: "Doe, Ann", Path: "ppl/doe/ann_abc.html"}},
	}
	if err := manifest.Write(filepath.Join(root, manifest.FileName), m); err != nil {
		t.Fatal(err)
	}
	return NewServer(root, nil), root
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}
}

func TestServesFiles(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ppl/doe/ann_abc.html", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Doe, Ann") {
		t.Fatalf("unexpected file response %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Surnames") {
		t.Fatalf("unexpected index response %d %q", rec.Code, rec.Body.String())
	}
}

func TestPersonRedirect(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, key := range []string{"abc123", "I1", "@I1@"} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/person/"+key, nil))
		if rec.Code != http.StatusFound {
			t.Fatalf("key %s: expected redirect, got %d", key, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/ppl/doe/ann_abc.html" {
			t.Fatalf("key %s: unexpected location %q", key, loc)
		}
	}

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/person/nobody", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMissingManifestLogsStructuredError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	srv := NewServer(t.TempDir(), logger)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/person/I1", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var sawWarn, sawRequest bool
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		if err := json.Unmarshal(line, &entry); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		switch entry["msg"] {
		case "manifest unavailable":
			sawWarn = true
			if msg, _ := entry["error"].(string); msg == "" {
				t.Fatalf("expected error field, got %v", entry)
			}
		case "request":
			sawRequest = true
			if entry["path"] != "/person/I1" || entry["status"] != float64(http.StatusServiceUnavailable) {
				t.Fatalf("unexpected request fields %v", entry)
			}
		}
	}
	if !sawWarn || !sawRequest {
		t.Fatalf("expected warning and request entries, got %s", buf.String())
	}
}
