package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mdview/server/config"
	"github.com/mdview/server/dialog"
	"github.com/mdview/server/logger"
	"github.com/mdview/server/session"
)

func TestHandler_Health(t *testing.T) {
	h := newHandler("secret", true, session.NewManager(nil), dialog.StaticPicker{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}
}

func TestHandler_Ping(t *testing.T) {
	h := newHandler("secret", true, session.NewManager(nil), dialog.StaticPicker{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d without token, got %d", http.StatusUnauthorized, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["message"] != "pong" {
		t.Errorf("expected pong, got %q", body["message"])
	}
}

func TestHandler_SessionRequiresToken(t *testing.T) {
	h := newHandler("secret", true, session.NewManager(nil), dialog.StaticPicker{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/session", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestHandler_SessionSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	if err := os.WriteFile(path, []byte("# hi"), 0644); err != nil {
		t.Fatal(err)
	}
	sess := session.NewManager(nil)
	if _, err := sess.ReadFile(path); err != nil {
		t.Fatal(err)
	}
	h := newHandler("secret", true, sess, dialog.StaticPicker{})

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var snap session.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if snap.Path != path || !snap.HasModTime {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestHandler_SessionLogsRequestID(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(logger.NewHandler(&buf, "json", &slog.HandlerOptions{Level: slog.LevelDebug})))

	h := newHandler("secret", true, session.NewManager(nil), dialog.StaticPicker{})
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("unmarshal log line %q: %v", buf.String(), err)
	}
	if entry["msg"] != "served session snapshot" {
		t.Errorf("unexpected log message %v", entry["msg"])
	}
	if id, _ := entry["requestId"].(string); id == "" {
		t.Errorf("expected requestId in log line %q", buf.String())
	}
}

func TestReloadLogLevel(t *testing.T) {
	t.Cleanup(func() { logger.SetLevel("info", false) })

	reloadLogLevel(&config.Config{Log: config.LogConfig{Level: "warn"}, DevMode: true})
	if logger.Level() != slog.LevelDebug {
		t.Errorf("expected dev mode to keep debug after reload, got %v", logger.Level())
	}

	reloadLogLevel(&config.Config{Log: config.LogConfig{Level: "warn"}})
	if logger.Level() != slog.LevelWarn {
		t.Errorf("expected warn after reload, got %v", logger.Level())
	}
}

func TestNewSession_StartupArgument(t *testing.T) {
	dir := t.TempDir()
	md := filepath.Join(dir, "notes.md")
	txt := filepath.Join(dir, "x.txt")
	os.WriteFile(md, []byte("x"), 0644)
	os.WriteFile(txt, []byte("x"), 0644)

	if path, ok := newSession([]string{md}).GetInitialFile(); !ok || path != md {
		t.Errorf("expected %q, got %q (ok=%v)", md, path, ok)
	}
	if path, ok := newSession([]string{txt}).GetInitialFile(); ok {
		t.Errorf("expected no initial file for .txt, got %q", path)
	}
	if _, ok := newSession(nil).GetInitialFile(); ok {
		t.Error("expected no initial file without arguments")
	}
}

func TestNewPicker(t *testing.T) {
	if _, ok := newPicker(&config.Config{DialogPath: "/a.md"}).(dialog.StaticPicker); !ok {
		t.Error("expected StaticPicker when dialog_path is set")
	}
	if _, ok := newPicker(config.Default()).(*dialog.NativePicker); !ok {
		t.Error("expected NativePicker by default")
	}
}

func TestPrintConnectInfo(t *testing.T) {
	var buf bytes.Buffer
	printConnectInfo(&buf, "ws://127.0.0.1:6420/ws", "tok", false)

	out := buf.String()
	if !strings.Contains(out, "ws://127.0.0.1:6420/ws") || !strings.Contains(out, "Token: tok") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestPrintConnectInfo_QR(t *testing.T) {
	var plain, withQR bytes.Buffer
	printConnectInfo(&plain, "ws://127.0.0.1:6420/ws", "tok", false)
	printConnectInfo(&withQR, "ws://127.0.0.1:6420/ws", "tok", true)

	if withQR.Len() <= plain.Len() {
		t.Error("expected QR code to add output")
	}
}
