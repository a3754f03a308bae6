package fetch

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestDownloadWritesFile(t *testing.T) {
	payload := bytes.Repeat([]byte("installer-bytes "), 1024)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "Claude-Setup-x64.exe")
	if err := Download(srv.URL, dest); err != nil {
		t.Fatalf("Download: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("downloaded %d bytes, want %d; content mismatch", len(got), len(payload))
	}
}

func TestDownloadNon200IsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "installer.exe")
	if err := Download(srv.URL, dest); err == nil {
		t.Fatal("expected error on HTTP 404")
	}
}

func TestDownloadUnreachableHost(t *testing.T) {
	// Port 1 is never listening; the connection must be refused, not hang.
	dest := filepath.Join(t.TempDir(), "installer.exe")
	err := Download("http://127.0.0.1:1/installer.exe", dest)
	if err == nil {
		t.Fatal("expected transport error")
	}
	if fi, statErr := os.Stat(dest); statErr == nil && fi.Size() != 0 {
		t.Error("partial artifact left with content despite transport failure")
	}
}
