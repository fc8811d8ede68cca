package imagestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStore_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/images/")
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	url, err := store.Save("banner.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if url != "/images/banner.png" {
		t.Errorf("expected /images/banner.png, got %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "banner.png"))
	if err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("unexpected file content %q", data)
	}

	if err := store.Delete(url); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "banner.png")); !os.IsNotExist(err) {
		t.Error("expected file to be removed")
	}
}

func TestLocalStore_DeleteMissingIsNoError(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/images")
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	if err := store.Delete("/images/never-existed.png"); err != nil {
		t.Errorf("deleting a missing image must not fail, got %v", err)
	}
	if err := store.Delete(""); err != nil {
		t.Errorf("empty url must be a no-op, got %v", err)
	}
}

func TestLocalStore_SaveStripsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/images")
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}

	url, err := store.Save("../../etc/passwd", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if url != "/images/passwd" {
		t.Errorf("expected basename only, got %q", url)
	}
	if _, err := os.Stat(filepath.Join(dir, "passwd")); err != nil {
		t.Errorf("expected file inside store dir: %v", err)
	}
}
