package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"server/internal/domain"
)

func TestSavePhotoReturnsPublicURL(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "http://localhost:8080/static/")
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	url, err := store.SavePhoto(context.Background(), "couch.jpg", []byte("fake-jpeg"))
	if err != nil {
		t.Fatalf("SavePhoto: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:8080/static/photos/") {
		t.Fatalf("unexpected URL shape: %q", url)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("expected original extension preserved, got %q", url)
	}
}

func TestSavePhotoRejectsOversizedFile(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "http://localhost:8080/static")
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	_, err = store.SavePhoto(context.Background(), "huge.png", make([]byte, MaxPhotoBytes+1))
	if !errors.Is(err, domain.ErrPhotoTooLarge) {
		t.Fatalf("expected ErrPhotoTooLarge, got %v", err)
	}
}

func TestSavePhotoKeysAreUnique(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "http://localhost:8080/static")
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		url, err := store.SavePhoto(context.Background(), "a.png", []byte("x"))
		if err != nil {
			t.Fatalf("SavePhoto: %v", err)
		}
		if seen[url] {
			t.Fatalf("duplicate key generated: %q", url)
		}
		seen[url] = true
	}
}

func TestSanitizeKeyBlocksTraversal(t *testing.T) {
	if _, err := sanitizeKey("../../etc/passwd"); err == nil {
		t.Fatal("expected traversal key to be rejected")
	}
	cleaned, err := sanitizeKey("/photos/./a.png")
	if err != nil {
		t.Fatalf("sanitizeKey: %v", err)
	}
	if cleaned != "photos/a.png" {
		t.Fatalf("unexpected cleaned key: %q", cleaned)
	}
}
