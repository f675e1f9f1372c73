package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenMissingFile(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("Open on missing file returned error: %v", err)
	}
	if _, ok := s.Get(KeyToken); ok {
		t.Fatal("fresh store should be empty")
	}
}

func TestSetGetDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	if err := s.Set(KeyToken, "abc"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if v, ok := s.Get(KeyToken); !ok || v != "abc" {
		t.Fatalf("Get after Set: %q %v", v, ok)
	}

	if err := s.Delete(KeyToken); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, ok := s.Get(KeyToken); ok {
		t.Fatal("Get after Delete should miss")
	}

	// Deleting an absent key is a no-op.
	if err := s.Delete("missing"); err != nil {
		t.Fatalf("Delete of absent key returned error: %v", err)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := s.Set(KeyTheme, "dark"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := s.Set(KeyUser, `{"id":"u1"}`); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	if v, _ := reopened.Get(KeyTheme); v != "dark" {
		t.Fatalf("theme lost across reopen: %q", v)
	}
	if v, _ := reopened.Get(KeyUser); v != `{"id":"u1"}` {
		t.Fatalf("user lost across reopen: %q", v)
	}
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(path); err == nil {
		t.Fatal("expected error for corrupt state file")
	}
}
