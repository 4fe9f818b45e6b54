package keystore

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func newTestKeystore(t *testing.T) *Keystore {
	t.Helper()
	return New(filepath.Join(t.TempDir(), ".secrets"))
}

func TestLoad_MissingFile(t *testing.T) {
	k := newTestKeystore(t)
	v, ok, err := k.Load("GEMINI_API_KEY")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok || v != "" {
		t.Errorf("expected absence, got %q (ok=%v)", v, ok)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	k := newTestKeystore(t)
	if err := k.Save("GEMINI_API_KEY", "abc123"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := k.Save("ANTHROPIC_API_KEY", "def456"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	v, ok, err := k.Load("GEMINI_API_KEY")
	if err != nil || !ok || v != "abc123" {
		t.Errorf("Load GEMINI = %q, %v, %v", v, ok, err)
	}
	v, ok, _ = k.Load("ANTHROPIC_API_KEY")
	if !ok || v != "def456" {
		t.Errorf("Load ANTHROPIC = %q, %v", v, ok)
	}
}

func TestSave_Overwrites(t *testing.T) {
	k := newTestKeystore(t)
	if err := k.Save("OPENAI_API_KEY", "old"); err != nil {
		t.Fatal(err)
	}
	if err := k.Save("OPENAI_API_KEY", "new"); err != nil {
		t.Fatal(err)
	}
	v, _, _ := k.Load("OPENAI_API_KEY")
	if v != "new" {
		t.Errorf("value = %q, want new", v)
	}
}

func TestDelete(t *testing.T) {
	k := newTestKeystore(t)
	if err := k.Save("GEMINI_API_KEY", "abc"); err != nil {
		t.Fatal(err)
	}
	if err := k.Delete("GEMINI_API_KEY"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := k.Load("GEMINI_API_KEY"); ok {
		t.Error("key still present after delete")
	}
	// Deleting again is a no-op.
	if err := k.Delete("GEMINI_API_KEY"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	k := newTestKeystore(t)
	if err := k.Save("GEMINI_API_KEY", "abc"); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(k.path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("perm = %o, want 600", perm)
	}
}

func TestRead_SkipsCommentsAndBlank(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".secrets")
	content := "# provider keys\n\nGEMINI_API_KEY = spaced \n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	v, ok, err := New(path).Load("GEMINI_API_KEY")
	if err != nil || !ok || v != "spaced" {
		t.Errorf("Load = %q, %v, %v", v, ok, err)
	}
}
