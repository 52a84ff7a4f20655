package fileutil

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "a", "b", "page.html")

	if err := WriteFileAtomic(dst, []byte("first"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(dst, []byte("second"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Fatalf("content mismatch: got %q", got)
	}

	entries, err := os.ReadDir(filepath.Dir(dst))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp files to be cleaned up, found %d entries", len(entries))
	}
}

func TestWriteFileAtomic_BlockedDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(filepath.Join(blocker, "page.html"), []byte("data"), 0o644); err == nil {
		t.Fatal("expected error when parent is a file")
	}
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tree.ged")
	content := []byte("0 HEAD\n0 TRLR\n")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatal(err)
	}

	sum, size, err := HashFile(src)
	if err != nil {
		t.Fatal(err)
	}
	want := sha256.Sum256(content)
	if sum != hex.EncodeToString(want[:]) {
		t.Fatalf("hash mismatch: got %s", sum)
	}
	if size != int64(len(content)) {
		t.Fatalf("size mismatch: got %d", size)
	}
}

func TestHashFile_MissingSource(t *testing.T) {
	if _, _, err := HashFile(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestRemoveDirs(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"ppl", "surnames", "keep"} {
		if err := os.MkdirAll(filepath.Join(root, name, "x"), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := RemoveDirs(root, "ppl", "surnames", "missing"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(root, "ppl")); !os.IsNotExist(err) {
		t.Fatalf("expected ppl removed, stat err=%v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "keep")); err != nil {
		t.Fatalf("expected keep to survive: %v", err)
	}
	if err := RemoveDirs(root, "../etc"); err == nil {
		t.Fatal("expected error for nested name")
	}
}
