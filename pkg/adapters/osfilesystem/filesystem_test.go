package osfilesystem

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSystem_WriteAndReadFile(t *testing.T) {
	fs := New()
	testPath := filepath.Join(t.TempDir(), "match1_annotations.json")
	testData := []byte(`{"annotations": []}`)

	if err := fs.WriteFile(testPath, testData); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := fs.ReadFile(testPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != string(testData) {
		t.Errorf("expected %q, got %q", testData, data)
	}
}

func TestFileSystem_WriteFileReplaces(t *testing.T) {
	fs := New()
	dir := t.TempDir()
	testPath := filepath.Join(dir, "sidecar.json")

	if err := fs.WriteFile(testPath, []byte("first version, longer")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := fs.WriteFile(testPath, []byte("second")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, _ := fs.ReadFile(testPath)
	if string(data) != "second" {
		t.Errorf("got %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected no leftover temp files, found %d entries", len(entries))
	}

	info, err := os.Stat(testPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != filePerm {
		t.Errorf("mode = %v, want %v", info.Mode().Perm(), os.FileMode(filePerm))
	}
}

func TestFileSystem_SyncBeforeRename(t *testing.T) {
	dir := t.TempDir()
	var synced []string

	fs := New()
	fs.sync = func(f *os.File) error {
		synced = append(synced, f.Name())
		return f.Sync()
	}
	if err := fs.WriteFile(filepath.Join(dir, "sidecar.json"), []byte("{}")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if len(synced) != 1 || filepath.Dir(synced[0]) != dir {
		t.Errorf("expected one sync of a temp file in %s, got %v", dir, synced)
	}

	fs.sync = func(f *os.File) error { return errors.New("disk full") }
	if err := fs.WriteFile(filepath.Join(dir, "other.json"), []byte("{}")); err == nil {
		t.Error("expected sync failure to be returned")
	}
	if _, err := os.Stat(filepath.Join(dir, "other.json")); !os.IsNotExist(err) {
		t.Error("target must not exist after a failed sync")
	}
}

func TestFileSystem_PreviewSkipsSync(t *testing.T) {
	fs := NewPreview()
	if fs.sync != nil {
		t.Fatal("preview writes should not sync")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "preview.png")
	for _, frame := range []string{"frame 1", "frame 2"} {
		if err := fs.WriteFile(path, []byte(frame)); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "frame 2" {
		t.Errorf("got %q", data)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected no leftover temp files, found %d entries", len(entries))
	}
}

func TestFileSystem_WriteFileCreatesParentDirs(t *testing.T) {
	fs := New()
	testPath := filepath.Join(t.TempDir(), "a", "b", "c", "test.txt")

	if err := fs.WriteFile(testPath, []byte("test")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	exists, err := fs.Exists(testPath)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected file to exist")
	}
}

func TestFileSystem_ReadMissingFile(t *testing.T) {
	_, err := New().ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestFileSystem_MkdirAll(t *testing.T) {
	fs := New()
	testPath := filepath.Join(t.TempDir(), "match1")

	if err := fs.MkdirAll(testPath); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	exists, err := fs.Exists(testPath)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected directory to exist")
	}
}

func TestFileSystem_ExistsAndRemove(t *testing.T) {
	fs := New()
	testPath := filepath.Join(t.TempDir(), "test.txt")
	if err := os.WriteFile(testPath, []byte("test"), 0o644); err != nil {
		t.Fatal(err)
	}

	exists, err := fs.Exists(testPath)
	if err != nil || !exists {
		t.Fatalf("Exists = %v, %v", exists, err)
	}

	if err := fs.Remove(testPath); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	exists, err = fs.Exists(testPath)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected file to be removed")
	}
}
