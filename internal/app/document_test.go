package app

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/dshills/x5/internal/engine"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument("/path/to/notes.txt", []byte("hello\nworld"))

	if doc.Name != "notes.txt" {
		t.Errorf("expected name 'notes.txt', got '%s'", doc.Name)
	}
	if doc.Engine == nil {
		t.Fatal("expected engine to be initialized")
	}
	if doc.Engine.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", doc.Engine.LineCount())
	}
	if doc.IsModified() {
		t.Error("expected document to not be modified initially")
	}
	if doc.IsScratch() {
		t.Error("expected document to not be scratch")
	}
}

func TestNewDocument_InvalidUTF8(t *testing.T) {
	doc := NewDocument("/x", []byte{'a', 0xff, 'b'})

	if got := doc.Content(); got != "a�b" {
		t.Errorf("expected invalid byte replaced, got %q", got)
	}
}

func TestNewScratchDocument(t *testing.T) {
	doc := NewScratchDocument()

	if doc.Name != "Untitled" {
		t.Errorf("expected name 'Untitled', got '%s'", doc.Name)
	}
	if !doc.IsScratch() {
		t.Error("expected document to be scratch")
	}
	if doc.Content() != "" {
		t.Errorf("expected empty content, got %q", doc.Content())
	}
	if err := doc.Save(); !errors.Is(err, ErrNoFilePath) {
		t.Errorf("expected ErrNoFilePath, got %v", err)
	}
}

func TestLoadDocument_Existing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("abc\ndef"), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadDocument(path, engine.WithWrapWidth(-1))
	if err != nil {
		t.Fatalf("LoadDocument() failed: %v", err)
	}
	if !doc.Exists() {
		t.Error("expected Exists() to be true")
	}
	if doc.Content() != "abc\ndef" {
		t.Errorf("expected file content, got %q", doc.Content())
	}
	if doc.Engine.WrapWidth() != -1 {
		t.Errorf("expected engine options applied, wrap = %d", doc.Engine.WrapWidth())
	}
}

func TestLoadDocument_InvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bin.txt")
	if err := os.WriteFile(path, []byte("ok\xff\nend\xe2"), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument() failed: %v", err)
	}
	if got := doc.Content(); got != "ok\uFFFD\nend\uFFFD" {
		t.Errorf("expected invalid bytes replaced, got %q", got)
	}
	if doc.IsModified() {
		t.Error("expected loaded document to be clean")
	}
}

func TestLoadDocument_Large(t *testing.T) {
	line := strings.Repeat("é", 99) + "\n"
	content := strings.Repeat(line, 2000)
	path := filepath.Join(t.TempDir(), "big.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument() failed: %v", err)
	}
	if doc.Engine.LineCount() != 2001 || doc.Engine.CharCount() != 200000 {
		t.Errorf("got %d lines, %d chars", doc.Engine.LineCount(), doc.Engine.CharCount())
	}
	if doc.Content() != content {
		t.Error("content mismatch")
	}
}

func TestLoadDocument_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument() failed: %v", err)
	}
	if doc.Content() != "" || doc.Engine.LineCount() != 1 {
		t.Errorf("expected one empty line, got %q (%d lines)", doc.Content(), doc.Engine.LineCount())
	}
}

func TestLoadDocument_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("LoadDocument() failed: %v", err)
	}
	if doc.Exists() {
		t.Error("expected Exists() to be false")
	}
	if doc.Path != path {
		t.Errorf("expected path %q, got %q", path, doc.Path)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("loading must not create the file")
	}
}

func TestLoadDocument_EmptyPath(t *testing.T) {
	doc, err := LoadDocument("")
	if err != nil {
		t.Fatalf("LoadDocument() failed: %v", err)
	}
	if !doc.IsScratch() {
		t.Error("expected scratch document")
	}
}

func TestLoadDocument_Directory(t *testing.T) {
	_, err := LoadDocument(t.TempDir())

	var ferr *FileError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FileError, got %v", err)
	}
	if ferr.Op != "open" {
		t.Errorf("expected op 'open', got %q", ferr.Op)
	}
}

func TestDocument_ModifiedTracking(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.txt")
	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatal(err)
	}

	_ = doc.Engine.Apply(engine.MoveLeft)
	if doc.IsModified() {
		t.Error("motion must not mark the document modified")
	}

	_ = doc.Engine.Apply(engine.InsertChar('x'))
	if !doc.IsModified() {
		t.Error("expected modified after insert")
	}

	if err := doc.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if doc.IsModified() {
		t.Error("expected clean after save")
	}
}

func TestDocument_SaveCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "new.txt")

	doc, _ := LoadDocument(path)
	for _, ch := range "hi" {
		_ = doc.Engine.Apply(engine.InsertChar(ch))
	}
	_ = doc.Engine.Apply(engine.Newline)

	if err := doc.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if !doc.Exists() {
		t.Error("expected Exists() after save")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hi\n" {
		t.Errorf("expected %q on disk, got %q", "hi\n", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0644 {
		t.Errorf("expected mode 0644, got %v", info.Mode().Perm())
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected temp file cleaned up, dir has %d entries", len(entries))
	}
}

func TestDocument_SaveKeepsMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not portable")
	}

	path := filepath.Join(t.TempDir(), "script.sh")
	if err := os.WriteFile(path, []byte("echo"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(path, 0755); err != nil {
		t.Fatal(err)
	}

	doc, _ := LoadDocument(path, engine.WithCursor(0, 4))
	_ = doc.Engine.Apply(engine.InsertChar('!'))
	if err := doc.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("expected mode 0755 kept, got %v", info.Mode().Perm())
	}
	data, _ := os.ReadFile(path)
	if string(data) != "echo!" {
		t.Errorf("expected %q, got %q", "echo!", data)
	}
}

func TestDocument_SaveMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone", "a.txt")
	doc, _ := LoadDocument(path)

	err := doc.Save()
	var ferr *FileError
	if !errors.As(err, &ferr) || ferr.Op != "save" {
		t.Fatalf("expected save FileError, got %v", err)
	}
	if doc.Exists() {
		t.Error("failed save must not mark the file as existing")
	}
}
