package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/x5/internal/engine"
)

// defaultFileMode is used when saving a file that did not exist.
const defaultFileMode fs.FileMode = 0644

// Document represents the edited file with its editor state.
type Document struct {
	// Path is the absolute file path (empty for scratch buffers).
	Path string

	// Name is the display name (filename or "Untitled").
	Name string

	// Engine is the text buffer and editing engine.
	Engine *engine.Engine

	// existed reports whether Path was present on disk when loaded or
	// last saved.
	existed bool

	// savedRevision is the engine revision written by the last load or
	// save.
	savedRevision uint64
}

// NewDocument creates a document for path holding content. Invalid UTF-8
// in content becomes U+FFFD.
func NewDocument(path string, content []byte, opts ...engine.Option) *Document {
	name := filepath.Base(path)
	if path == "" {
		name = "Untitled"
	}

	opts = append([]engine.Option{engine.WithContent(string(content))}, opts...)
	return newDocument(path, name, engine.New(opts...))
}

func newDocument(path, name string, e *engine.Engine) *Document {
	doc := &Document{
		Path:   path,
		Name:   name,
		Engine: e,
	}
	doc.savedRevision = doc.Engine.Revision()
	return doc
}

// NewScratchDocument creates a new scratch (unsaved) document.
func NewScratchDocument(opts ...engine.Option) *Document {
	return NewDocument("", nil, opts...)
}

// LoadDocument opens path. A missing file yields an empty document bound to
// path, created on first save. An empty path yields a scratch document.
func LoadDocument(path string, opts ...engine.Option) (*Document, error) {
	if path == "" {
		return NewScratchDocument(opts...), nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}

	f, err := os.Open(absPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return NewDocument(absPath, nil, opts...), nil
	case err != nil:
		return nil, &FileError{Op: "open", Path: absPath, Err: err}
	}
	defer f.Close()

	e, err := engine.NewFromReader(f, opts...)
	if err != nil {
		return nil, &FileError{Op: "open", Path: absPath, Err: err}
	}

	doc := newDocument(absPath, filepath.Base(absPath), e)
	doc.existed = true
	return doc, nil
}

// IsScratch returns true if this is a scratch buffer (no file path).
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// Exists reports whether the file was on disk when loaded or last saved.
func (d *Document) Exists() bool {
	return d.existed
}

// IsModified returns true if the document has unsaved changes.
func (d *Document) IsModified() bool {
	return d.Engine.Revision() != d.savedRevision
}

// Content returns the full document content.
func (d *Document) Content() string {
	return d.Engine.Text()
}

// Save writes the document atomically: the content goes to a temporary
// file in the same directory which is then renamed over Path. The mode of
// an existing file is kept.
func (d *Document) Save() error {
	if d.IsScratch() {
		return ErrNoFilePath
	}

	mode := defaultFileMode
	if info, err := os.Stat(d.Path); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return &FileError{Op: "save", Path: d.Path, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.Path), "."+filepath.Base(d.Path)+".*.tmp")
	if err != nil {
		return &FileError{Op: "save", Path: d.Path, Err: err}
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := d.Engine.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		return &FileError{Op: "save", Path: d.Path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return &FileError{Op: "save", Path: d.Path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &FileError{Op: "save", Path: d.Path, Err: err}
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return &FileError{Op: "save", Path: d.Path, Err: err}
	}
	if err := os.Rename(tmpPath, d.Path); err != nil {
		return &FileError{Op: "save", Path: d.Path, Err: err}
	}
	committed = true

	d.existed = true
	d.savedRevision = d.Engine.Revision()
	return nil
}
