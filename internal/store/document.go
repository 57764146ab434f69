package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"CollabBoard/internal/state"
)

// CanvasData wraps the element slice inside the document record, the
// same envelope the record keeps on the wire and on disk.
type CanvasData struct {
	Elements []state.Element `json:"elements"`
}

// Document is the persisted record for one board.
type Document struct {
	Name       string     `json:"name"`
	CanvasData CanvasData `json:"canvas_data"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// FileStore keeps one JSON file per document id under a directory.
// There is no version check: the last writer wins, exactly as the
// hosted backend behaves with two tabs autosaving the same board.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(docID string) string {
	return filepath.Join(s.dir, docID+".json")
}

// Save writes the record for docID, stamping UpdatedAt.
func (s *FileStore) Save(docID string, doc Document) error {
	doc.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", docID, err)
	}
	if err := os.WriteFile(s.path(docID), data, 0o644); err != nil {
		return fmt.Errorf("write document %s: %w", docID, err)
	}
	return nil
}

// Load reads the record for docID. A missing record is not an error:
// it loads as an empty, untitled document. A record without elements
// loads as an empty canvas; malformed data is the only hard failure.
func (s *FileStore) Load(docID string) (Document, error) {
	data, err := os.ReadFile(s.path(docID))
	if errors.Is(err, fs.ErrNotExist) {
		return Document{}, nil
	}
	if err != nil {
		return Document{}, fmt.Errorf("read document %s: %w", docID, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parse document %s: %w", docID, err)
	}
	return doc, nil
}
