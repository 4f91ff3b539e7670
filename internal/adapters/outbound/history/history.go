package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/designlint/designlint/internal/domain"
)

const historyFile = "history/runs.json"

// FileHistory implements domain.RunHistory using JSON file storage under the
// project's storage dir.
type FileHistory struct {
	dir string
}

func New(storageDir string) *FileHistory {
	return &FileHistory{dir: storageDir}
}

func (h *FileHistory) Save(entry domain.RunEntry) error {
	entries, err := h.loadAll()
	if err != nil {
		return err
	}

	entries = append(entries, entry)

	fp := filepath.Join(h.dir, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fp, data, 0644)
}

// Load returns the entries for document, oldest first. An empty document
// name returns every entry.
func (h *FileHistory) Load(document string) ([]domain.RunEntry, error) {
	entries, err := h.loadAll()
	if err != nil || document == "" {
		return entries, err
	}

	var out []domain.RunEntry
	for _, e := range entries {
		if e.Document == document {
			out = append(out, e)
		}
	}
	return out, nil
}

func (h *FileHistory) loadAll() ([]domain.RunEntry, error) {
	fp := filepath.Join(h.dir, historyFile)

	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.RunEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
