package authoring

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store abstracts the two catalog backing blobs. Save must persist both
// blobs as one unit: a failure writing one must not leave the other
// updated.
type Store interface {
	// Load returns the raw rule-matrix and document-type blobs.
	Load() (rules, types []byte, err error)

	// Save persists both blobs atomically.
	Save(rules, types []byte) error
}

// FileStore persists the catalog blobs to a pair of JSON files, the layout
// the web frontend and the CLI share. Writes go through a temp-file,
// verify, rename sequence; if committing the second file fails, the first
// is rolled back from its prior contents.
type FileStore struct {
	// RulesPath is the rule-matrix file (rules_matrix.json).
	RulesPath string

	// TypesPath is the document-type file (document_types.json).
	TypesPath string
}

// NewFileStore creates a file store for the given paths.
func NewFileStore(rulesPath, typesPath string) *FileStore {
	return &FileStore{RulesPath: rulesPath, TypesPath: typesPath}
}

// Load reads both backing files.
func (s *FileStore) Load() ([]byte, []byte, error) {
	rules, err := os.ReadFile(s.RulesPath)
	if err != nil {
		return nil, nil, &StoreError{Operation: "load", Path: s.RulesPath, Cause: err}
	}
	types, err := os.ReadFile(s.TypesPath)
	if err != nil {
		return nil, nil, &StoreError{Operation: "load", Path: s.TypesPath, Cause: err}
	}
	return rules, types, nil
}

// Save writes both files through temp files, verifies the written bytes
// parse as JSON, then commits with renames. The prior rule-matrix contents
// are restored if the second commit fails.
func (s *FileStore) Save(rules, types []byte) error {
	if err := verifyJSON(rules); err != nil {
		return &StoreError{Operation: "save", Path: s.RulesPath, Cause: err}
	}
	if err := verifyJSON(types); err != nil {
		return &StoreError{Operation: "save", Path: s.TypesPath, Cause: err}
	}

	rulesTmp, err := writeTemp(s.RulesPath, rules)
	if err != nil {
		return &StoreError{Operation: "save", Path: s.RulesPath, Cause: err}
	}
	defer os.Remove(rulesTmp)

	typesTmp, err := writeTemp(s.TypesPath, types)
	if err != nil {
		return &StoreError{Operation: "save", Path: s.TypesPath, Cause: err}
	}
	defer os.Remove(typesTmp)

	// Keep the prior rule matrix for rollback. A missing file is fine on
	// first save.
	prevRules, prevErr := os.ReadFile(s.RulesPath)

	if err := os.Rename(rulesTmp, s.RulesPath); err != nil {
		return &StoreError{Operation: "save", Path: s.RulesPath, Cause: err}
	}

	if err := os.Rename(typesTmp, s.TypesPath); err != nil {
		if prevErr == nil {
			if restoreErr := os.WriteFile(s.RulesPath, prevRules, 0o644); restoreErr != nil {
				return &StoreError{
					Operation: "save",
					Path:      s.TypesPath,
					Cause:     fmt.Errorf("%w (rule matrix rollback also failed: %v)", err, restoreErr),
				}
			}
		}
		return &StoreError{Operation: "save", Path: s.TypesPath, Cause: err}
	}

	return nil
}

// writeTemp writes data to a temp file next to path and returns its name.
func writeTemp(path string, data []byte) (string, error) {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return "", err
	}

	name := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		return name, err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return name, err
	}
	if err := f.Close(); err != nil {
		return name, err
	}
	return name, nil
}

// verifyJSON rejects blobs that would corrupt the backing files.
func verifyJSON(data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("refusing to persist malformed JSON")
	}
	return nil
}

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	Rules []byte
	Types []byte

	// FailSave makes Save return an error without mutating the store.
	FailSave bool

	// Saves counts successful Save calls.
	Saves int
}

// NewMemoryStore creates a memory store seeded with the given blobs.
func NewMemoryStore(rules, types []byte) *MemoryStore {
	return &MemoryStore{Rules: rules, Types: types}
}

// Load returns the stored blobs.
func (s *MemoryStore) Load() ([]byte, []byte, error) {
	return s.Rules, s.Types, nil
}

// Save replaces both blobs.
func (s *MemoryStore) Save(rules, types []byte) error {
	if s.FailSave {
		return &StoreError{Operation: "save", Cause: fmt.Errorf("save disabled")}
	}
	s.Rules = rules
	s.Types = types
	s.Saves++
	return nil
}
