package authoring

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "rules_matrix.json"), filepath.Join(dir, "document_types.json"))

	rules := []byte(`{"documentos": {}}`)
	types := []byte(`{"tipos_documentos": {}}`)

	if err := store.Save(rules, types); err != nil {
		t.Fatalf("Save: %v", err)
	}

	gotRules, gotTypes, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(gotRules) != string(rules) {
		t.Errorf("rules = %s", gotRules)
	}
	if string(gotTypes) != string(types) {
		t.Errorf("types = %s", gotTypes)
	}
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "rules.json"), filepath.Join(dir, "types.json"))

	if err := store.Save([]byte(`{"documentos": {"A": {}}}`), []byte(`{"tipos_documentos": {}}`)); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := store.Save([]byte(`{"documentos": {"B": {}}}`), []byte(`{"tipos_documentos": {}}`)); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	rules, _, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(rules) != `{"documentos": {"B": {}}}` {
		t.Errorf("rules = %s", rules)
	}
}

func TestFileStoreRefusesMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "rules.json")
	typesPath := filepath.Join(dir, "types.json")
	store := NewFileStore(rulesPath, typesPath)

	if err := store.Save([]byte(`{"documentos": {}}`), []byte(`{"tipos_documentos": {}}`)); err != nil {
		t.Fatalf("seed Save: %v", err)
	}

	err := store.Save([]byte(`{"documentos": `), []byte(`{"tipos_documentos": {}}`))
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("error %T is not a *StoreError: %v", err, err)
	}

	// The prior contents must be untouched.
	rules, err := os.ReadFile(rulesPath)
	if err != nil {
		t.Fatalf("read rules: %v", err)
	}
	if string(rules) != `{"documentos": {}}` {
		t.Errorf("rules = %s, prior contents lost", rules)
	}
}

func TestFileStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "rules.json"), filepath.Join(dir, "types.json"))

	if err := store.Save([]byte(`{}`), []byte(`{}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 2 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("dir contents = %v, want only the two target files", names)
	}
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "rules.json"), filepath.Join(dir, "types.json"))

	_, _, err := store.Load()
	var storeErr *StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("error %T is not a *StoreError: %v", err, err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("cause should unwrap to os.ErrNotExist: %v", err)
	}
}
