package manager

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"fincheck/docmatrix/pkg/config"
)

const testRules = `{
  "documentos": {
    "CND": {
      "nome": "Certidão Negativa de Débitos",
      "regras": [
        {"descricao": "Dispensada para FGTS", "condicoes": {"fonte": ["fgts"]}}
      ]
    }
  }
}`

const testTypes = `{
  "tipos_documentos": {
    "CND": {"nome": "Certidão Negativa de Débitos"}
  },
  "campos_disponiveis": {
    "fonte": {"tipo": "categoria", "valores": ["fgts"]}
  }
}`

const testNormas = `{
  "normas": {
    "IN 1751": {"url": "https://example.org/in1751"}
  }
}`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeCatalogFiles(t *testing.T, normas bool) config.CatalogConfig {
	t.Helper()

	dir := t.TempDir()
	cfg := config.CatalogConfig{
		RulesPath: filepath.Join(dir, "rules_matrix.json"),
		TypesPath: filepath.Join(dir, "document_types.json"),
	}
	if err := os.WriteFile(cfg.RulesPath, []byte(testRules), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg.TypesPath, []byte(testTypes), 0o644); err != nil {
		t.Fatal(err)
	}
	if normas {
		cfg.NormasPath = filepath.Join(dir, "normas.json")
		if err := os.WriteFile(cfg.NormasPath, []byte(testNormas), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return cfg
}

func TestLoad(t *testing.T) {
	m := New(writeCatalogFiles(t, true), quietLogger(), nil)

	if m.Current() != nil {
		t.Fatal("catalog must be nil before first load")
	}
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	cat := m.Current()
	if cat == nil || cat.Len() != 1 {
		t.Fatalf("catalog = %v", cat)
	}
	if _, ok := cat.Norma("IN 1751"); !ok {
		t.Error("norma table missing")
	}
	if m.Version() == "" {
		t.Error("version must be set after load")
	}
	if m.LoadTime().IsZero() {
		t.Error("load time must be set after load")
	}
}

func TestLoadMissingNormasIsNotFatal(t *testing.T) {
	cfg := writeCatalogFiles(t, false)
	cfg.NormasPath = filepath.Join(filepath.Dir(cfg.RulesPath), "normas.json")

	m := New(cfg, quietLogger(), nil)
	if err := m.Load(); err != nil {
		t.Fatalf("Load with absent norma file: %v", err)
	}
	if _, ok := m.Current().Norma("IN 1751"); ok {
		t.Error("norma table should be empty")
	}
}

func TestLoadMissingRulesFails(t *testing.T) {
	cfg := writeCatalogFiles(t, false)
	cfg.RulesPath = filepath.Join(filepath.Dir(cfg.RulesPath), "nope.json")

	m := New(cfg, quietLogger(), nil)
	if err := m.Load(); err == nil {
		t.Fatal("expected error")
	}
	if m.Current() != nil {
		t.Error("catalog must stay nil after failed load")
	}
}

func TestVersionTracksContent(t *testing.T) {
	cfg := writeCatalogFiles(t, false)
	m := New(cfg, quietLogger(), nil)

	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	v1 := m.Version()

	updated := `{
  "documentos": {
    "CND": {"nome": "Certidão Negativa de Débitos", "regras": []}
  }
}`
	if err := os.WriteFile(cfg.RulesPath, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := m.Load(); err != nil {
		t.Fatalf("reload: %v", err)
	}

	if m.Version() == v1 {
		t.Error("version must change when content changes")
	}
}

func TestFailedReloadKeepsPreviousCatalog(t *testing.T) {
	cfg := writeCatalogFiles(t, false)
	m := New(cfg, quietLogger(), nil)

	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	v1 := m.Version()

	if err := os.WriteFile(cfg.RulesPath, []byte(`{"broken": `), 0o644); err != nil {
		t.Fatal(err)
	}

	// reload is the watcher/cron callback; it swallows the error.
	m.reload()

	if m.Current() == nil {
		t.Fatal("previous catalog must stay active")
	}
	if m.Version() != v1 {
		t.Error("version must not change on failed reload")
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	cfg := writeCatalogFiles(t, false)
	cfg.RefreshSchedule = "not a cron spec"

	m := New(cfg, quietLogger(), nil)
	if err := m.Start(t.Context()); err == nil {
		t.Fatal("expected error for invalid refresh schedule")
	}
}
