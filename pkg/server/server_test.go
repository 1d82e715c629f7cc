package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fincheck/docmatrix/pkg/catalog"
	"fincheck/docmatrix/pkg/config"
	"fincheck/docmatrix/pkg/manager"
)

const testRules = `{
  "documentos": {
    "CND": {
      "nome": "Certidão Negativa de Débitos",
      "regras": [
        {
          "descricao": "Dispensada para FGTS com renda até 5000",
          "condicoes": {"fonte": ["fgts"], "renda": {"maximo": 5000}}
        }
      ]
    },
    "GAR": {
      "nome": "Comprovação de Garantia",
      "regras": []
    }
  }
}`

const testTypes = `{
  "tipos_documentos": {
    "CND": {"nome": "Certidão Negativa de Débitos", "validade": "180 dias"}
  },
  "campos_disponiveis": {
    "fonte": {"tipo": "categoria", "valores": ["fgts", "fat"]},
    "renda": {"tipo": "numero"}
  }
}`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServer builds a server with a loaded catalog, metrics and static
// serving disabled, and returns its handler.
func newTestServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()

	dir := t.TempDir()
	rulesPath := filepath.Join(dir, "rules_matrix.json")
	typesPath := filepath.Join(dir, "document_types.json")
	if err := os.WriteFile(rulesPath, []byte(testRules), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(typesPath, []byte(testTypes), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Server.StaticDir = ""
	cfg.Telemetry.Metrics.Enabled = false
	cfg.Catalog.RulesPath = rulesPath
	cfg.Catalog.TypesPath = typesPath
	cfg.Catalog.NormasPath = ""
	cfg.Catalog.Watch = false

	catalogs := manager.New(cfg.Catalog, quietLogger(), nil)
	if err := catalogs.Load(); err != nil {
		t.Fatalf("catalog load: %v", err)
	}

	srv := New(cfg, catalogs, nil, quietLogger())
	return srv, srv.routes()
}

// newEmptyServer builds a server whose catalog never loaded.
func newEmptyServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := config.Default()
	cfg.Server.StaticDir = ""
	cfg.Telemetry.Metrics.Enabled = false

	catalogs := manager.New(cfg.Catalog, quietLogger(), nil)
	srv := New(cfg, catalogs, nil, quietLogger())
	return srv.routes()
}

func TestHandleDocuments(t *testing.T) {
	_, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var body struct {
		Documentos []struct {
			Code  string `json:"codigo"`
			Name  string `json:"nome"`
			Rules int    `json:"regras"`
		} `json:"documentos"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(body.Documentos) != 2 {
		t.Fatalf("documents = %d, want 2", len(body.Documentos))
	}
	if body.Documentos[0].Code != "CND" || body.Documentos[0].Rules != 1 {
		t.Errorf("first entry = %+v", body.Documentos[0])
	}
	if body.Documentos[1].Code != "GAR" || body.Documentos[1].Rules != 0 {
		t.Errorf("second entry = %+v", body.Documentos[1])
	}
}

func TestHandleFields(t *testing.T) {
	_, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/fields", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Fields map[string]struct {
			Kind   string   `json:"tipo"`
			Values []string `json:"valores"`
		} `json:"campos_disponiveis"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if body.Fields["fonte"].Kind != "categoria" || body.Fields["renda"].Kind != "numero" {
		t.Errorf("fields = %+v", body.Fields)
	}
}

func TestHandleCheck(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantRequired []string
		wantWaived   []string
	}{
		{
			name:         "waiver matches",
			body:         `{"fonte": "fgts", "renda": 3000}`,
			wantRequired: []string{"GAR"},
			wantWaived:   []string{"CND"},
		},
		{
			name:         "income as BRL string",
			body:         `{"fonte": "fgts", "renda": "R$ 3.000,00"}`,
			wantRequired: []string{"GAR"},
			wantWaived:   []string{"CND"},
		},
		{
			name:         "income above bound",
			body:         `{"fonte": "fgts", "renda": 6000}`,
			wantRequired: []string{"CND", "GAR"},
		},
		{
			name:         "empty body object fails closed",
			body:         `{}`,
			wantRequired: []string{"CND", "GAR"},
		},
		{
			name:         "unknown fields ignored by rules",
			body:         `{"cor": "azul"}`,
			wantRequired: []string{"CND", "GAR"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, handler := newTestServer(t)

			req := httptest.NewRequest(http.MethodPost, "/api/check", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
			}

			var res struct {
				Required []struct {
					Code string `json:"codigo"`
				} `json:"documentos_exigidos"`
				Waived []struct {
					Code string `json:"codigo"`
					Rule string `json:"regra"`
				} `json:"documentos_dispensados"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
				t.Fatalf("decode: %v", err)
			}

			if len(res.Required) != len(tt.wantRequired) {
				t.Fatalf("required = %+v, want %v", res.Required, tt.wantRequired)
			}
			for i, code := range tt.wantRequired {
				if res.Required[i].Code != code {
					t.Errorf("required[%d] = %q, want %q", i, res.Required[i].Code, code)
				}
			}
			if len(res.Waived) != len(tt.wantWaived) {
				t.Fatalf("waived = %+v, want %v", res.Waived, tt.wantWaived)
			}
		})
	}
}

func TestHandleCheckBadBody(t *testing.T) {
	_, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/check", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	_, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Status  string `json:"status"`
		Version string `json:"catalog_version"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q", body.Status)
	}
	if body.Version == "" {
		t.Error("catalog_version must be set after load")
	}
}

func TestHandlersUnavailableBeforeLoad(t *testing.T) {
	handler := newEmptyServer(t)

	paths := []struct {
		method string
		path   string
		body   io.Reader
	}{
		{method: http.MethodGet, path: "/api/documents"},
		{method: http.MethodGet, path: "/api/fields"},
		{method: http.MethodPost, path: "/api/check", body: strings.NewReader(`{}`)},
		{method: http.MethodGet, path: "/healthz"},
	}

	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, p.body)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s %s: status = %d, want 503", p.method, p.path, rec.Code)
		}
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	_, handler := newTestServer(t)

	// Generated when absent.
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("response must carry a generated request ID")
	}

	// Honored when supplied.
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "upstream-42")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "upstream-42" {
		t.Errorf("request ID = %q, want upstream-42", got)
	}
}

func TestBuildAttributes(t *testing.T) {
	fields := catalog.Vocabulary{
		"fonte": {Kind: catalog.FieldCategorical, Values: []string{"fgts"}},
		"renda": {Kind: catalog.FieldNumeric},
	}

	body := map[string]any{
		"fonte": "FGTS",
		"renda": "R$ 2.500,00",
		"cadin": "Não",
		"vazio": "",
		"nulo":  nil,
		"num":   float64(7),
	}

	attrs := buildAttributes(body, fields)

	if attrs["fonte"] != "fgts" {
		t.Errorf("fonte = %v, want lower-cased fgts", attrs["fonte"])
	}
	if attrs["renda"] != 2500.0 {
		t.Errorf("renda = %v, want 2500", attrs["renda"])
	}
	if attrs["cadin"] != "não" {
		t.Errorf("cadin = %v, unknown fields are categorical strings", attrs["cadin"])
	}
	if _, ok := attrs["vazio"]; ok {
		t.Error("empty strings must be skipped")
	}
	if _, ok := attrs["nulo"]; ok {
		t.Error("null values must be skipped")
	}
	if _, ok := attrs["num"]; ok {
		t.Error("non-string values on non-numeric fields must be skipped")
	}

	// Unparseable income degrades to 0 instead of being dropped.
	attrs = buildAttributes(map[string]any{"renda": "muito"}, fields)
	if attrs["renda"] != 0.0 {
		t.Errorf("renda = %v, want 0 for unparseable input", attrs["renda"])
	}
}
