package server

import (
	"encoding/json"
	"net/http"
	"time"

	"fincheck/docmatrix/pkg/catalog"
	"fincheck/docmatrix/pkg/engine"
	"fincheck/docmatrix/pkg/money"
)

// documentEntry is one element of the /api/documents response.
type documentEntry struct {
	Code  string                `json:"codigo"`
	Name  string                `json:"nome"`
	Rules int                   `json:"regras"`
	Type  *catalog.DocumentType `json:"tipo,omitempty"`
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	cat := s.catalogs.Current()
	if cat == nil {
		s.writeError(w, http.StatusServiceUnavailable, "catalog not loaded")
		return
	}

	docs := cat.Documents()
	entries := make([]documentEntry, 0, len(docs))
	for _, doc := range docs {
		entry := documentEntry{Code: doc.Code, Name: doc.Name, Rules: len(doc.Rules)}
		if t, ok := cat.Type(doc.Code); ok {
			meta := t
			entry.Type = &meta
		}
		entries = append(entries, entry)
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"documentos": entries})
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	cat := s.catalogs.Current()
	if cat == nil {
		s.writeError(w, http.StatusServiceUnavailable, "catalog not loaded")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"campos_disponiveis": cat.Fields()})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	cat := s.catalogs.Current()
	if cat == nil {
		s.writeError(w, http.StatusServiceUnavailable, "catalog not loaded")
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "request body must be a JSON object of field values")
		return
	}

	attrs := buildAttributes(body, cat.Fields())

	start := time.Now()
	res := s.resolver.Evaluate(cat, attrs)
	elapsed := time.Since(start)

	if s.collector != nil {
		required := make([]string, 0, len(res.Required))
		for _, d := range res.Required {
			required = append(required, d.Code)
		}
		waived := make([]string, 0, len(res.Waived))
		for _, d := range res.Waived {
			waived = append(waived, d.Code)
		}
		s.collector.RecordEvaluation(elapsed, required, waived)
	}

	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if s.catalogs.Current() == nil {
		status = "catalog not loaded"
		code = http.StatusServiceUnavailable
	}

	s.writeJSON(w, code, map[string]any{
		"status":          status,
		"catalog_version": s.catalogs.Version(),
	})
}

// buildAttributes converts the request body into engine attributes. The
// vocabulary decides each field's kind: numeric fields accept JSON
// numbers or BRL-formatted strings (unparseable input becomes 0, leaving
// fail-closed evaluation to require the documents); everything else is
// treated as a categorical string and lower-cased.
func buildAttributes(body map[string]any, fields catalog.Vocabulary) engine.Attributes {
	attrs := make(engine.Attributes, len(body))

	for field, raw := range body {
		if raw == nil {
			continue
		}

		if spec, ok := fields[field]; ok && spec.Kind == catalog.FieldNumeric {
			switch v := raw.(type) {
			case float64:
				attrs.SetNumber(field, v)
			case string:
				attrs.SetNumber(field, money.ParseBRL(v))
			default:
				attrs.SetNumber(field, 0)
			}
			continue
		}

		if v, ok := raw.(string); ok {
			if v == "" {
				continue
			}
			attrs.SetString(field, v)
		}
	}

	return attrs
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("failed to write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
