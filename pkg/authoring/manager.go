package authoring

import (
	"encoding/json"
	"log/slog"
	"strings"

	"fincheck/docmatrix/internal/jsonx"
	"fincheck/docmatrix/pkg/catalog"
)

// Manager implements the catalog authoring operations. Every operation
// loads the backing blobs fresh, validates, and persists the full mutated
// state back through the store.
type Manager struct {
	store  Store
	logger *slog.Logger
}

// NewManager creates an authoring manager. A nil logger falls back to
// slog.Default.
func NewManager(store Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, logger: logger}
}

// DocumentEntry is one entry of ListDocuments, in catalog order.
type DocumentEntry struct {
	Code string
	Type catalog.DocumentType
}

// docRecord is one ordered entry of the "documentos" mapping.
type docRecord struct {
	Code  string
	Name  string
	Rules []catalog.Rule
}

// typeRecord is one ordered entry of the "tipos_documentos" mapping.
type typeRecord struct {
	Code string
	Meta catalog.DocumentType
}

// state is the decoded, order-preserving view of both backing blobs.
type state struct {
	docs      []docRecord
	types     []typeRecord
	fieldsRaw json.RawMessage
	fields    catalog.Vocabulary
}

// AddDocument registers a new document with empty rules and its metadata.
// Every related field must exist in the field vocabulary. An existing code
// is replaced, resetting its rules, which mirrors how the data files have
// always been maintained.
func (m *Manager) AddDocument(code, name, description, validity string, relatedFields []string, norma string) error {
	st, err := m.load()
	if err != nil {
		return err
	}

	for _, field := range relatedFields {
		if _, ok := st.fields[field]; !ok {
			return &UnknownFieldError{Field: field}
		}
	}

	meta := catalog.DocumentType{
		Name:          name,
		Description:   description,
		Validity:      validity,
		RelatedFields: relatedFields,
		Norma:         norma,
	}

	st.setType(code, meta)
	st.setDocument(docRecord{Code: code, Name: name, Rules: []catalog.Rule{}})

	if err := m.persist(st); err != nil {
		return err
	}

	m.logger.Info("document added", "code", code, "name", name)
	return nil
}

// AddRule validates a rule against the field vocabulary and appends it to
// the document's rule list.
func (m *Manager) AddRule(code string, rule catalog.Rule) error {
	st, err := m.load()
	if err != nil {
		return err
	}

	doc := st.document(code)
	if doc == nil {
		return &DocumentNotFoundError{Code: code}
	}

	if err := validateRule(rule, st.fields); err != nil {
		return err
	}

	doc.Rules = append(doc.Rules, rule)

	if err := m.persist(st); err != nil {
		return err
	}

	m.logger.Info("rule added", "code", code, "rule", rule.Description, "rules", len(doc.Rules))
	return nil
}

// RemoveDocument deletes a document, its rules and its metadata entry as
// one cascading, atomic operation. Removing an absent code is a no-op.
func (m *Manager) RemoveDocument(code string) error {
	st, err := m.load()
	if err != nil {
		return err
	}

	removed := st.removeDocument(code)
	removed = st.removeType(code) || removed
	if !removed {
		return nil
	}

	if err := m.persist(st); err != nil {
		return err
	}

	m.logger.Info("document removed", "code", code)
	return nil
}

// RemoveRule deletes the rule at index from the document's rule list.
func (m *Manager) RemoveRule(code string, index int) error {
	st, err := m.load()
	if err != nil {
		return err
	}

	doc := st.document(code)
	if doc == nil {
		return &DocumentNotFoundError{Code: code}
	}
	if index < 0 || index >= len(doc.Rules) {
		return &RuleIndexError{Code: code, Index: index, Count: len(doc.Rules)}
	}

	doc.Rules = append(doc.Rules[:index], doc.Rules[index+1:]...)

	if err := m.persist(st); err != nil {
		return err
	}

	m.logger.Info("rule removed", "code", code, "index", index)
	return nil
}

// ListDocuments returns the registered document types in catalog order.
func (m *Manager) ListDocuments() ([]DocumentEntry, error) {
	st, err := m.load()
	if err != nil {
		return nil, err
	}

	entries := make([]DocumentEntry, 0, len(st.types))
	for _, t := range st.types {
		entries = append(entries, DocumentEntry{Code: t.Code, Type: t.Meta})
	}
	return entries, nil
}

// ListRules returns the rules of a document, in rule order.
func (m *Manager) ListRules(code string) ([]catalog.Rule, error) {
	st, err := m.load()
	if err != nil {
		return nil, err
	}

	doc := st.document(code)
	if doc == nil {
		return nil, &DocumentNotFoundError{Code: code}
	}

	rules := make([]catalog.Rule, len(doc.Rules))
	copy(rules, doc.Rules)
	return rules, nil
}

// validateRule checks a rule's condition set against the vocabulary:
// every field must be registered, list values (after stripping a leading
// "!" exception marker) must be among the field's declared values, and
// numeric ranges are only legal on numeric fields.
func validateRule(rule catalog.Rule, fields catalog.Vocabulary) error {
	if strings.TrimSpace(rule.Description) == "" {
		return &ConditionError{Message: "rule must have a description"}
	}
	if rule.Conditions == nil {
		return &ConditionError{Message: "rule must have a condition set"}
	}

	for field, req := range rule.Conditions {
		spec, ok := fields[field]
		if !ok {
			return &ConditionError{Field: field, Message: "is not registered in campos_disponiveis"}
		}

		switch req.Kind {
		case catalog.KindSet:
			if spec.Kind != catalog.FieldCategorical {
				return &ConditionError{Field: field, Message: "does not accept value lists"}
			}
			for _, value := range req.Values {
				// "!" marks an exception entry in the source data; the
				// underlying value must still be in the vocabulary.
				candidate := strings.TrimPrefix(value, "!")
				if !spec.HasValue(candidate) {
					return &ConditionError{Field: field, Value: candidate, Message: "is not among the declared values"}
				}
			}

		case catalog.KindRange:
			if spec.Kind != catalog.FieldNumeric {
				return &ConditionError{Field: field, Message: "does not support numeric conditions"}
			}
			if req.Min != nil && req.Max != nil && *req.Min > *req.Max {
				return &ConditionError{Field: field, Message: "has minimo greater than maximo"}
			}

		default:
			return &ConditionError{Field: field, Message: "must be a value list or a minimo/maximo range"}
		}
	}

	return nil
}

// load reads both blobs, validates them through catalog.Load and decodes
// the order-preserving authoring state.
func (m *Manager) load() (*state, error) {
	rules, types, err := m.store.Load()
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(rules, types, nil)
	if err != nil {
		return nil, err
	}

	st := &state{fields: cat.Fields()}

	var rulesRoot map[string]json.RawMessage
	if err := json.Unmarshal(rules, &rulesRoot); err != nil {
		return nil, &StoreError{Operation: "load", Cause: err}
	}
	err = jsonx.EachMember(rulesRoot["documentos"], func(code string, raw json.RawMessage) error {
		var body struct {
			Name  string         `json:"nome"`
			Rules []catalog.Rule `json:"regras"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return err
		}
		st.docs = append(st.docs, docRecord{Code: code, Name: body.Name, Rules: body.Rules})
		return nil
	})
	if err != nil {
		return nil, &StoreError{Operation: "load", Cause: err}
	}

	var typesRoot map[string]json.RawMessage
	if err := json.Unmarshal(types, &typesRoot); err != nil {
		return nil, &StoreError{Operation: "load", Cause: err}
	}
	st.fieldsRaw = typesRoot["campos_disponiveis"]
	err = jsonx.EachMember(typesRoot["tipos_documentos"], func(code string, raw json.RawMessage) error {
		var meta catalog.DocumentType
		if err := json.Unmarshal(raw, &meta); err != nil {
			return err
		}
		st.types = append(st.types, typeRecord{Code: code, Meta: meta})
		return nil
	})
	if err != nil {
		return nil, &StoreError{Operation: "load", Cause: err}
	}

	return st, nil
}

// persist re-encodes both blobs, preserving member order, and saves them
// through the store as one unit.
func (m *Manager) persist(st *state) error {
	docMembers := make([]jsonx.Member, 0, len(st.docs))
	for _, doc := range st.docs {
		rules := doc.Rules
		if rules == nil {
			rules = []catalog.Rule{}
		}
		body, err := json.Marshal(struct {
			Name  string         `json:"nome"`
			Rules []catalog.Rule `json:"regras"`
		}{Name: doc.Name, Rules: rules})
		if err != nil {
			return &StoreError{Operation: "save", Cause: err}
		}
		docMembers = append(docMembers, jsonx.Member{Key: doc.Code, Value: body})
	}
	docsObj, err := jsonx.MarshalObject(docMembers)
	if err != nil {
		return &StoreError{Operation: "save", Cause: err}
	}
	rulesObj, err := jsonx.MarshalObject([]jsonx.Member{{Key: "documentos", Value: docsObj}})
	if err != nil {
		return &StoreError{Operation: "save", Cause: err}
	}
	rulesOut, err := jsonx.Indent(rulesObj)
	if err != nil {
		return &StoreError{Operation: "save", Cause: err}
	}

	typeMembers := make([]jsonx.Member, 0, len(st.types))
	for _, t := range st.types {
		body, err := json.Marshal(t.Meta)
		if err != nil {
			return &StoreError{Operation: "save", Cause: err}
		}
		typeMembers = append(typeMembers, jsonx.Member{Key: t.Code, Value: body})
	}
	typesObj, err := jsonx.MarshalObject(typeMembers)
	if err != nil {
		return &StoreError{Operation: "save", Cause: err}
	}

	rootMembers := []jsonx.Member{{Key: "tipos_documentos", Value: typesObj}}
	if len(st.fieldsRaw) > 0 {
		rootMembers = append(rootMembers, jsonx.Member{Key: "campos_disponiveis", Value: st.fieldsRaw})
	}
	typesRoot, err := jsonx.MarshalObject(rootMembers)
	if err != nil {
		return &StoreError{Operation: "save", Cause: err}
	}
	typesOut, err := jsonx.Indent(typesRoot)
	if err != nil {
		return &StoreError{Operation: "save", Cause: err}
	}

	return m.store.Save(rulesOut, typesOut)
}

// document returns a mutable reference to the document record, or nil.
func (s *state) document(code string) *docRecord {
	for i := range s.docs {
		if s.docs[i].Code == code {
			return &s.docs[i]
		}
	}
	return nil
}

// setDocument replaces an existing record in place or appends a new one.
func (s *state) setDocument(rec docRecord) {
	for i := range s.docs {
		if s.docs[i].Code == rec.Code {
			s.docs[i] = rec
			return
		}
	}
	s.docs = append(s.docs, rec)
}

// removeDocument deletes a record, reporting whether it existed.
func (s *state) removeDocument(code string) bool {
	for i := range s.docs {
		if s.docs[i].Code == code {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			return true
		}
	}
	return false
}

// setType replaces an existing metadata record in place or appends one.
func (s *state) setType(code string, meta catalog.DocumentType) {
	for i := range s.types {
		if s.types[i].Code == code {
			s.types[i] = typeRecord{Code: code, Meta: meta}
			return
		}
	}
	s.types = append(s.types, typeRecord{Code: code, Meta: meta})
}

// removeType deletes a metadata record, reporting whether it existed.
func (s *state) removeType(code string) bool {
	for i := range s.types {
		if s.types[i].Code == code {
			s.types = append(s.types[:i], s.types[i+1:]...)
			return true
		}
	}
	return false
}
