package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"fincheck/docmatrix/internal/jsonx"
)

// Load builds a Catalog from the raw JSON sources. The rules blob must
// carry a "documentos" mapping and the types blob a "tipos_documentos"
// mapping; the normas blob is optional (pass nil) but must carry a
// "normas" mapping when present. Any structural problem fails the whole
// load with a *SchemaError (aggregated in an *ErrorList when there is
// more than one); a partial catalog is never returned.
func Load(rules, types, normas []byte) (*Catalog, error) {
	cat := &Catalog{
		byCode: make(map[string]int),
		types:  make(map[string]DocumentType),
		normas: make(map[string]Norma),
		fields: make(Vocabulary),
	}

	errList := &ErrorList{}

	if err := cat.loadRules(rules); err != nil {
		errList.Add(err)
	}
	if err := cat.loadTypes(types); err != nil {
		errList.Add(err)
	}
	if len(normas) > 0 {
		if err := cat.loadNormas(normas); err != nil {
			errList.Add(err)
		}
	}

	if errList.HasErrors() {
		if len(errList.Errors) == 1 {
			return nil, errList.Errors[0]
		}
		return nil, errList
	}

	return cat, nil
}

// documentBody mirrors one entry of the "documentos" mapping. Rules are
// kept raw so schema errors can name the offending rule index.
type documentBody struct {
	Name  string            `json:"nome"`
	Rules []json.RawMessage `json:"regras"`
}

func (c *Catalog) loadRules(data []byte) error {
	root, err := topLevelObject(data, "rules")
	if err != nil {
		return err
	}

	docsRaw, ok := root["documentos"]
	if !ok || !jsonx.IsObject(docsRaw) {
		return &SchemaError{Source: "rules", Path: "documentos", Message: "missing or non-object mapping"}
	}

	errList := &ErrorList{}

	err = jsonx.EachMember(docsRaw, func(code string, raw json.RawMessage) error {
		var body documentBody
		if err := json.Unmarshal(raw, &body); err != nil {
			errList.Add(&SchemaError{
				Source:  "rules",
				Path:    "documentos." + code,
				Message: "malformed document entry",
				Cause:   err,
			})
			return nil
		}

		doc := Document{Code: code, Name: body.Name}
		for i, ruleRaw := range body.Rules {
			var rule Rule
			if err := json.Unmarshal(ruleRaw, &rule); err != nil {
				errList.Add(&SchemaError{
					Source:  "rules",
					Path:    fmt.Sprintf("documentos.%s.regras[%d]", code, i),
					Message: "malformed rule",
					Cause:   err,
				})
				continue
			}
			doc.Rules = append(doc.Rules, rule)
		}

		if _, dup := c.byCode[code]; dup {
			errList.Add(&SchemaError{
				Source:  "rules",
				Path:    "documentos." + code,
				Message: "duplicate document code",
			})
			return nil
		}

		c.byCode[code] = len(c.documents)
		c.documents = append(c.documents, doc)
		return nil
	})
	if err != nil {
		return &SchemaError{Source: "rules", Path: "documentos", Message: "malformed mapping", Cause: err}
	}

	if errList.HasErrors() {
		if len(errList.Errors) == 1 {
			return errList.Errors[0]
		}
		return errList
	}
	return nil
}

// typesBody mirrors the top level of the document-type source.
type typesBody struct {
	Types  map[string]DocumentType `json:"tipos_documentos"`
	Fields Vocabulary              `json:"campos_disponiveis"`
}

func (c *Catalog) loadTypes(data []byte) error {
	root, err := topLevelObject(data, "types")
	if err != nil {
		return err
	}

	typesRaw, ok := root["tipos_documentos"]
	if !ok || !jsonx.IsObject(typesRaw) {
		return &SchemaError{Source: "types", Path: "tipos_documentos", Message: "missing or non-object mapping"}
	}
	if fieldsRaw, ok := root["campos_disponiveis"]; ok && !jsonx.IsObject(fieldsRaw) {
		return &SchemaError{Source: "types", Path: "campos_disponiveis", Message: "non-object mapping"}
	}

	var body typesBody
	if err := json.Unmarshal(data, &body); err != nil {
		return &SchemaError{Source: "types", Message: "malformed document-type source", Cause: err}
	}

	c.types = body.Types
	if body.Fields != nil {
		c.fields = body.Fields
	}
	return nil
}

// normasBody mirrors the top level of the norma source.
type normasBody struct {
	Normas map[string]Norma `json:"normas"`
}

func (c *Catalog) loadNormas(data []byte) error {
	root, err := topLevelObject(data, "normas")
	if err != nil {
		return err
	}

	if raw, ok := root["normas"]; !ok || !jsonx.IsObject(raw) {
		return &SchemaError{Source: "normas", Path: "normas", Message: "missing or non-object mapping"}
	}

	var body normasBody
	if err := json.Unmarshal(data, &body); err != nil {
		return &SchemaError{Source: "normas", Message: "malformed norma source", Cause: err}
	}

	c.normas = body.Normas
	return nil
}

// topLevelObject decodes the root of a source blob, requiring it to be a
// JSON object.
func topLevelObject(data []byte, source string) (map[string]json.RawMessage, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &SchemaError{Source: source, Message: "empty source"}
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, &SchemaError{Source: source, Message: "root must be a JSON object", Cause: err}
	}
	return root, nil
}
