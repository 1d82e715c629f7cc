package catalog

// FieldKind classifies a vocabulary field as categorical or numeric.
type FieldKind string

const (
	// FieldCategorical fields hold one value out of a closed set of strings.
	FieldCategorical FieldKind = "categoria"

	// FieldNumeric fields hold a decimal amount (e.g. monthly income).
	FieldNumeric FieldKind = "numero"
)

// FieldSpec declares the kind of a vocabulary field and, for categorical
// fields, its accepted values.
type FieldSpec struct {
	Kind   FieldKind `json:"tipo"`
	Values []string  `json:"valores,omitempty"`
}

// HasValue reports whether v is one of the declared categorical values.
func (s FieldSpec) HasValue(v string) bool {
	for _, val := range s.Values {
		if val == v {
			return true
		}
	}
	return false
}

// Vocabulary maps field names (e.g. "fonte", "renda", "porte") to their
// declared specs. It is reference data used only when validating authored
// rules, never at evaluation time.
type Vocabulary map[string]FieldSpec

// Rule is a single waiver rule attached to a document. All conditions must
// hold simultaneously for the rule to apply.
type Rule struct {
	// Description is the human-readable justification for the waiver.
	Description string `json:"descricao"`

	// Conditions maps field names to their requirements. Insertion order
	// is irrelevant; the set is a pure conjunction.
	Conditions map[string]Requirement `json:"condicoes"`
}

// Document is one entry of the rule matrix: a document code, its display
// name and the ordered waiver rules. A document with zero rules is always
// required.
type Document struct {
	Code  string `json:"-"`
	Name  string `json:"nome"`
	Rules []Rule `json:"regras"`
}

// DocumentType carries per-document display metadata. It is pass-through
// data for the presentation layer; the engine only looks it up by code.
type DocumentType struct {
	Name          string   `json:"nome,omitempty"`
	Description   string   `json:"descricao,omitempty"`
	Validity      string   `json:"validade,omitempty"`
	RelatedFields []string `json:"campos_relacionados,omitempty"`
	Norma         string   `json:"norma,omitempty"`
	NormaURL      string   `json:"norma_url,omitempty"`
	TemplateURL   string   `json:"modelo_url,omitempty"`
	TemplateURLPF string   `json:"modelo_url_pf,omitempty"`
	TemplateURLPJ string   `json:"modelo_url_pj,omitempty"`
	LinkText      string   `json:"link_text,omitempty"`
	Note          string   `json:"observacao,omitempty"`
}

// Norma is a regulation reference.
type Norma struct {
	URL   string `json:"url"`
	Title string `json:"titulo,omitempty"`
}

// Catalog is the combined, validated, read-only view of the rule matrix,
// document-type metadata and regulation references. It is built once by
// Load and safe for concurrent readers; mutation happens only through the
// authoring operations, which produce a fresh Catalog.
type Catalog struct {
	documents []Document
	byCode    map[string]int
	types     map[string]DocumentType
	normas    map[string]Norma
	fields    Vocabulary
}

// Documents returns the documents in catalog order. The returned slice is
// a copy and may be retained by the caller.
func (c *Catalog) Documents() []Document {
	docs := make([]Document, len(c.documents))
	copy(docs, c.documents)
	return docs
}

// Document retrieves a document by code.
func (c *Catalog) Document(code string) (Document, bool) {
	i, ok := c.byCode[code]
	if !ok {
		return Document{}, false
	}
	return c.documents[i], true
}

// HasDocument reports whether a document with the given code exists.
func (c *Catalog) HasDocument(code string) bool {
	_, ok := c.byCode[code]
	return ok
}

// Type retrieves the display metadata for a document code.
func (c *Catalog) Type(code string) (DocumentType, bool) {
	t, ok := c.types[code]
	return t, ok
}

// Norma retrieves a regulation reference by code.
func (c *Catalog) Norma(code string) (Norma, bool) {
	n, ok := c.normas[code]
	return n, ok
}

// Fields returns the registered field vocabulary.
func (c *Catalog) Fields() Vocabulary {
	return c.fields
}

// Len returns the number of documents in the catalog.
func (c *Catalog) Len() int {
	return len(c.documents)
}
