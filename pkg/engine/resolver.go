package engine

import (
	"log/slog"

	"fincheck/docmatrix/pkg/catalog"
)

// RequiredDocument is one entry of the resolver output: a document the
// applicant must submit, with its display metadata when registered.
type RequiredDocument struct {
	// Code is the document code (e.g. "CND").
	Code string `json:"codigo"`

	// Name is the document display name from the rule matrix.
	Name string `json:"nome"`

	// Type carries the document-type metadata, or nil when the catalog
	// has no metadata entry for this code.
	Type *catalog.DocumentType `json:"tipo,omitempty"`
}

// Resolution is the full outcome of one evaluation, including which rule
// waived each exempted document.
type Resolution struct {
	// Required lists the documents that must be submitted, in catalog order.
	Required []RequiredDocument `json:"documentos_exigidos"`

	// Waived lists the documents exempted by a matching rule, in catalog order.
	Waived []WaivedDocument `json:"documentos_dispensados,omitempty"`
}

// WaivedDocument records a document exempted by a waiver rule.
type WaivedDocument struct {
	Code string `json:"codigo"`
	Name string `json:"nome"`

	// RuleIndex is the position of the matching rule in the document's
	// rule list.
	RuleIndex int `json:"indice_regra"`

	// RuleDescription is the matching rule's description.
	RuleDescription string `json:"regra"`
}

// Resolver walks a catalog and decides, per document, whether any waiver
// rule fully matches the applicant's attributes.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver creates a resolver. A nil logger falls back to slog.Default.
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{logger: logger}
}

// Resolve returns the documents the applicant must submit, in catalog
// order. It is shorthand for Evaluate(...).Required.
func (r *Resolver) Resolve(cat *catalog.Catalog, attrs Attributes) []RequiredDocument {
	return r.Evaluate(cat, attrs).Required
}

// Evaluate walks every document in catalog order and applies its rules in
// order. The first rule whose conditions all hold waives the document and
// stops the scan for that document; otherwise the document is emitted as
// required with its metadata attached.
func (r *Resolver) Evaluate(cat *catalog.Catalog, attrs Attributes) *Resolution {
	res := &Resolution{
		Required: make([]RequiredDocument, 0, cat.Len()),
	}

	for _, doc := range cat.Documents() {
		waivedBy := -1

		for i, rule := range doc.Rules {
			matched, err := EvaluateConditions(rule.Conditions, attrs)
			if err != nil {
				// Fail-closed: a rule that cannot be evaluated never
				// waives its document.
				r.logger.Warn("skipping unevaluable rule",
					"document", doc.Code,
					"rule_index", i,
					"error", err,
				)
				continue
			}
			if matched {
				waivedBy = i
				break
			}
		}

		if waivedBy >= 0 {
			rule := doc.Rules[waivedBy]
			res.Waived = append(res.Waived, WaivedDocument{
				Code:            doc.Code,
				Name:            doc.Name,
				RuleIndex:       waivedBy,
				RuleDescription: rule.Description,
			})
			r.logger.Debug("document waived",
				"document", doc.Code,
				"rule_index", waivedBy,
				"rule", rule.Description,
			)
			continue
		}

		required := RequiredDocument{Code: doc.Code, Name: doc.Name}
		if t, ok := cat.Type(doc.Code); ok {
			meta := t
			required.Type = &meta
		}
		res.Required = append(res.Required, required)
	}

	r.logger.Debug("evaluation complete",
		"documents", cat.Len(),
		"required", len(res.Required),
		"waived", len(res.Waived),
	)

	return res
}
