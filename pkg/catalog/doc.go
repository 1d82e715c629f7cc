// Package catalog provides the in-memory representation of the document
// rule matrix used to decide which supporting documents a credit applicant
// must submit.
//
// A Catalog combines three JSON sources:
//
//  1. The rule matrix ("documentos"): per document, an ordered list of
//     waiver rules. A rule whose conditions are all satisfied exempts the
//     applicant from submitting that document.
//  2. The document-type table ("tipos_documentos"): display metadata such
//     as description, validity period and template/regulation links, plus
//     the field vocabulary ("campos_disponiveis") used to validate
//     authored rules.
//  3. The optional norma table ("normas"): regulation references.
//
// Load validates the structural shape of all three sources and builds an
// immutable Catalog. Document iteration order equals the insertion order
// of the "documentos" object in the source JSON; downstream consumers rely
// on that order being stable. A load failure never exposes a partial
// catalog.
package catalog
