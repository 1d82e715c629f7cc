// Package authoring mutates the catalog backing files: adding and removing
// document types and waiver rules. It is the write-side counterpart of
// package catalog, driven by the docmatrix CLI.
//
// Every operation runs a full read-modify-write cycle: load both backing
// blobs fresh, validate the mutation against the registered field
// vocabulary, and persist both blobs back as one atomic unit. A failed
// validation or a failed write leaves the prior state untouched — the rule
// matrix and the document-type table are never updated independently of
// each other.
//
// Concurrent writers are out of scope: the operations assume a single
// local CLI user, as the file-based stores cannot arbitrate between
// processes.
package authoring
