// Package metrics exposes Prometheus metrics for checklist evaluations
// and catalog reloads.
//
// Metrics (namespace configurable, default "docmatrix"):
//
//   - docmatrix_evaluations_total: checklist evaluations served
//   - docmatrix_evaluation_duration_seconds: evaluation latency
//   - docmatrix_documents_required_total / _waived_total: outcome counts,
//     labelled by document code
//   - docmatrix_catalog_reloads_total: catalog reloads by result
//   - docmatrix_catalog_documents: documents in the active catalog
package metrics
