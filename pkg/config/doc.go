// Package config loads and validates the docmatrix YAML configuration.
//
// Configuration is resolved in three steps: YAML file, built-in defaults
// for anything unset, then DOCMATRIX_* environment variable overrides.
// A missing config file is not an error — the defaults describe a fully
// working local setup with the catalog files under data/.
package config
