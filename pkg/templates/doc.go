// Package templates generates starting documents.
//
// Generation is a lookup table: the header and footer are built in code,
// the industry sections come from embedded YAML blueprints. Every call
// stamps fresh identifiers onto a copy of the blueprint, so generating the
// same industry twice never shares ids.
package templates
