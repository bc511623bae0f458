// Package recipe defines the structured recipe document the pipeline
// produces and the normalization pass that turns loosely-typed model
// output into a schema-conforming record.
//
// Model output is never trusted field-by-field downstream. Every
// defaulting and coercion rule lives in Normalize so the persisted
// document is the single validated shape.
package recipe
