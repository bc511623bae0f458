// Package synth turns fused extraction text into a structured recipe
// document via a schema-constrained model prompt.
package synth
