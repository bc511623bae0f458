// Package textutil provides small text helpers shared by the extraction
// modalities: word-set similarity for near-duplicate OCR lines and
// whitespace normalization for fused output.
package textutil
