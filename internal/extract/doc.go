// Package extract coordinates the three text extraction modalities
// (on-screen OCR, platform captions, spoken transcript) and fuses their
// output into the single document handed to recipe synthesis.
//
// Extractors run concurrently and every one of them is allowed to
// fail; fusion only errors when no modality produced text. The fused
// document always orders sections on-screen first, captions second,
// transcript last, regardless of which extractor finished first.
package extract
