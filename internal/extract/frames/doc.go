// Package frames recognizes on-screen text by running tesseract over
// periodically sampled video frames. Overlay captions persist across
// many frames, so near-duplicate lines are collapsed with a word-set
// similarity threshold before the text reaches fusion.
package frames
