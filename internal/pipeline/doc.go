// Package pipeline contains the two announcement pipelines at the heart
// of the shopping assistant.
//
// The text pipeline turns raw per-word OCR output into at most one
// spoken utterance per frame: words at or below the configured
// confidence threshold are dropped, blank tokens are removed, the
// survivors are joined into a single string, and an utterance identical
// to the previously spoken one is suppressed until the text disappears
// from view.
//
// The barcode pipeline reads newline-terminated identifiers from a
// scanner (or any line-oriented input), looks each one up in the
// catalog, and announces either the product details or an
// unknown-barcode message.
//
// Both pipelines speak through the Announcer capability. Announcements
// are best-effort: the shared speech slot drops utterances while a
// previous one is still being synthesized, and the two pipelines race
// for it with no priority between them.
package pipeline
