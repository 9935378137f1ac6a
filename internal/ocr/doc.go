// Package ocr wraps the Tesseract OCR engine (via gosseract/v2) for the
// live capture loop.
//
// The engine is treated as an oracle: given a preprocessed frame it
// returns one Word per detected text region with its bounding box and a
// 0-100 confidence score. Interpretation of those results (confidence
// filtering, blank removal, announcement deduplication) lives in the
// pipeline package.
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// The OCR language is selected at startup through the bootstrap
// configuration ("language", a Tesseract code such as "eng").
//
// # Performance
//
// OCR dominates the frame budget. The Recognizer keeps one Tesseract
// client alive for the whole process and feeds it PNG-encoded frames;
// there is no per-frame client setup and no temporary files.
package ocr
