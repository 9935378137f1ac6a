package config

import (
	"sync"

	"github.com/spf13/cast"
)

// Setting keys accepted by Settings.Update and returned by Settings.Snapshot.
// These are the wire names used by the HTTP settings endpoints.
const (
	KeyDebug                   = "debug"
	KeyTTSSpeed                = "tts_speed"
	KeyOCRTemplate             = "tts_ocr_template"
	KeyBarcodeFoundTemplate    = "tts_barcode_found_template"
	KeyBarcodeNotFoundTemplate = "tts_barcode_not_found_template"
	KeyThresholding            = "thresholding"
	KeyMinConfidence           = "min_confidence"
)

// Settings is the runtime-tunable configuration shared by the OCR and
// barcode pipelines. A single instance is passed by reference to every
// component at construction time; the HTTP facade mutates it through
// Update while the pipelines read individual values on each frame or
// scanned barcode, so a change takes effect on the next processed item.
//
// All accessors are safe for concurrent use.
type Settings struct {
	mu sync.RWMutex

	debug            bool
	ttsSpeed         int
	ocrTemplate      string
	foundTemplate    string
	notFoundTemplate string
	thresholding     int
	minConfidence    float64
}

// DefaultSettings returns a Settings record populated with the default
// values: debug off, speech rate 200 wpm, confidence threshold 60 (on
// Tesseract's 0-100 scale) and binarization threshold 70.
func DefaultSettings() *Settings {
	return &Settings{
		debug:            false,
		ttsSpeed:         200,
		ocrTemplate:      "{text}",
		foundTemplate:    "Product: {product_name}, Brand: {brand}, Allergies: {allergies}",
		notFoundTemplate: "Unknown barcode scanned",
		thresholding:     70,
		minConfidence:    60,
	}
}

// Debug reports whether debug visualization and logging are enabled.
func (s *Settings) Debug() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.debug
}

// SetDebug toggles debug visualization.
func (s *Settings) SetDebug(on bool) {
	s.mu.Lock()
	s.debug = on
	s.mu.Unlock()
}

// TTSSpeed returns the speech rate in words per minute.
func (s *Settings) TTSSpeed() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ttsSpeed
}

// OCRTemplate returns the announcement template for detected text.
// The placeholder {text} is replaced with the utterance.
func (s *Settings) OCRTemplate() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ocrTemplate
}

// BarcodeFoundTemplate returns the announcement template for a barcode
// present in the catalog. Placeholders: {product_name}, {brand},
// {allergies}.
func (s *Settings) BarcodeFoundTemplate() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.foundTemplate
}

// BarcodeNotFoundTemplate returns the announcement template for a
// barcode absent from the catalog. Placeholder: {barcode}.
func (s *Settings) BarcodeNotFoundTemplate() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notFoundTemplate
}

// Thresholding returns the binarization threshold (0-255) applied
// during frame preprocessing.
func (s *Settings) Thresholding() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.thresholding
}

// MinConfidence returns the minimum OCR confidence (0-100). Tokens at
// or below this value are discarded by the text pipeline.
func (s *Settings) MinConfidence() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.minConfidence
}

// Snapshot returns all settings as a map keyed by the wire names above.
// The map is a copy; mutating it does not affect the Settings.
func (s *Settings) Snapshot() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		KeyDebug:                   s.debug,
		KeyTTSSpeed:                s.ttsSpeed,
		KeyOCRTemplate:             s.ocrTemplate,
		KeyBarcodeFoundTemplate:    s.foundTemplate,
		KeyBarcodeNotFoundTemplate: s.notFoundTemplate,
		KeyThresholding:            s.thresholding,
		KeyMinConfidence:           s.minConfidence,
	}
}

// Update applies the given values to the settings record and returns
// the subset that was actually applied, with values coerced to their
// canonical types.
//
// Unknown keys are silently ignored so that clients can post a full
// settings map without tracking which keys this build understands.
// Values that cannot be coerced to the field's type are skipped.
func (s *Settings) Update(values map[string]interface{}) map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := make(map[string]interface{})
	for key, value := range values {
		switch key {
		case KeyDebug:
			v, err := cast.ToBoolE(value)
			if err != nil {
				continue
			}
			s.debug = v
			applied[key] = v
		case KeyTTSSpeed:
			v, err := cast.ToIntE(value)
			if err != nil {
				continue
			}
			s.ttsSpeed = v
			applied[key] = v
		case KeyOCRTemplate:
			v, err := cast.ToStringE(value)
			if err != nil {
				continue
			}
			s.ocrTemplate = v
			applied[key] = v
		case KeyBarcodeFoundTemplate:
			v, err := cast.ToStringE(value)
			if err != nil {
				continue
			}
			s.foundTemplate = v
			applied[key] = v
		case KeyBarcodeNotFoundTemplate:
			v, err := cast.ToStringE(value)
			if err != nil {
				continue
			}
			s.notFoundTemplate = v
			applied[key] = v
		case KeyThresholding:
			v, err := cast.ToIntE(value)
			if err != nil {
				continue
			}
			s.thresholding = v
			applied[key] = v
		case KeyMinConfidence:
			v, err := cast.ToFloat64E(value)
			if err != nil {
				continue
			}
			s.minConfidence = v
			applied[key] = v
		}
	}
	return applied
}
