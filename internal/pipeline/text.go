package pipeline

import (
	"image"
	"strings"

	"shopassist/internal/config"
	"shopassist/internal/ocr"
)

// Detector produces raw OCR words for a frame. Satisfied by
// *ocr.Recognizer and by stubs in tests.
type Detector interface {
	Detect(img image.Image) ([]ocr.Word, error)
}

// TextPipeline filters per-frame OCR output and announces new text.
//
// It remembers the last spoken utterance and suppresses repeats: the
// same label held in front of the camera is announced once, not thirty
// times a second. An empty frame clears that memory, so text that
// disappears and comes back is announced again.
//
// TextPipeline is driven from the capture loop only and is not safe for
// concurrent use.
type TextPipeline struct {
	detector  Detector
	announcer Announcer
	settings  *config.Settings
	lastText  string
}

// NewTextPipeline wires the pipeline to its collaborators. Pass a
// NoopAnnouncer to run without speech output.
func NewTextPipeline(detector Detector, announcer Announcer, settings *config.Settings) *TextPipeline {
	return &TextPipeline{
		detector:  detector,
		announcer: announcer,
		settings:  settings,
	}
}

// Process runs OCR on a frame, filters the result and announces the
// utterance if it differs from the previously spoken one.
//
// The returned words are the filtered detection set (for overlay
// drawing) and the string is the utterance derived from it, which may
// be empty when nothing survived filtering.
func (p *TextPipeline) Process(frame image.Image) ([]ocr.Word, string, error) {
	raw, err := p.detector.Detect(frame)
	if err != nil {
		return nil, "", err
	}

	words := FilterBlank(FilterConfidence(raw, p.settings.MinConfidence()))
	text := ocr.Join(words)

	if text != "" && text != p.lastText {
		message := renderTemplate(p.settings.OCRTemplate(), map[string]string{"text": text})
		p.announcer.Announce(message)
		p.lastText = text
	} else if text == "" {
		// Forget the last utterance so the same text re-triggers
		// speech after a blank interval.
		p.lastText = ""
	}

	return words, text, nil
}

// LastText returns the most recently announced utterance, or "" when
// the last frame produced no text.
func (p *TextPipeline) LastText() string {
	return p.lastText
}

// FilterConfidence drops every word whose confidence is not strictly
// greater than min. Whole entries are removed, so positions and
// confidences stay aligned with their tokens.
func FilterConfidence(words []ocr.Word, min float64) []ocr.Word {
	kept := make([]ocr.Word, 0, len(words))
	for _, w := range words {
		if w.Confidence > min {
			kept = append(kept, w)
		}
	}
	return kept
}

// FilterBlank drops words whose text is empty after trimming
// surrounding whitespace.
func FilterBlank(words []ocr.Word) []ocr.Word {
	kept := make([]ocr.Word, 0, len(words))
	for _, w := range words {
		if strings.TrimSpace(w.Text) != "" {
			kept = append(kept, w)
		}
	}
	return kept
}

// AverageConfidence returns the mean confidence of a detection set, or
// 0 for an empty set.
func AverageConfidence(words []ocr.Word) float64 {
	if len(words) == 0 {
		return 0
	}
	var sum float64
	for _, w := range words {
		sum += w.Confidence
	}
	return sum / float64(len(words))
}
