package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Word is a single recognized token with its location and confidence.
//
// Coordinates are pixels in the frame the word was detected in.
// Confidence is Tesseract's word confidence on its native 0-100 scale;
// callers filter on this value rather than a normalized one so that the
// configurable threshold matches what the engine reports.
type Word struct {
	Text       string  `json:"text"`
	Left       int     `json:"left"`
	Top        int     `json:"top"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Confidence float64 `json:"conf"`
}

// Recognizer wraps a long-lived Tesseract client. Creating a client per
// frame is too expensive for a live capture loop, so one client is held
// for the lifetime of the process and fed frames sequentially.
//
// Recognizer is not safe for concurrent use; the capture loop is its
// only caller.
type Recognizer struct {
	client *gosseract.Client
}

// NewRecognizer initializes Tesseract for the given language code
// (e.g. "eng"). The corresponding language data must be installed on
// the system.
func NewRecognizer(language string) (*Recognizer, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage(language); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language %q: %w", language, err)
	}
	return &Recognizer{client: client}, nil
}

// Detect runs word-level OCR on a frame and returns one Word per
// detected region, in the order Tesseract reports them (top-to-bottom,
// left-to-right). No filtering is applied here; low-confidence and
// blank tokens are the pipeline's concern.
func (r *Recognizer) Detect(img image.Image) ([]Word, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	if err := r.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := r.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		words = append(words, Word{
			Text:       box.Word,
			Left:       box.Box.Min.X,
			Top:        box.Box.Min.Y,
			Width:      box.Box.Dx(),
			Height:     box.Box.Dy(),
			Confidence: box.Confidence,
		})
	}
	return words, nil
}

// Close releases the Tesseract client.
func (r *Recognizer) Close() error {
	return r.client.Close()
}

// Join concatenates the tokens of a detection set with single spaces,
// preserving detection order.
func Join(words []Word) string {
	if len(words) == 0 {
		return ""
	}
	tokens := make([]string, len(words))
	for i, w := range words {
		tokens[i] = w.Text
	}
	return strings.Join(tokens, " ")
}
