// Package overlay draws debug annotations on camera frames: word
// bounding boxes colored by recognition confidence, detected tokens,
// and a frames-per-second counter.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"gocv.io/x/gocv"

	"shopassist/internal/ocr"
)

const (
	boxThickness = 2
	textScale    = 0.5
)

// ConfidenceColor maps a 0-100 confidence to a red-to-green ramp:
// 0 is pure red, 100 is pure green.
func ConfidenceColor(confidence float64) color.RGBA {
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}
	r, g, b := colorful.Hsv(confidence/100*120, 1, 1).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// DrawBoxes annotates frame in place with one rectangle per detected
// word, colored by its confidence, plus the token text above the box.
func DrawBoxes(frame *gocv.Mat, words []ocr.Word) {
	for _, w := range words {
		c := ConfidenceColor(w.Confidence)
		rect := image.Rect(w.Left, w.Top, w.Left+w.Width, w.Top+w.Height)
		gocv.Rectangle(frame, rect, c, boxThickness)
		gocv.PutText(frame, w.Text, image.Pt(w.Left, w.Top),
			gocv.FontHersheySimplex, textScale, c, boxThickness)
	}
}

// DrawFPS writes a frames-per-second counter in the top-left corner.
func DrawFPS(frame *gocv.Mat, fps float64) {
	gocv.PutText(frame, fmt.Sprintf("FPS: %.2f", fps), image.Pt(10, 20),
		gocv.FontHersheySimplex, textScale, color.RGBA{G: 255, A: 255}, 1)
}
