package pipeline

import (
	"errors"
	"image"
	"sync"
	"testing"

	"shopassist/internal/config"
	"shopassist/internal/ocr"
)

// spyAnnouncer records every announced utterance.
type spyAnnouncer struct {
	mu    sync.Mutex
	calls []string
}

func (s *spyAnnouncer) Announce(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, text)
	return true
}

func (s *spyAnnouncer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *spyAnnouncer) last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		return ""
	}
	return s.calls[len(s.calls)-1]
}

// stubDetector replays one canned detection set per Process call.
type stubDetector struct {
	frames [][]ocr.Word
	next   int
	err    error
}

func (d *stubDetector) Detect(image.Image) ([]ocr.Word, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.next >= len(d.frames) {
		return nil, nil
	}
	frame := d.frames[d.next]
	d.next++
	return frame, nil
}

var testFrame = image.NewGray(image.Rect(0, 0, 1, 1))

func words(tokens ...string) []ocr.Word {
	ws := make([]ocr.Word, len(tokens))
	for i, tok := range tokens {
		ws[i] = ocr.Word{Text: tok, Confidence: 90}
	}
	return ws
}

func TestProcess_FiltersAndJoins(t *testing.T) {
	// OCR returns ["Milk", "", "2%"] with confidences [75, 50, 80];
	// at threshold 60 only "Milk" and "2%" survive.
	detector := &stubDetector{frames: [][]ocr.Word{{
		{Text: "Milk", Confidence: 75},
		{Text: "", Confidence: 50},
		{Text: "2%", Confidence: 80},
	}}}
	spy := &spyAnnouncer{}
	p := NewTextPipeline(detector, spy, config.DefaultSettings())

	filtered, text, err := p.Process(testFrame)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if len(filtered) != 2 {
		t.Fatalf("filtered: got %d words, want 2", len(filtered))
	}
	if filtered[0].Text != "Milk" || filtered[1].Text != "2%" {
		t.Errorf("filtered tokens: got %q %q", filtered[0].Text, filtered[1].Text)
	}
	if text != "Milk 2%" {
		t.Errorf("utterance: got %q, want \"Milk 2%%\"", text)
	}
	if spy.last() != "Milk 2%" {
		t.Errorf("announced: got %q, want \"Milk 2%%\"", spy.last())
	}
}

func TestFilterConfidence_StrictlyGreater(t *testing.T) {
	in := []ocr.Word{
		{Text: "at", Confidence: 60},
		{Text: "above", Confidence: 60.001},
		{Text: "below", Confidence: 59.9},
	}

	kept := FilterConfidence(in, 60)

	if len(kept) != 1 {
		t.Fatalf("kept: got %d words, want 1", len(kept))
	}
	if kept[0].Text != "above" {
		t.Errorf("kept token: got %q, want above", kept[0].Text)
	}
	for _, w := range kept {
		if !(w.Confidence > 60) {
			t.Errorf("retained confidence %v is not strictly above threshold", w.Confidence)
		}
	}
}

func TestFilterBlank(t *testing.T) {
	in := []ocr.Word{
		{Text: "keep", Confidence: 90},
		{Text: "", Confidence: 90},
		{Text: "   ", Confidence: 90},
		{Text: "\t\n", Confidence: 90},
		{Text: " also ", Confidence: 90},
	}

	kept := FilterBlank(in)

	if len(kept) != 2 {
		t.Fatalf("kept: got %d words, want 2", len(kept))
	}
	for _, w := range kept {
		if w.Text == "" {
			t.Error("blank token survived filtering")
		}
	}
}

func TestProcess_SuppressesRepeats(t *testing.T) {
	detector := &stubDetector{frames: [][]ocr.Word{
		words("Milk"),
		words("Milk"),
		words("Milk"),
	}}
	spy := &spyAnnouncer{}
	p := NewTextPipeline(detector, spy, config.DefaultSettings())

	for i := 0; i < 3; i++ {
		if _, _, err := p.Process(testFrame); err != nil {
			t.Fatalf("Process %d failed: %v", i, err)
		}
	}

	if spy.count() != 1 {
		t.Errorf("identical utterances should be announced once, got %d", spy.count())
	}
}

func TestProcess_EmptyFrameResetsSuppression(t *testing.T) {
	detector := &stubDetector{frames: [][]ocr.Word{
		words("Milk"),
		nil, // text leaves the frame
		words("Milk"),
	}}
	spy := &spyAnnouncer{}
	p := NewTextPipeline(detector, spy, config.DefaultSettings())

	for i := 0; i < 3; i++ {
		if _, _, err := p.Process(testFrame); err != nil {
			t.Fatalf("Process %d failed: %v", i, err)
		}
	}

	if spy.count() != 2 {
		t.Errorf("reappearing text should be re-announced, got %d announcements", spy.count())
	}
	if p.LastText() != "Milk" {
		t.Errorf("LastText: got %q, want Milk", p.LastText())
	}
}

func TestProcess_EmptyFrameNoAnnouncement(t *testing.T) {
	detector := &stubDetector{frames: [][]ocr.Word{nil}}
	spy := &spyAnnouncer{}
	p := NewTextPipeline(detector, spy, config.DefaultSettings())

	_, text, err := p.Process(testFrame)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if text != "" {
		t.Errorf("utterance: got %q, want empty", text)
	}
	if spy.count() != 0 {
		t.Error("empty frame must not trigger speech")
	}
}

func TestProcess_NewTextAnnounced(t *testing.T) {
	detector := &stubDetector{frames: [][]ocr.Word{
		words("Milk"),
		words("Bread"),
	}}
	spy := &spyAnnouncer{}
	p := NewTextPipeline(detector, spy, config.DefaultSettings())

	p.Process(testFrame)
	p.Process(testFrame)

	if spy.count() != 2 {
		t.Errorf("changed text should be announced, got %d announcements", spy.count())
	}
	if spy.last() != "Bread" {
		t.Errorf("last announcement: got %q, want Bread", spy.last())
	}
}

func TestProcess_AppliesOCRTemplate(t *testing.T) {
	detector := &stubDetector{frames: [][]ocr.Word{words("Milk")}}
	spy := &spyAnnouncer{}
	settings := config.DefaultSettings()
	settings.Update(map[string]interface{}{
		config.KeyOCRTemplate: "I can see {text}",
	})
	p := NewTextPipeline(detector, spy, settings)

	p.Process(testFrame)

	if spy.last() != "I can see Milk" {
		t.Errorf("announced: got %q", spy.last())
	}
}

func TestProcess_ThresholdChangeTakesEffect(t *testing.T) {
	// A settings change applies to the next frame, no restart needed.
	frame := []ocr.Word{{Text: "faint", Confidence: 55}}
	detector := &stubDetector{frames: [][]ocr.Word{frame, frame}}
	spy := &spyAnnouncer{}
	settings := config.DefaultSettings()
	p := NewTextPipeline(detector, spy, settings)

	_, text, _ := p.Process(testFrame)
	if text != "" {
		t.Fatalf("token below default threshold should be dropped, got %q", text)
	}

	settings.Update(map[string]interface{}{config.KeyMinConfidence: 50})

	_, text, _ = p.Process(testFrame)
	if text != "faint" {
		t.Errorf("after lowering threshold: got %q, want faint", text)
	}
}

func TestProcess_DetectorError(t *testing.T) {
	detector := &stubDetector{err: errors.New("engine unavailable")}
	spy := &spyAnnouncer{}
	p := NewTextPipeline(detector, spy, config.DefaultSettings())

	_, _, err := p.Process(testFrame)
	if err == nil {
		t.Fatal("Process should propagate detector errors")
	}
	if spy.count() != 0 {
		t.Error("failed frames must not be announced")
	}
}

func TestAverageConfidence(t *testing.T) {
	tests := []struct {
		name  string
		words []ocr.Word
		want  float64
	}{
		{"empty is zero", nil, 0},
		{"single", []ocr.Word{{Confidence: 80}}, 80},
		{"mean", []ocr.Word{{Confidence: 60}, {Confidence: 90}}, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AverageConfidence(tt.words); got != tt.want {
				t.Errorf("AverageConfidence: got %v, want %v", got, tt.want)
			}
		})
	}
}
