package speech

import (
	"fmt"
	"os/exec"
	"strconv"

	htgotts "github.com/hegedustibor/htgo-tts"
	"github.com/hegedustibor/htgo-tts/handlers"
)

// Engine synthesizes one utterance and blocks until playback finishes.
// rate is the requested speech rate in words per minute; engines that
// cannot vary their rate ignore it.
type Engine interface {
	Speak(text string, rate int) error
}

// ESpeak synthesizes speech by invoking the espeak-ng binary. It is
// fully offline and honors the speech rate, which makes it the default
// engine.
type ESpeak struct {
	// Binary overrides the executable name, default "espeak-ng".
	Binary string

	// Voice is the espeak voice identifier (e.g. "en"). Empty uses the
	// binary's default voice.
	Voice string
}

// Speak runs the espeak binary and blocks until playback completes.
func (e *ESpeak) Speak(text string, rate int) error {
	binary := e.Binary
	if binary == "" {
		binary = "espeak-ng"
	}

	args := []string{"-s", strconv.Itoa(rate)}
	if e.Voice != "" {
		args = append(args, "-v", e.Voice)
	}
	args = append(args, text)

	out, err := exec.Command(binary, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("speech synthesis failed: %w: %s", err, out)
	}
	return nil
}

// Google synthesizes speech through htgo-tts, which fetches audio from
// the Google Translate TTS endpoint and plays it locally. Clips are
// cached on disk, so repeated announcements of the same product do not
// re-download. The engine has no rate control.
type Google struct {
	speech htgotts.Speech
}

// NewGoogle creates the online engine. cacheDir holds downloaded audio
// clips; language is an IETF code such as "en".
func NewGoogle(cacheDir, language string) *Google {
	return &Google{speech: htgotts.Speech{
		Folder:   cacheDir,
		Language: language,
		Handler:  &handlers.Native{},
	}}
}

// Speak synthesizes and plays the text. The rate argument is ignored.
func (g *Google) Speak(text string, _ int) error {
	if err := g.speech.Speak(text); err != nil {
		return fmt.Errorf("speech synthesis failed: %w", err)
	}
	return nil
}
