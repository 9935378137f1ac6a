// Package speech turns announcement strings into audible output.
//
// An Engine is an oracle that synthesizes one utterance and blocks
// until playback finishes. Two engines are provided: ESpeak shells out
// to the offline espeak-ng binary and honors the configurable speech
// rate; Google uses htgo-tts with local playback and disk caching but
// a fixed rate.
//
// The Dispatcher in front of the engine is non-reentrant by
// construction: one worker goroutine, an unbuffered request channel,
// and a non-blocking submit. An utterance arriving while another is
// being spoken is dropped, not queued.
package speech
