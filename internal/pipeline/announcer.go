package pipeline

// Announcer is the capability both pipelines use to speak. Announce
// submits an utterance and reports whether it was accepted; a false
// return means the speech slot was busy and the utterance was dropped,
// which callers treat as normal operation rather than an error.
type Announcer interface {
	Announce(text string) bool
}

// NoopAnnouncer discards every utterance. It stands in for the speech
// engine when audio is disabled and in tests.
type NoopAnnouncer struct{}

// Announce accepts and discards the utterance.
func (NoopAnnouncer) Announce(string) bool { return true }
