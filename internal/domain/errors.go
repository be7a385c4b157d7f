package domain

import "errors"

// Sentinel errors used across layers. All narration failures are isolated
// to the event that triggered them; only transport errors end a connection.
var (
	// ErrMalformedEvent marks an inbound event missing required nested
	// fields. Commentary for that event is skipped, the connection lives on.
	ErrMalformedEvent = errors.New("malformed event")

	// ErrResponseParse marks a text-generation response that contained no
	// parseable JSON object.
	ErrResponseParse = errors.New("unparseable generation response")

	// ErrMissingField marks a generation response whose JSON object lacked
	// the commentary field.
	ErrMissingField = errors.New("commentary field missing")

	// ErrSynthesis marks a failure signaled through the synthesis
	// callback's error path.
	ErrSynthesis = errors.New("speech synthesis failed")

	// ErrPlaybackMissing marks an expected pre-generated audio artifact
	// that does not exist when playback is attempted.
	ErrPlaybackMissing = errors.New("commentary audio not found")
)
