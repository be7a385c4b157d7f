package speech

// Default voice for synthesis. Override with the TTS_VOICE env var.
const DefaultVoice = "en-US_EmmaExpressive"

// Audio encodings requested from the synthesis service. The live path
// wants raw PCM it can push straight to the output device; the profile
// path wants a self-contained WAV artifact.
const (
	AcceptLivePCM = "audio/l16;rate=22050"
	AcceptWAV     = "audio/wav"
)

// Audio parameters matching the requested encodings.
const (
	SampleRate   = 22050
	ChannelCount = 1
)

// Env var names for the synthesis service.
const (
	EnvTTSURL           = "TTS_URL"
	EnvTTSProfileURL    = "TTS_PROFILE_URL"
	EnvTTSAPIKey        = "TTS_API_KEY"
	EnvTTSVoice         = "TTS_VOICE"
	EnvTTSCustomization = "TTS_CUSTOMIZATION_ID"
)
