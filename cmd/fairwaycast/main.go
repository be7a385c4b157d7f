// Fairwaycast — real-time spoken commentary for a golf simulator.
//
// Usage:
//
//	fairwaycast [-addr :5000] [-verbose] [-quiet] [-no-speech]
package main

import (
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"fairwaycast/internal/commentary"
	"fairwaycast/internal/display"
	"fairwaycast/internal/domain"
	"fairwaycast/internal/genai"
	"fairwaycast/internal/logger"
	"fairwaycast/internal/server"
	"fairwaycast/internal/speech"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", ":5000", "address to serve the commentary websocket on")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", "stderr", "file to write logs to (use \"stderr\" to log to console)")
	audioDir := flag.String("audio-dir", "audio", "directory holding filler clips and introduction artifacts")
	noSpeech := flag.Bool("no-speech", false, "run without an audio device (narration is generated but discarded)")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		if dir := filepath.Dir(*logFile); dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Third-party libs log through the stdlib; keep it all in one place.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	// Remote service configuration comes from the environment.
	genaiURL := os.Getenv("GENAI_URL")
	genaiKey := os.Getenv("GENAI_API_KEY")
	genaiModel := os.Getenv("GENAI_MODEL")
	genaiProject := os.Getenv("GENAI_PROJECT_ID")
	if genaiURL == "" || genaiKey == "" || genaiModel == "" {
		fmt.Fprintln(os.Stderr, "error: GENAI_URL, GENAI_API_KEY, and GENAI_MODEL must be set")
		os.Exit(1)
	}

	ttsURL := os.Getenv(speech.EnvTTSURL)
	ttsKey := os.Getenv(speech.EnvTTSAPIKey)
	if ttsURL == "" || ttsKey == "" {
		fmt.Fprintf(os.Stderr, "error: %s and %s must be set\n", speech.EnvTTSURL, speech.EnvTTSAPIKey)
		os.Exit(1)
	}
	ttsProfileURL := os.Getenv(speech.EnvTTSProfileURL)
	if ttsProfileURL == "" {
		ttsProfileURL = ttsURL
	}
	voice := os.Getenv(speech.EnvTTSVoice)
	if voice == "" {
		voice = speech.DefaultVoice
	}
	customization := os.Getenv(speech.EnvTTSCustomization)

	startDelay := 10 * time.Second
	if raw := os.Getenv("COMMENTARY_START_DELAY"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: COMMENTARY_START_DELAY must be seconds, got %q\n", raw)
			os.Exit(1)
		}
		startDelay = time.Duration(secs) * time.Second
	}

	// Audio output device. The no-op player keeps the full pipeline
	// running on machines without one.
	var player domain.AudioPlayer
	if *noSpeech {
		player = speech.NewNoOpPlayer(log)
		log.Info("audio device disabled (-no-speech)")
	} else {
		p, err := speech.NewPlayer(log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: audio device init failed: %v (use -no-speech to run without one)\n", err)
			os.Exit(1)
		}
		player = p
	}

	// Generation clients: one tuned for the latency-critical shot path,
	// one for the longer player introductions.
	shotGen := genai.NewClient(genaiURL, genaiKey, genaiModel, log,
		genai.WithProjectID(genaiProject),
		genai.WithParams(genai.ShotParams),
	)
	profileGen := genai.NewClient(genaiURL, genaiKey, genaiModel, log,
		genai.WithProjectID(genaiProject),
		genai.WithParams(genai.ProfileParams),
	)

	// Synthesis clients: raw PCM for the live device, WAV for artifacts.
	liveSynth := speech.NewSynthesizer(ttsURL, ttsKey, log,
		speech.WithVoice(voice),
		speech.WithCustomization(customization),
		speech.WithAccept(speech.AcceptLivePCM),
	)
	profileSynth := speech.NewSynthesizer(ttsProfileURL, ttsKey, log,
		speech.WithVoice(voice),
		speech.WithCustomization(customization),
		speech.WithAccept(speech.AcceptWAV),
	)

	clips := speech.NewClipLibrary(*audioDir, voice, log)
	shots := commentary.NewShotPipeline(shotGen, liveSynth, player, clips, log)
	profiles := commentary.NewProfilePipeline(profileGen, profileSynth, *audioDir, voice, log)

	srv := server.New(server.Deps{
		Shots:      shots,
		Profiles:   profiles,
		Player:     player,
		AudioDir:   *audioDir,
		Voice:      voice,
		Dispatcher: []commentary.DispatcherOption{commentary.WithStartDelay(startDelay)},
	}, log)

	fmt.Println(display.RenderBanner())
	log.Info("serving commentary websocket on %s (model=%s, voice=%s)", *addr, genaiModel, voice)

	if err := http.ListenAndServe(*addr, srv.Handler()); err != nil {
		log.Error("server: %v", err)
		os.Exit(1)
	}
}
