package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Config carries every tunable of the service. Values come from the
// environment once at startup; business code receives them explicitly
// instead of reading env vars itself.
type Config struct {
	// HTTP server
	Port string

	// Transcription backends
	WhisperURL         string
	WhisperTimeout     time.Duration
	GoogleSpeechAPIKey string
	MinTranscriptChars int
	MaxTranscriptChars int

	// Classification
	ClassifierURL       string
	ClassifierTimeout   time.Duration
	ClassifierThreshold float64

	// Taxonomy keyword asset (optional xlsx override)
	TaxonomyPath string

	// Audio limits
	MaxAudioSeconds float64
	MinAudioSeconds float64
	FFmpegPath      string

	// Amount plausibility window
	AmountMin float64
	AmountMax float64

	// Pipeline
	MaxConcurrentJobs int
	ReadyTimeout      time.Duration

	// Uploads
	TempDir       string
	MaxUploadSize int64
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		WhisperURL:         getEnv("WHISPER_URL", ""),
		WhisperTimeout:     getEnvDuration("WHISPER_TIMEOUT", 60*time.Second),
		GoogleSpeechAPIKey: getEnv("GOOGLE_SPEECH_API_KEY", ""),
		MinTranscriptChars: getEnvInt("MIN_TRANSCRIPT_CHARS", 2),
		MaxTranscriptChars: getEnvInt("MAX_TRANSCRIPT_CHARS", 500),

		ClassifierURL:       getEnv("CLASSIFIER_URL", ""),
		ClassifierTimeout:   getEnvDuration("CLASSIFIER_TIMEOUT", 10*time.Second),
		ClassifierThreshold: getEnvFloat("CLASSIFIER_THRESHOLD", 0.65),

		TaxonomyPath: getEnv("TAXONOMY_PATH", ""),

		MaxAudioSeconds: getEnvFloat("MAX_AUDIO_SECONDS", 30),
		MinAudioSeconds: getEnvFloat("MIN_AUDIO_SECONDS", 0.1),
		FFmpegPath:      getEnv("FFMPEG_PATH", "ffmpeg"),

		AmountMin: getEnvFloat("AMOUNT_MIN", 0.01),
		AmountMax: getEnvFloat("AMOUNT_MAX", 1_000_000),

		MaxConcurrentJobs: getEnvInt("MAX_CONCURRENT_JOBS", runtime.NumCPU()),
		ReadyTimeout:      getEnvDuration("READY_TIMEOUT", 60*time.Second),

		TempDir:       getEnv("TEMP_DIR", os.TempDir()),
		MaxUploadSize: int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
	}
}

// Validate returns an error listing everything wrong with the configuration.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.ClassifierThreshold <= 0 || c.ClassifierThreshold > 1 {
		errs = append(errs, fmt.Sprintf("invalid classifier threshold %.2f: must be in (0, 1]", c.ClassifierThreshold))
	}
	if c.MaxAudioSeconds <= 0 || c.MinAudioSeconds <= 0 || c.MinAudioSeconds >= c.MaxAudioSeconds {
		errs = append(errs, fmt.Sprintf("invalid audio bounds: min %.2fs max %.2fs", c.MinAudioSeconds, c.MaxAudioSeconds))
	}
	if c.AmountMin <= 0 || c.AmountMax <= c.AmountMin {
		errs = append(errs, fmt.Sprintf("invalid amount window: %.2f..%.2f", c.AmountMin, c.AmountMax))
	}
	if c.MaxConcurrentJobs < 1 {
		errs = append(errs, "max concurrent jobs must be at least 1")
	}
	if c.MaxUploadSize <= 0 {
		errs = append(errs, "max upload size must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
