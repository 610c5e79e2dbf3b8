package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"voice-expense-go/internal/amount"
	"voice-expense-go/internal/audio"
	"voice-expense-go/internal/classifier"
	"voice-expense-go/internal/config"
	"voice-expense-go/internal/logger"
	"voice-expense-go/internal/pipeline"
	"voice-expense-go/internal/server"
	"voice-expense-go/internal/taxonomy"
	"voice-expense-go/internal/transcription"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "voice-expense-go").Info("starting service")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	// keyword taxonomy: built-in v1 table, optionally overridden by a
	// shared xlsx asset so keyword tuning needs no redeploy
	keywords := taxonomy.DefaultKeywords()
	if cfg.TaxonomyPath != "" {
		loaded, err := taxonomy.LoadKeywordsXLSX(cfg.TaxonomyPath)
		if err != nil {
			log.WithError(err).Fatal("failed to load taxonomy keyword asset")
		}
		keywords = loaded
		log.WithField("path", cfg.TaxonomyPath).Info("taxonomy keyword asset loaded")
	}

	// transcription backends, selected by what the deployment provides
	var (
		primary       *transcription.WhisperClient
		secondary     transcription.Transcriber
		primaryName   = "none"
		secondaryName = "none"
	)
	if cfg.WhisperURL != "" {
		primary = transcription.NewWhisperClient(cfg.WhisperURL, cfg.WhisperTimeout, log)
		primaryName = "whisper"
	}
	if cfg.GoogleSpeechAPIKey != "" {
		gc, err := transcription.NewGoogleSpeechClient(context.Background(), cfg.GoogleSpeechAPIKey, log)
		if err != nil {
			log.WithError(err).Fatal("failed to build speech fallback client")
		}
		secondary = gc
		secondaryName = "google-speech"
	}
	if primary == nil && secondary == nil {
		log.Fatal("no transcription backend configured (set WHISPER_URL or GOOGLE_SPEECH_API_KEY)")
	}

	var primaryT transcription.Transcriber
	if primary != nil {
		primaryT = primary
	}
	chain := transcription.NewChain(primaryT, secondary, cfg.MinTranscriptChars, cfg.MaxTranscriptChars, log)

	// classification: model gateway when configured, keywords always
	var model classifier.Classifier
	if cfg.ClassifierURL != "" {
		model = classifier.NewModelClassifier(cfg.ClassifierURL, cfg.ClassifierTimeout, log)
	}
	twoTier := classifier.NewTwoTier(model, classifier.NewKeywordClassifier(keywords), cfg.ClassifierThreshold, log)

	normalizer := audio.NewNormalizer(
		time.Duration(cfg.MaxAudioSeconds*float64(time.Second)),
		time.Duration(cfg.MinAudioSeconds*float64(time.Second)),
		cfg.FFmpegPath,
		log,
	)
	extractor := amount.NewExtractor(cfg.AmountMin, cfg.AmountMax)

	ready := pipeline.NewReadiness(primaryName, secondaryName, model != nil)
	pipe := pipeline.New(normalizer, chain, twoTier, extractor, ready, cfg.MaxConcurrentJobs, log)

	// warm up asynchronously; the server answers /readyz honestly meanwhile
	warmCtx, cancelWarm := context.WithTimeout(context.Background(), cfg.ReadyTimeout)
	defer cancelWarm()
	var pinger pipeline.Pinger
	if primary != nil {
		pinger = primary
	}
	go ready.Warm(warmCtx, pinger, secondary != nil, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.New(pipe, cfg.TempDir, cfg.MaxUploadSize, log).Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server terminated")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
