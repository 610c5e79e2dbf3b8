// Package audio turns an uploaded clip of any common container into the
// canonical inference format: mono float32 PCM at 16 kHz, samples in [-1, 1].
package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"voice-expense-go/internal/logger"
	"voice-expense-go/internal/types"
)

const (
	// DefaultMaxDuration bounds inference cost. Longer clips are clipped,
	// not rejected.
	DefaultMaxDuration = 30 * time.Second
	// DefaultMinDuration: anything shorter cannot carry an utterance.
	DefaultMinDuration = 100 * time.Millisecond
)

var riffMagic = []byte("RIFF")

type Normalizer struct {
	maxDur time.Duration
	minDur time.Duration
	ffmpeg string
	log    *logger.Logger
}

func NewNormalizer(maxDur, minDur time.Duration, ffmpegPath string, log *logger.Logger) *Normalizer {
	if maxDur <= 0 {
		maxDur = DefaultMaxDuration
	}
	if minDur <= 0 {
		minDur = DefaultMinDuration
	}
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Normalizer{maxDur: maxDur, minDur: minDur, ffmpeg: ffmpegPath, log: log.WithComponent("normalizer")}
}

// Normalize decodes, downmixes, resamples and truncates the clip. Failures
// are deterministic for a given file, so there is no retry path; anything
// that cannot become usable PCM is types.ErrInvalidAudio.
func (n *Normalizer) Normalize(ctx context.Context, clip types.AudioClip) (types.NormalizedAudio, error) {
	info, err := os.Stat(clip.Path)
	if err != nil {
		return types.NormalizedAudio{}, fmt.Errorf("%w: %s", types.ErrInvalidAudio, "file not found")
	}
	if info.Size() == 0 {
		return types.NormalizedAudio{}, fmt.Errorf("%w: %s", types.ErrInvalidAudio, "file is empty")
	}

	samples, err := n.decode(ctx, clip.Path)
	if err != nil {
		n.log.WithError(err).Warn("decode failed")
		return types.NormalizedAudio{}, fmt.Errorf("%w: decode failed", types.ErrInvalidAudio)
	}

	maxSamples := int(n.maxDur.Seconds() * types.SampleRate)
	if len(samples) > maxSamples {
		n.log.WithField("clipped_samples", len(samples)-maxSamples).Debug("truncating long clip")
		samples = samples[:maxSamples]
	}

	minSamples := int(n.minDur.Seconds() * types.SampleRate)
	if len(samples) < minSamples {
		return types.NormalizedAudio{}, fmt.Errorf("%w: clip shorter than %s", types.ErrInvalidAudio, n.minDur)
	}

	return types.NormalizedAudio{Samples: samples, SampleRate: types.SampleRate}, nil
}

// decode picks the native WAV path for RIFF files and shells out to ffmpeg
// for everything else.
func (n *Normalizer) decode(ctx context.Context, path string) ([]float32, error) {
	head := make([]byte, 4)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	_, _ = f.Read(head)
	f.Close()

	if bytes.Equal(head, riffMagic) {
		samples, err := decodeWAV(path)
		if err == nil {
			return samples, nil
		}
		n.log.WithError(err).Debug("native wav decode failed, trying ffmpeg")
	}
	return n.decodeFFmpeg(ctx, path)
}

// downmix averages interleaved channels into mono.
func downmix(interleaved []float32, channels int) []float32 {
	if channels <= 1 {
		return interleaved
	}
	frames := len(interleaved) / channels
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for c := 0; c < channels; c++ {
			sum += interleaved[i*channels+c]
		}
		out[i] = sum / float32(channels)
	}
	return out
}

// resample does linear interpolation from srcRate to types.SampleRate.
func resample(samples []float32, srcRate int) []float32 {
	if srcRate == types.SampleRate || len(samples) == 0 {
		return samples
	}
	ratio := float64(srcRate) / float64(types.SampleRate)
	outLen := int(float64(len(samples)) / ratio)
	out := make([]float32, outLen)
	for i := range out {
		pos := float64(i) * ratio
		j := int(pos)
		if j >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := float32(pos - float64(j))
		out[i] = samples[j]*(1-frac) + samples[j+1]*frac
	}
	return out
}
