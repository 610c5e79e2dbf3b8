package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"

	"voice-expense-go/internal/types"
)

// decodeWAV reads a RIFF/WAVE file natively, scaling samples by the source
// bit depth, downmixing and resampling to the canonical format.
func decodeWAV(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav decode: %w", err)
	}
	if buf == nil || buf.Format == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("wav decode: no samples")
	}

	bitDepth := dec.BitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float32(int(1) << (bitDepth - 1))
	interleaved := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		s := float32(v) / scale
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		interleaved[i] = s
	}

	mono := downmix(interleaved, buf.Format.NumChannels)
	if buf.Format.SampleRate != types.SampleRate {
		mono = resample(mono, buf.Format.SampleRate)
	}
	return mono, nil
}
