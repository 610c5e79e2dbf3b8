package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os/exec"

	"voice-expense-go/internal/types"
)

// decodeFFmpeg decodes any container ffmpeg understands, letting it do the
// downmix and resample in one pass and emitting raw float32 PCM on stdout.
func (n *Normalizer) decodeFFmpeg(ctx context.Context, path string) ([]float32, error) {
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", path,
		"-f", "f32le",
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", types.SampleRate),
		"pipe:1",
	}
	cmd := exec.CommandContext(ctx, n.ffmpeg, args...)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %v: %s", err, stderr.String())
	}

	raw := out.Bytes()
	samples := make([]float32, len(raw)/4)
	for i := range samples {
		bits := binary.LittleEndian.Uint32(raw[i*4:])
		s := math.Float32frombits(bits)
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		samples[i] = s
	}
	return samples, nil
}
