package transcription

import (
	"bytes"
	"encoding/binary"

	"voice-expense-go/internal/types"
)

// encodeWAV packs normalized samples into a 16-bit LINEAR16 mono WAV so both
// backends can consume the same canonical container.
func encodeWAV(audio types.NormalizedAudio) []byte {
	pcm := encodePCM16(audio.Samples)

	var buf bytes.Buffer
	dataLen := uint32(len(pcm))

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, 36+dataLen)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(audio.SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(audio.SampleRate*2)) // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(2))                  // block align
	binary.Write(&buf, binary.LittleEndian, uint16(16))                 // bits per sample

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataLen)
	buf.Write(pcm)

	return buf.Bytes()
}

func encodePCM16(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		v := int16(s * 32767)
		binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
	}
	return out
}
