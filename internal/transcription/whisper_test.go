package transcription

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-expense-go/internal/logger"
)

func TestWhisperClient(t *testing.T) {
	log := logger.New()

	t.Run("transcribes deterministic request", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/inference", r.URL.Path)
			require.NoError(t, r.ParseMultipartForm(10<<20))
			assert.Equal(t, "0", r.FormValue("temperature"))
			assert.Equal(t, "en", r.FormValue("language"))

			f, hdr, err := r.FormFile("file")
			require.NoError(t, err)
			defer f.Close()
			assert.Equal(t, "audio.wav", hdr.Filename)
			assert.Greater(t, hdr.Size, int64(44), "wav header plus samples expected")

			json.NewEncoder(w).Encode(whisperResponse{Text: " I spent 50 dollars on groceries "})
		}))
		defer srv.Close()

		c := NewWhisperClient(srv.URL, time.Second, log)
		text, err := c.Transcribe(context.Background(), testAudio())
		require.NoError(t, err)
		assert.Equal(t, " I spent 50 dollars on groceries ", text, "trimming is the chain's job")
	})

	t.Run("server error surfaces", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model loading", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		c := NewWhisperClient(srv.URL, time.Second, log)
		_, err := c.Transcribe(context.Background(), testAudio())
		assert.ErrorContains(t, err, "whisper status 503")
	})

	t.Run("error field surfaces", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(whisperResponse{Error: "no speech detected"})
		}))
		defer srv.Close()

		c := NewWhisperClient(srv.URL, time.Second, log)
		_, err := c.Transcribe(context.Background(), testAudio())
		assert.ErrorContains(t, err, "no speech detected")
	})

	t.Run("ping reachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r) // any HTTP answer counts as reachable
		}))
		defer srv.Close()

		c := NewWhisperClient(srv.URL, time.Second, log)
		assert.NoError(t, c.Ping(context.Background()))
	})

	t.Run("ping unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		c := NewWhisperClient(srv.URL, time.Second, log)
		assert.Error(t, c.Ping(context.Background()))
	})
}

func TestEncodeWAV(t *testing.T) {
	audio := testAudio()
	wav := encodeWAV(audio)

	require.Greater(t, len(wav), 44)
	assert.Equal(t, "RIFF", string(wav[0:4]))
	assert.Equal(t, "WAVE", string(wav[8:12]))
	assert.Equal(t, len(audio.Samples)*2+44, len(wav), "16-bit mono payload plus header")
}
