package transcriber

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscribeUploadsMultipartAudio(t *testing.T) {
	t.Parallel()

	var gotModel, gotLanguage string
	var gotAudio []byte
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transcribe", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		gotModel = r.FormValue("model")
		gotLanguage = r.FormValue("language")

		file, _, err := r.FormFile("audio")
		require.NoError(t, err)
		defer file.Close()
		buf := make([]byte, 16)
		n, _ := file.Read(buf)
		gotAudio = buf[:n]

		rw.Header().Set("Content-Type", "application/json")
		rw.Write([]byte(`{"text": "  hello world  "}`))
	}))
	defer srv.Close()

	w := NewWhisper(Config{URL: srv.URL, Model: "small", Language: "en"})
	text, err := w.Transcribe(context.Background(), []byte("RIFFdata"))
	require.NoError(t, err)

	assert.Equal(t, "hello world", text, "response text is trimmed")
	assert.Equal(t, "small", gotModel)
	assert.Equal(t, "en", gotLanguage)
	assert.Equal(t, []byte("RIFFdata"), gotAudio)
}

func TestTranscribeSilenceYieldsEmptyString(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		rw.Write([]byte(`{"text": ""}`))
	}))
	defer srv.Close()

	w := NewWhisper(Config{URL: srv.URL})
	text, err := w.Transcribe(context.Background(), []byte("RIFF"))
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestTranscribeReportsServerErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		http.Error(rw, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	w := NewWhisper(Config{URL: srv.URL})
	_, err := w.Transcribe(context.Background(), []byte("RIFF"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestTranscribeUnreachableSidecar(t *testing.T) {
	t.Parallel()

	w := NewWhisper(Config{URL: "http://127.0.0.1:1"})
	_, err := w.Transcribe(context.Background(), []byte("RIFF"))
	require.Error(t, err)
}

func TestIsAvailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			rw.WriteHeader(http.StatusOK)
			return
		}
		rw.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	assert.True(t, NewWhisper(Config{URL: srv.URL}).IsAvailable(context.Background()))
	assert.False(t, NewWhisper(Config{URL: "http://127.0.0.1:1"}).IsAvailable(context.Background()))
}

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	w := NewWhisper(Config{})
	assert.Equal(t, defaultWhisperURL, w.cfg.URL)
	assert.Equal(t, defaultWhisperModel, w.cfg.Model)
	assert.Equal(t, defaultWhisperTimeout, w.cfg.Timeout)
}
