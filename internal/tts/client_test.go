package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yichen/tinyhabits/internal/exercise"
)

func TestRateFor_Bands(t *testing.T) {
	tests := []struct {
		level exercise.Level
		want  SpeechRate
	}{
		{exercise.LevelBR200, -200},
		{exercise.Level200500, -100},
		{exercise.Level500800, 0},
		{exercise.Level700850, 25},
		{exercise.Level8001000, 50},
		{exercise.Level1000Up, 100},
		{exercise.Level("bogus"), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RateFor(tt.level), "level %s", tt.level)
	}
}

func TestSynthesize(t *testing.T) {
	var got synthesizeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(synthesizeResponse{AudioURL: "https://cdn.example/a.mp3"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithToken("secret"))
	url, err := c.Synthesize(context.Background(), "A short script.", exercise.LevelBR200)
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example/a.mp3", url)
	assert.Equal(t, "A short script.", got.Text)
	assert.Equal(t, -200, got.SpeechRate)
}

func TestSynthesize_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Synthesize(context.Background(), "x", exercise.DefaultLevel)
	assert.ErrorContains(t, err, "503")
}

func TestSynthesize_MissingAudioURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Synthesize(context.Background(), "x", exercise.DefaultLevel)
	assert.ErrorContains(t, err, "audio_url")
}
