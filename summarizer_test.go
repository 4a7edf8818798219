package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLLMSettings() LLMSettings {
	return LLMSettings{Model: "gemini-2.0-flash", MaxTokens: 100, Temperature: 0.3}
}

func TestSummarizeSuccess(t *testing.T) {
	var gotPath, gotAPIKey string
	var gotReq geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"ログインバグを修正する\n"}]}}]}`))
	}))
	defer srv.Close()

	s := &Summarizer{APIKey: "gm-key", LLM: testLLMSettings(), BaseURL: srv.URL}
	issue, err := s.Summarize(context.Background(), "fix the login bug")
	require.NoError(t, err)

	assert.Empty(t, issue.ID)
	assert.Equal(t, "ログインバグを修正する", issue.Title)
	// The description carries the original text unchanged.
	assert.Equal(t, "fix the login bug", issue.Description)

	assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", gotPath)
	assert.Equal(t, "gm-key", gotAPIKey)
	assert.Equal(t, 100, gotReq.GenerationConfig.MaxOutputTokens)
	assert.Equal(t, 0.3, gotReq.GenerationConfig.Temperature)
	require.NotNil(t, gotReq.SystemInstruction)
	require.Len(t, gotReq.Contents, 1)
	assert.Equal(t, "fix the login bug", gotReq.Contents[0].Parts[0].Text)
}

func TestSummarizeHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := &Summarizer{APIKey: "gm-key", LLM: testLLMSettings(), BaseURL: srv.URL}
	_, err := s.Summarize(context.Background(), "fix the login bug")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestSummarizeNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	s := &Summarizer{APIKey: "gm-key", LLM: testLLMSettings(), BaseURL: srv.URL}
	_, err := s.Summarize(context.Background(), "fix the login bug")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestSummarizeEmptyTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  \n"}]}}]}`))
	}))
	defer srv.Close()

	s := &Summarizer{APIKey: "gm-key", LLM: testLLMSettings(), BaseURL: srv.URL}
	_, err := s.Summarize(context.Background(), "fix the login bug")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no title text")
}
