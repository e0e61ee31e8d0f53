package completion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Auth string
	Path string
	Body map[string]any
}

func newCompletionServer(t *testing.T, status int, body string) (*httptest.Server, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Auth = r.Header.Get("Authorization")
		rec.Path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&rec.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestOpenAIClientComplete(t *testing.T) {
	srv, rec := newCompletionServer(t, http.StatusOK, `{
		"id": "cmpl-1",
		"object": "text_completion",
		"created": 1,
		"model": "text-davinci-002",
		"choices": [{"index": 0, "text": "  Hi there!  ", "finish_reason": "stop", "logprobs": null}]
	}`)

	client := NewOpenAIClient(OpenAIOptions{BaseURL: srv.URL + "/v1"})
	text, err := client.Complete(context.Background(), Request{
		APIKey:      "sk-test",
		Model:       "text-davinci-002",
		Prompt:      "Hello",
		MaxTokens:   60,
		Temperature: 0.5,
	})
	require.NoError(t, err)

	assert.Equal(t, "  Hi there!  ", text)
	assert.Equal(t, "Bearer sk-test", rec.Auth)
	assert.Equal(t, "/v1/completions", rec.Path)
	assert.Equal(t, "text-davinci-002", rec.Body["model"])
	assert.Equal(t, "Hello", rec.Body["prompt"])
	assert.EqualValues(t, 60, rec.Body["max_tokens"])
	assert.EqualValues(t, 0.5, rec.Body["temperature"])
}

func TestOpenAIClientRejectedCredentialIsAPIError(t *testing.T) {
	srv, _ := newCompletionServer(t, http.StatusUnauthorized, `{
		"error": {"message": "Incorrect API key provided", "type": "invalid_request_error", "code": "invalid_api_key", "param": null}
	}`)

	client := NewOpenAIClient(OpenAIOptions{BaseURL: srv.URL + "/v1"})
	_, err := client.Complete(context.Background(), Request{APIKey: "sk-bad", Model: "m", Prompt: "p", MaxTokens: 1})
	require.Error(t, err)
	require.True(t, IsAPIError(err))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Incorrect API key provided", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "401")
}

func TestOpenAIClientNoChoices(t *testing.T) {
	srv, _ := newCompletionServer(t, http.StatusOK, `{"id": "cmpl-2", "object": "text_completion", "created": 1, "model": "m", "choices": []}`)

	client := NewOpenAIClient(OpenAIOptions{BaseURL: srv.URL + "/v1"})
	_, err := client.Complete(context.Background(), Request{APIKey: "sk-test", Model: "m", Prompt: "p", MaxTokens: 1})
	assert.ErrorIs(t, err, ErrNoChoices)
	assert.False(t, IsAPIError(err))
}

func TestOpenAIClientTransportFailureIsNotAPIError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL + "/v1"
	srv.Close()

	client := NewOpenAIClient(OpenAIOptions{BaseURL: baseURL})
	_, err := client.Complete(context.Background(), Request{APIKey: "sk-test", Model: "m", Prompt: "p", MaxTokens: 1})
	require.Error(t, err)
	assert.False(t, IsAPIError(err))
}

func TestAPIErrorFormatting(t *testing.T) {
	inner := errors.New("raw")
	err := &APIError{StatusCode: 403, Err: inner}
	assert.Equal(t, "status 403", err.Error())
	assert.ErrorIs(t, err, inner)

	wrapped := errors.Join(errors.New("context"), &APIError{StatusCode: 401, Message: "nope"})
	assert.True(t, IsAPIError(wrapped))
	assert.False(t, IsAPIError(errors.New("timeout")))
}
