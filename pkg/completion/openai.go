package completion

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient implements Completer against the OpenAI completions endpoint.
type OpenAIClient struct {
	client openai.Client
}

// OpenAIOptions configures the underlying SDK client.
type OpenAIOptions struct {
	BaseURL    string
	MaxRetries int
}

// NewOpenAIClient builds a client. The API key is supplied per request so a
// session can swap credentials without rebuilding the client.
func NewOpenAIClient(opts OpenAIOptions) *OpenAIClient {
	reqOpts := []option.RequestOption{option.WithMaxRetries(opts.MaxRetries)}
	if baseURL := strings.TrimSpace(opts.BaseURL); baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	return &OpenAIClient{client: openai.NewClient(reqOpts...)}
}

// Complete performs one completion request.
func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	params := openai.CompletionNewParams{
		Model:       openai.CompletionNewParamsModel(req.Model),
		Prompt:      openai.CompletionNewParamsPromptUnion{OfString: openai.String(req.Prompt)},
		MaxTokens:   openai.Int(req.MaxTokens),
		Temperature: openai.Float(req.Temperature),
	}

	resp, err := c.client.Completions.New(ctx, params, option.WithAPIKey(req.APIKey))
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Text, nil
}

func classify(err error) error {
	var sdkErr *openai.Error
	if !errors.As(err, &sdkErr) {
		return err
	}
	msg := strings.TrimSpace(sdkErr.Message)
	if msg == "" {
		msg = strings.TrimSpace(sdkErr.RawJSON())
	}
	return &APIError{StatusCode: sdkErr.StatusCode, Message: msg, Err: err}
}
