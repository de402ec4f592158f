package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const (
	// DefaultOpenAIModel is used when the config leaves the model empty.
	DefaultOpenAIModel = "gpt-4o-mini"
	// DefaultOpenAIBaseURL is the public OpenAI API.
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
)

var errNoChoices = errors.New("no choices in response")

// openAIClient implements LLMClient over any OpenAI-compatible chat
// completions API.
type openAIClient struct {
	cfg      LLMConfig
	client   openai.Client
	model    string
	observer Observer
}

// NewOpenAIClient creates an LLMClient for the OpenAI chat completions API.
func NewOpenAIClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(&http.Client{}),
		option.WithMaxRetries(0),
	)
	return &openAIClient{cfg: cfg, client: client, model: model, observer: observer}
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp, maxTok, timeout := callParams(c.cfg, req)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(req.UserPrompt))

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(c.model),
		Messages:    messages,
		Temperature: openai.Float(temp),
	}
	if maxTok > 0 {
		params.MaxTokens = openai.Int(int64(maxTok))
	}
	if req.JSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	return withRetries(ctx, req.Task, c.model, c.cfg.MaxRetries, c.observer,
		func(ctx context.Context) (string, string, error) {
			resp, err := c.client.Chat.Completions.New(ctx, params)
			if err != nil {
				return "", "", err
			}
			if len(resp.Choices) == 0 {
				return "", "", errNoChoices
			}
			return resp.Choices[0].Message.Content, resp.Model, nil
		})
}

// Available lists models as a cheap authenticated probe.
func (c *openAIClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := c.client.Models.List(ctx)
	return err == nil
}
