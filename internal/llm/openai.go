package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is used when no OpenAI model is configured.
const DefaultOpenAIModel = openai.GPT4o

// OpenAIConfig configures an OpenAIClient.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, defaults to the public API
}

// OpenAIClient implements Generator for the OpenAI chat completions API in
// JSON-object mode.
type OpenAIClient struct {
	client    *openai.Client
	modelName string
	endpoint  string
}

// NewOpenAIClient creates an OpenAI generator.
func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	modelName := cfg.Model
	if modelName == "" {
		log.Warn().Msg("modelName is empty for OpenAIClient, defaulting to gpt-4o")
		modelName = DefaultOpenAIModel
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return &OpenAIClient{
		client:    openai.NewClientWithConfig(config),
		modelName: modelName,
		endpoint:  config.BaseURL + "/chat/completions",
	}, nil
}

// Model returns the model identifier requests are sent to.
func (o *OpenAIClient) Model() string {
	return o.modelName
}

// Generate implements Generator.
func (o *OpenAIClient) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	if prompt == "" {
		return "", ErrPromptEmpty
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if systemInstruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemInstruction,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	req := openai.ChatCompletionRequest{
		Model:    o.modelName,
		Messages: messages,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	info := callInfo{provider: "openai", endpoint: o.endpoint, model: o.modelName, started: time.Now()}
	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		info.status = openAIStatus(err)
		info.failed = true
		logCall(info)
		return "", upstreamError("openai", err)
	}
	info.status = http.StatusOK
	logCall(info)

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", wrapInvalid(ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

// openAIStatus extracts the HTTP status from an SDK error, or 0 when the
// request never got a response.
func openAIStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
