package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// DefaultGeminiModel is used when GEMINI_MODEL_NAME is unset.
const DefaultGeminiModel = "gemini-1.5-pro-latest"

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/"

// GeminiConfig configures a GeminiClient.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, defaults to the public Gemini API
}

// GeminiClient implements Generator for the Gemini API with the JSON
// response MIME type.
type GeminiClient struct {
	client    *genai.Client
	modelName string
	endpoint  string
}

// NewGeminiClient creates a Gemini generator.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	modelName := cfg.Model
	if modelName == "" {
		log.Debug().Str("model", DefaultGeminiModel).Msg("Gemini model not set, using default")
		modelName = DefaultGeminiModel
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
		endpoint:  fmt.Sprintf("%sv1beta/models/%s:generateContent", baseURL, modelName),
	}, nil
}

// Model returns the model identifier requests are sent to.
func (g *GeminiClient) Model() string {
	return g.modelName
}

// Generate implements Generator.
func (g *GeminiClient) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	if prompt == "" {
		return "", ErrPromptEmpty
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	if systemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	info := callInfo{provider: "gemini", endpoint: g.endpoint, model: g.modelName, started: time.Now()}
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		info.status = geminiStatus(err)
		info.failed = true
		logCall(info)
		return "", upstreamError("gemini", err)
	}
	info.status = http.StatusOK
	logCall(info)

	text := resp.Text()
	if text == "" {
		return "", wrapInvalid(ErrEmptyResponse)
	}
	return text, nil
}

func geminiStatus(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code
	}
	return 0
}
