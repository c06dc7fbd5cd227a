package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultOpenAIURL      = "https://api.openai.com/v1"
	DefaultEmbeddingModel = "text-embedding-3-small"

	systemPrompt = "You are an expert OSINT analyst."
)

// OpenAI talks to the OpenAI REST API or a compatible server.
type OpenAI struct {
	baseURL        string
	apiKey         string
	model          string
	embeddingModel string
	timeout        time.Duration
	client         *http.Client
}

func NewOpenAI(baseURL, apiKey, model, embeddingModel string, timeout time.Duration, client *http.Client) *OpenAI {
	if baseURL == "" {
		baseURL = DefaultOpenAIURL
	}
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}
	return &OpenAI{
		baseURL:        strings.TrimRight(baseURL, "/"),
		apiKey:         apiKey,
		model:          model,
		embeddingModel: embeddingModel,
		timeout:        timeout,
		client:         client,
	}
}

func (o *OpenAI) header() http.Header {
	return http.Header{"Authorization": {"Bearer " + o.apiKey}}
}

func (o *OpenAI) GenerateSummary(ctx context.Context, reportContext, promptTemplate string) (string, error) {
	if o.apiKey == "" {
		return "", ErrNoAPIKey
	}
	prompt, err := RenderPrompt(promptTemplate, reportContext)
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	in := map[string]any{
		"model": o.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": prompt},
		},
	}
	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := doJSON(ctx, o.client, http.MethodPost, o.baseURL+"/chat/completions", o.header(), in, &out); err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", nil
	}
	return out.Choices[0].Message.Content, nil
}

func (o *OpenAI) Embed(ctx context.Context, text string) ([]float64, error) {
	if o.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	ctx, cancel := context.WithTimeout(ctx, EmbedTimeout)
	defer cancel()

	var out struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	in := map[string]any{"model": o.embeddingModel, "input": text}
	if err := doJSON(ctx, o.client, http.MethodPost, o.baseURL+"/embeddings", o.header(), in, &out); err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(out.Data) == 0 {
		return nil, errors.New("openai embeddings: empty response")
	}
	return out.Data[0].Embedding, nil
}

// AvailableModels is a fixed list; listing the account's models needs more
// scope than a chat key usually has.
func (o *OpenAI) AvailableModels(context.Context) ([]string, error) {
	models := []string{o.model}
	for _, m := range []string{"gpt-4o", "gpt-4o-mini", "gpt-3.5-turbo"} {
		if m != o.model {
			models = append(models, m)
		}
	}
	return models, nil
}
