package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Ollama talks to a local Ollama server.
type Ollama struct {
	baseURL string
	model   string
	timeout time.Duration
	client  *http.Client
}

func NewOllama(baseURL, model string, timeout time.Duration, client *http.Client) *Ollama {
	return &Ollama{baseURL: strings.TrimRight(baseURL, "/"), model: model, timeout: timeout, client: client}
}

func (o *Ollama) GenerateSummary(ctx context.Context, reportContext, promptTemplate string) (string, error) {
	prompt, err := RenderPrompt(promptTemplate, reportContext)
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var out struct {
		Response string `json:"response"`
	}
	in := map[string]any{"model": o.model, "prompt": prompt, "stream": false}
	if err := doJSON(ctx, o.client, http.MethodPost, o.baseURL+"/api/generate", nil, in, &out); err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return out.Response, nil
}

func (o *Ollama) Embed(ctx context.Context, text string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, EmbedTimeout)
	defer cancel()

	var out struct {
		Embedding []float64 `json:"embedding"`
	}
	in := map[string]any{"model": o.model, "prompt": text}
	if err := doJSON(ctx, o.client, http.MethodPost, o.baseURL+"/api/embeddings", nil, in, &out); err != nil {
		return nil, fmt.Errorf("ollama embeddings: %w", err)
	}
	return out.Embedding, nil
}

func (o *Ollama) AvailableModels(ctx context.Context) ([]string, error) {
	var out struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := doJSON(ctx, o.client, http.MethodGet, o.baseURL+"/api/tags", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("ollama tags: %w", err)
	}
	names := make([]string, 0, len(out.Models))
	for _, m := range out.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
