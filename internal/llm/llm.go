package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/template"
	"time"

	"osintkit/internal/config"
)

// Driver is the contract every LLM backend implements.
type Driver interface {
	GenerateSummary(ctx context.Context, reportContext, promptTemplate string) (string, error)
	Embed(ctx context.Context, text string) ([]float64, error)
	AvailableModels(ctx context.Context) ([]string, error)
}

const (
	DefaultSummaryTimeout = 120 * time.Second
	EmbedTimeout          = 30 * time.Second
)

var (
	ErrUnknownBackend = errors.New("unknown LLM backend")
	ErrNoAPIKey       = errors.New("OpenAI API key not configured")
)

// New picks the driver named by cfg.Backend.
func New(cfg config.LLMConfig, client *http.Client) (Driver, error) {
	if client == nil {
		client = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultSummaryTimeout
	}
	switch strings.ToLower(cfg.Backend) {
	case "ollama":
		return NewOllama(cfg.OllamaBaseURL, cfg.OllamaModel, timeout, client), nil
	case "openai":
		return NewOpenAI(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIEmbeddingModel, timeout, client), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
}

// RenderPrompt executes promptTemplate with the report context available as
// {{.Context}}.
func RenderPrompt(promptTemplate, reportContext string) (string, error) {
	t, err := template.New("prompt").Option("missingkey=error").Parse(promptTemplate)
	if err != nil {
		return "", fmt.Errorf("parse prompt template: %w", err)
	}
	var b strings.Builder
	if err := t.Execute(&b, struct{ Context string }{reportContext}); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return b.String(), nil
}

func doJSON(ctx context.Context, client *http.Client, method, url string, header http.Header, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("HTTP error: %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
