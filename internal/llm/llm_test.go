package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"osintkit/internal/config"
)

func TestRenderPrompt(t *testing.T) {
	t.Parallel()

	got, err := RenderPrompt("Summarize:\n{{.Context}}", "3 domains")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Summarize:\n3 domains" {
		t.Errorf("got %q", got)
	}
	if _, err := RenderPrompt("{{.Context", "x"); err == nil {
		t.Error("expected parse error")
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		backend string
		want    any
		wantErr error
	}{
		{"ollama", &Ollama{}, nil},
		{"OpenAI", &OpenAI{}, nil},
		{"claude", nil, ErrUnknownBackend},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			d, err := New(config.LLMConfig{Backend: tt.backend}, nil)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			switch tt.want.(type) {
			case *Ollama:
				if _, ok := d.(*Ollama); !ok {
					t.Errorf("got %T", d)
				}
			case *OpenAI:
				if _, ok := d.(*OpenAI); !ok {
					t.Errorf("got %T", d)
				}
			}
		})
	}
}

func TestOllama(t *testing.T) {
	t.Parallel()

	var generated map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/generate":
			_ = json.NewDecoder(r.Body).Decode(&generated)
			_, _ = w.Write([]byte(`{"response":"looks benign"}`))
		case "/api/embeddings":
			_, _ = w.Write([]byte(`{"embedding":[0.1,0.2,0.3]}`))
		case "/api/tags":
			_, _ = w.Write([]byte(`{"models":[{"name":"llama3"},{"name":"mistral"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	o := NewOllama(srv.URL+"/", "llama3", time.Second, srv.Client())
	ctx := context.Background()

	summary, err := o.GenerateSummary(ctx, "ctx", "Analyze {{.Context}}")
	if err != nil || summary != "looks benign" {
		t.Fatalf("summary = %q, %v", summary, err)
	}
	if generated["prompt"] != "Analyze ctx" || generated["model"] != "llama3" || generated["stream"] != false {
		t.Errorf("request = %v", generated)
	}

	vec, err := o.Embed(ctx, "text")
	if err != nil || len(vec) != 3 {
		t.Errorf("embedding = %v, %v", vec, err)
	}

	models, err := o.AvailableModels(ctx)
	if err != nil || len(models) != 2 || models[1] != "mistral" {
		t.Errorf("models = %v, %v", models, err)
	}
}

func TestOllamaHTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	o := NewOllama(srv.URL, "llama3", time.Second, srv.Client())
	if _, err := o.GenerateSummary(context.Background(), "", "{{.Context}}"); err == nil {
		t.Error("expected error")
	}
}

func TestOpenAI(t *testing.T) {
	t.Parallel()

	var auth string
	var chat struct {
		Model    string              `json:"model"`
		Messages []map[string]string `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/chat/completions":
			_ = json.NewDecoder(r.Body).Decode(&chat)
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"two exposed hosts"}}]}`))
		case "/embeddings":
			_, _ = w.Write([]byte(`{"data":[{"embedding":[1,2]}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	o := NewOpenAI(srv.URL, "sk-test", "gpt-4o-mini", "", time.Second, srv.Client())
	ctx := context.Background()

	summary, err := o.GenerateSummary(ctx, "graph", "{{.Context}}")
	if err != nil || summary != "two exposed hosts" {
		t.Fatalf("summary = %q, %v", summary, err)
	}
	if auth != "Bearer sk-test" {
		t.Errorf("authorization = %q", auth)
	}
	if chat.Model != "gpt-4o-mini" || len(chat.Messages) != 2 || chat.Messages[0]["role"] != "system" || chat.Messages[1]["content"] != "graph" {
		t.Errorf("chat request = %+v", chat)
	}

	vec, err := o.Embed(ctx, "graph")
	if err != nil || len(vec) != 2 {
		t.Errorf("embedding = %v, %v", vec, err)
	}

	models, _ := o.AvailableModels(ctx)
	if len(models) != 3 || models[0] != "gpt-4o-mini" {
		t.Errorf("models = %v", models)
	}
}

func TestOpenAIRequiresKey(t *testing.T) {
	t.Parallel()

	o := NewOpenAI("", "", "gpt-4o-mini", "", time.Second, http.DefaultClient)
	if _, err := o.GenerateSummary(context.Background(), "", "{{.Context}}"); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("summary: got %v", err)
	}
	if _, err := o.Embed(context.Background(), ""); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("embed: got %v", err)
	}
}
