package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"codebenders/pkg/llm"
	"codebenders/pkg/llm/factory"
	"codebenders/pkg/llm/huggingface"
	"codebenders/pkg/llm/ollama"
	"codebenders/pkg/llm/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	opts := llm.Apply(llm.Options{Temperature: 0.7, Model: "llama3"}, llm.WithMaxTokens(100), llm.WithModel("mistral"))
	assert.Equal(t, llm.Options{Temperature: 0.7, MaxTokens: 100, Model: "mistral"}, opts)
}

func TestFactory(t *testing.T) {
	tests := []struct {
		provider string
		want     interface{}
	}{
		{provider: "ollama", want: &ollama.OllamaProvider{}},
		{provider: "huggingface", want: &huggingface.HuggingFaceProvider{}},
		{provider: "template", want: template.Provider{}},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			p, err := factory.NewLLMProvider(tt.provider, "m", "", "")
			require.NoError(t, err)
			assert.IsType(t, tt.want, p)
		})
	}

	_, err := factory.NewLLMProvider("gpt-banana", "m", "", "")
	assert.Error(t, err)
}

func TestOllamaChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "llama3", body["model"])
		assert.Equal(t, false, body["stream"])
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"<p>hi</p>"},"done":true}`))
	}))
	defer srv.Close()

	out, err := ollama.NewOllamaProvider(srv.URL+"/", "llama3").Generate(context.Background(), "say hi")
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", out)
}

func TestOllamaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model \"llama3\" not found"}`))
	}))
	defer srv.Close()

	_, err := ollama.NewOllamaProvider(srv.URL, "llama3").Generate(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestHuggingFaceChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		var body struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if assert.Len(t, body.Messages, 1) {
			assert.Equal(t, "user", body.Messages[0].Role)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"done"}}]}`))
	}))
	defer srv.Close()

	out, err := huggingface.NewHuggingFaceProvider("key", srv.URL, "m").Generate(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "done", out)
}

func TestTemplateProvider(t *testing.T) {
	out, err := template.NewProvider().Generate(context.Background(), "Checkout page\n<b>rules</b>")
	require.NoError(t, err)
	assert.Contains(t, out, "<p>Checkout page</p>")
	assert.Contains(t, out, "<p>&lt;b&gt;rules&lt;/b&gt;</p>")
	assert.Contains(t, out, "```html")
}
