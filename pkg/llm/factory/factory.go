package factory

import (
	"fmt"

	"codebenders/pkg/llm"
	"codebenders/pkg/llm/huggingface"
	"codebenders/pkg/llm/ollama"
	"codebenders/pkg/llm/template"
)

func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "huggingface", "openai":
		return huggingface.NewHuggingFaceProvider(apiKey, baseURL, modelName), nil
	case "template", "":
		return template.NewProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
