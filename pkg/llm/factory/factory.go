package factory

import (
	"fmt"

	"ai-legalassist-core/pkg/llm"
	"ai-legalassist-core/pkg/llm/ollama"
)

// ProviderOllama is the only provider the assistant ships with. Tool
// execution assumes a locally reachable model so drafting works offline.
const ProviderOllama = "ollama"

const defaultOllamaBaseURL = "http://localhost:11434"

func NewLLMProvider(providerType, modelName, baseURL string) (llm.LLMProvider, error) {
	if modelName == "" {
		return nil, fmt.Errorf("llm model name is required")
	}
	switch providerType {
	case ProviderOllama:
		if baseURL == "" {
			baseURL = defaultOllamaBaseURL
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
