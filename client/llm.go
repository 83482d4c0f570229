package client

import (
	"context"
	"fmt"
	"github.com/Netcracker/qubership-web-audit-service/exception"
	log "github.com/sirupsen/logrus"
	"net/http"
	"time"
)

// LLMClient asks the external model for a web audit and returns the raw JSON text.
// An empty string means the model answered without a payload.
type LLMClient interface {
	GenerateAudit(ctx context.Context, prompt string) (string, error)
}

const (
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderLangchain = "langchain"
)

const MissingApiKeyMsg = "API Key chưa được cấu hình."

func NewLLMClient(provider string, apiKey string, model string, proxy string) (LLMClient, error) {
	if apiKey == "" {
		return nil, exception.ConfigurationError{Message: MissingApiKeyMsg}
	}
	log.Infof("LLM provider = %s", providerOrDefault(provider))
	switch provider {
	case "", ProviderOpenAI:
		return NewOpenaiClient(apiKey, model, proxy)
	case ProviderGemini:
		return NewGeminiClient(apiKey, model, proxy)
	case ProviderLangchain:
		return NewLangchainClient(apiKey, model, proxy)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}

func providerOrDefault(provider string) string {
	if provider == "" {
		return ProviderOpenAI
	}
	return provider
}

// The analysis call is a single opaque request, so no client side timeout is imposed here.
func newHttpClient() *http.Client {
	tr := http.Transport{
		TLSHandshakeTimeout:   time.Second * 30,
		IdleConnTimeout:       time.Second * 90,
		ExpectContinueTimeout: time.Second * 1,
	}
	return &http.Client{Transport: &tr}
}
