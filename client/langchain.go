package client

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/Netcracker/qubership-web-audit-service/exception"
	log "github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	lcopenai "github.com/tmc/langchaingo/llms/openai"
	"time"
)

// NewLangchainClient talks to OpenAI compatible backends that only support plain JSON mode.
// The response schema is appended to the prompt instead of being enforced by the backend.
func NewLangchainClient(apiKey string, model string, proxy string) (LLMClient, error) {
	if apiKey == "" {
		return nil, exception.ConfigurationError{Message: MissingApiKeyMsg}
	}
	opts := []lcopenai.Option{lcopenai.WithToken(apiKey)}
	if model != "" {
		opts = append(opts, lcopenai.WithModel(model))
	}
	if proxy != "" {
		opts = append(opts, lcopenai.WithBaseURL(proxy))
	}
	llm, err := lcopenai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create langchain llm: %w", err)
	}

	schema, err := json.Marshal(AuditResultResponseSchema)
	if err != nil {
		return nil, err
	}

	return &langchainClientImpl{llm: llm, schema: string(schema)}, nil
}

type langchainClientImpl struct {
	llm    llms.Model
	schema string
}

func (l langchainClientImpl) GenerateAudit(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	log.Infof("run web audit with langchain client")

	fullPrompt := prompt + "\n\nJSON schema của kết quả (bắt buộc tuân thủ):\n" + l.schema
	content, err := llms.GenerateFromSinglePrompt(ctx, l.llm, fullPrompt, llms.WithJSONMode())
	log.Infof("finished web audit with langchain client, it took %dms", time.Since(start).Milliseconds())
	if err != nil {
		return "", err
	}
	return content, nil
}
