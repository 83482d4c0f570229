package client

import (
	"context"
	"github.com/Netcracker/qubership-web-audit-service/exception"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	log "github.com/sirupsen/logrus"
	"time"
)

func NewOpenaiClient(apiKey string, model string, proxy string) (LLMClient, error) {

	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	} else {
		return nil, exception.ConfigurationError{Message: MissingApiKeyMsg}
	}

	if proxy != "" {
		opts = append(opts, option.WithBaseURL(proxy))
	}

	var openAIModel openai.ChatModel
	if model != "" {
		openAIModel = model
	} else {
		openAIModel = openai.ChatModelGPT5
	}

	// exactly one request per analysis
	opts = append(opts, option.WithHTTPClient(newHttpClient()), option.WithMaxRetries(0))

	return &openaiClientImpl{
		client: openai.NewClient(opts...),
		model:  openAIModel,
	}, nil
}

type openaiClientImpl struct {
	client openai.Client
	model  openai.ChatModel
}

func (l openaiClientImpl) GenerateAudit(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	messages := []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	}

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:   "web_audit_result",
		Schema: AuditResultResponseSchema,
		Strict: openai.Bool(true),
	}

	log.Infof("run web audit with openai client, model %s", l.model)

	chat, err := l.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: messages,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Model: l.model,
	})
	log.Infof("finished web audit with openai client, it took %dms", time.Since(start).Milliseconds())
	if err != nil {
		return "", err
	}
	if len(chat.Choices) == 0 {
		return "", nil
	}

	return chat.Choices[0].Message.Content, nil
}
