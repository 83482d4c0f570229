package client

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/Netcracker/qubership-web-audit-service/exception"
	log "github.com/sirupsen/logrus"
	"gopkg.in/resty.v1"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultGeminiBaseUrl = "https://generativelanguage.googleapis.com/v1beta"
const defaultGeminiModel = "gemini-3-flash-preview"

var GeminiAuditResponseSchema = ToGeminiSchema(AuditResultResponseSchema)

func NewGeminiClient(apiKey string, model string, proxy string) (LLMClient, error) {
	if apiKey == "" {
		return nil, exception.ConfigurationError{Message: MissingApiKeyMsg}
	}
	baseUrl := defaultGeminiBaseUrl
	if proxy != "" {
		baseUrl = strings.TrimSuffix(proxy, "/")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client := resty.NewWithClient(newHttpClient())
	client.SetRetryCount(0)

	return &geminiClientImpl{
		client:  client,
		apiKey:  apiKey,
		model:   model,
		baseUrl: baseUrl,
	}, nil
}

type geminiClientImpl struct {
	client  *resty.Client
	apiKey  string
	model   string
	baseUrl string
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string                 `json:"responseMimeType"`
	ResponseSchema   map[string]interface{} `json:"responseSchema"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (g geminiClientImpl) GenerateAudit(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	body := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   GeminiAuditResponseSchema,
		},
	}

	log.Infof("run web audit with gemini client, model %s", g.model)

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", g.apiKey).
		SetBody(body).
		Post(fmt.Sprintf("%s/models/%s:generateContent", g.baseUrl, url.PathEscape(g.model)))
	log.Infof("finished web audit with gemini client, it took %dms", time.Since(start).Milliseconds())
	if err != nil {
		return "", fmt.Errorf("failed to call gemini: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("gemini returned status code %d: %s", resp.StatusCode(), geminiErrorMessage(resp.Body()))
	}

	var result geminiResponse
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to decode gemini response: %w", err)
	}
	if len(result.Candidates) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

func geminiErrorMessage(body []byte) string {
	var errResp geminiErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	return string(body)
}
