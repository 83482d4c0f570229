package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/Netcracker/qubership-web-audit-service/client"
	"github.com/Netcracker/qubership-web-audit-service/exception"
	"github.com/Netcracker/qubership-web-audit-service/view"
	log "github.com/sirupsen/logrus"
)

const EmptyResponseMsg = "HiHi AI đang bận, thử lại nhé!"

type AnalysisService interface {
	Analyze(ctx context.Context, url string, device view.Device, location view.Location) (*view.AuditResult, error)
}

// NewAnalysisService accepts a nil client: the credential may be missing at startup,
// every analysis then fails with a ConfigurationError.
func NewAnalysisService(llmClient client.LLMClient, timeout time.Duration) AnalysisService {
	return &analysisServiceImpl{
		llmClient: llmClient,
		timeout:   timeout,
	}
}

type analysisServiceImpl struct {
	llmClient client.LLMClient
	timeout   time.Duration
}

func (a analysisServiceImpl) Analyze(ctx context.Context, url string, device view.Device, location view.Location) (*view.AuditResult, error) {
	if a.llmClient == nil {
		return nil, exception.ConfigurationError{Message: client.MissingApiKeyMsg}
	}
	if strings.TrimSpace(url) == "" {
		return nil, exception.ErrEmptyURL
	}
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	log.Infof("Start web audit for %s (device=%s, location=%s)", url, device, location)

	content, err := a.llmClient.GenerateAudit(ctx, BuildAuditPrompt(url, device, location))
	if err != nil {
		log.Errorf("Web audit for %s failed: %v", url, err)
		return nil, exception.UpstreamError{Message: err.Error(), Cause: err}
	}
	if strings.TrimSpace(content) == "" {
		log.Errorf("Web audit for %s returned empty response", url)
		return nil, exception.UpstreamError{Message: EmptyResponseMsg}
	}

	var result view.AuditResult
	if err = json.Unmarshal([]byte(stripCodeFence(content)), &result); err != nil {
		log.Errorf("Failed to parse web audit for %s: %v", url, err)
		return nil, exception.ParseError{Message: "Không đọc được kết quả phân tích: " + err.Error(), Cause: err}
	}
	if err = ValidateAuditResult(&result); err != nil {
		log.Errorf("Web audit for %s violates the result contract: %v", url, err)
		return nil, err
	}

	log.Infof("Web audit for %s finished with rank %s, it took %dms", url, result.HihiRank.Tier, time.Since(start).Milliseconds())
	return &result, nil
}

// stripCodeFence removes a single surrounding ```json ... ``` block if present.
func stripCodeFence(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "{[") {
		s = s[nl+1:]
	} else if nl < 0 {
		s = strings.TrimLeftFunc(s, func(r rune) bool {
			return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
		})
	}
	return strings.TrimSpace(s)
}
