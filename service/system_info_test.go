package service

import (
	"testing"
	"time"
)

func TestSystemInfoDefaults(t *testing.T) {
	for _, name := range []string{LISTEN_ADDRESS, LLM_PROVIDER, LLM_API_KEY, API_KEY, STATUS_INTERVAL_MS,
		SESSION_TTL_MINUTES, SESSION_CAPACITY, ANALYSIS_TIMEOUT_SECONDS} {
		t.Setenv(name, "")
	}

	s, err := NewSystemInfoService()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.GetListenAddress() != ":8080" {
		t.Errorf("listen address = %q", s.GetListenAddress())
	}
	if s.GetStatusInterval() != 1200*time.Millisecond {
		t.Errorf("status interval = %v", s.GetStatusInterval())
	}
	if s.GetSessionTTL() != time.Hour {
		t.Errorf("session ttl = %v", s.GetSessionTTL())
	}
	if s.GetSessionCapacity() != 1000 {
		t.Errorf("session capacity = %d", s.GetSessionCapacity())
	}
	if s.GetAnalysisTimeout() != 0 {
		t.Errorf("analysis timeout = %v", s.GetAnalysisTimeout())
	}
	if s.GetLLMApiKey() != "" || s.GetLLMProvider() != "" {
		t.Error("llm settings must be empty by default")
	}
}

func TestSystemInfoFromEnv(t *testing.T) {
	t.Setenv(LISTEN_ADDRESS, ":9090")
	t.Setenv(LLM_PROVIDER, " Gemini ")
	t.Setenv(LLM_API_KEY, "")
	t.Setenv(API_KEY, "fallback-key")
	t.Setenv(LLM_MODEL, "gemini-3-flash-preview")
	t.Setenv(STATUS_INTERVAL_MS, "500")
	t.Setenv(SESSION_TTL_MINUTES, "5")
	t.Setenv(SESSION_CAPACITY, "3")
	t.Setenv(ANALYSIS_TIMEOUT_SECONDS, "30")

	s, err := NewSystemInfoService()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.GetListenAddress() != ":9090" || s.GetLLMProvider() != "gemini" || s.GetLLMModel() != "gemini-3-flash-preview" {
		t.Errorf("unexpected settings")
	}
	if s.GetLLMApiKey() != "fallback-key" {
		t.Errorf("api key = %q, want API_KEY fallback", s.GetLLMApiKey())
	}
	if s.GetStatusInterval() != 500*time.Millisecond || s.GetSessionTTL() != 5*time.Minute ||
		s.GetSessionCapacity() != 3 || s.GetAnalysisTimeout() != 30*time.Second {
		t.Errorf("unexpected numeric settings")
	}

	t.Setenv(LLM_API_KEY, "primary-key")
	s, _ = NewSystemInfoService()
	if s.GetLLMApiKey() != "primary-key" {
		t.Errorf("api key = %q, want LLM_API_KEY", s.GetLLMApiKey())
	}
}

func TestSystemInfoInvalidNumber(t *testing.T) {
	t.Setenv(SESSION_CAPACITY, "many")
	if _, err := NewSystemInfoService(); err == nil {
		t.Fatal("expected an error for a non numeric value")
	}
}
