// Copyright 2024-2025 NetCracker Technology Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	LISTEN_ADDRESS           = "LISTEN_ADDRESS"
	ORIGIN_ALLOWED           = "ORIGIN_ALLOWED"
	LOG_LEVEL                = "LOG_LEVEL"
	LLM_PROVIDER             = "LLM_PROVIDER"
	LLM_API_KEY              = "LLM_API_KEY"
	API_KEY                  = "API_KEY"
	LLM_MODEL                = "LLM_MODEL"
	LLM_PROXY                = "LLM_PROXY"
	STATUS_INTERVAL_MS       = "STATUS_INTERVAL_MS"
	SESSION_TTL_MINUTES      = "SESSION_TTL_MINUTES"
	SESSION_CAPACITY         = "SESSION_CAPACITY"
	ANALYSIS_TIMEOUT_SECONDS = "ANALYSIS_TIMEOUT_SECONDS"
)

const (
	defaultStatusIntervalMs  = 1200
	defaultSessionTtlMinutes = 60
	defaultSessionCapacity   = 1000
)

type SystemInfoService interface {
	Init() error
	GetListenAddress() string
	GetOriginAllowed() string
	GetLogLevel() string
	GetLLMProvider() string
	GetLLMApiKey() string
	GetLLMModel() string
	GetLLMProxy() string
	GetStatusInterval() time.Duration
	GetSessionTTL() time.Duration
	GetSessionCapacity() int
	GetAnalysisTimeout() time.Duration
}

func NewSystemInfoService() (SystemInfoService, error) {
	s := &systemInfoServiceImpl{
		systemInfoMap: make(map[string]interface{})}
	if err := s.Init(); err != nil {
		log.Error("Failed to read system info: " + err.Error())
		return nil, err
	}
	return s, nil
}

type systemInfoServiceImpl struct {
	systemInfoMap map[string]interface{}
}

func (g systemInfoServiceImpl) Init() error {
	g.setListenAddress()
	g.setOriginAllowed()
	g.setLogLevel()
	g.setLLMProvider()
	g.setLLMApiKey()
	g.setLLMModel()
	g.setLLMProxy()
	if err := g.setStatusInterval(); err != nil {
		return err
	}
	if err := g.setSessionTTL(); err != nil {
		return err
	}
	if err := g.setSessionCapacity(); err != nil {
		return err
	}
	if err := g.setAnalysisTimeout(); err != nil {
		return err
	}

	return nil
}

func (g systemInfoServiceImpl) setListenAddress() {
	listenAddr := os.Getenv(LISTEN_ADDRESS)
	if listenAddr == "" {
		listenAddr = ":8080"
	}
	g.systemInfoMap[LISTEN_ADDRESS] = listenAddr
}

func (g systemInfoServiceImpl) GetListenAddress() string {
	return g.systemInfoMap[LISTEN_ADDRESS].(string)
}

func (g systemInfoServiceImpl) setOriginAllowed() {
	g.systemInfoMap[ORIGIN_ALLOWED] = os.Getenv(ORIGIN_ALLOWED)
}

func (g systemInfoServiceImpl) GetOriginAllowed() string {
	return g.systemInfoMap[ORIGIN_ALLOWED].(string)
}

func (g systemInfoServiceImpl) setLogLevel() {
	g.systemInfoMap[LOG_LEVEL] = os.Getenv(LOG_LEVEL)
}

func (g systemInfoServiceImpl) GetLogLevel() string {
	return g.systemInfoMap[LOG_LEVEL].(string)
}

func (g systemInfoServiceImpl) setLLMProvider() {
	g.systemInfoMap[LLM_PROVIDER] = strings.ToLower(strings.TrimSpace(os.Getenv(LLM_PROVIDER)))
}

func (g systemInfoServiceImpl) GetLLMProvider() string {
	return g.systemInfoMap[LLM_PROVIDER].(string)
}

func (g systemInfoServiceImpl) setLLMApiKey() {
	apiKey := os.Getenv(LLM_API_KEY)
	if apiKey == "" {
		apiKey = os.Getenv(API_KEY)
	}
	g.systemInfoMap[LLM_API_KEY] = apiKey
}

func (g systemInfoServiceImpl) GetLLMApiKey() string {
	return g.systemInfoMap[LLM_API_KEY].(string)
}

func (g systemInfoServiceImpl) setLLMModel() {
	g.systemInfoMap[LLM_MODEL] = os.Getenv(LLM_MODEL)
}

func (g systemInfoServiceImpl) GetLLMModel() string {
	return g.systemInfoMap[LLM_MODEL].(string)
}

func (g systemInfoServiceImpl) setLLMProxy() {
	g.systemInfoMap[LLM_PROXY] = os.Getenv(LLM_PROXY)
}

func (g systemInfoServiceImpl) GetLLMProxy() string {
	return g.systemInfoMap[LLM_PROXY].(string)
}

func (g systemInfoServiceImpl) setStatusInterval() error {
	ms, err := getIntEnv(STATUS_INTERVAL_MS, defaultStatusIntervalMs)
	if err != nil {
		return err
	}
	if ms <= 0 {
		ms = defaultStatusIntervalMs
	}
	g.systemInfoMap[STATUS_INTERVAL_MS] = time.Duration(ms) * time.Millisecond
	return nil
}

func (g systemInfoServiceImpl) GetStatusInterval() time.Duration {
	return g.systemInfoMap[STATUS_INTERVAL_MS].(time.Duration)
}

func (g systemInfoServiceImpl) setSessionTTL() error {
	minutes, err := getIntEnv(SESSION_TTL_MINUTES, defaultSessionTtlMinutes)
	if err != nil {
		return err
	}
	if minutes <= 0 {
		minutes = defaultSessionTtlMinutes
	}
	g.systemInfoMap[SESSION_TTL_MINUTES] = time.Duration(minutes) * time.Minute
	return nil
}

func (g systemInfoServiceImpl) GetSessionTTL() time.Duration {
	return g.systemInfoMap[SESSION_TTL_MINUTES].(time.Duration)
}

func (g systemInfoServiceImpl) setSessionCapacity() error {
	capacity, err := getIntEnv(SESSION_CAPACITY, defaultSessionCapacity)
	if err != nil {
		return err
	}
	if capacity <= 0 {
		capacity = defaultSessionCapacity
	}
	g.systemInfoMap[SESSION_CAPACITY] = capacity
	return nil
}

func (g systemInfoServiceImpl) GetSessionCapacity() int {
	return g.systemInfoMap[SESSION_CAPACITY].(int)
}

// 0 means no timeout, the external call decides on its own.
func (g systemInfoServiceImpl) setAnalysisTimeout() error {
	seconds, err := getIntEnv(ANALYSIS_TIMEOUT_SECONDS, 0)
	if err != nil {
		return err
	}
	if seconds < 0 {
		seconds = 0
	}
	g.systemInfoMap[ANALYSIS_TIMEOUT_SECONDS] = time.Duration(seconds) * time.Second
	return nil
}

func (g systemInfoServiceImpl) GetAnalysisTimeout() time.Duration {
	return g.systemInfoMap[ANALYSIS_TIMEOUT_SECONDS].(time.Duration)
}

func getIntEnv(name string, def int) (int, error) {
	str := strings.TrimSpace(os.Getenv(name))
	if str == "" {
		return def, nil
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s env value '%s': %w", name, str, err)
	}
	return val, nil
}
