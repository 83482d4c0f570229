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

package exception

import (
	"fmt"
	"strings"
)

type CustomError struct {
	Status  int                    `json:"status"`
	Code    string                 `json:"code,omitempty"`
	Message string                 `json:"message,omitempty"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Debug   string                 `json:"debug,omitempty"`
}

func (c CustomError) Error() string {
	msg := c.Message
	for k, v := range c.Params {
		//todo make smart replace (e.g. now it replaces $projectId if we have $project in params)
		msg = strings.ReplaceAll(msg, "$"+k, fmt.Sprintf("%v", v))
	}
	return msg
}

const InvalidParameterValue = "9"
const InvalidParameterValueMsg = "Value '$value' is not allowed for parameter $param"

const BadRequestBody = "10"
const BadRequestBodyMsg = "Failed to decode body"

const RequiredParamsMissing = "15"
const RequiredParamsMissingMsg = "Required parameters are missing: $params"

const AnalysisInProgress = "3000"
const AnalysisInProgressMsg = "Analysis is already in progress, wait for it to finish"

const AnalysisNotConfigured = "3001"
const AnalysisNotConfiguredMsg = "Analysis engine is not configured: $reason"

const AnalysisUpstreamFailed = "3002"
const AnalysisUpstreamFailedMsg = "Analysis engine call failed: $reason"

const AnalysisResponseInvalid = "3003"
const AnalysisResponseInvalidMsg = "Analysis engine returned an invalid result: $reason"

const SessionClosed = "3004"
const SessionClosedMsg = "Session is closed, reload the page"

const NoAuditResult = "3005"
const NoAuditResultMsg = "There is no audit result in session $id"

const NotImplemented = "3100"
const NotImplementedMsg = "Tính năng đang được HiHi phát triển! Sẽ sớm ra mắt bản PDF xịn xò."
