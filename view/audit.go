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

package view

import "encoding/json"

// AuditResult is the complete outcome of one analysis call.
// The jsonschema tags are the source of the strict response schema sent to the model.
type AuditResult struct {
	PerformanceScore   int `json:"performanceScore" jsonschema:"description=Performance score from 0 to 100"`
	AccessibilityScore int `json:"accessibilityScore" jsonschema:"description=Accessibility score from 0 to 100"`
	BestPracticesScore int `json:"bestPracticesScore" jsonschema:"description=Best practices score from 0 to 100"`
	SeoScore           int `json:"seoScore" jsonschema:"description=SEO score from 0 to 100"`

	EstimatedLoadTime string `json:"estimatedLoadTime" jsonschema:"description=Current load time for example 2.5s"`
	Fcp               string `json:"fcp"`
	Lcp               string `json:"lcp"`
	Cls               string `json:"cls"`
	CarbonFootprint   string `json:"carbonFootprint"`

	TransferSize  string `json:"transferSize"`
	ResourcesSize string `json:"resourcesSize"`
	TotalPageSize string `json:"totalPageSize"`

	PotentialLoadTime string `json:"potentialLoadTime"`
	PotentialPageSize string `json:"potentialPageSize"`
	SavingsPercentage int    `json:"savingsPercentage" jsonschema:"description=Expected savings after optimization from 0 to 100"`

	HihiRank      HihiRank      `json:"hihiRank"`
	SocialPreview SocialPreview `json:"socialPreview"`
	Security      SecurityAudit `json:"security"`

	ResourceBreakdown []ResourceItem   `json:"resourceBreakdown"`
	Opportunities     []Opportunity    `json:"opportunities"`
	CodeSuggestions   []CodeSuggestion `json:"codeSuggestions"`
	TechStack         []string         `json:"techStack"`
	Summary           string           `json:"summary"`
}

type Tier string

const (
	TierS Tier = "S"
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
	TierF Tier = "F"
)

// Tiers is ordered best to worst.
var Tiers = []Tier{TierS, TierA, TierB, TierC, TierD, TierF}

func (t Tier) Valid() bool {
	return t.Rank() >= 0
}

// Rank returns the position of the tier in Tiers (0 is the best) or -1 for an unknown tier.
func (t Tier) Rank() int {
	for i, tier := range Tiers {
		if tier == t {
			return i
		}
	}
	return -1
}

type HihiRank struct {
	Tier  Tier   `json:"tier" jsonschema:"enum=S,enum=A,enum=B,enum=C,enum=D,enum=F"`
	Name  string `json:"name" jsonschema:"description=Funny rank title for example Rocket or Crawling Turtle"`
	Emoji string `json:"emoji" jsonschema:"description=Emoji representing the rank"`
	Quote string `json:"quote" jsonschema:"description=Short witty praise or roast"`
}

type SocialPreview struct {
	Title       string `json:"title" jsonschema:"description=OG title shown when the link is shared"`
	Description string `json:"description" jsonschema:"description=OG description shown when the link is shared"`
	Image       string `json:"image" jsonschema:"description=Short textual description of the preview image"`
	SiteName    string `json:"siteName"`
}

type SecurityAudit struct {
	Score  int      `json:"score" jsonschema:"description=Security score from 0 to 100"`
	Https  bool     `json:"https"`
	Issues []string `json:"issues"`
}

// HasIssues treats a missing issue list the same as an empty one.
func (s SecurityAudit) HasIssues() bool {
	return len(s.Issues) > 0
}

// ResourceItem is one slice of the resource breakdown chart.
// Unknown fields sent by the model are kept in Extra.
type ResourceItem struct {
	Name   string                 `json:"name"`
	SizeKb float64                `json:"sizeKb"`
	Color  string                 `json:"color" jsonschema:"description=CSS color used for the chart slice"`
	Extra  map[string]interface{} `json:"-"`
}

var resourceItemFields = []string{"name", "sizeKb", "color"}

func (r *ResourceItem) UnmarshalJSON(data []byte) error {
	type plain ResourceItem
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var all map[string]interface{}
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, f := range resourceItemFields {
		delete(all, f)
	}
	if len(all) > 0 {
		p.Extra = all
	}
	*r = ResourceItem(p)
	return nil
}

func (r ResourceItem) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Extra)+len(resourceItemFields))
	for k, v := range r.Extra {
		out[k] = v
	}
	out["name"] = r.Name
	out["sizeKb"] = r.SizeKb
	out["color"] = r.Color
	return json.Marshal(out)
}

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

type Opportunity struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Savings     string   `json:"savings"`
	Severity    Severity `json:"severity" jsonschema:"enum=high,enum=medium,enum=low"`
}

type CodeSuggestion struct {
	Title       string `json:"title"`
	Language    string `json:"language"`
	Code        string `json:"code"`
	Description string `json:"description" jsonschema:"description=Why the change helps"`
}
