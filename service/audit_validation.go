package service

import (
	"fmt"
	"strings"

	"github.com/Netcracker/qubership-web-audit-service/exception"
	"github.com/Netcracker/qubership-web-audit-service/view"
)

const InvalidAuditResultMsg = "Kết quả phân tích không hợp lệ"

// ValidateAuditResult checks what the response schema only asks the model for:
// enum membership and numeric ranges. All violations are reported in a single ParseError.
func ValidateAuditResult(result *view.AuditResult) error {
	if result == nil {
		return exception.ParseError{Message: InvalidAuditResultMsg + ": empty result"}
	}
	var problems []string

	checkRange := func(field string, value int) {
		if value < 0 || value > 100 {
			problems = append(problems, fmt.Sprintf("%s=%d is out of range [0,100]", field, value))
		}
	}
	checkRange("performanceScore", result.PerformanceScore)
	checkRange("accessibilityScore", result.AccessibilityScore)
	checkRange("bestPracticesScore", result.BestPracticesScore)
	checkRange("seoScore", result.SeoScore)
	checkRange("savingsPercentage", result.SavingsPercentage)
	checkRange("security.score", result.Security.Score)

	if !result.HihiRank.Tier.Valid() {
		problems = append(problems, fmt.Sprintf("hihiRank.tier=%q is not one of S,A,B,C,D,F", result.HihiRank.Tier))
	}
	for i, opp := range result.Opportunities {
		if !opp.Severity.Valid() {
			problems = append(problems, fmt.Sprintf("opportunities[%d].severity=%q is not one of high,medium,low", i, opp.Severity))
		}
	}
	for i, res := range result.ResourceBreakdown {
		if res.SizeKb < 0 {
			problems = append(problems, fmt.Sprintf("resourceBreakdown[%d].sizeKb=%v is negative", i, res.SizeKb))
		}
	}

	if len(problems) > 0 {
		return exception.ParseError{Message: InvalidAuditResultMsg + ": " + strings.Join(problems, "; ")}
	}
	return nil
}
