package presenter

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/Netcracker/qubership-web-audit-service/view"
)

const (
	SiteNameFallback    = "WEBSITE.COM"
	NoSecurityIssuesMsg = "Không phát hiện lỗi nghiêm trọng nào."
	NoOpportunitiesMsg  = "HiHi không tìm thấy cơ hội tối ưu nào."
	NoCodeTitle         = "Trang web này quá hoàn hảo?"
	NoCodeMsg           = "HiHi không tìm thấy đoạn mã nào cần sửa ngay lập tức."
)

const gaugeRadius = 36

var gaugeCircumference = 2 * math.Pi * gaugeRadius

var tabLabels = map[view.Tab]string{
	view.TabOverview:       "Tổng quan",
	view.TabSocialSecurity: "Social & Bảo mật",
	view.TabDetails:        "Chi tiết",
	view.TabCode:           "Code Fix",
}

// Dashboard is the view model of one audit result for the selected tab.
// Only the section of the active tab is filled.
type Dashboard struct {
	Tab            view.Tab        `json:"tab"`
	Tabs           []TabItem       `json:"tabs"`
	Rank           RankBanner      `json:"rank"`
	Overview       *Overview       `json:"overview,omitempty"`
	SocialSecurity *SocialSecurity `json:"socialSecurity,omitempty"`
	Details        *Details        `json:"details,omitempty"`
	Code           *Code           `json:"code,omitempty"`
}

type TabItem struct {
	Tab    view.Tab `json:"tab"`
	Label  string   `json:"label"`
	Active bool     `json:"active"`
}

type RankBanner struct {
	Tier         view.Tier `json:"tier"`
	Name         string    `json:"name"`
	Emoji        string    `json:"emoji"`
	Quote        string    `json:"quote"`
	TierClass    string    `json:"tierClass"`
	LoadTime     string    `json:"loadTime"`
	TransferSize string    `json:"transferSize"`
}

type Gauge struct {
	Label         string  `json:"label"`
	Score         int     `json:"score"`
	ColorClass    string  `json:"colorClass"`
	Circumference float64 `json:"circumference"`
	DashOffset    float64 `json:"dashOffset"`
}

type MetricCard struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Subtext string `json:"subtext"`
}

type Overview struct {
	Gauges  []Gauge      `json:"gauges"`
	Metrics []MetricCard `json:"metrics"`
	Summary string       `json:"summary"`
}

type SocialSecurity struct {
	Preview       view.SocialPreview `json:"preview"`
	Https         bool               `json:"https"`
	SecurityScore int                `json:"securityScore"`
	Issues        []string           `json:"issues"`
	EmptyMessage  string             `json:"emptyMessage,omitempty"`
}

type ResourceSlice struct {
	Name    string  `json:"name"`
	SizeKb  float64 `json:"sizeKb"`
	Color   string  `json:"color"`
	Percent float64 `json:"percent"`
}

type OpportunityItem struct {
	view.Opportunity
	SeverityClass string `json:"severityClass"`
}

type Details struct {
	CurrentLoadTime    string            `json:"currentLoadTime"`
	PotentialLoadTime  string            `json:"potentialLoadTime"`
	PotentialPageSize  string            `json:"potentialPageSize"`
	SavingsPercentage  int               `json:"savingsPercentage"`
	OptimizedBarWidth  int               `json:"optimizedBarWidth"`
	Resources          []ResourceSlice   `json:"resources"`
	PieGradient        string            `json:"pieGradient"`
	TechStack          []string          `json:"techStack"`
	Opportunities      []OpportunityItem `json:"opportunities"`
	EmptyOpportunities string            `json:"emptyOpportunities,omitempty"`
}

type Code struct {
	Suggestions []view.CodeSuggestion `json:"suggestions"`
	EmptyTitle  string                `json:"emptyTitle,omitempty"`
	EmptyText   string                `json:"emptyText,omitempty"`
}

// BuildDashboard renders an audit result for a tab. The result is not modified and all lists keep the received order.
func BuildDashboard(result view.AuditResult, tab view.Tab) Dashboard {
	tab = view.ParseTab(string(tab))
	d := Dashboard{
		Tab:  tab,
		Tabs: buildTabs(tab),
		Rank: RankBanner{
			Tier:         result.HihiRank.Tier,
			Name:         result.HihiRank.Name,
			Emoji:        result.HihiRank.Emoji,
			Quote:        result.HihiRank.Quote,
			TierClass:    TierClass(result.HihiRank.Tier),
			LoadTime:     result.EstimatedLoadTime,
			TransferSize: result.TransferSize,
		},
	}
	switch tab {
	case view.TabSocialSecurity:
		d.SocialSecurity = buildSocialSecurity(result)
	case view.TabDetails:
		d.Details = buildDetails(result)
	case view.TabCode:
		d.Code = buildCode(result)
	default:
		d.Overview = buildOverview(result)
	}
	return d
}

func buildTabs(active view.Tab) []TabItem {
	tabs := make([]TabItem, 0, len(view.Tabs))
	for _, t := range view.Tabs {
		tabs = append(tabs, TabItem{Tab: t, Label: tabLabels[t], Active: t == active})
	}
	return tabs
}

// TierClass gives S, A, B and C their own banner style, D and F share the default one.
func TierClass(tier view.Tier) string {
	switch tier {
	case view.TierS, view.TierA, view.TierB, view.TierC:
		return "tier-" + strings.ToLower(string(tier))
	}
	return "tier-default"
}

func GaugeColorClass(score int) string {
	switch {
	case score < 50:
		return "poor"
	case score < 90:
		return "average"
	}
	return "good"
}

func NewGauge(label string, score int) Gauge {
	return Gauge{
		Label:         label,
		Score:         score,
		ColorClass:    GaugeColorClass(score),
		Circumference: round2(gaugeCircumference),
		DashOffset:    round2(gaugeCircumference - float64(score)/100*gaugeCircumference),
	}
}

func buildOverview(r view.AuditResult) *Overview {
	return &Overview{
		Gauges: []Gauge{
			NewGauge("HiHi Speed", r.PerformanceScore),
			NewGauge("Truy cập", r.AccessibilityScore),
			NewGauge("Chuẩn chỉ", r.BestPracticesScore),
			NewGauge("Top Google", r.SeoScore),
		},
		Metrics: []MetricCard{
			{Label: "LCP (Load Chính)", Value: r.Lcp, Subtext: "Thời gian hiển thị nội dung lớn nhất"},
			{Label: "CLS (Độ Ổn Định)", Value: r.Cls, Subtext: "Mức độ dịch chuyển giao diện"},
			{Label: "Tổng Thời Gian", Value: r.EstimatedLoadTime, Subtext: "Thời gian tải hoàn tất trang"},
			{Label: "Dung Lượng Mạng", Value: r.TransferSize, Subtext: "Dữ liệu nén tải xuống"},
			{Label: "Dung Lượng Thực", Value: r.ResourcesSize, Subtext: "Sau khi giải nén"},
			{Label: "Khí Thải Carbon", Value: r.CarbonFootprint, Subtext: "Lượng CO2/lượt xem"},
		},
		Summary: r.Summary,
	}
}

func buildSocialSecurity(r view.AuditResult) *SocialSecurity {
	preview := r.SocialPreview
	if strings.TrimSpace(preview.SiteName) == "" {
		preview.SiteName = SiteNameFallback
	}
	s := &SocialSecurity{
		Preview:       preview,
		Https:         r.Security.Https,
		SecurityScore: r.Security.Score,
		Issues:        append([]string(nil), r.Security.Issues...),
	}
	if !r.Security.HasIssues() {
		s.EmptyMessage = NoSecurityIssuesMsg
	}
	return s
}

func buildDetails(r view.AuditResult) *Details {
	d := &Details{
		CurrentLoadTime:   r.EstimatedLoadTime,
		PotentialLoadTime: r.PotentialLoadTime,
		PotentialPageSize: r.PotentialPageSize,
		SavingsPercentage: r.SavingsPercentage,
		OptimizedBarWidth: clampPercent(100 - r.SavingsPercentage),
		Resources:         buildResources(r.ResourceBreakdown),
		TechStack:         append([]string(nil), r.TechStack...),
	}
	d.PieGradient = pieGradient(d.Resources)

	for _, opp := range r.Opportunities {
		d.Opportunities = append(d.Opportunities, OpportunityItem{Opportunity: opp, SeverityClass: SeverityClass(opp.Severity)})
	}
	if len(d.Opportunities) == 0 {
		d.EmptyOpportunities = NoOpportunitiesMsg
	}
	return d
}

// SeverityClass styles high apart from medium and low. Unknown severities get the low style.
func SeverityClass(s view.Severity) string {
	switch s {
	case view.SeverityHigh:
		return "severity-high"
	case view.SeverityMedium:
		return "severity-medium"
	}
	return "severity-low"
}

func buildResources(items []view.ResourceItem) []ResourceSlice {
	var total float64
	for _, item := range items {
		if item.SizeKb > 0 {
			total += item.SizeKb
		}
	}
	slices := make([]ResourceSlice, 0, len(items))
	for _, item := range items {
		slice := ResourceSlice{Name: item.Name, SizeKb: item.SizeKb, Color: SafeColor(item.Color)}
		if total > 0 && item.SizeKb > 0 {
			slice.Percent = round2(item.SizeKb / total * 100)
		}
		slices = append(slices, slice)
	}
	return slices
}

func pieGradient(slices []ResourceSlice) string {
	var parts []string
	var from float64
	for _, s := range slices {
		if s.Percent <= 0 {
			continue
		}
		to := math.Min(from+s.Percent, 100)
		parts = append(parts, fmt.Sprintf("%s %.2f%% %.2f%%", s.Color, from, to))
		from = to
	}
	if len(parts) == 0 {
		return "conic-gradient(#334155 0% 100%)"
	}
	return "conic-gradient(" + strings.Join(parts, ", ") + ")"
}

const defaultSliceColor = "#64748b"

var cssColorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]{3,20})$`)

// SafeColor keeps hex and named colors only, the value ends up inside a style attribute.
func SafeColor(color string) string {
	color = strings.TrimSpace(color)
	if !cssColorPattern.MatchString(color) {
		return defaultSliceColor
	}
	return color
}

func buildCode(r view.AuditResult) *Code {
	c := &Code{Suggestions: append([]view.CodeSuggestion(nil), r.CodeSuggestions...)}
	if len(c.Suggestions) == 0 {
		c.EmptyTitle = NoCodeTitle
		c.EmptyText = NoCodeMsg
	}
	return c
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
