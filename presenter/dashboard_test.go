package presenter

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/Netcracker/qubership-web-audit-service/view"
)

func sampleResult() view.AuditResult {
	return view.AuditResult{
		PerformanceScore:   42,
		AccessibilityScore: 95,
		BestPracticesScore: 50,
		SeoScore:           89,
		EstimatedLoadTime:  "4.2s",
		TransferSize:       "1.2MB",
		SavingsPercentage:  30,
		HihiRank:           view.HihiRank{Tier: view.TierC, Name: "Rùa Bò", Emoji: "🐢", Quote: "..."},
		ResourceBreakdown: []view.ResourceItem{
			{Name: "JS", SizeKb: 300, Color: "#f43f5e"},
			{Name: "CSS", SizeKb: 100, Color: "url(javascript:alert(1))"},
		},
		Opportunities: []view.Opportunity{
			{Title: "Nén ảnh", Severity: view.SeverityLow},
			{Title: "Bỏ JS thừa", Severity: view.SeverityHigh},
			{Title: "Cache", Severity: view.SeverityMedium},
		},
	}
}

func TestBuildDashboardTabs(t *testing.T) {
	d := BuildDashboard(sampleResult(), view.TabDetails)

	var labels []string
	for _, tab := range d.Tabs {
		labels = append(labels, tab.Label)
		if tab.Active != (tab.Tab == view.TabDetails) {
			t.Errorf("tab %s active = %v", tab.Tab, tab.Active)
		}
	}
	want := []string{"Tổng quan", "Social & Bảo mật", "Chi tiết", "Code Fix"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("labels = %v, want %v", labels, want)
	}
	if d.Details == nil || d.Overview != nil || d.SocialSecurity != nil || d.Code != nil {
		t.Error("only the active tab section must be built")
	}

	if fallback := BuildDashboard(sampleResult(), "unknown"); fallback.Tab != view.TabOverview || fallback.Overview == nil {
		t.Error("unknown tab must fall back to overview")
	}
}

func TestOverviewGauges(t *testing.T) {
	d := BuildDashboard(sampleResult(), view.TabOverview)
	gauges := d.Overview.Gauges
	if len(gauges) != 4 {
		t.Fatalf("expected 4 gauges, got %d", len(gauges))
	}
	tests := []struct {
		label string
		score int
		class string
	}{
		{"HiHi Speed", 42, "poor"},
		{"Truy cập", 95, "good"},
		{"Chuẩn chỉ", 50, "average"},
		{"Top Google", 89, "average"},
	}
	for i, tt := range tests {
		g := gauges[i]
		if g.Label != tt.label || g.Score != tt.score || g.ColorClass != tt.class {
			t.Errorf("gauge %d = %+v, want %s %d %s", i, g, tt.label, tt.score, tt.class)
		}
	}
	if gauges[0].DashOffset <= 0 || gauges[0].DashOffset >= gauges[0].Circumference {
		t.Errorf("unexpected dash offset %v", gauges[0].DashOffset)
	}
	if full := NewGauge("x", 100); full.DashOffset != 0 {
		t.Errorf("full score dash offset = %v", full.DashOffset)
	}
	if len(d.Overview.Metrics) != 6 {
		t.Errorf("expected 6 metric cards, got %d", len(d.Overview.Metrics))
	}
}

func TestTierClass(t *testing.T) {
	tests := map[view.Tier]string{
		view.TierS: "tier-s",
		view.TierA: "tier-a",
		view.TierB: "tier-b",
		view.TierC: "tier-c",
		view.TierD: "tier-default",
		view.TierF: "tier-default",
		"Z":        "tier-default",
	}
	for tier, want := range tests {
		if got := TierClass(tier); got != want {
			t.Errorf("TierClass(%s) = %s, want %s", tier, got, want)
		}
	}
}

func TestOpportunitiesKeepOrderAndSeverity(t *testing.T) {
	d := BuildDashboard(sampleResult(), view.TabDetails).Details

	var titles []string
	for _, o := range d.Opportunities {
		titles = append(titles, o.Title)
	}
	if !reflect.DeepEqual(titles, []string{"Nén ảnh", "Bỏ JS thừa", "Cache"}) {
		t.Errorf("order changed: %v", titles)
	}
	if d.Opportunities[1].SeverityClass != "severity-high" {
		t.Errorf("high severity class = %s", d.Opportunities[1].SeverityClass)
	}
	if d.Opportunities[0].SeverityClass == "severity-high" || d.Opportunities[2].SeverityClass == "severity-high" {
		t.Error("medium and low must be styled apart from high")
	}
	if d.EmptyOpportunities != "" {
		t.Error("no empty message expected when opportunities exist")
	}
	if SeverityClass("critical") != "severity-low" {
		t.Error("unknown severity must fall back to low styling")
	}
}

func TestSingleHighOpportunity(t *testing.T) {
	r := view.AuditResult{Opportunities: []view.Opportunity{{Title: "x", Severity: "high"}}}
	d := BuildDashboard(r, view.TabDetails).Details
	if len(d.Opportunities) != 1 || d.Opportunities[0].SeverityClass != "severity-high" {
		t.Errorf("unexpected opportunities %+v", d.Opportunities)
	}
}

func TestEmptyStates(t *testing.T) {
	r := view.AuditResult{Opportunities: []view.Opportunity{}, CodeSuggestions: []view.CodeSuggestion{}}

	details := BuildDashboard(r, view.TabDetails).Details
	if details.EmptyOpportunities != NoOpportunitiesMsg {
		t.Errorf("empty opportunities message = %q", details.EmptyOpportunities)
	}
	code := BuildDashboard(r, view.TabCode).Code
	if code.EmptyTitle != NoCodeTitle || code.EmptyText != NoCodeMsg {
		t.Errorf("unexpected code empty state %+v", code)
	}
	social := BuildDashboard(r, view.TabSocialSecurity).SocialSecurity
	if social.EmptyMessage != NoSecurityIssuesMsg {
		t.Errorf("security empty message = %q", social.EmptyMessage)
	}
	if social.Preview.SiteName != SiteNameFallback {
		t.Errorf("site name = %q", social.Preview.SiteName)
	}

	withIssues := BuildDashboard(view.AuditResult{Security: view.SecurityAudit{Issues: []string{"b", "a"}}}, view.TabSocialSecurity).SocialSecurity
	if withIssues.EmptyMessage != "" || !reflect.DeepEqual(withIssues.Issues, []string{"b", "a"}) {
		t.Errorf("unexpected security section %+v", withIssues)
	}
}

func TestResourcesAndPie(t *testing.T) {
	d := BuildDashboard(sampleResult(), view.TabDetails).Details

	if d.OptimizedBarWidth != 70 {
		t.Errorf("optimized bar width = %d, want 70", d.OptimizedBarWidth)
	}
	if d.Resources[0].Name != "JS" || d.Resources[0].Percent != 75 || d.Resources[1].Percent != 25 {
		t.Errorf("unexpected resources %+v", d.Resources)
	}
	if d.Resources[1].Color != defaultSliceColor {
		t.Errorf("unsafe color must be replaced, got %q", d.Resources[1].Color)
	}
	want := "conic-gradient(#f43f5e 0.00% 75.00%, #64748b 75.00% 100.00%)"
	if d.PieGradient != want {
		t.Errorf("pie = %q, want %q", d.PieGradient, want)
	}

	empty := BuildDashboard(view.AuditResult{}, view.TabDetails).Details
	if !strings.HasPrefix(empty.PieGradient, "conic-gradient(") || len(empty.Resources) != 0 {
		t.Errorf("unexpected empty details %+v", empty)
	}
}

func TestUnknownResourceFields(t *testing.T) {
	var r view.AuditResult
	data := `{"resourceBreakdown":[{"name":"Font","sizeKb":12,"color":"teal","format":"woff2","meta":{"a":1}}],"opportunities":[],"codeSuggestions":[]}`
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := BuildDashboard(r, view.TabDetails).Details
	if len(d.Resources) != 1 || d.Resources[0].Name != "Font" || d.Resources[0].Color != "teal" {
		t.Errorf("unexpected resources %+v", d.Resources)
	}
}

func TestBuildDashboardDoesNotMutate(t *testing.T) {
	r := sampleResult()
	before, _ := json.Marshal(r)
	for _, tab := range view.Tabs {
		BuildDashboard(r, tab)
	}
	after, _ := json.Marshal(r)
	if string(before) != string(after) {
		t.Error("result was modified")
	}
}
