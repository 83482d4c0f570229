package presenter

import (
	"embed"
	"html/template"
	"io"

	"github.com/Netcracker/qubership-web-audit-service/view"
)

//go:embed templates/*
var templates embed.FS

// AnalyzingRefreshSeconds is how often the page reloads itself while an analysis runs.
const AnalyzingRefreshSeconds = 1

type Page struct {
	Session   view.SessionView
	Dashboard *Dashboard
	Options   view.OptionsView
	Notice    string
	// Refresh is the meta refresh interval in seconds, 0 disables it.
	Refresh int
}

func (p Page) Analyzing() bool {
	return p.Session.ControlsDisabled
}

func (p Page) SubmitLabel() string {
	if p.Session.ControlsDisabled {
		return "ĐANG SOI..."
	}
	return "SOI NGAY"
}

// NewPage builds the page for a session view. The dashboard is only present when there is a result.
func NewPage(session view.SessionView, tab view.Tab, notice string) Page {
	page := Page{
		Session: session,
		Options: BuildOptions(),
		Notice:  notice,
	}
	if session.Result != nil {
		d := BuildDashboard(*session.Result, tab)
		page.Dashboard = &d
	}
	if session.ControlsDisabled {
		page.Refresh = AnalyzingRefreshSeconds
	}
	return page
}

func BuildOptions() view.OptionsView {
	opts := view.OptionsView{Tabs: append([]view.Tab(nil), view.Tabs...)}
	for _, d := range view.Devices {
		opts.Devices = append(opts.Devices, view.Option{Value: string(d), Label: d.Label()})
	}
	for _, l := range view.Locations {
		opts.Locations = append(opts.Locations, view.Option{Value: string(l), Label: l.Label()})
	}
	return opts
}

type Renderer interface {
	RenderPage(w io.Writer, page Page) error
}

func NewRenderer() (Renderer, error) {
	tmpl, err := template.New("index.html").Funcs(template.FuncMap{
		// gradients are assembled from SafeColor values and numbers only
		"css": func(s string) template.CSS { return template.CSS(s) },
	}).ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, err
	}
	return &rendererImpl{tmpl: tmpl}, nil
}

type rendererImpl struct {
	tmpl *template.Template
}

func (r rendererImpl) RenderPage(w io.Writer, page Page) error {
	return r.tmpl.ExecuteTemplate(w, "index.html", page)
}
