package view

type AnalyzeReq struct {
	Url      string   `json:"url"`
	Device   Device   `json:"device"`
	Location Location `json:"location"`
}

type SettingsReq struct {
	Device   *Device   `json:"device,omitempty"`
	Location *Location `json:"location,omitempty"`
}

type SessionView struct {
	Phase            string       `json:"phase"`
	Url              string       `json:"url"`
	AnalyzedUrl      string       `json:"analyzedUrl,omitempty"`
	Device           Device       `json:"device"`
	Location         Location     `json:"location"`
	StatusMessage    string       `json:"statusMessage,omitempty"`
	ErrorMessage     string       `json:"errorMessage,omitempty"`
	ControlsDisabled bool         `json:"controlsDisabled"`
	Result           *AuditResult `json:"result,omitempty"`
}
