package session

import (
	"errors"
	"strings"

	"github.com/Netcracker/qubership-web-audit-service/exception"
	"github.com/Netcracker/qubership-web-audit-service/view"
)

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseAnalyzing Phase = "analyzing"
	PhaseComplete  Phase = "complete"
	PhaseError     Phase = "error"
)

const GenericErrorMsg = "HiHi gặp chút sự cố khi phân tích."

var (
	ErrEmptyURL           = exception.ErrEmptyURL
	ErrAnalysisInProgress = errors.New("analysis is already in progress")
	ErrStaleAnalysis      = errors.New("analysis result does not belong to the current analysis")
	ErrInvalidDevice      = errors.New("unknown device")
	ErrInvalidLocation    = errors.New("unknown location")
	ErrUnknownEvent       = errors.New("unknown event")
)

// State is the whole UI state of one browser. It is a value: Transition never mutates its input.
type State struct {
	Phase         Phase
	Url           string
	AnalyzedUrl   string
	Device        view.Device
	Location      view.Location
	AnalysisId    uint64
	Result        *view.AuditResult
	ErrorMessage  string
	StatusMessage string
	StatusIndex   int
}

func NewState() State {
	return State{
		Phase:    PhaseIdle,
		Device:   view.DefaultDevice,
		Location: view.DefaultLocation,
	}
}

// ControlsDisabled reports whether the form inputs and the submit control must be disabled.
func (s State) ControlsDisabled() bool {
	return s.Phase == PhaseAnalyzing
}

func (s State) View() view.SessionView {
	return view.SessionView{
		Phase:            string(s.Phase),
		Url:              s.Url,
		AnalyzedUrl:      s.AnalyzedUrl,
		Device:           s.Device,
		Location:         s.Location,
		StatusMessage:    s.StatusMessage,
		ErrorMessage:     s.ErrorMessage,
		ControlsDisabled: s.ControlsDisabled(),
		Result:           s.Result,
	}
}

type Event interface {
	isEvent()
}

type Submit struct {
	URL string
}

type SelectDevice struct {
	Device view.Device
}

type SelectLocation struct {
	Location view.Location
}

type StatusTick struct{}

type AnalysisSucceeded struct {
	ID     uint64
	Result *view.AuditResult
}

type AnalysisFailed struct {
	ID  uint64
	Err error
}

type Reset struct{}

func (Submit) isEvent()            {}
func (SelectDevice) isEvent()      {}
func (SelectLocation) isEvent()    {}
func (StatusTick) isEvent()        {}
func (AnalysisSucceeded) isEvent() {}
func (AnalysisFailed) isEvent()    {}
func (Reset) isEvent()             {}

// Command is a side effect requested by Transition and executed by Session.
type Command interface {
	isCommand()
}

type StartAnalysis struct {
	ID       uint64
	URL      string
	Device   view.Device
	Location view.Location
}

type StartStatusRotation struct{}

type StopStatusRotation struct{}

func (StartAnalysis) isCommand()       {}
func (StartStatusRotation) isCommand() {}
func (StopStatusRotation) isCommand()  {}

// Transition computes the next state for an event. On error the returned state is the input state.
func Transition(s State, e Event) (State, []Command, error) {
	switch ev := e.(type) {
	case Submit:
		if s.Phase == PhaseAnalyzing {
			return s, nil, ErrAnalysisInProgress
		}
		url := strings.TrimSpace(ev.URL)
		if url == "" {
			return s, nil, ErrEmptyURL
		}
		next := s
		next.Phase = PhaseAnalyzing
		next.Url = url
		next.AnalyzedUrl = NormalizeURL(url)
		next.AnalysisId = s.AnalysisId + 1
		next.Result = nil
		next.ErrorMessage = ""
		next.StatusIndex = 0
		next.StatusMessage = NewStatusSequence(s.Device, s.Location).At(0)
		return next, []Command{
			StartAnalysis{ID: next.AnalysisId, URL: next.AnalyzedUrl, Device: next.Device, Location: next.Location},
			StartStatusRotation{},
		}, nil

	case SelectDevice:
		if s.Phase == PhaseAnalyzing {
			return s, nil, ErrAnalysisInProgress
		}
		if !ev.Device.Valid() {
			return s, nil, ErrInvalidDevice
		}
		next := s
		next.Device = ev.Device
		return next, nil, nil

	case SelectLocation:
		if s.Phase == PhaseAnalyzing {
			return s, nil, ErrAnalysisInProgress
		}
		if !ev.Location.Valid() {
			return s, nil, ErrInvalidLocation
		}
		next := s
		next.Location = ev.Location
		return next, nil, nil

	case StatusTick:
		if s.Phase != PhaseAnalyzing {
			return s, nil, nil
		}
		seq := NewStatusSequence(s.Device, s.Location)
		next := s
		next.StatusIndex = seq.Next(s.StatusIndex)
		next.StatusMessage = seq.At(next.StatusIndex)
		return next, nil, nil

	case AnalysisSucceeded:
		if s.Phase != PhaseAnalyzing || ev.ID != s.AnalysisId {
			return s, nil, ErrStaleAnalysis
		}
		next := s
		next.StatusMessage = ""
		next.StatusIndex = 0
		if ev.Result == nil {
			next.Phase = PhaseError
			next.ErrorMessage = GenericErrorMsg
		} else {
			next.Phase = PhaseComplete
			next.Result = ev.Result
		}
		return next, []Command{StopStatusRotation{}}, nil

	case AnalysisFailed:
		if s.Phase != PhaseAnalyzing || ev.ID != s.AnalysisId {
			return s, nil, ErrStaleAnalysis
		}
		next := s
		next.Phase = PhaseError
		next.ErrorMessage = DisplayMessage(ev.Err)
		next.StatusMessage = ""
		next.StatusIndex = 0
		return next, []Command{StopStatusRotation{}}, nil

	case Reset:
		if s.Phase == PhaseAnalyzing {
			return s, nil, ErrAnalysisInProgress
		}
		next := s
		next.Phase = PhaseIdle
		next.Url = ""
		next.AnalyzedUrl = ""
		next.Result = nil
		next.ErrorMessage = ""
		next.StatusMessage = ""
		next.StatusIndex = 0
		return next, nil, nil
	}
	return s, nil, ErrUnknownEvent
}

// DisplayMessage collapses any error kind into the single string shown to the user.
func DisplayMessage(err error) string {
	if err == nil || strings.TrimSpace(err.Error()) == "" {
		return GenericErrorMsg
	}
	return err.Error()
}
