package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Netcracker/qubership-web-audit-service/utils"
	"github.com/Netcracker/qubership-web-audit-service/view"
	log "github.com/sirupsen/logrus"
)

var ErrSessionClosed = errors.New("session is closed")

// Analyzer runs one analysis call. It is implemented by service.AnalysisService.
type Analyzer interface {
	Analyze(ctx context.Context, url string, device view.Device, location view.Location) (*view.AuditResult, error)
}

// Session owns the state of one browser and executes the commands produced by Transition.
type Session struct {
	id       string
	analyzer Analyzer
	rotator  *StatusRotator

	// opMutex serializes events that may produce commands, stateMutex guards state only.
	// Status ticks take stateMutex alone so stopping the rotator never waits on a dispatch.
	opMutex    sync.Mutex
	stateMutex sync.RWMutex
	state      State
	closed     bool

	ctx    context.Context
	cancel context.CancelFunc
}

func NewSession(id string, analyzer Analyzer, statusInterval time.Duration) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:       id,
		analyzer: analyzer,
		state:    NewState(),
		ctx:      ctx,
		cancel:   cancel,
	}
	s.rotator = NewStatusRotator(statusInterval, s.tick)
	return s
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Submit(url string) error {
	return s.dispatch(Submit{URL: url})
}

func (s *Session) SelectDevice(device view.Device) error {
	return s.dispatch(SelectDevice{Device: device})
}

func (s *Session) SelectLocation(location view.Location) error {
	return s.dispatch(SelectLocation{Location: location})
}

func (s *Session) Reset() error {
	return s.dispatch(Reset{})
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.stateMutex.RLock()
	defer s.stateMutex.RUnlock()
	return s.state
}

func (s *Session) StatusRotating() bool {
	return s.rotator.Running()
}

// Close stops the status rotation and drops any in-flight analysis result. It is safe to call more than once.
func (s *Session) Close() {
	s.opMutex.Lock()
	defer s.opMutex.Unlock()

	s.stateMutex.Lock()
	alreadyClosed := s.closed
	s.closed = true
	s.stateMutex.Unlock()
	if alreadyClosed {
		return
	}
	s.rotator.Stop()
	s.cancel()
	log.Debugf("Session %s closed", s.id)
}

func (s *Session) dispatch(e Event) error {
	s.opMutex.Lock()
	defer s.opMutex.Unlock()

	s.stateMutex.Lock()
	if s.closed {
		s.stateMutex.Unlock()
		return ErrSessionClosed
	}
	prev := s.state.Phase
	next, commands, err := Transition(s.state, e)
	if err != nil {
		s.stateMutex.Unlock()
		return err
	}
	s.state = next
	s.stateMutex.Unlock()

	if prev != next.Phase {
		log.Debugf("Session %s: %s -> %s", s.id, prev, next.Phase)
	}
	for _, cmd := range commands {
		s.execute(cmd)
	}
	return nil
}

func (s *Session) tick() {
	s.stateMutex.Lock()
	defer s.stateMutex.Unlock()
	if s.closed {
		return
	}
	s.state, _, _ = Transition(s.state, StatusTick{})
}

func (s *Session) execute(cmd Command) {
	switch c := cmd.(type) {
	case StartStatusRotation:
		s.rotator.Start()
	case StopStatusRotation:
		s.rotator.Stop()
	case StartAnalysis:
		s.runAnalysis(c)
	default:
		log.Errorf("Session %s: unknown command %T", s.id, cmd)
	}
}

func (s *Session) runAnalysis(cmd StartAnalysis) {
	utils.SafeAsync(func() {
		var result *view.AuditResult
		err := utils.SafeSync(func() error {
			var err error
			result, err = s.analyzer.Analyze(s.ctx, cmd.URL, cmd.Device, cmd.Location)
			return err
		})

		var event Event
		if err != nil {
			event = AnalysisFailed{ID: cmd.ID, Err: err}
		} else {
			event = AnalysisSucceeded{ID: cmd.ID, Result: result}
		}
		if err = s.dispatch(event); err != nil && !errors.Is(err, ErrSessionClosed) {
			log.Warnf("Session %s: analysis %d result dropped: %v", s.id, cmd.ID, err)
		}
	})
}
