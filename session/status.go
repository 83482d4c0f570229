package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/Netcracker/qubership-web-audit-service/view"
)

const DefaultStatusInterval = 1200 * time.Millisecond

// StatusSequence is the fixed cyclic list of cosmetic progress phrases shown while analyzing.
type StatusSequence struct {
	messages []string
}

func NewStatusSequence(device view.Device, location view.Location) StatusSequence {
	return StatusSequence{messages: []string{
		fmt.Sprintf("Kết nối server HiHi tại %s...", location),
		fmt.Sprintf("Giả lập thiết bị %s...", device.Label()),
		"Quét Core Web Vitals...",
		"Đo lường khí thải Carbon...",
		"HiHi Brain đang tối ưu code...",
		"Tổng hợp báo cáo...",
	}}
}

func (s StatusSequence) Len() int {
	return len(s.messages)
}

func (s StatusSequence) At(i int) string {
	if len(s.messages) == 0 {
		return ""
	}
	i %= len(s.messages)
	if i < 0 {
		i += len(s.messages)
	}
	return s.messages[i]
}

func (s StatusSequence) Next(i int) int {
	if len(s.messages) == 0 {
		return 0
	}
	return (i + 1) % len(s.messages)
}

// StatusRotator calls onTick on a fixed interval between Start and Stop.
// Stop is idempotent and waits until the ticking goroutine has exited, Start restarts a running rotator.
type StatusRotator struct {
	interval time.Duration
	onTick   func()

	mutex sync.Mutex
	stop  chan struct{}
	done  chan struct{}
}

func NewStatusRotator(interval time.Duration, onTick func()) *StatusRotator {
	if interval <= 0 {
		interval = DefaultStatusInterval
	}
	return &StatusRotator{interval: interval, onTick: onTick}
}

func (r *StatusRotator) Start() {
	r.Stop()

	r.mutex.Lock()
	defer r.mutex.Unlock()
	stop := make(chan struct{})
	done := make(chan struct{})
	r.stop, r.done = stop, done

	go func() {
		defer close(done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				select {
				case <-stop:
					return
				default:
				}
				r.onTick()
			}
		}
	}()
}

func (r *StatusRotator) Stop() {
	r.mutex.Lock()
	stop, done := r.stop, r.done
	r.stop, r.done = nil, nil
	r.mutex.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (r *StatusRotator) Running() bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.stop != nil
}
