package utils

import (
	"fmt"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
)

// SafeAsync runs f in a new goroutine and logs a panic instead of crashing the process.
func SafeAsync(f func()) {
	go func() {
		defer func() {
			if err := recover(); err != nil {
				log.Errorf("Request failed with panic: %v", err)
				log.Tracef("Stacktrace: %v", string(debug.Stack()))
			}
		}()
		f()
	}()
}

// SafeSync runs f in the current goroutine and converts a panic into an error.
func SafeSync(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Request failed with panic: %v", r)
			log.Tracef("Stacktrace: %v", string(debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return f()
}
