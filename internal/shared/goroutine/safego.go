// Package goroutine runs background work that must not take the process
// down when it panics.
package goroutine

import (
	"runtime/debug"

	"github.com/hotline-inc/hotline/internal/shared/logger"
)

// SafeGo runs fn on its own goroutine, logging any panic under name.
// The returned channel closes once fn is over, panicking or not.
func SafeGo(log logger.Interface, name string, fn func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer recoverTo(log, name)
		fn()
	}()
	return done
}

func recoverTo(log logger.Interface, name string) {
	r := recover()
	if r == nil {
		return
	}
	log.Errorw("background task panicked", "task", name, "panic", r, "stack", string(debug.Stack()))
}
