// Package safeclose coordinates graceful shutdown of attached subsystems
package safeclose

import (
	"sync"
)

// SafeClose fans a single close signal out to every attached handler and
// waits until all of them report done.
type SafeClose struct {
	mu sync.Mutex
	wg sync.WaitGroup

	closeSignal chan struct{}
	closed      bool
	err         error
}

func New() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach registers a shutdown handler. The handler must call done() when its
// cleanup has finished and should begin cleanup when closeSignal fires.
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	go f(s.wg.Done, s.closeSignal)
}

// SendCloseSignal triggers shutdown. The first error wins; subsequent calls
// are no-ops.
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.closeSignal)
}

// WaitClosed blocks until every attached handler has completed and returns
// the error passed to SendCloseSignal, if any.
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
