package output

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Spinner displays a progress animation while a slow storage operation runs.
type Spinner struct {
	w       io.Writer
	message string
	frames  []string
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
	started bool
}

// NewSpinner creates a new spinner.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start starts the spinner animation.
func (s *Spinner) Start() {
	s.started = true
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			fmt.Fprintf(s.w, "\r%s %s", s.frames[i%len(s.frames)], s.message)
			select {
			case <-s.done:
				return
			case <-ticker.C:
			}
		}
	}()
}

// halt stops the animation goroutine and waits for it, so the final
// message is not overwritten by a late frame.
func (s *Spinner) halt() bool {
	first := false
	s.once.Do(func() {
		first = true
		close(s.done)
		if s.started {
			<-s.stopped
		}
	})
	return first
}

// Stop stops the spinner and clears the line.
func (s *Spinner) Stop() {
	if s.halt() {
		fmt.Fprint(s.w, "\r\033[K")
	}
}

// Success stops the spinner with a success message.
func (s *Spinner) Success(message string) {
	if s.halt() {
		fmt.Fprintf(s.w, "\r\033[K✓ %s\n", message)
	}
}

// Fail stops the spinner with a failure message.
func (s *Spinner) Fail(message string) {
	if s.halt() {
		fmt.Fprintf(s.w, "\r\033[K✗ %s\n", message)
	}
}
