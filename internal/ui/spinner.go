package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var frames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// Spinner draws a progress line on w. On a non-terminal writer it prints
// each distinct message once instead of animating.
type Spinner struct {
	w       io.Writer
	animate bool

	mu   sync.Mutex
	msg  string
	last string
	done chan struct{}
	wg   sync.WaitGroup
}

// NewSpinner writes to stderr.
func NewSpinner() *Spinner {
	return NewSpinnerTo(os.Stderr)
}

func NewSpinnerTo(w io.Writer) *Spinner {
	animate := false
	if f, ok := w.(*os.File); ok {
		animate = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Spinner{w: w, animate: animate}
}

func (s *Spinner) Start(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		s.msg = msg
		return
	}
	s.msg = msg
	s.done = make(chan struct{})
	if !s.animate {
		s.printLocked()
		return
	}
	s.wg.Add(1)
	go s.run(s.done)
}

// Update changes the message; it is safe to pass as a progress callback.
func (s *Spinner) Update(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msg = msg
	if !s.animate && s.done != nil {
		s.printLocked()
	}
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	done := s.done
	s.done = nil
	s.mu.Unlock()
	if done == nil {
		return
	}
	close(done)
	s.wg.Wait()
	if s.animate {
		fmt.Fprint(s.w, "\r\033[K")
	}
}

func (s *Spinner) printLocked() {
	if s.msg == s.last {
		return
	}
	s.last = s.msg
	fmt.Fprintln(s.w, s.msg)
}

func (s *Spinner) run(done <-chan struct{}) {
	defer s.wg.Done()
	tick := time.NewTicker(80 * time.Millisecond)
	defer tick.Stop()

	for i := 0; ; i++ {
		select {
		case <-done:
			return
		case <-tick.C:
			s.mu.Lock()
			msg := s.msg
			s.mu.Unlock()
			fmt.Fprintf(s.w, "\r\033[K%c %s", frames[i%len(frames)], msg)
		}
	}
}
