package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is a one-line progress indicator for long waits such as wallet
// confirmation or receipt polling.
type Spinner struct {
	out      io.Writer
	interval time.Duration

	mu  sync.Mutex
	msg string

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewSpinner creates a spinner writing to stderr.
func NewSpinner(msg string) *Spinner {
	return newSpinner(os.Stderr, msg, 80*time.Millisecond)
}

func newSpinner(out io.Writer, msg string, interval time.Duration) *Spinner {
	return &Spinner{
		out:      out,
		interval: interval,
		msg:      msg,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the animation in a goroutine.
func (s *Spinner) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			s.mu.Lock()
			msg := s.msg
			s.mu.Unlock()
			fmt.Fprintf(s.out, "\r%s  %s", StyleChain.Render(spinnerFrames[i%len(spinnerFrames)]), msg)

			select {
			case <-s.stop:
				fmt.Fprintf(s.out, "\r%-72s\r", "")
				return
			case <-ticker.C:
			}
		}
	}()
}

// Update replaces the message shown next to the spinner.
func (s *Spinner) Update(msg string) {
	s.mu.Lock()
	s.msg = msg
	s.mu.Unlock()
}

// Stop halts the spinner and waits for the line to be cleared. Safe to call
// more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.stop)
		<-s.done
	})
}

// StopWithMsg halts the spinner and prints a final line.
func (s *Spinner) StopWithMsg(msg string) {
	s.Stop()
	fmt.Fprintln(s.out, msg)
}
