package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames defines the animation characters for the spinner.
var spinnerFrames = []string{"|", "/", "-", "\\"}

// spinnerInterval is the time between spinner frame updates.
const spinnerInterval = 100 * time.Millisecond

// lineWidth is how much of the line a redraw clears.
const lineWidth = 80

// Spinner shows a label with a completed/total counter while probes run.
// In non-TTY environments it prints the label once and never redraws.
// Advance is safe to call from multiple goroutines.
type Spinner struct {
	mu        sync.Mutex
	output    io.Writer
	label     string
	total     int
	completed int
	last      string
	done      chan struct{}
	wg        sync.WaitGroup
	stopped   bool
	isTTY     bool
}

// NewSpinner creates a spinner for total units of work.
// If output is nil, os.Stderr is used.
func NewSpinner(output io.Writer, total int) *Spinner {
	if output == nil {
		output = os.Stderr
	}
	return &Spinner{
		output: output,
		total:  total,
		done:   make(chan struct{}),
		isTTY:  IsTerminal(output),
	}
}

// Start begins the animation with the given label.
func (s *Spinner) Start(label string) {
	s.mu.Lock()
	s.label = label
	s.stopped = false
	s.mu.Unlock()

	if !s.isTTY {
		fmt.Fprintf(s.output, "%s\n", label)
		return
	}

	s.wg.Add(1)
	go s.animate()
}

// Advance records one finished unit named name.
func (s *Spinner) Advance(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed < s.total {
		s.completed++
	}
	s.last = name
}

// Completed returns how many units have finished.
func (s *Spinner) Completed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	s.StopWithMessage("")
}

// StopWithMessage halts the animation and prints message, if any.
// Only the first call has an effect.
func (s *Spinner) StopWithMessage(message string) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	close(s.done)
	s.wg.Wait()

	if s.isTTY {
		fmt.Fprintf(s.output, "\r%s\r", strings.Repeat(" ", lineWidth))
	}
	if message != "" {
		fmt.Fprintf(s.output, "%s\n", message)
	}
}

// line renders the current status for the given frame.
func (s *Spinner) line(frame int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := fmt.Sprintf("\r%s %s (%d/%d)", spinnerFrames[frame%len(spinnerFrames)], s.label, s.completed, s.total)
	if s.last != "" {
		line += " " + s.last
	}
	if len(line) < lineWidth {
		line += strings.Repeat(" ", lineWidth-len(line))
	}
	return line
}

func (s *Spinner) animate() {
	defer s.wg.Done()
	frame := 0
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			fmt.Fprint(s.output, s.line(frame))
			frame++
		}
	}
}
