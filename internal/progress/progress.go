// Package progress provides CLI progress indicators. Output goes to stderr
// so stdout stays clean for piping, and nothing is drawn unless stderr is a
// terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// minItems is the smallest batch that gets a counter.
const minItems = 2

// Progress counts completed items in a batch.
type Progress struct {
	w       io.Writer
	label   string
	total   int
	current int
	failed  int
	isTTY   bool
}

// New creates a progress reporter that writes to stderr.
func New(label string, total int) *Progress {
	return newProgress(os.Stderr, label, total, term.IsTerminal(int(os.Stderr.Fd())))
}

func newProgress(w io.Writer, label string, total int, tty bool) *Progress {
	return &Progress{w: w, label: label, total: total, isTTY: tty}
}

// Increment records one finished item. A non-nil err counts it as failed.
func (p *Progress) Increment(err error) {
	p.current++
	if err != nil {
		p.failed++
	}
	p.print()
}

// Failed returns how many items failed so far.
func (p *Progress) Failed() int { return p.failed }

func (p *Progress) print() {
	if !p.isTTY || p.total < minItems {
		return
	}
	fmt.Fprintf(p.w, "\r%s... %d/%d", p.label, p.current, p.total)
	if p.failed > 0 {
		fmt.Fprintf(p.w, " (%d failed)", p.failed)
	}
}

// Done clears the progress line to make way for final output.
func (p *Progress) Done() {
	if !p.isTTY || p.total < minItems {
		return
	}
	fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", 48))
}

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates while a single request is in flight.
type Spinner struct {
	w     io.Writer
	label string
	isTTY bool

	once sync.Once
	stop chan struct{}
	done chan struct{}
}

// NewSpinner creates a spinner that writes to stderr.
func NewSpinner(label string) *Spinner {
	return &Spinner{
		w:     os.Stderr,
		label: label,
		isTTY: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// Start begins animating. It is a no-op when stderr is not a terminal.
func (s *Spinner) Start() {
	if !s.isTTY {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		t := time.NewTicker(100 * time.Millisecond)
		defer t.Stop()
		for i := 0; ; i++ {
			fmt.Fprintf(s.w, "\r%s %s...", frames[i%len(frames)], s.label)
			select {
			case <-s.stop:
				fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.label)+8))
				return
			case <-t.C:
			}
		}
	}()
}

// Stop clears the spinner line. Safe to call more than once.
func (s *Spinner) Stop() {
	if s.stop == nil {
		return
	}
	s.once.Do(func() {
		close(s.stop)
		<-s.done
	})
}
