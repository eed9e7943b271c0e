// Package notify is the single surface through which client components
// report outcomes to the user. Call sites pick a severity and a placement
// instead of choosing between ad hoc output styles.
package notify

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

type Severity int

const (
	Info Severity = iota
	Success
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "ok"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Placement tells where a notice belongs. Inline notices are attached to the
// surface that is currently active (the open form, the list). Interruptive
// notices are alerts with no persistent host, such as a failed delete.
type Placement int

const (
	Inline Placement = iota
	Interruptive
)

type Notice struct {
	Severity  Severity
	Placement Placement
	Text      string
}

// Notifier shows notices and asks yes/no questions.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
	// Confirm blocks until the user answers. Anything but an explicit yes,
	// including a cancelled ctx or closed input, counts as no.
	Confirm(ctx context.Context, prompt string) bool
}

// Terminal writes notices to w and reads confirmations from r. It is safe
// for concurrent use; background syncs and the REPL share it.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
	r  *bufio.Reader
}

func NewTerminal(w io.Writer, r *bufio.Reader) *Terminal {
	return &Terminal{w: w, r: r}
}

func (t *Terminal) Notify(_ context.Context, n Notice) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch n.Placement {
	case Interruptive:
		fmt.Fprintf(t.w, "\n!!! %s\n\n", n.Text)
	default:
		if n.Severity == Info {
			fmt.Fprintln(t.w, n.Text)
			return
		}
		fmt.Fprintf(t.w, "[%s] %s\n", n.Severity, n.Text)
	}
}

func (t *Terminal) Confirm(ctx context.Context, prompt string) bool {
	if ctx.Err() != nil {
		return false
	}

	t.mu.Lock()
	fmt.Fprintf(t.w, "%s [y/N] ", prompt)
	t.mu.Unlock()

	line, err := t.r.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return ctx.Err() == nil
	default:
		return false
	}
}

// Recorder keeps every notice and answers confirmations with a preset value.
type Recorder struct {
	mu      sync.Mutex
	Answer  bool
	Notices []Notice
	Prompts []string
}

func (r *Recorder) Notify(_ context.Context, n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Notices = append(r.Notices, n)
}

func (r *Recorder) Confirm(_ context.Context, prompt string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Prompts = append(r.Prompts, prompt)
	return r.Answer
}

// Last returns the most recent notice.
func (r *Recorder) Last() (Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Notices) == 0 {
		return Notice{}, false
	}
	return r.Notices[len(r.Notices)-1], true
}
