// Package notify surfaces user-visible feedback for completed and failed
// operations. The core components emit notifications through the Notifier
// interface; presentation decides how they are shown.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Notifier receives operation outcomes intended for the user.
type Notifier interface {
	Success(msg string)
	Info(msg string)
	Error(msg string)
}

// Console writes prefixed one-line notifications to w.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Success(msg string) { c.write("ok", msg) }
func (c *Console) Info(msg string)    { c.write("info", msg) }
func (c *Console) Error(msg string)   { c.write("error", msg) }

func (c *Console) write(kind string, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "[%s] %s\n", kind, msg)
}

// Recorder collects notifications for assertions in tests.
type Recorder struct {
	mu        sync.Mutex
	Successes []string
	Infos     []string
	Errors    []string
}

func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, msg)
}

func (r *Recorder) Info(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Infos = append(r.Infos, msg)
}

func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, msg)
}
