// Package msg carries user-visible progress and diagnostic messages for
// the QA tools. Delivery is best effort: a messenger must never fail the
// scan that is talking to it.
package msg

import (
	"fmt"
	"log"
	"os"

	"github.com/tj/go-spin"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

// Messenger accepts text diagnostics and transient progress labels.
type Messenger interface {
	Message(text string, severity Severity)
	Progress(label string)
}

// Console writes messages to stderr via the standard logger and renders
// progress labels in place on stdout with a spinner frame.
type Console struct {
	spinner    *spin.Spinner
	spinning   bool
	inProgress bool
}

func NewConsole(spinning bool) *Console {
	return &Console{
		spinner:  spin.New(),
		spinning: spinning,
	}
}

func (c *Console) Message(text string, severity Severity) {
	c.endProgress()

	switch severity {
	case Warning:
		log.Printf("WARNING: %s", text)
	case Error:
		log.Printf("ERROR: %s", text)
	default:
		log.Print(text)
	}
}

func (c *Console) Progress(label string) {
	if !c.spinning {
		return
	}
	c.inProgress = true
	fmt.Fprintf(os.Stdout, "\r%s %s", c.spinner.Next(), label)
}

// endProgress terminates an in-place progress line so a following message
// starts on its own line.
func (c *Console) endProgress() {
	if c.inProgress {
		fmt.Fprintln(os.Stdout)
		c.inProgress = false
	}
}

// Discard drops everything. Used by tests and by runs without a console.
type Discard struct{}

func (Discard) Message(string, Severity) {}
func (Discard) Progress(string)          {}

var printer = message.NewPrinter(language.English)

// Count formats n with thousands separators for human-facing counts.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}
