//go:build !windows

// Package testutil drives interactive survey prompts through a virtual
// terminal so CLI flows can be tested without a real TTY.
package testutil

import (
	"testing"
	"time"

	"github.com/AlecAivazis/survey/v2/terminal"
	expect "github.com/Netflix/go-expect"
	pseudotty "github.com/creack/pty"
	"github.com/hinshun/vt10x"
)

// PromptTimeout bounds every expectation and the whole exchange.
var PromptTimeout = 5 * time.Second

// ExpectConsole is the interface for interacting with the virtual terminal
type ExpectConsole interface {
	ExpectString(string)
	ExpectEOF()
	SendLine(string)
	Send(string)
}

// console adapts an expect.Console to ExpectConsole, reporting failures on t.
type console struct {
	c *expect.Console
	t *testing.T
}

func (w *console) ExpectString(s string) {
	w.t.Helper()
	if _, err := w.c.ExpectString(s); err != nil {
		w.t.Errorf("expected %q on the terminal: %v", s, err)
	}
}

func (w *console) ExpectEOF() {
	w.t.Helper()
	if _, err := w.c.ExpectEOF(); err != nil {
		w.t.Logf("ExpectEOF: %v", err)
	}
}

func (w *console) SendLine(s string) {
	w.t.Helper()
	if _, err := w.c.SendLine(s); err != nil {
		w.t.Fatalf("SendLine(%q): %v", s, err)
	}
}

func (w *console) Send(s string) {
	w.t.Helper()
	if _, err := w.c.Send(s); err != nil {
		w.t.Fatalf("Send(%q): %v", s, err)
	}
}

// RunPromptTest connects test to a pseudo terminal rendered by vt10x while
// procedure plays the user's side. It returns whatever test returned.
func RunPromptTest(t *testing.T, procedure func(ExpectConsole), test func(terminal.Stdio) error) error {
	t.Helper()

	ptm, pts, err := pseudotty.Open()
	if err != nil {
		t.Fatalf("failed to open pseudotty: %v", err)
	}

	term := vt10x.New(vt10x.WithWriter(pts))

	c, err := expect.NewConsole(
		expect.WithStdin(ptm),
		expect.WithStdout(term),
		expect.WithCloser(ptm, pts),
		expect.WithDefaultTimeout(PromptTimeout),
	)
	if err != nil {
		t.Fatalf("failed to create console: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		procedure(&console{c: c, t: t})
	}()

	stdio := terminal.Stdio{In: c.Tty(), Out: c.Tty(), Err: c.Tty()}
	testErr := test(stdio)

	// Closing the tty lets the procedure's ExpectEOF return.
	c.Tty().Close()

	select {
	case <-done:
	case <-time.After(2 * PromptTimeout):
		t.Fatal("timed out waiting for the terminal procedure")
	}

	return testErr
}
